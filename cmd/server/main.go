package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/farmlink/farm-marketplace/internal/config"
	"github.com/farmlink/farm-marketplace/internal/database"
	"github.com/farmlink/farm-marketplace/internal/handler"
	"github.com/farmlink/farm-marketplace/internal/repository"
	"github.com/farmlink/farm-marketplace/internal/router"
)

func main() {
	_ = godotenv.Load() // best effort; real env vars win
	cfg := config.Load()

	db, err := database.Open(database.Params{
		User: cfg.DBUser, Pass: cfg.DBPass,
		Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
		MaxOpen:         cfg.DBMaxOpen,
		MaxIdle:         cfg.DBMaxIdle,
		ConnMaxLifetime: time.Duration(cfg.DBConnTTLMin) * time.Minute,
	})
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	products := handler.NewProductHandler(repository.NewProductRepo(db))
	farms := handler.NewFarmHandler(
		repository.NewFarmRepo(db),
		repository.NewCropRepo(db),
		repository.NewSoilRecordRepo(db),
		repository.NewEquipmentRepo(db),
	)
	users := handler.NewUserHandler(cfg, repository.NewUserRepo(db), repository.NewOrderRepo(db))

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	router.RegisterRoutes(e, products, farms, users)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
