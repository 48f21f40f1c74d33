// Package database opens the MySQL connection pool and bootstraps the
// schema the service expects.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 5 * time.Second

// Params carries everything Open needs: credentials, the target
// database and the pool caps, which come from configuration rather
// than being baked in here.
type Params struct {
	User, Pass, Host, Port, Name string

	MaxOpen, MaxIdle int
	ConnMaxLifetime  time.Duration
}

// Open connects to MySQL, applies the pool settings and pings once so a
// bad DSN fails at startup instead of on the first request. DATETIME
// columns scan into time.Time in UTC via parseTime/loc.
func Open(p Params) (*sql.DB, error) {
	auth := p.User
	if p.Pass != "" {
		auth = fmt.Sprintf("%s:%s", p.User, p.Pass)
	}
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, p.Host, p.Port, p.Name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(p.MaxOpen)
	db.SetMaxIdleConns(p.MaxIdle)
	db.SetConnMaxLifetime(p.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
