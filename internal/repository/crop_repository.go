package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/farmlink/farm-marketplace/internal/model"
)

type CropRepo struct{ DB *sql.DB }

func NewCropRepo(db *sql.DB) *CropRepo { return &CropRepo{DB: db} }

// ListByFarm returns all crops of a farm.
func (r *CropRepo) ListByFarm(ctx context.Context, farmID string) ([]model.Crop, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,farm_id,name,area,status,planted_date,harvest_date,created_at,updated_at FROM crops WHERE farm_id=?",
		farmID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Crop{}
	for rows.Next() {
		var c model.Crop
		var planted, harvest sql.NullTime
		if err := rows.Scan(&c.ID, &c.FarmID, &c.Name, &c.Area, &c.Status,
			&planted, &harvest, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.PlantedDate = nullableDate(planted)
		c.HarvestDate = nullableDate(harvest)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts the crop against its farm. A missing farm surfaces as
// ErrMissingParent.
func (r *CropRepo) Create(ctx context.Context, c *model.Crop) error {
	c.ID = uuid.NewString()
	now := time.Now().UTC().Truncate(time.Second)
	c.CreatedAt, c.UpdatedAt = now, now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO crops (id,farm_id,name,area,status,planted_date,harvest_date,created_at,updated_at) VALUES (?,?,?,?,?,?,?,?,?)",
		c.ID, c.FarmID, c.Name, c.Area, c.Status, c.PlantedDate, c.HarvestDate,
		c.CreatedAt, c.UpdatedAt)
	if isMissingParent(err) {
		return ErrMissingParent
	}
	return err
}

func nullableDate(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
