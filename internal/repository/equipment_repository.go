package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/farmlink/farm-marketplace/internal/model"
)

type EquipmentRepo struct{ DB *sql.DB }

func NewEquipmentRepo(db *sql.DB) *EquipmentRepo { return &EquipmentRepo{DB: db} }

// ListByFarm returns all equipment of a farm.
func (r *EquipmentRepo) ListByFarm(ctx context.Context, farmID string) ([]model.Equipment, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,farm_id,name,status,last_maintenance,next_maintenance,created_at,updated_at FROM equipment WHERE farm_id=?",
		farmID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Equipment{}
	for rows.Next() {
		var e model.Equipment
		var last, next sql.NullTime
		if err := rows.Scan(&e.ID, &e.FarmID, &e.Name, &e.Status,
			&last, &next, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.LastMaintenance = nullableDate(last)
		e.NextMaintenance = nullableDate(next)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts the equipment against its farm. A missing farm surfaces
// as ErrMissingParent.
func (r *EquipmentRepo) Create(ctx context.Context, e *model.Equipment) error {
	e.ID = uuid.NewString()
	now := time.Now().UTC().Truncate(time.Second)
	e.CreatedAt, e.UpdatedAt = now, now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO equipment (id,farm_id,name,status,last_maintenance,next_maintenance,created_at,updated_at) VALUES (?,?,?,?,?,?,?,?)",
		e.ID, e.FarmID, e.Name, e.Status, e.LastMaintenance, e.NextMaintenance,
		e.CreatedAt, e.UpdatedAt)
	if isMissingParent(err) {
		return ErrMissingParent
	}
	return err
}
