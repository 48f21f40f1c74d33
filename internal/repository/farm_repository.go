package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/farmlink/farm-marketplace/internal/model"
)

type FarmRepo struct{ DB *sql.DB }

func NewFarmRepo(db *sql.DB) *FarmRepo { return &FarmRepo{DB: db} }

const farmCols = "id,name,location,size,owner_id,created_at,updated_at"

// List returns all farms, or only those of the given owner when ownerID
// is non-empty.
func (r *FarmRepo) List(ctx context.Context, ownerID string) ([]model.Farm, error) {
	q := "SELECT " + farmCols + " FROM farms"
	args := []any{}
	if ownerID != "" {
		q += " WHERE owner_id = ?"
		args = append(args, ownerID)
	}
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Farm{}
	for rows.Next() {
		var f model.Farm
		if err := rows.Scan(&f.ID, &f.Name, &f.Location, &f.Size, &f.OwnerID,
			&f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a farm by id.
func (r *FarmRepo) GetByID(ctx context.Context, id string) (model.Farm, error) {
	var f model.Farm
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+farmCols+" FROM farms WHERE id=? LIMIT 1", id).
		Scan(&f.ID, &f.Name, &f.Location, &f.Size, &f.OwnerID, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return f, ErrNotFound
	}
	return f, err
}

// Create inserts the farm. The owner reference is enforced by the store;
// a missing owner surfaces as ErrMissingParent.
func (r *FarmRepo) Create(ctx context.Context, f *model.Farm) error {
	f.ID = uuid.NewString()
	now := time.Now().UTC().Truncate(time.Second)
	f.CreatedAt, f.UpdatedAt = now, now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO farms (id,name,location,size,owner_id,created_at,updated_at) VALUES (?,?,?,?,?,?,?)",
		f.ID, f.Name, f.Location, f.Size, f.OwnerID, f.CreatedAt, f.UpdatedAt)
	if isMissingParent(err) {
		return ErrMissingParent
	}
	return err
}
