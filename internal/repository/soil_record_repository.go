package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/farmlink/farm-marketplace/internal/model"
)

type SoilRecordRepo struct{ DB *sql.DB }

func NewSoilRecordRepo(db *sql.DB) *SoilRecordRepo { return &SoilRecordRepo{DB: db} }

// LatestByFarm returns the single most recent soil record of a farm by
// record date, or ErrNotFound when the farm has none.
func (r *SoilRecordRepo) LatestByFarm(ctx context.Context, farmID string) (model.SoilRecord, error) {
	var s model.SoilRecord
	err := r.DB.QueryRowContext(ctx,
		`SELECT id,farm_id,ph,nitrogen,phosphorus,potassium,organic_matter,record_date,created_at
		 FROM soil_records WHERE farm_id=? ORDER BY record_date DESC LIMIT 1`, farmID).
		Scan(&s.ID, &s.FarmID, &s.PH, &s.Nitrogen, &s.Phosphorus, &s.Potassium,
			&s.OrganicMatter, &s.RecordDate, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNotFound
	}
	return s, err
}

// Create inserts the record. Soil records are append-only, so only
// created_at is stamped. RecordDate defaults to today (UTC) when unset.
func (r *SoilRecordRepo) Create(ctx context.Context, s *model.SoilRecord) error {
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC().Truncate(time.Second)
	if s.RecordDate.IsZero() {
		y, m, d := time.Now().UTC().Date()
		s.RecordDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO soil_records (id,farm_id,ph,nitrogen,phosphorus,potassium,organic_matter,record_date,created_at) VALUES (?,?,?,?,?,?,?,?,?)",
		s.ID, s.FarmID, s.PH, s.Nitrogen, s.Phosphorus, s.Potassium, s.OrganicMatter,
		s.RecordDate, s.CreatedAt)
	if isMissingParent(err) {
		return ErrMissingParent
	}
	return err
}
