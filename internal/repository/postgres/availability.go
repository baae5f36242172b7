package postgres

import (
	"context"
	"database/sql"

	"homywork-server/internal/domain"
	"homywork-server/internal/repository"
)

type availabilityRepository struct {
	db *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) repository.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) ListByProperty(ctx context.Context, propertyID string) ([]domain.Availability, error) {
	query := `SELECT property_id, date, is_available, source FROM availability WHERE property_id = $1 ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Availability
	for rows.Next() {
		var a domain.Availability
		if err := rows.Scan(&a.PropertyID, &a.Date, &a.IsAvailable, &a.Source); err != nil {
			return nil, err
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}

func (r *availabilityRepository) Upsert(ctx context.Context, entries []domain.Availability) error {
	if len(entries) == 0 {
		return nil
	}
	query := `INSERT INTO availability (property_id, date, is_available, source)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (property_id, date) DO UPDATE
	          SET is_available = EXCLUDED.is_available, source = EXCLUDED.source`
	for _, a := range entries {
		if _, err := r.db.ExecContext(ctx, query, a.PropertyID, a.Date, a.IsAvailable, a.Source); err != nil {
			return err
		}
	}
	return nil
}

func (r *availabilityRepository) DeleteBySource(ctx context.Context, propertyID string, source domain.AvailabilitySource) error {
	query := `DELETE FROM availability WHERE property_id = $1 AND source = $2`
	_, err := r.db.ExecContext(ctx, query, propertyID, source)
	return err
}
