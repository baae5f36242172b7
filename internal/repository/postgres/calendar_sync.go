package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"homywork-server/internal/domain"
	"homywork-server/internal/repository"
)

type calendarSyncRepository struct {
	db *sql.DB
}

func NewCalendarSyncRepository(db *sql.DB) repository.CalendarSyncRepository {
	return &calendarSyncRepository{db: db}
}

const calendarSyncColumns = `id, property_id, platform, url, is_active, last_synced_at, created_on`

func (r *calendarSyncRepository) Create(ctx context.Context, cs *domain.CalendarSync) error {
	query := `INSERT INTO calendar_syncs (id, property_id, platform, url, is_active, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, cs.ID, cs.PropertyID, cs.Platform, cs.URL, cs.IsActive, now)
	if err == nil {
		cs.CreatedOn = now
	}
	return err
}

func (r *calendarSyncRepository) GetByID(ctx context.Context, id string) (*domain.CalendarSync, error) {
	query := `SELECT ` + calendarSyncColumns + ` FROM calendar_syncs WHERE id = $1`
	cs, err := scanCalendarSync(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return cs, err
}

func (r *calendarSyncRepository) ListByProperty(ctx context.Context, propertyID string) ([]domain.CalendarSync, error) {
	query := `SELECT ` + calendarSyncColumns + ` FROM calendar_syncs WHERE property_id = $1 ORDER BY created_on`
	return r.list(ctx, query, propertyID)
}

func (r *calendarSyncRepository) ListActive(ctx context.Context) ([]domain.CalendarSync, error) {
	query := `SELECT ` + calendarSyncColumns + ` FROM calendar_syncs WHERE is_active = TRUE ORDER BY created_on`
	return r.list(ctx, query)
}

func (r *calendarSyncRepository) SetLastSyncedAt(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE calendar_syncs SET last_synced_at = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, at, id)
	return err
}

func (r *calendarSyncRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM calendar_syncs WHERE id = $1`, id)
	return err
}

func (r *calendarSyncRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.CalendarSync, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var syncs []domain.CalendarSync
	for rows.Next() {
		cs, err := scanCalendarSync(rows)
		if err != nil {
			return nil, err
		}
		syncs = append(syncs, *cs)
	}
	return syncs, rows.Err()
}

func scanCalendarSync(row rowScanner) (*domain.CalendarSync, error) {
	cs := &domain.CalendarSync{}
	var lastSynced sql.NullTime
	err := row.Scan(&cs.ID, &cs.PropertyID, &cs.Platform, &cs.URL, &cs.IsActive, &lastSynced, &cs.CreatedOn)
	if err != nil {
		return nil, err
	}
	if lastSynced.Valid {
		cs.LastSyncedAt = &lastSynced.Time
	}
	return cs, nil
}
