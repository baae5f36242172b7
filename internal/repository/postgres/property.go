package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"homywork-server/internal/domain"
	"homywork-server/internal/repository"

	"github.com/lib/pq"
)

type propertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

const propertyColumns = `id, host_id, title, description, city, address, price_per_night_cents, max_guests, bedrooms, images, amenities, is_active, created_on, updated_on`

func (r *propertyRepository) Create(ctx context.Context, p *domain.Property) error {
	query := `INSERT INTO properties (id, host_id, title, description, city, address, price_per_night_cents, max_guests, bedrooms, images, amenities, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.HostID, p.Title, p.Description, p.City, p.Address,
		p.PricePerNightCents, p.MaxGuests, p.Bedrooms,
		pq.Array(p.Images), pq.Array(p.Amenities), p.IsActive, now)
	if err == nil {
		p.CreatedOn = now
		p.UpdatedOn = now
	}
	return err
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	p, err := scanProperty(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

func (r *propertyRepository) ListActive(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE is_active = TRUE`
	args := []interface{}{}
	argIdx := 1
	if filter.City != "" {
		query += fmt.Sprintf(" AND city = $%d", argIdx)
		args = append(args, filter.City)
		argIdx++
	}
	if filter.MaxPriceCents > 0 {
		query += fmt.Sprintf(" AND price_per_night_cents <= $%d", argIdx)
		args = append(args, filter.MaxPriceCents)
		argIdx++
	}
	query += " ORDER BY created_on DESC"
	return r.list(ctx, query, args...)
}

func (r *propertyRepository) ListByHost(ctx context.Context, hostID string) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE host_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, hostID)
}

func (r *propertyRepository) ListAll(ctx context.Context) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY created_on DESC`
	return r.list(ctx, query)
}

func (r *propertyRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Property, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var props []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		props = append(props, *p)
	}
	return props, rows.Err()
}

func (r *propertyRepository) Update(ctx context.Context, p *domain.Property) error {
	query := `UPDATE properties
	          SET title=$1, description=$2, city=$3, address=$4, price_per_night_cents=$5, max_guests=$6, bedrooms=$7, images=$8, amenities=$9, is_active=$10, updated_on=$11
	          WHERE id=$12`
	res, err := r.db.ExecContext(ctx, query,
		p.Title, p.Description, p.City, p.Address, p.PricePerNightCents,
		p.MaxGuests, p.Bedrooms, pq.Array(p.Images), pq.Array(p.Amenities),
		p.IsActive, time.Now(), p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *propertyRepository) UpdateStatus(ctx context.Context, id string, isActive bool) error {
	query := `UPDATE properties SET is_active=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, isActive, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id=$1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row rowScanner) (*domain.Property, error) {
	p := &domain.Property{}
	err := row.Scan(
		&p.ID, &p.HostID, &p.Title, &p.Description, &p.City, &p.Address,
		&p.PricePerNightCents, &p.MaxGuests, &p.Bedrooms,
		pq.Array(&p.Images), pq.Array(&p.Amenities),
		&p.IsActive, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}
