package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"homywork-server/internal/domain"
	"homywork-server/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `INSERT INTO reviews (id, property_id, booking_id, guest_id, rating, comment, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, rv.ID, rv.PropertyID, rv.BookingID, rv.GuestID, rv.Rating, rv.Comment, now)
	if err == nil {
		rv.CreatedOn = now
	}
	return err
}

func (r *reviewRepository) GetByBooking(ctx context.Context, bookingID string) (*domain.Review, error) {
	rv := &domain.Review{}
	query := `SELECT id, property_id, booking_id, guest_id, rating, comment, created_on FROM reviews WHERE booking_id = $1`
	err := r.db.QueryRowContext(ctx, query, bookingID).
		Scan(&rv.ID, &rv.PropertyID, &rv.BookingID, &rv.GuestID, &rv.Rating, &rv.Comment, &rv.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *reviewRepository) ListByProperty(ctx context.Context, propertyID string) ([]domain.Review, error) {
	query := `SELECT r.id, r.property_id, r.booking_id, r.guest_id, r.rating, r.comment, r.created_on, u.name, u.picture
	          FROM reviews r
	          JOIN users u ON u.id = r.guest_id
	          WHERE r.property_id = $1
	          ORDER BY r.created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.PropertyID, &rv.BookingID, &rv.GuestID, &rv.Rating, &rv.Comment, &rv.CreatedOn, &rv.GuestName, &rv.GuestPicture); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// AverageRating returns the mean rating rounded to one decimal, zero when
// the property has no reviews.
func (r *reviewRepository) AverageRating(ctx context.Context, propertyID string) (float64, error) {
	var avg sql.NullFloat64
	query := `SELECT AVG(rating) FROM reviews WHERE property_id = $1`
	if err := r.db.QueryRowContext(ctx, query, propertyID).Scan(&avg); err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return float64(int(avg.Float64*10+0.5)) / 10, nil
}
