package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"homywork-server/internal/domain"
	"homywork-server/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, property_id, guest_id, check_in, check_out, guests, total_price_cents, status, payout_status, payout_amount_cents, platform_fee_cents, stripe_payment_intent_id, stripe_transfer_id, payout_date, created_on`

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (id, property_id, guest_id, check_in, check_out, guests, total_price_cents, status, payout_status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.PropertyID, b.GuestID, b.CheckIn, b.CheckOut, b.Guests,
		b.TotalPriceCents, b.Status, b.PayoutStatus, now)
	if err == nil {
		b.CreatedOn = now
	}
	return err
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

func (r *bookingRepository) ListByGuest(ctx context.Context, guestID string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE guest_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, guestID)
}

func (r *bookingRepository) ListByHost(ctx context.Context, hostID string) ([]domain.Booking, error) {
	query := `SELECT b.id, b.property_id, b.guest_id, b.check_in, b.check_out, b.guests, b.total_price_cents, b.status, b.payout_status, b.payout_amount_cents, b.platform_fee_cents, b.stripe_payment_intent_id, b.stripe_transfer_id, b.payout_date, b.created_on
	          FROM bookings b
	          JOIN properties p ON p.id = b.property_id
	          WHERE p.host_id = $1
	          ORDER BY b.created_on DESC`
	return r.list(ctx, query, hostID)
}

func (r *bookingRepository) CountOverlapping(ctx context.Context, propertyID string, checkIn, checkOut time.Time) (int, error) {
	query := `SELECT count(*) FROM bookings
	          WHERE property_id = $1
	            AND status = 'confirmed'
	            AND check_in < $3
	            AND check_out > $2`
	var count int
	err := r.db.QueryRowContext(ctx, query, propertyID, checkIn, checkOut).Scan(&count)
	return count, err
}

func (r *bookingRepository) SetPaymentIntent(ctx context.Context, id, paymentIntentID string) error {
	query := `UPDATE bookings SET stripe_payment_intent_id = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, paymentIntentID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	query := `UPDATE bookings SET status = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Confirm performs the single compare-and-swap in the system: the update
// only lands if the booking is still pending with payout pending.
func (r *bookingRepository) Confirm(ctx context.Context, id, paymentIntentID string, payoutAmountCents, platformFeeCents int64) (bool, error) {
	query := `UPDATE bookings
	          SET status = 'confirmed',
	              stripe_payment_intent_id = $1,
	              payout_amount_cents = $2,
	              platform_fee_cents = $3
	          WHERE id = $4
	            AND status = 'pending'
	            AND payout_status = 'pending'`
	res, err := r.db.ExecContext(ctx, query, paymentIntentID, payoutAmountCents, platformFeeCents, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *bookingRepository) ListEligibleForPayout(ctx context.Context, before time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE status = 'confirmed'
	            AND payout_status = 'pending'
	            AND check_in < $1
	          ORDER BY created_on`
	return r.list(ctx, query, before)
}

// ClaimPayout advances payout_status pending -> processing. Zero rows means
// a concurrent run already holds the booking.
func (r *bookingRepository) ClaimPayout(ctx context.Context, id string) (bool, error) {
	query := `UPDATE bookings SET payout_status = 'processing' WHERE id = $1 AND payout_status = 'pending'`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *bookingRepository) MarkPayoutCompleted(ctx context.Context, id, transferID string, payoutDate time.Time) error {
	query := `UPDATE bookings SET payout_status = 'completed', stripe_transfer_id = $1, payout_date = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, transferID, payoutDate, id)
	return err
}

func (r *bookingRepository) MarkPayoutFailed(ctx context.Context, id string) error {
	query := `UPDATE bookings SET payout_status = 'failed' WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *bookingRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	var paymentIntentID, transferID sql.NullString
	var payoutAmount, platformFee sql.NullInt64
	var payoutDate sql.NullTime
	err := row.Scan(
		&b.ID, &b.PropertyID, &b.GuestID, &b.CheckIn, &b.CheckOut, &b.Guests,
		&b.TotalPriceCents, &b.Status, &b.PayoutStatus,
		&payoutAmount, &platformFee, &paymentIntentID, &transferID,
		&payoutDate, &b.CreatedOn)
	if err != nil {
		return nil, err
	}
	b.PayoutAmountCents = payoutAmount.Int64
	b.PlatformFeeCents = platformFee.Int64
	b.StripePaymentIntentID = paymentIntentID.String
	b.StripeTransferID = transferID.String
	if payoutDate.Valid {
		b.PayoutDate = &payoutDate.Time
	}
	return b, nil
}
