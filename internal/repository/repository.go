package repository

import (
	"context"
	"time"

	"homywork-server/internal/domain"
)

type UserRepository interface {
	Upsert(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateRole(ctx context.Context, userID string, role domain.UserRole) error
	UpdateStripeAccount(ctx context.Context, userID, stripeAccountID string, onboardingComplete bool) error
	ListAll(ctx context.Context) ([]domain.User, error)
}

type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	ListActive(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
	ListByHost(ctx context.Context, hostID string) ([]domain.Property, error)
	ListAll(ctx context.Context) ([]domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	UpdateStatus(ctx context.Context, id string, isActive bool) error
	Delete(ctx context.Context, id string) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByGuest(ctx context.Context, guestID string) ([]domain.Booking, error)
	ListByHost(ctx context.Context, hostID string) ([]domain.Booking, error)
	CountOverlapping(ctx context.Context, propertyID string, checkIn, checkOut time.Time) (int, error)
	SetPaymentIntent(ctx context.Context, id, paymentIntentID string) error
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error

	// Confirm is the one optimistic-concurrency write: it only succeeds if
	// the booking is still pending with payout pending, and reports whether
	// a row was updated.
	Confirm(ctx context.Context, id, paymentIntentID string, payoutAmountCents, platformFeeCents int64) (bool, error)

	// Payout settlement. ClaimPayout advances payout_status from pending to
	// processing and reports whether this caller won the claim.
	ListEligibleForPayout(ctx context.Context, before time.Time) ([]domain.Booking, error)
	ClaimPayout(ctx context.Context, id string) (bool, error)
	MarkPayoutCompleted(ctx context.Context, id, transferID string, payoutDate time.Time) error
	MarkPayoutFailed(ctx context.Context, id string) error
}

type AvailabilityRepository interface {
	ListByProperty(ctx context.Context, propertyID string) ([]domain.Availability, error)
	Upsert(ctx context.Context, entries []domain.Availability) error
	DeleteBySource(ctx context.Context, propertyID string, source domain.AvailabilitySource) error
}

type CalendarSyncRepository interface {
	Create(ctx context.Context, cs *domain.CalendarSync) error
	GetByID(ctx context.Context, id string) (*domain.CalendarSync, error)
	ListByProperty(ctx context.Context, propertyID string) ([]domain.CalendarSync, error)
	ListActive(ctx context.Context) ([]domain.CalendarSync, error)
	SetLastSyncedAt(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	GetByBooking(ctx context.Context, bookingID string) (*domain.Review, error)
	ListByProperty(ctx context.Context, propertyID string) ([]domain.Review, error)
	AverageRating(ctx context.Context, propertyID string) (float64, error)
}
