package service

import (
	"context"
	"time"

	"homywork-server/internal/domain"
	"homywork-server/internal/payments"
)

// GoogleProfile is the identity asserted by Google after the OAuth
// callback. Sub becomes the local user ID.
type GoogleProfile struct {
	Sub     string
	Email   string
	Name    string
	Picture string
}

type AuthService interface {
	// LoginWithGoogle upserts the local user for the asserted identity and
	// returns a signed session token.
	LoginWithGoogle(ctx context.Context, profile GoogleProfile) (*domain.User, string, error)
	// GetSessionUser resolves a session token to the current user record.
	GetSessionUser(ctx context.Context, token string) (*domain.User, error)
}

type UserService interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	BecomeHost(ctx context.Context, userID string) (*domain.User, error)
	StartStripeOnboarding(ctx context.Context, userID, refreshURL, returnURL string) (string, error)
	RefreshStripeStatus(ctx context.Context, userID string) (*domain.User, error)
}

type PropertyService interface {
	ListPublic(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
	GetPublic(ctx context.Context, id string) (*domain.PropertyWithHost, error)
	ListByHost(ctx context.Context, hostID string) ([]domain.Property, error)
	Create(ctx context.Context, host *domain.User, p *domain.Property) error
	Update(ctx context.Context, requester *domain.User, p *domain.Property) (*domain.Property, error)
	Delete(ctx context.Context, requester *domain.User, id string) error
}

// CreateBookingInput is the guest's booking request.
type CreateBookingInput struct {
	PropertyID string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int32
}

type BookingService interface {
	CreateBooking(ctx context.Context, guestID string, in CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, requester *domain.User, id string) (*domain.Booking, error)
	ListGuestBookings(ctx context.Context, guestID string) ([]domain.Booking, error)
	ListHostBookings(ctx context.Context, hostID string) ([]domain.Booking, error)
	CreatePaymentIntent(ctx context.Context, guestID, bookingID string) (*payments.PaymentIntent, error)
	// ConfirmBooking transitions pending -> confirmed exactly once, computing
	// the payout economics; a stale state yields domain.ErrConflict.
	ConfirmBooking(ctx context.Context, guestID, bookingID, paymentIntentID string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, guestID, bookingID string) (*domain.Booking, error)
}

type PayoutService interface {
	// ProcessScheduledPayouts settles every eligible booking and returns
	// aggregate counts. Failures are per-booking and never abort the run.
	ProcessScheduledPayouts(ctx context.Context) (domain.PayoutSummary, error)
}

type AvailabilityService interface {
	ListAvailability(ctx context.Context, propertyID string) ([]domain.Availability, error)
	SetAvailability(ctx context.Context, requester *domain.User, propertyID string, dates []time.Time, isAvailable bool) error
}

type CalendarSyncService interface {
	CreateSync(ctx context.Context, requester *domain.User, propertyID, platform, url string) (*domain.CalendarSync, error)
	ListSyncs(ctx context.Context, requester *domain.User, propertyID string) ([]domain.CalendarSync, error)
	DeleteSync(ctx context.Context, requester *domain.User, syncID string) error
	SyncNow(ctx context.Context, requester *domain.User, syncID string) (*domain.CalendarSyncResult, error)
	// SyncAllActive refreshes every enabled feed; used by the nightly job.
	SyncAllActive(ctx context.Context) (int, error)
}

type ReviewService interface {
	CreateReview(ctx context.Context, guestID, bookingID string, rating int32, comment string) (*domain.Review, error)
	ListPropertyReviews(ctx context.Context, propertyID string) ([]domain.Review, float64, error)
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	SetUserRole(ctx context.Context, userID string, role domain.UserRole) (*domain.User, error)
	ListProperties(ctx context.Context) ([]domain.Property, error)
	SetPropertyStatus(ctx context.Context, propertyID string, isActive bool) (*domain.Property, error)
}

type EmailService interface {
	SendBookingConfirmed(ctx context.Context, guestEmail, guestName, propertyTitle string, checkIn, checkOut time.Time, totalCents int64) error
	SendHostNewBooking(ctx context.Context, hostEmail, hostName, propertyTitle string, checkIn, checkOut time.Time, payoutCents int64) error
	SendPayoutCompleted(ctx context.Context, hostEmail, hostName, propertyTitle string, amountCents int64) error
}

// UploadTicket is the result of issuing an object-upload URL.
type UploadTicket struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

type ImageStorageService interface {
	IssueUploadURL(ctx context.Context, userID, filename, contentType string) (*UploadTicket, error)
}
