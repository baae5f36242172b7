package service

import (
	"context"
	"fmt"

	"homywork-server/internal/domain"
	"homywork-server/internal/logger"
	"homywork-server/internal/payments"
	"homywork-server/internal/repository"
	"homywork-server/internal/utils"

	"github.com/google/uuid"
)

type bookingService struct {
	bookingRepo  repository.BookingRepository
	propertyRepo repository.PropertyRepository
	userRepo     repository.UserRepository
	provider     payments.Provider
	emailSvc     EmailService
	feePercent   int
	currency     string
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	propertyRepo repository.PropertyRepository,
	userRepo repository.UserRepository,
	provider payments.Provider,
	emailSvc EmailService,
	feePercent int,
	currency string,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		provider:     provider,
		emailSvc:     emailSvc,
		feePercent:   feePercent,
		currency:     currency,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, guestID string, in CreateBookingInput) (*domain.Booking, error) {
	if !in.CheckOut.After(in.CheckIn) {
		return nil, fmt.Errorf("%w: check-out must be after check-in", domain.ErrValidation)
	}
	if in.Guests <= 0 {
		return nil, fmt.Errorf("%w: guest count must be positive", domain.ErrValidation)
	}

	property, err := s.propertyRepo.GetByID(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if !property.IsActive {
		return nil, fmt.Errorf("%w: property is not available for booking", domain.ErrValidation)
	}
	if in.Guests > property.MaxGuests {
		return nil, fmt.Errorf("%w: property sleeps at most %d guests", domain.ErrValidation, property.MaxGuests)
	}

	// Overlap with confirmed stays is checked by a date-range query, not a
	// schema constraint.
	overlapping, err := s.bookingRepo.CountOverlapping(ctx, in.PropertyID, in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, fmt.Errorf("%w: dates overlap an existing booking", domain.ErrConflict)
	}

	nights := utils.Nights(in.CheckIn, in.CheckOut)
	if nights == 0 {
		return nil, fmt.Errorf("%w: booking must cover at least one night", domain.ErrValidation)
	}

	booking := &domain.Booking{
		ID:              uuid.New().String(),
		PropertyID:      in.PropertyID,
		GuestID:         guestID,
		CheckIn:         in.CheckIn,
		CheckOut:        in.CheckOut,
		Guests:          in.Guests,
		TotalPriceCents: int64(nights) * property.PricePerNightCents,
		Status:          domain.BookingStatusPending,
		PayoutStatus:    domain.PayoutStatusPending,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, requester *domain.User, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.GuestID == requester.ID || requester.Role == domain.UserRoleAdmin {
		return booking, nil
	}
	// The host of the booked property may also see it.
	property, err := s.propertyRepo.GetByID(ctx, booking.PropertyID)
	if err == nil && property.HostID == requester.ID {
		return booking, nil
	}
	return nil, fmt.Errorf("%w: booking belongs to another user", domain.ErrForbidden)
}

func (s *bookingService) ListGuestBookings(ctx context.Context, guestID string) ([]domain.Booking, error) {
	return s.bookingRepo.ListByGuest(ctx, guestID)
}

func (s *bookingService) ListHostBookings(ctx context.Context, hostID string) ([]domain.Booking, error) {
	return s.bookingRepo.ListByHost(ctx, hostID)
}

// CreatePaymentIntent issues the Stripe payment intent the client pays
// against. Confirmation is client-driven: the client calls ConfirmBooking
// after its payments SDK reports success.
func (s *bookingService) CreatePaymentIntent(ctx context.Context, guestID, bookingID string) (*payments.PaymentIntent, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.GuestID != guestID {
		return nil, fmt.Errorf("%w: booking belongs to another guest", domain.ErrForbidden)
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, fmt.Errorf("%w: booking is not awaiting payment", domain.ErrConflict)
	}

	pi, err := s.provider.CreatePaymentIntent(ctx, booking.TotalPriceCents, s.currency, map[string]string{
		"booking_id":  booking.ID,
		"property_id": booking.PropertyID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	if err := s.bookingRepo.SetPaymentIntent(ctx, bookingID, pi.ID); err != nil {
		return nil, err
	}
	return pi, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, guestID, bookingID, paymentIntentID string) (*domain.Booking, error) {
	if paymentIntentID == "" {
		return nil, fmt.Errorf("%w: payment intent id is required", domain.ErrValidation)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.GuestID != guestID {
		return nil, fmt.Errorf("%w: booking belongs to another guest", domain.ErrForbidden)
	}

	feeCents, payoutCents := utils.SplitPlatformFee(booking.TotalPriceCents, s.feePercent)

	// Single conditional write: only lands if status and payout fields are
	// unchanged since the read above. Zero rows means a concurrent caller
	// got there first.
	updated, err := s.bookingRepo.Confirm(ctx, bookingID, paymentIntentID, payoutCents, feeCents)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, domain.ErrConflict
	}

	booking.Status = domain.BookingStatusConfirmed
	booking.StripePaymentIntentID = paymentIntentID
	booking.PayoutAmountCents = payoutCents
	booking.PlatformFeeCents = feeCents

	s.notifyBookingConfirmed(ctx, booking)
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, guestID, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.GuestID != guestID {
		return nil, fmt.Errorf("%w: booking belongs to another guest", domain.ErrForbidden)
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, fmt.Errorf("%w: only pending bookings can be cancelled", domain.ErrConflict)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingStatusCancelled); err != nil {
		return nil, err
	}
	booking.Status = domain.BookingStatusCancelled
	return booking, nil
}

// notifyBookingConfirmed emails the guest and the host. Failures are logged
// and never surface to the caller.
func (s *bookingService) notifyBookingConfirmed(ctx context.Context, booking *domain.Booking) {
	if s.emailSvc == nil {
		return
	}
	property, err := s.propertyRepo.GetByID(ctx, booking.PropertyID)
	if err != nil {
		logger.Warn("Could not load property for confirmation email", "booking_id", booking.ID, "error", err)
		return
	}

	if guest, err := s.userRepo.GetByID(ctx, booking.GuestID); err == nil {
		if err := s.emailSvc.SendBookingConfirmed(ctx, guest.Email, guest.Name, property.Title, booking.CheckIn, booking.CheckOut, booking.TotalPriceCents); err != nil {
			logger.Warn("Failed to send guest confirmation email", "booking_id", booking.ID, "error", err)
		}
	}
	if host, err := s.userRepo.GetByID(ctx, property.HostID); err == nil {
		if err := s.emailSvc.SendHostNewBooking(ctx, host.Email, host.Name, property.Title, booking.CheckIn, booking.CheckOut, booking.PayoutAmountCents); err != nil {
			logger.Warn("Failed to send host booking email", "booking_id", booking.ID, "error", err)
		}
	}
}
