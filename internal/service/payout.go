package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"homywork-server/internal/domain"
	"homywork-server/internal/logger"
	"homywork-server/internal/payments"
	"homywork-server/internal/repository"
)

type payoutService struct {
	bookingRepo  repository.BookingRepository
	propertyRepo repository.PropertyRepository
	userRepo     repository.UserRepository
	provider     payments.Provider
	emailSvc     EmailService
	currency     string
}

func NewPayoutService(
	bookingRepo repository.BookingRepository,
	propertyRepo repository.PropertyRepository,
	userRepo repository.UserRepository,
	provider payments.Provider,
	emailSvc EmailService,
	currency string,
) PayoutService {
	return &payoutService{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		provider:     provider,
		emailSvc:     emailSvc,
		currency:     currency,
	}
}

// ProcessScheduledPayouts settles every booking whose stay has started,
// whose payment is captured, and whose payout is still pending.
//
// Bookings are processed one at a time. Before the payments provider is
// called, the booking is claimed by a conditional update to the processing
// payout state; losing the claim means another invocation (the timer racing
// the admin trigger) holds the booking, and it is skipped here. Every
// claimed booking ends the run as completed or failed, never pending.
func (s *payoutService) ProcessScheduledPayouts(ctx context.Context) (domain.PayoutSummary, error) {
	log := logger.WithService("payout")

	eligible, err := s.bookingRepo.ListEligibleForPayout(ctx, time.Now())
	if err != nil {
		return domain.PayoutSummary{}, fmt.Errorf("failed to list eligible bookings: %w", err)
	}

	summary := domain.PayoutSummary{Total: len(eligible)}
	if len(eligible) == 0 {
		log.Info("No eligible bookings for payout")
		return summary, nil
	}
	log.Info("Found bookings eligible for payout", "count", len(eligible))

	for i := range eligible {
		booking := &eligible[i]

		claimed, err := s.bookingRepo.ClaimPayout(ctx, booking.ID)
		if err != nil {
			log.Error("Failed to claim booking for payout", "booking_id", booking.ID, "error", err)
			summary.Failed++
			continue
		}
		if !claimed {
			// A concurrent run holds this booking; not ours to settle.
			log.Info("Booking already claimed by another run", "booking_id", booking.ID)
			summary.Total--
			continue
		}

		if s.settleBooking(ctx, log, booking) {
			summary.Processed++
		} else {
			summary.Failed++
		}
	}

	log.Info("Payout run completed",
		"total", summary.Total,
		"processed", summary.Processed,
		"failed", summary.Failed)
	return summary, nil
}

// settleBooking transfers the host payout for one claimed booking and
// records the outcome. It reports whether the payout completed.
func (s *payoutService) settleBooking(ctx context.Context, log *slog.Logger, booking *domain.Booking) bool {
	property, err := s.propertyRepo.GetByID(ctx, booking.PropertyID)
	if err != nil {
		log.Error("Property not found for booking", "booking_id", booking.ID, "error", err)
		s.markFailed(ctx, log, booking.ID)
		return false
	}

	host, err := s.userRepo.GetByID(ctx, property.HostID)
	if err != nil {
		log.Error("Host not found for booking", "booking_id", booking.ID, "host_id", property.HostID, "error", err)
		s.markFailed(ctx, log, booking.ID)
		return false
	}

	if host.StripeAccountID == "" || !host.StripeOnboardingComplete {
		log.Error("Host not onboarded for payouts", "booking_id", booking.ID, "host_id", host.ID)
		s.markFailed(ctx, log, booking.ID)
		return false
	}

	transfer, err := s.provider.CreateTransfer(ctx, payments.TransferRequest{
		AmountCents: booking.PayoutAmountCents,
		Currency:    s.currency,
		Destination: host.StripeAccountID,
		Description: fmt.Sprintf("Payout for booking %s - Property: %s", booking.ID, property.Title),
		Metadata: map[string]string{
			"booking_id":  booking.ID,
			"property_id": property.ID,
			"host_id":     host.ID,
		},
	})
	if err != nil {
		log.Error("Transfer failed", "booking_id", booking.ID, "error", err)
		s.markFailed(ctx, log, booking.ID)
		return false
	}

	now := time.Now()
	if err := s.bookingRepo.MarkPayoutCompleted(ctx, booking.ID, transfer.ID, now); err != nil {
		// The transfer went through but the record did not; surface loudly,
		// the operator has the transfer id in the log.
		log.Error("Transfer succeeded but payout record update failed",
			"booking_id", booking.ID, "transfer_id", transfer.ID, "error", err)
		return false
	}

	log.Info("Payout completed",
		"booking_id", booking.ID,
		"transfer_id", transfer.ID,
		"amount_cents", booking.PayoutAmountCents)

	if s.emailSvc != nil {
		if err := s.emailSvc.SendPayoutCompleted(ctx, host.Email, host.Name, property.Title, booking.PayoutAmountCents); err != nil {
			log.Error("Failed to send payout email", "booking_id", booking.ID, "error", err)
		}
	}
	return true
}

func (s *payoutService) markFailed(ctx context.Context, log *slog.Logger, bookingID string) {
	if err := s.bookingRepo.MarkPayoutFailed(ctx, bookingID); err != nil {
		log.Error("Failed to mark payout as failed", "booking_id", bookingID, "error", err)
	}
}
