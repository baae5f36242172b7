package service

import (
	"context"
	"testing"
	"time"

	"homywork-server/internal/domain"
	"homywork-server/internal/payments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func activeProperty() *domain.Property {
	return &domain.Property{
		ID:                 "prop_1",
		HostID:             "host_1",
		Title:              "Sea View Flat",
		PricePerNightCents: 10000,
		MaxGuests:          4,
		IsActive:           true,
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()
	checkIn := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		propertyRepo := new(MockPropertyRepo)
		svc := NewBookingService(bookingRepo, propertyRepo, new(MockUserRepo), new(MockPaymentsProvider), nil, 10, "eur")

		propertyRepo.On("GetByID", ctx, "prop_1").Return(activeProperty(), nil)
		bookingRepo.On("CountOverlapping", ctx, "prop_1", checkIn, checkOut).Return(0, nil)
		bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

		booking, err := svc.CreateBooking(ctx, "guest_1", CreateBookingInput{
			PropertyID: "prop_1",
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Guests:     2,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(20000), booking.TotalPriceCents)
		assert.Equal(t, domain.BookingStatusPending, booking.Status)
		assert.Equal(t, domain.PayoutStatusPending, booking.PayoutStatus)
		assert.NotEmpty(t, booking.ID)
	})

	t.Run("OverlapConflicts", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		propertyRepo := new(MockPropertyRepo)
		svc := NewBookingService(bookingRepo, propertyRepo, new(MockUserRepo), new(MockPaymentsProvider), nil, 10, "eur")

		propertyRepo.On("GetByID", ctx, "prop_1").Return(activeProperty(), nil)
		bookingRepo.On("CountOverlapping", ctx, "prop_1", checkIn, checkOut).Return(1, nil)

		_, err := svc.CreateBooking(ctx, "guest_1", CreateBookingInput{
			PropertyID: "prop_1",
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Guests:     2,
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
		bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("InactivePropertyRejected", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		propertyRepo := new(MockPropertyRepo)
		svc := NewBookingService(bookingRepo, propertyRepo, new(MockUserRepo), new(MockPaymentsProvider), nil, 10, "eur")

		p := activeProperty()
		p.IsActive = false
		propertyRepo.On("GetByID", ctx, "prop_1").Return(p, nil)

		_, err := svc.CreateBooking(ctx, "guest_1", CreateBookingInput{
			PropertyID: "prop_1",
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Guests:     2,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("TooManyGuests", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		propertyRepo := new(MockPropertyRepo)
		svc := NewBookingService(bookingRepo, propertyRepo, new(MockUserRepo), new(MockPaymentsProvider), nil, 10, "eur")

		propertyRepo.On("GetByID", ctx, "prop_1").Return(activeProperty(), nil)

		_, err := svc.CreateBooking(ctx, "guest_1", CreateBookingInput{
			PropertyID: "prop_1",
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Guests:     5,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestBookingService_ConfirmBooking(t *testing.T) {
	ctx := context.Background()

	pending := func() *domain.Booking {
		return &domain.Booking{
			ID:              "bk_1",
			PropertyID:      "prop_1",
			GuestID:         "guest_1",
			CheckIn:         time.Now().AddDate(0, 0, 7),
			CheckOut:        time.Now().AddDate(0, 0, 9),
			Guests:          2,
			TotalPriceCents: 20000,
			Status:          domain.BookingStatusPending,
			PayoutStatus:    domain.PayoutStatusPending,
		}
	}

	t.Run("SplitsFeeAndConfirms", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		propertyRepo := new(MockPropertyRepo)
		userRepo := new(MockUserRepo)
		emailSvc := new(MockEmailService)
		svc := NewBookingService(bookingRepo, propertyRepo, userRepo, new(MockPaymentsProvider), emailSvc, 10, "eur")

		bookingRepo.On("GetByID", ctx, "bk_1").Return(pending(), nil)
		// 10% of 20000 stays with the platform, the remainder goes to the host.
		bookingRepo.On("Confirm", ctx, "bk_1", "pi_1", int64(18000), int64(2000)).Return(true, nil)
		propertyRepo.On("GetByID", ctx, "prop_1").Return(activeProperty(), nil)
		userRepo.On("GetByID", ctx, "guest_1").Return(&domain.User{ID: "guest_1", Email: "guest@example.com", Name: "A Guest"}, nil)
		userRepo.On("GetByID", ctx, "host_1").Return(&domain.User{ID: "host_1", Email: "host@example.com", Name: "Some Host"}, nil)
		emailSvc.On("SendBookingConfirmed", ctx, "guest@example.com", mock.Anything, mock.Anything, mock.Anything, mock.Anything, int64(20000)).Return(nil)
		emailSvc.On("SendHostNewBooking", ctx, "host@example.com", mock.Anything, mock.Anything, mock.Anything, mock.Anything, int64(18000)).Return(nil)

		booking, err := svc.ConfirmBooking(ctx, "guest_1", "bk_1", "pi_1")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
		assert.Equal(t, int64(18000), booking.PayoutAmountCents)
		assert.Equal(t, int64(2000), booking.PlatformFeeCents)
		assert.Equal(t, "pi_1", booking.StripePaymentIntentID)
	})

	t.Run("ConcurrentConfirmConflicts", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := NewBookingService(bookingRepo, new(MockPropertyRepo), new(MockUserRepo), new(MockPaymentsProvider), nil, 10, "eur")

		bookingRepo.On("GetByID", ctx, "bk_1").Return(pending(), nil)
		bookingRepo.On("Confirm", ctx, "bk_1", "pi_1", int64(18000), int64(2000)).Return(false, nil)

		_, err := svc.ConfirmBooking(ctx, "guest_1", "bk_1", "pi_1")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("WrongGuestForbidden", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := NewBookingService(bookingRepo, new(MockPropertyRepo), new(MockUserRepo), new(MockPaymentsProvider), nil, 10, "eur")

		bookingRepo.On("GetByID", ctx, "bk_1").Return(pending(), nil)

		_, err := svc.ConfirmBooking(ctx, "guest_2", "bk_1", "pi_1")
		assert.ErrorIs(t, err, domain.ErrForbidden)
		bookingRepo.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MissingPaymentIntentRejected", func(t *testing.T) {
		svc := NewBookingService(new(MockBookingRepo), new(MockPropertyRepo), new(MockUserRepo), new(MockPaymentsProvider), nil, 10, "eur")

		_, err := svc.ConfirmBooking(ctx, "guest_1", "bk_1", "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestBookingService_CreatePaymentIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("StoresIntentID", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		provider := new(MockPaymentsProvider)
		svc := NewBookingService(bookingRepo, new(MockPropertyRepo), new(MockUserRepo), provider, nil, 10, "eur")

		bookingRepo.On("GetByID", ctx, "bk_1").Return(&domain.Booking{
			ID:              "bk_1",
			PropertyID:      "prop_1",
			GuestID:         "guest_1",
			TotalPriceCents: 20000,
			Status:          domain.BookingStatusPending,
		}, nil)
		provider.On("CreatePaymentIntent", ctx, int64(20000), "eur", mock.Anything).
			Return(&payments.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret"}, nil)
		bookingRepo.On("SetPaymentIntent", ctx, "bk_1", "pi_1").Return(nil)

		pi, err := svc.CreatePaymentIntent(ctx, "guest_1", "bk_1")
		assert.NoError(t, err)
		assert.Equal(t, "pi_1", pi.ID)
		bookingRepo.AssertCalled(t, "SetPaymentIntent", ctx, "bk_1", "pi_1")
	})

	t.Run("NonPendingConflicts", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := NewBookingService(bookingRepo, new(MockPropertyRepo), new(MockUserRepo), new(MockPaymentsProvider), nil, 10, "eur")

		bookingRepo.On("GetByID", ctx, "bk_1").Return(&domain.Booking{
			ID:      "bk_1",
			GuestID: "guest_1",
			Status:  domain.BookingStatusConfirmed,
		}, nil)

		_, err := svc.CreatePaymentIntent(ctx, "guest_1", "bk_1")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestBookingService_CancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("OnlyPendingCancellable", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := NewBookingService(bookingRepo, new(MockPropertyRepo), new(MockUserRepo), new(MockPaymentsProvider), nil, 10, "eur")

		bookingRepo.On("GetByID", ctx, "bk_1").Return(&domain.Booking{
			ID:      "bk_1",
			GuestID: "guest_1",
			Status:  domain.BookingStatusConfirmed,
		}, nil)

		_, err := svc.CancelBooking(ctx, "guest_1", "bk_1")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("CancelsPending", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := NewBookingService(bookingRepo, new(MockPropertyRepo), new(MockUserRepo), new(MockPaymentsProvider), nil, 10, "eur")

		bookingRepo.On("GetByID", ctx, "bk_1").Return(&domain.Booking{
			ID:      "bk_1",
			GuestID: "guest_1",
			Status:  domain.BookingStatusPending,
		}, nil)
		bookingRepo.On("UpdateStatus", ctx, "bk_1", domain.BookingStatusCancelled).Return(nil)

		booking, err := svc.CancelBooking(ctx, "guest_1", "bk_1")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, booking.Status)
	})
}
