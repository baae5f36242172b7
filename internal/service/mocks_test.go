package service

import (
	"context"
	"time"

	"homywork-server/internal/domain"
	"homywork-server/internal/payments"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Upsert(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateRole(ctx context.Context, userID string, role domain.UserRole) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}
func (m *MockUserRepo) UpdateStripeAccount(ctx context.Context, userID, stripeAccountID string, onboardingComplete bool) error {
	args := m.Called(ctx, userID, stripeAccountID, onboardingComplete)
	return args.Error(0)
}
func (m *MockUserRepo) ListAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockPropertyRepo
type MockPropertyRepo struct {
	mock.Mock
}

func (m *MockPropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPropertyRepo) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) ListActive(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) ListByHost(ctx context.Context, hostID string) ([]domain.Property, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).([]domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) ListAll(ctx context.Context) ([]domain.Property, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) Update(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPropertyRepo) UpdateStatus(ctx context.Context, id string, isActive bool) error {
	args := m.Called(ctx, id, isActive)
	return args.Error(0)
}
func (m *MockPropertyRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByGuest(ctx context.Context, guestID string) ([]domain.Booking, error) {
	args := m.Called(ctx, guestID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByHost(ctx context.Context, hostID string) ([]domain.Booking, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) CountOverlapping(ctx context.Context, propertyID string, checkIn, checkOut time.Time) (int, error) {
	args := m.Called(ctx, propertyID, checkIn, checkOut)
	return args.Int(0), args.Error(1)
}
func (m *MockBookingRepo) SetPaymentIntent(ctx context.Context, id, paymentIntentID string) error {
	args := m.Called(ctx, id, paymentIntentID)
	return args.Error(0)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockBookingRepo) Confirm(ctx context.Context, id, paymentIntentID string, payoutAmountCents, platformFeeCents int64) (bool, error) {
	args := m.Called(ctx, id, paymentIntentID, payoutAmountCents, platformFeeCents)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) ListEligibleForPayout(ctx context.Context, before time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ClaimPayout(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) MarkPayoutCompleted(ctx context.Context, id, transferID string, payoutDate time.Time) error {
	args := m.Called(ctx, id, transferID, payoutDate)
	return args.Error(0)
}
func (m *MockBookingRepo) MarkPayoutFailed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAvailabilityRepo
type MockAvailabilityRepo struct {
	mock.Mock
}

func (m *MockAvailabilityRepo) ListByProperty(ctx context.Context, propertyID string) ([]domain.Availability, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]domain.Availability), args.Error(1)
}
func (m *MockAvailabilityRepo) Upsert(ctx context.Context, entries []domain.Availability) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}
func (m *MockAvailabilityRepo) DeleteBySource(ctx context.Context, propertyID string, source domain.AvailabilitySource) error {
	args := m.Called(ctx, propertyID, source)
	return args.Error(0)
}

// MockCalendarSyncRepo
type MockCalendarSyncRepo struct {
	mock.Mock
}

func (m *MockCalendarSyncRepo) Create(ctx context.Context, cs *domain.CalendarSync) error {
	args := m.Called(ctx, cs)
	return args.Error(0)
}
func (m *MockCalendarSyncRepo) GetByID(ctx context.Context, id string) (*domain.CalendarSync, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalendarSync), args.Error(1)
}
func (m *MockCalendarSyncRepo) ListByProperty(ctx context.Context, propertyID string) ([]domain.CalendarSync, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]domain.CalendarSync), args.Error(1)
}
func (m *MockCalendarSyncRepo) ListActive(ctx context.Context) ([]domain.CalendarSync, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CalendarSync), args.Error(1)
}
func (m *MockCalendarSyncRepo) SetLastSyncedAt(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
func (m *MockCalendarSyncRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, r *domain.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReviewRepo) GetByBooking(ctx context.Context, bookingID string) (*domain.Review, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}
func (m *MockReviewRepo) ListByProperty(ctx context.Context, propertyID string) ([]domain.Review, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]domain.Review), args.Error(1)
}
func (m *MockReviewRepo) AverageRating(ctx context.Context, propertyID string) (float64, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).(float64), args.Error(1)
}

// MockPaymentsProvider
type MockPaymentsProvider struct {
	mock.Mock
}

func (m *MockPaymentsProvider) CreateTransfer(ctx context.Context, req payments.TransferRequest) (*payments.Transfer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Transfer), args.Error(1)
}
func (m *MockPaymentsProvider) CreatePaymentIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*payments.PaymentIntent, error) {
	args := m.Called(ctx, amountCents, currency, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.PaymentIntent), args.Error(1)
}
func (m *MockPaymentsProvider) CreateAccount(ctx context.Context, email string) (*payments.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Account), args.Error(1)
}
func (m *MockPaymentsProvider) CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error) {
	args := m.Called(ctx, accountID, refreshURL, returnURL)
	return args.String(0), args.Error(1)
}
func (m *MockPaymentsProvider) GetAccount(ctx context.Context, accountID string) (*payments.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Account), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingConfirmed(ctx context.Context, guestEmail, guestName, propertyTitle string, checkIn, checkOut time.Time, totalCents int64) error {
	args := m.Called(ctx, guestEmail, guestName, propertyTitle, checkIn, checkOut, totalCents)
	return args.Error(0)
}
func (m *MockEmailService) SendHostNewBooking(ctx context.Context, hostEmail, hostName, propertyTitle string, checkIn, checkOut time.Time, payoutCents int64) error {
	args := m.Called(ctx, hostEmail, hostName, propertyTitle, checkIn, checkOut, payoutCents)
	return args.Error(0)
}
func (m *MockEmailService) SendPayoutCompleted(ctx context.Context, hostEmail, hostName, propertyTitle string, amountCents int64) error {
	args := m.Called(ctx, hostEmail, hostName, propertyTitle, amountCents)
	return args.Error(0)
}
