package service

import (
	"context"
	"testing"

	"homywork-server/internal/domain"
	"homywork-server/internal/payments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserService_BecomeHost(t *testing.T) {
	ctx := context.Background()

	t.Run("PromotesGuest", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewUserService(userRepo, new(MockPaymentsProvider))

		userRepo.On("GetByID", ctx, "u_1").Return(&domain.User{ID: "u_1", Role: domain.UserRoleGuest}, nil)
		userRepo.On("UpdateRole", ctx, "u_1", domain.UserRoleHost).Return(nil)

		user, err := svc.BecomeHost(ctx, "u_1")
		assert.NoError(t, err)
		assert.Equal(t, domain.UserRoleHost, user.Role)
	})

	t.Run("AdminKeepsRole", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewUserService(userRepo, new(MockPaymentsProvider))

		userRepo.On("GetByID", ctx, "u_1").Return(&domain.User{ID: "u_1", Role: domain.UserRoleAdmin}, nil)

		user, err := svc.BecomeHost(ctx, "u_1")
		assert.NoError(t, err)
		assert.Equal(t, domain.UserRoleAdmin, user.Role)
		userRepo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserService_StartStripeOnboarding(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesAccountOnce", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		provider := new(MockPaymentsProvider)
		svc := NewUserService(userRepo, provider)

		userRepo.On("GetByID", ctx, "u_1").Return(&domain.User{
			ID:    "u_1",
			Email: "host@example.com",
			Role:  domain.UserRoleHost,
		}, nil)
		provider.On("CreateAccount", ctx, "host@example.com").Return(&payments.Account{ID: "acct_1"}, nil)
		userRepo.On("UpdateStripeAccount", ctx, "u_1", "acct_1", false).Return(nil)
		provider.On("CreateAccountLink", ctx, "acct_1", "https://app/refresh", "https://app/return").
			Return("https://connect.stripe.com/setup/x", nil)

		link, err := svc.StartStripeOnboarding(ctx, "u_1", "https://app/refresh", "https://app/return")
		assert.NoError(t, err)
		assert.Contains(t, link, "connect.stripe.com")
	})

	t.Run("ReusesExistingAccount", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		provider := new(MockPaymentsProvider)
		svc := NewUserService(userRepo, provider)

		userRepo.On("GetByID", ctx, "u_1").Return(&domain.User{
			ID:              "u_1",
			Role:            domain.UserRoleHost,
			StripeAccountID: "acct_1",
		}, nil)
		provider.On("CreateAccountLink", ctx, "acct_1", "r", "c").Return("https://connect.stripe.com/setup/y", nil)

		_, err := svc.StartStripeOnboarding(ctx, "u_1", "r", "c")
		assert.NoError(t, err)
		provider.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
	})

	t.Run("GuestForbidden", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewUserService(userRepo, new(MockPaymentsProvider))

		userRepo.On("GetByID", ctx, "u_1").Return(&domain.User{ID: "u_1", Role: domain.UserRoleGuest}, nil)

		_, err := svc.StartStripeOnboarding(ctx, "u_1", "r", "c")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestUserService_RefreshStripeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("PersistsCompletedOnboarding", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		provider := new(MockPaymentsProvider)
		svc := NewUserService(userRepo, provider)

		userRepo.On("GetByID", ctx, "u_1").Return(&domain.User{
			ID:              "u_1",
			Role:            domain.UserRoleHost,
			StripeAccountID: "acct_1",
		}, nil)
		provider.On("GetAccount", ctx, "acct_1").Return(&payments.Account{ID: "acct_1", OnboardingComplete: true}, nil)
		userRepo.On("UpdateStripeAccount", ctx, "u_1", "acct_1", true).Return(nil)

		user, err := svc.RefreshStripeStatus(ctx, "u_1")
		assert.NoError(t, err)
		assert.True(t, user.StripeOnboardingComplete)
	})

	t.Run("NoAccountIsNoOp", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		provider := new(MockPaymentsProvider)
		svc := NewUserService(userRepo, provider)

		userRepo.On("GetByID", ctx, "u_1").Return(&domain.User{ID: "u_1", Role: domain.UserRoleHost}, nil)

		_, err := svc.RefreshStripeStatus(ctx, "u_1")
		assert.NoError(t, err)
		provider.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything)
	})
}
