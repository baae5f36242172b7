package service

import (
	"context"
	"fmt"

	"homywork-server/internal/domain"
	"homywork-server/internal/payments"
	"homywork-server/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
	provider payments.Provider
}

func NewUserService(userRepo repository.UserRepository, provider payments.Provider) UserService {
	return &userService{
		userRepo: userRepo,
		provider: provider,
	}
}

func (s *userService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// BecomeHost self-promotes a guest to host. Admins keep their role.
func (s *userService) BecomeHost(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role.CanHost() {
		return user, nil
	}
	if err := s.userRepo.UpdateRole(ctx, userID, domain.UserRoleHost); err != nil {
		return nil, fmt.Errorf("failed to promote user to host: %w", err)
	}
	user.Role = domain.UserRoleHost
	return user, nil
}

// StartStripeOnboarding creates the Express account on first call and
// returns an onboarding link the client redirects the host to.
func (s *userService) StartStripeOnboarding(ctx context.Context, userID, refreshURL, returnURL string) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.Role.CanHost() {
		return "", fmt.Errorf("%w: only hosts can onboard for payouts", domain.ErrForbidden)
	}

	accountID := user.StripeAccountID
	if accountID == "" {
		acct, err := s.provider.CreateAccount(ctx, user.Email)
		if err != nil {
			return "", fmt.Errorf("failed to create connected account: %w", err)
		}
		accountID = acct.ID
		if err := s.userRepo.UpdateStripeAccount(ctx, userID, accountID, false); err != nil {
			return "", fmt.Errorf("failed to store connected account: %w", err)
		}
	}

	link, err := s.provider.CreateAccountLink(ctx, accountID, refreshURL, returnURL)
	if err != nil {
		return "", fmt.Errorf("failed to create onboarding link: %w", err)
	}
	return link, nil
}

// RefreshStripeStatus re-reads the connected account and persists whether
// onboarding has completed.
func (s *userService) RefreshStripeStatus(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.StripeAccountID == "" {
		return user, nil
	}

	acct, err := s.provider.GetAccount(ctx, user.StripeAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up connected account: %w", err)
	}
	if acct.OnboardingComplete != user.StripeOnboardingComplete {
		if err := s.userRepo.UpdateStripeAccount(ctx, userID, user.StripeAccountID, acct.OnboardingComplete); err != nil {
			return nil, fmt.Errorf("failed to store onboarding status: %w", err)
		}
		user.StripeOnboardingComplete = acct.OnboardingComplete
	}
	return user, nil
}
