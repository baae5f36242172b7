package service

import (
	"context"
	"fmt"
	"strings"

	"homywork-server/internal/domain"
	"homywork-server/internal/repository"
	"homywork-server/internal/security"
)

type authService struct {
	userRepo    repository.UserRepository
	tokens      security.TokenManager
	adminEmails map[string]bool
}

// NewAuthService builds the auth bridge. adminEmails only seeds the role of
// a user the first time they log in; after that the database role column is
// authoritative.
func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, adminEmails []string) AuthService {
	seeds := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		seeds[strings.ToLower(e)] = true
	}
	return &authService{
		userRepo:    userRepo,
		tokens:      tokens,
		adminEmails: seeds,
	}
}

func (s *authService) LoginWithGoogle(ctx context.Context, profile GoogleProfile) (*domain.User, string, error) {
	if profile.Sub == "" || profile.Email == "" {
		return nil, "", fmt.Errorf("%w: identity provider returned no subject or email", domain.ErrUnauthenticated)
	}

	role := domain.UserRoleGuest
	if s.adminEmails[strings.ToLower(profile.Email)] {
		role = domain.UserRoleAdmin
	}

	user := &domain.User{
		ID:      profile.Sub,
		Email:   profile.Email,
		Name:    profile.Name,
		Picture: profile.Picture,
		Role:    role,
	}
	// Upsert keeps the stored role on conflict; the seed role only applies
	// to brand-new users.
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to upsert user: %w", err)
	}

	token, err := s.tokens.GenerateSessionToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return user, token, nil
}

func (s *authService) GetSessionUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.ValidateSessionToken(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	user, err := s.userRepo.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}
