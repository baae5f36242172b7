package service

import (
	"context"
	"fmt"

	"homywork-server/internal/domain"
	"homywork-server/internal/repository"
)

type adminService struct {
	userRepo     repository.UserRepository
	propertyRepo repository.PropertyRepository
}

func NewAdminService(userRepo repository.UserRepository, propertyRepo repository.PropertyRepository) AdminService {
	return &adminService{
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListAll(ctx)
}

func (s *adminService) SetUserRole(ctx context.Context, userID string, role domain.UserRole) (*domain.User, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}
	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

func (s *adminService) ListProperties(ctx context.Context) ([]domain.Property, error) {
	return s.propertyRepo.ListAll(ctx)
}

func (s *adminService) SetPropertyStatus(ctx context.Context, propertyID string, isActive bool) (*domain.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.IsActive == isActive {
		return property, nil
	}
	if err := s.propertyRepo.UpdateStatus(ctx, propertyID, isActive); err != nil {
		return nil, err
	}
	property.IsActive = isActive
	return property, nil
}
