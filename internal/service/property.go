package service

import (
	"context"
	"fmt"

	"homywork-server/internal/domain"
	"homywork-server/internal/repository"

	"github.com/google/uuid"
)

type propertyService struct {
	propertyRepo repository.PropertyRepository
	userRepo     repository.UserRepository
	reviewRepo   repository.ReviewRepository
}

func NewPropertyService(
	propertyRepo repository.PropertyRepository,
	userRepo repository.UserRepository,
	reviewRepo repository.ReviewRepository,
) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		reviewRepo:   reviewRepo,
	}
}

func (s *propertyService) ListPublic(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	return s.propertyRepo.ListActive(ctx, filter)
}

func (s *propertyService) GetPublic(ctx context.Context, id string) (*domain.PropertyWithHost, error) {
	p, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	host, err := s.userRepo.GetByID(ctx, p.HostID)
	if err != nil {
		return nil, fmt.Errorf("failed to load property host: %w", err)
	}
	// Never expose the host's payout account through the public endpoint.
	host.StripeAccountID = ""

	reviews, err := s.reviewRepo.ListByProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	avg, err := s.reviewRepo.AverageRating(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.PropertyWithHost{
		Property:      *p,
		Host:          host,
		Reviews:       reviews,
		AverageRating: avg,
	}, nil
}

func (s *propertyService) ListByHost(ctx context.Context, hostID string) ([]domain.Property, error) {
	return s.propertyRepo.ListByHost(ctx, hostID)
}

func (s *propertyService) Create(ctx context.Context, host *domain.User, p *domain.Property) error {
	if !host.Role.CanHost() {
		return fmt.Errorf("%w: only hosts can list properties", domain.ErrForbidden)
	}
	if err := validateProperty(p); err != nil {
		return err
	}

	p.ID = uuid.New().String()
	p.HostID = host.ID
	p.IsActive = true
	return s.propertyRepo.Create(ctx, p)
}

func (s *propertyService) Update(ctx context.Context, requester *domain.User, p *domain.Property) (*domain.Property, error) {
	existing, err := s.propertyRepo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if err := requireOwnership(requester, existing.HostID); err != nil {
		return nil, err
	}
	if err := validateProperty(p); err != nil {
		return nil, err
	}

	p.HostID = existing.HostID
	p.CreatedOn = existing.CreatedOn
	if err := s.propertyRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *propertyService) Delete(ctx context.Context, requester *domain.User, id string) error {
	existing, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnership(requester, existing.HostID); err != nil {
		return err
	}
	return s.propertyRepo.Delete(ctx, id)
}

func validateProperty(p *domain.Property) error {
	if p.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if p.PricePerNightCents <= 0 {
		return fmt.Errorf("%w: price per night must be positive", domain.ErrValidation)
	}
	if p.MaxGuests <= 0 {
		return fmt.Errorf("%w: max guests must be positive", domain.ErrValidation)
	}
	return nil
}

// requireOwnership allows the owning host and admins through.
func requireOwnership(requester *domain.User, hostID string) error {
	if requester.ID == hostID || requester.Role == domain.UserRoleAdmin {
		return nil
	}
	return fmt.Errorf("%w: property belongs to another host", domain.ErrForbidden)
}
