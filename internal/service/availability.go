package service

import (
	"context"
	"fmt"
	"time"

	"homywork-server/internal/domain"
	"homywork-server/internal/repository"
)

type availabilityService struct {
	availabilityRepo repository.AvailabilityRepository
	propertyRepo     repository.PropertyRepository
}

func NewAvailabilityService(
	availabilityRepo repository.AvailabilityRepository,
	propertyRepo repository.PropertyRepository,
) AvailabilityService {
	return &availabilityService{
		availabilityRepo: availabilityRepo,
		propertyRepo:     propertyRepo,
	}
}

func (s *availabilityService) ListAvailability(ctx context.Context, propertyID string) ([]domain.Availability, error) {
	if _, err := s.propertyRepo.GetByID(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.availabilityRepo.ListByProperty(ctx, propertyID)
}

// SetAvailability writes manual per-date availability for a property. Only
// the owning host (or an admin) may change it; synced feed entries are left
// untouched.
func (s *availabilityService) SetAvailability(ctx context.Context, requester *domain.User, propertyID string, dates []time.Time, isAvailable bool) error {
	if len(dates) == 0 {
		return fmt.Errorf("%w: at least one date is required", domain.ErrValidation)
	}

	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if err := requireOwnership(requester, property.HostID); err != nil {
		return err
	}

	entries := make([]domain.Availability, 0, len(dates))
	for _, d := range dates {
		entries = append(entries, domain.Availability{
			PropertyID:  propertyID,
			Date:        time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
			IsAvailable: isAvailable,
			Source:      domain.AvailabilitySourceManual,
		})
	}
	return s.availabilityRepo.Upsert(ctx, entries)
}
