package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homywork-server/internal/domain"
	"homywork-server/internal/repository"

	"github.com/google/uuid"
)

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookingRepo repository.BookingRepository) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
	}
}

// CreateReview records the guest's rating for a finished stay. One review
// per booking; only the booking's guest may write it, and only after
// check-out.
func (s *reviewService) CreateReview(ctx context.Context, guestID, bookingID string, rating int32, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.GuestID != guestID {
		return nil, fmt.Errorf("%w: booking belongs to another guest", domain.ErrForbidden)
	}
	if booking.Status != domain.BookingStatusConfirmed && booking.Status != domain.BookingStatusCompleted {
		return nil, fmt.Errorf("%w: only confirmed stays can be reviewed", domain.ErrValidation)
	}
	if booking.CheckOut.After(time.Now()) {
		return nil, fmt.Errorf("%w: stay has not ended yet", domain.ErrValidation)
	}

	existing, err := s.reviewRepo.GetByBooking(ctx, bookingID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: booking already reviewed", domain.ErrConflict)
	}

	review := &domain.Review{
		ID:         uuid.New().String(),
		PropertyID: booking.PropertyID,
		BookingID:  bookingID,
		GuestID:    guestID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListPropertyReviews(ctx context.Context, propertyID string) ([]domain.Review, float64, error) {
	reviews, err := s.reviewRepo.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, 0, err
	}
	avg, err := s.reviewRepo.AverageRating(ctx, propertyID)
	if err != nil {
		return nil, 0, err
	}
	return reviews, avg, nil
}
