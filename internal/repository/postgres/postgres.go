package postgres

import (
	"database/sql"

	"homywork-server/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.PropertyRepository
	repository.BookingRepository
	repository.AvailabilityRepository
	repository.CalendarSyncRepository
	repository.ReviewRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		PropertyRepository:     NewPropertyRepository(db),
		BookingRepository:      NewBookingRepository(db),
		AvailabilityRepository: NewAvailabilityRepository(db),
		CalendarSyncRepository: NewCalendarSyncRepository(db),
		ReviewRepository:       NewReviewRepository(db),
	}
}
