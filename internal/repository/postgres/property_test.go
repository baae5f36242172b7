package postgres

import (
	"context"
	"testing"
	"time"

	"homywork-server/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestPropertyRepository_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPropertyRepository(db)
	ctx := context.Background()
	now := time.Now()

	cols := []string{"id", "host_id", "title", "description", "city", "address", "price_per_night_cents", "max_guests", "bedrooms", "images", "amenities", "is_active", "created_on", "updated_on"}

	t.Run("NoFilter", func(t *testing.T) {
		rows := sqlmock.NewRows(cols).
			AddRow("prop_1", "host_1", "Sea View Flat", "", "Lisbon", "", 12000, 4, 2, pq.Array([]string{"a.jpg"}), pq.Array([]string{"wifi"}), true, now, now)

		mock.ExpectQuery("SELECT (.+) FROM properties WHERE is_active = TRUE").
			WillReturnRows(rows)

		props, err := repo.ListActive(ctx, domain.PropertyFilter{})
		assert.NoError(t, err)
		assert.Len(t, props, 1)
		assert.Equal(t, "Sea View Flat", props[0].Title)
		assert.Equal(t, []string{"wifi"}, props[0].Amenities)
	})

	t.Run("CityAndPriceFilter", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM properties WHERE is_active = TRUE AND city = (.+) AND price_per_night_cents <= ").
			WithArgs("Lisbon", int64(15000)).
			WillReturnRows(sqlmock.NewRows(cols))

		props, err := repo.ListActive(ctx, domain.PropertyFilter{City: "Lisbon", MaxPriceCents: 15000})
		assert.NoError(t, err)
		assert.Empty(t, props)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPropertyRepository(db)
	ctx := context.Background()

	p := &domain.Property{
		ID:                 "prop_1",
		HostID:             "host_1",
		Title:              "Sea View Flat",
		City:               "Lisbon",
		PricePerNightCents: 12000,
		MaxGuests:          4,
		Bedrooms:           2,
		Images:             []string{"a.jpg"},
		Amenities:          []string{"wifi"},
		IsActive:           true,
	}

	mock.ExpectExec("INSERT INTO properties").
		WithArgs("prop_1", "host_1", "Sea View Flat", "", "Lisbon", "", int64(12000), int32(4), int32(2), pq.Array(p.Images), pq.Array(p.Amenities), true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(ctx, p)
	assert.NoError(t, err)
	assert.False(t, p.CreatedOn.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
