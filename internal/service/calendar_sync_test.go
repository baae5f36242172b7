package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"homywork-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const sampleICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//Airbnb Inc//Hosting Calendar 0.8.8//EN
BEGIN:VEVENT
DTSTART;VALUE=DATE:20260901
DTEND;VALUE=DATE:20260903
SUMMARY:Reserved
END:VEVENT
BEGIN:VEVENT
DTSTART:20260910T140000Z
DTEND:20260911T100000Z
SUMMARY:Not available
END:VEVENT
END:VCALENDAR`

func TestParseICSEvents(t *testing.T) {
	t.Run("DateAndTimestampForms", func(t *testing.T) {
		events, err := parseICSEvents(strings.NewReader(sampleICS))
		assert.NoError(t, err)
		assert.Len(t, events, 2)

		assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), events[0].Start)
		assert.Equal(t, time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC), events[0].End)
		// Timestamps are truncated to dates.
		assert.Equal(t, time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC), events[1].Start)
		assert.Equal(t, time.Date(2026, time.September, 11, 0, 0, 0, 0, time.UTC), events[1].End)
	})

	t.Run("MissingDTENDBlocksOneNight", func(t *testing.T) {
		ics := "BEGIN:VCALENDAR\nBEGIN:VEVENT\nDTSTART;VALUE=DATE:20260901\nEND:VEVENT\nEND:VCALENDAR"
		events, err := parseICSEvents(strings.NewReader(ics))
		assert.NoError(t, err)
		assert.Len(t, events, 1)
		assert.Equal(t, events[0].Start.AddDate(0, 0, 1), events[0].End)
	})

	t.Run("UnfoldsContinuationLines", func(t *testing.T) {
		ics := "BEGIN:VCALENDAR\nBEGIN:VEVENT\nDTSTART;VALUE=DA\n TE:20260901\nEND:VEVENT\nEND:VCALENDAR"
		events, err := parseICSEvents(strings.NewReader(ics))
		assert.NoError(t, err)
		assert.Len(t, events, 1)
	})

	t.Run("EmptyCalendar", func(t *testing.T) {
		events, err := parseICSEvents(strings.NewReader("BEGIN:VCALENDAR\nEND:VCALENDAR"))
		assert.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestCalendarSyncService_SyncNow(t *testing.T) {
	ctx := context.Background()

	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		w.Write([]byte(sampleICS))
	}))
	defer feed.Close()

	syncRepo := new(MockCalendarSyncRepo)
	availabilityRepo := new(MockAvailabilityRepo)
	propertyRepo := new(MockPropertyRepo)
	svc := NewCalendarSyncService(syncRepo, availabilityRepo, propertyRepo, feed.Client())

	host := &domain.User{ID: "host_1", Role: domain.UserRoleHost}
	sync := &domain.CalendarSync{
		ID:         "cs_1",
		PropertyID: "prop_1",
		Platform:   "airbnb",
		URL:        feed.URL,
		IsActive:   true,
	}

	syncRepo.On("GetByID", ctx, "cs_1").Return(sync, nil)
	propertyRepo.On("GetByID", ctx, "prop_1").Return(&domain.Property{ID: "prop_1", HostID: "host_1"}, nil)
	availabilityRepo.On("DeleteBySource", ctx, "prop_1", domain.AvailabilitySourceICal).Return(nil)
	availabilityRepo.On("Upsert", ctx, mock.MatchedBy(func(entries []domain.Availability) bool {
		// Two nights from the first event plus one from the second, all
		// blocked with the ical source.
		if len(entries) != 3 {
			return false
		}
		for _, e := range entries {
			if e.IsAvailable || e.Source != domain.AvailabilitySourceICal || e.PropertyID != "prop_1" {
				return false
			}
		}
		return true
	})).Return(nil)
	syncRepo.On("SetLastSyncedAt", ctx, "cs_1", mock.AnythingOfType("time.Time")).Return(nil)

	result, err := svc.SyncNow(ctx, host, "cs_1")
	assert.NoError(t, err)
	assert.Equal(t, 2, result.EventsFound)
	assert.Equal(t, 3, result.DatesBlocked)
	availabilityRepo.AssertExpectations(t)
}

func TestCalendarSyncService_CreateSync(t *testing.T) {
	ctx := context.Background()
	host := &domain.User{ID: "host_1", Role: domain.UserRoleHost}

	t.Run("RejectsNonHTTPURL", func(t *testing.T) {
		propertyRepo := new(MockPropertyRepo)
		svc := NewCalendarSyncService(new(MockCalendarSyncRepo), new(MockAvailabilityRepo), propertyRepo, nil)

		propertyRepo.On("GetByID", ctx, "prop_1").Return(&domain.Property{ID: "prop_1", HostID: "host_1"}, nil)

		_, err := svc.CreateSync(ctx, host, "prop_1", "airbnb", "ftp://feed.example/cal.ics")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("ForbiddenForOtherHost", func(t *testing.T) {
		propertyRepo := new(MockPropertyRepo)
		svc := NewCalendarSyncService(new(MockCalendarSyncRepo), new(MockAvailabilityRepo), propertyRepo, nil)

		propertyRepo.On("GetByID", ctx, "prop_1").Return(&domain.Property{ID: "prop_1", HostID: "host_2"}, nil)

		_, err := svc.CreateSync(ctx, host, "prop_1", "airbnb", "https://feed.example/cal.ics")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
