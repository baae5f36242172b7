package domain

import "time"

// CalendarSync links a property to an external ICS feed (Airbnb,
// Booking.com, ...). Blocked date ranges from the feed are mirrored into the
// availability table with source "ical".
type CalendarSync struct {
	ID           string     `json:"id"`
	PropertyID   string     `json:"property_id"`
	Platform     string     `json:"platform"`
	URL          string     `json:"url"`
	IsActive     bool       `json:"is_active"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	CreatedOn    time.Time  `json:"created_on"`
}

// CalendarSyncResult reports one feed refresh.
type CalendarSyncResult struct {
	SyncID       string `json:"sync_id"`
	EventsFound  int    `json:"events_found"`
	DatesBlocked int    `json:"dates_blocked"`
}
