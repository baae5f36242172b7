package domain

import "time"

type AvailabilitySource string

const (
	AvailabilitySourceManual AvailabilitySource = "manual"
	AvailabilitySourceICal   AvailabilitySource = "ical"
)

// Availability is a per-property per-date flag. Rows only exist for dates a
// host or a calendar sync has touched; absent dates are available.
type Availability struct {
	PropertyID  string             `json:"property_id"`
	Date        time.Time          `json:"date"`
	IsAvailable bool               `json:"is_available"`
	Source      AvailabilitySource `json:"source"`
}
