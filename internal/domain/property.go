package domain

import "time"

// Property is a listed rental unit. Prices are integer euro cents.
type Property struct {
	ID                 string    `json:"id"`
	HostID             string    `json:"host_id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	City               string    `json:"city"`
	Address            string    `json:"address"`
	PricePerNightCents int64     `json:"price_per_night_cents"`
	MaxGuests          int32     `json:"max_guests"`
	Bedrooms           int32     `json:"bedrooms"`
	Images             []string  `json:"images"`
	Amenities          []string  `json:"amenities"`
	IsActive           bool      `json:"is_active"`
	CreatedOn          time.Time `json:"created_on"`
	UpdatedOn          time.Time `json:"updated_on"`
}

// PropertyWithHost is a property joined with its host and review rollup,
// served by the public detail endpoint.
type PropertyWithHost struct {
	Property
	Host          *User    `json:"host"`
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"average_rating"`
}

// PropertyFilter narrows the public listing query. MaxPriceCents of zero
// means no price cap.
type PropertyFilter struct {
	City          string
	MaxPriceCents int64
}
