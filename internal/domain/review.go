package domain

import "time"

// Review is a guest rating for a completed stay. One review per booking.
type Review struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	BookingID  string    `json:"booking_id"`
	GuestID    string    `json:"guest_id"`
	Rating     int32     `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedOn  time.Time `json:"created_on"`

	// Reviewer display fields, populated on reads that join users.
	GuestName    string `json:"guest_name,omitempty"`
	GuestPicture string `json:"guest_picture,omitempty"`
}
