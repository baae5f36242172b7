package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type PayoutStatus string

const (
	PayoutStatusPending    PayoutStatus = "pending"
	PayoutStatusProcessing PayoutStatus = "processing"
	PayoutStatusCompleted  PayoutStatus = "completed"
	PayoutStatusFailed     PayoutStatus = "failed"
)

// Booking is a guest's reservation of a property.
//
// PayoutStatus only ever advances: pending -> processing -> completed|failed.
// The processing state is a claim taken by the settlement job before calling
// the payments provider, so concurrent runs cannot double-pay a booking.
type Booking struct {
	ID                    string        `json:"id"`
	PropertyID            string        `json:"property_id"`
	GuestID               string        `json:"guest_id"`
	CheckIn               time.Time     `json:"check_in"`
	CheckOut              time.Time     `json:"check_out"`
	Guests                int32         `json:"guests"`
	TotalPriceCents       int64         `json:"total_price_cents"`
	Status                BookingStatus `json:"status"`
	PayoutStatus          PayoutStatus  `json:"payout_status"`
	PayoutAmountCents     int64         `json:"payout_amount_cents"`
	PlatformFeeCents      int64         `json:"platform_fee_cents"`
	StripePaymentIntentID string        `json:"stripe_payment_intent_id,omitempty"`
	StripeTransferID      string        `json:"stripe_transfer_id,omitempty"`
	PayoutDate            *time.Time    `json:"payout_date,omitempty"`
	CreatedOn             time.Time     `json:"created_on"`
}

// PayoutSummary aggregates one settlement run.
type PayoutSummary struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}
