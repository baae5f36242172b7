package utils

import "time"

// Nights returns the number of nights between check-in and check-out.
// A same-day or inverted range yields zero.
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	n := int(out.Sub(in).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// SplitPlatformFee splits a booking total into the platform fee and the
// host payout. The fee is feePercent of the total, rounded down; the payout
// is the remainder, so fee + payout always equals total.
func SplitPlatformFee(totalCents int64, feePercent int) (feeCents, payoutCents int64) {
	feeCents = totalCents * int64(feePercent) / 100
	payoutCents = totalCents - feeCents
	return feeCents, payoutCents
}
