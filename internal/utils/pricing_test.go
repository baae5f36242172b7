package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNights(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("TwoNights", func(t *testing.T) {
		assert.Equal(t, 2, Nights(day(10), day(12)))
	})

	t.Run("SameDay", func(t *testing.T) {
		assert.Equal(t, 0, Nights(day(10), day(10)))
	})

	t.Run("InvertedRange", func(t *testing.T) {
		assert.Equal(t, 0, Nights(day(12), day(10)))
	})

	t.Run("IgnoresTimeOfDay", func(t *testing.T) {
		in := time.Date(2026, time.March, 10, 23, 30, 0, 0, time.UTC)
		out := time.Date(2026, time.March, 11, 1, 0, 0, 0, time.UTC)
		assert.Equal(t, 1, Nights(in, out))
	})
}

func TestSplitPlatformFee(t *testing.T) {
	t.Run("TenPercent", func(t *testing.T) {
		fee, payout := SplitPlatformFee(10000, 10)
		assert.Equal(t, int64(1000), fee)
		assert.Equal(t, int64(9000), payout)
	})

	t.Run("RoundsFeeDown", func(t *testing.T) {
		fee, payout := SplitPlatformFee(10005, 10)
		assert.Equal(t, int64(1000), fee)
		assert.Equal(t, int64(9005), payout)
	})

	t.Run("SumsToTotal", func(t *testing.T) {
		for _, total := range []int64{1, 99, 12345, 20000} {
			fee, payout := SplitPlatformFee(total, 10)
			assert.Equal(t, total, fee+payout)
		}
	})

	t.Run("ZeroFee", func(t *testing.T) {
		fee, payout := SplitPlatformFee(5000, 0)
		assert.Equal(t, int64(0), fee)
		assert.Equal(t, int64(5000), payout)
	})
}
