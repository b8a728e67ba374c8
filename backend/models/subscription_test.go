package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionPayment(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{PaymentPending, PaymentCompleted, true},
		{PaymentPending, PaymentFailed, true},
		{PaymentPending, PaymentCancelled, true},
		{PaymentPending, PaymentPending, false},
		{PaymentCompleted, PaymentCancelled, true},
		{PaymentCompleted, PaymentPending, false},
		{PaymentCompleted, PaymentFailed, false},
		{PaymentFailed, PaymentPending, true},
		{PaymentFailed, PaymentCancelled, true},
		{PaymentFailed, PaymentCompleted, false},
		{PaymentCancelled, PaymentPending, false},
		{PaymentCancelled, PaymentCompleted, false},
		{PaymentCancelled, PaymentFailed, false},
		{"unknown", PaymentCompleted, false},
		{PaymentPending, "refunded", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransitionPayment(tc.from, tc.to),
			"transition %s -> %s", tc.from, tc.to)
	}
}

func TestSubscriptionIsActive(t *testing.T) {
	start := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
	end := time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)

	sub := Subscription{
		PaymentStatus: PaymentCompleted,
		StartDate:     start,
		EndDate:       end,
	}

	// Boundary days count, regardless of the time of day
	assert.True(t, sub.IsActive(time.Date(2026, time.March, 10, 0, 0, 1, 0, time.UTC)))
	assert.True(t, sub.IsActive(time.Date(2026, time.June, 10, 23, 59, 59, 0, time.UTC)))
	assert.True(t, sub.IsActive(time.Date(2026, time.April, 20, 12, 0, 0, 0, time.UTC)))

	// Outside the window
	assert.False(t, sub.IsActive(time.Date(2026, time.March, 9, 23, 59, 59, 0, time.UTC)))
	assert.False(t, sub.IsActive(time.Date(2026, time.June, 11, 0, 0, 0, 0, time.UTC)))

	// Anything but completed payment is inactive even inside the window
	for _, status := range []string{PaymentPending, PaymentFailed, PaymentCancelled} {
		sub.PaymentStatus = status
		assert.False(t, sub.IsActive(time.Date(2026, time.April, 20, 12, 0, 0, 0, time.UTC)), status)
	}
}

func TestSubscriptionIsExpired(t *testing.T) {
	sub := Subscription{
		EndDate: time.Date(2026, time.May, 1, 8, 0, 0, 0, time.UTC),
	}

	// The end day itself is not expired yet
	assert.False(t, sub.IsExpired(time.Date(2026, time.May, 1, 23, 0, 0, 0, time.UTC)))
	assert.True(t, sub.IsExpired(time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC)))
	assert.False(t, sub.IsExpired(time.Date(2026, time.April, 30, 12, 0, 0, 0, time.UTC)))
}
