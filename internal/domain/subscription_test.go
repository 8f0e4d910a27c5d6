package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscription_IsActive(t *testing.T) {
	t.Parallel()

	today := time.Date(2025, time.April, 10, 15, 30, 0, 0, time.UTC)
	yesterday := day(2025, time.April, 9)
	todayDate := day(2025, time.April, 10)
	tomorrow := day(2025, time.April, 11)

	tests := []struct {
		name string
		sub  *Subscription
		want bool
	}{
		{name: "no record", sub: nil, want: false},
		{name: "opt-in without expiry", sub: &Subscription{UserID: 1}, want: false},
		{name: "expired yesterday", sub: &Subscription{UserID: 1, ExpiresAt: &yesterday}, want: false},
		{name: "expires today", sub: &Subscription{UserID: 1, ExpiresAt: &todayDate}, want: true},
		{name: "expires tomorrow", sub: &Subscription{UserID: 1, ExpiresAt: &tomorrow}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sub.IsActive(today))
		})
	}
}

func TestGrantExpiry(t *testing.T) {
	t.Parallel()

	assert.Equal(t, day(2025, time.February, 28), GrantExpiry(time.Date(2025, time.January, 29, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, day(2026, time.January, 30), GrantExpiry(day(2025, time.December, 31)))
}
