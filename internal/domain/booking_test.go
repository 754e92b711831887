package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingOverlaps(t *testing.T) {
	b := &Booking{DateStart: date(10, 0), DateEnd: date(12, 0)}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		overlaps bool
	}{
		{"identical interval", date(10, 0), date(12, 0), true},
		{"contained interval", date(10, 30), date(11, 30), true},
		{"partial overlap left", date(9, 0), date(10, 30), true},
		{"partial overlap right", date(11, 30), date(13, 0), true},
		{"touching at start", date(8, 0), date(10, 0), false},
		{"touching at end", date(12, 0), date(14, 0), false},
		{"disjoint", date(13, 0), date(14, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, b.Overlaps(tt.start, tt.end))
		})
	}
}

func TestEffectiveStatus(t *testing.T) {
	now := date(15, 0)

	confirmedPast := &Booking{Status: StatusConfirmed, DateStart: date(10, 0), DateEnd: date(12, 0)}
	assert.Equal(t, StatusCompleted, confirmedPast.EffectiveStatus(now))

	confirmedFuture := &Booking{Status: StatusConfirmed, DateStart: date(16, 0), DateEnd: date(18, 0)}
	assert.Equal(t, StatusConfirmed, confirmedFuture.EffectiveStatus(now))

	// pending не становится completed, даже если интервал прошёл
	pendingPast := &Booking{Status: StatusPending, DateStart: date(10, 0), DateEnd: date(12, 0)}
	assert.Equal(t, StatusPending, pendingPast.EffectiveStatus(now))

	cancelled := &Booking{Status: StatusCancelled, DateStart: date(10, 0), DateEnd: date(12, 0)}
	assert.Equal(t, StatusCancelled, cancelled.EffectiveStatus(now))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusPending, StatusCompleted, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusConfirmed, StatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to),
			"transition %s -> %s", tt.from, tt.to)
	}
}

func TestTotalPriceFor(t *testing.T) {
	// Одинаковый вход даёт одинаковую цену
	price1 := TotalPriceFor(date(10, 0), date(12, 0), 1000)
	price2 := TotalPriceFor(date(10, 0), date(12, 0), 1000)
	assert.Equal(t, price1, price2)
	assert.Equal(t, 2000.0, price1)

	// Получасовая гранулярность без округления
	assert.Equal(t, 1500.0, TotalPriceFor(date(10, 0), date(11, 30), 1000))
	assert.Equal(t, 500.0, TotalPriceFor(date(10, 0), date(10, 30), 1000))
	assert.Equal(t, 1237.5, TotalPriceFor(date(10, 0), date(11, 30), 825))
}

func TestIsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
	assert.False(t, (&Booking{Status: StatusCompleted}).IsActive())
}
