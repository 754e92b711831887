package domain

// Slot grid parameters
// A venue's day is divided into a fixed grid of 30-minute slots from 08:00 to 23:00
const (
	OpenHour        = 8
	CloseHour       = 23
	SlotStepMinutes = 30

	// GridBoundariesPerDay количество границ слотов в дневной сетке (31 точка, 30 интервалов)
	GridBoundariesPerDay = (CloseHour-OpenHour)*60/SlotStepMinutes + 1
)

// Booking duration limits in hours
const (
	DefaultMinBookingDurationHours = 1.0
	DefaultMaxBookingDurationHours = 24.0
)

// Default cancellation policy: a confirmed booking may be cancelled
// while its start is at least this many minutes in the future
const DefaultCancellationNoticeMinutes = 24 * 60

// Business validation constants
const (
	MinRating                   = 1
	MaxRating                   = 5
	MaxCommentLength            = 2000
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, удерживающих интервал
// Используется при проверке пересечений и подсчёте занятых слотов
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
