package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a venue reservation for a half-open interval [DateStart, DateEnd)
type Booking struct {
	ID         int64
	UserID     int64
	VenueID    int64
	DateStart  time.Time
	DateEnd    time.Time
	Status     BookingStatus
	TotalPrice float64
	HasReview  bool

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking holds its interval
// (pending and confirmed bookings participate in the overlap set)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Overlaps reports whether the booking interval intersects [start, end).
// Touching intervals (one ends exactly where the other starts) do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.DateStart.Before(end) && start.Before(b.DateEnd)
}

// IsPast returns true once the booking interval has fully elapsed
func (b *Booking) IsPast(now time.Time) bool {
	return b.DateEnd.Before(now)
}

// EffectiveStatus returns the status with the derived "completed" state applied:
// a confirmed booking whose end has passed is completed. The completed state is
// computed on read and never stored.
func (b *Booking) EffectiveStatus(now time.Time) BookingStatus {
	if b.Status == StatusConfirmed && b.IsPast(now) {
		return StatusCompleted
	}
	return b.Status
}

// CanBeCancelled returns true if the booking status permits cancellation.
// The cancellation-window check for confirmed bookings is a separate policy
// applied by the bookings service.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransition централизованная проверка переходов статусов
// cancelled и completed - терминальные состояния без исходящих переходов
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled || to == StatusCompleted
	default:
		return false
	}
}

// TotalPriceFor computes the booking price: exact duration in hours
// (0.5-granular on the slot grid) times the venue's hourly rate, no rounding.
func TotalPriceFor(start, end time.Time, pricePerHour float64) float64 {
	return end.Sub(start).Hours() * pricePerHour
}

// VenueBookingsFilter фильтр для выборки бронирований площадки
type VenueBookingsFilter struct {
	VenueID         int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
}
