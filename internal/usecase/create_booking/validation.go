package create_booking

import (
	"fmt"
	"time"

	"github.com/rentalall/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.DateStart.IsZero() || req.DateEnd.IsZero() {
		return fmt.Errorf("%w: dateStart and dateEnd are required", ErrInvalidInput)
	}

	return nil
}

// validateAlignment проверяет, что обе границы интервала лежат на сетке:
// кратны 30 минутам от полуночи и попадают в рабочее окно 08:00-23:00.
// Границы вне рабочего окна сеткой не порождаются, поэтому отклоняются
// той же ошибкой, что и некратные времена.
func validateAlignment(start, end time.Time) error {
	if !domain.IsGridAligned(start) || !domain.IsGridAligned(end) {
		return ErrInvalidAlignment
	}
	if !domain.WithinOperatingHours(start, end) {
		return ErrInvalidAlignment
	}
	return nil
}

// validateRange проверяет порядок границ и ограничения длительности
func validateRange(start, end time.Time, policy Policy) error {
	if !start.Before(end) {
		return ErrInvalidRange
	}

	hours := end.Sub(start).Hours()
	if hours < policy.MinDurationHours {
		return fmt.Errorf("%w: minimum duration is %.1f hours", ErrDurationOutOfRange, policy.MinDurationHours)
	}
	if hours > policy.MaxDurationHours {
		return fmt.Errorf("%w: maximum duration is %.1f hours", ErrDurationOutOfRange, policy.MaxDurationHours)
	}

	return nil
}

// validateNotPast проверяет, что начало не в прошлом
// Текущий момент усекается вниз до 30-минутной границы: слот, на границе
// которого мы сейчас находимся, ещё считается доступным
func validateNotPast(start, now time.Time) error {
	if start.Before(domain.TruncateToSlot(now)) {
		return ErrPastStart
	}
	return nil
}

// findConflict ищет активное бронирование, пересекающееся с [start, end)
// Пересечение: A.start < B.end AND B.start < A.end - касание границами
// конфликтом не является
func findConflict(start, end time.Time, bookings []*domain.Booking) *domain.Booking {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if b.Overlaps(start, end) {
			return b
		}
	}
	return nil
}
