package get_occupied_slots

import (
	"sort"
	"time"

	"github.com/rentalall/booking-service/internal/domain"
	"github.com/rentalall/booking-service/pkg/types"
)

// buildOccupiedRanges собирает занятые интервалы из активных бронирований,
// упорядоченные по возрастанию начала
func buildOccupiedRanges(bookings []*domain.Booking) []domain.OccupiedRange {
	ranges := make([]domain.OccupiedRange, 0, len(bookings))

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		ranges = append(ranges, domain.OccupiedRange{Start: b.DateStart, End: b.DateEnd})
	}

	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start.Before(ranges[j].Start)
	})

	return ranges
}

// projectSlots строит послотовую проекцию занятости на дневную сетку даты
//
// Граница t занята, если попадает внутрь любого занятого интервала:
// occStart <= t < occEnd. Граница в прошлом, если она строго раньше
// текущего момента, усечённого вниз до 30-минутной границы - на сегодняшней
// дате это исключает прошедшие слоты из выбора начала, на будущих датах
// прошедших слотов нет, на прошедших датах в прошлом весь день.
//
// Последняя граница сетки (закрытие, 23:00) в проекцию не входит:
// началом бронирования она быть не может.
func projectSlots(date time.Time, ranges []domain.OccupiedRange, now time.Time) []Slot {
	grid := domain.DayGrid(date)
	starts := grid[:len(grid)-1]
	cutoff := domain.TruncateToSlot(now)

	slots := make([]Slot, 0, len(starts))
	for _, t := range starts {
		slots = append(slots, Slot{
			Time:     types.NewTimeString(t),
			Occupied: isOccupied(t, ranges),
			Past:     t.Before(cutoff),
		})
	}

	return slots
}

func isOccupied(t time.Time, ranges []domain.OccupiedRange) bool {
	for _, r := range ranges {
		if r.Contains(t) {
			return true
		}
	}
	return false
}
