package get_occupied_slots

import (
	"time"

	"github.com/rentalall/booking-service/pkg/types"
)

// Request модель запроса занятых слотов
type Request struct {
	VenueID int64     // ID площадки
	Date    time.Time // Дата (без времени) в локальной зоне сервиса
}

// Response модель ответа: занятые интервалы и послотовая проекция
type Response struct {
	VenueID        int64
	Date           time.Time
	OccupiedRanges []Range // Интервалы активных бронирований, по возрастанию начала
	Slots          []Slot  // Проекция занятости на границы дневной сетки
}

// Range занятый полуоткрытый интервал [Start, End)
type Range struct {
	Start time.Time
	End   time.Time
}

// Slot граница дневной сетки с признаками занятости и прошедшего времени
// Бронирование может накрывать несколько слотов, поэтому вызывающая сторона
// опирается на эту проекцию, а не на принадлежность конкретному бронированию
type Slot struct {
	Time     types.TimeString // Время границы, "HH:MM"
	Occupied bool             // Попадает внутрь занятого интервала (occStart <= t < occEnd)
	Past     bool             // Строго раньше усечённого текущего момента
}
