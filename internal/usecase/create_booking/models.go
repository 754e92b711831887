package create_booking

import "time"

// Policy параметры политики бронирования (ограничения длительности)
type Policy struct {
	MinDurationHours float64
	MaxDurationHours float64
}

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64     // ID пользователя, создающего бронирование
	VenueID   int64     // ID площадки
	DateStart time.Time // Начало интервала (граница слотовой сетки)
	DateEnd   time.Time // Конец интервала (граница слотовой сетки, не входит)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	UserID     int64
	VenueID    int64
	DateStart  time.Time
	DateEnd    time.Time
	Status     string
	TotalPrice float64
	HasReview  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
