package create_review

import "time"

// Request модель запроса на создание отзыва
type Request struct {
	BookingID int64  // ID завершённого бронирования
	ActorID   int64  // Автор отзыва (владелец бронирования)
	Rating    int    // Оценка 1..5
	Comment   string // Текст отзыва
}

// Response модель ответа с созданным отзывом
type Response struct {
	ID        int64
	BookingID int64
	VenueID   int64
	UserID    int64
	Rating    int
	Comment   string
	Status    string
	CreatedAt time.Time
}
