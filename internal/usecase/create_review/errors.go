package create_review

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("create_review: booking not found")

	// ErrNotCompleted возвращается, когда бронирование не было подтверждено
	// (отзыв нельзя оставить на pending или отменённое бронирование)
	ErrNotCompleted = errors.New("create_review: booking is not completed")

	// ErrTooEarly возвращается, когда подтверждённое бронирование ещё не завершилось
	ErrTooEarly = errors.New("create_review: booking has not ended yet")

	// ErrAlreadyReviewed возвращается, когда у бронирования уже есть отзыв
	ErrAlreadyReviewed = errors.New("create_review: booking already has a review")

	// ErrAccessDenied возвращается, когда автор отзыва не владелец бронирования
	ErrAccessDenied = errors.New("create_review: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_review: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_review: internal error")
)
