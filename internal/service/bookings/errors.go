package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("venue not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование в терминальном статусе
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrWindowClosed возвращается, когда подтверждённое бронирование
	// отменяется позже допустимого срока до начала
	ErrWindowClosed = errors.New("cancellation window closed")

	// ErrInvalidStatus возвращается при попытке фильтрации по недопустимому статусу
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
