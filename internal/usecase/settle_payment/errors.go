package settle_payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("settle_payment: payment not found")

	// ErrBookingNotFound возвращается, когда связанное бронирование не найдено
	ErrBookingNotFound = errors.New("settle_payment: booking not found")

	// ErrInvalidOutcome возвращается при недопустимом исходе платежа
	ErrInvalidOutcome = errors.New("settle_payment: outcome must be succeeded or failed")

	// ErrInvalidTransition возвращается, когда успешный платеж не может
	// подтвердить бронирование (бронирование покинуло статус pending)
	ErrInvalidTransition = errors.New("settle_payment: invalid booking transition")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("settle_payment: internal error")
)
