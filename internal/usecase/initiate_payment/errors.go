package initiate_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("initiate_payment: booking not found")

	// ErrBookingNotPending возвращается, когда бронирование не в статусе pending
	// (в т.ч. при попытке оплатить уже подтверждённое бронирование)
	ErrBookingNotPending = errors.New("initiate_payment: booking is not pending")

	// ErrPaymentAlreadyExists возвращается, когда у бронирования уже есть
	// незавершённый или успешный платеж (failed разрешает повтор)
	ErrPaymentAlreadyExists = errors.New("initiate_payment: active payment already exists")

	// ErrInvalidMethod возвращается при неизвестном способе оплаты
	ErrInvalidMethod = errors.New("initiate_payment: invalid payment method")

	// ErrAccessDenied возвращается, когда инициатор не владелец бронирования
	// и не оператор
	ErrAccessDenied = errors.New("initiate_payment: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("initiate_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("initiate_payment: internal error")
)
