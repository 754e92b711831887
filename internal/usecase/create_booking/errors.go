package create_booking

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена в каталоге
	ErrVenueNotFound = errors.New("create_booking: venue not found")

	// ErrVenueInactive возвращается, когда площадка снята с публикации
	ErrVenueInactive = errors.New("create_booking: venue is not active")

	// ErrInvalidAlignment возвращается, когда границы интервала не лежат
	// на 30-минутной сетке рабочего дня площадки (08:00-23:00)
	ErrInvalidAlignment = errors.New("create_booking: interval is not aligned to the slot grid")

	// ErrInvalidRange возвращается, когда начало интервала не раньше конца
	ErrInvalidRange = errors.New("create_booking: start must be before end")

	// ErrDurationOutOfRange возвращается при нарушении ограничений длительности
	ErrDurationOutOfRange = errors.New("create_booking: booking duration is out of allowed range")

	// ErrPastStart возвращается, когда начало интервала в прошлом
	ErrPastStart = errors.New("create_booking: start is in the past")

	// ErrSlotConflict возвращается, когда интервал пересекается с активным
	// бронированием. Конфликт - это ошибка конкуренции: вызывающая сторона
	// может повторить попытку после свежего чтения занятости
	ErrSlotConflict = errors.New("create_booking: interval conflicts with an existing booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
