package settle_payment

import (
	"time"

	"github.com/rentalall/booking-service/internal/domain"
)

// Request модель запроса на завершение платежа
type Request struct {
	PaymentID int64                // ID платежа
	Outcome   domain.PaymentStatus // Исход: succeeded или failed
}

// Response итоговое состояние платежа и связанного бронирования
type Response struct {
	Payment PaymentView
	Booking BookingView
}

// PaymentView состояние платежа
type PaymentView struct {
	ID        int64
	BookingID int64
	Amount    float64
	Method    string
	Status    string
	UpdatedAt time.Time
}

// BookingView состояние бронирования
type BookingView struct {
	ID         int64
	UserID     int64
	VenueID    int64
	DateStart  time.Time
	DateEnd    time.Time
	Status     string
	TotalPrice float64
}
