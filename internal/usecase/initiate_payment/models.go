package initiate_payment

import (
	"time"

	"github.com/rentalall/booking-service/internal/domain"
)

// Request модель запроса на создание платежа
type Request struct {
	BookingID int64                // ID бронирования
	ActorID   int64                // Инициатор (владелец бронирования или оператор)
	Method    domain.PaymentMethod // Способ оплаты
}

// Response модель ответа с созданным платежом
type Response struct {
	ID        int64
	BookingID int64
	Amount    float64
	Method    string
	Status    string
	CreatedAt time.Time
}
