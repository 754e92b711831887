package initiate_payment

import (
	"time"

	"github.com/rentalall/booking-service/internal/domain"
	initiatePayment "github.com/rentalall/booking-service/internal/usecase/initiate_payment"
)

// InitiatePaymentRequest HTTP request model
type InitiatePaymentRequest struct {
	Method string `json:"method"` // card | cash | transfer
}

// PaymentResponse HTTP response model
type PaymentResponse struct {
	ID        int64   `json:"id"`
	BookingID int64   `json:"bookingId"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *InitiatePaymentRequest) ToUseCaseRequest(bookingID, actorID int64) *initiatePayment.Request {
	return &initiatePayment.Request{
		BookingID: bookingID,
		ActorID:   actorID,
		Method:    domain.PaymentMethod(r.Method),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *initiatePayment.Response) *PaymentResponse {
	return &PaymentResponse{
		ID:        resp.ID,
		BookingID: resp.BookingID,
		Amount:    resp.Amount,
		Method:    resp.Method,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
