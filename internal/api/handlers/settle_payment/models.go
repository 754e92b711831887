package settle_payment

import (
	"time"

	"github.com/rentalall/booking-service/internal/domain"
	settlePayment "github.com/rentalall/booking-service/internal/usecase/settle_payment"
)

// SettlePaymentRequest HTTP request model
type SettlePaymentRequest struct {
	Outcome string `json:"outcome"` // succeeded | failed
}

// SettlePaymentResponse HTTP response model
type SettlePaymentResponse struct {
	Payment PaymentView `json:"payment"`
	Booking BookingView `json:"booking"`
}

// PaymentView состояние платежа после завершения
type PaymentView struct {
	ID        int64   `json:"id"`
	BookingID int64   `json:"bookingId"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Status    string  `json:"status"`
	UpdatedAt string  `json:"updatedAt"`
}

// BookingView состояние связанного бронирования
type BookingView struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"userId"`
	VenueID    int64   `json:"venueId"`
	DateStart  string  `json:"dateStart"`
	DateEnd    string  `json:"dateEnd"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"totalPrice"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SettlePaymentRequest) ToUseCaseRequest(paymentID int64) *settlePayment.Request {
	return &settlePayment.Request{
		PaymentID: paymentID,
		Outcome:   domain.PaymentStatus(r.Outcome),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *settlePayment.Response) *SettlePaymentResponse {
	return &SettlePaymentResponse{
		Payment: PaymentView{
			ID:        resp.Payment.ID,
			BookingID: resp.Payment.BookingID,
			Amount:    resp.Payment.Amount,
			Method:    resp.Payment.Method,
			Status:    resp.Payment.Status,
			UpdatedAt: resp.Payment.UpdatedAt.Format(time.RFC3339),
		},
		Booking: BookingView{
			ID:         resp.Booking.ID,
			UserID:     resp.Booking.UserID,
			VenueID:    resp.Booking.VenueID,
			DateStart:  resp.Booking.DateStart.Format(time.RFC3339),
			DateEnd:    resp.Booking.DateEnd.Format(time.RFC3339),
			Status:     resp.Booking.Status,
			TotalPrice: resp.Booking.TotalPrice,
		},
	}
}
