package domain

import "time"

// PaymentStatus represents the outcome of a payment attempt
type PaymentStatus string

const (
	PaymentInitiated PaymentStatus = "initiated"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	MethodCard     PaymentMethod = "card"
	MethodCash     PaymentMethod = "cash"
	MethodTransfer PaymentMethod = "transfer"
)

// ValidPaymentMethod reports whether m is one of the supported methods
func ValidPaymentMethod(m PaymentMethod) bool {
	return m == MethodCard || m == MethodCash || m == MethodTransfer
}

// Payment represents a payment attempt for a pending booking.
// Amount is a snapshot of the booking total at initiation time.
type Payment struct {
	ID        int64
	BookingID int64
	Amount    float64
	Method    PaymentMethod
	Status    PaymentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSettled returns true once the payment has reached a terminal outcome
func (p *Payment) IsSettled() bool {
	return p.Status == PaymentSucceeded || p.Status == PaymentFailed
}

// Blocks reports whether this payment prevents initiating another one
// for the same booking (a failed payment permits a retry)
func (p *Payment) Blocks() bool {
	return p.Status == PaymentInitiated || p.Status == PaymentSucceeded
}
