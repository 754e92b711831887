package create_booking

import (
	"time"

	createBooking "github.com/rentalall/booking-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VenueID   int64  `json:"venueId"`
	DateStart string `json:"dateStart"` // RFC 3339, "2026-09-01T10:00:00+03:00"
	DateEnd   string `json:"dateEnd"`   // RFC 3339
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"userId"`
	VenueID    int64   `json:"venueId"`
	DateStart  string  `json:"dateStart"`
	DateEnd    string  `json:"dateEnd"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"totalPrice"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	dateStart, err := time.Parse(time.RFC3339, r.DateStart)
	if err != nil {
		return nil, err
	}

	dateEnd, err := time.Parse(time.RFC3339, r.DateEnd)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:    userID,
		VenueID:   r.VenueID,
		DateStart: dateStart,
		DateEnd:   dateEnd,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		UserID:     resp.UserID,
		VenueID:    resp.VenueID,
		DateStart:  resp.DateStart.Format(time.RFC3339),
		DateEnd:    resp.DateEnd.Format(time.RFC3339),
		Status:     resp.Status,
		TotalPrice: resp.TotalPrice,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
