package create_review

import (
	"time"

	createReview "github.com/rentalall/booking-service/internal/usecase/create_review"
)

// CreateReviewRequest HTTP request model
type CreateReviewRequest struct {
	Rating  int    `json:"rating"` // 1..5
	Comment string `json:"comment,omitempty"`
}

// ReviewResponse HTTP response model
type ReviewResponse struct {
	ID        int64  `json:"id"`
	BookingID int64  `json:"bookingId"`
	VenueID   int64  `json:"venueId"`
	UserID    int64  `json:"userId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReviewRequest) ToUseCaseRequest(bookingID, actorID int64) *createReview.Request {
	return &createReview.Request{
		BookingID: bookingID,
		ActorID:   actorID,
		Rating:    r.Rating,
		Comment:   r.Comment,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReview.Response) *ReviewResponse {
	return &ReviewResponse{
		ID:        resp.ID,
		BookingID: resp.BookingID,
		VenueID:   resp.VenueID,
		UserID:    resp.UserID,
		Rating:    resp.Rating,
		Comment:   resp.Comment,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
