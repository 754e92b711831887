package domain

import "time"

// ReviewStatus статус модерации отзыва
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Review represents a review left for exactly one completed booking.
// VenueID and UserID are denormalized from the booking for listing queries.
type Review struct {
	ID        int64
	BookingID int64
	VenueID   int64
	UserID    int64
	Rating    int
	Comment   string
	Status    ReviewStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidRating reports whether rating is within the allowed 1..5 range
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// CanModerate проверяет допустимость перехода статуса модерации
// Модерировать можно только отзыв в статусе pending
func CanModerate(from, to ReviewStatus) bool {
	return from == ReviewPending && (to == ReviewApproved || to == ReviewRejected)
}
