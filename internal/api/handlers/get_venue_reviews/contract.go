package get_venue_reviews

import (
	"context"

	"github.com/rentalall/booking-service/internal/service/reviews/models"
)

type ReviewService interface {
	GetVenueReviews(ctx context.Context, req *models.GetVenueReviewsRequest) (*models.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
