package get_user_reviews

import (
	"context"

	"github.com/rentalall/booking-service/internal/service/reviews/models"
)

type ReviewService interface {
	GetUserReviews(ctx context.Context, userID int64) (*models.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
