package moderate_review

import (
	"context"

	"github.com/rentalall/booking-service/internal/service/reviews/models"
)

type ReviewService interface {
	Moderate(ctx context.Context, reviewID int64, req *models.ModerateReviewRequest) (*models.ReviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
