package create_review

import (
	"context"

	createReview "github.com/rentalall/booking-service/internal/usecase/create_review"
)

type CreateReviewUseCase interface {
	Execute(ctx context.Context, req *createReview.Request) (*createReview.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
