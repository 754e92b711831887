package create_review

import (
	"context"
	"errors"
	"fmt"

	"github.com/rentalall/booking-service/internal/domain"
	bookingRepo "github.com/rentalall/booking-service/internal/infra/storage/booking"
	reviewRepo "github.com/rentalall/booking-service/internal/infra/storage/review"
)

// UseCase use case создания отзыва через проверку допустимости
type UseCase struct {
	bookingRepo  BookingRepository
	reviewRepo   ReviewRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	reviewRepo ReviewRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		reviewRepo:   reviewRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания отзыва
//
// Отзыв допустим только для завершённого бронирования автора и только один.
// Установка флага has_review и вставка отзыва выполняются одной транзакцией,
// причём флаг ставится условно (WHERE has_review = false) - окна, в котором
// два отзыва на одно бронирование прошли бы одновременно, нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReview: booking=%d, actor=%d, rating=%d",
		req.BookingID, req.ActorID, req.Rating)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReview: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Review

	// 2. Проверка допустимости и вставка - одна транзакция
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CreateReview: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CreateReview: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.UserID != req.ActorID {
			uc.logger.Warn("CreateReview: actor=%d is not owner of booking=%d", req.ActorID, booking.ID)
			return ErrAccessDenied
		}

		// Статус completed выводится на чтении: confirmed с прошедшим концом
		switch booking.EffectiveStatus(now) {
		case domain.StatusCompleted:
			// Бронирование завершено, отзыв допустим
		case domain.StatusConfirmed:
			uc.logger.Warn("CreateReview: booking id=%d has not ended yet", booking.ID)
			return ErrTooEarly
		default:
			uc.logger.Warn("CreateReview: booking id=%d is %s, review not allowed", booking.ID, booking.Status)
			return ErrNotCompleted
		}

		if booking.HasReview {
			uc.logger.Warn("CreateReview: booking id=%d already reviewed", booking.ID)
			return ErrAlreadyReviewed
		}

		// Условная установка флага отсекает конкурентный дубль
		if err := uc.bookingRepo.MarkReviewed(txCtx, booking.ID); err != nil {
			if errors.Is(err, bookingRepo.ErrAlreadyReviewed) {
				return ErrAlreadyReviewed
			}
			uc.logger.Error("CreateReview: failed to mark booking id=%d reviewed: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to mark booking reviewed: %v", ErrInternal, err)
		}

		review := &domain.Review{
			BookingID: booking.ID,
			VenueID:   booking.VenueID,
			UserID:    booking.UserID,
			Rating:    req.Rating,
			Comment:   req.Comment,
			Status:    domain.ReviewPending,
		}

		created, err := uc.reviewRepo.Create(txCtx, review)
		if err != nil {
			if errors.Is(err, reviewRepo.ErrDuplicateReview) {
				return ErrAlreadyReviewed
			}
			uc.logger.Error("CreateReview: failed to create review: %v", err)
			return fmt.Errorf("%w: failed to create review: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReview: review id=%d created for booking=%d", result.ID, result.BookingID)

	return &Response{
		ID:        result.ID,
		BookingID: result.BookingID,
		VenueID:   result.VenueID,
		UserID:    result.UserID,
		Rating:    result.Rating,
		Comment:   result.Comment,
		Status:    string(result.Status),
		CreatedAt: result.CreatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if !domain.ValidRating(req.Rating) {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	if len(req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment is too long", ErrInvalidInput)
	}

	return nil
}
