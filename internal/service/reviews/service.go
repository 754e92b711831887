package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/rentalall/booking-service/internal/domain"
	reviewRepo "github.com/rentalall/booking-service/internal/infra/storage/review"
	"github.com/rentalall/booking-service/internal/integrations/venueservice"
	"github.com/rentalall/booking-service/internal/service/reviews/models"
)

// Service сервис для работы с отзывами
type Service struct {
	reviewRepo  ReviewRepository
	venueClient VenueServiceClient
	userClient  UserServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	venueClient VenueServiceClient,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo:  reviewRepo,
		venueClient: venueClient,
		userClient:  userClient,
		logger:      logger,
	}
}

// GetVenueReviews получает отзывы площадки
// Публично видны только одобренные отзывы; владелец площадки
// и администратор видят все, включая ожидающие модерации
func (s *Service) GetVenueReviews(ctx context.Context, req *models.GetVenueReviewsRequest) (*models.ReviewListResponse, error) {
	s.logger.Info("GetVenueReviews: fetching reviews for venue=%d, user=%d", req.VenueID, req.UserID)

	venue, err := s.venueClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueservice.ErrVenueNotFound) {
			s.logger.Warn("GetVenueReviews: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("GetVenueReviews: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueReviews - failed to get venue: %v", ErrInternal, err)
	}

	onlyApproved := true
	if req.UserID != 0 {
		if venue.OwnerID == req.UserID || s.isAdmin(ctx, req.UserID) {
			onlyApproved = false
		}
	}

	reviews, err := s.reviewRepo.ListByVenue(ctx, req.VenueID, onlyApproved)
	if err != nil {
		s.logger.Error("GetVenueReviews: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueReviews - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueReviews: successfully fetched %d reviews for venue=%d", len(reviews), req.VenueID)
	return models.FromDomainReviewList(reviews), nil
}

// GetUserReviews получает отзывы, оставленные пользователем
// Пользователь видит только свои отзывы
func (s *Service) GetUserReviews(ctx context.Context, userID int64) (*models.ReviewListResponse, error) {
	s.logger.Info("GetUserReviews: fetching reviews for user=%d", userID)

	reviews, err := s.reviewRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserReviews: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserReviews - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReviews: successfully fetched %d reviews for user=%d", len(reviews), userID)
	return models.FromDomainReviewList(reviews), nil
}

// Moderate одобряет или отклоняет отзыв
// Доступно только администратору; модерируется только pending отзыв
func (s *Service) Moderate(ctx context.Context, reviewID int64, req *models.ModerateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Moderate: moderating review id=%d to status=%s by user=%d", reviewID, req.Status, req.UserID)

	if !s.isAdmin(ctx, req.UserID) {
		s.logger.Warn("Moderate: access denied for user=%d", req.UserID)
		return nil, ErrAccessDenied
	}

	newStatus, err := models.ToDomainReviewStatus(req.Status)
	if err != nil {
		s.logger.Warn("Moderate: invalid status=%s for review id=%d", req.Status, reviewID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			s.logger.Warn("Moderate: review id=%d not found", reviewID)
			return nil, ErrReviewNotFound
		}
		s.logger.Error("Moderate: repository error for review id=%d: %v", reviewID, err)
		return nil, fmt.Errorf("%w: Moderate - repository error: %v", ErrInternal, err)
	}

	if !domain.CanModerate(review.Status, newStatus) {
		s.logger.Warn("Moderate: review id=%d already moderated, status=%s", reviewID, review.Status)
		return nil, ErrAlreadyModerated
	}

	if err := s.reviewRepo.Moderate(ctx, reviewID, newStatus); err != nil {
		if errors.Is(err, reviewRepo.ErrStatusConflict) {
			s.logger.Warn("Moderate: review id=%d moderated concurrently", reviewID)
			return nil, ErrAlreadyModerated
		}
		s.logger.Error("Moderate: repository error for review id=%d: %v", reviewID, err)
		return nil, fmt.Errorf("%w: Moderate - repository error: %v", ErrInternal, err)
	}

	review.Status = newStatus

	s.logger.Info("Moderate: successfully moderated review id=%d to status=%s", reviewID, newStatus)
	return models.FromDomainReview(review), nil
}

// isAdmin проверяет, что пользователь - администратор
func (s *Service) isAdmin(ctx context.Context, userID int64) bool {
	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		s.logger.Warn("isAdmin: failed to get user id=%d: %v", userID, err)
		return false
	}
	return user.IsAdmin
}
