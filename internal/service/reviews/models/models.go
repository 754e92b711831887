package models

import (
	"errors"
	"time"

	"github.com/rentalall/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе модерации
	ErrInvalidStatus = errors.New("invalid review status")
)

// Request модели

// ModerateReviewRequest запрос на модерацию отзыва
type ModerateReviewRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"` // approved | rejected
}

// GetVenueReviewsRequest запрос на получение отзывов площадки
type GetVenueReviewsRequest struct {
	VenueID int64 `json:"venueId"`
	UserID  int64 `json:"userId,omitempty"` // 0 для анонимного запроса
}

// Response модели

// ReviewResponse ответ с данными отзыва
type ReviewResponse struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"bookingId"`
	VenueID   int64     `json:"venueId"`
	UserID    int64     `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewListResponse ответ со списком отзывов
type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

// Методы конвертации

// FromDomainReview конвертирует domain модель в DTO
func FromDomainReview(r *domain.Review) *ReviewResponse {
	if r == nil {
		return nil
	}

	return &ReviewResponse{
		ID:        r.ID,
		BookingID: r.BookingID,
		VenueID:   r.VenueID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// FromDomainReviewList конвертирует список domain моделей в DTO
func FromDomainReviewList(reviews []*domain.Review) *ReviewListResponse {
	if reviews == nil {
		return &ReviewListResponse{
			Reviews: []ReviewResponse{},
		}
	}

	resp := &ReviewListResponse{
		Reviews: make([]ReviewResponse, len(reviews)),
	}

	for i, review := range reviews {
		if reviewResp := FromDomainReview(review); reviewResp != nil {
			resp.Reviews[i] = *reviewResp
		}
	}

	return resp
}

// ToDomainReviewStatus конвертирует строку в domain.ReviewStatus с валидацией
// Целевым статусом модерации может быть только approved или rejected
func ToDomainReviewStatus(status string) (domain.ReviewStatus, error) {
	s := domain.ReviewStatus(status)

	if s == domain.ReviewApproved || s == domain.ReviewRejected {
		return s, nil
	}

	return "", ErrInvalidStatus
}
