package moderate_review

import (
	"github.com/rentalall/booking-service/internal/service/reviews/models"
)

// ModerateReviewRequest HTTP request model
type ModerateReviewRequest struct {
	Status string `json:"status"` // approved | rejected
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ModerateReviewRequest) ToServiceRequest(userID int64) *models.ModerateReviewRequest {
	return &models.ModerateReviewRequest{
		UserID: userID,
		Status: r.Status,
	}
}
