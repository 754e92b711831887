package moderate_review

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rentalall/booking-service/internal/api/handlers"
	"github.com/rentalall/booking-service/internal/api/middleware"
	"github.com/rentalall/booking-service/internal/service/reviews"
)

const (
	msgInvalidReviewID    = "некорректный ID отзыва"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgReviewNotFound     = "отзыв не найден"
	msgAlreadyModerated   = "отзыв уже прошёл модерацию"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reviews/{reviewId}/moderate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reviewID, err := strconv.ParseInt(vars["reviewId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reviews/{id}/moderate - Invalid review ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reviews/{id}/moderate - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ModerateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reviews/{id}/moderate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Moderate(r.Context(), reviewID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound):
			h.logger.Warn("PATCH /reviews/{id}/moderate - Review not found: review_id=%d", reviewID)
			handlers.RespondNotFound(w, msgReviewNotFound)

		case errors.Is(err, reviews.ErrAccessDenied):
			h.logger.Warn("PATCH /reviews/{id}/moderate - Access denied: review_id=%d, user_id=%d",
				reviewID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reviews.ErrAlreadyModerated):
			h.logger.Warn("PATCH /reviews/{id}/moderate - Already moderated: review_id=%d", reviewID)
			handlers.RespondConflict(w, msgAlreadyModerated)

		case errors.Is(err, reviews.ErrInvalidInput):
			h.logger.Warn("PATCH /reviews/{id}/moderate - Invalid status: review_id=%d, status=%s",
				reviewID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /reviews/{id}/moderate - Failed to moderate review: review_id=%d, error=%v",
				reviewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reviews/{id}/moderate - Review moderated: review_id=%d, status=%s, user_id=%d",
		reviewID, result.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
