package create_review

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rentalall/booking-service/internal/api/handlers"
	"github.com/rentalall/booking-service/internal/api/middleware"
	createReview "github.com/rentalall/booking-service/internal/usecase/create_review"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBookingNotFound    = "бронирование не найдено"
	msgNotCompleted       = "отзыв доступен только для завершённого бронирования"
	msgTooEarly           = "бронирование ещё не завершилось"
	msgAlreadyReviewed    = "отзыв для этого бронирования уже существует"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase CreateReviewUseCase
	logger  Logger
}

func NewHandler(useCase CreateReviewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reviews - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/reviews - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, userID))
	if err != nil {
		switch {
		case errors.Is(err, createReview.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reviews - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, createReview.ErrNotCompleted):
			h.logger.Warn("POST /bookings/{id}/reviews - Booking not completed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotCompleted)

		case errors.Is(err, createReview.ErrTooEarly):
			h.logger.Warn("POST /bookings/{id}/reviews - Too early: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgTooEarly)

		case errors.Is(err, createReview.ErrAlreadyReviewed):
			h.logger.Warn("POST /bookings/{id}/reviews - Already reviewed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyReviewed)

		case errors.Is(err, createReview.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/reviews - Access denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createReview.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reviews - Invalid input: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/{id}/reviews - Failed to create review: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reviews - Review created: review_id=%d, booking_id=%d, user_id=%d",
		result.ID, bookingID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
