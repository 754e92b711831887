package get_venue_reviews

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rentalall/booking-service/internal/api/handlers"
	"github.com/rentalall/booking-service/internal/api/middleware"
	"github.com/rentalall/booking-service/internal/service/reviews"
	"github.com/rentalall/booking-service/internal/service/reviews/models"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgVenueNotFound  = "площадка не найдена"
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

// Handle GET /api/v1/venues/{venueId}/reviews
// Публичный endpoint: анонимный запрос видит только одобренные отзывы
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/reviews - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	req := &models.GetVenueReviewsRequest{
		VenueID: venueID,
		UserID:  middleware.OptionalUserID(r),
	}

	result, err := h.service.GetVenueReviews(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/reviews - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		default:
			h.logger.Error("GET /venues/{id}/reviews - Failed to get reviews: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/reviews - Reviews retrieved: venue_id=%d, count=%d",
		venueID, len(result.Reviews))
	handlers.RespondJSON(w, http.StatusOK, result)
}
