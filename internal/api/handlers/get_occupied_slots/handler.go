package get_occupied_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/rentalall/booking-service/internal/api/handlers"
	"github.com/rentalall/booking-service/internal/domain"
	getOccupiedSlots "github.com/rentalall/booking-service/internal/usecase/get_occupied_slots"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate    = "отсутствует параметр date"
	msgVenueNotFound  = "площадка не найдена"
)

type Handler struct {
	useCase  GetOccupiedSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetOccupiedSlotsUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/occupied-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/occupied-slots - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /venues/{id}/occupied-slots - Missing date parameter: venue_id=%d", venueID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Дата интерпретируется в локальной зоне сервиса
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/occupied-slots - Invalid date: venue_id=%d, date=%s", venueID, dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getOccupiedSlots.Request{
		VenueID: venueID,
		Date:    date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getOccupiedSlots.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/occupied-slots - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, getOccupiedSlots.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/occupied-slots - Invalid input: venue_id=%d", venueID)
			handlers.RespondBadRequest(w, msgInvalidVenueID)

		default:
			h.logger.Error("GET /venues/{id}/occupied-slots - Failed to get slots: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/occupied-slots - Slots retrieved: venue_id=%d, date=%s, occupied=%d",
		venueID, dateStr, len(result.OccupiedRanges))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
