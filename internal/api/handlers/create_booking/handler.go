package create_booking

import (
	"errors"
	"net/http"

	"github.com/rentalall/booking-service/internal/api/handlers"
	"github.com/rentalall/booking-service/internal/api/middleware"
	createBooking "github.com/rentalall/booking-service/internal/usecase/create_booking"
	"github.com/rentalall/booking-service/pkg/metrics"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgVenueNotFound      = "площадка не найдена"
	msgVenueInactive      = "площадка недоступна для бронирования"
	msgInvalidAlignment   = "время должно попадать на границы слотовой сетки в рабочие часы"
	msgInvalidRange       = "конец интервала должен быть позже начала"
	msgDurationOutOfRange = "длительность бронирования вне допустимых пределов"
	msgPastStart          = "нельзя забронировать слот в прошлом"
	msgSlotConflict       = "выбранный интервал уже занят"
)

type Handler struct {
	useCase CreateBookingUseCase
	metrics *metrics.Metrics
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%d, venue_id=%d", userID, req.VenueID)
			if h.metrics != nil {
				h.metrics.IncBookingConflicts()
			}
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createBooking.ErrVenueNotFound):
			h.logger.Warn("POST /bookings - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createBooking.ErrVenueInactive):
			h.logger.Warn("POST /bookings - Venue inactive: venue_id=%d", req.VenueID)
			handlers.RespondBadRequest(w, msgVenueInactive)

		case errors.Is(err, createBooking.ErrInvalidAlignment):
			h.logger.Warn("POST /bookings - Invalid alignment: user_id=%d, venue_id=%d", userID, req.VenueID)
			handlers.RespondBadRequest(w, msgInvalidAlignment)

		case errors.Is(err, createBooking.ErrInvalidRange):
			h.logger.Warn("POST /bookings - Invalid range: user_id=%d, venue_id=%d", userID, req.VenueID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createBooking.ErrDurationOutOfRange):
			h.logger.Warn("POST /bookings - Duration out of range: user_id=%d, venue_id=%d", userID, req.VenueID)
			handlers.RespondBadRequest(w, msgDurationOutOfRange)

		case errors.Is(err, createBooking.ErrPastStart):
			h.logger.Warn("POST /bookings - Past start: user_id=%d, venue_id=%d", userID, req.VenueID)
			handlers.RespondBadRequest(w, msgPastStart)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, venue_id=%d", userID, req.VenueID)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, venue_id=%d, error=%v",
				userID, req.VenueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.IncBookingsCreated()
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, venue_id=%d",
		result.ID, userID, req.VenueID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
