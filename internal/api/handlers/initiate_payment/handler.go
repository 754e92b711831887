package initiate_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rentalall/booking-service/internal/api/handlers"
	"github.com/rentalall/booking-service/internal/api/middleware"
	initiatePayment "github.com/rentalall/booking-service/internal/usecase/initiate_payment"
)

const (
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgBookingNotFound      = "бронирование не найдено"
	msgBookingNotPending    = "оплата доступна только для бронирования в ожидании"
	msgPaymentAlreadyExists = "у бронирования уже есть действующий платеж"
	msgInvalidMethod        = "некорректный способ оплаты"
	msgForbidden            = "доступ запрещен"
)

type Handler struct {
	useCase InitiatePaymentUseCase
	logger  Logger
}

func NewHandler(useCase InitiatePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payments - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/payments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req InitiatePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, userID))
	if err != nil {
		switch {
		case errors.Is(err, initiatePayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payments - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, initiatePayment.ErrBookingNotPending):
			h.logger.Warn("POST /bookings/{id}/payments - Booking not pending: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgBookingNotPending)

		case errors.Is(err, initiatePayment.ErrPaymentAlreadyExists):
			h.logger.Warn("POST /bookings/{id}/payments - Payment already exists: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgPaymentAlreadyExists)

		case errors.Is(err, initiatePayment.ErrInvalidMethod):
			h.logger.Warn("POST /bookings/{id}/payments - Invalid method: booking_id=%d, method=%s",
				bookingID, req.Method)
			handlers.RespondBadRequest(w, msgInvalidMethod)

		case errors.Is(err, initiatePayment.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/payments - Access denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, initiatePayment.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/payments - Invalid input: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/{id}/payments - Failed to initiate payment: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payments - Payment initiated: payment_id=%d, booking_id=%d, user_id=%d",
		result.ID, bookingID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
