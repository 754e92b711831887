package settle_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rentalall/booking-service/internal/api/handlers"
	settlePayment "github.com/rentalall/booking-service/internal/usecase/settle_payment"
	"github.com/rentalall/booking-service/pkg/metrics"
)

const (
	msgInvalidPaymentID   = "некорректный ID платежа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgPaymentNotFound    = "платеж не найден"
	msgBookingNotFound    = "бронирование не найдено"
	msgInvalidOutcome     = "исход платежа должен быть succeeded или failed"
	msgInvalidTransition  = "бронирование не может быть подтверждено"
)

type Handler struct {
	useCase SettlePaymentUseCase
	metrics *metrics.Metrics
	logger  Logger
}

func NewHandler(useCase SettlePaymentUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/v1/internal/payments/{paymentId}/settle
// Внутренний endpoint для callback платёжного провайдера
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	paymentID, err := strconv.ParseInt(vars["paymentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /internal/payments/{id}/settle - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	var req SettlePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /internal/payments/{id}/settle - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(paymentID))
	if err != nil {
		switch {
		case errors.Is(err, settlePayment.ErrPaymentNotFound):
			h.logger.Warn("POST /internal/payments/{id}/settle - Payment not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, settlePayment.ErrBookingNotFound):
			h.logger.Warn("POST /internal/payments/{id}/settle - Booking not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, settlePayment.ErrInvalidOutcome):
			h.logger.Warn("POST /internal/payments/{id}/settle - Invalid outcome: payment_id=%d, outcome=%s",
				paymentID, req.Outcome)
			handlers.RespondBadRequest(w, msgInvalidOutcome)

		case errors.Is(err, settlePayment.ErrInvalidTransition):
			h.logger.Warn("POST /internal/payments/{id}/settle - Invalid transition: payment_id=%d", paymentID)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /internal/payments/{id}/settle - Failed to settle payment: payment_id=%d, error=%v",
				paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.IncPaymentsSettled(result.Payment.Status)
	}

	h.logger.Info("POST /internal/payments/{id}/settle - Payment settled: payment_id=%d, status=%s, booking_status=%s",
		paymentID, result.Payment.Status, result.Booking.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
