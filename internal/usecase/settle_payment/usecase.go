package settle_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/rentalall/booking-service/internal/domain"
	bookingRepo "github.com/rentalall/booking-service/internal/infra/storage/booking"
	paymentRepo "github.com/rentalall/booking-service/internal/infra/storage/payment"
)

// UseCase use case завершения платежа
type UseCase struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case завершения платежа
//
// Успешный платеж переводит бронирование pending -> confirmed, неуспешный
// оставляет его pending (пользователь может создать новый платеж).
// Повторное завершение уже завершённого платежа - no-op, возвращающий
// текущее состояние: доставка уведомлений об оплате может дублироваться.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SettlePayment: payment=%d, outcome=%s", req.PaymentID, req.Outcome)

	if req.Outcome != domain.PaymentSucceeded && req.Outcome != domain.PaymentFailed {
		uc.logger.Warn("SettlePayment: invalid outcome %q", req.Outcome)
		return nil, ErrInvalidOutcome
	}

	var resultPayment *domain.Payment
	var resultBooking *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		payment, err := uc.paymentRepo.GetByID(txCtx, req.PaymentID)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				uc.logger.Warn("SettlePayment: payment id=%d not found", req.PaymentID)
				return ErrPaymentNotFound
			}
			uc.logger.Error("SettlePayment: failed to get payment id=%d: %v", req.PaymentID, err)
			return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
		}

		booking, err := uc.bookingRepo.GetByID(txCtx, payment.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Error("SettlePayment: booking id=%d missing for payment id=%d",
					payment.BookingID, payment.ID)
				return ErrBookingNotFound
			}
			uc.logger.Error("SettlePayment: failed to get booking id=%d: %v", payment.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Идемпотентность: уже завершённый платеж не трогаем
		if payment.IsSettled() {
			uc.logger.Info("SettlePayment: payment id=%d already settled as %s, no-op",
				payment.ID, payment.Status)
			resultPayment = payment
			resultBooking = booking
			return nil
		}

		if req.Outcome == domain.PaymentSucceeded {
			// Успех подтверждает бронирование; если оно уже покинуло pending
			// (например, отменено пока шла оплата), переход недопустим
			if !domain.CanTransition(booking.Status, domain.StatusConfirmed) {
				uc.logger.Warn("SettlePayment: cannot confirm booking id=%d in status %s",
					booking.ID, booking.Status)
				return fmt.Errorf("%w: booking is %s, cannot move to %s",
					ErrInvalidTransition, booking.Status, domain.StatusConfirmed)
			}

			if err := uc.bookingRepo.UpdateStatusFrom(txCtx, booking.ID, domain.StatusPending, domain.StatusConfirmed); err != nil {
				uc.logger.Error("SettlePayment: failed to confirm booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
			}
			booking.Status = domain.StatusConfirmed
		}

		// Фиксируем исход платежа; при failed бронирование остаётся pending
		if err := uc.paymentRepo.Settle(txCtx, payment.ID, req.Outcome); err != nil {
			uc.logger.Error("SettlePayment: failed to settle payment id=%d: %v", payment.ID, err)
			return fmt.Errorf("%w: failed to settle payment: %v", ErrInternal, err)
		}
		payment.Status = req.Outcome

		resultPayment = payment
		resultBooking = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("SettlePayment: payment id=%d settled as %s, booking id=%d is %s",
		resultPayment.ID, resultPayment.Status, resultBooking.ID, resultBooking.Status)

	return &Response{
		Payment: PaymentView{
			ID:        resultPayment.ID,
			BookingID: resultPayment.BookingID,
			Amount:    resultPayment.Amount,
			Method:    string(resultPayment.Method),
			Status:    string(resultPayment.Status),
			UpdatedAt: resultPayment.UpdatedAt,
		},
		Booking: BookingView{
			ID:         resultBooking.ID,
			UserID:     resultBooking.UserID,
			VenueID:    resultBooking.VenueID,
			DateStart:  resultBooking.DateStart,
			DateEnd:    resultBooking.DateEnd,
			Status:     string(resultBooking.Status),
			TotalPrice: resultBooking.TotalPrice,
		},
	}, nil
}
