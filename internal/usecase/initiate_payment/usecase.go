package initiate_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/rentalall/booking-service/internal/domain"
	bookingRepo "github.com/rentalall/booking-service/internal/infra/storage/booking"
	userClient "github.com/rentalall/booking-service/internal/integrations/userservice"
)

// UseCase use case создания платежа для бронирования
type UseCase struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	userClient  UserServiceClient
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		userClient:  userClient,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case создания платежа
// Платеж допустим только для pending-бронирования без незавершённого
// или успешного платежа. Сумма снимается с бронирования, не от клиента.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("InitiatePayment: booking=%d, actor=%d, method=%s",
		req.BookingID, req.ActorID, req.Method)

	if req.BookingID <= 0 || req.ActorID <= 0 {
		return nil, fmt.Errorf("%w: bookingID and actorID must be positive", ErrInvalidInput)
	}

	if !domain.ValidPaymentMethod(req.Method) {
		uc.logger.Warn("InitiatePayment: invalid method %q", req.Method)
		return nil, ErrInvalidMethod
	}

	var result *domain.Payment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("InitiatePayment: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("InitiatePayment: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if err := uc.checkActorAccess(txCtx, booking, req.ActorID); err != nil {
			return err
		}

		if booking.Status != domain.StatusPending {
			uc.logger.Warn("InitiatePayment: booking id=%d is %s, not pending", booking.ID, booking.Status)
			return ErrBookingNotPending
		}

		blocked, err := uc.paymentRepo.HasBlocking(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("InitiatePayment: failed to check existing payments: %v", err)
			return fmt.Errorf("%w: failed to check existing payments: %v", ErrInternal, err)
		}
		if blocked {
			uc.logger.Warn("InitiatePayment: booking id=%d already has an active payment", booking.ID)
			return ErrPaymentAlreadyExists
		}

		payment := &domain.Payment{
			BookingID: booking.ID,
			Amount:    booking.TotalPrice,
			Method:    req.Method,
			Status:    domain.PaymentInitiated,
		}

		created, err := uc.paymentRepo.Create(txCtx, payment)
		if err != nil {
			uc.logger.Error("InitiatePayment: failed to create payment: %v", err)
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("InitiatePayment: payment id=%d created for booking=%d, amount=%.2f",
		result.ID, result.BookingID, result.Amount)

	return &Response{
		ID:        result.ID,
		BookingID: result.BookingID,
		Amount:    result.Amount,
		Method:    string(result.Method),
		Status:    string(result.Status),
		CreatedAt: result.CreatedAt,
	}, nil
}

// checkActorAccess проверяет, что инициатор - владелец бронирования или оператор
func (uc *UseCase) checkActorAccess(ctx context.Context, booking *domain.Booking, actorID int64) error {
	if booking.UserID == actorID {
		return nil
	}

	user, err := uc.userClient.GetUser(ctx, actorID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			return ErrAccessDenied
		}
		uc.logger.Error("InitiatePayment: failed to get user id=%d: %v", actorID, err)
		return fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	if !user.IsAdmin {
		uc.logger.Warn("InitiatePayment: actor=%d is not owner of booking=%d and not admin", actorID, booking.ID)
		return ErrAccessDenied
	}

	return nil
}
