package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rentalall/booking-service/internal/domain"
	venueClient "github.com/rentalall/booking-service/internal/integrations/venueservice"
	"github.com/rentalall/booking-service/pkg/ptr"
	"github.com/rentalall/booking-service/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	venueClient  VenueServiceClient
	txManager    TransactionManager
	location     *time.Location
	policy       Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueClient VenueServiceClient,
	txManager TransactionManager,
	location *time.Location,
	policy Policy,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		venueClient:  venueClient,
		txManager:    txManager,
		location:     location,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Проверки выполняются по порядку с ранним выходом: выравнивание по сетке,
// порядок границ, прошлое время начала, пересечение с активными бронированиями.
// Проверка пересечений и вставка выполняются одной сериализуемой транзакцией:
// две конкурентные попытки на одну площадку не могут обе пройти проверку
// по устаревшему чтению. Операции на разных площадках не конкурируют -
// блокируются только строки своей площадки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, venue=%d, interval=[%s, %s)",
		req.UserID, req.VenueID, req.DateStart.Format("2006-01-02 15:04"), req.DateEnd.Format("2006-01-02 15:04"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем площадку из каталога
	venue, err := uc.venueClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("CreateBooking: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateBooking: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	if !venue.IsActive {
		uc.logger.Warn("CreateBooking: venue id=%d is not active", req.VenueID)
		return nil, ErrVenueInactive
	}

	// 3. Приводим границы к временной зоне сервиса: сетка и рабочее окно
	// определены в ней, а клиент может прислать метку с произвольным смещением
	start := req.DateStart.In(uc.location)
	end := req.DateEnd.In(uc.location)

	// 4. Выравнивание по слотовой сетке (08:00-23:00, шаг 30 минут)
	if err := validateAlignment(start, end); err != nil {
		uc.logger.Warn("CreateBooking: alignment check failed for venue=%d", req.VenueID)
		return nil, err
	}

	// 5. Порядок границ и ограничения длительности
	if err := validateRange(start, end, uc.policy); err != nil {
		uc.logger.Warn("CreateBooking: range check failed: %v", err)
		return nil, err
	}

	// 6. Начало не в прошлом
	now := uc.timeProvider.Now()
	if err := validateNotPast(start, now); err != nil {
		uc.logger.Warn("CreateBooking: start %s is in the past (now=%s)",
			start.Format("2006-01-02 15:04"), now.Format("2006-01-02 15:04"))
		return nil, err
	}

	var result *domain.Booking

	// 7. Проверка пересечений и вставка - одна сериализуемая транзакция
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Перечитываем активные бронирования площадки в окне интервала
		// с блокировкой строк (FOR UPDATE)
		filter := domain.VenueBookingsFilter{
			VenueID:   req.VenueID,
			StartDate: ptr.Ptr(start),
			EndDate:   ptr.Ptr(end),
		}

		bookings, err := uc.bookingRepo.GetByVenueWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 7.2. Проверяем пересечение с актуальным состоянием
		if conflict := findConflict(start, end, bookings); conflict != nil {
			uc.logger.Warn("CreateBooking: interval conflicts with booking id=%d (venue=%d)",
				conflict.ID, req.VenueID)
			return ErrSlotConflict
		}

		// 7.3. Создаем бронирование в статусе pending
		// Цена считается сервером: точная длительность в часах (с шагом 0.5)
		// умноженная на часовую ставку площадки, без округления
		booking := &domain.Booking{
			UserID:     req.UserID,
			VenueID:    req.VenueID,
			DateStart:  start,
			DateEnd:    end,
			Status:     domain.StatusPending,
			TotalPrice: domain.TotalPriceFor(start, end, venue.PricePerHour),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Исчерпанные повторы сериализации - тоже конфликт слота для вызывающей
		// стороны: безопасно повторить с новым чтением занятости
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization retries exhausted for venue=%d", req.VenueID)
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total_price=%.2f",
		result.ID, result.TotalPrice)

	return &Response{
		ID:         result.ID,
		UserID:     result.UserID,
		VenueID:    result.VenueID,
		DateStart:  result.DateStart,
		DateEnd:    result.DateEnd,
		Status:     string(result.Status),
		TotalPrice: result.TotalPrice,
		HasReview:  result.HasReview,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}
