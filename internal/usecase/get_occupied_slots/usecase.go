package get_occupied_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rentalall/booking-service/internal/domain"
	venueClient "github.com/rentalall/booking-service/internal/integrations/venueservice"
	"github.com/rentalall/booking-service/pkg/ptr"
)

// UseCase use case получения занятых слотов площадки на дату
// Read-only проекция состояния бронирований: выполняется без транзакции,
// конкурентная запись может дать слегка устаревший результат - путь записи
// перепроверяет занятость по актуальному состоянию
type UseCase struct {
	bookingRepo  BookingRepository
	venueClient  VenueServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueClient VenueServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		venueClient:  venueClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения занятых слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetOccupiedSlots: venue=%d, date=%s",
		req.VenueID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.VenueID <= 0 {
		return nil, fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Проверяем существование площадки
	if _, err := uc.venueClient.GetVenue(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("GetOccupiedSlots: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetOccupiedSlots: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 3. Загружаем активные бронирования, пересекающиеся с сутками даты
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	filter := domain.VenueBookingsFilter{
		VenueID:   req.VenueID,
		StartDate: ptr.Ptr(dayStart),
		EndDate:   ptr.Ptr(dayEnd),
	}

	bookings, err := uc.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetOccupiedSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Собираем занятые интервалы и послотовую проекцию
	now := uc.timeProvider.Now()
	ranges := buildOccupiedRanges(bookings)

	occupied := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		occupied = append(occupied, Range{Start: r.Start, End: r.End})
	}

	uc.logger.Info("GetOccupiedSlots: venue=%d, date=%s, %d occupied ranges",
		req.VenueID, req.Date.Format(domain.DateFormat), len(occupied))

	return &Response{
		VenueID:        req.VenueID,
		Date:           req.Date,
		OccupiedRanges: occupied,
		Slots:          projectSlots(req.Date, ranges, now),
	}, nil
}
