package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rentalall/booking-service/internal/domain"
	bookingRepo "github.com/rentalall/booking-service/internal/infra/storage/booking"
	"github.com/rentalall/booking-service/internal/integrations/venueservice"
	"github.com/rentalall/booking-service/internal/service/bookings/models"
)

// Policy настройки политики отмены бронирований
type Policy struct {
	// CancellationNoticeMinutes минимальный срок до начала, в течение которого
	// подтверждённое бронирование ещё можно отменить
	CancellationNoticeMinutes int
}

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	venueClient  VenueServiceClient
	userClient   UserServiceClient
	policy       Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	venueClient VenueServiceClient,
	userClient UserServiceClient,
	policy Policy,
	logger Logger,
) *Service {
	if policy.CancellationNoticeMinutes <= 0 {
		policy.CancellationNoticeMinutes = domain.DefaultCancellationNoticeMinutes
	}

	return &Service{
		bookingRepo:  bookingRepo,
		venueClient:  venueClient,
		userClient:   userClient,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование; владелец площадки и админ - любое
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkBookingAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking, s.timeProvider.Now()), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу; completed - производный статус,
// поэтому фильтрация по нему выполняется поверх выборки confirmed
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var requested *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		requested = &status
	}

	// completed в БД не хранится - выбираем confirmed и дофильтровываем
	queryStatus := requested
	if requested != nil && *requested == domain.StatusCompleted {
		confirmed := domain.StatusConfirmed
		queryStatus = &confirmed
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, queryStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	bookings = filterByEffectiveStatus(bookings, requested, now)

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings, now), nil
}

// GetVenueBookings получает бронирования площадки с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отменённых бронирований
// Доступно владельцу площадки и администратору
//
// Примеры использования:
// - Все активные бронирования: GetVenueBookings(ctx, &GetVenueBookingsRequest{VenueID: 123, UserID: 456})
// - Бронирования за период: указать StartDate и EndDate
// - Только подтверждённые: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetVenueBookings(ctx context.Context, req *models.GetVenueBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetVenueBookings: fetching bookings for venue=%d, user=%d", req.VenueID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа владельца площадки
	if err := s.checkVenueAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueBookings: invalid filter for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	var requested *domain.BookingStatus
	if filter.Status != nil {
		requested = filter.Status
		if *filter.Status == domain.StatusCompleted {
			confirmed := domain.StatusConfirmed
			filter.Status = &confirmed
		}
	}

	bookings, err := s.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueBookings: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueBookings - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	bookings = filterByEffectiveStatus(bookings, requested, now)

	s.logger.Info("GetVenueBookings: successfully fetched %d bookings for venue=%d", len(bookings), req.VenueID)
	return models.FromDomainBookingList(bookings, now), nil
}

// Cancel отменяет бронирование
// Pending отменяется владельцем в любой момент. Confirmed - только пока до
// начала остаётся не меньше срока из политики отмены; администратор может
// отменить без учёта срока. Терминальные статусы не отменяются.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%d", bookingID)
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	isAdmin := false
	if booking.UserID != req.UserID {
		// Не владелец - отменить может только администратор
		if err := s.checkAdminAccess(ctx, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return err
		}
		isAdmin = true
	}

	now := s.timeProvider.Now()

	// Завершённое бронирование отменить нельзя, даже если в БД оно confirmed
	if !booking.CanBeCancelled() || booking.EffectiveStatus(now) == domain.StatusCompleted {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.EffectiveStatus(now))
		return ErrCannotCancel
	}

	// Подтверждённое бронирование связано оплатой - владельцу доступно
	// только заблаговременное аннулирование
	if booking.Status == domain.StatusConfirmed && !isAdmin {
		notice := time.Duration(s.policy.CancellationNoticeMinutes) * time.Minute
		if booking.DateStart.Sub(now) < notice {
			s.logger.Warn("Cancel: cancellation window closed for booking id=%d (start=%s)",
				bookingID, booking.DateStart.Format(time.RFC3339))
			return ErrWindowClosed
		}
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Cancel: booking id=%d changed status during cancellation", bookingID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

// checkBookingAccess проверяет, что пользователь имеет доступ к бронированию
// Владелец бронирования, владелец площадки и администратор
func (s *Service) checkBookingAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.UserID == userID {
		return nil
	}

	if err := s.checkVenueAccess(ctx, booking.VenueID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkVenueAccess проверяет, что пользователь - владелец площадки или администратор
func (s *Service) checkVenueAccess(ctx context.Context, venueID int64, userID int64) error {
	venue, err := s.venueClient.GetVenue(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueservice.ErrVenueNotFound) {
			s.logger.Warn("checkVenueAccess: venue id=%d not found", venueID)
			return ErrVenueNotFound
		}
		s.logger.Error("checkVenueAccess: failed to get venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: checkVenueAccess - failed to get venue: %v", ErrInternal, err)
	}

	if venue.OwnerID == userID {
		return nil
	}

	if err := s.checkAdminAccess(ctx, userID); err != nil {
		s.logger.Warn("checkVenueAccess: user=%d is not owner of venue=%d and not admin", userID, venueID)
		return ErrAccessDenied
	}

	return nil
}

// checkAdminAccess проверяет, что пользователь - администратор
func (s *Service) checkAdminAccess(ctx context.Context, userID int64) error {
	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		s.logger.Error("checkAdminAccess: failed to get user id=%d: %v", userID, err)
		return ErrAccessDenied
	}

	if !user.IsAdmin {
		return ErrAccessDenied
	}

	return nil
}

// filterByEffectiveStatus дофильтровывает выборку по производному статусу
func filterByEffectiveStatus(bookings []*domain.Booking, status *domain.BookingStatus, now time.Time) []*domain.Booking {
	if status == nil || (*status != domain.StatusConfirmed && *status != domain.StatusCompleted) {
		return bookings
	}

	filtered := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.EffectiveStatus(now) == *status {
			filtered = append(filtered, b)
		}
	}
	return filtered
}
