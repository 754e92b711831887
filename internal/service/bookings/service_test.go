package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentalall/booking-service/internal/domain"
	bookingStorage "github.com/rentalall/booking-service/internal/infra/storage/booking"
	"github.com/rentalall/booking-service/internal/integrations/userservice"
	"github.com/rentalall/booking-service/internal/integrations/venueservice"
	"github.com/rentalall/booking-service/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	bookings  map[int64]*domain.Booking
	cancelled map[int64]string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingStorage.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByVenueWithFilter(_ context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.VenueID != filter.VenueID {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingStorage.ErrBookingNotFound
	}
	if !b.IsActive() {
		return bookingStorage.ErrStatusConflict
	}
	b.Status = domain.StatusCancelled
	if f.cancelled == nil {
		f.cancelled = map[int64]string{}
	}
	f.cancelled[id] = reason
	return nil
}

type fakeVenueClient struct {
	venues map[int64]*venueservice.Venue
}

func (f *fakeVenueClient) GetVenue(_ context.Context, venueID int64) (*venueservice.Venue, error) {
	v, ok := f.venues[venueID]
	if !ok {
		return nil, venueservice.ErrVenueNotFound
	}
	return v, nil
}

type fakeUserClient struct {
	users map[int64]*userservice.User
}

func (f *fakeUserClient) GetUser(_ context.Context, userID int64) (*userservice.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	return u, nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func ts(day, hour int) time.Time {
	return time.Date(2026, 9, day, hour, 0, 0, 0, time.UTC)
}

const (
	ownerID = int64(10)
	adminID = int64(77)
)

func newTestService(repo *fakeBookingRepo, now time.Time) *Service {
	venues := &fakeVenueClient{venues: map[int64]*venueservice.Venue{
		1: {ID: 1, OwnerID: 50, Title: "Loft", IsActive: true},
	}}
	users := &fakeUserClient{users: map[int64]*userservice.User{
		ownerID: {ID: ownerID},
		adminID: {ID: adminID, IsAdmin: true},
	}}
	// Окно отмены 24 часа
	svc := NewService(repo, venues, users, Policy{CancellationNoticeMinutes: 24 * 60}, nopLogger{})
	svc.timeProvider = &fixedClock{now: now}
	return svc
}

func booking(id int64, status domain.BookingStatus, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		ID: id, UserID: ownerID, VenueID: 1,
		DateStart: start, DateEnd: end,
		Status: status, TotalPrice: 2000,
	}
}

func cancelReq(userID int64) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{UserID: userID, CancellationReason: "планы изменились"}
}

func TestCancel_PendingAnyTime(t *testing.T) {
	// Pending отменяется даже за минуту до начала
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: booking(1, domain.StatusPending, ts(2, 10), ts(2, 12)),
	}}
	svc := newTestService(repo, ts(2, 9))

	err := svc.Cancel(context.Background(), 1, cancelReq(ownerID))

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	assert.Equal(t, "планы изменились", repo.cancelled[1])
}

func TestCancel_ConfirmedWithinWindow(t *testing.T) {
	// До начала больше 24 часов - отмена разрешена
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: booking(1, domain.StatusConfirmed, ts(3, 12), ts(3, 14)),
	}}
	svc := newTestService(repo, ts(2, 10))

	err := svc.Cancel(context.Background(), 1, cancelReq(ownerID))

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
}

func TestCancel_ConfirmedWindowClosed(t *testing.T) {
	// До начала меньше 24 часов - владельцу отмена запрещена
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: booking(1, domain.StatusConfirmed, ts(3, 12), ts(3, 14)),
	}}
	svc := newTestService(repo, ts(2, 18))

	err := svc.Cancel(context.Background(), 1, cancelReq(ownerID))

	assert.ErrorIs(t, err, ErrWindowClosed)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
}

func TestCancel_AdminOverridesWindow(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: booking(1, domain.StatusConfirmed, ts(3, 12), ts(3, 14)),
	}}
	svc := newTestService(repo, ts(3, 11))

	err := svc.Cancel(context.Background(), 1, cancelReq(adminID))

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
}

func TestCancel_TerminalStatuses(t *testing.T) {
	// Отменённое бронирование не отменяется повторно
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: booking(1, domain.StatusCancelled, ts(3, 12), ts(3, 14)),
	}}
	svc := newTestService(repo, ts(2, 10))

	err := svc.Cancel(context.Background(), 1, cancelReq(ownerID))
	assert.ErrorIs(t, err, ErrCannotCancel)

	// Завершённое (confirmed с прошедшим концом) тоже терминально
	repo2 := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: booking(1, domain.StatusConfirmed, ts(1, 10), ts(1, 12)),
	}}
	svc2 := newTestService(repo2, ts(2, 10))

	err = svc2.Cancel(context.Background(), 1, cancelReq(ownerID))
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_StrangerDenied(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: booking(1, domain.StatusPending, ts(3, 12), ts(3, 14)),
	}}
	svc := newTestService(repo, ts(2, 10))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 999})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.StatusPending, repo.bookings[1].Status)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{bookings: map[int64]*domain.Booking{}}, ts(2, 10))

	err := svc.Cancel(context.Background(), 404, cancelReq(ownerID))
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_Access(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: booking(1, domain.StatusConfirmed, ts(3, 12), ts(3, 14)),
	}}
	svc := newTestService(repo, ts(2, 10))

	// Владелец бронирования
	resp, err := svc.GetByID(context.Background(), 1, ownerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	// Владелец площадки
	_, err = svc.GetByID(context.Background(), 1, 50)
	assert.NoError(t, err)

	// Администратор
	_, err = svc.GetByID(context.Background(), 1, adminID)
	assert.NoError(t, err)

	// Посторонний
	_, err = svc.GetByID(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_EffectiveStatus(t *testing.T) {
	// Подтверждённое бронирование с прошедшим концом наружу отдаётся как completed
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: booking(1, domain.StatusConfirmed, ts(1, 10), ts(1, 12)),
	}}
	svc := newTestService(repo, ts(2, 10))

	resp, err := svc.GetByID(context.Background(), 1, ownerID)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
}

func TestGetUserBookings_CompletedFilter(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: booking(1, domain.StatusConfirmed, ts(1, 10), ts(1, 12)), // завершилось
		2: booking(2, domain.StatusConfirmed, ts(3, 10), ts(3, 12)), // впереди
		3: booking(3, domain.StatusPending, ts(3, 14), ts(3, 16)),
	}}
	svc := newTestService(repo, ts(2, 10))

	completed := "completed"
	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: ownerID,
		Status: &completed,
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
	assert.Equal(t, "completed", resp.Bookings[0].Status)

	confirmed := "confirmed"
	resp, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: ownerID,
		Status: &confirmed,
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)
}

func TestGetVenueBookings_Access(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: booking(1, domain.StatusConfirmed, ts(3, 12), ts(3, 14)),
	}}
	svc := newTestService(repo, ts(2, 10))

	// Владелец площадки видит её бронирования
	resp, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{
		UserID: 50, VenueID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	// Обычный пользователь - нет
	_, err = svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{
		UserID: ownerID, VenueID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: booking(1, domain.StatusPending, ts(3, 12), ts(3, 14)),
	}}
	svc := newTestService(repo, ts(2, 10))

	long := make([]byte, domain.MaxCancellationReasonLength+1)
	for i := range long {
		long[i] = 'a'
	}

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             ownerID,
		CancellationReason: string(long),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
