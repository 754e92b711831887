package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentalall/booking-service/internal/domain"
	"github.com/rentalall/booking-service/internal/integrations/venueservice"
	"github.com/rentalall/booking-service/pkg/txmanager"
)

// Фейки

type fakeBookingRepo struct {
	bookings []*domain.Booking
	created  *domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	created := *b
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	f.bookings = append(f.bookings, &created)
	return &created, nil
}

func (f *fakeBookingRepo) GetByVenueWithFilter(_ context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.VenueID != filter.VenueID {
			continue
		}
		if filter.StartDate != nil && filter.EndDate != nil && !b.Overlaps(*filter.StartDate, *filter.EndDate) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
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

// fakeTxManager выполняет fn без транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// exhaustedTxManager имитирует исчерпание повторов сериализации
type exhaustedTxManager struct{}

func (f *exhaustedTxManager) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return txmanager.ErrSerializationFailure
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

// Хелперы

func ts(day, hour, min int) time.Time {
	return time.Date(2026, 9, day, hour, min, 0, 0, time.UTC)
}

func testPolicy() Policy {
	return Policy{MinDurationHours: 1, MaxDurationHours: 24}
}

func newTestUseCase(repo *fakeBookingRepo, venues *fakeVenueClient, now time.Time) *UseCase {
	uc := NewUseCase(repo, venues, &fakeTxManager{}, time.UTC, testPolicy(), nopLogger{})
	uc.timeProvider = &fixedClock{now: now}
	return uc
}

func activeVenue(id int64, pricePerHour float64) *fakeVenueClient {
	return &fakeVenueClient{venues: map[int64]*venueservice.Venue{
		id: {ID: id, OwnerID: 99, Title: "Loft", PricePerHour: pricePerHour, IsActive: true},
	}}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, activeVenue(1, 1000), ts(1, 9, 0))

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    10,
		VenueID:   1,
		DateStart: ts(1, 10, 0),
		DateEnd:   ts(1, 12, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 2000.0, resp.TotalPrice)
	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusPending, repo.created.Status)
}

func TestExecute_PriceIsDeterministic(t *testing.T) {
	// Две площадки, одинаковый интервал и ставка - одинаковая цена
	for i := 0; i < 2; i++ {
		repo := &fakeBookingRepo{}
		uc := newTestUseCase(repo, activeVenue(1, 1000), ts(1, 9, 0))

		resp, err := uc.Execute(context.Background(), &Request{
			UserID:    10,
			VenueID:   1,
			DateStart: ts(1, 10, 0),
			DateEnd:   ts(1, 11, 30),
		})

		require.NoError(t, err)
		assert.Equal(t, 1500.0, resp.TotalPrice)
	}
}

func TestExecute_InvalidAlignment(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, activeVenue(1, 1000), ts(1, 9, 0))

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"start off grid", ts(1, 10, 15), ts(1, 12, 0)},
		{"end off grid", ts(1, 10, 0), ts(1, 12, 10)},
		{"start before opening", ts(1, 7, 0), ts(1, 9, 0)},
		{"end after closing", ts(1, 22, 0), ts(1, 23, 30)},
		{"crosses midnight", ts(1, 22, 0), ts(2, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &Request{
				UserID: 10, VenueID: 1, DateStart: tt.start, DateEnd: tt.end,
			})
			assert.ErrorIs(t, err, ErrInvalidAlignment)
		})
	}
}

func TestExecute_ForeignOffsetCheckedInServiceZone(t *testing.T) {
	// Выравнивание и рабочее окно проверяются в зоне сервиса, а не в зоне
	// метки клиента. 10:00 со смещением +03:15 - это 06:45 по зоне сервиса:
	// мимо сетки и до открытия, запрос отклоняется
	odd := time.FixedZone("UTC+3:15", 3*3600+15*60)
	uc := newTestUseCase(&fakeBookingRepo{}, activeVenue(1, 1000), ts(1, 9, 0))

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    10,
		VenueID:   1,
		DateStart: time.Date(2026, 9, 1, 10, 0, 0, 0, odd),
		DateEnd:   time.Date(2026, 9, 1, 11, 0, 0, 0, odd),
	})
	assert.ErrorIs(t, err, ErrInvalidAlignment)
}

func TestExecute_ForeignOffsetOnGridIsAccepted(t *testing.T) {
	// Смещение клиента не меняет момент времени: 12:00+02:00 и 10:00 UTC -
	// одна и та же граница сетки, бронирование сохраняется на ней
	plusTwo := time.FixedZone("UTC+2", 2*3600)
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, activeVenue(1, 1000), ts(1, 9, 0))

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    10,
		VenueID:   1,
		DateStart: time.Date(2026, 9, 1, 12, 0, 0, 0, plusTwo),
		DateEnd:   time.Date(2026, 9, 1, 14, 0, 0, 0, plusTwo),
	})

	require.NoError(t, err)
	assert.True(t, resp.DateStart.Equal(ts(1, 10, 0)))
	require.NotNil(t, repo.created)
	assert.Equal(t, 0, repo.created.DateStart.UTC().Minute())
	assert.True(t, repo.created.DateStart.Equal(ts(1, 10, 0)))
}

func TestExecute_InvalidRange(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, activeVenue(1, 1000), ts(1, 9, 0))

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 10, VenueID: 1, DateStart: ts(1, 12, 0), DateEnd: ts(1, 10, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = uc.Execute(context.Background(), &Request{
		UserID: 10, VenueID: 1, DateStart: ts(1, 10, 0), DateEnd: ts(1, 10, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExecute_DurationOutOfRange(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := NewUseCase(repo, activeVenue(1, 1000), &fakeTxManager{}, time.UTC, Policy{MinDurationHours: 1, MaxDurationHours: 4}, nopLogger{})
	uc.timeProvider = &fixedClock{now: ts(1, 9, 0)}

	// Полчаса - короче минимума
	_, err := uc.Execute(context.Background(), &Request{
		UserID: 10, VenueID: 1, DateStart: ts(1, 10, 0), DateEnd: ts(1, 10, 30),
	})
	assert.ErrorIs(t, err, ErrDurationOutOfRange)

	// Пять часов - длиннее максимума
	_, err = uc.Execute(context.Background(), &Request{
		UserID: 10, VenueID: 1, DateStart: ts(1, 10, 0), DateEnd: ts(1, 15, 0),
	})
	assert.ErrorIs(t, err, ErrDurationOutOfRange)
}

func TestExecute_PastStart(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, activeVenue(1, 1000), ts(2, 12, 0))

	// Слот раньше текущего момента на той же дате
	_, err := uc.Execute(context.Background(), &Request{
		UserID: 10, VenueID: 1, DateStart: ts(2, 10, 0), DateEnd: ts(2, 11, 0),
	})
	assert.ErrorIs(t, err, ErrPastStart)

	// Слот на границе усечённого текущего момента ещё доступен
	uc2 := newTestUseCase(&fakeBookingRepo{}, activeVenue(1, 1000), ts(2, 12, 10))
	_, err = uc2.Execute(context.Background(), &Request{
		UserID: 10, VenueID: 1, DateStart: ts(2, 12, 0), DateEnd: ts(2, 13, 0),
	})
	assert.NoError(t, err)

	// Завтрашний слот - не прошлое
	uc3 := newTestUseCase(&fakeBookingRepo{}, activeVenue(1, 1000), ts(2, 12, 0))
	_, err = uc3.Execute(context.Background(), &Request{
		UserID: 10, VenueID: 1, DateStart: ts(3, 10, 0), DateEnd: ts(3, 11, 0),
	})
	assert.NoError(t, err)
}

func TestExecute_SlotConflict(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, activeVenue(1, 1000), ts(1, 9, 0))

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 10, VenueID: 1, DateStart: ts(1, 10, 0), DateEnd: ts(1, 12, 0),
	})
	require.NoError(t, err)

	// Пересекающийся интервал другого пользователя
	_, err = uc.Execute(context.Background(), &Request{
		UserID: 11, VenueID: 1, DateStart: ts(1, 11, 0), DateEnd: ts(1, 13, 0),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Касание границ конфликтом не является
	_, err = uc.Execute(context.Background(), &Request{
		UserID: 11, VenueID: 1, DateStart: ts(1, 12, 0), DateEnd: ts(1, 13, 0),
	})
	assert.NoError(t, err)
}

func TestExecute_CancelledBookingReleasesSlot(t *testing.T) {
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 1, VenueID: 1, DateStart: ts(1, 10, 0), DateEnd: ts(1, 12, 0), Status: domain.StatusCancelled},
		},
		nextID: 1,
	}
	uc := newTestUseCase(repo, activeVenue(1, 1000), ts(1, 9, 0))

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 10, VenueID: 1, DateStart: ts(1, 10, 0), DateEnd: ts(1, 12, 0),
	})
	assert.NoError(t, err)
}

func TestExecute_VenueNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeVenueClient{venues: map[int64]*venueservice.Venue{}}, ts(1, 9, 0))

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 10, VenueID: 404, DateStart: ts(1, 10, 0), DateEnd: ts(1, 12, 0),
	})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_VenueInactive(t *testing.T) {
	venues := &fakeVenueClient{venues: map[int64]*venueservice.Venue{
		1: {ID: 1, PricePerHour: 1000, IsActive: false},
	}}
	uc := newTestUseCase(&fakeBookingRepo{}, venues, ts(1, 9, 0))

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 10, VenueID: 1, DateStart: ts(1, 10, 0), DateEnd: ts(1, 12, 0),
	})
	assert.ErrorIs(t, err, ErrVenueInactive)
}

func TestExecute_SerializationExhaustionIsConflict(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, activeVenue(1, 1000), &exhaustedTxManager{}, time.UTC, testPolicy(), nopLogger{})
	uc.timeProvider = &fixedClock{now: ts(1, 9, 0)}

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 10, VenueID: 1, DateStart: ts(1, 10, 0), DateEnd: ts(1, 12, 0),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, activeVenue(1, 1000), ts(1, 9, 0))

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 0, VenueID: 1, DateStart: ts(1, 10, 0), DateEnd: ts(1, 12, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		UserID: 10, VenueID: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
