package get_occupied_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentalall/booking-service/internal/domain"
	"github.com/rentalall/booking-service/internal/integrations/venueservice"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByVenueWithFilter(_ context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.VenueID == filter.VenueID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeVenueClient struct {
	exists bool
}

func (f *fakeVenueClient) GetVenue(_ context.Context, venueID int64) (*venueservice.Venue, error) {
	if !f.exists {
		return nil, venueservice.ErrVenueNotFound
	}
	return &venueservice.Venue{ID: venueID, IsActive: true}, nil
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

func ts(day, hour, min int) time.Time {
	return time.Date(2026, 9, day, hour, min, 0, 0, time.UTC)
}

func newTestUseCase(repo *fakeBookingRepo, now time.Time) *UseCase {
	uc := NewUseCase(repo, &fakeVenueClient{exists: true}, nopLogger{})
	uc.timeProvider = &fixedClock{now: now}
	return uc
}

func slotByTime(t *testing.T, slots []Slot, hhmm string) Slot {
	t.Helper()
	for _, s := range slots {
		if s.Time.String() == hhmm {
			return s
		}
	}
	t.Fatalf("slot %s not found in projection", hhmm)
	return Slot{}
}

func TestExecute_EmptyDay(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, ts(1, 7, 0))

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: ts(2, 0, 0)})

	require.NoError(t, err)
	assert.Empty(t, resp.OccupiedRanges)

	// Граница закрытия (23:00) началом слота не является и в проекцию не входит
	require.Len(t, resp.Slots, domain.GridBoundariesPerDay-1)
	assert.Equal(t, "08:00", resp.Slots[0].Time.String())
	assert.Equal(t, "22:30", resp.Slots[len(resp.Slots)-1].Time.String())

	for _, s := range resp.Slots {
		assert.False(t, s.Occupied)
		assert.False(t, s.Past)
	}
}

func TestExecute_OccupancyProjection(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, VenueID: 1, DateStart: ts(2, 10, 0), DateEnd: ts(2, 12, 0), Status: domain.StatusConfirmed},
	}}
	uc := newTestUseCase(repo, ts(1, 7, 0))

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: ts(2, 0, 0)})
	require.NoError(t, err)

	require.Len(t, resp.OccupiedRanges, 1)
	assert.Equal(t, ts(2, 10, 0), resp.OccupiedRanges[0].Start)
	assert.Equal(t, ts(2, 12, 0), resp.OccupiedRanges[0].End)

	// Бронирование на несколько слотов накрывает все границы внутри интервала
	assert.True(t, slotByTime(t, resp.Slots, "10:00").Occupied)
	assert.True(t, slotByTime(t, resp.Slots, "10:30").Occupied)
	assert.True(t, slotByTime(t, resp.Slots, "11:30").Occupied)

	// Конец интервала не входит
	assert.False(t, slotByTime(t, resp.Slots, "12:00").Occupied)
	assert.False(t, slotByTime(t, resp.Slots, "09:30").Occupied)
}

func TestExecute_InactiveBookingsDoNotOccupy(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, VenueID: 1, DateStart: ts(2, 10, 0), DateEnd: ts(2, 12, 0), Status: domain.StatusCancelled},
	}}
	uc := newTestUseCase(repo, ts(1, 7, 0))

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: ts(2, 0, 0)})
	require.NoError(t, err)

	assert.Empty(t, resp.OccupiedRanges)
	assert.False(t, slotByTime(t, resp.Slots, "10:00").Occupied)
}

func TestExecute_PendingBookingOccupies(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, VenueID: 1, DateStart: ts(2, 10, 0), DateEnd: ts(2, 11, 0), Status: domain.StatusPending},
	}}
	uc := newTestUseCase(repo, ts(1, 7, 0))

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: ts(2, 0, 0)})
	require.NoError(t, err)

	assert.True(t, slotByTime(t, resp.Slots, "10:00").Occupied)
	assert.True(t, slotByTime(t, resp.Slots, "10:30").Occupied)
	assert.False(t, slotByTime(t, resp.Slots, "11:00").Occupied)
}

func TestExecute_PastClassification(t *testing.T) {
	// Сейчас 12:10 того же дня: всё до 12:00 в прошлом, 12:00 и дальше - нет
	uc := newTestUseCase(&fakeBookingRepo{}, ts(2, 12, 10))

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: ts(2, 0, 0)})
	require.NoError(t, err)

	assert.True(t, slotByTime(t, resp.Slots, "11:30").Past)
	assert.False(t, slotByTime(t, resp.Slots, "12:00").Past)
	assert.False(t, slotByTime(t, resp.Slots, "12:30").Past)
}

func TestExecute_FutureDateHasNoPastSlots(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, ts(2, 12, 10))

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: ts(3, 0, 0)})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		assert.False(t, s.Past)
	}
}

func TestExecute_PastDateAllSlotsPast(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, ts(2, 12, 10))

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: ts(1, 0, 0)})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		assert.True(t, s.Past)
	}
}

func TestExecute_RangesSorted(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 2, VenueID: 1, DateStart: ts(2, 15, 0), DateEnd: ts(2, 16, 0), Status: domain.StatusConfirmed},
		{ID: 1, VenueID: 1, DateStart: ts(2, 9, 0), DateEnd: ts(2, 10, 0), Status: domain.StatusPending},
	}}
	uc := newTestUseCase(repo, ts(1, 7, 0))

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: ts(2, 0, 0)})
	require.NoError(t, err)

	require.Len(t, resp.OccupiedRanges, 2)
	assert.True(t, resp.OccupiedRanges[0].Start.Before(resp.OccupiedRanges[1].Start))
}

func TestExecute_VenueNotFound(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeVenueClient{exists: false}, nopLogger{})
	uc.timeProvider = &fixedClock{now: ts(1, 7, 0)}

	_, err := uc.Execute(context.Background(), &Request{VenueID: 404, Date: ts(2, 0, 0)})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}
