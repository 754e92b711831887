package create_review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentalall/booking-service/internal/domain"
	bookingStorage "github.com/rentalall/booking-service/internal/infra/storage/booking"
	reviewStorage "github.com/rentalall/booking-service/internal/infra/storage/review"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingStorage.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) MarkReviewed(_ context.Context, id int64) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingStorage.ErrBookingNotFound
	}
	if b.HasReview {
		return bookingStorage.ErrAlreadyReviewed
	}
	b.HasReview = true
	return nil
}

type fakeReviewRepo struct {
	reviews []*domain.Review
	nextID  int64
}

func (f *fakeReviewRepo) Create(_ context.Context, r *domain.Review) (*domain.Review, error) {
	for _, existing := range f.reviews {
		if existing.BookingID == r.BookingID {
			return nil, reviewStorage.ErrDuplicateReview
		}
	}
	f.nextID++
	created := *r
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	f.reviews = append(f.reviews, &created)
	return &created, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

// now = 2026-09-02 15:00; бронирование 1 сентября 10:00-12:00 уже завершилось
func newFixture(status domain.BookingStatus, hasReview bool) (*fakeBookingRepo, *fakeReviewRepo, *UseCase) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: {
			ID: 1, UserID: 10, VenueID: 2,
			DateStart: ts(1, 10), DateEnd: ts(1, 12),
			Status: status, HasReview: hasReview,
		},
	}}
	reviews := &fakeReviewRepo{}
	uc := NewUseCase(bookings, reviews, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedClock{now: ts(2, 15)}
	return bookings, reviews, uc
}

func validRequest() *Request {
	return &Request{BookingID: 1, ActorID: 10, Rating: 5, Comment: "отличная площадка"}
}

func TestExecute_Success(t *testing.T) {
	bookings, reviews, uc := newFixture(domain.StatusConfirmed, false)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.BookingID)
	assert.Equal(t, int64(2), resp.VenueID)
	assert.Equal(t, int64(10), resp.UserID)
	assert.Equal(t, 5, resp.Rating)
	// Новый отзыв уходит на модерацию
	assert.Equal(t, string(domain.ReviewPending), resp.Status)

	assert.True(t, bookings.bookings[1].HasReview)
	assert.Len(t, reviews.reviews, 1)
}

func TestExecute_SingleShot(t *testing.T) {
	_, reviews, uc := newFixture(domain.StatusConfirmed, false)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	assert.Len(t, reviews.reviews, 1)
}

func TestExecute_AlreadyReviewedFlag(t *testing.T) {
	_, _, uc := newFixture(domain.StatusConfirmed, true)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestExecute_TooEarly(t *testing.T) {
	bookings, _, uc := newFixture(domain.StatusConfirmed, false)
	// Бронирование ещё идёт
	bookings.bookings[1].DateStart = ts(2, 14)
	bookings.bookings[1].DateEnd = ts(2, 16)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooEarly)
}

func TestExecute_NotCompleted(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusPending, domain.StatusCancelled} {
		_, _, uc := newFixture(status, false)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrNotCompleted, "status %s", status)
	}
}

func TestExecute_PastPendingIsNotCompleted(t *testing.T) {
	// Интервал прошёл, но бронирование так и не было подтверждено
	_, _, uc := newFixture(domain.StatusPending, false)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNotCompleted)
}

func TestExecute_AccessDenied(t *testing.T) {
	_, _, uc := newFixture(domain.StatusConfirmed, false)

	req := validRequest()
	req.ActorID = 20

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_BookingNotFound(t *testing.T) {
	_, _, uc := newFixture(domain.StatusConfirmed, false)

	req := validRequest()
	req.BookingID = 404

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidRating(t *testing.T) {
	_, _, uc := newFixture(domain.StatusConfirmed, false)

	for _, rating := range []int{0, -1, 6, 100} {
		req := validRequest()
		req.Rating = rating

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput, "rating %d", rating)
	}
}
