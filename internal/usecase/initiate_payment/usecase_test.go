package initiate_payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentalall/booking-service/internal/domain"
	bookingStorage "github.com/rentalall/booking-service/internal/infra/storage/booking"
	"github.com/rentalall/booking-service/internal/integrations/userservice"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingStorage.ErrBookingNotFound
	}
	return b, nil
}

type fakePaymentRepo struct {
	payments []*domain.Payment
	nextID   int64
}

func (f *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	f.nextID++
	created := *p
	created.ID = f.nextID
	f.payments = append(f.payments, &created)
	return &created, nil
}

func (f *fakePaymentRepo) HasBlocking(_ context.Context, bookingID int64) (bool, error) {
	for _, p := range f.payments {
		if p.BookingID == bookingID && p.Blocks() {
			return true, nil
		}
	}
	return false, nil
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

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pendingBooking(id, userID int64, price float64) *domain.Booking {
	return &domain.Booking{ID: id, UserID: userID, VenueID: 1, Status: domain.StatusPending, TotalPrice: price}
}

func newTestUseCase(bookings *fakeBookingRepo, payments *fakePaymentRepo, users *fakeUserClient) *UseCase {
	if users == nil {
		users = &fakeUserClient{users: map[int64]*userservice.User{}}
	}
	return NewUseCase(bookings, payments, users, &fakeTxManager{}, nopLogger{})
}

func TestExecute_Success(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: pendingBooking(1, 10, 2000),
	}}
	payments := &fakePaymentRepo{}
	uc := newTestUseCase(bookings, payments, nil)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: 10, Method: domain.MethodCard})

	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentInitiated), resp.Status)
	// Сумма платежа - снимок цены бронирования
	assert.Equal(t, 2000.0, resp.Amount)
	assert.Equal(t, string(domain.MethodCard), resp.Method)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{bookings: map[int64]*domain.Booking{}}, &fakePaymentRepo{}, nil)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 404, ActorID: 10, Method: domain.MethodCard})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_BookingNotPending(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusConfirmed, domain.StatusCancelled} {
		bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
			1: {ID: 1, UserID: 10, Status: status, TotalPrice: 2000},
		}}
		uc := newTestUseCase(bookings, &fakePaymentRepo{}, nil)

		_, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: 10, Method: domain.MethodCard})
		assert.ErrorIs(t, err, ErrBookingNotPending, "status %s", status)
	}
}

func TestExecute_BlockingPaymentExists(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: pendingBooking(1, 10, 2000),
	}}

	for _, status := range []domain.PaymentStatus{domain.PaymentInitiated, domain.PaymentSucceeded} {
		payments := &fakePaymentRepo{payments: []*domain.Payment{
			{ID: 1, BookingID: 1, Status: status},
		}, nextID: 1}
		uc := newTestUseCase(bookings, payments, nil)

		_, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: 10, Method: domain.MethodCard})
		assert.ErrorIs(t, err, ErrPaymentAlreadyExists, "payment status %s", status)
	}
}

func TestExecute_FailedPaymentAllowsRetry(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: pendingBooking(1, 10, 2000),
	}}
	payments := &fakePaymentRepo{payments: []*domain.Payment{
		{ID: 1, BookingID: 1, Status: domain.PaymentFailed},
	}, nextID: 1}
	uc := newTestUseCase(bookings, payments, nil)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: 10, Method: domain.MethodTransfer})

	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentInitiated), resp.Status)
}

func TestExecute_InvalidMethod(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakePaymentRepo{}, nil)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: 10, Method: "bitcoin"})
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestExecute_AccessDenied(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: pendingBooking(1, 10, 2000),
	}}
	users := &fakeUserClient{users: map[int64]*userservice.User{
		20: {ID: 20, IsAdmin: false},
	}}
	uc := newTestUseCase(bookings, &fakePaymentRepo{}, users)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: 20, Method: domain.MethodCard})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_AdminCanInitiateForOthers(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: pendingBooking(1, 10, 2000),
	}}
	users := &fakeUserClient{users: map[int64]*userservice.User{
		20: {ID: 20, IsAdmin: true},
	}}
	uc := newTestUseCase(bookings, &fakePaymentRepo{}, users)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: 20, Method: domain.MethodCash})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.BookingID)
}
