package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/rentalall/booking-service/internal/domain"
	"github.com/rentalall/booking-service/pkg/psqlbuilder"
	"github.com/rentalall/booking-service/pkg/txmanager"
)

var paymentColumns = []string{
	"id",
	"booking_id",
	"amount",
	"method",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с платежами
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Create создает новый платеж в статусе initiated
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("booking_id", "amount", "method", "status").
		Values(payment.BookingID, payment.Amount, payment.Method, payment.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return payment, nil
}

// GetByID получает платеж по ID
// Если вызов происходит внутри транзакции, строка блокируется через FOR UPDATE
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"id": id})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	payment, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan payment: %v", ErrScanRow, err)
	}

	return payment, nil
}

// GetByBookingID получает все платежи бронирования, новые первыми
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) ([]*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(&p.ID, &p.BookingID, &p.Amount, &p.Method, &p.Status, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBookingID - scan row: %v", ErrScanRow, err)
		}

		p.CreatedAt = createdAt.Time
		p.UpdatedAt = updatedAt.Time
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}

// HasBlocking проверяет, есть ли у бронирования платеж, блокирующий
// создание нового (initiated или succeeded; failed разрешает повтор)
func (r *Repository) HasBlocking(ctx context.Context, bookingID int64) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(id)").
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		Where(squirrel.Eq{"status": []string{
			string(domain.PaymentInitiated),
			string(domain.PaymentSucceeded),
		}}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasBlocking - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasBlocking - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// Settle переводит платеж из initiated в терминальный статус
// Возвращает ErrPaymentNotFound, если платеж не существует либо уже settled
// (вызывающий код различает эти случаи повторной выборкой)
func (r *Repository) Settle(ctx context.Context, id int64, outcome domain.PaymentStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", outcome).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.PaymentInitiated}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Settle - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Settle - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Settle - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// scanPayment сканирует одну строку результата в платеж
func scanPayment(row *sql.Row) (*domain.Payment, error) {
	var p domain.Payment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(&p.ID, &p.BookingID, &p.Amount, &p.Method, &p.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
