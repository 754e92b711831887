package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/rentalall/booking-service/internal/domain"
	"github.com/rentalall/booking-service/pkg/psqlbuilder"
	"github.com/rentalall/booking-service/pkg/txmanager"
)

var reviewColumns = []string{
	"id",
	"booking_id",
	"venue_id",
	"user_id",
	"rating",
	"comment",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с отзывами
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Create создает новый отзыв в статусе pending
// Уникальный индекс по booking_id страхует инвариант "один отзыв на бронирование"
// на уровне хранилища
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns("booking_id", "venue_id", "user_id", "rating", "comment", "status").
		Values(review.BookingID, review.VenueID, review.UserID, review.Rating, review.Comment, review.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&review.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		// 23505 - unique_violation
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	review.CreatedAt = createdAt.Time
	review.UpdatedAt = updatedAt.Time

	return review, nil
}

// GetByID получает отзыв по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	review, err := scanReview(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan review: %v", ErrScanRow, err)
	}

	return review, nil
}

// ListByVenue получает отзывы площадки, новые первыми
// При onlyApproved=true возвращаются только одобренные отзывы (публичная выдача)
func (r *Repository) ListByVenue(ctx context.Context, venueID int64, onlyApproved bool) ([]*domain.Review, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("created_at DESC")

	if onlyApproved {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.ReviewApproved})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByVenue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByVenue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReviews(rows)
}

// ListByUser получает отзывы пользователя, новые первыми
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.Review, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReviews(rows)
}

// Moderate переводит отзыв из pending в approved или rejected
// Если отзыв уже отмодерирован, возвращает ErrStatusConflict
func (r *Repository) Moderate(ctx context.Context, id int64, status domain.ReviewStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reviews").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.ReviewPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Moderate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Moderate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Moderate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrStatusConflict
	}

	return nil
}

// scanReview сканирует одну строку результата в отзыв
func scanReview(row *sql.Row) (*domain.Review, error) {
	var rv domain.Review
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(&rv.ID, &rv.BookingID, &rv.VenueID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	rv.CreatedAt = createdAt.Time
	rv.UpdatedAt = updatedAt.Time

	return &rv, nil
}

// scanReviews сканирует результаты запроса в слайс отзывов
func scanReviews(rows *sql.Rows) ([]*domain.Review, error) {
	reviews := make([]*domain.Review, 0)

	for rows.Next() {
		var rv domain.Review
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(&rv.ID, &rv.BookingID, &rv.VenueID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.Status, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReviews - scan row: %v", ErrScanRow, err)
		}

		rv.CreatedAt = createdAt.Time
		rv.UpdatedAt = updatedAt.Time
		reviews = append(reviews, &rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReviews - rows error: %v", ErrScanRow, err)
	}

	return reviews, nil
}
