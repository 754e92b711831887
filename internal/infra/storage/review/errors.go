package review

import "errors"

var (
	// ErrReviewNotFound возвращается, когда отзыв не найден
	ErrReviewNotFound = errors.New("review.repository: review not found")

	// ErrDuplicateReview возвращается при попытке создать второй отзыв
	// для одного бронирования (уникальный индекс по booking_id)
	ErrDuplicateReview = errors.New("review.repository: review already exists for this booking")

	// ErrStatusConflict возвращается, когда статус отзыва изменился конкурентно
	ErrStatusConflict = errors.New("review.repository: review status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("review.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("review.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("review.repository: failed to scan row")
)
