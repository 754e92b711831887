package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rentalall/booking-service/internal/api/handlers"
)

const userIDHeader = "X-User-ID"

type userIDKey struct{}

// Auth проверяет наличие заголовка X-User-ID и кладёт ID пользователя в контекст
// Аутентификацию выполняет API gateway, сервис доверяет заголовку
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(userIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int64)
	return userID, ok
}

// OptionalUserID извлекает ID пользователя, если запрос аутентифицирован
// Возвращает 0 для анонимного запроса
func OptionalUserID(r *http.Request) int64 {
	if userID, ok := GetUserID(r.Context()); ok {
		return userID
	}

	raw := r.Header.Get(userIDHeader)
	if raw == "" {
		return 0
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0
	}
	return userID
}
