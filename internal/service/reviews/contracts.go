package reviews

import (
	"context"

	"github.com/rentalall/booking-service/internal/domain"
	"github.com/rentalall/booking-service/internal/integrations/userservice"
	"github.com/rentalall/booking-service/internal/integrations/venueservice"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ListByVenue(ctx context.Context, venueID int64, onlyApproved bool) ([]*domain.Review, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Review, error)
	Moderate(ctx context.Context, id int64, status domain.ReviewStatus) error
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetVenue(ctx context.Context, venueID int64) (*venueservice.Venue, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
