package get_occupied_slots

import (
	"context"

	getOccupiedSlots "github.com/rentalall/booking-service/internal/usecase/get_occupied_slots"
)

type GetOccupiedSlotsUseCase interface {
	Execute(ctx context.Context, req *getOccupiedSlots.Request) (*getOccupiedSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
