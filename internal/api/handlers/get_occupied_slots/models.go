package get_occupied_slots

import (
	"time"

	"github.com/rentalall/booking-service/internal/domain"
	getOccupiedSlots "github.com/rentalall/booking-service/internal/usecase/get_occupied_slots"
)

// OccupiedSlotsResponse HTTP response model
type OccupiedSlotsResponse struct {
	VenueID        int64           `json:"venueId"`
	Date           string          `json:"date"` // "2026-09-01"
	OccupiedRanges []RangeResponse `json:"occupiedRanges"`
	Slots          []SlotResponse  `json:"slots"`
}

// RangeResponse занятый интервал [start, end)
type RangeResponse struct {
	Start string `json:"start"` // RFC 3339
	End   string `json:"end"`   // RFC 3339
}

// SlotResponse граница дневной сетки
type SlotResponse struct {
	Time     string `json:"time"` // "HH:MM"
	Occupied bool   `json:"occupied"`
	Past     bool   `json:"past"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getOccupiedSlots.Response) *OccupiedSlotsResponse {
	out := &OccupiedSlotsResponse{
		VenueID:        resp.VenueID,
		Date:           resp.Date.Format(domain.DateFormat),
		OccupiedRanges: make([]RangeResponse, len(resp.OccupiedRanges)),
		Slots:          make([]SlotResponse, len(resp.Slots)),
	}

	for i, r := range resp.OccupiedRanges {
		out.OccupiedRanges[i] = RangeResponse{
			Start: r.Start.Format(time.RFC3339),
			End:   r.End.Format(time.RFC3339),
		}
	}

	for i, s := range resp.Slots {
		out.Slots[i] = SlotResponse{
			Time:     s.Time.String(),
			Occupied: s.Occupied,
			Past:     s.Past,
		}
	}

	return out
}
