package domain

import "time"

// DayGrid returns the ordered slot boundaries for the given day:
// 08:00, 08:30, ..., 23:00 in the day's location (31 points, 30 intervals).
// Pure and idempotent - the same day always yields the same grid.
func DayGrid(date time.Time) []time.Time {
	open := time.Date(date.Year(), date.Month(), date.Day(), OpenHour, 0, 0, 0, date.Location())

	grid := make([]time.Time, 0, GridBoundariesPerDay)
	for i := 0; i < GridBoundariesPerDay; i++ {
		grid = append(grid, open.Add(time.Duration(i*SlotStepMinutes)*time.Minute))
	}
	return grid
}

// IsGridAligned reports whether t is a whole multiple of 30 minutes
// from local midnight (seconds and below must be zero).
func IsGridAligned(t time.Time) bool {
	return t.Minute()%SlotStepMinutes == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// WithinOperatingHours reports whether [start, end) lies inside the
// bookable window of a single day: start no earlier than 08:00 and
// end no later than 23:00 of the same date.
func WithinOperatingHours(start, end time.Time) bool {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if sy != ey || sm != em || sd != ed {
		return false
	}

	open := time.Date(sy, sm, sd, OpenHour, 0, 0, 0, start.Location())
	close := time.Date(sy, sm, sd, CloseHour, 0, 0, 0, start.Location())

	return !start.Before(open) && !end.After(close)
}

// TruncateToSlot rounds t down to the nearest 30-minute boundary.
// Used for the "past slot" classification: a slot is in the past when
// it is strictly before the truncated current moment.
func TruncateToSlot(t time.Time) time.Time {
	minute := t.Minute() / SlotStepMinutes * SlotStepMinutes
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
}

// OccupiedRange a half-open time interval [Start, End) held by an active booking
type OccupiedRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether slot boundary t falls inside the range,
// tested as Start <= t < End.
func (r OccupiedRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}
