package repository

import (
	"context"
)

// CalendarEvent is the capability-level shape of a calendar entry.
// AllDay events carry date-only Start/End; timed events carry RFC3339
// local datetimes.
type CalendarEvent struct {
	Summary     string
	Description string
	Start       string
	End         string
	AllDay      bool
}

// CalendarRepository defines the interface for the calendar sync
// capability. Failure is non-fatal to every caller.
type CalendarRepository interface {
	AddEvent(ctx context.Context, waid string, event CalendarEvent) error
}
