package repository

import (
	"context"
)

// StatusResult is the non-raising envelope of one provider query: either
// Data (possibly empty) or Err, never a propagated Go error.
type StatusResult struct {
	Data []map[string]interface{}
	Err  string
}

// Failed reports whether the query produced an error condition.
func (r *StatusResult) Failed() bool {
	return r.Err != ""
}

// FlightStatusRepository defines the interface for the flight-status
// provider query.
type FlightStatusRepository interface {
	Fetch(ctx context.Context, flightIata, flightDate string) StatusResult
}
