package entity

import (
	"time"
)

// ProviderAviationstack is the only supported flight-status provider.
const ProviderAviationstack = "aviationstack"

// WatchSubscription is a durable (owner, flight code) row tracking the
// last seen status snapshot for change detection. A row exists while the
// watch is active; cancellation deletes it. There is no paused state and
// no automatic expiry.
type WatchSubscription struct {
	ID           uint
	Waid         string
	FlightIata   string // normalized upper-case
	FlightDate   string // optional YYYY-MM-DD; empty means provider default
	Provider     string
	LastSnapshot string // canonical snapshot JSON, empty until first poll
	LastHash     string // empty until first poll
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
