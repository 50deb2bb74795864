// internal/domain/entity/flight_record.go
package entity

import (
	"time"
)

// FlightRecord is a persisted flight extracted from a travel document.
// Dest and DepartDate are the minimum required fields; everything else
// may be empty.
type FlightRecord struct {
	ID           string
	Waid         string
	Origin       string
	Dest         string
	DepartDate   string // YYYY-MM-DD
	DepartTime   string // HH:MM, 24h, optional
	ArrivalDate  string
	ArrivalTime  string
	Airline      string
	FlightNumber string
	PNR          string
	Passengers   string
	SourceDocID  string
	RawExcerpt   string
	CreatedAt    time.Time
}
