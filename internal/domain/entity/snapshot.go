package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// CanonicalSnapshot is the normalized projection of a provider's
// flight-status response. Every field is a pointer marshaled without
// omitempty: a field the provider did not populate serializes as an
// explicit null, so the same logical status always produces the same
// JSON bytes and therefore the same hash, no matter which keys the
// provider happened to send or in what order.
type CanonicalSnapshot struct {
	Status    *string          `json:"status"`
	Airline   *string          `json:"airline"`
	Flight    FlightIdentity   `json:"flight"`
	Departure SnapshotEndpoint `json:"departure"`
	Arrival   SnapshotEndpoint `json:"arrival"`
}

// FlightIdentity carries the provider's identifiers for a flight.
type FlightIdentity struct {
	Iata   *string `json:"iata"`
	Icao   *string `json:"icao"`
	Number *string `json:"number"`
}

// SnapshotEndpoint is one side (departure or arrival) of a snapshot.
// Baggage is only populated on the arrival side.
type SnapshotEndpoint struct {
	Airport   *string `json:"airport"`
	Terminal  *string `json:"terminal"`
	Gate      *string `json:"gate"`
	Scheduled *string `json:"scheduled"`
	Estimated *string `json:"estimated"`
	Actual    *string `json:"actual"`
	Baggage   *string `json:"baggage"`
}

// JSON returns the canonical serialized form of the snapshot.
func (s *CanonicalSnapshot) JSON() string {
	b, _ := json.Marshal(s)
	return string(b)
}

// Hash returns the deterministic content hash of the snapshot. Struct
// field order fixes the key order, so logically equal snapshots hash
// identically.
func (s *CanonicalSnapshot) Hash() string {
	sum := sha256.Sum256([]byte(s.JSON()))
	return hex.EncodeToString(sum[:])
}
