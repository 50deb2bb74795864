package entity

// Extraction outcome for a single extractor attempt. The pipeline treats
// empty and error identically for control flow; the reason is kept so
// callers and tests can tell why a result was empty.
type ExtractionOutcome string

const (
	OutcomeOK    ExtractionOutcome = "ok"
	OutcomeEmpty ExtractionOutcome = "empty"
	OutcomeError ExtractionOutcome = "error"
)

// FlightCandidate is an extracted-but-not-yet-persisted flight. It may
// miss required fields; the indexer drops incomplete candidates.
type FlightCandidate struct {
	Origin       string `json:"origin"`
	Dest         string `json:"dest"`
	DepartDate   string `json:"depart_date"`
	DepartTime   string `json:"depart_time"`
	ArrivalDate  string `json:"arrival_date"`
	ArrivalTime  string `json:"arrival_time"`
	Airline      string `json:"airline"`
	FlightNumber string `json:"flight_number"`
	PNR          string `json:"pnr"`
	Passengers   string `json:"passengers"`
}

// Storable reports whether the candidate meets the minimum-field gate.
func (c *FlightCandidate) Storable() bool {
	return c.Dest != "" && c.DepartDate != ""
}

// HotelCandidate is an extracted-but-not-yet-persisted hotel stay.
type HotelCandidate struct {
	HotelName    string `json:"hotel_name"`
	City         string `json:"city"`
	CheckinDate  string `json:"checkin_date"`
	CheckoutDate string `json:"checkout_date"`
	Address      string `json:"address"`
}

// Storable reports whether the candidate meets the minimum-field gate.
func (c *HotelCandidate) Storable() bool {
	return c.CheckinDate != ""
}

// ExtractionResult is the typed outcome of one AI extraction attempt.
// A failed call degrades to empty candidate lists with Outcome set to
// OutcomeError and a reason; it is never surfaced as a Go error.
type ExtractionResult struct {
	Flights []FlightCandidate
	Hotels  []HotelCandidate
	Outcome ExtractionOutcome
	Reason  string
}

// EmptyExtraction builds a failed-or-empty result with the given outcome.
func EmptyExtraction(outcome ExtractionOutcome, reason string) ExtractionResult {
	return ExtractionResult{Outcome: outcome, Reason: reason}
}
