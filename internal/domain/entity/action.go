package entity

// ActionKind is the closed set of operations a classifier in front of
// the core may request. The core only ever consumes these typed actions,
// never raw request strings.
type ActionKind string

const (
	ActionListUserFlights ActionKind = "list_user_flights"
	ActionFlightDetails   ActionKind = "flight_details"
	ActionSubscribeFlight ActionKind = "subscribe_flight"
	ActionCancelFlight    ActionKind = "cancel_flight"
	ActionListWatches     ActionKind = "list_watches"
	ActionFlightStatus    ActionKind = "flight_status"
	ActionResetSession    ActionKind = "reset_session"
)

// Details scopes for ActionFlightDetails.
const (
	ScopeLatest = "latest"
	ScopeReturn = "return"
	ScopeAll    = "all"
)

// Action is one typed request against the core, scoped to Waid.
type Action struct {
	Kind ActionKind
	Waid string

	// ActionListUserFlights / ActionFlightDetails
	RangeDays int
	Scope     string

	// ActionSubscribeFlight / ActionCancelFlight / ActionFlightStatus.
	// An empty Iata on cancel means "cancel all watches for this owner".
	Iata string
	Date string
}
