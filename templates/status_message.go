package templates

import (
	"fmt"
	"strings"
	"time"

	"tripwatch-service/internal/domain/entity"
)

// FormatStatusMessage renders one flight snapshot as the multi-line
// notification body. Unknown fields render as a dash so the layout stays
// fixed regardless of provider coverage.
func FormatStatusMessage(snap *entity.CanonicalSnapshot, localTZ string) string {
	name := strVal(snap.Flight.Iata)
	if name == "-" {
		name = strVal(snap.Flight.Number)
	}

	lines := []string{
		fmt.Sprintf("✈️ Flight update %s", name),
		fmt.Sprintf("Status: %s | Airline: %s", strVal(snap.Status), strVal(snap.Airline)),
		fmt.Sprintf("Departure: %s terminal %s gate %s",
			strVal(snap.Departure.Airport), strVal(snap.Departure.Terminal), strVal(snap.Departure.Gate)),
		fmt.Sprintf("Departure times: scheduled %s | estimated %s | actual %s",
			FormatTimeBoth(snap.Departure.Scheduled, localTZ),
			FormatTimeBoth(snap.Departure.Estimated, localTZ),
			FormatTimeBoth(snap.Departure.Actual, localTZ)),
		fmt.Sprintf("Arrival: %s terminal %s gate %s (belt %s)",
			strVal(snap.Arrival.Airport), strVal(snap.Arrival.Terminal), strVal(snap.Arrival.Gate),
			strVal(snap.Arrival.Baggage)),
		fmt.Sprintf("Arrival times: scheduled %s | estimated %s | actual %s",
			FormatTimeBoth(snap.Arrival.Scheduled, localTZ),
			FormatTimeBoth(snap.Arrival.Estimated, localTZ),
			FormatTimeBoth(snap.Arrival.Actual, localTZ)),
	}
	return strings.Join(lines, "\n")
}

// FormatTimeBoth renders a provider timestamp in UTC and, when the zone
// is configured and loadable, the local zone alongside. Unparseable
// timestamps pass through as-is rather than being hidden.
func FormatTimeBoth(iso *string, localTZ string) string {
	if iso == nil || *iso == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, strings.Replace(*iso, "Z", "+00:00", 1))
	if err != nil {
		if t, err = time.Parse("2006-01-02T15:04:05", *iso); err != nil {
			return *iso
		}
	}

	utc := t.UTC().Format("2006-01-02 15:04") + " UTC"
	if localTZ != "" && localTZ != "UTC" {
		if loc, err := time.LoadLocation(localTZ); err == nil {
			local := t.In(loc).Format("2006-01-02 15:04") + " " + localTZ
			return utc + " | " + local
		}
	}
	return utc
}

func strVal(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
