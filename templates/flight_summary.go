package templates

import (
	"fmt"
	"strings"

	"tripwatch-service/internal/domain/entity"
)

// FormatFlightList renders upcoming flights as a compact bullet list.
func FormatFlightList(records []*entity.FlightRecord) string {
	if len(records) == 0 {
		return "No upcoming flights found. Send a ticket PDF or photo and I'll index it."
	}

	lines := []string{"✈️ Your flights:"}
	for _, r := range records {
		line := fmt.Sprintf("- %s %s %s→%s %s",
			r.DepartDate, r.DepartTime, r.Origin, r.Dest, strings.TrimSpace(r.FlightNumber))
		if r.Airline != "" {
			line += " | " + r.Airline
		}
		lines = append(lines, strings.Join(strings.Fields(line), " "))
	}
	return strings.Join(lines, "\n")
}

// FormatFlightDetails renders the full detail block for one or more
// flights.
func FormatFlightDetails(records []*entity.FlightRecord) string {
	if len(records) == 0 {
		return "No upcoming flights found. Send a ticket PDF or photo, or ask 'what are my flights'."
	}

	var lines []string
	for _, r := range records {
		lines = append(lines,
			"✈️ Flight details:",
			strings.TrimSpace(fmt.Sprintf("- Date/time: %s %s", r.DepartDate, r.DepartTime)),
			fmt.Sprintf("- Route: %s → %s", r.Origin, r.Dest),
			fmt.Sprintf("- Airline: %s", dash(r.Airline)),
			fmt.Sprintf("- Flight number: %s", dash(r.FlightNumber)),
			fmt.Sprintf("- PNR: %s", dash(r.PNR)),
			"",
		)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// FormatWatchList renders an owner's active flight subscriptions.
func FormatWatchList(subs []*entity.WatchSubscription) string {
	if len(subs) == 0 {
		return "No active flight subscriptions."
	}

	lines := []string{fmt.Sprintf("✈️ Active subscriptions (%d):", len(subs))}
	for _, s := range subs {
		line := fmt.Sprintf("#%d %s", s.ID, s.FlightIata)
		if s.FlightDate != "" {
			line += " " + s.FlightDate
		}
		line += fmt.Sprintf(" (since %s)", s.CreatedAt.Format("2006-01-02"))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// FormatDailyReminder renders tomorrow's departures and check-ins for
// one owner.
func FormatDailyReminder(flights []*entity.FlightRecord, hotels []*entity.HotelRecord) string {
	var items []string
	for _, f := range flights {
		t := f.DepartTime
		if t == "" {
			t = "time TBD"
		}
		items = append(items, strings.Join(strings.Fields(
			fmt.Sprintf("✈️ Tomorrow: %s→%s %s at %s", f.Origin, f.Dest, f.FlightNumber, t)), " "))
	}
	for _, h := range hotels {
		items = append(items, fmt.Sprintf("🏨 Tomorrow check-in: %s (%s)", dash(h.HotelName), h.City))
	}
	if len(items) == 0 {
		return ""
	}
	return "Reminder for tomorrow:\n" + strings.Join(items, "\n")
}

// FormatWeeklyDigest renders the coming week's bookings for one owner.
func FormatWeeklyDigest(flights []*entity.FlightRecord, hotels []*entity.HotelRecord) string {
	if len(flights) == 0 && len(hotels) == 0 {
		return ""
	}

	lines := []string{"🗓️ The week ahead:"}
	for _, f := range flights {
		lines = append(lines, strings.Join(strings.Fields(
			fmt.Sprintf("• ✈️ %s %s %s→%s %s", f.DepartDate, f.DepartTime, f.Origin, f.Dest, f.FlightNumber)), " "))
	}
	for _, h := range hotels {
		lines = append(lines, fmt.Sprintf("• 🏨 %s check-in: %s (%s)", h.CheckinDate, h.HotelName, h.City))
	}
	return strings.Join(lines, "\n")
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
