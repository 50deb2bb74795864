package utils

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"tripwatch-service/internal/domain/entity"
)

// Heuristic extraction over free text: dates, times and airport codes.
// This is the deterministic safety net behind the AI extractor, never a
// field-level contributor to its results.

var (
	ymdRegex  = regexp.MustCompile(`(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})`)
	dmyRegex  = regexp.MustCompile(`(\d{1,2})[-/.](\d{1,2})[-/.](\d{4})`)
	timeRegex = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	iataRegex = regexp.MustCompile(`\b[A-Z]{3}\b`)
)

// ParseDates returns all distinct real calendar dates found in text,
// normalized to YYYY-MM-DD, in first-seen order. Matches that are not
// valid dates (month 13, day 40) are discarded.
func ParseDates(text string) []string {
	var out []string
	seen := make(map[string]bool)

	add := func(y, mo, d string) {
		year, _ := strconv.Atoi(y)
		month, _ := strconv.Atoi(mo)
		day, _ := strconv.Atoi(d)
		normalized := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		if _, err := time.Parse(DATE_LAYOUT, normalized); err != nil {
			return
		}
		if !seen[normalized] {
			seen[normalized] = true
			out = append(out, normalized)
		}
	}

	for _, m := range ymdRegex.FindAllStringSubmatch(text, -1) {
		add(m[1], m[2], m[3])
	}
	for _, m := range dmyRegex.FindAllStringSubmatch(text, -1) {
		add(m[3], m[2], m[1])
	}
	return out
}

// ParseTimes returns all distinct HH:MM times found in text with hour in
// [0,23] and minute in [0,59], zero-padded, in first-seen order.
func ParseTimes(text string) []string {
	var out []string
	seen := make(map[string]bool)

	for _, m := range timeRegex.FindAllStringSubmatch(text, -1) {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
			continue
		}
		normalized := fmt.Sprintf("%02d:%02d", hour, minute)
		if !seen[normalized] {
			seen[normalized] = true
			out = append(out, normalized)
		}
	}
	return out
}

// DetectAirports resolves an origin/dest pair from text. Two or more
// bare 3-letter uppercase tokens win; otherwise the city-name lookup
// table is scanned, first match as origin, next distinct match as dest.
// A lone bare token with no city hits counts as dest. A dest with no
// origin falls back to homeAirport.
func DetectAirports(text, homeAirport string) Airports {
	var res Airports

	iatas := iataRegex.FindAllString(text, -1)
	if len(iatas) >= 2 {
		res.Origin = iatas[0]
		res.Dest = iatas[1]
		return res
	}

	// Scan the city table by position in the text so the result does
	// not depend on map iteration order.
	lower := strings.ToLower(text)
	type cityHit struct {
		pos  int
		code string
	}
	var hits []cityHit
	for name, code := range CityMap {
		if pos := strings.Index(lower, name); pos >= 0 {
			hits = append(hits, cityHit{pos: pos, code: code})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	for _, hit := range hits {
		if res.Origin == "" {
			res.Origin = hit.code
		} else if res.Dest == "" && hit.code != res.Origin {
			res.Dest = hit.code
		}
	}

	if res.Origin == "" && res.Dest == "" && len(iatas) == 1 {
		res.Dest = iatas[0]
	}

	if res.Dest != "" && res.Origin == "" {
		res.Origin = homeAirport
	}
	return res
}

// NaiveFlightCandidate builds at most one flight candidate from free
// text. Nil when no destination could be resolved. Depart date/time come
// from the first recognized date/time, when present.
func NaiveFlightCandidate(text, homeAirport string) *entity.FlightCandidate {
	airports := DetectAirports(text, homeAirport)
	if airports.Dest == "" {
		return nil
	}

	candidate := &entity.FlightCandidate{
		Origin: airports.Origin,
		Dest:   airports.Dest,
	}
	if dates := ParseDates(text); len(dates) > 0 {
		candidate.DepartDate = dates[0]
	}
	if times := ParseTimes(text); len(times) > 0 {
		candidate.DepartTime = times[0]
	}
	return candidate
}
