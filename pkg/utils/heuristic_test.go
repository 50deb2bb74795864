package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDatesNormalizesBothShapes(t *testing.T) {
	dates := ParseDates("outbound 2025-09-08, back 20/09/2025")
	assert.Equal(t, []string{"2025-09-08", "2025-09-20"}, dates)
}

func TestParseDatesRejectsImpossibleDates(t *testing.T) {
	assert.Empty(t, ParseDates("see you on 2025-13-40"))
	assert.Empty(t, ParseDates("2025-02-30 is not a day"))
	assert.Equal(t, []string{"2024-02-29"}, ParseDates("leap day 2024-02-29"))
}

func TestParseDatesDeduplicatesFirstSeen(t *testing.T) {
	dates := ParseDates("2025-09-08 and again 08/09/2025 then 2025-09-10")
	assert.Equal(t, []string{"2025-09-08", "2025-09-10"}, dates)
}

func TestParseTimesValidatesAndPads(t *testing.T) {
	times := ParseTimes("boarding 9:05, departs 14:30, not 25:70")
	assert.Equal(t, []string{"09:05", "14:30"}, times)
}

func TestParseTimesDeduplicates(t *testing.T) {
	times := ParseTimes("14:30 gate closes 14:30")
	assert.Equal(t, []string{"14:30"}, times)
}

func TestDetectAirportsPrefersBareIataTokens(t *testing.T) {
	airports := DetectAirports("TLV to BKK on the 8th", "TLV")
	assert.Equal(t, Airports{Origin: "TLV", Dest: "BKK"}, airports)
}

func TestDetectAirportsCityLookupInTextOrder(t *testing.T) {
	airports := DetectAirports("from tel aviv to bangkok", "TLV")
	assert.Equal(t, Airports{Origin: "TLV", Dest: "BKK"}, airports)

	airports = DetectAirports("to bangkok from tel aviv", "TLV")
	assert.Equal(t, Airports{Origin: "BKK", Dest: "TLV"}, airports)
}

func TestDetectAirportsLoneIataTokenIsDestination(t *testing.T) {
	airports := DetectAirports("Flight to BKK on 2025-09-08", "TLV")
	assert.Equal(t, Airports{Origin: "TLV", Dest: "BKK"}, airports)
}

func TestDetectAirportsSingleCityBecomesOrigin(t *testing.T) {
	airports := DetectAirports("weekend in bangkok", "TLV")
	assert.Equal(t, "BKK", airports.Origin)
	assert.Empty(t, airports.Dest)
}

func TestNaiveFlightCandidate(t *testing.T) {
	c := NaiveFlightCandidate("flight from tel aviv to phuket on 2025-09-10 at 22:05", "TLV")
	require.NotNil(t, c)
	assert.Equal(t, "TLV", c.Origin)
	assert.Equal(t, "HKT", c.Dest)
	assert.Equal(t, "2025-09-10", c.DepartDate)
	assert.Equal(t, "22:05", c.DepartTime)
	assert.True(t, c.Storable())
}

func TestNaiveFlightCandidateNilWithoutDestination(t *testing.T) {
	assert.Nil(t, NaiveFlightCandidate("no travel content here", "TLV"))
	assert.Nil(t, NaiveFlightCandidate("weekend in bangkok", "TLV"))
}

func TestNaiveFlightCandidateWithoutDateFailsGate(t *testing.T) {
	c := NaiveFlightCandidate("tel aviv to bangkok sometime", "TLV")
	require.NotNil(t, c)
	assert.False(t, c.Storable())
}
