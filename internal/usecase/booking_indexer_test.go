package usecase

import (
	"context"
	"errors"
	"testing"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndexer(flights *fakeFlightRepo, hotels *fakeHotelRepo, cal *fakeCalendar) *BookingIndexer {
	return NewBookingIndexer(flights, hotels, cal, testMetrics, logger.NewNop(), "TLV")
}

func TestIndexPersistsAIFlights(t *testing.T) {
	flights := &fakeFlightRepo{}
	hotels := &fakeHotelRepo{}
	indexer := newTestIndexer(flights, hotels, &fakeCalendar{})

	result := entity.ExtractionResult{
		Outcome: entity.OutcomeOK,
		Flights: []entity.FlightCandidate{
			{Origin: "TLV", Dest: "HKT", DepartDate: "2025-09-10", DepartTime: "22:05", Airline: "El Al", FlightNumber: "LY87"},
		},
		Hotels: []entity.HotelCandidate{
			{HotelName: "Banyan Tree", City: "Phuket", CheckinDate: "2025-09-11", CheckoutDate: "2025-09-15"},
		},
	}

	nFlights, nHotels := indexer.Index(context.Background(), "972501234567", "doc-1", "raw text", result)

	assert.Equal(t, 1, nFlights)
	assert.Equal(t, 1, nHotels)
	require.Len(t, flights.saved, 1)
	assert.Equal(t, "HKT", flights.saved[0].Dest)
	assert.Equal(t, "doc-1", flights.saved[0].SourceDocID)
	assert.NotEmpty(t, flights.saved[0].ID)
	require.Len(t, hotels.saved, 1)
	assert.Equal(t, "Banyan Tree", hotels.saved[0].HotelName)
}

func TestIndexHeuristicFallbackWhenAIEmpty(t *testing.T) {
	flights := &fakeFlightRepo{}
	indexer := newTestIndexer(flights, &fakeHotelRepo{}, &fakeCalendar{})

	text := "flight from tel aviv to bangkok on 2025-09-08 at 14:30"
	result := entity.EmptyExtraction(entity.OutcomeError, "model timeout")

	nFlights, _ := indexer.Index(context.Background(), "972501234567", "doc-2", text, result)

	require.Equal(t, 1, nFlights)
	assert.Equal(t, "BKK", flights.saved[0].Dest)
	assert.Equal(t, "TLV", flights.saved[0].Origin)
	assert.Equal(t, "2025-09-08", flights.saved[0].DepartDate)
	assert.Equal(t, "14:30", flights.saved[0].DepartTime)
}

func TestIndexHeuristicFallbackLoneIataToken(t *testing.T) {
	flights := &fakeFlightRepo{}
	indexer := newTestIndexer(flights, &fakeHotelRepo{}, &fakeCalendar{})

	nFlights, _ := indexer.Index(context.Background(), "972501234567", "doc-2b",
		"Flight to BKK on 2025-09-08", entity.EmptyExtraction(entity.OutcomeError, "model timeout"))

	require.Equal(t, 1, nFlights)
	assert.Equal(t, "BKK", flights.saved[0].Dest)
	assert.Equal(t, "TLV", flights.saved[0].Origin)
	assert.Equal(t, "2025-09-08", flights.saved[0].DepartDate)
}

func TestIndexAIFlightsTakePrecedenceOverHeuristic(t *testing.T) {
	flights := &fakeFlightRepo{}
	indexer := newTestIndexer(flights, &fakeHotelRepo{}, &fakeCalendar{})

	// The text alone would heuristically resolve to TLV-BKK; the AI
	// result must win wholesale.
	text := "trip from tel aviv to bangkok 2025-09-08"
	result := entity.ExtractionResult{
		Outcome: entity.OutcomeOK,
		Flights: []entity.FlightCandidate{{Origin: "TLV", Dest: "HKT", DepartDate: "2025-09-10"}},
	}

	nFlights, _ := indexer.Index(context.Background(), "972501234567", "doc-3", text, result)

	require.Equal(t, 1, nFlights)
	assert.Equal(t, "HKT", flights.saved[0].Dest)
	assert.Equal(t, "2025-09-10", flights.saved[0].DepartDate)
}

func TestIndexDropsCandidatesBelowMinimumFields(t *testing.T) {
	flights := &fakeFlightRepo{}
	hotels := &fakeHotelRepo{}
	indexer := newTestIndexer(flights, hotels, &fakeCalendar{})

	result := entity.ExtractionResult{
		Outcome: entity.OutcomeOK,
		Flights: []entity.FlightCandidate{
			{Dest: "BKK"},              // no depart date
			{DepartDate: "2025-09-08"}, // no dest
			{Dest: "BKK", DepartDate: "2025-09-08"},
		},
		Hotels: []entity.HotelCandidate{
			{HotelName: "Hilton"}, // no checkin date
		},
	}

	nFlights, nHotels := indexer.Index(context.Background(), "972501234567", "doc-4", "", result)

	assert.Equal(t, 1, nFlights)
	assert.Equal(t, 0, nHotels)
}

func TestIndexNoHeuristicWhenCandidateIncomplete(t *testing.T) {
	flights := &fakeFlightRepo{}
	indexer := newTestIndexer(flights, &fakeHotelRepo{}, &fakeCalendar{})

	// A route resolves but no date anywhere, so the heuristic candidate
	// fails the gate and nothing is stored.
	nFlights, _ := indexer.Index(context.Background(), "972501234567", "doc-5",
		"from tel aviv to bangkok sometime soon", entity.EmptyExtraction(entity.OutcomeEmpty, ""))

	assert.Equal(t, 0, nFlights)
	assert.Empty(t, flights.saved)
}

func TestIndexCalendarFailureDoesNotAffectPersistence(t *testing.T) {
	flights := &fakeFlightRepo{}
	cal := &fakeCalendar{err: errors.New("no linked calendar")}
	indexer := newTestIndexer(flights, &fakeHotelRepo{}, cal)

	result := entity.ExtractionResult{
		Outcome: entity.OutcomeOK,
		Flights: []entity.FlightCandidate{{Dest: "BKK", DepartDate: "2025-09-08"}},
	}

	nFlights, _ := indexer.Index(context.Background(), "972501234567", "doc-6", "", result)

	assert.Equal(t, 1, nFlights)
	assert.Len(t, flights.saved, 1)
}

func TestIndexSaveErrorSkipsRecordAndContinues(t *testing.T) {
	flights := &fakeFlightRepo{saveErr: errors.New("db down")}
	hotels := &fakeHotelRepo{}
	indexer := newTestIndexer(flights, hotels, &fakeCalendar{})

	result := entity.ExtractionResult{
		Outcome: entity.OutcomeOK,
		Flights: []entity.FlightCandidate{{Dest: "BKK", DepartDate: "2025-09-08"}},
		Hotels:  []entity.HotelCandidate{{HotelName: "Hilton", CheckinDate: "2025-09-09"}},
	}

	nFlights, nHotels := indexer.Index(context.Background(), "972501234567", "doc-7", "", result)

	assert.Equal(t, 0, nFlights)
	assert.Equal(t, 1, nHotels)
}

func TestIndexCalendarEventShapes(t *testing.T) {
	cal := &fakeCalendar{}
	indexer := newTestIndexer(&fakeFlightRepo{}, &fakeHotelRepo{}, cal)

	result := entity.ExtractionResult{
		Outcome: entity.OutcomeOK,
		Flights: []entity.FlightCandidate{
			{Origin: "TLV", Dest: "BKK", DepartDate: "2025-09-08", DepartTime: "14:30", FlightNumber: "LY81"},
			{Origin: "BKK", Dest: "TLV", DepartDate: "2025-09-20"},
		},
		Hotels: []entity.HotelCandidate{
			{HotelName: "Hilton", CheckinDate: "2025-09-09", CheckoutDate: "2025-09-12"},
		},
	}

	indexer.Index(context.Background(), "972501234567", "doc-8", "", result)

	require.Len(t, cal.events, 3)
	assert.Equal(t, "Flight TLV→BKK LY81", cal.events[0].Summary)
	assert.Contains(t, cal.events[0].Summary, "TLV→BKK")
	assert.False(t, cal.events[0].AllDay)
	assert.Contains(t, cal.events[0].Start, "2025-09-08T14:30")
	assert.True(t, cal.events[1].AllDay)
	assert.Equal(t, "2025-09-20", cal.events[1].Start)
	assert.True(t, cal.events[2].AllDay)
	assert.Equal(t, "2025-09-12", cal.events[2].End)
}
