package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/metrics"
	"tripwatch-service/pkg/utils"

	"github.com/google/uuid"
)

const excerptLimit = 160

// BookingIndexer merges extractor output into persisted booking records.
// One call covers one document pass; a failing record is logged and
// skipped so a bad candidate never sinks its siblings.
type BookingIndexer struct {
	flightRepo  repository.FlightRecordRepository
	hotelRepo   repository.HotelRecordRepository
	calendar    repository.CalendarRepository
	metrics     *metrics.Metrics
	logger      logger.Logger
	homeAirport string
}

// NewBookingIndexer creates a new booking indexer
func NewBookingIndexer(
	flightRepo repository.FlightRecordRepository,
	hotelRepo repository.HotelRecordRepository,
	calendar repository.CalendarRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
	homeAirport string,
) *BookingIndexer {
	return &BookingIndexer{
		flightRepo:  flightRepo,
		hotelRepo:   hotelRepo,
		calendar:    calendar,
		metrics:     metrics,
		logger:      logger,
		homeAirport: homeAirport,
	}
}

// Index persists the bookings of one extraction pass and returns how many
// flights and hotels were stored. When the AI pass produced no flights at
// all, a single heuristic candidate derived from the raw text stands in,
// provided it clears the minimum-field gate. The heuristic never fills
// individual fields of AI results.
func (i *BookingIndexer) Index(ctx context.Context, waid, docID, rawText string, result entity.ExtractionResult) (int, int) {
	flights := result.Flights
	if len(flights) == 0 {
		if naive := utils.NaiveFlightCandidate(rawText, i.homeAirport); naive != nil && naive.Storable() {
			i.logger.Info("Falling back to heuristic extraction", "waid", waid, "doc", docID)
			flights = []entity.FlightCandidate{*naive}
		}
	}

	excerpt := makeExcerpt(rawText)
	storedFlights := 0
	for _, c := range flights {
		if !c.Storable() {
			i.logger.Debug("Dropping incomplete flight candidate",
				"dest", c.Dest, "depart_date", c.DepartDate)
			continue
		}
		record := &entity.FlightRecord{
			ID:           uuid.New().String(),
			Waid:         waid,
			Origin:       c.Origin,
			Dest:         c.Dest,
			DepartDate:   c.DepartDate,
			DepartTime:   c.DepartTime,
			ArrivalDate:  c.ArrivalDate,
			ArrivalTime:  c.ArrivalTime,
			Airline:      c.Airline,
			FlightNumber: c.FlightNumber,
			PNR:          c.PNR,
			Passengers:   c.Passengers,
			SourceDocID:  docID,
			RawExcerpt:   excerpt,
		}
		if err := i.flightRepo.Save(ctx, record); err != nil {
			i.logger.Error("Failed to save flight record", "waid", waid, "error", err)
			i.metrics.ErrorsCount.WithLabelValues("index_flight").Inc()
			continue
		}
		storedFlights++
		i.metrics.FlightsExtracted.Inc()
		i.syncFlightToCalendar(ctx, waid, record)
	}

	storedHotels := 0
	for _, c := range result.Hotels {
		if !c.Storable() {
			continue
		}
		record := &entity.HotelRecord{
			ID:           uuid.New().String(),
			Waid:         waid,
			HotelName:    c.HotelName,
			City:         c.City,
			CheckinDate:  c.CheckinDate,
			CheckoutDate: c.CheckoutDate,
			Address:      c.Address,
			SourceDocID:  docID,
			RawExcerpt:   excerpt,
		}
		if err := i.hotelRepo.Save(ctx, record); err != nil {
			i.logger.Error("Failed to save hotel record", "waid", waid, "error", err)
			i.metrics.ErrorsCount.WithLabelValues("index_hotel").Inc()
			continue
		}
		storedHotels++
		i.metrics.HotelsExtracted.Inc()
		i.syncHotelToCalendar(ctx, waid, record)
	}

	return storedFlights, storedHotels
}

// syncFlightToCalendar mirrors a stored flight into the owner's calendar.
// Sync is best effort; failure never reaches the caller.
func (i *BookingIndexer) syncFlightToCalendar(ctx context.Context, waid string, rec *entity.FlightRecord) {
	if i.calendar == nil {
		return
	}

	summary := fmt.Sprintf("Flight %s→%s", rec.Origin, rec.Dest)
	if rec.FlightNumber != "" {
		summary += " " + rec.FlightNumber
	}

	event := repository.CalendarEvent{
		Summary:     summary,
		Description: strings.TrimSpace(fmt.Sprintf("%s %s\nPNR: %s", rec.Airline, rec.FlightNumber, orDash(rec.PNR))),
	}
	if rec.DepartTime != "" {
		start, err := time.Parse(utils.DATE_LAYOUT+" "+utils.TIME_LAYOUT, rec.DepartDate+" "+rec.DepartTime)
		if err == nil {
			event.Start = start.Format(time.RFC3339)
			event.End = start.Add(3 * time.Hour).Format(time.RFC3339)
		}
	}
	if event.Start == "" {
		event.AllDay = true
		event.Start = rec.DepartDate
		event.End = rec.DepartDate
	}

	if err := i.calendar.AddEvent(ctx, waid, event); err != nil {
		i.logger.Warn("Calendar sync skipped for flight", "waid", waid, "error", err)
	}
}

func (i *BookingIndexer) syncHotelToCalendar(ctx context.Context, waid string, rec *entity.HotelRecord) {
	if i.calendar == nil {
		return
	}

	event := repository.CalendarEvent{
		Summary:     fmt.Sprintf("Hotel: %s", orDash(rec.HotelName)),
		Description: strings.TrimSpace(rec.Address + " " + rec.City),
		Start:       rec.CheckinDate,
		End:         rec.CheckoutOrCheckin(),
		AllDay:      true,
	}
	if err := i.calendar.AddEvent(ctx, waid, event); err != nil {
		i.logger.Warn("Calendar sync skipped for hotel", "waid", waid, "error", err)
	}
}

func makeExcerpt(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > excerptLimit {
		return text[:excerptLimit]
	}
	return text
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
