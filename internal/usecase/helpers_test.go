package usecase

import (
	"context"
	"errors"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/metrics"
)

// One shared metrics instance per test binary; promauto registers into
// the default registry and re-registration panics.
var testMetrics = metrics.NewMetrics("tripwatch_usecase_test")

type fakeFlightRepo struct {
	saved   []*entity.FlightRecord
	saveErr error
}

func (f *fakeFlightRepo) Save(ctx context.Context, record *entity.FlightRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, record)
	return nil
}

func (f *fakeFlightRepo) ListUpcoming(ctx context.Context, waid string, withinDays, limit int) ([]*entity.FlightRecord, error) {
	var out []*entity.FlightRecord
	for _, r := range f.saved {
		if r.Waid == waid {
			out = append(out, r)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeFlightRepo) ListByDepartDate(ctx context.Context, date string) ([]*entity.FlightRecord, error) {
	var out []*entity.FlightRecord
	for _, r := range f.saved {
		if r.DepartDate == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeFlightRepo) ListBetween(ctx context.Context, waid, from, until string) ([]*entity.FlightRecord, error) {
	var out []*entity.FlightRecord
	for _, r := range f.saved {
		if r.Waid == waid && r.DepartDate >= from && r.DepartDate <= until {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeFlightRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.saved)), nil
}

type fakeHotelRepo struct {
	saved   []*entity.HotelRecord
	saveErr error
}

func (f *fakeHotelRepo) Save(ctx context.Context, record *entity.HotelRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, record)
	return nil
}

func (f *fakeHotelRepo) ListByCheckinDate(ctx context.Context, date string) ([]*entity.HotelRecord, error) {
	var out []*entity.HotelRecord
	for _, r := range f.saved {
		if r.CheckinDate == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeHotelRepo) ListBetween(ctx context.Context, waid, from, until string) ([]*entity.HotelRecord, error) {
	var out []*entity.HotelRecord
	for _, r := range f.saved {
		if r.Waid == waid && r.CheckinDate >= from && r.CheckinDate <= until {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeHotelRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.saved)), nil
}

type fakeCalendar struct {
	events []repository.CalendarEvent
	err    error
}

func (f *fakeCalendar) AddEvent(ctx context.Context, waid string, event repository.CalendarEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type fakeWatchRepo struct {
	subs      []*entity.WatchSubscription
	nextID    uint
	updates   map[uint]string
	updateErr error
	listErr   error
	lastJSON  map[uint]string
}

func newFakeWatchRepo() *fakeWatchRepo {
	return &fakeWatchRepo{updates: make(map[uint]string), lastJSON: make(map[uint]string)}
}

func (f *fakeWatchRepo) Subscribe(ctx context.Context, waid, flightIata, flightDate string) (*entity.WatchSubscription, bool, error) {
	for _, s := range f.subs {
		if s.Waid == waid && s.FlightIata == flightIata {
			return s, false, nil
		}
	}
	f.nextID++
	sub := &entity.WatchSubscription{
		ID:         f.nextID,
		Waid:       waid,
		FlightIata: flightIata,
		FlightDate: flightDate,
		Provider:   entity.ProviderAviationstack,
	}
	f.subs = append(f.subs, sub)
	return sub, true, nil
}

func (f *fakeWatchRepo) DeleteByWaidAndIata(ctx context.Context, waid, flightIata string) (int64, error) {
	var kept []*entity.WatchSubscription
	var removed int64
	for _, s := range f.subs {
		if s.Waid == waid && s.FlightIata == flightIata {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	f.subs = kept
	return removed, nil
}

func (f *fakeWatchRepo) DeleteByWaid(ctx context.Context, waid string) (int64, error) {
	var kept []*entity.WatchSubscription
	var removed int64
	for _, s := range f.subs {
		if s.Waid == waid {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	f.subs = kept
	return removed, nil
}

func (f *fakeWatchRepo) ListByWaid(ctx context.Context, waid string) ([]*entity.WatchSubscription, error) {
	var out []*entity.WatchSubscription
	for i := len(f.subs) - 1; i >= 0; i-- {
		if f.subs[i].Waid == waid {
			out = append(out, f.subs[i])
		}
	}
	return out, nil
}

func (f *fakeWatchRepo) ListAll(ctx context.Context) ([]*entity.WatchSubscription, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.subs, nil
}

func (f *fakeWatchRepo) UpdateSnapshot(ctx context.Context, id uint, snapshotJSON, hash string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates[id] = hash
	f.lastJSON[id] = snapshotJSON
	for _, s := range f.subs {
		if s.ID == id {
			s.LastSnapshot = snapshotJSON
			s.LastHash = hash
		}
	}
	return nil
}

func (f *fakeWatchRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.subs)), nil
}

type fakeStatusRepo struct {
	results map[string]repository.StatusResult
}

func (f *fakeStatusRepo) Fetch(ctx context.Context, flightIata, flightDate string) repository.StatusResult {
	if res, ok := f.results[flightIata]; ok {
		return res
	}
	return repository.StatusResult{Err: "no fixture for " + flightIata}
}

type fakeNotifier struct {
	sent    []*entity.Payload
	sendErr error
}

func (f *fakeNotifier) SendPayload(ctx context.Context, payload *entity.Payload) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, payload)
	return nil
}

type fakeSessions struct {
	turns map[string][]repository.SessionTurn
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{turns: make(map[string][]repository.SessionTurn)}
}

func (f *fakeSessions) Load(ctx context.Context, waid string) ([]repository.SessionTurn, error) {
	return f.turns[waid], nil
}

func (f *fakeSessions) Append(ctx context.Context, waid string, turns ...repository.SessionTurn) error {
	f.turns[waid] = append(f.turns[waid], turns...)
	return nil
}

func (f *fakeSessions) Clear(ctx context.Context, waid string) error {
	delete(f.turns, waid)
	return nil
}

type fakeDocumentRepo struct {
	docs     map[string]*entity.Document
	statuses map[string]string
	details  map[string]string
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{
		docs:     make(map[string]*entity.Document),
		statuses: make(map[string]string),
		details:  make(map[string]string),
	}
}

func (f *fakeDocumentRepo) Save(ctx context.Context, doc *entity.Document) error {
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocumentRepo) FindByID(ctx context.Context, id string) (*entity.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return doc, nil
}

func (f *fakeDocumentRepo) FindLatestByWaid(ctx context.Context, waid string) (*entity.Document, error) {
	for _, doc := range f.docs {
		if doc.Waid == waid {
			return doc, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeDocumentRepo) MarkProcessed(ctx context.Context, id, status, errorDetail string, flightsFound, hotelsFound int) error {
	f.statuses[id] = status
	f.details[id] = errorDetail
	return nil
}

func (f *fakeDocumentRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.docs)), nil
}

// stubExtractor returns canned results keyed by nothing; Set the fields
// before use.
type stubExtractor struct {
	textResult  entity.ExtractionResult
	imageResult entity.ExtractionResult
	lastText    string
}

func (s *stubExtractor) ExtractFromText(ctx context.Context, text string) entity.ExtractionResult {
	s.lastText = text
	return s.textResult
}

func (s *stubExtractor) ExtractFromImage(ctx context.Context, mimeType string, data []byte) entity.ExtractionResult {
	return s.imageResult
}

func strPtr(s string) *string { return &s }

func providerRow(status, gate string) map[string]interface{} {
	return map[string]interface{}{
		"flight_status": status,
		"airline":       map[string]interface{}{"name": "El Al"},
		"flight":        map[string]interface{}{"iata": "LY81", "icao": "ELY81", "number": "81"},
		"departure": map[string]interface{}{
			"airport":   "Ben Gurion Intl",
			"scheduled": "2025-09-08T14:30:00+00:00",
			"terminal":  "3",
			"gate":      gate,
		},
		"arrival": map[string]interface{}{
			"airport":   "Suvarnabhumi Intl",
			"scheduled": "2025-09-09T01:55:00+00:00",
			"terminal":  "D",
			"baggage":   "12",
		},
	}
}
