package usecase

import (
	"context"
	"sort"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/metrics"
	"tripwatch-service/pkg/utils"
	"tripwatch-service/templates"
)

// ReminderService sends scheduled booking digests: a daily reminder the
// day before a departure or check-in, and a weekly look-ahead.
type ReminderService struct {
	flightRepo repository.FlightRecordRepository
	hotelRepo  repository.HotelRecordRepository
	notifier   repository.NotifierRepository
	metrics    *metrics.Metrics
	logger     logger.Logger
	localTZ    string
}

// NewReminderService creates a new reminder service
func NewReminderService(
	flightRepo repository.FlightRecordRepository,
	hotelRepo repository.HotelRecordRepository,
	notifier repository.NotifierRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
	localTZ string,
) *ReminderService {
	return &ReminderService{
		flightRepo: flightRepo,
		hotelRepo:  hotelRepo,
		notifier:   notifier,
		metrics:    metrics,
		logger:     logger,
		localTZ:    localTZ,
	}
}

func (s *ReminderService) now() time.Time {
	if loc, err := time.LoadLocation(s.localTZ); err == nil {
		return time.Now().In(loc)
	}
	return time.Now().UTC()
}

// SendDaily notifies every owner with a departure or check-in tomorrow.
// Returns the number of owners notified.
func (s *ReminderService) SendDaily(ctx context.Context) (int, error) {
	tomorrow := s.now().AddDate(0, 0, 1).Format(utils.DATE_LAYOUT)

	flights, err := s.flightRepo.ListByDepartDate(ctx, tomorrow)
	if err != nil {
		return 0, err
	}
	hotels, err := s.hotelRepo.ListByCheckinDate(ctx, tomorrow)
	if err != nil {
		return 0, err
	}

	flightsByWaid := make(map[string][]*entity.FlightRecord)
	for _, f := range flights {
		flightsByWaid[f.Waid] = append(flightsByWaid[f.Waid], f)
	}
	hotelsByWaid := make(map[string][]*entity.HotelRecord)
	for _, h := range hotels {
		hotelsByWaid[h.Waid] = append(hotelsByWaid[h.Waid], h)
	}

	sent := 0
	for _, waid := range digestOwners(flightsByWaid, hotelsByWaid) {
		body := templates.FormatDailyReminder(flightsByWaid[waid], hotelsByWaid[waid])
		if body == "" {
			continue
		}
		if s.send(ctx, waid, body) {
			sent++
		}
	}
	s.logger.Info("Daily reminders sent", "count", sent)
	return sent, nil
}

// SendWeekly sends every owner the bookings of the coming seven days.
// Returns the number of owners notified.
func (s *ReminderService) SendWeekly(ctx context.Context) (int, error) {
	now := s.now()
	from := now.Format(utils.DATE_LAYOUT)
	until := now.AddDate(0, 0, 7).Format(utils.DATE_LAYOUT)

	owners, err := s.ownersWithBookings(ctx, now)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, waid := range owners {
		flights, err := s.flightRepo.ListBetween(ctx, waid, from, until)
		if err != nil {
			return sent, err
		}
		hotels, err := s.hotelRepo.ListBetween(ctx, waid, from, until)
		if err != nil {
			return sent, err
		}

		body := templates.FormatWeeklyDigest(flights, hotels)
		if body == "" {
			continue
		}
		if s.send(ctx, waid, body) {
			sent++
		}
	}
	s.logger.Info("Weekly digests sent", "count", sent)
	return sent, nil
}

// ownersWithBookings scans the coming week day by day and returns the
// sorted set of owners with at least one departure or check-in.
func (s *ReminderService) ownersWithBookings(ctx context.Context, now time.Time) ([]string, error) {
	flightsByWaid := make(map[string][]*entity.FlightRecord)
	hotelsByWaid := make(map[string][]*entity.HotelRecord)
	for d := 0; d <= 7; d++ {
		day := now.AddDate(0, 0, d).Format(utils.DATE_LAYOUT)
		flights, err := s.flightRepo.ListByDepartDate(ctx, day)
		if err != nil {
			return nil, err
		}
		for _, f := range flights {
			flightsByWaid[f.Waid] = append(flightsByWaid[f.Waid], f)
		}
		hotels, err := s.hotelRepo.ListByCheckinDate(ctx, day)
		if err != nil {
			return nil, err
		}
		for _, h := range hotels {
			hotelsByWaid[h.Waid] = append(hotelsByWaid[h.Waid], h)
		}
	}
	return digestOwners(flightsByWaid, hotelsByWaid), nil
}

func (s *ReminderService) send(ctx context.Context, waid, body string) bool {
	payload := entity.NewPayload(entity.ReminderDigest, waid, body)
	if err := s.notifier.SendPayload(ctx, payload); err != nil {
		s.logger.Warn("Reminder send failed", "waid", waid, "error", err)
		s.metrics.ErrorsCount.WithLabelValues("notify").Inc()
		return false
	}
	s.metrics.NotificationsSent.Inc()
	return true
}

// digestOwners returns the union of owners across both maps, sorted so
// digests send in a deterministic order.
func digestOwners(flights map[string][]*entity.FlightRecord, hotels map[string][]*entity.HotelRecord) []string {
	seen := make(map[string]bool)
	var out []string
	for waid := range flights {
		if !seen[waid] {
			seen[waid] = true
			out = append(out, waid)
		}
	}
	for waid := range hotels {
		if !seen[waid] {
			seen[waid] = true
			out = append(out, waid)
		}
	}
	sort.Strings(out)
	return out
}
