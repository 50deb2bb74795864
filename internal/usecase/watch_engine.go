package usecase

import (
	"context"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/metrics"
	"tripwatch-service/templates"
)

// PassResult summarizes one polling pass over the watch registry.
type PassResult struct {
	Total         int `json:"total"`
	Updated       int `json:"updated"`
	Errors        int `json:"errors"`
	SkippedNoData int `json:"skipped_no_data"`
}

// WatchEngine polls the status provider for every active subscription
// and fans out a notification when a flight's canonical snapshot
// changes. A failure on one row never stops the pass.
type WatchEngine struct {
	watchRepo  repository.WatchRepository
	statusRepo repository.FlightStatusRepository
	notifier   repository.NotifierRepository
	metrics    *metrics.Metrics
	logger     logger.Logger
	ccWaids    []string
	localTZ    string
}

// NewWatchEngine creates a new watch engine
func NewWatchEngine(
	watchRepo repository.WatchRepository,
	statusRepo repository.FlightStatusRepository,
	notifier repository.NotifierRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
	ccWaids []string,
	localTZ string,
) *WatchEngine {
	return &WatchEngine{
		watchRepo:  watchRepo,
		statusRepo: statusRepo,
		notifier:   notifier,
		metrics:    metrics,
		logger:     logger,
		ccWaids:    ccWaids,
		localTZ:    localTZ,
	}
}

// RunPass polls every subscription once. A snapshot hash differing from
// the stored one, including the first-ever poll where nothing is stored
// yet, persists the new state and notifies the owner plus the broadcast
// list. An identical hash writes and sends nothing.
func (e *WatchEngine) RunPass(ctx context.Context) PassResult {
	subs, err := e.watchRepo.ListAll(ctx)
	if err != nil {
		e.logger.Error("Failed to list watch registry", "error", err)
		e.metrics.ErrorsCount.WithLabelValues("watch_list").Inc()
		return PassResult{}
	}

	result := PassResult{Total: len(subs)}
	for _, sub := range subs {
		status := e.statusRepo.Fetch(ctx, sub.FlightIata, sub.FlightDate)
		if status.Failed() {
			e.logger.Warn("Status fetch failed",
				"flight", sub.FlightIata, "error", status.Err)
			e.metrics.ErrorsCount.WithLabelValues("watch_fetch").Inc()
			result.Errors++
			continue
		}
		if len(status.Data) == 0 {
			result.SkippedNoData++
			continue
		}

		snap := SnapshotFromProvider(status.Data[0])
		hash := snap.Hash()
		if hash == sub.LastHash {
			continue
		}

		if err := e.watchRepo.UpdateSnapshot(ctx, sub.ID, snap.JSON(), hash); err != nil {
			e.logger.Error("Failed to persist snapshot",
				"flight", sub.FlightIata, "error", err)
			e.metrics.ErrorsCount.WithLabelValues("watch_persist").Inc()
			result.Errors++
			continue
		}

		e.metrics.WatchChanges.Inc()
		e.notifyAll(ctx, sub.Waid, templates.FormatStatusMessage(snap, e.localTZ))
		result.Updated++

		e.logger.Info("Flight status changed",
			"flight", sub.FlightIata,
			"waid", sub.Waid)
	}

	e.logger.Info("Watch pass complete",
		"total", result.Total,
		"updated", result.Updated,
		"errors", result.Errors,
		"skipped", result.SkippedNoData)
	return result
}

// FetchStatus runs a one-off provider query for an on-demand status
// request, reusing the same normalization as the polling pass. Nil when
// the provider failed or returned nothing.
func (e *WatchEngine) FetchStatus(ctx context.Context, flightIata, flightDate string) *entity.CanonicalSnapshot {
	status := e.statusRepo.Fetch(ctx, flightIata, flightDate)
	if status.Failed() || len(status.Data) == 0 {
		return nil
	}
	return SnapshotFromProvider(status.Data[0])
}

// notifyAll sends one message to the owner and one per broadcast
// address. A failed send is logged and does not block the rest.
func (e *WatchEngine) notifyAll(ctx context.Context, waid, text string) {
	recipients := append([]string{waid}, e.ccWaids...)
	for _, r := range recipients {
		payload := entity.NewPayload(entity.WatchNotification, r, text)
		if err := e.notifier.SendPayload(ctx, payload); err != nil {
			e.logger.Warn("Notification send failed", "phone", r, "error", err)
			e.metrics.ErrorsCount.WithLabelValues("notify").Inc()
			continue
		}
		e.metrics.NotificationsSent.Inc()
	}
}

// SnapshotFromProvider projects one provider row onto the canonical
// snapshot shape. Absent or non-string values become nil so the hash
// only reflects fields the provider actually populated.
func SnapshotFromProvider(rec map[string]interface{}) *entity.CanonicalSnapshot {
	return &entity.CanonicalSnapshot{
		Status:  strField(rec, "flight_status"),
		Airline: strField(rec, "airline", "name"),
		Flight: entity.FlightIdentity{
			Iata:   strField(rec, "flight", "iata"),
			Icao:   strField(rec, "flight", "icao"),
			Number: strField(rec, "flight", "number"),
		},
		Departure: entity.SnapshotEndpoint{
			Airport:   strField(rec, "departure", "airport"),
			Terminal:  strField(rec, "departure", "terminal"),
			Gate:      strField(rec, "departure", "gate"),
			Scheduled: strField(rec, "departure", "scheduled"),
			Estimated: strField(rec, "departure", "estimated"),
			Actual:    strField(rec, "departure", "actual"),
		},
		Arrival: entity.SnapshotEndpoint{
			Airport:   strField(rec, "arrival", "airport"),
			Terminal:  strField(rec, "arrival", "terminal"),
			Gate:      strField(rec, "arrival", "gate"),
			Scheduled: strField(rec, "arrival", "scheduled"),
			Estimated: strField(rec, "arrival", "estimated"),
			Actual:    strField(rec, "arrival", "actual"),
			Baggage:   strField(rec, "arrival", "baggage"),
		},
	}
}

// strField walks nested maps by key and returns the terminal value as a
// *string, nil when missing or not a string.
func strField(rec map[string]interface{}, keys ...string) *string {
	var cur interface{} = rec
	for _, k := range keys {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = m[k]
	}
	if s, ok := cur.(string); ok {
		return &s
	}
	return nil
}
