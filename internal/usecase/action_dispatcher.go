package usecase

import (
	"context"
	"fmt"
	"strings"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/templates"
)

// ActionDispatcher executes typed actions against the core and returns
// the reply text. Replies are recorded in the owner's session so a
// classifier in front of the core can see recent context.
type ActionDispatcher struct {
	flightRepo    repository.FlightRecordRepository
	watchRepo     repository.WatchRepository
	sessions      repository.SessionRepository
	engine        *WatchEngine
	logger        logger.Logger
	lookaheadDays int
	localTZ       string
}

// NewActionDispatcher creates a new action dispatcher
func NewActionDispatcher(
	flightRepo repository.FlightRecordRepository,
	watchRepo repository.WatchRepository,
	sessions repository.SessionRepository,
	engine *WatchEngine,
	logger logger.Logger,
	lookaheadDays int,
	localTZ string,
) *ActionDispatcher {
	return &ActionDispatcher{
		flightRepo:    flightRepo,
		watchRepo:     watchRepo,
		sessions:      sessions,
		engine:        engine,
		logger:        logger,
		lookaheadDays: lookaheadDays,
		localTZ:       localTZ,
	}
}

// Dispatch executes one action and returns the reply text.
func (d *ActionDispatcher) Dispatch(ctx context.Context, action entity.Action) (string, error) {
	reply, err := d.execute(ctx, action)
	if err != nil {
		return "", err
	}
	d.recordTurn(ctx, action, reply)
	return reply, nil
}

func (d *ActionDispatcher) execute(ctx context.Context, action entity.Action) (string, error) {
	switch action.Kind {
	case entity.ActionListUserFlights:
		return d.listFlights(ctx, action)
	case entity.ActionFlightDetails:
		return d.flightDetails(ctx, action)
	case entity.ActionSubscribeFlight:
		return d.subscribe(ctx, action)
	case entity.ActionCancelFlight:
		return d.cancel(ctx, action)
	case entity.ActionListWatches:
		return d.listWatches(ctx, action)
	case entity.ActionFlightStatus:
		return d.flightStatus(ctx, action)
	case entity.ActionResetSession:
		if err := d.sessions.Clear(ctx, action.Waid); err != nil {
			return "", err
		}
		return "Session cleared.", nil
	default:
		return "", fmt.Errorf("unknown action kind: %s", action.Kind)
	}
}

func (d *ActionDispatcher) listFlights(ctx context.Context, action entity.Action) (string, error) {
	days := action.RangeDays
	if days <= 0 {
		days = d.lookaheadDays
	}
	records, err := d.flightRepo.ListUpcoming(ctx, action.Waid, days, 3)
	if err != nil {
		return "", err
	}
	return templates.FormatFlightList(records), nil
}

// flightDetails picks flights for the detail block by scope: latest is
// the next departure, return is the last of the upcoming window, all is
// the first two.
func (d *ActionDispatcher) flightDetails(ctx context.Context, action entity.Action) (string, error) {
	records, err := d.flightRepo.ListUpcoming(ctx, action.Waid, d.lookaheadDays, 5)
	if err != nil {
		return "", err
	}
	if len(records) > 0 {
		switch action.Scope {
		case entity.ScopeReturn:
			if len(records) > 1 {
				records = records[len(records)-1:]
			} else {
				records = records[:1]
			}
		case entity.ScopeAll:
			if len(records) > 2 {
				records = records[:2]
			}
		default:
			records = records[:1]
		}
	}
	return templates.FormatFlightDetails(records), nil
}

func (d *ActionDispatcher) subscribe(ctx context.Context, action entity.Action) (string, error) {
	iata := strings.ToUpper(strings.TrimSpace(action.Iata))
	if iata == "" {
		return "I couldn't identify the flight. Try for example: LY81 2025-09-08.", nil
	}

	sub, created, err := d.watchRepo.Subscribe(ctx, action.Waid, iata, action.Date)
	if err != nil {
		return "", err
	}
	if !created {
		reply := fmt.Sprintf("Already tracking %s", sub.FlightIata)
		if sub.FlightDate != "" {
			reply += fmt.Sprintf(" (%s)", sub.FlightDate)
		}
		return reply + ".", nil
	}

	d.logger.Info("Watch subscribed", "waid", action.Waid, "flight", iata)
	reply := fmt.Sprintf("Got it! Tracking %s", iata)
	if action.Date != "" {
		reply += fmt.Sprintf(" (%s)", action.Date)
	}
	return reply + ". I'll message you when something changes.", nil
}

func (d *ActionDispatcher) cancel(ctx context.Context, action entity.Action) (string, error) {
	iata := strings.ToUpper(strings.TrimSpace(action.Iata))

	var removed int64
	var err error
	if iata != "" {
		removed, err = d.watchRepo.DeleteByWaidAndIata(ctx, action.Waid, iata)
	} else {
		removed, err = d.watchRepo.DeleteByWaid(ctx, action.Waid)
	}
	if err != nil {
		return "", err
	}

	d.logger.Info("Watch cancelled", "waid", action.Waid, "flight", iata, "removed", removed)
	if iata != "" {
		return fmt.Sprintf("Stopped tracking %s (%d subscriptions).", iata, removed), nil
	}
	return fmt.Sprintf("Stopped tracking all flights (%d subscriptions).", removed), nil
}

func (d *ActionDispatcher) listWatches(ctx context.Context, action entity.Action) (string, error) {
	subs, err := d.watchRepo.ListByWaid(ctx, action.Waid)
	if err != nil {
		return "", err
	}
	return templates.FormatWatchList(subs), nil
}

func (d *ActionDispatcher) flightStatus(ctx context.Context, action entity.Action) (string, error) {
	iata := strings.ToUpper(strings.TrimSpace(action.Iata))
	if iata == "" {
		return "I need a flight code, for example: status LY81.", nil
	}

	snap := d.engine.FetchStatus(ctx, iata, action.Date)
	if snap == nil {
		return "I couldn't find a status for that flight right now.", nil
	}
	return templates.FormatStatusMessage(snap, d.localTZ), nil
}

// recordTurn appends the action and its reply to the owner's session.
// Session recording is best effort.
func (d *ActionDispatcher) recordTurn(ctx context.Context, action entity.Action, reply string) {
	if d.sessions == nil || action.Kind == entity.ActionResetSession {
		return
	}
	err := d.sessions.Append(ctx, action.Waid,
		repository.SessionTurn{Role: "user", Content: string(action.Kind)},
		repository.SessionTurn{Role: "assistant", Content: reply},
	)
	if err != nil {
		d.logger.Warn("Failed to record session turn", "waid", action.Waid, "error", err)
	}
}
