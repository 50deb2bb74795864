package calendar

import (
	"context"
	"fmt"

	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/internal/infrastructure/oauth"
	"tripwatch-service/pkg/logger"

	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendarRepository inserts events into the primary calendar of
// owners who linked their Google account. Owners without a stored token
// are silently skipped.
type GoogleCalendarRepository struct {
	oauth  *oauth.GoogleOAuth
	tokens repository.TokenRepository
	logger logger.Logger
}

// NewGoogleCalendarRepository creates a new Google Calendar repository
func NewGoogleCalendarRepository(oauth *oauth.GoogleOAuth, tokens repository.TokenRepository, logger logger.Logger) repository.CalendarRepository {
	return &GoogleCalendarRepository{
		oauth:  oauth,
		tokens: tokens,
		logger: logger,
	}
}

// AddEvent inserts an event into the owner's primary calendar. The
// refreshed token is persisted so future passes skip the refresh
// round-trip.
func (r *GoogleCalendarRepository) AddEvent(ctx context.Context, waid string, event repository.CalendarEvent) error {
	if !r.oauth.Configured() {
		return fmt.Errorf("google oauth not configured")
	}

	tokenJSON, err := r.tokens.LoadToken(ctx, waid)
	if err != nil {
		return fmt.Errorf("no linked calendar for %s: %w", waid, err)
	}

	source, err := r.oauth.TokenSourceFromJSON(ctx, tokenJSON)
	if err != nil {
		return err
	}

	svc, err := calendarapi.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return fmt.Errorf("failed to create calendar service: %w", err)
	}

	ev := &calendarapi.Event{
		Summary:     event.Summary,
		Description: event.Description,
	}
	if event.AllDay {
		ev.Start = &calendarapi.EventDateTime{Date: event.Start}
		ev.End = &calendarapi.EventDateTime{Date: event.End}
	} else {
		ev.Start = &calendarapi.EventDateTime{DateTime: event.Start}
		ev.End = &calendarapi.EventDateTime{DateTime: event.End}
	}

	if _, err := svc.Events.Insert("primary", ev).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	if refreshed, err := source.Token(); err == nil {
		if refreshedJSON, err := r.oauth.TokenToJSON(refreshed); err == nil && refreshedJSON != tokenJSON {
			if err := r.tokens.SaveToken(ctx, waid, refreshedJSON); err != nil {
				r.logger.Warn("Failed to persist refreshed token", "waid", waid, "error", err)
			}
		}
	}

	r.logger.Info("Calendar event added", "waid", waid, "summary", event.Summary)
	return nil
}
