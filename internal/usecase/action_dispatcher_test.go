package usecase

import (
	"context"
	"testing"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(flights *fakeFlightRepo, watches *fakeWatchRepo, sessions *fakeSessions, status *fakeStatusRepo) *ActionDispatcher {
	if status == nil {
		status = &fakeStatusRepo{}
	}
	engine := newTestEngine(newFakeWatchRepo(), status, &fakeNotifier{}, nil)
	return NewActionDispatcher(flights, watches, sessions, engine, logger.NewNop(), 90, "UTC")
}

func TestDispatchSubscribeAndDedup(t *testing.T) {
	watches := newFakeWatchRepo()
	d := newTestDispatcher(&fakeFlightRepo{}, watches, newFakeSessions(), nil)

	reply, err := d.Dispatch(context.Background(), entity.Action{
		Kind: entity.ActionSubscribeFlight, Waid: "972501234567", Iata: "ly81", Date: "2025-09-08",
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "LY81")
	assert.Contains(t, reply, "2025-09-08")
	require.Len(t, watches.subs, 1)

	reply, err = d.Dispatch(context.Background(), entity.Action{
		Kind: entity.ActionSubscribeFlight, Waid: "972501234567", Iata: "LY81",
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "Already tracking")
	assert.Len(t, watches.subs, 1)
}

func TestDispatchSubscribeRequiresFlightCode(t *testing.T) {
	watches := newFakeWatchRepo()
	d := newTestDispatcher(&fakeFlightRepo{}, watches, newFakeSessions(), nil)

	reply, err := d.Dispatch(context.Background(), entity.Action{
		Kind: entity.ActionSubscribeFlight, Waid: "972501234567",
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "couldn't identify")
	assert.Empty(t, watches.subs)
}

func TestDispatchCancelSingleAndAll(t *testing.T) {
	watches := newFakeWatchRepo()
	ctx := context.Background()
	watches.Subscribe(ctx, "972501234567", "LY81", "")
	watches.Subscribe(ctx, "972501234567", "LY87", "")
	watches.Subscribe(ctx, "972507777777", "LY81", "")
	d := newTestDispatcher(&fakeFlightRepo{}, watches, newFakeSessions(), nil)

	reply, err := d.Dispatch(ctx, entity.Action{
		Kind: entity.ActionCancelFlight, Waid: "972501234567", Iata: "LY81",
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "LY81")
	assert.Contains(t, reply, "(1 subscriptions)")
	assert.Len(t, watches.subs, 2)

	// Empty code cancels everything for this owner, not for others.
	reply, err = d.Dispatch(ctx, entity.Action{
		Kind: entity.ActionCancelFlight, Waid: "972501234567",
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "all flights")
	require.Len(t, watches.subs, 1)
	assert.Equal(t, "972507777777", watches.subs[0].Waid)
}

func TestDispatchListWatches(t *testing.T) {
	watches := newFakeWatchRepo()
	ctx := context.Background()
	watches.Subscribe(ctx, "972501234567", "LY81", "2025-09-08")
	d := newTestDispatcher(&fakeFlightRepo{}, watches, newFakeSessions(), nil)

	reply, err := d.Dispatch(ctx, entity.Action{Kind: entity.ActionListWatches, Waid: "972501234567"})
	require.NoError(t, err)
	assert.Contains(t, reply, "LY81 2025-09-08")

	reply, err = d.Dispatch(ctx, entity.Action{Kind: entity.ActionListWatches, Waid: "972500000000"})
	require.NoError(t, err)
	assert.Contains(t, reply, "No active")
}

func TestDispatchFlightStatusNotFound(t *testing.T) {
	status := &fakeStatusRepo{results: map[string]repository.StatusResult{
		"LY81": {Err: "status 500"},
	}}
	d := newTestDispatcher(&fakeFlightRepo{}, newFakeWatchRepo(), newFakeSessions(), status)

	reply, err := d.Dispatch(context.Background(), entity.Action{
		Kind: entity.ActionFlightStatus, Waid: "972501234567", Iata: "LY81",
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "couldn't find a status")
}

func TestDispatchFlightStatusFormatsSnapshot(t *testing.T) {
	status := &fakeStatusRepo{results: map[string]repository.StatusResult{
		"LY81": {Data: []map[string]interface{}{providerRow("active", "B4")}},
	}}
	d := newTestDispatcher(&fakeFlightRepo{}, newFakeWatchRepo(), newFakeSessions(), status)

	reply, err := d.Dispatch(context.Background(), entity.Action{
		Kind: entity.ActionFlightStatus, Waid: "972501234567", Iata: "ly81",
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "Flight update LY81")
	assert.Contains(t, reply, "Status: active")
}

func TestDispatchFlightDetailsScopes(t *testing.T) {
	flights := &fakeFlightRepo{saved: []*entity.FlightRecord{
		{Waid: "972501234567", Origin: "TLV", Dest: "BKK", DepartDate: "2025-09-08", FlightNumber: "LY81"},
		{Waid: "972501234567", Origin: "BKK", Dest: "TLV", DepartDate: "2025-09-20", FlightNumber: "LY82"},
	}}
	d := newTestDispatcher(flights, newFakeWatchRepo(), newFakeSessions(), nil)
	ctx := context.Background()

	reply, err := d.Dispatch(ctx, entity.Action{
		Kind: entity.ActionFlightDetails, Waid: "972501234567", Scope: entity.ScopeLatest,
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "LY81")
	assert.NotContains(t, reply, "LY82")

	reply, err = d.Dispatch(ctx, entity.Action{
		Kind: entity.ActionFlightDetails, Waid: "972501234567", Scope: entity.ScopeReturn,
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "LY82")
	assert.NotContains(t, reply, "LY81")

	reply, err = d.Dispatch(ctx, entity.Action{
		Kind: entity.ActionFlightDetails, Waid: "972501234567", Scope: entity.ScopeAll,
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "LY81")
	assert.Contains(t, reply, "LY82")
}

func TestDispatchRecordsSessionTurns(t *testing.T) {
	sessions := newFakeSessions()
	d := newTestDispatcher(&fakeFlightRepo{}, newFakeWatchRepo(), sessions, nil)

	_, err := d.Dispatch(context.Background(), entity.Action{
		Kind: entity.ActionListUserFlights, Waid: "972501234567",
	})
	require.NoError(t, err)

	turns := sessions.turns["972501234567"]
	require.Len(t, turns, 2)
	assert.Equal(t, "user", turns[0].Role)
	assert.Equal(t, "list_user_flights", turns[0].Content)
	assert.Equal(t, "assistant", turns[1].Role)
}

func TestDispatchResetSessionClears(t *testing.T) {
	sessions := newFakeSessions()
	sessions.Append(context.Background(), "972501234567", repository.SessionTurn{Role: "user", Content: "hi"})
	d := newTestDispatcher(&fakeFlightRepo{}, newFakeWatchRepo(), sessions, nil)

	reply, err := d.Dispatch(context.Background(), entity.Action{
		Kind: entity.ActionResetSession, Waid: "972501234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "Session cleared.", reply)
	assert.Empty(t, sessions.turns["972501234567"])
}

func TestDispatchUnknownActionErrors(t *testing.T) {
	d := newTestDispatcher(&fakeFlightRepo{}, newFakeWatchRepo(), newFakeSessions(), nil)

	_, err := d.Dispatch(context.Background(), entity.Action{Kind: "make_coffee", Waid: "972501234567"})
	assert.Error(t, err)
}
