package usecase

import (
	"context"
	"testing"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendDailyGroupsByOwner(t *testing.T) {
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(utils.DATE_LAYOUT)
	flights := &fakeFlightRepo{saved: []*entity.FlightRecord{
		{Waid: "972501234567", Origin: "TLV", Dest: "BKK", DepartDate: tomorrow, DepartTime: "14:30", FlightNumber: "LY81"},
		{Waid: "972501234567", Origin: "TLV", Dest: "HKT", DepartDate: tomorrow, FlightNumber: "LY87"},
		{Waid: "972509999999", Origin: "TLV", Dest: "BKK", DepartDate: "2030-01-01"},
	}}
	hotels := &fakeHotelRepo{saved: []*entity.HotelRecord{
		{Waid: "972508888888", HotelName: "Hilton", City: "Bangkok", CheckinDate: tomorrow},
	}}
	notifier := &fakeNotifier{}
	svc := NewReminderService(flights, hotels, notifier, testMetrics, logger.NewNop(), "UTC")

	sent, err := svc.SendDaily(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	require.Len(t, notifier.sent, 2)
	// Owners send in sorted order; both flights share one message.
	assert.Equal(t, "972501234567", notifier.sent[0].Phone)
	assert.Contains(t, notifier.sent[0].Text, "LY81")
	assert.Contains(t, notifier.sent[0].Text, "LY87")
	assert.Equal(t, "972508888888", notifier.sent[1].Phone)
	assert.Contains(t, notifier.sent[1].Text, "Hilton")
}

func TestSendWeeklyCoversComingWeekOnly(t *testing.T) {
	now := time.Now().UTC()
	inThree := now.AddDate(0, 0, 3).Format(utils.DATE_LAYOUT)
	inThirty := now.AddDate(0, 0, 30).Format(utils.DATE_LAYOUT)
	flights := &fakeFlightRepo{saved: []*entity.FlightRecord{
		{Waid: "972501234567", Origin: "TLV", Dest: "BKK", DepartDate: inThree, FlightNumber: "LY81"},
		{Waid: "972501234567", Origin: "BKK", Dest: "TLV", DepartDate: inThirty, FlightNumber: "LY82"},
	}}
	notifier := &fakeNotifier{}
	svc := NewReminderService(flights, &fakeHotelRepo{}, notifier, testMetrics, logger.NewNop(), "UTC")

	sent, err := svc.SendWeekly(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0].Text, "LY81")
	assert.NotContains(t, notifier.sent[0].Text, "LY82")
}

func TestSendDailyNothingDueSendsNothing(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := NewReminderService(&fakeFlightRepo{}, &fakeHotelRepo{}, notifier, testMetrics, logger.NewNop(), "UTC")

	sent, err := svc.SendDaily(context.Background())

	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, notifier.sent)
}
