package reminder_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-sitter/internal/config"
	"github.com/tartampluch/go-sitter/internal/reminder"
	"github.com/tartampluch/go-sitter/internal/schedule"
)

const beeryAddress = "35 BIS RUE MARCEL DASSAULT BOULOGNE BILLANCOURT"

type harness struct {
	clock     *fakeClock
	timers    *fakeTimers
	notifier  *MockNotifier
	scheduler *reminder.Scheduler
}

func newHarness(t *testing.T, now time.Time, perm reminder.Permission) *harness {
	t.Helper()
	roster, err := schedule.DefaultRoster()
	require.NoError(t, err)

	h := &harness{
		clock:    newFakeClock(now),
		timers:   &fakeTimers{},
		notifier: new(MockNotifier),
	}
	h.notifier.On("Permission").Return(perm)
	h.scheduler = reminder.NewScheduler(roster, h.notifier, reminder.Options{
		Clock:     h.clock,
		AfterFunc: h.timers.AfterFunc,
	})
	return h
}

func TestScheduler_StartArmsBothReminders(t *testing.T) {
	h := newHarness(t, at(3, 7, 0), reminder.PermissionGranted)

	h.scheduler.Start()

	require.Equal(t, 2, h.timers.Len())
	assert.Equal(t, time.Hour, h.timers.At(0).delay)
	assert.Equal(t, 6*24*time.Hour+15*time.Hour, h.timers.At(1).delay)

	daily, evening := h.scheduler.NextFires()
	assert.Equal(t, at(3, 8, 0), daily)
	assert.Equal(t, at(9, 22, 0), evening)
	assert.True(t, h.scheduler.Running())

	h.scheduler.Start()
	assert.Equal(t, 2, h.timers.Len(), "second Start is a no-op")
}

func TestScheduler_StopCancelsBoth(t *testing.T) {
	h := newHarness(t, at(3, 7, 0), reminder.PermissionGranted)
	h.scheduler.Start()

	h.scheduler.Stop()

	assert.True(t, h.timers.At(0).stopped)
	assert.True(t, h.timers.At(1).stopped)
	assert.False(t, h.scheduler.Running())
	daily, evening := h.scheduler.NextFires()
	assert.True(t, daily.IsZero())
	assert.True(t, evening.IsZero())
}

func TestScheduler_DailyFireSendsTodaysShift(t *testing.T) {
	h := newHarness(t, at(3, 7, 0), reminder.PermissionGranted)
	h.notifier.On("Notify", reminder.Payload{
		Title:              "Today: BEERY family",
		Body:               "10:00 - 19:00\n" + beeryAddress,
		Icon:               config.IconBaby,
		Tag:                config.TagDaily,
		RequireInteraction: true,
	}).Return(nil).Once()
	h.scheduler.Start()

	fire(h.clock, h.timers.At(0))

	h.notifier.AssertExpectations(t)
	assert.Equal(t, 3, h.timers.Len(), "daily re-armed")
	assert.Equal(t, 24*time.Hour, h.timers.Last().delay)
}

func TestScheduler_DailyFireOnDayOff(t *testing.T) {
	h := newHarness(t, at(0, 7, 0), reminder.PermissionGranted)
	h.notifier.On("Notify", reminder.Payload{
		Title: config.FallbackDayOffTitle,
		Body:  config.FallbackDayOffBody,
		Icon:  config.IconSun,
		Tag:   config.TagDaily,
	}).Return(nil).Once()
	h.scheduler.Start()

	fire(h.clock, h.timers.At(0))

	h.notifier.AssertExpectations(t)
}

func TestScheduler_EveningFireUsesTomorrow(t *testing.T) {
	h := newHarness(t, at(2, 21, 0), reminder.PermissionGranted)
	h.notifier.On("Notify", reminder.Payload{
		Title:              config.FallbackEarlyTitle,
		Body:               "Wake up at 07:00 for BEERY family (10:00 - 19:00)\n" + beeryAddress,
		Icon:               config.IconAlarm,
		Tag:                config.TagEvening,
		RequireInteraction: true,
	}).Return(nil).Once()
	h.scheduler.Start()

	evening := h.timers.At(1)
	require.Equal(t, time.Hour, evening.delay)
	fire(h.clock, evening)

	h.notifier.AssertExpectations(t)
	assert.Equal(t, 7*24*time.Hour, h.timers.Last().delay, "evening re-armed a week later")
}

func TestScheduler_EveningWithoutShiftTomorrowSendsNothing(t *testing.T) {
	h := newHarness(t, at(6, 22, 0), reminder.PermissionGranted)

	h.scheduler.SendEvening(h.clock.Now())

	h.notifier.AssertNotCalled(t, "Notify", mock.Anything)
}

func TestScheduler_NotGrantedIsNoOpButRearms(t *testing.T) {
	for _, perm := range []reminder.Permission{
		reminder.PermissionDefault,
		reminder.PermissionDenied,
		reminder.PermissionUnsupported,
	} {
		t.Run(perm.String(), func(t *testing.T) {
			h := newHarness(t, at(3, 7, 0), perm)
			h.scheduler.Start()

			fire(h.clock, h.timers.At(0))

			h.notifier.AssertNotCalled(t, "Notify", mock.Anything)
			assert.Equal(t, 3, h.timers.Len())
			assert.True(t, h.scheduler.Running())
		})
	}
}

func TestScheduler_NotifyErrorIsSwallowedOnFire(t *testing.T) {
	h := newHarness(t, at(3, 7, 0), reminder.PermissionGranted)
	h.notifier.On("Notify", mock.Anything).Return(errors.New("dbus gone"))
	h.scheduler.Start()

	assert.NotPanics(t, func() { fire(h.clock, h.timers.At(0)) })
	assert.Equal(t, 3, h.timers.Len())
}

func TestScheduler_SendTest(t *testing.T) {
	h := newHarness(t, at(4, 12, 0), reminder.PermissionGranted)
	h.notifier.On("Notify", mock.MatchedBy(func(p reminder.Payload) bool {
		return p.Tag == config.TagTest && p.Title == "Today: BARRET family"
	})).Return(nil).Once()

	require.NoError(t, h.scheduler.SendTest(h.clock.Now()))
	h.notifier.AssertExpectations(t)
}

func TestScheduler_SendTestErrors(t *testing.T) {
	h := newHarness(t, at(4, 12, 0), reminder.PermissionUnsupported)
	assert.ErrorIs(t, h.scheduler.SendTest(h.clock.Now()), reminder.ErrUnsupported)

	h = newHarness(t, at(4, 12, 0), reminder.PermissionDenied)
	assert.ErrorIs(t, h.scheduler.SendEveningTest(h.clock.Now()), reminder.ErrPermissionDenied)

	h = newHarness(t, at(4, 12, 0), reminder.PermissionGranted)
	h.notifier.On("Notify", mock.Anything).Return(errors.New("dbus gone"))
	err := h.scheduler.SendTest(h.clock.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrNotifSend)
}

// TestScheduler_SendEveningTestFindsNextShift previews a reminder even on
// a Friday, when nobody is scheduled on Saturday.
func TestScheduler_SendEveningTestFindsNextShift(t *testing.T) {
	h := newHarness(t, at(5, 12, 0), reminder.PermissionGranted)
	h.notifier.On("Notify", mock.MatchedBy(func(p reminder.Payload) bool {
		return p.Tag == config.TagTestEvening && p.Title == config.FallbackEarlyTitle &&
			p.Body == "Wake up at 14:00 for BARRET family (17:00 - 19:00)\n12 RUE DES BEAUMONTS FONTENAY SOUS BOIS"
	})).Return(nil).Once()

	require.NoError(t, h.scheduler.SendEveningTest(h.clock.Now()))
	h.notifier.AssertExpectations(t)
}

func TestScheduler_SendEnabled(t *testing.T) {
	h := newHarness(t, at(4, 12, 0), reminder.PermissionGranted)
	h.notifier.On("Notify", mock.MatchedBy(func(p reminder.Payload) bool {
		return p.Title == config.FallbackEnabledTitle && p.Body == config.FallbackEnabledBody
	})).Return(nil).Once()

	require.NoError(t, h.scheduler.SendEnabled())
	h.notifier.AssertExpectations(t)
}

type frenchMessages struct{ reminder.DefaultMessages }

func (frenchMessages) DayOff() (string, string) { return "Pas de garde", "Bonne journée !" }

func TestScheduler_CustomMessages(t *testing.T) {
	roster, err := schedule.DefaultRoster()
	require.NoError(t, err)
	s := reminder.NewScheduler(roster, new(MockNotifier), reminder.Options{Messages: frenchMessages{}})

	p := s.DailyPayload(at(0, 8, 0))

	assert.Equal(t, "Pas de garde", p.Title)
}

func TestScheduler_CustomTriggers(t *testing.T) {
	roster, err := schedule.DefaultRoster()
	require.NoError(t, err)
	clock := newFakeClock(at(3, 7, 0))
	timers := &fakeTimers{}
	s := reminder.NewScheduler(roster, new(MockNotifier), reminder.Options{
		Clock:     clock,
		AfterFunc: timers.AfterFunc,
		Daily:     reminder.Daily(7, 30),
		Evening:   reminder.Weekly(time.Wednesday, 20, 0),
	})

	s.Start()

	assert.Equal(t, 30*time.Minute, timers.At(0).delay)
	assert.Equal(t, 13*time.Hour, timers.At(1).delay)
}

func TestWakeUpTime(t *testing.T) {
	assert.Equal(t, "07:00", reminder.WakeUpTime(schedule.Entry{StartHour: 10}))
	assert.Equal(t, "14:30", reminder.WakeUpTime(schedule.Entry{StartHour: 17, StartMin: 30}))
	assert.Equal(t, "22:30", reminder.WakeUpTime(schedule.Entry{StartHour: 1, StartMin: 30}), "wraps before midnight")
}
