package reminder_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-sitter/internal/config"
	"github.com/tartampluch/go-sitter/internal/reminder"
)

// Reference week: Sunday 2025-10-12 .. Saturday 2025-10-18.
func at(day, hour, minute int) time.Time {
	return time.Date(2025, 10, 12+day, hour, minute, 0, 0, time.UTC)
}

func TestDailyTrigger_NextFireDelay(t *testing.T) {
	trigger := reminder.Daily(8, 0)

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"Before target", at(1, 7, 0), time.Hour},
		{"After target rolls to tomorrow", at(1, 9, 0), 23 * time.Hour},
		{"Exactly at target rolls to tomorrow", at(1, 8, 0), 24 * time.Hour},
		{"One second before", at(1, 7, 59).Add(59 * time.Second), time.Second},
		{"Saturday night wraps the week", at(6, 23, 30), 8*time.Hour + 30*time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reminder.NextFireDelay(trigger, tt.now))
		})
	}
}

func TestWeeklyTrigger_NextFireDelay(t *testing.T) {
	trigger := reminder.Weekly(time.Tuesday, 22, 0)

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"Monday noon", at(1, 12, 0), 34 * time.Hour},
		{"Tuesday before target", at(2, 21, 0), time.Hour},
		{"Tuesday exactly at target", at(2, 22, 0), 7 * 24 * time.Hour},
		{"Tuesday after target", at(2, 23, 0), 6*24*time.Hour + 23*time.Hour},
		{"Wednesday", at(3, 22, 0), 6 * 24 * time.Hour},
		{"Sunday", at(0, 22, 0), 2 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reminder.NextFireDelay(trigger, tt.now))
		})
	}
}

// TestTriggers_DelayWithinPeriod sweeps a week in 7-minute steps.
func TestTriggers_DelayWithinPeriod(t *testing.T) {
	daily := reminder.Daily(config.DailyReminderHour, config.DailyReminderMinute)
	weekly := reminder.Weekly(config.EveningReminderDay, config.EveningReminderHour, config.EveningReminderMinute)

	for now := at(0, 0, 0); now.Before(at(7, 0, 0)); now = now.Add(7 * time.Minute) {
		d := reminder.NextFireDelay(daily, now)
		assert.True(t, d > 0 && d <= 24*time.Hour, "daily delay %v at %v", d, now)
		assert.Equal(t, config.DailyReminderHour, now.Add(d).Hour())

		w := reminder.NextFireDelay(weekly, now)
		assert.True(t, w > 0 && w <= 7*24*time.Hour, "weekly delay %v at %v", w, now)
		assert.Equal(t, time.Tuesday, now.Add(w).Weekday())
	}
}

func TestTriggers_KeepLocation(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	from := time.Date(2025, 10, 13, 7, 0, 0, 0, loc)

	next := reminder.Daily(8, 0).Next(from)

	assert.Equal(t, loc, next.Location())
	assert.Equal(t, 8, next.Hour())
}

func TestParseTrigger(t *testing.T) {
	s, err := reminder.ParseTrigger("30 7 * * 1-5")
	require.NoError(t, err)

	// Saturday 12:00 -> Monday 07:30, evaluated on the local clock.
	next := s.Next(time.Date(2025, 10, 18, 12, 0, 0, 0, time.Local))
	assert.Equal(t, time.Monday, next.Weekday())
	assert.Equal(t, 7, next.Hour())
	assert.Equal(t, 30, next.Minute())

	_, err = reminder.ParseTrigger("@daily")
	assert.NoError(t, err)
}

func TestParseTrigger_Invalid(t *testing.T) {
	_, err := reminder.ParseTrigger("every tuesday")

	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrTriggerParse)
}

func TestPermission_RoundTrip(t *testing.T) {
	for _, p := range []reminder.Permission{
		reminder.PermissionDefault,
		reminder.PermissionGranted,
		reminder.PermissionDenied,
		reminder.PermissionUnsupported,
	} {
		assert.Equal(t, p, reminder.ParsePermission(p.String()))
	}
	assert.Equal(t, reminder.PermissionDefault, reminder.ParsePermission("garbage"))
}
