package reminder

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tartampluch/go-sitter/internal/config"
)

// DailyTrigger fires every day at Hour:Minute local time.
type DailyTrigger struct {
	Hour   int
	Minute int
}

// Daily creates a trigger that fires every day at hour:minute.
func Daily(hour, minute int) DailyTrigger {
	return DailyTrigger{Hour: hour, Minute: minute}
}

// Next returns the first occurrence strictly after from.
// At exactly hh:mm the occurrence rolls over to tomorrow.
func (s DailyTrigger) Next(from time.Time) time.Time {
	next := time.Date(from.Year(), from.Month(), from.Day(), s.Hour, s.Minute, 0, 0, from.Location())
	if !next.After(from) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// WeeklyTrigger fires once a week on Day at Hour:Minute local time.
type WeeklyTrigger struct {
	Day    time.Weekday
	Hour   int
	Minute int
}

// Weekly creates a trigger that fires every week on day at hour:minute.
func Weekly(day time.Weekday, hour, minute int) WeeklyTrigger {
	return WeeklyTrigger{Day: day, Hour: hour, Minute: minute}
}

// Next returns the first occurrence strictly after from.
func (s WeeklyTrigger) Next(from time.Time) time.Time {
	daysUntil := (int(s.Day) - int(from.Weekday()) + config.DaysPerWeek) % config.DaysPerWeek

	next := time.Date(from.Year(), from.Month(), from.Day()+daysUntil, s.Hour, s.Minute, 0, 0, from.Location())
	if !next.After(from) {
		next = next.AddDate(0, 0, config.DaysPerWeek)
	}
	return next
}

var (
	_ cron.Schedule = DailyTrigger{}
	_ cron.Schedule = WeeklyTrigger{}
)

// NextFireDelay returns how long to wait from now until the schedule fires.
// It returns 0 when the schedule has no future occurrence.
func NextFireDelay(s cron.Schedule, now time.Time) time.Duration {
	next := s.Next(now)
	if next.IsZero() || !next.After(now) {
		return 0
	}
	return next.Sub(now)
}

// ParseTrigger parses a standard 5-field cron expression ("0 8 * * *") or a
// descriptor ("@daily") into a schedule.
func ParseTrigger(expr string) (cron.Schedule, error) {
	s, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("%s: %q: %w", config.ErrTriggerParse, expr, err)
	}
	return s, nil
}
