package reminder

import (
	"fmt"

	"github.com/tartampluch/go-sitter/internal/config"
	"github.com/tartampluch/go-sitter/internal/schedule"
)

// Messages renders the user-facing text of each reminder.
// The UI supplies a localized implementation.
type Messages interface {
	Today(a *schedule.Assignment) (title, body string)
	DayOff() (title, body string)
	EarlyShift(a *schedule.Assignment, wake string) (title, body string)
	Enabled() (title, body string)
}

// DefaultMessages renders the English texts.
type DefaultMessages struct{}

func (DefaultMessages) Today(a *schedule.Assignment) (string, string) {
	return fmt.Sprintf(config.FallbackTodayTitle, a.Family.Name),
		fmt.Sprintf(config.FallbackTodayBody, a.Entry.Start(), a.Entry.End(), a.Family.Address)
}

func (DefaultMessages) DayOff() (string, string) {
	return config.FallbackDayOffTitle, config.FallbackDayOffBody
}

func (DefaultMessages) EarlyShift(a *schedule.Assignment, wake string) (string, string) {
	return config.FallbackEarlyTitle,
		fmt.Sprintf(config.FallbackEarlyBody, wake, a.Family.Name, a.Entry.Start(), a.Entry.End(), a.Family.Address)
}

func (DefaultMessages) Enabled() (string, string) {
	return config.FallbackEnabledTitle, config.FallbackEnabledBody
}

// WakeUpTime returns the suggested wake-up time for a shift, config.WakeUpLead
// before its start, wrapping around midnight.
func WakeUpTime(e schedule.Entry) string {
	lead := int(config.WakeUpLead.Minutes())
	minutesPerDay := config.MinutesPerHour * config.HoursPerDay
	m := ((e.StartMinutes()-lead)%minutesPerDay + minutesPerDay) % minutesPerDay
	return schedule.FormatTime(m/config.MinutesPerHour, m%config.MinutesPerHour)
}
