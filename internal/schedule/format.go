package schedule

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-sitter/internal/config"
)

// FormatTime renders an hour and minute as zero-padded HH:MM.
func FormatTime(hour, minute int) string {
	return fmt.Sprintf(config.FormatClock, hour, minute)
}

// FormatMoney renders an amount with two decimals ("91.82").
func FormatMoney(v float64) string {
	return fmt.Sprintf(config.FormatMoney, v)
}

// DayName maps 0 (Sunday) .. 6 (Saturday) to the English weekday name.
// Out-of-range values yield an empty string.
func DayName(day int) string {
	if day < 0 || day >= config.DaysPerWeek {
		return ""
	}
	return time.Weekday(day).String()
}
