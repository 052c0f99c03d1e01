package schedule

import (
	"time"

	"github.com/tartampluch/go-sitter/internal/config"
)

// Assignment is the (family, shift) pair selected for a given day.
type Assignment struct {
	Family *Family
	Entry  Entry
}

// AssignmentOn scans the families in declaration order and returns the first
// family/shift scheduled on day, or nil when nobody is scheduled.
// If two families were scheduled the same day, the first declared one wins.
func AssignmentOn(day time.Weekday, families []Family) *Assignment {
	for i := range families {
		if e, ok := families[i].EntryOn(day); ok {
			return &Assignment{Family: &families[i], Entry: e}
		}
	}
	return nil
}

// TodaysAssignment returns the assignment for now's weekday.
func TodaysAssignment(now time.Time, families []Family) *Assignment {
	return AssignmentOn(now.Weekday(), families)
}

// TomorrowsAssignment returns the assignment for the weekday after now.
func TomorrowsAssignment(now time.Time, families []Family) *Assignment {
	return AssignmentOn((now.Weekday()+1)%config.DaysPerWeek, families)
}

// IsCurrentlyWorking reports whether now falls within the assignment's shift.
// A nil assignment, or one for another weekday, is never working.
func IsCurrentlyWorking(now time.Time, a *Assignment) bool {
	if a == nil || a.Entry.Day != now.Weekday() {
		return false
	}
	return a.Entry.Contains(minuteOfDay(now))
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*config.MinutesPerHour + t.Minute()
}
