package schedule

import "time"

// Snapshot is everything the dashboard renders for a given instant.
type Snapshot struct {
	Now           time.Time
	Assignment    *Assignment
	Working       bool
	DailyEarnings float64
	TotalHours    float64
	Weekly        Earnings
	Monthly       Earnings
}

// BuildSnapshot derives the dashboard state of the roster at now.
func BuildSnapshot(now time.Time, r *Roster) Snapshot {
	a := TodaysAssignment(now, r.Families)
	weekly := WeeklyEarnings(r.Families, r.Rates)

	return Snapshot{
		Now:           now,
		Assignment:    a,
		Working:       IsCurrentlyWorking(now, a),
		DailyEarnings: DailyEarnings(a, r.Rates),
		TotalHours:    TotalWeeklyHours(r.Families),
		Weekly:        weekly,
		Monthly:       MonthlyEarnings(weekly),
	}
}
