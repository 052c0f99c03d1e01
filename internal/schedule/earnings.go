package schedule

import "github.com/tartampluch/go-sitter/internal/config"

// Earnings is a gross/net pair of amounts in the pay currency.
type Earnings struct {
	Gross float64
	Net   float64
}

// DailyEarnings returns the net pay for the assignment's shift.
// Only whole hours count: start and end minutes are ignored.
func DailyEarnings(a *Assignment, r Rates) float64 {
	if a == nil {
		return 0
	}
	return float64(a.Entry.EndHour-a.Entry.StartHour) * r.NetHourly()
}

// TotalWeeklyHours sums the contracted weekly hours of all families.
func TotalWeeklyHours(families []Family) float64 {
	var total float64
	for i := range families {
		total += families[i].WeeklyHours
	}
	return total
}

// WeeklyEarnings computes the contracted weekly gross and net pay.
func WeeklyEarnings(families []Family, r Rates) Earnings {
	gross := TotalWeeklyHours(families) * r.GrossHourly
	return Earnings{
		Gross: gross,
		Net:   gross * (1 - r.ContributionRate),
	}
}

// MonthlyEarnings scales weekly earnings by the average weeks per month.
func MonthlyEarnings(weekly Earnings) Earnings {
	return Earnings{
		Gross: weekly.Gross * config.WeeksPerMonth,
		Net:   weekly.Net * config.WeeksPerMonth,
	}
}

// FamilyWeeklyNet is the net weekly pay contracted with one family.
func FamilyWeeklyNet(f *Family, r Rates) float64 {
	return f.WeeklyHours * r.NetHourly()
}
