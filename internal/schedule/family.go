package schedule

import (
	"sort"
	"time"

	"github.com/tartampluch/go-sitter/internal/config"
)

// Status is the confirmation state of a family's contract.
type Status string

const (
	StatusConfirmed Status = config.StatusConfirmed
	StatusPending   Status = config.StatusPending
)

// Child is one of the children looked after in a family.
type Child struct {
	Name string
	Age  int
}

// Place is a named address (e.g. an after-school pickup location).
type Place struct {
	Name    string
	Address string
}

// Link is a named external reference (e.g. a shared map of activities).
type Link struct {
	Name string
	URL  string
}

// Entry is one weekly shift: a weekday and a [start, end) time range.
type Entry struct {
	Day       time.Weekday
	StartHour int
	StartMin  int
	EndHour   int
	EndMin    int
}

// StartMinutes returns the shift start as minutes since midnight.
func (e Entry) StartMinutes() int {
	return e.StartHour*config.MinutesPerHour + e.StartMin
}

// EndMinutes returns the shift end as minutes since midnight.
func (e Entry) EndMinutes() int {
	return e.EndHour*config.MinutesPerHour + e.EndMin
}

// Contains reports whether minute-of-day m falls inside the shift (end exclusive).
func (e Entry) Contains(m int) bool {
	return m >= e.StartMinutes() && m < e.EndMinutes()
}

// Start renders the start time as HH:MM.
func (e Entry) Start() string {
	return FormatTime(e.StartHour, e.StartMin)
}

// End renders the end time as HH:MM.
func (e Entry) End() string {
	return FormatTime(e.EndHour, e.EndMin)
}

// Family is a client household with its weekly schedule.
// Families are built once at startup and never mutated.
type Family struct {
	ID            string
	Name          string
	Address       string
	Phones        map[string]string // role -> phone number
	Children      []Child
	Status        Status
	Pickup        *Place
	ActivitiesMap *Link
	Schedule      []Entry
	WeeklyHours   float64
}

// EntryOn returns the first shift of the family on the given weekday.
func (f *Family) EntryOn(day time.Weekday) (Entry, bool) {
	for _, e := range f.Schedule {
		if e.Day == day {
			return e, true
		}
	}
	return Entry{}, false
}

// SortedRoles returns the contact roles in alphabetical order so that
// rendering is stable across refreshes.
func (f *Family) SortedRoles() []string {
	roles := make([]string, 0, len(f.Phones))
	for role := range f.Phones {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// Rates holds the process-wide pay constants.
type Rates struct {
	GrossHourly      float64
	ContributionRate float64
}

// DefaultRates returns the contracted hourly rate and social contribution.
func DefaultRates() Rates {
	return Rates{
		GrossHourly:      config.DefaultGrossHourly,
		ContributionRate: config.DefaultContributionRate,
	}
}

// NetHourly is the hourly pay after social contributions.
func (r Rates) NetHourly() float64 {
	return r.GrossHourly * (1 - r.ContributionRate)
}

// Roster is the immutable set of families and rates loaded at startup.
type Roster struct {
	Rates    Rates
	Families []Family
}
