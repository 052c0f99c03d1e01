package schedule

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tartampluch/go-sitter/internal/config"
	yaml "go.yaml.in/yaml/v3"
)

//go:embed default_roster.yaml
var defaultRosterYAML []byte

// rosterDoc mirrors the YAML roster file.
type rosterDoc struct {
	Rates    *ratesDoc   `yaml:"rates"`
	Families []familyDoc `yaml:"families"`
}

type ratesDoc struct {
	GrossHourly      float64 `yaml:"gross_hourly"`
	ContributionRate float64 `yaml:"contribution_rate"`
}

type familyDoc struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	Address       string            `yaml:"address"`
	Phones        map[string]string `yaml:"phones"`
	Children      []childDoc        `yaml:"children"`
	Status        string            `yaml:"status"`
	Pickup        *placeDoc         `yaml:"pickup"`
	ActivitiesMap *linkDoc          `yaml:"activities_map"`
	Schedule      []entryDoc        `yaml:"schedule"`
	WeeklyHours   float64           `yaml:"weekly_hours"`
}

type childDoc struct {
	Name string `yaml:"name"`
	Age  int    `yaml:"age"`
}

type placeDoc struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

type linkDoc struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type entryDoc struct {
	Day   int    `yaml:"day"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// DefaultRoster returns the roster embedded in the binary.
func DefaultRoster() (*Roster, error) {
	return DecodeRoster(bytes.NewReader(defaultRosterYAML))
}

// DecodeRoster parses and validates a YAML roster.
// Unknown fields are rejected so typos do not silently drop data.
func DecodeRoster(r io.Reader) (*Roster, error) {
	var doc rosterDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", config.ErrRosterDecode, err)
	}

	rates := DefaultRates()
	if doc.Rates != nil {
		rates = Rates{GrossHourly: doc.Rates.GrossHourly, ContributionRate: doc.Rates.ContributionRate}
	}
	if rates.GrossHourly <= 0 || rates.ContributionRate < 0 || rates.ContributionRate >= 1 {
		return nil, errors.New(config.ErrRosterRates)
	}

	roster := &Roster{Rates: rates, Families: make([]Family, 0, len(doc.Families))}
	seen := make(map[string]bool, len(doc.Families))

	for _, fd := range doc.Families {
		f, err := fd.toFamily()
		if err != nil {
			return nil, err
		}
		if seen[f.ID] {
			return nil, fmt.Errorf("%s: %q", config.ErrRosterDuplicate, f.ID)
		}
		seen[f.ID] = true
		roster.Families = append(roster.Families, f)
	}

	return roster, nil
}

func (fd familyDoc) toFamily() (Family, error) {
	if fd.ID == "" || fd.Name == "" {
		return Family{}, fmt.Errorf("%s: id=%q name=%q", config.ErrRosterEmptyID, fd.ID, fd.Name)
	}

	status := Status(fd.Status)
	if status != StatusConfirmed && status != StatusPending {
		return Family{}, fmt.Errorf("%s: family %q: %q", config.ErrRosterStatus, fd.ID, fd.Status)
	}
	if fd.WeeklyHours < 0 {
		return Family{}, fmt.Errorf("%s: family %q", config.ErrRosterHours, fd.ID)
	}

	f := Family{
		ID:          fd.ID,
		Name:        fd.Name,
		Address:     fd.Address,
		Phones:      fd.Phones,
		Status:      status,
		WeeklyHours: fd.WeeklyHours,
	}
	if f.Phones == nil {
		f.Phones = map[string]string{}
	}
	for _, c := range fd.Children {
		f.Children = append(f.Children, Child{Name: c.Name, Age: c.Age})
	}
	if fd.Pickup != nil {
		f.Pickup = &Place{Name: fd.Pickup.Name, Address: fd.Pickup.Address}
	}
	if fd.ActivitiesMap != nil {
		f.ActivitiesMap = &Link{Name: fd.ActivitiesMap.Name, URL: fd.ActivitiesMap.URL}
	}

	for i, ed := range fd.Schedule {
		e, err := ed.toEntry()
		if err != nil {
			return Family{}, fmt.Errorf("family %q shift %d: %w", fd.ID, i, err)
		}
		for j, prev := range f.Schedule {
			if prev.Day == e.Day && prev.StartMinutes() < e.EndMinutes() && e.StartMinutes() < prev.EndMinutes() {
				return Family{}, fmt.Errorf("%s: family %q shifts %d and %d", config.ErrRosterOverlap, fd.ID, j, i)
			}
		}
		f.Schedule = append(f.Schedule, e)
	}

	return f, nil
}

func (ed entryDoc) toEntry() (Entry, error) {
	if ed.Day < 0 || ed.Day >= config.DaysPerWeek {
		return Entry{}, fmt.Errorf("%s: %d", config.ErrRosterDay, ed.Day)
	}

	sh, sm, err := parseClock(ed.Start)
	if err != nil {
		return Entry{}, err
	}
	eh, em, err := parseClock(ed.End)
	if err != nil {
		return Entry{}, err
	}

	e := Entry{Day: time.Weekday(ed.Day), StartHour: sh, StartMin: sm, EndHour: eh, EndMin: em}
	if e.StartMinutes() >= e.EndMinutes() {
		return Entry{}, fmt.Errorf("%s: %s-%s", config.ErrRosterOrder, ed.Start, ed.End)
	}
	return e, nil
}

// parseClock parses "HH:MM" into hour and minute.
func parseClock(s string) (int, int, error) {
	t, err := time.Parse(config.TimeFormatHM, s)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %q", config.ErrRosterTime, s)
	}
	return t.Hour(), t.Minute(), nil
}
