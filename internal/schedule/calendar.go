package schedule

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-sitter/internal/config"
	"github.com/teambition/rrule-go"
)

// rruleDays maps time.Weekday (Sunday first) to RFC 5545 weekdays.
var rruleDays = [config.DaysPerWeek]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// BuildCalendar renders the weekly schedule as an iCalendar feed: one weekly
// recurring event per shift, anchored in the week containing now.
// Times are floating (no TZID) because the schedule follows the local wall clock.
// A non-empty alarm (ISO 8601 duration, e.g. "-PT1H") adds a DISPLAY alarm.
func BuildCalendar(r *Roster, now time.Time, alarm string) ([]byte, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986 refresh hint.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	weekStart := time.Date(now.Year(), now.Month(), now.Day()-int(now.Weekday()), 0, 0, 0, 0, now.Location())

	for fi := range r.Families {
		f := &r.Families[fi]
		for i, e := range f.Schedule {
			event := newShiftEvent(f, i, e, weekStart)
			event.Props.Set(dtStampProp)
			if alarm != "" {
				addAlarm(event, alarm, f.Name)
			}
			cal.Children = append(cal.Children, event.Component)
		}
	}

	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// newShiftEvent builds the recurring VEVENT of one shift.
func newShiftEvent(f *Family, index int, e Entry, weekStart time.Time) *ical.Event {
	event := ical.NewEvent()

	// Deterministic UID so calendar clients keep the same event across restarts.
	input := fmt.Sprintf(config.FormatHashInput, f.ID, int(e.Day), e.Start(), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, index, config.ICalDomain))

	event.Props.SetText(config.PropSummary, f.Name)
	if f.Address != "" {
		event.Props.SetText(config.PropLocation, f.Address)
	}
	if kids := ChildrenSummary(f.Children); kids != "" {
		event.Props.SetText(config.PropDescription, fmt.Sprintf(config.FormatNoteKids, kids))
	}

	day := weekStart.AddDate(0, 0, int(e.Day))
	start := time.Date(day.Year(), day.Month(), day.Day(), e.StartHour, e.StartMin, 0, 0, day.Location())
	end := time.Date(day.Year(), day.Month(), day.Day(), e.EndHour, e.EndMin, 0, 0, day.Location())

	event.Props.Set(floatingProp(config.PropDTStart, start))
	event.Props.Set(floatingProp(config.PropDTEnd, end))

	// Set the rule value manually: SetText would escape the ';' separators.
	rule := rrule.ROption{Freq: rrule.WEEKLY, Byweekday: []rrule.Weekday{rruleDays[e.Day]}}
	rruleProp := ical.NewProp(config.PropRRule)
	rruleProp.Value = rule.RRuleString()
	event.Props.Set(rruleProp)

	return event
}

// floatingProp builds a DATE-TIME property without time zone.
func floatingProp(name string, t time.Time) *ical.Prop {
	p := ical.NewProp(name)
	p.Value = t.Format(config.ICalFloatingLayout)
	return p
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

// ChildrenSummary renders children as "Jack (6y), Stella (4y)".
func ChildrenSummary(children []Child) string {
	parts := make([]string, 0, len(children))
	for _, c := range children {
		parts = append(parts, fmt.Sprintf(config.FormatChild, c.Name, c.Age))
	}
	return strings.Join(parts, config.ListSeparator)
}
