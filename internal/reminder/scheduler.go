package reminder

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tartampluch/go-sitter/internal/config"
	"github.com/tartampluch/go-sitter/internal/schedule"
)

// Options tunes a Scheduler. Zero values pick the defaults: the real clock,
// real timers, daily 08:00, Tuesday 22:00 and English messages.
type Options struct {
	Clock     schedule.Clock
	AfterFunc AfterFunc
	Daily     cron.Schedule
	Evening   cron.Schedule
	Messages  Messages
}

// Scheduler owns the daily and evening reminders and cancels them as a unit.
type Scheduler struct {
	roster   *schedule.Roster
	notifier Notifier
	messages Messages
	clock    schedule.Clock

	daily   *Task
	evening *Task

	log *slog.Logger
}

// NewScheduler wires both reminders to the roster and notifier.
// Nothing is armed until Start.
func NewScheduler(roster *schedule.Roster, notifier Notifier, opts Options) *Scheduler {
	if opts.Clock == nil {
		opts.Clock = schedule.RealClock{}
	}
	if opts.Daily == nil {
		opts.Daily = Daily(config.DailyReminderHour, config.DailyReminderMinute)
	}
	if opts.Evening == nil {
		opts.Evening = Weekly(config.EveningReminderDay, config.EveningReminderHour, config.EveningReminderMinute)
	}
	if opts.Messages == nil {
		opts.Messages = DefaultMessages{}
	}

	s := &Scheduler{
		roster:   roster,
		notifier: notifier,
		messages: opts.Messages,
		clock:    opts.Clock,
		log:      slog.With(slog.String(config.LogKeyComponent, config.CompReminder)),
	}
	s.daily = NewTask(config.TaskDaily, opts.Daily, opts.Clock, opts.AfterFunc, s.SendDaily)
	s.evening = NewTask(config.TaskEvening, opts.Evening, opts.Clock, opts.AfterFunc, s.SendEvening)
	return s
}

// Start arms both reminders. Calling it again while running is a no-op.
func (s *Scheduler) Start() {
	s.daily.Start()
	s.evening.Start()
	s.log.Info(config.MsgSchedulerStart,
		slog.Time(config.TaskDaily, s.daily.Next()),
		slog.Time(config.TaskEvening, s.evening.Next()),
	)
}

// Stop cancels both reminders.
func (s *Scheduler) Stop() {
	s.daily.Stop()
	s.evening.Stop()
	s.log.Info(config.MsgSchedulerStop)
}

// Running reports whether at least one reminder is armed.
func (s *Scheduler) Running() bool {
	return isLive(s.daily.State()) || isLive(s.evening.State())
}

func isLive(st State) bool {
	return st == StateArmed || st == StateFired
}

// NextFires returns the pending fire times; zero when a reminder is not armed.
func (s *Scheduler) NextFires() (daily, evening time.Time) {
	return s.daily.Next(), s.evening.Next()
}

// DailyPayload builds the morning reminder for now: today's shift or a day-off note.
func (s *Scheduler) DailyPayload(now time.Time) Payload {
	a := schedule.TodaysAssignment(now, s.roster.Families)
	if a == nil {
		title, body := s.messages.DayOff()
		return Payload{Title: title, Body: body, Icon: config.IconSun, Tag: config.TagDaily}
	}
	title, body := s.messages.Today(a)
	return Payload{Title: title, Body: body, Icon: config.IconBaby, Tag: config.TagDaily, RequireInteraction: true}
}

// EveningPayload builds the early-shift reminder from tomorrow's assignment.
// It reports false when nobody is scheduled tomorrow.
func (s *Scheduler) EveningPayload(now time.Time) (Payload, bool) {
	a := schedule.TomorrowsAssignment(now, s.roster.Families)
	if a == nil {
		return Payload{}, false
	}
	title, body := s.messages.EarlyShift(a, WakeUpTime(a.Entry))
	return Payload{Title: title, Body: body, Icon: config.IconAlarm, Tag: config.TagEvening, RequireInteraction: true}, true
}

// SendDaily is the job of the daily task.
func (s *Scheduler) SendDaily(now time.Time) {
	s.dispatch(config.TaskDaily, s.DailyPayload(now))
}

// SendEvening is the job of the evening task.
func (s *Scheduler) SendEvening(now time.Time) {
	p, ok := s.EveningPayload(now)
	if !ok {
		s.log.Info(config.MsgReminderNoShift, slog.String(config.LogKeyTask, config.TaskEvening))
		return
	}
	s.dispatch(config.TaskEvening, p)
}

// SendTest immediately sends the daily reminder for now, tagged as a test.
func (s *Scheduler) SendTest(now time.Time) error {
	p := s.DailyPayload(now)
	p.Tag = config.TagTest
	return s.deliver(p)
}

// SendEveningTest immediately sends the early-shift reminder, tagged as a test.
// When nobody is scheduled tomorrow, the next scheduled shift of the week is used
// so the notification can still be previewed.
func (s *Scheduler) SendEveningTest(now time.Time) error {
	p, ok := s.EveningPayload(now)
	for i := 1; !ok && i < config.DaysPerWeek; i++ {
		p, ok = s.EveningPayload(now.AddDate(0, 0, i))
	}
	if !ok {
		title, body := s.messages.DayOff()
		p = Payload{Title: title, Body: body, Icon: config.IconSun}
	}
	p.Tag = config.TagTestEvening
	return s.deliver(p)
}

// SendEnabled confirms that notifications are now active.
func (s *Scheduler) SendEnabled() error {
	title, body := s.messages.Enabled()
	return s.deliver(Payload{Title: title, Body: body, Icon: config.IconBaby, Tag: config.TagTest})
}

// deliver checks the permission before handing the payload to the notifier.
func (s *Scheduler) deliver(p Payload) error {
	switch s.notifier.Permission() {
	case PermissionGranted:
	case PermissionUnsupported:
		return ErrUnsupported
	default:
		return ErrPermissionDenied
	}

	if err := s.notifier.Notify(p); err != nil {
		return fmt.Errorf("%s: %w", config.ErrNotifSend, err)
	}
	s.log.Info(config.MsgNotifSent, slog.String(config.LogKeyTag, p.Tag))
	return nil
}

// dispatch delivers a scheduled reminder; failures are logged, never returned.
func (s *Scheduler) dispatch(task string, p Payload) {
	err := s.deliver(p)
	switch {
	case err == nil:
	case errors.Is(err, ErrPermissionDenied), errors.Is(err, ErrUnsupported):
		s.log.Debug(config.MsgReminderSkipped,
			slog.String(config.LogKeyTask, task),
			slog.String(config.LogKeyPermission, s.notifier.Permission().String()),
		)
	default:
		s.log.Warn(config.ErrNotifSend,
			slog.String(config.LogKeyTask, task),
			slog.String(config.LogKeyError, err.Error()),
		)
	}
}
