package reminder

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tartampluch/go-sitter/internal/config"
	"github.com/tartampluch/go-sitter/internal/schedule"
)

// Stopper is the part of *time.Timer a Task needs.
type Stopper interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d. time.AfterFunc satisfies it
// through TimerAfterFunc; tests inject a fake to fire timers by hand.
type AfterFunc func(d time.Duration, f func()) Stopper

// TimerAfterFunc wraps time.AfterFunc.
func TimerAfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// State is the lifecycle state of a Task.
type State int

const (
	StateIdle State = iota
	StateArmed
	StateFired
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateArmed:
		return "armed"
	case StateFired:
		return "fired"
	case StateStopped:
		return "stopped"
	default:
		return "idle"
	}
}

// Task is a recurring job: after each fire it runs the job, then re-arms
// itself for the next occurrence of its schedule. Stop cancels the pending
// timer and guarantees no further runs.
type Task struct {
	name      string
	schedule  cron.Schedule
	job       func(now time.Time)
	clock     schedule.Clock
	afterFunc AfterFunc
	log       *slog.Logger

	mu    sync.Mutex
	state State
	timer Stopper
	next  time.Time
	// gen invalidates callbacks of timers armed before the last Stop.
	gen uint64
}

// NewTask creates an idle task. Call Start to arm it.
func NewTask(name string, s cron.Schedule, clock schedule.Clock, after AfterFunc, job func(now time.Time)) *Task {
	if clock == nil {
		clock = schedule.RealClock{}
	}
	if after == nil {
		after = TimerAfterFunc
	}
	return &Task{
		name:      name,
		schedule:  s,
		job:       job,
		clock:     clock,
		afterFunc: after,
		log: slog.With(
			slog.String(config.LogKeyComponent, config.CompReminder),
			slog.String(config.LogKeyTask, name),
		),
	}
}

// Name returns the task name given to NewTask.
func (t *Task) Name() string { return t.name }

// Start arms the task. It is a no-op when the task is already armed.
// A stopped task can be started again.
func (t *Task) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateArmed || t.state == StateFired {
		return
	}
	t.armLocked()
}

// Stop cancels the pending timer. A run already in progress completes but
// does not re-arm.
func (t *Task) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
	t.state = StateStopped
	t.next = time.Time{}
}

// State returns the current lifecycle state.
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Next returns the time of the pending fire, or the zero time when not armed.
func (t *Task) Next() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.next
}

func (t *Task) armLocked() {
	now := t.clock.Now()
	delay := NextFireDelay(t.schedule, now)
	if delay <= 0 {
		t.log.Warn("Schedule has no future occurrence, task left idle")
		t.state = StateIdle
		return
	}

	gen := t.gen
	t.next = now.Add(delay)
	t.timer = t.afterFunc(delay, func() { t.fire(gen) })
	t.state = StateArmed

	t.log.Debug(config.MsgReminderArmed,
		slog.Time(config.LogKeyNext, t.next),
		slog.Duration(config.LogKeyDelay, delay),
	)
}

func (t *Task) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || t.state != StateArmed {
		t.mu.Unlock()
		return
	}
	t.state = StateFired
	t.timer = nil
	t.mu.Unlock()

	now := t.clock.Now()
	t.log.Info(config.MsgReminderFired)
	t.run(now)

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen == t.gen && t.state == StateFired {
		t.armLocked()
	}
}

// run executes the job; a panic is logged and swallowed so the task re-arms.
func (t *Task) run(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			t.log.Error(config.ErrReminderPanic,
				slog.String(config.LogKeyError, fmt.Sprint(r)),
			)
		}
	}()
	t.job(now)
}
