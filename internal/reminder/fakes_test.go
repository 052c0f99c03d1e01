package reminder_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tartampluch/go-sitter/internal/reminder"
)

// fakeClock is a settable schedule.Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock { return &fakeClock{now: now} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// fakeTimer records one AfterFunc call; the test fires it by hand.
type fakeTimer struct {
	delay   time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeTimers struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (ft *fakeTimers) AfterFunc(d time.Duration, f func()) reminder.Stopper {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	t := &fakeTimer{delay: d, f: f}
	ft.timers = append(ft.timers, t)
	return t
}

func (ft *fakeTimers) Len() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return len(ft.timers)
}

func (ft *fakeTimers) At(i int) *fakeTimer {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return ft.timers[i]
}

func (ft *fakeTimers) Last() *fakeTimer {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return ft.timers[len(ft.timers)-1]
}

// fire advances the clock to the timer's deadline and runs its callback.
func fire(clock *fakeClock, t *fakeTimer) {
	clock.Set(clock.Now().Add(t.delay))
	t.f()
}

// MockNotifier simulates the platform notification sink using `testify/mock`.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Permission() reminder.Permission {
	return m.Called().Get(0).(reminder.Permission)
}

func (m *MockNotifier) RequestPermission(ctx context.Context) (reminder.Permission, error) {
	args := m.Called(ctx)
	return args.Get(0).(reminder.Permission), args.Error(1)
}

func (m *MockNotifier) Notify(p reminder.Payload) error {
	return m.Called(p).Error(0)
}
