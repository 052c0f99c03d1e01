package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/tartampluch/go-sitter/internal/config"
	"github.com/tartampluch/go-sitter/internal/reminder"
	"github.com/tartampluch/go-sitter/internal/schedule"
)

// PromptFunc asks the user whether notifications may be shown. It returns
// false when the context ends before an answer.
type PromptFunc func(ctx context.Context) bool

// Notifier delivers reminders through the fyne notification API.
// The user's decision is kept in the fyne Preferences so it survives restarts.
type Notifier struct {
	App         fyne.App
	Preferences fyne.Preferences
	// Supported is false when the driver cannot show desktop notifications.
	Supported bool
	Prompt    PromptFunc
}

var _ reminder.Notifier = (*Notifier)(nil)

// NewNotifier creates a notifier for a; only desktop drivers are supported.
func NewNotifier(a fyne.App, prompt PromptFunc) *Notifier {
	_, desk := a.(desktop.App)
	return &Notifier{
		App:         a,
		Preferences: a.Preferences(),
		Supported:   desk,
		Prompt:      prompt,
	}
}

// Permission returns the stored decision.
func (n *Notifier) Permission() reminder.Permission {
	if !n.Supported {
		return reminder.PermissionUnsupported
	}
	return reminder.ParsePermission(n.Preferences.String(config.PrefNotifPermission))
}

// RequestPermission prompts the user when no decision was stored yet.
// An earlier decision is returned as is; a denial is never asked again
// and has to be reverted from the settings window.
func (n *Notifier) RequestPermission(ctx context.Context) (reminder.Permission, error) {
	current := n.Permission()
	switch current {
	case reminder.PermissionUnsupported:
		return current, reminder.ErrUnsupported
	case reminder.PermissionGranted, reminder.PermissionDenied:
		return current, nil
	}

	if n.Prompt == nil {
		return current, errors.New(config.ErrNotifRequest)
	}

	granted := n.Prompt(ctx)
	if ctx.Err() != nil {
		return current, ctx.Err()
	}

	perm := reminder.PermissionDenied
	if granted {
		perm = reminder.PermissionGranted
	}
	n.SetPermission(perm)
	return perm, nil
}

// SetPermission stores a decision. Storing PermissionDefault resets it.
func (n *Notifier) SetPermission(p reminder.Permission) {
	n.Preferences.SetString(config.PrefNotifPermission, p.String())
	slog.Info(config.MsgPermissionState,
		config.LogKeyComponent, config.CompNotifier,
		config.LogKeyPermission, p.String())
}

// Notify shows the payload. fyne notifications have no tag or sticky flag,
// so those only reach the log.
func (n *Notifier) Notify(p reminder.Payload) error {
	if !n.Supported {
		return reminder.ErrUnsupported
	}

	title := p.Title
	if p.Icon != "" && !strings.Contains(title, p.Icon) {
		title = p.Icon + " " + title
	}
	n.App.SendNotification(fyne.NewNotification(title, p.Body))

	slog.Debug(config.MsgNotifSent,
		config.LogKeyComponent, config.CompNotifier,
		config.LogKeyTag, p.Tag)
	return nil
}

// confirmPrompt shows a confirmation dialog in its own window and waits for
// the answer. Closing the window counts as a refusal.
func (app *SitterApp) confirmPrompt(ctx context.Context) bool {
	answer := make(chan bool, 1)
	reply := func(ok bool) {
		select {
		case answer <- ok:
		default:
		}
	}

	title := app.GetMsg(config.TKeyNotifPromptTitle)
	body := app.GetMsg(config.TKeyNotifPromptBody)

	fyne.Do(func() {
		w := app.App.NewWindow(title)
		w.SetOnClosed(func() { reply(false) })
		d := dialog.NewConfirm(title, body, func(ok bool) {
			reply(ok)
			w.Close()
		}, w)
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, config.SettingsWindowWidth/2))
		w.Show()
		d.Show()
	})

	select {
	case ok := <-answer:
		return ok
	case <-ctx.Done():
		return false
	}
}

// localizedMessages renders reminder texts with the current locale,
// falling back to the English defaults for missing keys.
type localizedMessages struct {
	app *SitterApp
}

var _ reminder.Messages = localizedMessages{}

func (m localizedMessages) Today(a *schedule.Assignment) (string, string) {
	title, body := reminder.DefaultMessages{}.Today(a)
	return m.app.GetMsgOr(config.TKeyRemTodayTitle, map[string]interface{}{"Family": a.Family.Name}, title),
		m.app.GetMsgOr(config.TKeyRemTodayBody, map[string]interface{}{
			"Start":   a.Entry.Start(),
			"End":     a.Entry.End(),
			"Address": a.Family.Address,
		}, body)
}

func (m localizedMessages) DayOff() (string, string) {
	title, body := reminder.DefaultMessages{}.DayOff()
	return m.app.GetMsgOr(config.TKeyRemDayOffTitle, nil, title),
		m.app.GetMsgOr(config.TKeyRemDayOffBody, nil, body)
}

func (m localizedMessages) EarlyShift(a *schedule.Assignment, wake string) (string, string) {
	title, body := reminder.DefaultMessages{}.EarlyShift(a, wake)
	return m.app.GetMsgOr(config.TKeyRemEarlyTitle, nil, title),
		m.app.GetMsgOr(config.TKeyRemEarlyBody, map[string]interface{}{
			"Wake":    wake,
			"Family":  a.Family.Name,
			"Start":   a.Entry.Start(),
			"End":     a.Entry.End(),
			"Address": a.Family.Address,
		}, body)
}

func (m localizedMessages) Enabled() (string, string) {
	title, body := reminder.DefaultMessages{}.Enabled()
	return m.app.GetMsgOr(config.TKeyRemEnabledTitle, nil, title),
		m.app.GetMsgOr(config.TKeyRemEnabledBody, nil, body)
}
