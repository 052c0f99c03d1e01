package ui

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-sitter/internal/config"
	"github.com/tartampluch/go-sitter/internal/reminder"
	"github.com/tartampluch/go-sitter/internal/schedule"
	"github.com/tartampluch/go-sitter/internal/server"
	"github.com/zalando/go-keyring"
)

//go:embed Icon.png
var appIconData []byte

// SitterApp encapsulates the UI state, preferences, and background logic.
type SitterApp struct {
	App         fyne.App
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server  *server.FeedServer
	Fetcher schedule.RosterFetcher
	Clock   schedule.Clock // Injected clock for testability
	Source  schedule.SourceConfig

	// Roster is loaded once by Init and never mutated afterwards.
	Roster *schedule.Roster

	Notifier        *Notifier
	Reminders       *reminder.Scheduler
	ReminderOptions reminder.Options

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem      *fyne.MenuItem
	TrayDashboardItem   *fyne.MenuItem
	TraySettingsItem    *fyne.MenuItem
	TrayTestDailyItem   *fyne.MenuItem
	TrayTestEveningItem *fyne.MenuItem
	TrayEnableItem      *fyne.MenuItem

	SupportedLanguages []string

	settingsWindow  fyne.Window
	dashboardWindow fyne.Window
}

// NewSitterApp constructs the application and wires dependencies.
func NewSitterApp(a fyne.App, ctx context.Context, srv *server.FeedServer, fetcher schedule.RosterFetcher, src schedule.SourceConfig) *SitterApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	app := &SitterApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Fetcher:            fetcher,
		Clock:              schedule.RealClock{},
		Source:             src,
		SupportedLanguages: config.SupportedLanguages,
	}
	app.Notifier = NewNotifier(a, app.confirmPrompt)
	return app
}

// Init loads translations and the roster, publishes the feeds and prepares
// the reminder scheduler. A roster error is returned after falling back to
// an empty roster, so the UI can still start and report it.
func (app *SitterApp) Init() error {
	app.SetupI18n()

	err := app.LoadRoster()
	if err != nil {
		slog.Error(config.ErrRosterRead,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyMode, app.Source.Mode,
			config.LogKeyError, err)
		app.Roster = &schedule.Roster{Rates: schedule.DefaultRates()}
	}

	app.publishFeeds()
	app.initReminders()
	return err
}

// Run launches the application services and the main UI loop.
func (app *SitterApp) Run() {
	if err := app.Init(); err != nil {
		app.App.SendNotification(fyne.NewNotification(config.TitleStartupError, err.Error()))
	}

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.refresh()
	go app.backgroundWorker()
	app.App.Run()
}

// LoadRoster reads the roster from the configured source. The password of a
// remote roster comes from the OS keyring.
func (app *SitterApp) LoadRoster() error {
	src := app.Source
	if src.Mode == config.SourceModeWeb && src.WebUser != "" && src.WebPass == "" {
		if p, err := keyring.Get(config.KeyringService, src.WebUser); err == nil {
			src.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, src.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}

	roster, err := schedule.LoadRoster(app.Ctx, src, app.Fetcher)
	if err != nil {
		return err
	}
	app.Roster = roster
	return nil
}

// ReloadRoster reads the roster again from app.Source, republishes the feeds
// and rebuilds the reminders around it. On error the previous roster stays.
func (app *SitterApp) ReloadRoster() error {
	slog.Info(config.MsgRosterReload,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyMode, app.Source.Mode)

	if err := app.LoadRoster(); err != nil {
		slog.Error(config.ErrRosterRead,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return err
	}

	if app.Reminders != nil {
		app.Reminders.Stop()
	}
	app.publishFeeds()
	app.initReminders()
	return nil
}

// publishFeeds renders the calendar and contacts and hands them to the server.
func (app *SitterApp) publishFeeds() {
	log := slog.With(config.LogKeyComponent, config.CompUI)

	ics, err := schedule.BuildCalendar(app.Roster, app.Clock.Now(), config.DefaultAlarm)
	if err != nil {
		log.Error(config.ErrICalEncode, config.LogKeyError, err)
	} else if err := app.Server.Update(config.RouteCalendar, ics); err != nil {
		log.Error(config.ErrUnknownFeed, config.LogKeyError, err)
	}

	vcf, err := schedule.BuildContacts(app.Roster.Families)
	if err != nil {
		log.Error(config.ErrVCardEncode, config.LogKeyError, err)
	} else if err := app.Server.Update(config.RouteContacts, vcf); err != nil {
		log.Error(config.ErrUnknownFeed, config.LogKeyError, err)
	}

	log.Info(config.MsgFeedsBuilt,
		config.LogKeyFamilies, len(app.Roster.Families))
}

// initReminders builds the scheduler and arms it when notifications are allowed.
func (app *SitterApp) initReminders() {
	opts := app.ReminderOptions
	opts.Clock = app.Clock
	opts.Messages = localizedMessages{app: app}
	app.Reminders = reminder.NewScheduler(app.Roster, app.Notifier, opts)

	perm := app.Notifier.Permission()
	slog.Info(config.MsgPermissionState,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyPermission, perm.String())

	if perm == reminder.PermissionGranted {
		app.Reminders.Start()
	}
}

// EnableNotifications asks for permission and applies the outcome.
// It blocks while the prompt is open, so menu callbacks run it in a goroutine.
func (app *SitterApp) EnableNotifications() {
	slog.Info(config.MsgPermissionRequest, config.LogKeyComponent, config.CompUI)

	perm, err := app.Notifier.RequestPermission(app.Ctx)
	if err != nil {
		slog.Warn(config.ErrNotifRequest,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyPermission, perm.String(),
			config.LogKeyError, err)
	}
	app.applyPermission(perm)
}

// applyPermission arms or disarms the reminders for the given decision.
func (app *SitterApp) applyPermission(perm reminder.Permission) {
	if perm == reminder.PermissionGranted {
		app.Reminders.Start()
		if err := app.Reminders.SendEnabled(); err != nil {
			slog.Warn(config.ErrNotifSend, config.LogKeyComponent, config.CompUI, config.LogKeyError, err)
		}
	} else {
		app.Reminders.Stop()
	}
	fyne.Do(app.refresh)
}

// sendTest fires one of the test notifications and reports why it could not.
func (app *SitterApp) sendTest(send func(time.Time) error) {
	err := send(app.Clock.Now())
	if err == nil {
		return
	}

	slog.Warn(config.ErrNotifSend, config.LogKeyComponent, config.CompUI, config.LogKeyError, err)
	if errors.Is(err, reminder.ErrPermissionDenied) && app.Notifier.Permission() == reminder.PermissionDefault {
		go app.EnableNotifications()
	}
}

// setupTrayMenu constructs the system tray menu.
func (app *SitterApp) setupTrayMenu() {
	// The status item opens the dashboard.
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowDashboardWindow()
	})

	app.TrayDashboardItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuDashboard), func() {
		app.ShowDashboardWindow()
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.TrayTestDailyItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuTestDaily), func() {
		go app.sendTest(app.Reminders.SendTest)
	})

	app.TrayTestEveningItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuTestEvening), func() {
		go app.sendTest(app.Reminders.SendEveningTest)
	})

	app.TrayEnableItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuEnableNotif), func() {
		go app.EnableNotifications()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayDashboardItem,
		app.TraySettingsItem,
		fyne.NewMenuItemSeparator(),
		app.TrayTestDailyItem,
		app.TrayTestEveningItem,
		app.TrayEnableItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *SitterApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayDashboardItem.Label = app.GetMsg(config.TKeyMenuDashboard)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.TrayTestDailyItem.Label = app.GetMsg(config.TKeyMenuTestDaily)
	app.TrayTestEveningItem.Label = app.GetMsg(config.TKeyMenuTestEvening)
	app.TrayEnableItem.Label = app.GetMsg(config.TKeyMenuEnableNotif)
	app.Menu.Refresh()
}

// backgroundWorker refreshes the tray status and the dashboard every minute
// until the context is cancelled, then stops the reminders.
func (app *SitterApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	ticker := time.NewTicker(config.MinuteTick)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			if app.Reminders != nil {
				app.Reminders.Stop()
			}
			return

		case <-ticker.C:
			fyne.Do(app.refresh)
		}
	}
}

// refresh recomputes the snapshot and updates every view. Must run on the UI goroutine.
func (app *SitterApp) refresh() {
	snap := schedule.BuildSnapshot(app.Clock.Now(), app.Roster)

	app.updateTrayStatus(snap)
	app.updateNotificationItems()
	if app.dashboardWindow != nil {
		app.dashboardWindow.SetContent(app.buildDashboard(snap))
	}
}

// updateTrayStatus shows who the sitter is with today in the top menu item.
func (app *SitterApp) updateTrayStatus(snap schedule.Snapshot) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	app.TrayStatusItem.Label = app.trayStatusLabel(snap)
	app.Menu.Refresh()
}

func (app *SitterApp) trayStatusLabel(snap schedule.Snapshot) string {
	a := snap.Assignment
	switch {
	case a == nil:
		return app.GetMsgOr(config.TKeyTrayDayOff, nil, config.FallbackTrayDayOff)
	case snap.Working:
		return app.GetMsgOr(config.TKeyTrayWorking,
			map[string]interface{}{"Family": a.Family.Name},
			fmt.Sprintf(config.FallbackTrayWorking, a.Family.Name))
	default:
		return app.GetMsgOr(config.TKeyTrayToday,
			map[string]interface{}{"Family": a.Family.Name, "Start": a.Entry.Start()},
			fmt.Sprintf(config.FallbackTrayToday, a.Family.Name, a.Entry.Start()))
	}
}

// updateNotificationItems enables the "enable notifications" item only while
// the decision is still open.
func (app *SitterApp) updateNotificationItems() {
	if app.Menu == nil || app.TrayEnableItem == nil {
		return
	}
	app.TrayEnableItem.Disabled = app.Notifier.Permission() != reminder.PermissionDefault
	app.Menu.Refresh()
}
