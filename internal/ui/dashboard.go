package ui

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-sitter/internal/config"
	"github.com/tartampluch/go-sitter/internal/reminder"
	"github.com/tartampluch/go-sitter/internal/schedule"
)

// ShowDashboardWindow displays today's assignment, earnings, the weekly
// schedule and family contacts. If the window is already open, it requests focus.
func (app *SitterApp) ShowDashboardWindow() {
	if app.dashboardWindow != nil {
		app.dashboardWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgDashboardOpen, config.LogKeyComponent, config.CompUI)

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinDashboard))
	app.dashboardWindow = w
	w.Resize(fyne.NewSize(config.DashboardWinWidth, config.DashboardWinHeight))
	w.SetContent(app.buildDashboard(schedule.BuildSnapshot(app.Clock.Now(), app.Roster)))
	w.SetOnClosed(func() { app.dashboardWindow = nil })
	w.Show()
}

// buildDashboard renders a snapshot. The minute ticker calls it again to
// replace the window content.
func (app *SitterApp) buildDashboard(snap schedule.Snapshot) fyne.CanvasObject {
	header := widget.NewLabelWithStyle(
		app.dayName(snap.Now.Weekday())+" "+snap.Now.Format(app.dateFormat()),
		fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	content := container.NewVBox(
		header,
		app.buildTodayCard(snap),
		app.buildEarningsCard(snap),
		app.buildScheduleCard(),
		app.buildContactsCard(),
		app.buildNotificationCard(),
	)
	return container.NewVScroll(container.NewPadded(content))
}

func (app *SitterApp) dateFormat() string {
	return app.GetMsgOr(config.TKeyFormatDate, nil, config.DateFormatLong)
}

func (app *SitterApp) buildTodayCard(snap schedule.Snapshot) *widget.Card {
	title := app.GetMsg(config.TKeyLblTodayTitle)
	a := snap.Assignment
	if a == nil {
		return widget.NewCard(title, "", container.NewVBox(
			widget.NewLabel(app.GetMsg(config.TKeyLblNoAssignment)),
			widget.NewLabel(app.GetMsg(config.TKeyLblDayOff)),
		))
	}

	rows := container.NewVBox()
	if snap.Working {
		working := widget.NewLabelWithStyle(app.GetMsg(config.TKeyLblWorkingNow), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
		rows.Add(container.NewHBox(widget.NewIcon(theme.ConfirmIcon()), working))
	}
	rows.Add(widget.NewLabelWithStyle(a.Family.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	rows.Add(widget.NewLabel(a.Entry.Start() + " - " + a.Entry.End()))
	if a.Family.Address != "" {
		rows.Add(app.addressRow(a.Family.Address))
	}

	return widget.NewCard(title, app.statusLabel(a.Family.Status), rows)
}

func (app *SitterApp) buildEarningsCard(snap schedule.Snapshot) *widget.Card {
	rates := app.Roster.Rates
	money := func(v float64) string { return fmt.Sprintf(config.CurrencyFormat, schedule.FormatMoney(v)) }

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblTodayEarnings), widget.NewLabel(money(snap.DailyEarnings))),
		widget.NewFormItem(app.GetMsg(config.TKeyLblWeekly), widget.NewLabel(
			app.GetMsg(config.TKeyLblGross)+" "+money(snap.Weekly.Gross)+config.ListSeparator+
				app.GetMsg(config.TKeyLblNet)+" "+money(snap.Weekly.Net))),
		widget.NewFormItem(app.GetMsg(config.TKeyLblMonthly), widget.NewLabel(
			app.GetMsg(config.TKeyLblGross)+" "+money(snap.Monthly.Gross)+config.ListSeparator+
				app.GetMsg(config.TKeyLblNet)+" "+money(snap.Monthly.Net))),
	)

	hours := app.GetMsgData(config.TKeyLblHoursRate, map[string]interface{}{
		"Hours": fmt.Sprintf("%g", snap.TotalHours),
		"Rate":  money(rates.GrossHourly),
	})
	note := widget.NewLabel(hours + "\n" + app.GetMsg(config.TKeyLblWeeksMonth))
	note.TextStyle = fyne.TextStyle{Italic: true}

	return widget.NewCard("", "", container.NewVBox(form, note))
}

func (app *SitterApp) buildScheduleCard() *widget.Card {
	rows := container.NewVBox()
	for i := range app.Roster.Families {
		f := &app.Roster.Families[i]

		name := widget.NewLabelWithStyle(f.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
		rows.Add(container.NewHBox(name, widget.NewLabel(app.statusLabel(f.Status))))
		for _, e := range f.Schedule {
			rows.Add(widget.NewLabel(app.dayName(e.Day) + " " + e.Start() + " - " + e.End()))
		}
		net := fmt.Sprintf(config.CurrencyFormat, schedule.FormatMoney(schedule.FamilyWeeklyNet(f, app.Roster.Rates)))
		rows.Add(widget.NewLabel(app.GetMsgData(config.TKeyLblNetWeek, map[string]interface{}{"Amount": net})))
		if i < len(app.Roster.Families)-1 {
			rows.Add(widget.NewSeparator())
		}
	}
	return widget.NewCard(app.GetMsg(config.TKeyLblSchedule), "", rows)
}

func (app *SitterApp) buildContactsCard() *widget.Card {
	rows := container.NewVBox()
	for i := range app.Roster.Families {
		f := &app.Roster.Families[i]
		rows.Add(widget.NewLabelWithStyle(f.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))

		for _, role := range f.SortedRoles() {
			phone := f.Phones[role]
			call := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCall), theme.MailSendIcon(), func() {
				app.openURL(DialURL(phone))
			})
			rows.Add(container.NewBorder(nil, nil, nil, call, widget.NewLabel(role+": "+phone)))
		}

		if kids := schedule.ChildrenSummary(f.Children); kids != "" {
			rows.Add(widget.NewLabel(app.GetMsg(config.TKeyLblChildren) + " " + kids))
		}
		if f.Pickup != nil {
			rows.Add(widget.NewLabel(app.GetMsg(config.TKeyLblPickup) + " " + f.Pickup.Name))
			rows.Add(app.addressRow(f.Pickup.Address))
		}
		if f.ActivitiesMap != nil {
			if u, err := url.Parse(f.ActivitiesMap.URL); err == nil {
				rows.Add(widget.NewHyperlink(f.ActivitiesMap.Name, u))
			}
		}
		if i < len(app.Roster.Families)-1 {
			rows.Add(widget.NewSeparator())
		}
	}
	return widget.NewCard(app.GetMsg(config.TKeyLblContacts), "", rows)
}

// buildNotificationCard shows the permission state and, while undecided, the enable button.
func (app *SitterApp) buildNotificationCard() *widget.Card {
	perm := app.Notifier.Permission()
	rows := container.NewVBox(widget.NewLabel(app.permissionLabel(perm)))

	switch perm {
	case reminder.PermissionDefault:
		rows.Add(widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnEnableNotif), theme.VolumeUpIcon(), func() {
			go app.EnableNotifications()
		}))
	case reminder.PermissionDenied:
		help := widget.NewLabel(app.GetMsg(config.TKeyNotifDeniedHelp))
		help.Wrapping = fyne.TextWrapWord
		rows.Add(help)
	}
	return widget.NewCard(app.GetMsg(config.TKeyLblNotif), "", rows)
}

// addressRow shows an address with a button opening it in the maps search.
func (app *SitterApp) addressRow(address string) fyne.CanvasObject {
	btn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnMap), theme.SearchIcon(), func() {
		app.openURL(MapsURL(address))
	})
	label := widget.NewLabel(address)
	label.Wrapping = fyne.TextWrapWord
	return container.NewBorder(nil, nil, nil, btn, label)
}

func (app *SitterApp) statusLabel(s schedule.Status) string {
	if s == schedule.StatusConfirmed {
		return app.GetMsg(config.TKeyStatusConfirmed)
	}
	return app.GetMsg(config.TKeyStatusPending)
}

func (app *SitterApp) permissionLabel(p reminder.Permission) string {
	switch p {
	case reminder.PermissionGranted:
		return app.GetMsg(config.TKeyNotifGranted)
	case reminder.PermissionDenied:
		return app.GetMsg(config.TKeyNotifDenied)
	case reminder.PermissionUnsupported:
		return app.GetMsg(config.TKeyNotifUnsupported)
	default:
		return app.GetMsg(config.TKeyNotifDefault)
	}
}

func (app *SitterApp) openURL(u *url.URL) {
	slog.Info(config.MsgOpenURL,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyURL, u.Scheme+":")
	if err := app.App.OpenURL(u); err != nil {
		slog.Warn(config.ErrOpenURL, config.LogKeyComponent, config.CompUI, config.LogKeyError, err)
	}
}

// MapsURL builds a maps search link for an address.
func MapsURL(query string) *url.URL {
	u, _ := url.Parse(config.MapsSearchURL)
	q := url.Values{}
	q.Set(config.MapsParamAPI, config.MapsParamAPIVal)
	q.Set(config.MapsParamQuery, query)
	u.RawQuery = q.Encode()
	return u
}

// DialURL builds a tel: link; spaces are removed from the number.
func DialURL(phone string) *url.URL {
	return &url.URL{Scheme: strings.TrimSuffix(config.SchemeTel, ":"), Opaque: strings.ReplaceAll(phone, " ", "")}
}
