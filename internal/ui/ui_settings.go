package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-sitter/internal/config"
	"github.com/tartampluch/go-sitter/internal/reminder"
	"github.com/tartampluch/go-sitter/internal/schedule"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect *widget.Select
	modeSelect *widget.Select
	urlEntry   *widget.Entry
	userEntry  *widget.Entry
	passEntry  *widget.Entry
	pathEntry  *widget.Entry
	entryPort  *NumericalEntry

	// resetNotif reverts a stored notification decision on save.
	resetNotif bool
}

// ShowSettingsWindow displays the configuration dialog allowing users to manage settings.
func (app *SitterApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	// refreshLayout triggers a window resize based on content visibility.
	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	sourceCard := app.buildSourceCard(w, sw, onLayoutChange)

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemPort))
	notifCard := app.buildNotifSettingsCard(sw, onLayoutChange)

	// --- Actions ---
	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		// Only the Port field has a strict requirement that blocks saving if invalid.
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	// --- Footer ---
	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		sourceCard,
		generalCard,
		notifCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		minSize := paddedContent.MinSize()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, minSize.Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })

	refreshLayout()
	w.Show()
}

// newSettingsWidgets creates the form widgets pre-filled from the current preferences.
func (app *SitterApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.modeSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeyModeBuiltin),
		app.GetMsg(config.TKeyModeLocal),
		app.GetMsg(config.TKeyModeWeb),
	}, nil)

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.StringWithFallback(config.PrefRosterURL, app.Source.WebURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.StringWithFallback(config.PrefRosterUser, app.Source.WebUser))

	sw.passEntry = widget.NewPasswordEntry()
	// Attempt to pre-fill password from secure storage
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.StringWithFallback(config.PrefLocalPath, app.Source.LocalPath))

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.MaxDigits = config.MaxPortDigits
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	return sw
}

// validatePort checks that s is a usable TCP port and returns a localized error.
func (app *SitterApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// modeLabels maps the translated mode names to source modes.
func (app *SitterApp) modeLabels() map[string]string {
	return map[string]string{
		app.GetMsg(config.TKeyModeBuiltin): config.SourceModeBuiltin,
		app.GetMsg(config.TKeyModeLocal):   config.SourceModeLocal,
		app.GetMsg(config.TKeyModeWeb):     config.SourceModeWeb,
	}
}

// buildSourceCard constructs the roster source selection UI.
func (app *SitterApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtYAML, config.ExtYML}))
		d.Show()
	})

	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)
	webForm := widget.NewForm(
		itemURL,
		widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry),
	)
	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	modes := app.modeLabels()
	updateVis := func(label string) {
		webForm.Hide()
		localForm.Hide()
		switch modes[label] {
		case config.SourceModeWeb:
			webForm.Show()
		case config.SourceModeLocal:
			localForm.Show()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	current := app.Preferences.StringWithFallback(config.PrefSourceMode, app.Source.Mode)
	for label, mode := range modes {
		if mode == current {
			sw.modeSelect.SetSelected(label)
		}
	}
	if sw.modeSelect.Selected == "" {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeBuiltin))
	}

	updateVis(sw.modeSelect.Selected)
	sw.modeSelect.OnChanged = updateVis

	return widget.NewCard(app.GetMsg(config.TKeyLblSource), "", container.NewVBox(sw.modeSelect, webForm, localForm))
}

// buildNotifSettingsCard shows the notification state. A stored decision can
// be reset so the permission prompt appears again.
func (app *SitterApp) buildNotifSettingsCard(sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	perm := app.Notifier.Permission()
	state := widget.NewLabel(app.permissionLabel(perm))
	rows := container.NewVBox(state)

	switch perm {
	case reminder.PermissionDefault:
		rows.Add(widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnEnableNotif), theme.VolumeUpIcon(), func() {
			go app.EnableNotifications()
		}))
	case reminder.PermissionGranted, reminder.PermissionDenied:
		var reset *widget.Button
		reset = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnResetNotif), theme.ViewRefreshIcon(), func() {
			sw.resetNotif = true
			state.SetText(app.permissionLabel(reminder.PermissionDefault))
			reset.Disable()
			if onLayoutChange != nil {
				onLayoutChange()
			}
		})
		rows.Add(reset)
	}

	return widget.NewCard(app.GetMsg(config.TKeyLblNotif), "", rows)
}

// saveSettings persists the preferences and applies them. A changed roster
// source reloads the roster; a new port takes effect on the next start.
func (app *SitterApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSettingsSave, config.LogKeyComponent, config.CompUISet)

	src := schedule.SourceConfig{
		Mode:      app.modeLabels()[sw.modeSelect.Selected],
		LocalPath: sw.pathEntry.Text,
		WebURL:    sw.urlEntry.Text,
		WebUser:   sw.userEntry.Text,
	}
	if src.Mode == "" {
		src.Mode = config.SourceModeBuiltin
	}

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefSourceMode, src.Mode)
	app.Preferences.SetString(config.PrefRosterURL, src.WebURL)
	app.Preferences.SetString(config.PrefRosterUser, src.WebUser)
	app.Preferences.SetString(config.PrefLocalPath, src.LocalPath)

	// Save password to Keyring only if provided
	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error(config.MsgKeyringSaveFailure, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	if sw.resetNotif {
		app.Notifier.SetPermission(reminder.PermissionDefault)
		app.Reminders.Stop()
	}

	// Trigger system-wide updates
	app.UpdateLocalizer()
	app.RefreshTrayMenu()

	if src != app.Source {
		app.Source = src
		if err := app.ReloadRoster(); err != nil && app.settingsWindow != nil {
			dialog.ShowError(err, app.settingsWindow)
		}
	}
	app.refresh()
}
