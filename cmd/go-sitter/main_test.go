package main

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-sitter/internal/config"
	"github.com/tartampluch/go-sitter/internal/schedule"
)

func TestResolvePort(t *testing.T) {
	prefs := test.NewApp().Preferences()

	assert.Equal(t, config.DefaultPort, resolvePort(cliFlags{}, config.Env{}, prefs))

	prefs.SetString(config.PrefServerPort, "19000")
	assert.Equal(t, "19000", resolvePort(cliFlags{}, config.Env{}, prefs))
	assert.Equal(t, "19001", resolvePort(cliFlags{}, config.Env{Port: "19001"}, prefs))
	assert.Equal(t, "19002", resolvePort(cliFlags{port: "19002"}, config.Env{Port: "19001"}, prefs))
}

func TestResolveSource(t *testing.T) {
	prefs := test.NewApp().Preferences()

	assert.Equal(t, schedule.SourceConfig{Mode: config.SourceModeBuiltin},
		resolveSource(cliFlags{}, config.Env{}, prefs))

	prefs.SetString(config.PrefSourceMode, config.SourceModeWeb)
	prefs.SetString(config.PrefRosterURL, "https://example.com/saved.yaml")
	prefs.SetString(config.PrefRosterUser, "saved")
	assert.Equal(t,
		schedule.SourceConfig{Mode: config.SourceModeWeb, WebURL: "https://example.com/saved.yaml", WebUser: "saved"},
		resolveSource(cliFlags{}, config.Env{}, prefs))

	// The environment wins over preferences, flags over the environment.
	env := config.Env{Roster: "/srv/roster.yaml"}
	assert.Equal(t,
		schedule.SourceConfig{Mode: config.SourceModeLocal, LocalPath: "/srv/roster.yaml"},
		resolveSource(cliFlags{}, env, prefs))

	cli := cliFlags{roster: "https://example.com/flag.yaml", rosterUser: "flag"}
	assert.Equal(t,
		schedule.SourceConfig{Mode: config.SourceModeWeb, WebURL: "https://example.com/flag.yaml", WebUser: "flag"},
		resolveSource(cli, env, prefs))
}

func TestReminderOptions(t *testing.T) {
	opts, err := reminderOptions(config.Env{})
	require.NoError(t, err)
	assert.Nil(t, opts.Daily)
	assert.Nil(t, opts.Evening)

	opts, err = reminderOptions(config.Env{DailyTrigger: "30 7 * * *", EveningTrigger: "0 21 * * 0"})
	require.NoError(t, err)
	require.NotNil(t, opts.Daily)
	require.NotNil(t, opts.Evening)

	from := time.Date(2025, 10, 15, 12, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2025, 10, 16, 7, 30, 0, 0, time.Local), opts.Daily.Next(from))
	assert.Equal(t, time.Date(2025, 10, 19, 21, 0, 0, 0, time.Local), opts.Evening.Next(from))

	_, err = reminderOptions(config.Env{DailyTrigger: "not a cron"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrTriggerParse)
}
