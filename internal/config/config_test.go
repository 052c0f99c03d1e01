package config_test

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-sitter/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"VCardVersion", config.VCardVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestPayDefaults pins the contracted pay figures.
func TestPayDefaults(t *testing.T) {
	assert.Equal(t, 13.08, config.DefaultGrossHourly)
	assert.Equal(t, 0.22, config.DefaultContributionRate)
	assert.Equal(t, 4.33, config.WeeksPerMonth)
}

func TestReminderDefaults(t *testing.T) {
	assert.Equal(t, 8, config.DailyReminderHour)
	assert.Equal(t, time.Tuesday, config.EveningReminderDay)
	assert.Equal(t, 22, config.EveningReminderHour)
	assert.Less(t, config.WakeUpLead, 24*time.Hour)
}

func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Sitter/"), "UserAgent must start with AppName/")
}

func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")
	assert.Greater(t, config.MaxHTTPResponseSize, 0, "MaxHTTPResponseSize must be positive")
}

func TestRoutes_Distinct(t *testing.T) {
	assert.NotEqual(t, config.RouteCalendar, config.RouteContacts)
	assert.True(t, strings.HasPrefix(config.RouteCalendar, "/"))
	assert.True(t, strings.HasPrefix(config.RouteContacts, "/"))
}

func TestPortDigits(t *testing.T) {
	assert.Len(t, strconv.Itoa(config.MaxPort), config.MaxPortDigits)
	assert.Less(t, config.MinPort, config.MaxPort)
}
