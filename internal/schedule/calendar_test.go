package schedule_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-sitter/internal/config"
	"github.com/tartampluch/go-sitter/internal/schedule"
)

func decodeEvents(t *testing.T, data []byte) []ical.Event {
	t.Helper()
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	return cal.Events()
}

func TestBuildCalendar_DefaultRoster(t *testing.T) {
	roster, err := schedule.DefaultRoster()
	require.NoError(t, err)

	// Thursday; the anchor week starts on Sunday 2025-10-12.
	now := time.Date(2025, 10, 16, 9, 0, 0, 0, time.UTC)
	data, err := schedule.BuildCalendar(roster, now, config.DefaultAlarm)
	require.NoError(t, err)

	events := decodeEvents(t, data)
	require.Len(t, events, 4, "one event per shift")

	beery := events[0]
	assert.Equal(t, "BEERY family", beery.Props.Get(config.PropSummary).Value)
	assert.Equal(t, "20251015T100000", beery.Props.Get(config.PropDTStart).Value)
	assert.Equal(t, "20251015T190000", beery.Props.Get(config.PropDTEnd).Value)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=WE", beery.Props.Get(config.PropRRule).Value)
	assert.Contains(t, beery.Props.Get(config.PropLocation).Value, "BOULOGNE")
	desc, err := beery.Props.Text(config.PropDescription)
	require.NoError(t, err)
	assert.Equal(t, "Children: Jack (6y), Stella (4y)", desc)
	require.Len(t, beery.Children, 1)
	assert.Equal(t, config.ICalComponent, beery.Children[0].Name)

	barretMonday := events[1]
	assert.Equal(t, "20251013T170000", barretMonday.Props.Get(config.PropDTStart).Value)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=MO", barretMonday.Props.Get(config.PropRRule).Value)
}

func TestBuildCalendar_StableUIDs(t *testing.T) {
	roster, err := schedule.DefaultRoster()
	require.NoError(t, err)

	first, err := schedule.BuildCalendar(roster, time.Date(2025, 10, 16, 9, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)
	second, err := schedule.BuildCalendar(roster, time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)

	a, b := decodeEvents(t, first), decodeEvents(t, second)
	require.Len(t, b, len(a))

	seen := map[string]bool{}
	for i := range a {
		uid := a[i].Props.Get(config.PropUID).Value
		assert.Equal(t, uid, b[i].Props.Get(config.PropUID).Value, "UIDs survive a rebuild")
		assert.True(t, strings.HasSuffix(uid, "@"+config.ICalDomain))
		assert.False(t, seen[uid], "UIDs are unique")
		seen[uid] = true
		assert.Empty(t, a[i].Children, "no alarm requested")
	}
}

func TestBuildCalendar_Empty(t *testing.T) {
	data, err := schedule.BuildCalendar(&schedule.Roster{Rates: schedule.DefaultRates()}, time.Now(), config.DefaultAlarm)

	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}

func TestChildrenSummary(t *testing.T) {
	assert.Empty(t, schedule.ChildrenSummary(nil))
	assert.Equal(t, "Lewis (6y)", schedule.ChildrenSummary([]schedule.Child{{Name: "Lewis", Age: 6}}))
}
