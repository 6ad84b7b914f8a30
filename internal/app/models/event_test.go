package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-22")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.June, d.Month())
	assert.Equal(t, 22, d.Day())
	assert.Equal(t, time.Sunday, d.Weekday())

	for _, bad := range []string{"", "2025-6-22", "2025-02-30", "22/06/2025"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestDate_AddDaysRollsOver(t *testing.T) {
	assert.Equal(t, "2026-01-01", MustParseDate("2025-12-31").AddDays(1).String())
	assert.Equal(t, "2024-02-29", MustParseDate("2024-03-01").AddDays(-1).String())
}

func TestDateOfIgnoresClock(t *testing.T) {
	manila := time.FixedZone("PHT", 8*3600)
	ts := time.Date(2025, time.June, 24, 23, 59, 0, 0, manila)
	assert.True(t, DateOf(ts).Equal(MustParseDate("2025-06-24")))
}

func TestEvent_DecodesFromYAML(t *testing.T) {
	src := `
id: food-festival
name: Local Food Festival
category: attraction
lat: 13.70
lng: 121.40
kind: Food
start: 2025-06-22
end: 2025-06-23
time: "10:00 AM"
`
	var ev Event
	require.NoError(t, yaml.Unmarshal([]byte(src), &ev))
	assert.Equal(t, "food-festival", ev.ID)
	assert.Equal(t, CategoryAttraction, ev.Category)
	assert.Equal(t, "2025-06-22", ev.Start.String())
	require.NotNil(t, ev.End)
	assert.Equal(t, "2025-06-23", ev.End.String())
	assert.False(t, ev.Weekly)
}

func TestEvent_RejectsMalformedYAMLDate(t *testing.T) {
	var ev Event
	err := yaml.Unmarshal([]byte("id: x\nstart: June 22\n"), &ev)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDate_JSON(t *testing.T) {
	out, err := json.Marshal(struct {
		D Date `json:"d"`
	}{D: MustParseDate("2025-07-05")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2025-07-05"}`, string(out))

	var back struct {
		D Date `json:"d"`
	}
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, "2025-07-05", back.D.String())
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleUser, NormalizeRole("User"))
	assert.Equal(t, RoleAssistant, NormalizeRole("bot"))
	assert.Equal(t, RoleAssistant, NormalizeRole("model"))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Beach", CategoryBeach.Label())
	assert.True(t, CategoryEstablishment.Valid())
	assert.False(t, Category("resort").Valid())
}
