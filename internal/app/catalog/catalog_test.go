package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/juanito/internal/app/models"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "San Juan, Batangas", c.Area.Name)
	assert.Len(t, c.Places, 6)
	assert.Len(t, c.Events, 7)
	assert.Len(t, c.Products, 4)
	assert.Len(t, c.BeachRules, 4)
	assert.Len(t, c.Chat.Suggestions, 4)
	assert.Len(t, c.Chat.Fallback, 8)
	assert.Equal(t, "Hello! I'm your Juanito. How can I help you explore San Juan, Batangas today?", c.Chat.Greeting)

	laiya, ok := c.Place("static:laiya-beach")
	require.True(t, ok)
	assert.Equal(t, models.CategoryBeach, laiya.Category)
	assert.Equal(t, "static", laiya.Source)
	assert.True(t, c.Area.Bounds.Contains(laiya.Coordinate()))

	market, ok := c.Event("event:farmers-market")
	require.True(t, ok)
	assert.True(t, market.Weekly)
	assert.Equal(t, time.Saturday, market.Start.Weekday())

	assert.Equal(t, "fallback", c.Weather.Source)
	assert.Equal(t, 32.0, c.Weather.Current.TempC)
	require.Len(t, c.Weather.Forecast, 5)
	assert.Equal(t, models.ConditionRainy, c.Weather.Forecast[3].Condition)
}

func TestParse_RejectsMalformedDates(t *testing.T) {
	_, err := Parse([]byte(`
events:
  - id: e1
    name: Broken
    category: attraction
    lat: 13.7
    lng: 121.4
    start: 2025-13-01
`))
	assert.ErrorIs(t, err, models.ErrInvalidDate)
}

func TestParse_AcceptsEndBeforeStart(t *testing.T) {
	c, err := Parse([]byte(`
events:
  - id: e1
    name: Backwards
    category: attraction
    lat: 13.7
    lng: 121.4
    start: 2025-06-10
    end: 2025-06-01
`))
	require.NoError(t, err)
	require.Len(t, c.Events, 1)
}

func TestParse_Validation(t *testing.T) {
	cases := map[string]string{
		"duplicate id": `
places:
  - {id: a, name: A, category: beach, lat: 1, lng: 1}
  - {id: a, name: B, category: beach, lat: 1, lng: 1}
`,
		"unknown category": `
places:
  - {id: a, name: A, category: resort, lat: 1, lng: 1}
`,
		"bad coordinates": `
places:
  - {id: a, name: A, category: beach, lat: 91, lng: 1}
`,
		"bad classification": `
poi:
  classification:
    - {name: x, keywords: [x], value: spa}
`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestLoad_FallsBackToEmbedded(t *testing.T) {
	logger := zap.NewNop()

	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), logger)
	require.NoError(t, err)
	assert.Len(t, c.Places, 6)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("places: [oops"), 0o600))
	c, err = Load(bad, logger)
	require.NoError(t, err)
	assert.Len(t, c.Places, 6)
}

func TestLoad_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
places:
  - {id: only, name: Only Place, category: attraction, lat: 13.7, lng: 121.4}
`), 0o600))

	c, err := Load(path, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, c.Places, 1)
	assert.Equal(t, "only", c.Places[0].ID)
}

func TestSearch(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	res := c.Search("  LAIYA ")
	assert.Equal(t, "LAIYA", res.Query)
	assert.NotEmpty(t, res.Places)
	for _, p := range res.Places {
		assert.NotEqual(t, "static:sabangan-beach", p.ID)
	}
	assert.NotEmpty(t, res.Events)

	res = c.Search("food")
	assert.Len(t, res.Products, 2)
	names := make([]string, 0, len(res.Events))
	for _, e := range res.Events {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "Local Food Festival")

	assert.Equal(t, 17, c.Search("   ").Total())
	assert.Zero(t, c.Search("zzz-no-hit").Total())
}
