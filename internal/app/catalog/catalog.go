// Package catalog holds the read-only content the service ships with: static
// places, events, products, beach rules, the guide persona with its fallback
// replies, POI classification rules and the fallback weather.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/FACorreiaa/juanito/internal/app/models"
	"github.com/FACorreiaa/juanito/internal/pkg/rules"
	"github.com/FACorreiaa/juanito/internal/pkg/travel"
)

//go:embed catalog.yaml
var embedded []byte

type Area struct {
	Name   string            `yaml:"name" json:"name"`
	Center models.Coordinate `yaml:"center" json:"center"`
	Bounds travel.Bounds     `yaml:"bounds" json:"bounds"`
}

type ChatContent struct {
	Greeting     string               `yaml:"greeting"`
	Suggestions  []string             `yaml:"suggestions"`
	Persona      string               `yaml:"persona"`
	DefaultReply string               `yaml:"default_reply"`
	Fallback     []rules.Rule[string] `yaml:"fallback"`
}

type POIContent struct {
	SearchKeywords []string                      `yaml:"search_keywords"`
	Classification []rules.Rule[models.Category] `yaml:"classification"`
}

// Catalog is loaded once at startup and shared read-only afterwards.
type Catalog struct {
	Area       Area                   `yaml:"area"`
	Places     []models.Place         `yaml:"places"`
	Events     []models.Event         `yaml:"events"`
	Products   []models.Product       `yaml:"products"`
	BeachRules []models.BeachRule     `yaml:"beach_rules"`
	Chat       ChatContent            `yaml:"chat"`
	POI        POIContent             `yaml:"poi"`
	Weather    models.WeatherSnapshot `yaml:"weather_fallback"`
}

// Default decodes the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// Load reads the catalog at path. An empty path, or an override that cannot be
// read or parsed, yields the embedded catalog.
func Load(path string, logger *zap.Logger) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Catalog override unreadable, using embedded catalog", zap.String("path", path), zap.Error(err))
		return Default()
	}

	c, err := Parse(raw)
	if err != nil {
		logger.Warn("Catalog override invalid, using embedded catalog", zap.String("path", path), zap.Error(err))
		return Default()
	}

	logger.Info("Catalog loaded",
		zap.String("path", path),
		zap.Int("places", len(c.Places)),
		zap.Int("events", len(c.Events)))
	return c, nil
}

// Parse decodes and validates a catalog document. Malformed event dates are
// rejected here rather than silently never matching.
func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	for i := range c.Places {
		c.Places[i].Source = "static"
	}
	for i := range c.Events {
		c.Events[i].Source = "event"
	}
	c.Weather.Source = "fallback"
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]struct{}, len(c.Places)+len(c.Events))
	check := func(kind string, p models.Place) error {
		if p.ID == "" {
			return fmt.Errorf("%w: %s %q has no id", models.ErrValidation, kind, p.Name)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", models.ErrValidation, p.ID)
		}
		seen[p.ID] = struct{}{}
		if !p.Category.Valid() {
			return fmt.Errorf("%w: %s %q has unknown category %q", models.ErrValidation, kind, p.ID, p.Category)
		}
		if !travel.ValidCoordinate(p.Coordinate()) {
			return fmt.Errorf("%w: %s %q has invalid coordinates", models.ErrValidation, kind, p.ID)
		}
		return nil
	}

	for _, p := range c.Places {
		if err := check("place", p); err != nil {
			return err
		}
	}
	for _, e := range c.Events {
		if err := check("event", e.Place); err != nil {
			return err
		}
		if e.Start.IsZero() {
			return fmt.Errorf("%w: event %q has no start date", models.ErrInvalidDate, e.ID)
		}
	}
	for _, r := range c.POI.Classification {
		if !r.Value.Valid() {
			return fmt.Errorf("%w: classification rule %q maps to unknown category %q", models.ErrValidation, r.Name, r.Value)
		}
	}
	return nil
}

// Place returns the static place or event location with the given id.
func (c *Catalog) Place(id string) (models.Place, bool) {
	for _, p := range c.Places {
		if p.ID == id {
			return p, true
		}
	}
	for _, e := range c.Events {
		if e.ID == id {
			return e.Place, true
		}
	}
	return models.Place{}, false
}

// Event returns the event with the given id.
func (c *Catalog) Event(id string) (models.Event, bool) {
	for _, e := range c.Events {
		if e.ID == id {
			return e, true
		}
	}
	return models.Event{}, false
}
