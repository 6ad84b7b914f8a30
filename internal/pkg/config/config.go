package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     string `env:"POSTGRES_PORT" envDefault:"5454"`
	DB       string `env:"POSTGRES_DB" envDefault:"juanito"`
	Username string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	MaxConns int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	MinConns int32  `env:"POSTGRES_MIN_CONNS" envDefault:"1"`
}

// Enabled reports whether interaction logging to Postgres is configured.
func (p PostgresConfig) Enabled() bool {
	return p.Password != ""
}

type RepositoriesConfig struct {
	Postgres PostgresConfig
}

type LLMProvider string

const (
	ProviderGemini LLMProvider = "gemini"
	ProviderOpenAI LLMProvider = "openai"
)

type ChatConfig struct {
	Provider      LLMProvider   `env:"LLM_PROVIDER" envDefault:"gemini"`
	GeminiAPIKey  string        `env:"GEMINI_API_KEY"`
	GeminiModel   string        `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	OpenAIAPIKey  string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string        `env:"OPENAI_BASE_URL"`
	OpenAIModel   string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	Timeout       time.Duration `env:"CHAT_TIMEOUT" envDefault:"20s"`
	DialogTTL     time.Duration `env:"CHAT_DIALOG_TTL" envDefault:"30m"`
}

// APIKey returns the key of the selected provider.
func (c ChatConfig) APIKey() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

type MapsConfig struct {
	MapboxToken   string        `env:"MAPBOX_TOKEN"`
	MapboxBaseURL string        `env:"MAPBOX_BASE_URL" envDefault:"https://api.mapbox.com"`
	Timeout       time.Duration `env:"GEOCODE_TIMEOUT" envDefault:"8s"`
	CacheTTL      time.Duration `env:"GEOCODE_CACHE_TTL" envDefault:"10m"`
}

type WeatherConfig struct {
	APIKey  string        `env:"OPENWEATHER_API_KEY"`
	BaseURL string        `env:"OPENWEATHER_BASE_URL" envDefault:"https://api.openweathermap.org"`
	Timeout time.Duration `env:"WEATHER_TIMEOUT" envDefault:"10s"`
	Refresh string        `env:"WEATHER_REFRESH" envDefault:"@every 30m"`
	Lat     float64       `env:"WEATHER_LAT" envDefault:"13.7633"`
	Lng     float64       `env:"WEATHER_LNG" envDefault:"121.4042"`
}

type Config struct {
	Repositories RepositoriesConfig
	Chat         ChatConfig
	Maps         MapsConfig
	Weather      WeatherConfig

	ServerPort   string `env:"SERVER_PORT" envDefault:"8091"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	MetricsAddr  string `env:"METRICS_ADDR" envDefault:":9092"`
	OTLPEndpoint string `env:"OTLP_ENDPOINT"`
	PprofAddr    string `env:"PPROF_ADDR" envDefault:":6060"`
	Timezone     string `env:"TIMEZONE" envDefault:"Asia/Manila"`
	CatalogPath  string `env:"CATALOG_PATH"`
}

// Load reads the configuration from the environment. Missing provider keys are
// not errors: the affected features serve their fallback data instead.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Chat.Provider = LLMProvider(strings.ToLower(string(cfg.Chat.Provider)))
	switch cfg.Chat.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.Chat.Provider)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

// Location returns the configured display timezone, UTC when it cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
