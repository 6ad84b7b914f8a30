package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/FACorreiaa/juanito/internal/app/catalog"
	"github.com/FACorreiaa/juanito/internal/app/components"
	"github.com/FACorreiaa/juanito/internal/app/domain/calendar"
	"github.com/FACorreiaa/juanito/internal/app/domain/chat"
	"github.com/FACorreiaa/juanito/internal/app/domain/pages"
	"github.com/FACorreiaa/juanito/internal/app/domain/places"
	"github.com/FACorreiaa/juanito/internal/app/domain/weather"
	"github.com/FACorreiaa/juanito/internal/app/handlers"
	"github.com/FACorreiaa/juanito/internal/app/models"
	"github.com/FACorreiaa/juanito/internal/app/streaming"
	database "github.com/FACorreiaa/juanito/internal/db"
	"github.com/FACorreiaa/juanito/internal/pkg/config"
	"github.com/FACorreiaa/juanito/internal/routes"
)

const interactionMemoryCapacity = 500

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	dbPool *pgxpool.Pool
	router http.Handler

	catalog      *catalog.Catalog
	handlers     *routes.AppHandlers
	scheduler    *weather.Scheduler
	dialogs      *chat.Dialogs
	interactions *chat.InteractionLogger
	selections   *streaming.Bus[places.PlaceSelected]
}

// New loads the catalog, connects the optional database and builds every
// service. Missing provider keys only disable the matching provider.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		logger: logger,
	}

	cat, err := catalog.Load(cfg.CatalogPath, logger.Named("catalog"))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	s.catalog = cat

	if cfg.Repositories.Postgres.Enabled() {
		pool, err := s.setupDatabase(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to setup database: %w", err)
		}
		s.dbPool = pool
	} else {
		logger.Info("POSTGRES_PASSWORD not set, chat interactions are kept in memory")
	}

	if err := s.buildHandlers(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Server) setupDatabase(ctx context.Context) (*pgxpool.Pool, error) {
	s.logger.Info("Setting up database connection and migrations")
	pool, err := database.Setup(ctx, s.cfg.Repositories.Postgres, s.logger.Named("database"))
	if err != nil {
		return nil, err
	}
	s.logger.Info("Connected to Postgres",
		zap.String("host", s.cfg.Repositories.Postgres.Host),
		zap.String("port", s.cfg.Repositories.Postgres.Port),
		zap.String("database", s.cfg.Repositories.Postgres.DB))
	return pool, nil
}

func (s *Server) buildHandlers(ctx context.Context) error {
	cfg, cat := s.cfg, s.catalog
	loc := cfg.Location()
	base := handlers.NewBaseHandler(s.logger.Named("http"), components.Layout)

	// chat
	var repo chat.InteractionRepository
	if s.dbPool != nil {
		repo = chat.NewPostgresInteractionRepository(s.dbPool, s.logger.Named("interactions"))
	} else {
		repo = chat.NewMemoryInteractionRepository(interactionMemoryCapacity)
	}
	s.interactions = chat.NewInteractionLogger(repo, s.logger.Named("interactions"))

	llm, err := chat.NewLLM(ctx, cfg.Chat)
	switch {
	case errors.Is(err, models.ErrMissingAPIKey):
		s.logger.Warn("No LLM API key configured, chat answers from the keyword responder",
			zap.String("provider", string(cfg.Chat.Provider)))
		llm = nil
	case err != nil:
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	chatService := chat.NewService(llm, cat.Chat, s.interactions, cfg.Chat.Timeout, s.logger)
	s.dialogs = chat.NewDialogs(chatService, cfg.Chat.DialogTTL, s.logger)

	// places
	var geocoder places.Geocoder
	if g, err := places.NewMapboxGeocoder(cfg.Maps.MapboxToken, cfg.Maps.MapboxBaseURL, nil); err != nil {
		s.logger.Warn("Mapbox token not configured, serving catalog places only")
	} else {
		geocoder = g
	}
	s.selections = streaming.NewBus[places.PlaceSelected](streaming.DefaultBuffer)
	placesService := places.NewService(cat, geocoder, s.selections, cfg.Maps.CacheTTL, cfg.Maps.Timeout, s.logger)

	// weather
	var provider weather.Provider
	if p, err := weather.NewOpenWeatherProvider(cfg.Weather.APIKey, cfg.Weather.BaseURL, loc, nil); err != nil {
		s.logger.Warn("OpenWeather key not configured, serving fallback weather")
	} else {
		provider = p
	}
	position := models.Coordinate{Lat: cfg.Weather.Lat, Lng: cfg.Weather.Lng}
	weatherService := weather.NewService(provider, cat.Weather, position, cfg.Weather.Timeout, weather.DefaultStaleAfter, s.logger)
	if provider != nil {
		scheduler, err := weather.NewScheduler(weatherService, cfg.Weather.Refresh, s.logger)
		if err != nil {
			return err
		}
		s.scheduler = scheduler
	}

	// calendar
	calendarService := calendar.NewService(cat.Area.Name+" Events", cat.Events, loc, s.logger.Named("calendar"))
	calendarHandler := calendar.NewHandler(base, calendarService)

	s.handlers = &routes.AppHandlers{
		Pages:    pages.NewHandler(base, cat, placesService, weatherService, chatService, calendarHandler, loc),
		Chat:     chat.NewHandler(base, chatService, s.dialogs),
		Places:   places.NewHandler(base, placesService),
		Weather:  weather.NewHandler(base, weatherService, loc),
		Calendar: calendarHandler,
	}
	return nil
}

// Start begins background work: the weather refresh schedule.
func (s *Server) Start() {
	if s.scheduler != nil {
		s.scheduler.Start()
	}
}

// HTTPServer creates and configures the HTTP server
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              ":" + s.cfg.ServerPort,
		Handler:           s.router,
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}

// SetRouter sets the HTTP router/handler
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

func (s *Server) Handlers() *routes.AppHandlers {
	return s.handlers
}

func (s *Server) GetDBPool() *pgxpool.Pool {
	return s.dbPool
}

// Close stops background work and releases resources. Selection sockets are
// closed before pending interaction writes are flushed to the pool.
func (s *Server) Close() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	if s.dialogs != nil {
		s.dialogs.Shutdown()
	}
	if s.selections != nil {
		s.selections.Close()
	}
	if s.interactions != nil {
		s.interactions.Wait()
	}
	if s.dbPool != nil {
		s.dbPool.Close()
	}
}
