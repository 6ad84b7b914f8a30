// Package database opens the optional Postgres pool used for the chat
// interaction log and applies the embedded goose migrations.
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/FACorreiaa/juanito/internal/pkg/config"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const defaultRetries = 5

// WaitForDB pings the pool with a growing pause between attempts.
func WaitForDB(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) bool {
	for attempt := 1; attempt <= defaultRetries; attempt++ {
		err := pool.Ping(ctx)
		if err == nil {
			logger.Info("Database connection successful")
			return true
		}

		wait := time.Duration(attempt) * 200 * time.Millisecond
		logger.Warn("Database ping failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", defaultRetries),
			zap.Duration("wait_duration", wait),
			zap.Error(err),
		)
		if attempt == defaultRetries {
			break
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(wait):
		}
	}
	logger.Error("Database connection failed after multiple retries")
	return false
}

// MigrationFiles lists the embedded migrations in apply order.
func MigrationFiles() ([]string, error) {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return nil, errors.Wrap(err, "read embedded migrations")
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func RunMigrations(databaseURL string, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	goose.SetBaseFS(migrationFS)
	if err := goose.SetDialect(string(goose.DialectPostgres)); err != nil {
		return errors.Wrap(err, "set goose dialect")
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return errors.Wrap(err, "open database for migrations")
	}
	defer db.Close()

	files, err := MigrationFiles()
	if err != nil {
		return err
	}
	logger.Info("Found migration files", zap.Int("count", len(files)), zap.Strings("files", files))

	if err := goose.Up(db, "migrations"); err != nil {
		return errors.Wrap(err, "goose up")
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// ConnectionURL builds the postgres:// URL from configuration.
func ConnectionURL(pg config.PostgresConfig) (string, error) {
	if pg.Host == "" {
		return "", errors.New("postgres host is not configured")
	}

	query := url.Values{}
	sslMode := pg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	query.Set("sslmode", sslMode)
	query.Set("timezone", "utc")

	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(pg.Username, pg.Password),
		Host:     fmt.Sprintf("%s:%s", pg.Host, pg.Port),
		Path:     pg.DB,
		RawQuery: query.Encode(),
	}
	return u.String(), nil
}

// Init creates the pool with the configured connection limits.
func Init(ctx context.Context, pg config.PostgresConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	connURL, err := ConnectionURL(pg)
	if err != nil {
		return nil, err
	}

	cfg, err := pgxpool.ParseConfig(connURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse db config")
	}
	if pg.MaxConns > 0 {
		cfg.MaxConns = pg.MaxConns
	}
	if pg.MinConns > 0 {
		cfg.MinConns = pg.MinConns
	}
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "create db pool")
	}

	logger.Info("Database connection pool initialized",
		zap.String("host", pg.Host),
		zap.String("database", pg.DB),
		zap.Int32("max_conns", cfg.MaxConns))
	return pool, nil
}

// Setup connects, waits for the server and migrates. The caller owns the pool.
func Setup(ctx context.Context, pg config.PostgresConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	pool, err := Init(ctx, pg, logger)
	if err != nil {
		return nil, err
	}
	if !WaitForDB(ctx, pool, logger) {
		pool.Close()
		return nil, errors.New("database not reachable")
	}

	connURL, _ := ConnectionURL(pg)
	if err := RunMigrations(connURL, logger); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
