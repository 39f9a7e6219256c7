package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	applicationName = "homescout-api"
	connectTimeout  = 5 * time.Second
	maxConnIdle     = 5 * time.Minute
	maxConnLifetime = time.Hour
	healthCheck     = time.Minute
)

// Database owns the pgx pool shared by the listing and inquiry repositories.
type Database struct {
	Pool *pgxpool.Pool
}

// PoolStats is a point-in-time snapshot of pool usage.
type PoolStats struct {
	Total    int32 `json:"total"`
	Idle     int32 `json:"idle"`
	Acquired int32 `json:"acquired"`
	Max      int32 `json:"max"`
}

// BuildDSN builds a postgres connection URL from cfg with escaped credentials.
func BuildDSN(cfg config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// PoolConfig turns cfg into a pgxpool configuration without connecting.
func PoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(BuildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pc.MinConns = int32(cfg.PoolMin)
	pc.MaxConns = int32(cfg.PoolMax)
	pc.MaxConnIdleTime = maxConnIdle
	pc.MaxConnLifetime = maxConnLifetime
	pc.HealthCheckPeriod = healthCheck
	pc.ConnConfig.ConnectTimeout = connectTimeout
	pc.ConnConfig.RuntimeParams["application_name"] = applicationName

	return pc, nil
}

// NewPostgresPool connects to postgres and verifies the connection with a ping.
func NewPostgresPool(ctx context.Context, cfg config.DatabaseConfig) (*Database, error) {
	pc, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", cfg.Name, err)
	}

	return &Database{Pool: pool}, nil
}

// Ping implements the readiness check.
func (db *Database) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return errors.New("database pool is not initialised")
	}
	return db.Pool.Ping(ctx)
}

// Close releases the pool. Safe to call more than once.
func (db *Database) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Stats reports pool usage; all zero when there is no pool.
func (db *Database) Stats() PoolStats {
	if db.Pool == nil {
		return PoolStats{}
	}
	s := db.Pool.Stat()
	return PoolStats{
		Total:    s.TotalConns(),
		Idle:     s.IdleConns(),
		Acquired: s.AcquiredConns(),
		Max:      s.MaxConns(),
	}
}
