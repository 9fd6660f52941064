// Package database provides PostgreSQL connection management with lifecycle coordination.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/menucatch/pkg/lifecycle"
)

// System manages database connections and lifecycle coordination.
type System interface {
	// Connection returns the underlying connection pool.
	Connection() *sql.DB
	// Start registers the startup ping and the shutdown close.
	Start(lc *lifecycle.Coordinator) error
	// Ready reports whether the startup ping succeeded.
	Ready() bool
}

type database struct {
	conn        *sql.DB
	logger      *slog.Logger
	connTimeout time.Duration
	ready       atomic.Bool
}

// New parses the configuration into a pgx connection config and opens a
// pool over it. No connection is made until Start or the first query.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	connCfg, err := pgx.ParseConfig(cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	connCfg.RuntimeParams["application_name"] = cfg.ApplicationName
	connCfg.ConnectTimeout = cfg.ConnTimeoutDuration()

	db := stdlib.OpenDB(*connCfg)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn:        db,
		logger:      logger.With("system", "database"),
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Ready() bool {
	return d.ready.Load()
}

// Start tracks the pool on lc, pings it once the coordinator starts, and
// closes it after the lifecycle context ends.
func (d *database) Start(lc *lifecycle.Coordinator) error {
	lc.Track("database", d)
	lc.OnStartup(func() { d.connect(lc.Context()) })
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.close()
	})

	d.logger.Info("database registered", "timeout", d.connTimeout)
	return nil
}

func (d *database) connect(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, d.connTimeout)
	defer cancel()

	start := time.Now()
	if err := d.conn.PingContext(ctx); err != nil {
		d.logger.Error("catalog database unreachable", "error", err)
		return
	}

	d.ready.Store(true)
	d.logger.Info("catalog database connected", "elapsed", time.Since(start))
}

func (d *database) close() {
	d.ready.Store(false)

	if err := d.conn.Close(); err != nil {
		d.logger.Error("database close failed", "error", err)
		return
	}
	d.logger.Info("database closed")
}
