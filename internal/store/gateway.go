// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-user-roles/internal/config"
	"github.com/MKhiriev/go-user-roles/internal/logger"
)

// Connector opens a new session for the configured database.
type Connector func(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error)

// Gateway owns the single logical session to the relational store.
//
// The session is created lazily by [Gateway.Open], torn down by
// [Gateway.Close] and recreated transparently on the next Open. Every fresh
// session gets its schema initialized before it is handed out. Statement
// concurrency is left to database/sql; the mutex only guards (re)opening.
type Gateway struct {
	mu      sync.Mutex
	db      *DB
	cfg     config.DB
	connect Connector
	logger  *logger.Logger
}

// NewGateway selects the connector for cfg.Driver. No connection is made
// until the first call to [Gateway.Open].
func NewGateway(cfg config.DB, log *logger.Logger) (*Gateway, error) {
	var connect Connector
	switch cfg.Driver {
	case config.DriverPostgres:
		connect = NewConnectPostgres
	case config.DriverSQLite:
		connect = NewConnectSQLite
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}

	return NewGatewayWithConnector(cfg, connect, log), nil
}

// NewGatewayWithConnector builds a gateway around a custom connector.
func NewGatewayWithConnector(cfg config.DB, connect Connector, log *logger.Logger) *Gateway {
	return &Gateway{
		cfg:     cfg,
		connect: connect,
		logger:  log,
	}
}

// Open returns the shared session, creating it and initializing the schema
// if it was never opened or has been closed.
func (g *Gateway) Open(ctx context.Context) (*DB, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db != nil {
		return g.db, nil
	}

	db, err := g.connect(ctx, g.cfg, g.logger)
	if err != nil {
		g.logger.Err(err).Str("func", "*Gateway.Open").Str("driver", g.cfg.Driver).Msg("error opening storage session")
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	if err = g.initializeSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	g.db = db
	g.logger.Info().Str("func", "*Gateway.Open").Str("driver", g.cfg.Driver).Msg("storage session is ready")
	return db, nil
}

// InitializeSchema applies pending migrations to the current session and
// seeds demonstration data when seeding is enabled and the schema is empty.
// Running it against an initialized schema changes nothing.
func (g *Gateway) InitializeSchema(ctx context.Context) error {
	db, err := g.Open(ctx)
	if err != nil {
		return err
	}

	return g.initializeSchema(ctx, db)
}

func (g *Gateway) initializeSchema(ctx context.Context, db *DB) error {
	if err := db.Migrate(ctx); err != nil {
		g.logger.Err(err).Str("func", "*Gateway.initializeSchema").Msg("error applying migrations")
		return fmt.Errorf("%w: %w", ErrInitializingSchema, err)
	}

	if !g.cfg.Seed {
		return nil
	}

	if err := withTx(ctx, db, func(q Querier) error { return seed(ctx, db, q) }); err != nil {
		g.logger.Err(err).Str("func", "*Gateway.initializeSchema").Msg("error seeding demonstration data")
		return fmt.Errorf("%w: %w", ErrInitializingSchema, err)
	}

	return nil
}

// WithTx runs fn inside one transaction on the shared session. The
// transaction commits when fn returns nil and rolls back otherwise; the error
// from fn is returned unchanged.
func (g *Gateway) WithTx(ctx context.Context, fn func(q Querier) error) error {
	db, err := g.Open(ctx)
	if err != nil {
		return err
	}

	return withTx(ctx, db, fn)
}

func withTx(ctx context.Context, db *DB, fn func(q Querier) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return db.classify(ErrBeginningTransaction, err)
	}
	defer func() {
		// no-op after a successful commit
		_ = tx.Rollback()
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// Close tears down the shared session. The next Open creates a new one.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db == nil {
		return nil
	}

	err := g.db.Close()
	g.db = nil
	if err != nil {
		g.logger.Err(err).Str("func", "*Gateway.Close").Msg("error closing storage session")
		return err
	}

	g.logger.Info().Str("func", "*Gateway.Close").Msg("storage session closed")
	return nil
}
