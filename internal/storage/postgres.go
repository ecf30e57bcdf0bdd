package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/Ovitozinn/luxe-dash-suite/pkg/logger"
)

// --- Connection retry configuration ---
const (
	connectRetryInitialInterval = 1 * time.Second
	connectRetryMaxInterval     = 15 * time.Second
	defaultConnectTimeout       = 1 * time.Minute
)

// Options configures the Postgres connection.
type Options struct {
	DSN             string
	Schema          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

// PostgresRepo is the read-only query client over the dashboard tables
// (agendamentos, clientes, followups). It is built once at startup and shared
// by every in-flight fetch.
type PostgresRepo struct {
	db *gorm.DB
}

// schemaNamer implements gorm schema.Namer so every table is qualified with the
// configured schema. It embeds the default NamingStrategy and overrides TableName.
type schemaNamer struct {
	schema.NamingStrategy
	schemaName string
}

// TableName implements the schema.Namer interface, overriding the default.
func (n schemaNamer) TableName(table string) string {
	return fmt.Sprintf("%q.%s", n.schemaName, table)
}

// NewPostgresRepo opens the connection pool, retrying transient failures with
// exponential backoff until opts.ConnectTimeout elapses.
func NewPostgresRepo(opts Options) (*PostgresRepo, error) {
	if opts.DSN == "" {
		return nil, errors.New("postgres DSN is required")
	}

	gormCfg := &gorm.Config{
		Logger:                 gormLogger.Default.LogMode(gormLogger.Silent),
		SkipDefaultTransaction: true,
	}
	if opts.Schema != "" && opts.Schema != "public" {
		gormCfg.NamingStrategy = schemaNamer{schemaName: opts.Schema}
	}

	operation := func() (*gorm.DB, error) {
		db, err := gorm.Open(postgres.Open(opts.DSN), gormCfg)
		if err != nil {
			if isTransientError(err) {
				logger.Log.Warn("Failed to connect to postgres (transient), retrying...", zap.Error(err))
				return nil, err
			}
			return nil, backoff.Permanent(fmt.Errorf("failed to connect to postgres: %w", err))
		}
		return db, nil
	}

	notify := func(err error, d time.Duration) {
		logger.Log.Warn("Retrying DB connection", zap.Error(err), zap.Duration("after", d))
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = connectRetryInitialInterval
	b.MaxInterval = connectRetryMaxInterval
	b.MaxElapsedTime = opts.ConnectTimeout
	if b.MaxElapsedTime <= 0 {
		b.MaxElapsedTime = defaultConnectTimeout
	}

	db, err := backoff.RetryNotifyWithData(operation, b, notify)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres after retries: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	logger.Log.Info("Connected to PostgreSQL", zap.String("schema", schemaOrDefault(opts.Schema)))
	return &PostgresRepo{db: db}, nil
}

// NewPostgresRepoWithDB wraps an existing gorm handle.
func NewPostgresRepoWithDB(db *gorm.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func schemaOrDefault(s string) string {
	if s == "" {
		return "public"
	}
	return s
}

// Ping checks the database connection. Used by the readiness probe.
func (r *PostgresRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (r *PostgresRepo) Close(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to get underlying SQL DB for closing", zap.Error(err))
		return nil
	}

	if closeErr := sqlDB.Close(); closeErr != nil {
		logger.FromContext(ctx).Error("Failed to close PostgreSQL connection", zap.Error(closeErr))
		return fmt.Errorf("failed to close postgres connection: %w", closeErr)
	}
	return nil
}

// isTransientError checks if the error suggests a temporary issue like a network problem.
func isTransientError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08: connection exception
		// Class 53: insufficient resources
		// 57P03: cannot_connect_now, server starting up
		if strings.HasPrefix(pgErr.Code, "08") ||
			strings.HasPrefix(pgErr.Code, "53") ||
			pgErr.Code == "57P03" {
			return true
		}
		return false
	}

	errStr := strings.ToLower(err.Error())
	transientIndicators := []string{
		"connection refused",
		"network is unreachable",
		"i/o timeout",
		"broken pipe",
		"connection reset by peer",
		"could not translate host name",
		"no route to host",
		"database system is starting up",
		"connection timed out",
		"connection reset",
	}
	for _, indicator := range transientIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}
