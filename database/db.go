package database

import (
	"car_configurator_server/config"
	"car_configurator_server/structs"
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// DB wraps the bun database handle with the per-call timeout and retry policy from configuration
type DB struct {
	*bun.DB
	callTimeout time.Duration
	retry       RetryConfig
}

var instance *DB

// Connect establishes a connection to the database using centralized configuration
func Connect() (*DB, error) {
	logger := config.GetLogger()
	dbCfg := config.GetConfig().Database

	sqldb, err := openSQLDB(dbCfg)
	if err != nil {
		return nil, err
	}

	sqldb.SetMaxOpenConns(dbCfg.MaxConns)
	sqldb.SetMaxIdleConns(dbCfg.MinConns)
	sqldb.SetConnMaxLifetime(dbCfg.MaxLifetime)
	sqldb.SetConnMaxIdleTime(dbCfg.MaxIdleTime)

	db := Wrap(bun.NewDB(sqldb, pgdialect.New()), dbCfg)
	db.AddQueryHook(&slowQueryHook{logger: logger, threshold: dbCfg.SlowQuery})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.DB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database successfully",
		gecho.Field("driver", dbCfg.Driver),
		gecho.Field("host", dbCfg.Host),
		gecho.Field("database", dbCfg.Name),
	)

	return db, nil
}

// Wrap attaches the configured timeout and retry policy to an existing bun handle.
func Wrap(bdb *bun.DB, dbCfg *structs.DatabaseConfig) *DB {
	retry := DefaultRetryConfig()
	retry.EnableRetry = dbCfg.RetryEnabled

	return &DB{
		DB:          bdb,
		callTimeout: dbCfg.AcquireTimeout,
		retry:       retry,
	}
}

func openSQLDB(dbCfg *structs.DatabaseConfig) (*sql.DB, error) {
	dsn := buildDSN(dbCfg)

	switch dbCfg.Driver {
	case "pgx":
		connCfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid database configuration: %w", err)
		}
		return stdlib.OpenDB(*connCfg), nil
	case "", "pgdriver":
		return sql.OpenDB(pgdriver.NewConnector(
			pgdriver.WithDSN(dsn),
			pgdriver.WithReadTimeout(dbCfg.ReadTimeout),
			pgdriver.WithWriteTimeout(dbCfg.WriteTimeout),
		)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", dbCfg.Driver)
	}
}

func buildDSN(dbCfg *structs.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(dbCfg.User, dbCfg.Password),
		Host:   dbCfg.Host + ":" + strconv.Itoa(dbCfg.Port),
		Path:   "/" + dbCfg.Name,
	}
	q := url.Values{}
	q.Set("sslmode", dbCfg.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Initialize sets up the global database instance using centralized configuration
func Initialize() error {
	db, err := Connect()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	instance = db
	return nil
}

// GetInstance returns the global database instance
func GetInstance() *DB {
	if instance == nil {
		log.Fatal("Database instance is not initialized. Call Initialize() first.")
	}
	return instance
}

// CloseInstance closes the global database instance
func CloseInstance() error {
	if instance != nil {
		return instance.Close()
	}
	return nil
}

// Health checks the database connection health
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}

// GetStats returns connection pool statistics for monitoring
func (db *DB) GetStats() sql.DBStats {
	return db.DB.DB.Stats()
}

// withCallTimeout bounds a single database call when no tighter deadline is set.
func (db *DB) withCallTimeout(ctx context.Context, override time.Duration) (context.Context, context.CancelFunc) {
	timeout := db.callTimeout
	if override > 0 {
		timeout = override
	}
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// slowQueryHook implements bun.QueryHook and reports slow and failed queries
type slowQueryHook struct {
	logger    *gecho.Logger
	threshold time.Duration
}

func (h *slowQueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *slowQueryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)
	if h.threshold > 0 && duration > h.threshold {
		h.logger.Warn("Slow database query detected",
			gecho.Field("query", event.Query),
			gecho.Field("duration", duration),
		)
	}

	if event.Err != nil && isConnectionError(event.Err) {
		h.logger.Error("Database connection error - connection may have been closed by server",
			gecho.Field("error", event.Err),
			gecho.Field("query", event.Query),
		)
	}
}
