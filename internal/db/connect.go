package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // driver: sqlite

	"github.com/mind-engage/mindengage-marking/internal/apperr"
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// DB is the process-wide connection pool.
type DB struct {
	X      *sqlx.DB
	driver Driver
}

// Open opens a pooled handle and verifies connectivity. In sqlite mode the
// reference schema is created as well, which is only meant for local runs
// and tests; postgres schemas are managed outside this service.
func Open(ctx context.Context, driver Driver, dsn string) (*DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:marking.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if strings.TrimSpace(dsn) == "" {
			return nil, apperr.Configuration("database url is not set", nil)
		}
	default:
		return nil, apperr.Configuration(fmt.Sprintf("unsupported driver: %s", driver), nil)
	}

	sqlDB, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, apperr.Configuration("cannot open database", err)
	}
	tunePool(driver, sqlDB)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, apperr.Connection(err)
	}

	if driver == DriverSQLite {
		if err := applySQLitePragmas(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, apperr.Connection(err)
		}
		if _, err := sqlDB.ExecContext(ctx, SchemaSQLite); err != nil {
			_ = sqlDB.Close()
			return nil, apperr.Query(err)
		}
	}
	return Wrap(sqlDB, driver), nil
}

// Wrap adopts an already opened *sql.DB, e.g. one built by sqlmock.
func Wrap(sqlDB *sql.DB, driver Driver) *DB {
	name := "pgx"
	if driver == DriverSQLite {
		name = "sqlite"
	}
	return &DB{X: sqlx.NewDb(sqlDB, name), driver: driver}
}

func (d *DB) Driver() Driver { return d.driver }

// Close closes the pool (safe to call on nil).
func (d *DB) Close() error {
	if d == nil || d.X == nil {
		return nil
	}
	return d.X.Close()
}

func (d *DB) Ping(ctx context.Context) error {
	if err := d.X.PingContext(ctx); err != nil {
		return apperr.Connection(err)
	}
	return nil
}

// Stats exposes the pool counters for metrics.
func (d *DB) Stats() sql.DBStats { return d.X.Stats() }

// ReadTx checks a connection out of the pool, runs fn inside a read-only
// transaction and always hands the connection back: commit when fn succeeds,
// rollback on error or panic. Every read in fn sees the same snapshot on
// postgres.
func (d *DB) ReadTx(ctx context.Context, fn func(*sqlx.Tx) error) (err error) {
	tx, err := d.X.BeginTxx(ctx, d.readOpts())
	if err != nil {
		return apperr.Connection(err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if e := tx.Commit(); e != nil {
			err = apperr.Classify(e)
		}
	}()
	err = fn(tx)
	return
}

func (d *DB) readOpts() *sql.TxOptions {
	if d.driver == DriverPostgres {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	// sqlite transactions are already serializable
	return nil
}

func tunePool(driver Driver, db *sql.DB) {
	maxOpen := 20
	maxIdle := 10
	connLife := 45 * time.Minute
	idleLife := 15 * time.Minute

	if driver == DriverSQLite {
		// single writer; one connection also keeps a shared in-memory db alive
		maxOpen = 1
		maxIdle = 1
		connLife = 0
		idleLife = 0
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(connLife)
	db.SetConnMaxIdleTime(idleLife)
}

func applySQLitePragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("sqlite pragma %q: %w", p, err)
		}
	}
	return nil
}
