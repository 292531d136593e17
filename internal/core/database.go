package core

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL flavour behind a Database
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Database wraps sql.DB with additional functionality.
// Queries are written with ? placeholders and rebound for the active dialect.
type Database struct {
	*sql.DB
	dialect Dialect
	logger  *Logger
}

// NewDatabase creates a new database wrapper
func NewDatabase(db *sql.DB, dialect Dialect, logger *Logger) *Database {
	return &Database{
		DB:      db,
		dialect: dialect,
		logger:  logger,
	}
}

// OpenDatabase opens and pings the database described by the config
func OpenDatabase(config *Config, logger *Logger) (*Database, error) {
	dialect := config.Dialect()

	var (
		db  *sql.DB
		err error
	)
	switch dialect {
	case DialectPostgres:
		db, err = sql.Open("postgres", config.Database.URL)
	default:
		db, err = sql.Open("sqlite", config.Database.Path)
	}
	if err != nil {
		return nil, NewDatabaseError("failed to open database", err)
	}

	if dialect == DialectSQLite {
		// sqlite serialises writers; one connection avoids SQLITE_BUSY under load
		db.SetMaxOpenConns(1)
	}

	database := NewDatabase(db, dialect, logger)
	if err := database.PingWithTimeout(5 * time.Second); err != nil {
		db.Close()
		return nil, NewDatabaseError("failed to ping database", err)
	}

	logger.Info("Database connection established", "dialect", dialect)
	return database, nil
}

// Dialect returns the SQL dialect of the connection
func (db *Database) Dialect() Dialect {
	return db.dialect
}

// Rebind rewrites ? placeholders into the dialect's native form
func (db *Database) Rebind(query string) string {
	return Rebind(db.dialect, query)
}

// Rebind rewrites ? placeholders into $1, $2... for PostgreSQL.
// Question marks inside single-quoted literals are left alone.
func Rebind(dialect Dialect, query string) string {
	if dialect != DialectPostgres || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Transaction executes a function within a database transaction
func (db *Database) Transaction(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			// A panic occurred, rollback and re-panic
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	err = fn(tx)
	return err
}

// PingWithTimeout pings the database with a timeout
func (db *Database) PingWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return db.PingContext(ctx)
}

// Query executes a query after rebinding its placeholders
func (db *Database) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.QueryContext(ctx, db.Rebind(query), args...)
}

// QueryRow executes a single-row query after rebinding its placeholders
func (db *Database) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.QueryRowContext(ctx, db.Rebind(query), args...)
}

// ExecWithTimeout executes a command with a timeout
func (db *Database) ExecWithTimeout(ctx context.Context, query string, args ...any) (sql.Result, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return db.ExecContext(queryCtx, db.Rebind(query), args...)
}

// Close closes the database connection
func (db *Database) Close() error {
	db.logger.Info("Closing database connection")
	return db.DB.Close()
}

// LogStats logs database statistics
func (db *Database) LogStats() {
	stats := db.Stats()
	db.logger.Debug("Database stats",
		"dialect", db.dialect,
		"open_connections", stats.OpenConnections,
		"in_use", stats.InUse,
		"idle", stats.Idle,
		"wait_count", stats.WaitCount,
		"wait_duration", stats.WaitDuration,
	)
}
