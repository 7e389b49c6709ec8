// Package sqlstore persists intercepted errors into a relational table.
// MySQL, PostgreSQL and SQLite drivers are registered.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/shuldan/errorinterceptor/pkg/contracts"
	"github.com/shuldan/errorinterceptor/pkg/reporter"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const columns = "id, code, message, details, method, path, request_id, occurred_at"

type Sink struct {
	db     *sql.DB
	driver string
	config *config
	owned  bool
}

// New wraps an existing handle. The caller keeps ownership of db.
func New(db *sql.DB, dialect string, opts ...Option) (*Sink, error) {
	if db == nil {
		return nil, ErrInvalidDB
	}

	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	if !tableName.MatchString(c.table) {
		return nil, ErrInvalidTable.WithDetail("table", c.table)
	}

	return &Sink{db: db, driver: Driver(dialect), config: c}, nil
}

// Open connects to dsn, retrying with a ping until the database answers.
func Open(dialect, dsn string, opts ...Option) (*Sink, error) {
	if dsn == "" {
		return nil, ErrMissingDSN.WithDetail("dialect", dialect)
	}

	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	if !tableName.MatchString(c.table) {
		return nil, ErrInvalidTable.WithDetail("table", c.table)
	}

	driver := Driver(dialect)

	var db *sql.DB
	var err error

	for attempt := 0; attempt <= c.retryAttempts; attempt++ {
		db, err = sql.Open(driver, dsn)
		if err == nil {
			db.SetMaxOpenConns(c.maxOpenConns)
			db.SetMaxIdleConns(c.maxIdleConns)
			db.SetConnMaxLifetime(c.connMaxLifetime)

			ctx, cancel := context.WithTimeout(context.Background(), c.pingTimeout)
			err = db.PingContext(ctx)
			cancel()

			if err == nil {
				return &Sink{db: db, driver: driver, config: c, owned: true}, nil
			}
			_ = db.Close()
		}

		if attempt < c.retryAttempts {
			time.Sleep(c.retryDelay)
		}
	}

	return nil, ErrOpenFailed.WithDetail("dialect", dialect).WithCause(err)
}

// FromConfig opens a sink from a section such as:
//
//	dialect: postgres
//	dsn: postgres://app@localhost/app?sslmode=disable
//	table: intercepted_errors
//	pool:
//	  max_open_connections: 10
//
// and creates the table when it is missing. MySQL DSNs need parseTime=true,
// otherwise Recent cannot scan occurred_at into a time.Time.
func FromConfig(ctx context.Context, cfg contracts.Config) (*Sink, error) {
	dialect := cfg.GetString("dialect", "sqlite3")

	opts := []Option{
		WithTable(cfg.GetString("table")),
		WithPingTimeout(cfg.GetDuration("ping_timeout", 5*time.Second)),
		WithRetry(cfg.GetInt("retry.attempts", 3), cfg.GetDuration("retry.delay", time.Second)),
	}
	if cfg.Has("pool") {
		opts = append(opts, WithConnectionPool(
			cfg.GetInt("pool.max_open_connections", 10),
			cfg.GetInt("pool.max_idle_connections", 2),
			cfg.GetDuration("pool.conn_max_lifetime", time.Hour),
		))
	}

	s, err := Open(dialect, cfg.GetString("dsn"), opts...)
	if err != nil {
		return nil, err
	}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Sink) Table() string {
	return s.config.table
}

func (s *Sink) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id VARCHAR(36) PRIMARY KEY,
	code VARCHAR(64) NOT NULL,
	message TEXT NOT NULL,
	details TEXT NOT NULL,
	method VARCHAR(16) NOT NULL,
	path TEXT NOT NULL,
	request_id VARCHAR(128) NOT NULL,
	occurred_at TIMESTAMP NOT NULL
)`, s.config.table)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return ErrSchemaFailed.WithDetail("table", s.config.table).WithCause(err)
	}
	return nil
}

func (s *Sink) Report(ctx context.Context, r reporter.Record) error {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.config.table, columns, placeholders(s.driver, 8))

	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.Code, r.Message, r.Details, r.Method, r.Path, r.RequestID, r.OccurredAt)
	if err != nil {
		return ErrInsertFailed.WithDetail("id", r.ID).WithCause(err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Sink) Recent(ctx context.Context, limit int) ([]reporter.Record, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY occurred_at DESC LIMIT %d",
		columns, s.config.table, limit)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, ErrQueryFailed.WithDetail("table", s.config.table).WithCause(err)
	}
	defer func() { _ = rows.Close() }()

	var records []reporter.Record
	for rows.Next() {
		var r reporter.Record
		if err := rows.Scan(&r.ID, &r.Code, &r.Message, &r.Details,
			&r.Method, &r.Path, &r.RequestID, &r.OccurredAt); err != nil {
			return nil, ErrQueryFailed.WithDetail("table", s.config.table).WithCause(err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, ErrQueryFailed.WithDetail("table", s.config.table).WithCause(err)
	}
	return records, nil
}

// Close releases the handle when the sink opened it.
func (s *Sink) Close() error {
	if !s.owned {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return ErrCloseFailed.WithCause(err)
	}
	return nil
}
