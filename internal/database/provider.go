package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/go-sql-driver/mysql"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/config"
)

// ErrClosed is returned once the provider has been shut down.
var ErrClosed = errors.New("connection closed")

// ConnectionError wraps a failure to open or ping the database.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to %s MySQL connection: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ConnectionLoader returns the settings for a connect attempt.
type ConnectionLoader func() (*config.Connection, error)

// Opener turns connection settings into a database handle.
type Opener func(ctx context.Context, settings *config.Connection) (*sql.DB, error)

type state int

const (
	stateIdle state = iota
	stateConnected
	stateClosed
)

// Provider owns the single connection of the process. It connects lazily,
// keeps the connection until Close and never reconnects on its own.
type Provider struct {
	mu       sync.Mutex
	state    state
	db       *sql.DB
	conn     *sql.Conn
	settings *config.Connection

	// serialises statements on the pinned connection
	queryMu sync.Mutex

	load ConnectionLoader
	open Opener
}

// Option configures a Provider.
type Option func(*Provider)

// WithConnectionLoader replaces the environment based settings loader.
func WithConnectionLoader(load ConnectionLoader) Option {
	return func(p *Provider) { p.load = load }
}

// WithOpener replaces the MySQL opener.
func WithOpener(open Opener) Option {
	return func(p *Provider) { p.open = open }
}

// NewProvider creates an unconnected provider.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		load: config.LoadConnection,
		open: OpenMySQL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Connect establishes the connection if none exists yet. A failed attempt
// leaves the provider unconnected so that the next call tries again.
func (p *Provider) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case stateConnected:
		return nil
	case stateClosed:
		return ErrClosed
	}

	settings, err := p.load()
	if err != nil {
		return p.failed(err)
	}

	db, err := p.open(ctx, settings)
	if err != nil {
		return p.failed(&ConnectionError{Op: "open", Err: err})
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return p.failed(&ConnectionError{Op: "open", Err: err})
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		db.Close()
		return p.failed(&ConnectionError{Op: "ping", Err: err})
	}

	p.db = db
	p.conn = conn
	p.settings = settings
	p.state = stateConnected

	slog.Info("connected to MySQL", "database", settings.Database, "address", settings.Address())
	return nil
}

// failed logs which MYSQL_* variables the process sees, password masked.
func (p *Provider) failed(err error) error {
	attrs := append([]any{"error", err}, config.ConnectionAttrs(os.LookupEnv)...)
	slog.Error("MySQL connection attempt failed", attrs...)
	return err
}

func (p *Provider) current() (*sql.Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case stateClosed:
		return nil, ErrClosed
	case stateIdle:
		return nil, errors.New("not connected")
	}
	return p.conn, nil
}

// Ping checks that the connection is alive.
func (p *Provider) Ping(ctx context.Context) error {
	conn, err := p.current()
	if err != nil {
		return err
	}
	if err := conn.PingContext(ctx); err != nil {
		return &ConnectionError{Op: "ping", Err: err}
	}
	return nil
}

// ExecuteReadQuery runs one statement with bound parameters and returns all rows.
func (p *Provider) ExecuteReadQuery(ctx context.Context, query string, params []any) ([]Row, error) {
	p.queryMu.Lock()
	defer p.queryMu.Unlock()

	conn, err := p.current()
	if err != nil {
		return nil, err
	}

	slog.Debug("executing statement", "query", query, "params", len(params))

	rows, err := conn.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	return ScanRows(rows)
}

// GetDatabaseName returns the configured database, or "" before the first connect.
func (p *Provider) GetDatabaseName() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.settings == nil {
		return ""
	}
	return p.settings.Database
}

// Close releases the connection. It is safe to call more than once and
// before any connection exists; afterwards the provider stays closed.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == stateClosed {
		return nil
	}
	wasConnected := p.state == stateConnected
	p.state = stateClosed

	if !wasConnected {
		return nil
	}

	err := errors.Join(p.conn.Close(), p.db.Close())
	p.conn = nil
	p.db = nil
	slog.Info("MySQL connection closed")
	return err
}

// ScanRows reads every row into column ordered maps. Text and blob columns
// arrive as []byte and are returned as strings.
func ScanRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	results := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(results)+1, err)
		}

		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		results = append(results, NewRow(columns, values))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return results, nil
}

// MySQLConfig builds the driver configuration. Multi statement execution
// stays disabled so a single call can never run more than one statement,
// and every session is opened with transaction_read_only set so statements
// that slip past the textual checks still cannot modify data.
func MySQLConfig(settings *config.Connection) *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = settings.User
	cfg.Passwd = settings.Password
	cfg.Net = "tcp"
	cfg.Addr = settings.Address()
	cfg.DBName = settings.Database
	cfg.ParseTime = true
	cfg.MultiStatements = false
	cfg.Params = map[string]string{"transaction_read_only": "1"}
	return cfg
}

// OpenMySQL opens a handle limited to a single underlying connection.
func OpenMySQL(_ context.Context, settings *config.Connection) (*sql.DB, error) {
	connector, err := mysql.NewConnector(MySQLConfig(settings))
	if err != nil {
		return nil, err
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return db, nil
}
