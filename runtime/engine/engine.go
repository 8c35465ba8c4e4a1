package engine

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// Result is the uniform shape every execute-style call returns, regardless of
// what the native driver hands back.
type Result struct {
	RowCount     int
	AffectedRows int64
	InsertID     int64
}

// Engine is the uniform contract implemented per driver. Query errors are
// surfaced unchanged so callers can tell constraint violations from
// connectivity loss; only TestConnection converts errors to a boolean.
//
// While a transaction is open (Begin without a matching Commit/Rollback)
// every call routes through the transaction's dedicated connection.
type Engine interface {
	Driver() string
	Connect(ctx context.Context) error
	Close() error
	TestConnection(ctx context.Context) bool

	Execute(ctx context.Context, query string, params ...any) (Result, error)
	FetchOne(ctx context.Context, query string, params ...any) (map[string]any, error)
	FetchAll(ctx context.Context, query string, params ...any) ([]map[string]any, error)
	ExecuteMany(ctx context.Context, query string, paramSets [][]any) (int64, error)

	Begin(ctx context.Context) error
	Commit() error
	Rollback() error
}

// New builds an engine for the configuration. The connection itself is
// established lazily on first use (or explicitly via Connect).
func New(cfg Config) (Engine, error) {
	driverName, dsn, err := cfg.dsn()
	if err != nil {
		return nil, err
	}
	return &sqlEngine{
		cfg:        cfg,
		driverName: driverName,
		dataSource: dsn,
		ad:         adapter{driver: cfg.Driver},
	}, nil
}

// Transaction begins a transaction on e, runs fn, commits on success, and
// rolls back and returns fn's error on failure.
func Transaction(ctx context.Context, e Engine, fn func() error) error {
	if err := e.Begin(ctx); err != nil {
		return err
	}
	if err := fn(); err != nil {
		_ = e.Rollback()
		return err
	}
	return e.Commit()
}

type sqlEngine struct {
	cfg        Config
	driverName string
	dataSource string
	ad         adapter

	mu sync.Mutex
	db *sql.DB
	tx *sql.Tx
}

func (e *sqlEngine) Driver() string {
	return e.cfg.Driver
}

func (e *sqlEngine) Connect(ctx context.Context) error {
	db, err := e.ensure()
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("engine: connect %s: %w", e.cfg.Driver, err)
	}
	return nil
}

func (e *sqlEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tx != nil {
		_ = e.tx.Rollback()
		e.tx = nil
	}
	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	return err
}

func (e *sqlEngine) TestConnection(ctx context.Context) bool {
	return e.Connect(ctx) == nil
}

func (e *sqlEngine) Execute(ctx context.Context, query string, params ...any) (Result, error) {
	q, args, err := e.prepare(query, params)
	if err != nil {
		return Result{}, err
	}
	res, err := e.execer().ExecContext(ctx, q, args...)
	if err != nil {
		return Result{}, err
	}
	out := Result{}
	if n, err := res.RowsAffected(); err == nil {
		out.AffectedRows = n
		out.RowCount = int(n)
	}
	// Not every driver supports last-insert ids; zero means unavailable.
	if id, err := res.LastInsertId(); err == nil {
		out.InsertID = id
	}
	return out, nil
}

func (e *sqlEngine) FetchOne(ctx context.Context, query string, params ...any) (map[string]any, error) {
	rows, err := e.FetchAll(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (e *sqlEngine) FetchAll(ctx context.Context, query string, params ...any) ([]map[string]any, error) {
	q, args, err := e.prepare(query, params)
	if err != nil {
		return nil, err
	}
	rows, err := e.queryer().QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (e *sqlEngine) ExecuteMany(ctx context.Context, query string, paramSets [][]any) (int64, error) {
	if len(paramSets) == 0 {
		return 0, nil
	}
	q := e.ad.rewrite(query)
	stmt, err := e.execer().PrepareContext(ctx, q)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var total int64
	for _, set := range paramSets {
		args, err := e.ad.coerce(set)
		if err != nil {
			return total, err
		}
		res, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return total, err
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
	}
	return total, nil
}

func (e *sqlEngine) Begin(ctx context.Context) error {
	db, err := e.ensure()
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tx != nil {
		return fmt.Errorf("engine: transaction already open")
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	e.tx = tx
	return nil
}

func (e *sqlEngine) Commit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tx == nil {
		return fmt.Errorf("engine: no open transaction")
	}
	err := e.tx.Commit()
	e.tx = nil
	return err
}

func (e *sqlEngine) Rollback() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tx == nil {
		return fmt.Errorf("engine: no open transaction")
	}
	err := e.tx.Rollback()
	e.tx = nil
	return err
}

// runner is the subset of sql.DB / sql.Tx the engine needs.
type runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

func (e *sqlEngine) execer() runner  { return e.current() }
func (e *sqlEngine) queryer() runner { return e.current() }

func (e *sqlEngine) current() runner {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tx != nil {
		return e.tx
	}
	return lazyDB{e}
}

// lazyDB defers pool opening until the first statement actually runs.
type lazyDB struct {
	e *sqlEngine
}

func (l lazyDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	db, err := l.e.ensure()
	if err != nil {
		return nil, err
	}
	return db.ExecContext(ctx, query, args...)
}

func (l lazyDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	db, err := l.e.ensure()
	if err != nil {
		return nil, err
	}
	return db.QueryContext(ctx, query, args...)
}

func (l lazyDB) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	db, err := l.e.ensure()
	if err != nil {
		return nil, err
	}
	return db.PrepareContext(ctx, query)
}

func (e *sqlEngine) prepare(query string, params []any) (string, []any, error) {
	args, err := e.ad.coerce(params)
	if err != nil {
		return "", nil, err
	}
	return e.ad.rewrite(query), args, nil
}

func (e *sqlEngine) ensure() (*sql.DB, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.db != nil {
		return e.db, nil
	}
	db, err := sql.Open(e.driverName, e.dataSource)
	if err != nil {
		return nil, fmt.Errorf("engine: open %s: %w", e.cfg.Driver, err)
	}
	if e.cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(e.cfg.MaxOpenConns)
	}
	if e.cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(e.cfg.MaxIdleConns)
	}
	if e.cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(e.cfg.ConnMaxLifetime)
	}
	e.db = db
	return db, nil
}

// scanRows normalizes a result set into name-keyed rows. []byte cells become
// strings so callers see the same shape from every driver.
func scanRows(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []map[string]any
	for rows.Next() {
		cells := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(cols))
		for i, name := range cols {
			v := cells[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[name] = v
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
