package testutil

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Row is a pgx.Row backed by a scan function. A nil function reports
// pgx.ErrNoRows.
type Row struct {
	scan func(dest ...any) error
}

// NewRow wraps scanner.
func NewRow(scanner func(dest ...any) error) Row {
	return Row{scan: scanner}
}

func (r Row) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

// Call is one statement seen by FakeSQL.
type Call struct {
	Query string
	Args  []any
}

// FakeSQL answers QueryRow with queued rows and records every statement.
type FakeSQL struct {
	mu    sync.Mutex
	Calls []Call
	rows  []pgx.Row
}

// QueueRow appends a row returned by the next QueryRow call.
func (f *FakeSQL) QueueRow(r pgx.Row) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, r)
}

func (f *FakeSQL) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.record(query, args)
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (f *FakeSQL) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	f.record(query, args)
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.rows) == 0 {
		return Row{}
	}
	r := f.rows[0]
	f.rows = f.rows[1:]
	return r
}

func (f *FakeSQL) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	f.record(query, args)
	return nil, pgx.ErrNoRows
}

func (f *FakeSQL) record(query string, args []any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, Call{Query: query, Args: args})
}
