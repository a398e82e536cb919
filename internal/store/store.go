// Package store is the read-only accessor for the externally-owned VRCX
// SQLite database. It never creates, migrates, or writes anything: the
// producing application may be running concurrently, so connections are
// opened read-only with a short busy timeout and hold no long-lived
// locks. A correctness layer, not a performance layer — no caching.
package store

import (
	"database/sql"
	"net/url"
	"os"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Default gamelog table names. VRCX also keeps per-user variants with a
// sanitized user id embedded in the name; point Options at those to
// query them, the engine never sees table names.
const (
	DefaultLocationTable  = "gamelog_location"
	DefaultJoinLeaveTable = "gamelog_join_leave"
)

// defaultBusyTimeout bounds how long a query waits on a writer's lock
// before the open or fetch fails as unavailable.
const defaultBusyTimeout = 500 * time.Millisecond

// Options configures table names and lock patience for a Store.
type Options struct {
	LocationTable  string
	JoinLeaveTable string
	BusyTimeout    time.Duration
}

func (o *Options) fillDefaults() {
	if o.LocationTable == "" {
		o.LocationTable = DefaultLocationTable
	}
	if o.JoinLeaveTable == "" {
		o.JoinLeaveTable = DefaultJoinLeaveTable
	}
	if o.BusyTimeout <= 0 {
		o.BusyTimeout = defaultBusyTimeout
	}
}

// Store wraps a read-only connection to one VRCX database file.
type Store struct {
	db   *sql.DB
	path string
	opts Options
}

// makeDSN builds the SQLite connection string. mode=ro guarantees we
// can never block or corrupt the writer; immutable is deliberately NOT
// set because the writer may be appending while we read.
func makeDSN(path string, busy time.Duration) string {
	params := url.Values{}
	params.Set("mode", "ro")
	params.Set("_busy_timeout", strconv.FormatInt(busy.Milliseconds(), 10))
	params.Set("_query_only", "true")
	return "file:" + path + "?" + params.Encode()
}

// Open opens the database file read-only and verifies the expected
// gamelog tables exist. It returns *UnavailableError when the file
// cannot be opened and *NotInitializedError when a table is absent.
func Open(path string, opts Options) (*Store, error) {
	opts.fillDefaults()

	// sql.Open is lazy; stat first so a missing file is reported as
	// unavailable rather than a cryptic driver error on first query.
	if _, err := os.Stat(path); err != nil {
		return nil, &UnavailableError{Path: path, Err: err}
	}

	db, err := sql.Open("sqlite3", makeDSN(path, opts.BusyTimeout))
	if err != nil {
		return nil, &UnavailableError{Path: path, Err: err}
	}
	// One snapshot read per invocation; no pool needed.
	db.SetMaxOpenConns(1)

	for _, table := range []string{
		opts.LocationTable, opts.JoinLeaveTable,
	} {
		var n int
		err := db.QueryRow(
			`SELECT count(*) FROM sqlite_master
			 WHERE type='table' AND name=?`, table,
		).Scan(&n)
		if err != nil {
			db.Close()
			return nil, &UnavailableError{Path: path, Err: err}
		}
		if n == 0 {
			db.Close()
			return nil, &NotInitializedError{Path: path, Table: table}
		}
	}

	return &Store{db: db, path: path, opts: opts}, nil
}

// Path returns the database file path this store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Close releases the connection.
func (s *Store) Close() error {
	return s.db.Close()
}
