package store

import "fmt"

// UnavailableError reports a database file that could not be opened:
// missing, permission denied, or locked beyond the busy timeout. The
// attempted path is carried for the user-facing message.
type UnavailableError struct {
	Path string
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("store unavailable at %s: %v", e.Path, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// NotInitializedError reports a file that opens as SQLite but is missing
// an expected gamelog table: wrong file, corruption, or a schema this
// tool does not know.
type NotInitializedError struct {
	Path  string
	Table string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf(
		"store at %s has no %s table (not a VRCX database?)",
		e.Path, e.Table,
	)
}
