package engine

import "time"

// Result is the outcome of one Engine call. When Err is set Records is
// empty.
type Result struct {
	Records []Record
	Err     error

	// RowsAffected and LastInsertID are only set by Execute.
	RowsAffected int64
	LastInsertID int64

	Duration time.Duration
}

// ErrorMessage returns the diagnostic of a failed call, or "" on success.
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
