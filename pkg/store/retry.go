// retry.go retries writes that hit transient SQLite contention.
//
// WAL mode lets several rpndate processes write to one catalogue, but a
// writer can still see SQLITE_BUSY, SQLITE_LOCKED or IOERR_SHORT_READ when
// busy_timeout runs out. Those are safe to retry; everything else is not.
package store

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// backoff controls how writes are retried.
type backoff struct {
	attempts int // retries after the first try
	base     time.Duration
	ceiling  time.Duration
}

var writeBackoff = backoff{
	attempts: 3,
	base:     50 * time.Millisecond,
	ceiling:  500 * time.Millisecond,
}

// transientMessages catch errors that reach us without a *sqlite.Error,
// e.g. wrapped by database/sql.
var transientMessages = []string{
	"SQLITE_BUSY",
	"SQLITE_LOCKED",
	"IOERR_SHORT_READ",
	"database is locked",
	"database table is locked",
}

// isTransient reports whether err is SQLite contention worth retrying.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_IOERR_SHORT_READ:
			return true
		}
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return true
		}
		return false
	}
	msg := err.Error()
	for _, m := range transientMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// do runs fn, retrying transient failures with exponential backoff and
// jitter. Other errors are returned at once.
func (b backoff) do(fn func() error) error {
	err := fn()
	for i := 0; i < b.attempts && isTransient(err); i++ {
		time.Sleep(b.delay(i))
		err = fn()
	}
	return err
}

// delay is base*2^attempt capped at ceiling, plus up to base of jitter.
func (b backoff) delay(attempt int) time.Duration {
	d := b.base << uint(attempt)
	if d > b.ceiling {
		d = b.ceiling
	}
	return d + time.Duration(rand.Int63n(int64(b.base)))
}
