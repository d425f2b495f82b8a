package store

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

var fastBackoff = backoff{attempts: 3, base: time.Millisecond, ceiling: 5 * time.Millisecond}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"non-transient", errors.New("syntax error"), false},
		{"constraint", errors.New("UNIQUE constraint failed: records.id"), false},
		{"SQLITE_BUSY text", errors.New("SQLITE_BUSY"), true},
		{"SQLITE_LOCKED text", errors.New("SQLITE_LOCKED"), true},
		{"IOERR_SHORT_READ text", errors.New("disk I/O error (522) IOERR_SHORT_READ"), true},
		{"database is locked", errors.New("database is locked"), true},
		{"database table is locked", errors.New("database table is locked"), true},
		{"wrapped busy", fmt.Errorf("save record TT: %w", errors.New("SQLITE_BUSY")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTransient(tt.err); got != tt.want {
				t.Errorf("isTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestBackoffSucceedsImmediately(t *testing.T) {
	calls := 0
	err := fastBackoff.do(func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Fatalf("got err=%v calls=%d, want nil/1", err, calls)
	}
}

func TestBackoffNoRetryOnPermanentError(t *testing.T) {
	calls := 0
	permanent := errors.New("no such table: records")
	err := fastBackoff.do(func() error {
		calls++
		return permanent
	})
	if err != permanent {
		t.Errorf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestBackoffRetriesTransient(t *testing.T) {
	calls := 0
	err := fastBackoff.do(func() error {
		calls++
		if calls < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	if err != nil {
		t.Errorf("expected nil after retries, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestBackoffGivesUp(t *testing.T) {
	calls := 0
	b := backoff{attempts: 2, base: time.Millisecond, ceiling: time.Millisecond}
	err := b.do(func() error {
		calls++
		return errors.New("SQLITE_BUSY")
	})
	if err == nil {
		t.Error("expected error after exhausting retries")
	}
	// attempts=2: one try plus two retries.
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestBackoffZeroAttempts(t *testing.T) {
	calls := 0
	b := backoff{base: time.Millisecond, ceiling: time.Millisecond}
	_ = b.do(func() error {
		calls++
		return errors.New("SQLITE_BUSY")
	})
	if calls != 1 {
		t.Errorf("expected 1 call with attempts=0, got %d", calls)
	}
}

func TestBackoffDelay(t *testing.T) {
	b := backoff{base: 50 * time.Millisecond, ceiling: 500 * time.Millisecond}
	for attempt, lo := range []time.Duration{50, 100, 200} {
		lo *= time.Millisecond
		d := b.delay(attempt)
		if d < lo || d >= lo+50*time.Millisecond {
			t.Errorf("attempt %d delay %v not in [%v, %v)", attempt, d, lo, lo+50*time.Millisecond)
		}
	}
}

func TestBackoffDelayCapped(t *testing.T) {
	b := backoff{base: 100 * time.Millisecond, ceiling: 200 * time.Millisecond}
	if d := b.delay(5); d >= 300*time.Millisecond {
		t.Errorf("attempt 5 delay %v should be capped near 200ms", d)
	}
}
