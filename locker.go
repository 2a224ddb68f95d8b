package mediator

import (
	"context"
	"database/sql"
	"errors"
	"hash/crc64"
	"time"

	"github.com/sethvargo/go-retry"
)

// SessionLocker locks a database session for the duration of a migration so
// concurrent invocations against the same target are serialized.
type SessionLocker interface {
	LockSession(ctx context.Context, conn *sql.Conn) error
	UnlockSession(ctx context.Context, conn *sql.Conn) error
}

// PostgresSessionLocker implements [SessionLocker] with PostgreSQL
// session-level advisory locks.
type PostgresSessionLocker struct {
	retryLock   retry.Backoff
	retryUnlock retry.Backoff
	lockID      int64
}

var _ SessionLocker = (*PostgresSessionLocker)(nil)

// PostgresSessionLockerOptions configure a [PostgresSessionLocker]. The zero
// value selects defaults.
type PostgresSessionLockerOptions struct {
	// LockID is the advisory lock key. Defaults to a key derived from the
	// module name so the lock is unique to this component.
	LockID int64
}

// NewPostgresSessionLocker returns a locker that retries acquiring the
// advisory lock every 2 seconds for up to 5 minutes, and releasing it every
// 2 seconds for up to 1 minute.
func NewPostgresSessionLocker(opts PostgresSessionLockerOptions) *PostgresSessionLocker {
	lockID := opts.LockID
	if lockID == 0 {
		lockID = int64(crc64.Checksum([]byte("liquibase-mediator"), crc64.MakeTable(crc64.ECMA)))
	}
	return &PostgresSessionLocker{
		retryLock: retry.WithMaxDuration(
			5*time.Minute,
			retry.NewConstant(2*time.Second),
		),
		retryUnlock: retry.WithMaxDuration(
			1*time.Minute,
			retry.NewConstant(2*time.Second),
		),
		lockID: lockID,
	}
}

func (p *PostgresSessionLocker) LockSession(ctx context.Context, conn *sql.Conn) error {
	return retry.Do(ctx, p.retryLock, func(ctx context.Context) error {
		row := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", p.lockID)
		var locked bool
		if err := row.Scan(&locked); err != nil {
			return err
		}
		if locked {
			return nil
		}
		// Another session holds the lock; keep retrying until it is released
		// or the backoff gives up.
		return retry.RetryableError(errors.New("failed to acquire lock"))
	})
}

func (p *PostgresSessionLocker) UnlockSession(ctx context.Context, conn *sql.Conn) error {
	return retry.Do(ctx, p.retryUnlock, func(ctx context.Context) error {
		var unlocked bool
		row := conn.QueryRowContext(ctx, "SELECT pg_advisory_unlock($1)", p.lockID)
		if err := row.Scan(&unlocked); err != nil {
			return err
		}
		if !unlocked {
			// pg_advisory_unlock_all() runs implicitly at session end, so a
			// failed unlock resolves itself once the connection closes.
			return retry.RetryableError(errors.New("failed to release lock"))
		}
		return nil
	})
}
