// Package engine applies parsed changelog documents to a database, recording
// each applied changeset in the tracking store so it runs at most once per
// target.
package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Metatavu/wso2-liquibase-mediator/database"
)

// Logger is the subset of the mediator logger the engine needs.
type Logger interface {
	Printf(format string, v ...any)
}

// Engine applies changesets from a changelog document against a single
// database connection. It holds no connection state itself; the caller owns
// the connection's lifecycle.
type Engine struct {
	store database.Store
	log   Logger
}

func New(store database.Store, log Logger) *Engine {
	return &Engine{
		store: store,
		log:   log,
	}
}

// Result is the outcome of applying or rolling back a single changeset.
type Result struct {
	ID        string
	Author    string
	Direction string
	Duration  time.Duration
	Err       error
}

// PartialError is returned when a subset of changesets succeeded before one
// failed. Applied holds the changesets that were committed; Failed describes
// the changeset whose transaction was rolled back.
type PartialError struct {
	Applied []*Result
	Failed  *Result
	Err     error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("partial migration error (changeset %s:%s): %v", e.Failed.ID, e.Failed.Author, e.Err)
}

func (e *PartialError) Unwrap() error { return e.Err }

// ensureChangelogTable creates the tracking table if it does not exist yet.
// The existence probe is a lookup that succeeds (or reports not-found) only
// when the table is queryable.
func (e *Engine) ensureChangelogTable(ctx context.Context, conn *sql.Conn) error {
	_, err := e.store.GetApplied(ctx, conn, "baseline", "baseline")
	if err == nil || errors.Is(err, database.ErrChangesetNotFound) {
		return nil
	}
	return e.beginTx(ctx, conn, func(tx *sql.Tx) error {
		return e.store.CreateChangelogTable(ctx, tx)
	})
}

// beginTx runs fn in a transaction on conn, rolling back on error. Rollback
// failures are logged and swallowed; the original error wins.
func (e *Engine) beginTx(ctx context.Context, conn *sql.Conn, fn func(tx *sql.Tx) error) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			e.log.Printf("failed to rollback transaction: %v", rerr)
		}
		return err
	}
	return tx.Commit()
}
