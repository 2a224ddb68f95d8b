package engine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Metatavu/wso2-liquibase-mediator/changelog"
)

// Rollback reverts the most recently applied changesets, up to n of them, in
// reverse execution order, using each changeset's rollback statements. Every
// affected changeset must be present in the document and carry rollback
// statements; otherwise nothing is reverted and an error is returned.
func (e *Engine) Rollback(
	ctx context.Context,
	conn *sql.Conn,
	log *changelog.ChangeLog,
	n int,
) ([]*Result, error) {
	if n < 1 {
		return nil, fmt.Errorf("rollback count must be greater than zero")
	}
	if err := e.ensureChangelogTable(ctx, conn); err != nil {
		return nil, err
	}
	applied, err := e.store.ListApplied(ctx, conn)
	if err != nil {
		return nil, err
	}
	if len(applied) == 0 {
		return nil, nil
	}
	if n > len(applied) {
		n = len(applied)
	}
	// ListApplied is ascending by execution order; revert from the tail.
	revert := applied[len(applied)-n:]

	// Resolve all changesets up front so a missing rollback block fails the
	// operation before any statement runs.
	changesets := make([]*changelog.ChangeSet, 0, n)
	for i := len(revert) - 1; i >= 0; i-- {
		a := revert[i]
		cs := log.Find(a.ID, a.Author)
		if cs == nil {
			return nil, fmt.Errorf("changeset %s:%s is applied but missing from the changelog", a.ID, a.Author)
		}
		if len(cs.Rollback) == 0 {
			return nil, fmt.Errorf("changeset %s:%s has no rollback statements", a.ID, a.Author)
		}
		changesets = append(changesets, cs)
	}

	var results []*Result
	for _, cs := range changesets {
		current := &Result{
			ID:        cs.ID,
			Author:    cs.Author,
			Direction: "rollback",
		}
		start := time.Now()
		if err := e.rollbackChangeSet(ctx, conn, cs); err != nil {
			current.Err = err
			current.Duration = time.Since(start)
			return nil, &PartialError{
				Applied: results,
				Failed:  current,
				Err:     err,
			}
		}
		current.Duration = time.Since(start)
		results = append(results, current)
	}
	return results, nil
}

func (e *Engine) rollbackChangeSet(ctx context.Context, conn *sql.Conn, cs *changelog.ChangeSet) error {
	return e.beginTx(ctx, conn, func(tx *sql.Tx) error {
		for _, stmt := range cs.Rollback {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("execute rollback statement %q: %w", abbreviate(stmt), err)
			}
		}
		return e.store.Delete(ctx, tx, cs.ID, cs.Author)
	})
}
