package engine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Metatavu/wso2-liquibase-mediator/changelog"
	"github.com/Metatavu/wso2-liquibase-mediator/database"
)

// Update applies all pending changesets for the given context label, in
// document order, and returns a result per applied changeset. A changeset is
// pending when it matches the label and has no tracking row; an applied
// changeset whose stored checksum no longer matches the document fails the
// run before anything is executed.
//
// Each changeset runs in its own transaction (unless it opts out) together
// with its tracking-table insert, so a failure rolls back the changeset and
// leaves previously committed changesets in place. On failure the returned
// error is a [*PartialError] carrying the results committed so far.
func (e *Engine) Update(
	ctx context.Context,
	conn *sql.Conn,
	log *changelog.ChangeLog,
	label string,
) ([]*Result, error) {
	if err := e.ensureChangelogTable(ctx, conn); err != nil {
		return nil, err
	}
	applied, err := e.store.ListApplied(ctx, conn)
	if err != nil {
		return nil, err
	}
	appliedByIdentity := make(map[string]*database.ListAppliedResult, len(applied))
	var maxOrder int64
	for _, a := range applied {
		appliedByIdentity[a.ID+":"+a.Author] = a
		if a.OrderExecuted > maxOrder {
			maxOrder = a.OrderExecuted
		}
	}
	pending, err := pendingChangeSets(log, label, appliedByIdentity)
	if err != nil {
		return nil, err
	}

	var results []*Result
	for _, cs := range pending {
		current := &Result{
			ID:        cs.ID,
			Author:    cs.Author,
			Direction: "update",
		}
		maxOrder++
		start := time.Now()
		if err := e.applyChangeSet(ctx, conn, cs, maxOrder); err != nil {
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

// pendingChangeSets filters the document down to the changesets that still
// need to run for label, verifying stored checksums for those already
// applied.
func pendingChangeSets(
	log *changelog.ChangeLog,
	label string,
	applied map[string]*database.ListAppliedResult,
) ([]*changelog.ChangeSet, error) {
	var pending []*changelog.ChangeSet
	for _, cs := range log.ChangeSets {
		if !cs.MatchesContext(label) {
			continue
		}
		if a, ok := applied[cs.ID+":"+cs.Author]; ok {
			if a.Checksum != cs.Checksum {
				return nil, fmt.Errorf("checksum mismatch for changeset %s:%s: was %s, now %s",
					cs.ID, cs.Author, a.Checksum, cs.Checksum)
			}
			continue
		}
		pending = append(pending, cs)
	}
	return pending, nil
}

// applyChangeSet executes one changeset and records it as applied. The
// tracking insert happens inside the same transaction as the statements, so
// either both are visible or neither is. Changesets that opt out of
// transactions are executed statement by statement on the bare connection;
// those cannot be rolled back and any failure is reported as such.
func (e *Engine) applyChangeSet(
	ctx context.Context,
	conn *sql.Conn,
	cs *changelog.ChangeSet,
	order int64,
) error {
	insert := database.InsertRequest{
		ID:            cs.ID,
		Author:        cs.Author,
		Checksum:      cs.Checksum,
		Contexts:      cs.Context,
		OrderExecuted: order,
	}
	if cs.RunInTransaction {
		return e.beginTx(ctx, conn, func(tx *sql.Tx) error {
			for _, stmt := range cs.SQL {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("execute statement %q: %w", abbreviate(stmt), err)
				}
			}
			return e.store.InsertApplied(ctx, tx, insert)
		})
	}
	for _, stmt := range cs.SQL {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute statement %q outside transaction (cannot be rolled back): %w",
				abbreviate(stmt), err)
		}
	}
	return e.store.InsertApplied(ctx, conn, insert)
}

func abbreviate(stmt string) string {
	const max = 60
	if len(stmt) <= max {
		return stmt
	}
	return stmt[:max] + "..."
}
