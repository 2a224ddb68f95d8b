package engine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Metatavu/wso2-liquibase-mediator/changelog"
	"github.com/Metatavu/wso2-liquibase-mediator/database"
)

// State represents the state of a changeset against a target database.
type State string

const (
	// StatePending represents a changeset that is in the document, but not
	// recorded in the database.
	StatePending State = "pending"
	// StateApplied represents a changeset recorded as applied.
	StateApplied State = "applied"
)

// ChangeSetStatus reports the state of a single changeset.
type ChangeSetStatus struct {
	ID        string
	Author    string
	State     State
	AppliedAt time.Time
}

// Status returns the state of every changeset in the document matching the
// context label, in document order.
func (e *Engine) Status(
	ctx context.Context,
	conn *sql.Conn,
	log *changelog.ChangeLog,
	label string,
) ([]*ChangeSetStatus, error) {
	if err := e.ensureChangelogTable(ctx, conn); err != nil {
		return nil, err
	}
	var statuses []*ChangeSetStatus
	for _, cs := range log.ChangeSets {
		if !cs.MatchesContext(label) {
			continue
		}
		status := &ChangeSetStatus{
			ID:     cs.ID,
			Author: cs.Author,
			State:  StatePending,
		}
		res, err := e.store.GetApplied(ctx, conn, cs.ID, cs.Author)
		if err != nil && !errors.Is(err, database.ErrChangesetNotFound) {
			return nil, err
		}
		if res != nil {
			status.State = StateApplied
			status.AppliedAt = res.Timestamp
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
