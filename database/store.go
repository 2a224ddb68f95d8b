package database

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrChangesetNotFound must be returned by [Store.GetApplied] when a
	// changeset has not been recorded as applied.
	ErrChangesetNotFound = errors.New("changeset not found")
)

// Store is an interface that defines methods for recording applied changesets
// in a tracking table. By defining a Store interface, we can support multiple
// databases with consistent functionality.
//
// Each database dialect requires a specific implementation of this interface.
// A dialect represents a set of SQL statements specific to a particular
// database system.
type Store interface {
	// Tablename is the tracking table used to record applied changesets. Must
	// not be empty.
	Tablename() string

	// CreateChangelogTable creates the tracking table. Changesets are keyed
	// by (id, author); the table carries no seed row.
	CreateChangelogTable(ctx context.Context, db DBTxConn) error

	// InsertApplied records a changeset as applied.
	InsertApplied(ctx context.Context, db DBTxConn, req InsertRequest) error

	// Delete removes a changeset's tracking row, typically when the changeset
	// is rolled back.
	Delete(ctx context.Context, db DBTxConn, id, author string) error

	// GetApplied retrieves a single applied changeset by (id, author). If the
	// query succeeds but the changeset is not recorded, this method must
	// return [ErrChangesetNotFound].
	GetApplied(ctx context.Context, db DBTxConn, id, author string) (*GetAppliedResult, error)

	// ListApplied retrieves all applied changesets sorted in ascending
	// execution order. If there are none, it returns an empty slice with no
	// error.
	ListApplied(ctx context.Context, db DBTxConn) ([]*ListAppliedResult, error)
}

// InsertRequest is the tracking row written for one applied changeset.
type InsertRequest struct {
	ID            string
	Author        string
	Checksum      string
	Contexts      string
	OrderExecuted int64
}

type GetAppliedResult struct {
	Checksum      string
	OrderExecuted int64
	Timestamp     time.Time
}

type ListAppliedResult struct {
	ID            string
	Author        string
	Checksum      string
	OrderExecuted int64
	Timestamp     time.Time
}
