// Package changelog implements the XML changelog document format consumed by
// the migration engine: an ordered list of changesets, each an atomic unit of
// schema change tracked so it is applied at most once per target.
package changelog

import (
	"strings"
)

// ChangeLog is a parsed changelog document.
type ChangeLog struct {
	// Properties holds the document's <property> definitions, already merged
	// in document order. They are substituted into changeset SQL during
	// parsing, with the process environment as fallback.
	Properties map[string]string

	// ChangeSets in document order.
	ChangeSets []*ChangeSet
}

// ChangeSet is one atomic unit of schema change. Changesets are identified by
// (ID, Author), which must be unique within a document.
type ChangeSet struct {
	ID      string
	Author  string
	Context string
	Comment string

	// RunInTransaction reports whether the changeset's statements run inside
	// a single transaction. It defaults to true; changesets that opt out
	// cannot be rolled back on failure.
	RunInTransaction bool

	// SQL statements to apply, in order, with properties substituted.
	SQL []string

	// Rollback statements that revert this changeset, if provided.
	Rollback []string

	// Checksum is the hex digest over the changeset's raw statements, before
	// property substitution. It is recorded on apply and verified on
	// subsequent runs.
	Checksum string
}

// MatchesContext reports whether the changeset should run for the given
// context label. A changeset with no context always runs; otherwise its
// comma-separated context list must contain the label.
func (c *ChangeSet) MatchesContext(label string) bool {
	if c.Context == "" {
		return true
	}
	for _, part := range strings.Split(c.Context, ",") {
		if strings.TrimSpace(part) == label {
			return true
		}
	}
	return false
}

// Find returns the changeset with the given identity, or nil.
func (c *ChangeLog) Find(id, author string) *ChangeSet {
	for _, cs := range c.ChangeSets {
		if cs.ID == id && cs.Author == author {
			return cs
		}
	}
	return nil
}
