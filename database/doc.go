// Package database defines the changelog tracking store used to record which
// changesets have been applied to a target database, with implementations for
// the supported SQL dialects.
package database
