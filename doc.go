// Package mediator applies a schema-changelog document to a database and
// reports the outcome to an enclosing message pipeline.
//
// The core type is [Runner]: given a [Request] carrying an inline changelog
// document and connection parameters, it materializes the changelog in a
// private temporary directory, obtains a database connection (either directly
// through a registered driver or from a named, pre-registered data source),
// applies all pending changesets for the requested context label, and
// guarantees the temporary file and the connection are released on every exit
// path.
//
// [Mediator] is a thin facade over Runner that preserves the reporting
// contract of the original pipeline component, including its historical
// always-continue behavior. New callers should prefer Runner directly.
package mediator
