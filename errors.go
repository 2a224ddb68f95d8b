package mediator

import (
	"fmt"
)

// The error types below partition every failure a [Runner] invocation can
// produce by the phase that produced it. All of them are terminal for the
// invocation; nothing is retried internally. Use [errors.As] to match.

// ConfigurationError reports a missing required request field. It is returned
// before any I/O takes place.
type ConfigurationError struct {
	// Field is the pipeline-facing name of the missing setting, e.g. "user".
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// WorkspaceError reports a failure to create the temporary changelog
// workspace (directory or file).
type WorkspaceError struct {
	Err error
}

func (e *WorkspaceError) Error() string {
	return fmt.Sprintf("create changelog workspace: %v", e.Err)
}

func (e *WorkspaceError) Unwrap() error { return e.Err }

// IOError reports a failure to write the changelog document into the
// workspace.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("write changelog: %v", e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// DriverError reports an unknown or unusable database driver identifier.
type DriverError struct {
	Driver string
	Err    error
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("driver %q: %v", e.Driver, e.Err)
}

func (e *DriverError) Unwrap() error { return e.Err }

// ConnectionError reports a failure to obtain a usable connection, on either
// the direct or the pooled path.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("obtain connection: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// MigrationError reports a failure from the migration engine, carrying the
// engine diagnostic. The failed changeset's transaction has already been
// rolled back when this error is returned.
type MigrationError struct {
	Err error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("run migrations: %v", e.Err)
}

func (e *MigrationError) Unwrap() error { return e.Err }
