package mediator

import (
	"context"
	"errors"
)

// Mediator is the pipeline-facing component: a settings struct populated by
// the enclosing message pipeline before each invocation, and a single
// Mediate method that runs the migration and reports a continuation signal.
type Mediator struct {
	// User, Password, URL and Driver configure a direct connection.
	User     string
	Password string
	URL      string
	Driver   string

	// ChangeLog is the inline changelog document text.
	ChangeLog string

	// DataSource selects a registered data source instead of a direct
	// connection.
	DataSource string

	// Logger receives diagnostics. Defaults to the standard logger.
	Logger Logger

	// Options are applied to the underlying [Runner], after the logger.
	Options []RunnerOption
}

// Mediate runs the migration and returns the pipeline continuation signal.
//
// The reporting contract is inherited from the original pipeline component
// and is deliberately asymmetric: a missing setting or a workspace-creation
// failure returns false, while failures in the execution block (changelog
// write, connection, migration) are logged and Mediate still returns true so
// the pipeline continues. Callers that need the real outcome should use
// [Runner.Run] instead.
func (m *Mediator) Mediate(ctx context.Context) bool {
	log := m.Logger
	if log == nil {
		log = &stdLogger{}
	}
	opts := append([]RunnerOption{WithLogger(log)}, m.Options...)
	runner := NewRunner(opts...)

	_, err := runner.Run(ctx, Request{
		ChangeLog:  m.ChangeLog,
		DataSource: m.DataSource,
		Driver:     m.Driver,
		URL:        m.URL,
		User:       m.User,
		Password:   m.Password,
	})
	if err == nil {
		return true
	}

	var (
		cfgErr *ConfigurationError
		wsErr  *WorkspaceError
		ioErr  *IOError
		drvErr *DriverError
	)
	switch {
	case errors.As(err, &cfgErr):
		log.Printf("%s is required", cfgErr.Field)
		return false
	case errors.As(err, &wsErr):
		log.Printf("failed to create changelog workspace: %v", wsErr.Err)
		return false
	case errors.As(err, &ioErr):
		log.Printf("failed to write changelog: %v", ioErr.Err)
	case errors.As(err, &drvErr):
		log.Printf("failed to initialize driver: %v", err)
	default:
		log.Printf("failed to run migrations: %v", err)
	}
	return true
}
