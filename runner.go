package mediator

import (
	"time"

	"github.com/Metatavu/wso2-liquibase-mediator/database"
)

// DefaultContext is the context label the enclosing pipeline requests:
// changesets tagged "main" (or carrying no context at all) are the ones
// applied by a mediator invocation.
const DefaultContext = "main"

// Runner executes migration requests. A Runner is stateless between
// invocations and safe for concurrent use; every invocation owns its own
// temporary workspace and connection.
type Runner struct {
	log          Logger
	tablename    string
	contextLabel string
	tempRoot     string
	factory      ConnectionFactory
	locker       SessionLocker
}

// RunnerOption configures a [Runner].
type RunnerOption func(*Runner)

// WithLogger sets the logger for the runner output.
func WithLogger(l Logger) RunnerOption {
	return func(r *Runner) { r.log = l }
}

// WithTablename sets the changelog tracking table name.
func WithTablename(name string) RunnerOption {
	return func(r *Runner) { r.tablename = name }
}

// WithContext sets the context label used to select changesets. Defaults to
// [DefaultContext].
func WithContext(label string) RunnerOption {
	return func(r *Runner) { r.contextLabel = label }
}

// WithTempRoot sets the parent directory for per-invocation workspaces.
// Defaults to the system temp directory.
func WithTempRoot(dir string) RunnerOption {
	return func(r *Runner) { r.tempRoot = dir }
}

// WithConnectionFactory replaces the process-wide data source registry used
// to resolve pooled-mode requests.
func WithConnectionFactory(f ConnectionFactory) RunnerOption {
	return func(r *Runner) { r.factory = f }
}

// WithSessionLocker sets a locker that serializes concurrent invocations
// against the same target database for the duration of the migration.
func WithSessionLocker(locker SessionLocker) RunnerOption {
	return func(r *Runner) { r.locker = locker }
}

// NewRunner returns a new Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		log:          &stdLogger{},
		tablename:    database.DefaultTablename,
		contextLabel: DefaultContext,
		factory:      registryFactory,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ChangesetResult describes one changeset applied by an invocation.
type ChangesetResult struct {
	ID       string
	Author   string
	Duration time.Duration
}

// Outcome is the result of a successful invocation.
type Outcome struct {
	// Applied holds the changesets applied by this invocation, in order. An
	// empty slice means the target was already up to date.
	Applied []ChangesetResult
}
