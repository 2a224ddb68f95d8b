package mediator

import (
	"context"
	"database/sql"

	"go.uber.org/multierr"

	"github.com/Metatavu/wso2-liquibase-mediator/changelog"
	"github.com/Metatavu/wso2-liquibase-mediator/database"
	"github.com/Metatavu/wso2-liquibase-mediator/internal/engine"
)

// Run executes one migration request: validate, materialize the changelog in
// a private workspace, connect, apply pending changesets, clean up. The
// returned error is one of the types in errors.go, identifying the phase that
// failed. The workspace and the connection are released on every path;
// release failures are logged, never returned.
func (r *Runner) Run(ctx context.Context, req Request) (*Outcome, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	ws, err := acquireWorkspace(r.tempRoot, r.log)
	if err != nil {
		return nil, err
	}
	defer ws.release()

	if err := ws.writeChangeLog(req.ChangeLog); err != nil {
		return nil, err
	}

	conn, dialect, cleanup, err := r.connect(ctx, req)
	if err != nil {
		return nil, err
	}
	defer r.releaseConn(cleanup)

	if r.locker != nil {
		if err := r.locker.LockSession(ctx, conn); err != nil {
			return nil, &ConnectionError{Err: err}
		}
		defer func() {
			if err := r.locker.UnlockSession(ctx, conn); err != nil {
				r.log.Printf("failed to unlock session: %v", err)
			}
		}()
	}

	store, err := database.NewStore(dialect, r.tablename)
	if err != nil {
		return nil, &MigrationError{Err: err}
	}
	doc, err := changelog.ParseFile(ws.file)
	if err != nil {
		return nil, &MigrationError{Err: err}
	}

	results, err := engine.New(store, r.log).Update(ctx, conn, doc, r.contextLabel)
	if err != nil {
		return nil, &MigrationError{Err: err}
	}

	outcome := &Outcome{Applied: make([]ChangesetResult, 0, len(results))}
	for _, res := range results {
		outcome.Applied = append(outcome.Applied, ChangesetResult{
			ID:       res.ID,
			Author:   res.Author,
			Duration: res.Duration,
		})
	}
	return outcome, nil
}

// connect obtains the invocation's dedicated connection, pooled or direct.
// The returned cleanup closes the connection, and for the direct path also
// the database handle opened for it; it must run on every path once connect
// succeeds.
func (r *Runner) connect(
	ctx context.Context,
	req Request,
) (*sql.Conn, database.Dialect, func() error, error) {
	var (
		db      *sql.DB
		dialect database.Dialect
		ownsDB  bool
	)
	if req.pooled() {
		pooled, d, err := r.factory(ctx, req.DataSource)
		if err != nil {
			return nil, "", nil, &ConnectionError{Err: err}
		}
		db, dialect = pooled, d
	} else {
		direct, d, err := openDirect(ctx, req.Driver, req.URL, req.User, req.Password)
		if err != nil {
			return nil, "", nil, err
		}
		db, dialect, ownsDB = direct, d, true
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		if ownsDB {
			_ = db.Close()
		}
		return nil, "", nil, &ConnectionError{Err: err}
	}
	cleanup := func() error {
		err := conn.Close()
		if ownsDB {
			err = multierr.Append(err, db.Close())
		}
		return err
	}
	return conn, dialect, cleanup, nil
}

// releaseConn runs the connection cleanup. By this point the migration
// outcome is already decided, so a close failure is logged and swallowed.
func (r *Runner) releaseConn(cleanup func() error) {
	if err := cleanup(); err != nil {
		r.log.Printf("failed to release connection: %v", err)
	}
}
