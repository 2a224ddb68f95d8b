package mediator

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/Metatavu/wso2-liquibase-mediator/database"
)

// ConnectionFactory resolves a named data source to an open database handle
// and its dialect. The default factory is backed by the process-wide registry
// below; hosts that manage pools themselves can supply their own with
// [WithConnectionFactory].
type ConnectionFactory func(ctx context.Context, name string) (*sql.DB, database.Dialect, error)

type dataSource struct {
	db      *sql.DB
	dialect database.Dialect
}

var (
	registeredDataSources = make(map[string]*dataSource)
	registryMu            sync.Mutex
)

// RegisterDataSource registers a named, shared data source for pooled-mode
// requests. The registry does not take ownership: the host environment opens
// and closes the pool. Registering an empty name, a nil handle, an empty
// dialect or a duplicate name is an error.
func RegisterDataSource(name string, db *sql.DB, dialect database.Dialect) error {
	if name == "" {
		return fmt.Errorf("data source name must not be empty")
	}
	if db == nil {
		return fmt.Errorf("data source %q: handle must not be nil", name)
	}
	if dialect == "" {
		return fmt.Errorf("data source %q: dialect must not be empty", name)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registeredDataSources[name]; exists {
		return fmt.Errorf("data source %q already registered", name)
	}
	registeredDataSources[name] = &dataSource{db: db, dialect: dialect}
	return nil
}

// UnregisterDataSource removes a named data source. It does not close the
// underlying pool.
func UnregisterDataSource(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registeredDataSources, name)
}

func registryFactory(_ context.Context, name string) (*sql.DB, database.Dialect, error) {
	registryMu.Lock()
	ds, ok := registeredDataSources[name]
	registryMu.Unlock()
	if !ok {
		return nil, "", fmt.Errorf("data source %q is not registered", name)
	}
	return ds.db, ds.dialect, nil
}
