package mediator

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/Metatavu/wso2-liquibase-mediator/database"
)

// resolveDriver maps a driver identifier from the request to the dialect used
// for the tracking store and the database/sql driver name to open. Consumers
// should not care which underlying driver implementation is used.
func resolveDriver(driver string) (database.Dialect, string, error) {
	dialect, err := database.ParseDialect(driver)
	if err != nil {
		return "", "", &DriverError{Driver: driver, Err: err}
	}
	switch driver {
	case "mssql", "azuresql":
		driver = "sqlserver"
	case "tidb":
		driver = "mysql"
	case "turso":
		driver = "libsql"
	case "sqlite3":
		// Internally uses the CGo-free port of SQLite: modernc.org/sqlite
		driver = "sqlite"
	case "postgres", "redshift":
		driver = "pgx"
	}
	switch driver {
	case "pgx", "sqlite", "mysql", "mymysql", "sqlserver", "clickhouse", "vertica", "libsql":
		return dialect, driver, nil
	default:
		return "", "", &DriverError{Driver: driver, Err: fmt.Errorf("unsupported driver")}
	}
}

// openDirect opens a direct connection for the request's driver and URL,
// injecting the request credentials into the connection string, and verifies
// it with a ping.
func openDirect(ctx context.Context, driver, dbstring, user, password string) (*sql.DB, database.Dialect, error) {
	dialect, driverName, err := resolveDriver(driver)
	if err != nil {
		return nil, "", err
	}
	dsn, err := buildDSN(driverName, dbstring, user, password)
	if err != nil {
		return nil, "", &ConnectionError{Err: err}
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, "", &ConnectionError{Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", &ConnectionError{Err: err}
	}
	return db, dialect, nil
}

// buildDSN injects user credentials into a connection string. MySQL DSNs are
// rewritten through the driver's own parser, which also forces parseTime so
// DATETIME columns scan into time.Time. URL-style strings get their userinfo
// replaced. Anything else (e.g. a sqlite file path) is passed through
// unchanged and ignores credentials.
func buildDSN(driverName, dbstring, user, password string) (string, error) {
	if user == "" && password == "" {
		return dbstring, nil
	}
	if driverName == "mysql" && !strings.Contains(dbstring, "://") {
		cfg, err := mysql.ParseDSN(dbstring)
		if err != nil {
			return "", fmt.Errorf("parse mysql dsn: %w", err)
		}
		cfg.User = user
		cfg.Passwd = password
		cfg.ParseTime = true
		return cfg.FormatDSN(), nil
	}
	if strings.Contains(dbstring, "://") {
		u, err := url.Parse(dbstring)
		if err != nil {
			return "", fmt.Errorf("parse connection url: %w", err)
		}
		u.User = url.UserPassword(user, password)
		return u.String(), nil
	}
	return dbstring, nil
}
