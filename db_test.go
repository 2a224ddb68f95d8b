package mediator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Metatavu/wso2-liquibase-mediator/database"
)

func TestResolveDriver(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		in          string
		wantDialect database.Dialect
		wantDriver  string
	}{
		{"postgres", database.DialectPostgres, "pgx"},
		{"pgx", database.DialectPostgres, "pgx"},
		{"redshift", database.DialectRedshift, "pgx"},
		{"mysql", database.DialectMySQL, "mysql"},
		{"mymysql", database.DialectMySQL, "mymysql"},
		{"tidb", database.DialectTiDB, "mysql"},
		{"sqlite3", database.DialectSQLite3, "sqlite"},
		{"sqlite", database.DialectSQLite3, "sqlite"},
		{"turso", database.DialectSQLite3, "libsql"},
		{"libsql", database.DialectSQLite3, "libsql"},
		{"mssql", database.DialectMSSQL, "sqlserver"},
		{"sqlserver", database.DialectMSSQL, "sqlserver"},
		{"azuresql", database.DialectMSSQL, "sqlserver"},
		{"clickhouse", database.DialectClickHouse, "clickhouse"},
		{"vertica", database.DialectVertica, "vertica"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			dialect, driver, err := resolveDriver(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.wantDialect, dialect)
			require.Equal(t, tc.wantDriver, driver)
		})
	}
}

func TestResolveDriverUnknown(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "oracle", "org.h2.Driver"} {
		_, _, err := resolveDriver(in)
		require.Error(t, err)
		var drvErr *DriverError
		require.ErrorAs(t, err, &drvErr)
		require.Equal(t, in, drvErr.Driver)
	}
}

func TestBuildDSN(t *testing.T) {
	t.Parallel()
	t.Run("no credentials passes through", func(t *testing.T) {
		t.Parallel()
		dsn, err := buildDSN("pgx", "postgres://localhost:5432/app", "", "")
		require.NoError(t, err)
		require.Equal(t, "postgres://localhost:5432/app", dsn)
	})
	t.Run("url credentials injected", func(t *testing.T) {
		t.Parallel()
		dsn, err := buildDSN("pgx", "postgres://localhost:5432/app?sslmode=disable", "u", "p")
		require.NoError(t, err)
		require.Equal(t, "postgres://u:p@localhost:5432/app?sslmode=disable", dsn)
	})
	t.Run("mysql dsn rewritten", func(t *testing.T) {
		t.Parallel()
		dsn, err := buildDSN("mysql", "tcp(localhost:3306)/app", "u", "p")
		require.NoError(t, err)
		require.Contains(t, dsn, "u:p@")
		require.Contains(t, dsn, "parseTime=true")
	})
	t.Run("mysql invalid dsn", func(t *testing.T) {
		t.Parallel()
		_, err := buildDSN("mysql", "no-slash-no-dsn", "u", "p")
		require.Error(t, err)
	})
	t.Run("plain path ignores credentials", func(t *testing.T) {
		t.Parallel()
		dsn, err := buildDSN("sqlite", "/var/db/app.db", "u", "p")
		require.NoError(t, err)
		require.Equal(t, "/var/db/app.db", dsn)
	})
}
