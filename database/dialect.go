package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Metatavu/wso2-liquibase-mediator/internal/dialectquery"
)

// Dialect is the type of database dialect.
type Dialect string

const (
	DialectClickHouse Dialect = "clickhouse"
	DialectMSSQL      Dialect = "mssql"
	DialectMySQL      Dialect = "mysql"
	DialectPostgres   Dialect = "postgres"
	DialectRedshift   Dialect = "redshift"
	DialectSQLite3    Dialect = "sqlite3"
	DialectTiDB       Dialect = "tidb"
	DialectVertica    Dialect = "vertica"
)

// DefaultTablename is the default name of the changelog tracking table.
const DefaultTablename = "databasechangelog"

// ParseDialect returns the [Dialect] for the given string, accepting the
// common driver-name spellings as aliases.
func ParseDialect(s string) (Dialect, error) {
	switch s {
	case "clickhouse":
		return DialectClickHouse, nil
	case "mssql", "sqlserver", "azuresql":
		return DialectMSSQL, nil
	case "mysql", "mymysql":
		return DialectMySQL, nil
	case "postgres", "pgx":
		return DialectPostgres, nil
	case "redshift":
		return DialectRedshift, nil
	case "sqlite3", "sqlite", "turso", "libsql":
		return DialectSQLite3, nil
	case "tidb":
		return DialectTiDB, nil
	case "vertica":
		return DialectVertica, nil
	default:
		return "", fmt.Errorf("unknown dialect: %q", s)
	}
}

// NewStore returns a new [Store] backed by the given dialect.
func NewStore(dialect Dialect, tablename string) (Store, error) {
	if tablename == "" {
		return nil, errors.New("tablename must not be empty")
	}
	if dialect == "" {
		return nil, errors.New("dialect must not be empty")
	}
	lookup := map[Dialect]dialectquery.Querier{
		DialectClickHouse: &dialectquery.Clickhouse{},
		DialectMSSQL:      &dialectquery.Sqlserver{},
		DialectMySQL:      &dialectquery.Mysql{},
		DialectPostgres:   &dialectquery.Postgres{},
		DialectRedshift:   &dialectquery.Redshift{},
		DialectSQLite3:    &dialectquery.Sqlite3{},
		DialectTiDB:       &dialectquery.Tidb{},
		DialectVertica:    &dialectquery.Vertica{},
	}
	querier, ok := lookup[dialect]
	if !ok {
		return nil, fmt.Errorf("unknown dialect: %q", dialect)
	}
	return &store{
		tablename: tablename,
		querier:   querier,
	}, nil
}

type store struct {
	tablename string
	querier   dialectquery.Querier
}

var _ Store = (*store)(nil)

func (s *store) Tablename() string {
	return s.tablename
}

func (s *store) CreateChangelogTable(ctx context.Context, db DBTxConn) error {
	q := s.querier.CreateTable(s.tablename)
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("failed to create changelog table %q: %w", s.tablename, err)
	}
	return nil
}

func (s *store) InsertApplied(ctx context.Context, db DBTxConn, req InsertRequest) error {
	q := s.querier.InsertChangeset(s.tablename)
	if _, err := db.ExecContext(ctx, q,
		req.ID, req.Author, req.Checksum, req.Contexts, req.OrderExecuted,
	); err != nil {
		return fmt.Errorf("failed to insert changeset %s:%s: %w", req.ID, req.Author, err)
	}
	return nil
}

func (s *store) Delete(ctx context.Context, db DBTxConn, id, author string) error {
	q := s.querier.DeleteChangeset(s.tablename)
	if _, err := db.ExecContext(ctx, q, id, author); err != nil {
		return fmt.Errorf("failed to delete changeset %s:%s: %w", id, author, err)
	}
	return nil
}

func (s *store) GetApplied(
	ctx context.Context,
	db DBTxConn,
	id, author string,
) (*GetAppliedResult, error) {
	q := s.querier.GetChangeset(s.tablename)
	var result GetAppliedResult
	err := db.QueryRowContext(ctx, q, id, author).Scan(
		&result.Checksum,
		&result.OrderExecuted,
		&result.Timestamp,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChangesetNotFound
		}
		return nil, fmt.Errorf("failed to get changeset %s:%s: %w", id, author, err)
	}
	return &result, nil
}

func (s *store) ListApplied(ctx context.Context, db DBTxConn) ([]*ListAppliedResult, error) {
	q := s.querier.ListChangesets(s.tablename)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list applied changesets: %w", err)
	}
	defer rows.Close()

	var applied []*ListAppliedResult
	for rows.Next() {
		var result ListAppliedResult
		if err := rows.Scan(
			&result.ID,
			&result.Author,
			&result.Checksum,
			&result.OrderExecuted,
			&result.Timestamp,
		); err != nil {
			return nil, err
		}
		applied = append(applied, &result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return applied, nil
}
