package dialectquery

import "fmt"

type Sqlite3 struct{}

var _ Querier = (*Sqlite3)(nil)

func (s *Sqlite3) CreateTable(tableName string) string {
	q := `CREATE TABLE %s (
		id text NOT NULL,
		author text NOT NULL,
		checksum text NOT NULL,
		contexts text NULL,
		orderexecuted integer NOT NULL,
		tstamp timestamp DEFAULT (datetime('now'))
	)`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlite3) InsertChangeset(tableName string) string {
	q := `INSERT INTO %s (id, author, checksum, contexts, orderexecuted) VALUES (?, ?, ?, ?, ?)`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlite3) DeleteChangeset(tableName string) string {
	q := `DELETE FROM %s WHERE id=? AND author=?`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlite3) GetChangeset(tableName string) string {
	q := `SELECT checksum, orderexecuted, tstamp FROM %s WHERE id=? AND author=? ORDER BY tstamp DESC LIMIT 1`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlite3) ListChangesets(tableName string) string {
	q := `SELECT id, author, checksum, orderexecuted, tstamp FROM %s ORDER BY orderexecuted ASC`
	return fmt.Sprintf(q, tableName)
}
