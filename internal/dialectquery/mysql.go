package dialectquery

import "fmt"

type Mysql struct{}

var _ Querier = (*Mysql)(nil)

func (m *Mysql) CreateTable(tableName string) string {
	q := `CREATE TABLE %s (
		id varchar(255) NOT NULL,
		author varchar(255) NOT NULL,
		checksum varchar(64) NOT NULL,
		contexts varchar(255) NULL,
		orderexecuted bigint NOT NULL,
		tstamp timestamp NULL default now()
	)`
	return fmt.Sprintf(q, tableName)
}

func (m *Mysql) InsertChangeset(tableName string) string {
	q := `INSERT INTO %s (id, author, checksum, contexts, orderexecuted) VALUES (?, ?, ?, ?, ?)`
	return fmt.Sprintf(q, tableName)
}

func (m *Mysql) DeleteChangeset(tableName string) string {
	q := `DELETE FROM %s WHERE id=? AND author=?`
	return fmt.Sprintf(q, tableName)
}

func (m *Mysql) GetChangeset(tableName string) string {
	q := `SELECT checksum, orderexecuted, tstamp FROM %s WHERE id=? AND author=? ORDER BY tstamp DESC LIMIT 1`
	return fmt.Sprintf(q, tableName)
}

func (m *Mysql) ListChangesets(tableName string) string {
	q := `SELECT id, author, checksum, orderexecuted, tstamp FROM %s ORDER BY orderexecuted ASC`
	return fmt.Sprintf(q, tableName)
}
