package dialectquery

import "fmt"

type Tidb struct{}

var _ Querier = (*Tidb)(nil)

func (t *Tidb) CreateTable(tableName string) string {
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

func (t *Tidb) InsertChangeset(tableName string) string {
	q := `INSERT INTO %s (id, author, checksum, contexts, orderexecuted) VALUES (?, ?, ?, ?, ?)`
	return fmt.Sprintf(q, tableName)
}

func (t *Tidb) DeleteChangeset(tableName string) string {
	q := `DELETE FROM %s WHERE id=? AND author=?`
	return fmt.Sprintf(q, tableName)
}

func (t *Tidb) GetChangeset(tableName string) string {
	q := `SELECT checksum, orderexecuted, tstamp FROM %s WHERE id=? AND author=? ORDER BY tstamp DESC LIMIT 1`
	return fmt.Sprintf(q, tableName)
}

func (t *Tidb) ListChangesets(tableName string) string {
	q := `SELECT id, author, checksum, orderexecuted, tstamp FROM %s ORDER BY orderexecuted ASC`
	return fmt.Sprintf(q, tableName)
}
