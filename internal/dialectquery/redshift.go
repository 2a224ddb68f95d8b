package dialectquery

import "fmt"

type Redshift struct{}

var _ Querier = (*Redshift)(nil)

func (r *Redshift) CreateTable(tableName string) string {
	q := `CREATE TABLE %s (
		id varchar(255) NOT NULL,
		author varchar(255) NOT NULL,
		checksum varchar(64) NOT NULL,
		contexts varchar(255) NULL,
		orderexecuted bigint NOT NULL,
		tstamp timestamp NULL default sysdate
	)`
	return fmt.Sprintf(q, tableName)
}

func (r *Redshift) InsertChangeset(tableName string) string {
	q := `INSERT INTO %s (id, author, checksum, contexts, orderexecuted) VALUES ($1, $2, $3, $4, $5)`
	return fmt.Sprintf(q, tableName)
}

func (r *Redshift) DeleteChangeset(tableName string) string {
	q := `DELETE FROM %s WHERE id=$1 AND author=$2`
	return fmt.Sprintf(q, tableName)
}

func (r *Redshift) GetChangeset(tableName string) string {
	q := `SELECT checksum, orderexecuted, tstamp FROM %s WHERE id=$1 AND author=$2 ORDER BY tstamp DESC LIMIT 1`
	return fmt.Sprintf(q, tableName)
}

func (r *Redshift) ListChangesets(tableName string) string {
	q := `SELECT id, author, checksum, orderexecuted, tstamp FROM %s ORDER BY orderexecuted ASC`
	return fmt.Sprintf(q, tableName)
}
