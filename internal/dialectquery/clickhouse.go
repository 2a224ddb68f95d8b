package dialectquery

import "fmt"

type Clickhouse struct{}

var _ Querier = (*Clickhouse)(nil)

func (c *Clickhouse) CreateTable(tableName string) string {
	q := `CREATE TABLE IF NOT EXISTS %s (
		id String,
		author String,
		checksum String,
		contexts String,
		orderexecuted Int64,
		tstamp DateTime64(9, 'UTC') default now64(9, 'UTC')
	)
	ENGINE = MergeTree()
	ORDER BY (orderexecuted)`
	return fmt.Sprintf(q, tableName)
}

func (c *Clickhouse) InsertChangeset(tableName string) string {
	q := `INSERT INTO %s (id, author, checksum, contexts, orderexecuted) VALUES ($1, $2, $3, $4, $5)`
	return fmt.Sprintf(q, tableName)
}

func (c *Clickhouse) DeleteChangeset(tableName string) string {
	q := `ALTER TABLE %s DELETE WHERE id = $1 AND author = $2 SETTINGS mutations_sync = 2`
	return fmt.Sprintf(q, tableName)
}

func (c *Clickhouse) GetChangeset(tableName string) string {
	q := `SELECT checksum, orderexecuted, tstamp FROM %s WHERE id = $1 AND author = $2 ORDER BY tstamp DESC LIMIT 1`
	return fmt.Sprintf(q, tableName)
}

func (c *Clickhouse) ListChangesets(tableName string) string {
	q := `SELECT id, author, checksum, orderexecuted, tstamp FROM %s ORDER BY orderexecuted ASC`
	return fmt.Sprintf(q, tableName)
}
