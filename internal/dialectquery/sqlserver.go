package dialectquery

import "fmt"

type Sqlserver struct{}

var _ Querier = (*Sqlserver)(nil)

func (s *Sqlserver) CreateTable(tableName string) string {
	q := `CREATE TABLE %s (
		id NVARCHAR(255) NOT NULL,
		author NVARCHAR(255) NOT NULL,
		checksum NVARCHAR(64) NOT NULL,
		contexts NVARCHAR(255) NULL,
		orderexecuted BIGINT NOT NULL,
		tstamp DATETIME NULL DEFAULT CURRENT_TIMESTAMP
	)`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlserver) InsertChangeset(tableName string) string {
	q := `INSERT INTO %s (id, author, checksum, contexts, orderexecuted) VALUES (@p1, @p2, @p3, @p4, @p5)`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlserver) DeleteChangeset(tableName string) string {
	q := `DELETE FROM %s WHERE id=@p1 AND author=@p2`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlserver) GetChangeset(tableName string) string {
	q := `SELECT TOP 1 checksum, orderexecuted, tstamp FROM %s WHERE id=@p1 AND author=@p2 ORDER BY tstamp DESC`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlserver) ListChangesets(tableName string) string {
	q := `SELECT id, author, checksum, orderexecuted, tstamp FROM %s ORDER BY orderexecuted ASC`
	return fmt.Sprintf(q, tableName)
}
