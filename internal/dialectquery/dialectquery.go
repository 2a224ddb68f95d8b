package dialectquery

// Querier is the interface that wraps the basic methods to create a dialect
// specific query for the changelog tracking table.
type Querier interface {
	// CreateTable returns the SQL query string to create the changelog table.
	CreateTable(tableName string) string

	// InsertChangeset returns the SQL query string to record an applied
	// changeset. Parameters: id, author, checksum, contexts, orderexecuted.
	InsertChangeset(tableName string) string

	// DeleteChangeset returns the SQL query string to delete a changeset's
	// tracking row. Parameters: id, author.
	DeleteChangeset(tableName string) string

	// GetChangeset returns the SQL query string to get a single applied
	// changeset by id and author.
	//
	// The query should return the checksum, orderexecuted and tstamp columns.
	GetChangeset(tableName string) string

	// ListChangesets returns the SQL query string to list all applied
	// changesets in ascending order by orderexecuted.
	//
	// The query should return the id, author, checksum, orderexecuted and
	// tstamp columns.
	ListChangesets(tableName string) string
}
