package mediator

// Request carries the configuration for a single migration invocation. It is
// created fresh per invocation and discarded afterwards.
//
// The connection mode is selected by which fields are populated: a non-empty
// DataSource selects the pooled mode and the remaining connection fields are
// ignored; otherwise the direct mode is used and Driver, URL, User and
// Password are all required.
type Request struct {
	// ChangeLog is the changelog document text (XML). Always required.
	ChangeLog string

	// DataSource is the name of a data source previously registered with
	// [RegisterDataSource]. Selects the pooled connection mode.
	DataSource string

	// Driver is the database driver identifier, e.g. "postgres", "mysql",
	// "sqlite3". Required in direct mode.
	Driver string

	// URL is the database connection string. Required in direct mode.
	URL string

	// User and Password are the database credentials. Required in direct
	// mode. They override any credentials embedded in URL.
	User     string
	Password string
}

func (r Request) pooled() bool {
	return r.DataSource != ""
}

// validate checks every required field for the selected connection mode. It
// performs no I/O. The field order for direct mode matches the order the
// original pipeline component checked its settings in.
func (r Request) validate() error {
	if r.pooled() {
		if r.ChangeLog == "" {
			return &ConfigurationError{Field: "changeLog"}
		}
		return nil
	}
	if r.User == "" {
		return &ConfigurationError{Field: "user"}
	}
	if r.Password == "" {
		return &ConfigurationError{Field: "password"}
	}
	if r.URL == "" {
		return &ConfigurationError{Field: "url"}
	}
	if r.ChangeLog == "" {
		return &ConfigurationError{Field: "changeLog"}
	}
	if r.Driver == "" {
		return &ConfigurationError{Field: "driver"}
	}
	return nil
}
