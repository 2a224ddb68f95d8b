package changelog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Metatavu/wso2-liquibase-mediator/changelog"
)

func TestParse(t *testing.T) {
	doc := `<databaseChangeLog>
	<property name="owner" value="app"/>
	<changeSet id="1" author="alice" context="main">
		<comment>users table</comment>
		<sql>CREATE TABLE ${owner}_users (id bigint)</sql>
		<rollback>
			<sql>DROP TABLE ${owner}_users</sql>
		</rollback>
	</changeSet>
	<changeSet id="2" author="bob" context="main,staging" runInTransaction="false">
		<sql>CREATE INDEX idx_users ON app_users (id)</sql>
		<sql>CREATE TABLE audit (id bigint)</sql>
	</changeSet>
</databaseChangeLog>`

	parsed, err := changelog.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, map[string]string{"owner": "app"}, parsed.Properties)
	require.Len(t, parsed.ChangeSets, 2)

	first := parsed.ChangeSets[0]
	require.Equal(t, "1", first.ID)
	require.Equal(t, "alice", first.Author)
	require.Equal(t, "main", first.Context)
	require.Equal(t, "users table", first.Comment)
	require.True(t, first.RunInTransaction)
	require.Equal(t, []string{"CREATE TABLE app_users (id bigint)"}, first.SQL)
	require.Equal(t, []string{"DROP TABLE app_users"}, first.Rollback)
	require.NotEmpty(t, first.Checksum)

	second := parsed.ChangeSets[1]
	require.False(t, second.RunInTransaction)
	require.Len(t, second.SQL, 2)
	require.Empty(t, second.Rollback)
}

func TestParseEnvironmentFallback(t *testing.T) {
	t.Setenv("CHANGELOG_TEST_SCHEMA", "reporting")
	doc := `<databaseChangeLog>
	<changeSet id="1" author="alice">
		<sql>CREATE TABLE ${CHANGELOG_TEST_SCHEMA}.events (id bigint)</sql>
	</changeSet>
</databaseChangeLog>`
	parsed, err := changelog.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, "CREATE TABLE reporting.events (id bigint)", parsed.ChangeSets[0].SQL[0])
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		desc string
		doc  string
		want string
	}{
		{
			desc: "not xml",
			doc:  "not xml at all",
			want: "parse changelog",
		},
		{
			desc: "missing id",
			doc:  `<databaseChangeLog><changeSet author="a"><sql>SELECT 1</sql></changeSet></databaseChangeLog>`,
			want: "missing id",
		},
		{
			desc: "missing author",
			doc:  `<databaseChangeLog><changeSet id="1"><sql>SELECT 1</sql></changeSet></databaseChangeLog>`,
			want: "missing author",
		},
		{
			desc: "duplicate identity",
			doc: `<databaseChangeLog>
				<changeSet id="1" author="a"><sql>SELECT 1</sql></changeSet>
				<changeSet id="1" author="a"><sql>SELECT 2</sql></changeSet>
			</databaseChangeLog>`,
			want: "duplicate changeset 1:a",
		},
		{
			desc: "no statements",
			doc:  `<databaseChangeLog><changeSet id="1" author="a"></changeSet></databaseChangeLog>`,
			want: "no sql statements",
		},
		{
			desc: "whitespace-only statements",
			doc: `<databaseChangeLog><changeSet id="1" author="a"><sql>
			</sql></changeSet></databaseChangeLog>`,
			want: "no sql statements",
		},
		{
			desc: "invalid runInTransaction",
			doc:  `<databaseChangeLog><changeSet id="1" author="a" runInTransaction="maybe"><sql>SELECT 1</sql></changeSet></databaseChangeLog>`,
			want: "invalid runInTransaction",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			_, err := changelog.Parse(strings.NewReader(tc.doc))
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseEmptyRollback(t *testing.T) {
	t.Parallel()
	// An empty rollback block and one holding only whitespace both mean the
	// changeset has no rollback.
	for _, rollback := range []string{
		`<rollback/>`,
		`<rollback><sql>
		</sql></rollback>`,
	} {
		doc := `<databaseChangeLog>
	<changeSet id="1" author="a">
		<sql>CREATE TABLE t (id bigint)</sql>
		` + rollback + `
	</changeSet>
</databaseChangeLog>`
		parsed, err := changelog.Parse(strings.NewReader(doc))
		require.NoError(t, err)
		require.Empty(t, parsed.ChangeSets[0].Rollback)
	}
}

func TestChecksum(t *testing.T) {
	t.Parallel()
	parse := func(t *testing.T, doc string) *changelog.ChangeSet {
		t.Helper()
		parsed, err := changelog.Parse(strings.NewReader(doc))
		require.NoError(t, err)
		require.Len(t, parsed.ChangeSets, 1)
		return parsed.ChangeSets[0]
	}
	base := `<databaseChangeLog>
	<property name="owner" value="app"/>
	<changeSet id="1" author="a"><sql>CREATE TABLE ${owner}_t (id bigint)</sql></changeSet>
</databaseChangeLog>`
	// Same document, stable checksum.
	require.Equal(t, parse(t, base).Checksum, parse(t, base).Checksum)

	// A different property value changes the substituted SQL but not the
	// checksum, which digests the raw statements.
	other := strings.Replace(base, `value="app"`, `value="dwh"`, 1)
	cs := parse(t, other)
	require.Equal(t, "CREATE TABLE dwh_t (id bigint)", cs.SQL[0])
	require.Equal(t, parse(t, base).Checksum, cs.Checksum)

	// Changing the statement itself changes the checksum.
	changed := strings.Replace(base, "id bigint", "id integer", 1)
	require.NotEqual(t, parse(t, base).Checksum, parse(t, changed).Checksum)
}

func TestMatchesContext(t *testing.T) {
	t.Parallel()
	cs := &changelog.ChangeSet{Context: "main, staging"}
	require.True(t, cs.MatchesContext("main"))
	require.True(t, cs.MatchesContext("staging"))
	require.False(t, cs.MatchesContext("production"))

	always := &changelog.ChangeSet{}
	require.True(t, always.MatchesContext("anything"))
}
