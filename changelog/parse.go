package changelog

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mfridman/interpolate"
)

type xmlChangeLog struct {
	XMLName    xml.Name        `xml:"databaseChangeLog"`
	Properties []xmlProperty   `xml:"property"`
	ChangeSets []*xmlChangeSet `xml:"changeSet"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlChangeSet struct {
	ID               string       `xml:"id,attr"`
	Author           string       `xml:"author,attr"`
	Context          string       `xml:"context,attr"`
	RunInTransaction string       `xml:"runInTransaction,attr"`
	Comment          string       `xml:"comment"`
	SQL              []string     `xml:"sql"`
	Rollback         *xmlRollback `xml:"rollback"`
}

type xmlRollback struct {
	SQL []string `xml:"sql"`
}

// ParseFile reads and parses the changelog document at path.
func ParseFile(path string) (*ChangeLog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open changelog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a changelog document, validates changeset identities,
// substitutes ${name} property references in SQL and computes checksums.
func Parse(r io.Reader) (*ChangeLog, error) {
	var doc xmlChangeLog
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse changelog: %w", err)
	}

	properties := make(map[string]string, len(doc.Properties))
	for _, p := range doc.Properties {
		if p.Name == "" {
			return nil, fmt.Errorf("parse changelog: property with empty name")
		}
		properties[p.Name] = p.Value
	}
	env := propertyEnv{properties: properties}

	changelog := &ChangeLog{
		Properties: properties,
	}
	seen := make(map[string]bool, len(doc.ChangeSets))
	for i, x := range doc.ChangeSets {
		if x.ID == "" {
			return nil, fmt.Errorf("parse changelog: changeset %d: missing id attribute", i)
		}
		if x.Author == "" {
			return nil, fmt.Errorf("parse changelog: changeset %q: missing author attribute", x.ID)
		}
		identity := x.ID + ":" + x.Author
		if seen[identity] {
			return nil, fmt.Errorf("parse changelog: duplicate changeset %s", identity)
		}
		seen[identity] = true
		if len(x.SQL) == 0 {
			return nil, fmt.Errorf("parse changelog: changeset %s: no sql statements", identity)
		}

		cs := &ChangeSet{
			ID:               x.ID,
			Author:           x.Author,
			Context:          strings.TrimSpace(x.Context),
			Comment:          strings.TrimSpace(x.Comment),
			RunInTransaction: true,
			Checksum:         checksum(x.SQL),
		}
		if x.RunInTransaction != "" {
			inTx, err := strconv.ParseBool(x.RunInTransaction)
			if err != nil {
				return nil, fmt.Errorf("parse changelog: changeset %s: invalid runInTransaction attribute %q",
					identity, x.RunInTransaction)
			}
			cs.RunInTransaction = inTx
		}
		stmts, err := substitute(env, identity, x.SQL)
		if err != nil {
			return nil, err
		}
		if len(stmts) == 0 {
			return nil, fmt.Errorf("parse changelog: changeset %s: no sql statements", identity)
		}
		cs.SQL = stmts
		if x.Rollback != nil {
			rollback, err := substitute(env, identity, x.Rollback.SQL)
			if err != nil {
				return nil, err
			}
			// Whitespace-only rollback SQL is the same as no rollback block.
			if len(rollback) > 0 {
				cs.Rollback = rollback
			}
		}
		changelog.ChangeSets = append(changelog.ChangeSets, cs)
	}
	return changelog, nil
}

func substitute(env interpolate.Env, identity string, stmts []string) ([]string, error) {
	out := make([]string, 0, len(stmts))
	for _, s := range stmts {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		expanded, err := interpolate.Interpolate(env, s)
		if err != nil {
			return nil, fmt.Errorf("parse changelog: changeset %s: %w", identity, err)
		}
		out = append(out, expanded)
	}
	return out, nil
}

// propertyEnv resolves ${name} references from document properties first,
// falling back to the process environment.
type propertyEnv struct {
	properties map[string]string
}

var _ interpolate.Env = (*propertyEnv)(nil)

func (e propertyEnv) Get(key string) (string, bool) {
	if v, ok := e.properties[key]; ok {
		return v, true
	}
	return os.LookupEnv(key)
}
