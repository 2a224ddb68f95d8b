package changelog

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"strings"
)

// checksum digests the raw statements of a changeset, one per line, with
// surrounding whitespace stripped. Substituted property values are
// deliberately excluded so that re-parsing with a different environment does
// not change a changeset's identity.
func checksum(stmts []string) string {
	h := md5.New()
	for _, s := range stmts {
		io.WriteString(h, strings.TrimSpace(s))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
