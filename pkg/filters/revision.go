package filters

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/agentstation/utc"
)

// Revision is one list's persisted revision state (revision.json).
// TimeUpdated moves only when the content hash moves.
type Revision struct {
	TimeUpdated utc.Time `json:"timeUpdated" yaml:"timeUpdated"` // Last content change
	Hash        string   `json:"hash" yaml:"hash"`               // Hash of the normalized compiled content
}

// Volatile comment stamps excluded from hashing. Compilers rewrite these on
// every run even when the rule content is identical.
var volatilePrefixes = []string{
	"! Last modified:",
	"# Last modified:",
}

// Sum hashes compiled content with volatile lines removed, so recompiling
// identical rules always yields the same hash.
func Sum(content []byte) string {
	lines := strings.Split(string(content), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if isVolatile(line) {
			continue
		}
		kept = append(kept, strings.TrimRight(line, "\r"))
	}

	digest := sha256.Sum256([]byte(strings.Join(kept, "\n")))
	return hex.EncodeToString(digest[:])
}

// isVolatile reports whether a line is a timestamp stamp to ignore.
func isVolatile(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range volatilePrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// Decide produces the next revision for a list. The timestamp carries over
// unchanged unless the hash differs from the previous record; a missing
// previous record counts as changed. Pure: no clock, no I/O.
func Decide(previous *Revision, hash string, now utc.Time) (Revision, bool) {
	if previous == nil || previous.Hash != hash {
		return Revision{TimeUpdated: now, Hash: hash}, true
	}
	return Revision{TimeUpdated: previous.TimeUpdated, Hash: hash}, false
}
