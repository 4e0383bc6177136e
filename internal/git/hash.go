package git

import (
	"strings"

	"github.com/google/uuid"
)

// HashLength is the length of a simulated commit hash
const HashLength = 7

const maxHashAttempts = 32

// NewHash returns a short random token. It retries while taken reports a
// collision; taken may be nil.
func NewHash(taken func(string) bool) string {
	var hash string
	for range maxHashAttempts {
		hash = strings.ReplaceAll(uuid.NewString(), "-", "")[:HashLength]
		if taken == nil || !taken(hash) {
			return hash
		}
	}
	return hash
}
