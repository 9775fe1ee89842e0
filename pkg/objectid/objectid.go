// Package objectid generates and validates the 24-character hexadecimal
// identifiers exposed by the API.
package objectid

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var pattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// New returns the first 12 bytes of a UUIDv7 as hex. The leading 48 bits are
// a millisecond timestamp, so ids sort roughly by creation time.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return hex.EncodeToString(id[:12])
}

func Valid(id string) bool {
	return pattern.MatchString(id)
}

// Normalize returns id in the lowercase form New produces. Hex case is not
// significant, so ids match either way.
func Normalize(id string) (string, bool) {
	if !Valid(id) {
		return "", false
	}
	return strings.ToLower(id), true
}
