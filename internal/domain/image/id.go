package image

import (
	"regexp"

	"github.com/google/uuid"
)

// Canonical 36-character hyphenated form only. uuid.Parse alone would also
// accept braces and urn: prefixes.
var idPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ParseID validates and parses a record identifier.
func ParseID(raw string) (uuid.UUID, error) {
	if !idPattern.MatchString(raw) {
		return uuid.Nil, ErrInvalidID
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}
