package datasource

import (
	"fmt"
	"strings"
)

// BackendPreference fixes which persistent backends are consulted and in
// which order.
type BackendPreference int

const (
	RelationalThenDocument BackendPreference = iota
	RelationalOnly
	DocumentOnly
)

func (p BackendPreference) String() string {
	switch p {
	case RelationalOnly:
		return "relational"
	case DocumentOnly:
		return "document"
	default:
		return "relational_then_document"
	}
}

// ParsePreference accepts the names produced by String. Empty input selects
// RelationalThenDocument.
func ParsePreference(s string) (BackendPreference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "relational_then_document", "both":
		return RelationalThenDocument, nil
	case "relational":
		return RelationalOnly, nil
	case "document":
		return DocumentOnly, nil
	}
	return 0, fmt.Errorf("unknown backend preference %q (want relational, document or relational_then_document)", s)
}

func (p BackendPreference) usesRelational() bool { return p != DocumentOnly }
func (p BackendPreference) usesDocument() bool   { return p != RelationalOnly }
