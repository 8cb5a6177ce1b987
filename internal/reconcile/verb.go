package reconcile

import (
	"strings"

	"github.com/pkg/errors"
)

// Verb names a change operation.
type Verb string

const (
	// VerbAdd merges records into the published RRset.
	VerbAdd Verb = "add"
	// VerbUpdate replaces the RRset.
	VerbUpdate Verb = "update"
	// VerbRemove deletes the RRset.
	VerbRemove Verb = "remove"
)

// Verbs lists every known verb.
var Verbs = []Verb{VerbAdd, VerbUpdate, VerbRemove} //nolint:gochecknoglobals

// ParseVerb is case insensitive.
func ParseVerb(s string) (Verb, error) {
	v := Verb(strings.ToLower(strings.TrimSpace(s)))

	switch v {
	case VerbAdd, VerbUpdate, VerbRemove:
		return v, nil
	default:
		return "", errors.Wrapf(ErrUnknownVerb, "%q", s)
	}
}
