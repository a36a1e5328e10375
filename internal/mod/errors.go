package mod

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRef  = errors.New("mod: invalid dependency reference")
	ErrInvalidSide = errors.New("mod: invalid side")
)

// ManifestError reports a manifest document that is syntactically valid
// JSON but semantically incomplete or malformed. Recoverable per source:
// the source contributes zero candidates and the scan continues.
type ManifestError struct {
	Field  string
	Reason string
}

func (e *ManifestError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("mod: manifest field %q %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("mod: manifest %s", e.Reason)
}
