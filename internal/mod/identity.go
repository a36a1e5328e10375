package mod

import (
	"fmt"
	"strings"
)

// Identity is the (group, id) pair naming a mod. Both parts are stored
// case-folded, so matching a manifest reference string against an
// identity is a plain comparison.
type Identity struct {
	Group string
	ID    string
}

func NewIdentity(group, id string) Identity {
	return Identity{
		Group: strings.ToLower(strings.TrimSpace(group)),
		ID:    strings.ToLower(strings.TrimSpace(id)),
	}
}

// ParseRef splits a "group.id" dependency reference. The id is the
// segment after the last dot; everything before it is the group.
func ParseRef(ref string) (Identity, error) {
	ref = strings.TrimSpace(ref)
	i := strings.LastIndex(ref, ".")
	if i <= 0 || i == len(ref)-1 {
		return Identity{}, fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return NewIdentity(ref[:i], ref[i+1:]), nil
}

// Ref returns the canonical "group.id" reference string.
func (id Identity) Ref() string {
	return id.Group + "." + id.ID
}

func (id Identity) IsZero() bool {
	return id.Group == "" && id.ID == ""
}
