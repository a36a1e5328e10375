package semver

import (
	"errors"
	"fmt"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

var ErrEmptyConstraint = errors.New("semver: constraint has no matchers")

// Version is a parsed semantic version.
type Version struct {
	v *mm.Version
}

// Constraint is an ordered list of version matcher expressions.
// A version satisfies the constraint when it matches at least one of them.
type Constraint struct {
	raw      []string
	matchers []*mm.Constraints
}

func ParseVersion(raw string) (Version, error) {
	v, err := mm.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return Version{}, fmt.Errorf("semver: parse version %q: %w", raw, err)
	}
	return Version{v: v}, nil
}

func MustParseVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

func (v Version) IsZero() bool {
	return v.v == nil
}

// ParseConstraint parses one or more matcher expressions into a Constraint.
// An unparseable matcher fails the whole constraint.
func ParseConstraint(matchers ...string) (Constraint, error) {
	if len(matchers) == 0 {
		return Constraint{}, ErrEmptyConstraint
	}
	c := Constraint{
		raw:      make([]string, 0, len(matchers)),
		matchers: make([]*mm.Constraints, 0, len(matchers)),
	}
	for _, raw := range matchers {
		raw = strings.TrimSpace(raw)
		parsed, err := mm.NewConstraint(raw)
		if err != nil {
			return Constraint{}, fmt.Errorf("semver: parse constraint %q: %w", raw, err)
		}
		c.raw = append(c.raw, raw)
		c.matchers = append(c.matchers, parsed)
	}
	return c, nil
}

func MustParseConstraint(matchers ...string) Constraint {
	c, err := ParseConstraint(matchers...)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the comma-joined matcher list, the form reported in
// dependency errors.
func (c Constraint) String() string {
	return strings.Join(c.raw, ", ")
}

func (c Constraint) IsZero() bool {
	return len(c.matchers) == 0
}

// Satisfies reports whether v matches at least one matcher in c.
// Pure function of its inputs.
func Satisfies(v Version, c Constraint) bool {
	if v.v == nil || len(c.matchers) == 0 {
		return false
	}
	for _, m := range c.matchers {
		if m.Check(v.v) {
			return true
		}
	}
	return false
}

// Compare compares a and b, returning:
// -1 if a < b
//
//	0 if a == b
//	1 if a > b
func Compare(a, b Version) int {
	if a.v == nil && b.v == nil {
		return 0
	}
	if a.v == nil {
		return -1
	}
	if b.v == nil {
		return 1
	}
	return a.v.Compare(b.v)
}
