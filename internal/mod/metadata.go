package mod

import (
	"github.com/TheEpicBlock/quilt-loader/internal/semver"
)

// Dependency is one declared dependency edge from a manifest.
// Required dependencies abort the load when unsatisfied; optional ones
// only influence ordering and lazy promotion.
type Dependency struct {
	Ref        Identity
	Constraint semver.Constraint
	Required   bool
}

// SatisfiedBy reports whether m's identity matches the dependency
// reference and m's version satisfies the constraint. Matching compares
// whole ref strings so a dotted id lands on the same mod regardless of
// where the group/id split fell when the reference was parsed.
func (d Dependency) SatisfiedBy(m Metadata) bool {
	if d.Ref.Ref() != m.Ref() {
		return false
	}
	return semver.Satisfies(m.Version, d.Constraint)
}

// Mixins holds the extension-hook configuration names a mod contributes.
type Mixins struct {
	Client string
	Common string
}

// Metadata is the parsed manifest of one mod.
type Metadata struct {
	Group        string
	ID           string
	RawVersion   string
	Version      semver.Version
	Side         Side
	Lazy         bool
	Dependencies []Dependency
	Mixins       Mixins
}

func (m Metadata) Identity() Identity {
	return NewIdentity(m.Group, m.ID)
}

func (m Metadata) Ref() string {
	return m.Identity().Ref()
}
