package loader

import (
	"fmt"
	"strings"

	"github.com/TheEpicBlock/quilt-loader/internal/mod"
)

// UnsatisfiedDependency identifies one required dependency no active mod
// satisfies.
type UnsatisfiedDependency struct {
	Mod        mod.Identity
	Ref        string
	Constraint string
}

func (u UnsatisfiedDependency) String() string {
	return fmt.Sprintf("mod %s requires dependency %s @ %s", u.Mod.Ref(), u.Ref, u.Constraint)
}

// DependencyError is the single fatal load error: one or more required
// dependencies of active mods are unsatisfied. It is raised after the
// active set is known and before any mod is initialized.
type DependencyError struct {
	Unsatisfied []UnsatisfiedDependency
}

func (e *DependencyError) Error() string {
	parts := make([]string, len(e.Unsatisfied))
	for i, u := range e.Unsatisfied {
		parts[i] = u.String()
	}
	return "loader: " + strings.Join(parts, "; ")
}
