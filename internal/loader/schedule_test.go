package loader

import (
	"reflect"
	"testing"

	"github.com/TheEpicBlock/quilt-loader/internal/mod"
	"github.com/TheEpicBlock/quilt-loader/internal/semver"
	"github.com/TheEpicBlock/quilt-loader/internal/testutil/testlog"
)

func node(t *testing.T, ref, version string, deps map[string]string) *Container {
	t.Helper()
	ident, err := mod.ParseRef(ref)
	if err != nil {
		t.Fatalf("bad ref %q: %v", ref, err)
	}
	meta := mod.Metadata{
		Group:      ident.Group,
		ID:         ident.ID,
		RawVersion: version,
		Version:    semver.MustParseVersion(version),
	}
	for depRef, matcher := range deps {
		depIdent, err := mod.ParseRef(depRef)
		if err != nil {
			t.Fatalf("bad dep ref %q: %v", depRef, err)
		}
		meta.Dependencies = append(meta.Dependencies, mod.Dependency{
			Ref:        depIdent,
			Constraint: semver.MustParseConstraint(matcher),
			Required:   false,
		})
	}
	return &Container{Meta: meta}
}

func orderOf(mods []*Container) []string {
	out := make([]string, len(mods))
	for i, c := range mods {
		out[i] = c.Meta.Ref()
	}
	return out
}

func positions(mods []*Container) map[string]int {
	out := make(map[string]int, len(mods))
	for i, c := range mods {
		out[c.Meta.Ref()] = i
	}
	return out
}

func TestSortModsChain(t *testing.T) {
	testlog.Start(t)
	in := []*Container{
		node(t, "g.c", "1.0.0", map[string]string{"g.b": "*"}),
		node(t, "g.b", "1.0.0", map[string]string{"g.a": "*"}),
		node(t, "g.a", "1.0.0", nil),
	}

	got := orderOf(sortMods(in))
	want := []string{"g.a", "g.b", "g.c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order=%v, want %v", got, want)
	}
}

func TestSortModsIsPermutation(t *testing.T) {
	testlog.Start(t)
	in := []*Container{
		node(t, "g.a", "1.0.0", map[string]string{"g.b": "*", "g.c": "*"}),
		node(t, "g.b", "1.0.0", map[string]string{"g.c": "*"}),
		node(t, "g.c", "1.0.0", nil),
		node(t, "g.d", "1.0.0", nil),
	}

	got := sortMods(in)
	if len(got) != len(in) {
		t.Fatalf("not a permutation: %v", orderOf(got))
	}
	seen := map[string]bool{}
	for _, c := range got {
		if seen[c.Meta.Ref()] {
			t.Fatalf("duplicate in output: %v", orderOf(got))
		}
		seen[c.Meta.Ref()] = true
	}

	pos := positions(got)
	if pos["g.c"] > pos["g.b"] || pos["g.b"] > pos["g.a"] {
		t.Fatalf("dependency precedence violated: %v", orderOf(got))
	}
}

func TestSortModsStableForIndependentMods(t *testing.T) {
	testlog.Start(t)
	in := []*Container{
		node(t, "g.z", "1.0.0", nil),
		node(t, "g.m", "1.0.0", nil),
		node(t, "g.a", "1.0.0", nil),
	}

	got := orderOf(sortMods(in))
	want := []string{"g.z", "g.m", "g.a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("independent mods must keep admission order: %v", got)
	}
}

func TestSortModsCycleKeepsAdmissionOrder(t *testing.T) {
	testlog.Start(t)
	in := []*Container{
		node(t, "g.a", "1.0.0", map[string]string{"g.b": "*"}),
		node(t, "g.b", "1.0.0", map[string]string{"g.a": "*"}),
		node(t, "g.free", "1.0.0", nil),
	}

	got := orderOf(sortMods(in))
	want := []string{"g.free", "g.a", "g.b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("cycle tie-break wrong: got %v, want %v", got, want)
	}
}

func TestSortModsVersionGatedEdgeIgnored(t *testing.T) {
	testlog.Start(t)
	// g.a depends on g.b at >=2.0.0 which g.b does not satisfy; no edge,
	// so admission order is kept.
	in := []*Container{
		node(t, "g.a", "1.0.0", map[string]string{"g.b": ">=2.0.0"}),
		node(t, "g.b", "1.0.0", nil),
	}

	got := orderOf(sortMods(in))
	want := []string{"g.a", "g.b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unsatisfied edge must not order: got %v, want %v", got, want)
	}
}

func TestSortModsDeterministic(t *testing.T) {
	testlog.Start(t)
	build := func() []*Container {
		return []*Container{
			node(t, "g.d", "1.0.0", map[string]string{"g.a": "*", "g.b": "*"}),
			node(t, "g.b", "1.0.0", map[string]string{"g.a": "*"}),
			node(t, "g.c", "1.0.0", map[string]string{"g.a": "*"}),
			node(t, "g.a", "1.0.0", nil),
		}
	}

	first := orderOf(sortMods(build()))
	for i := 0; i < 5; i++ {
		if got := orderOf(sortMods(build())); !reflect.DeepEqual(got, first) {
			t.Fatalf("sort not deterministic: %v vs %v", first, got)
		}
	}
}
