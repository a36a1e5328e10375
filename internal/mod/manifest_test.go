package mod

import (
	"errors"
	"testing"

	"github.com/TheEpicBlock/quilt-loader/internal/semver"
)

func TestParseManifestObject(t *testing.T) {
	doc := []byte(`{
		"group": "Example",
		"id": "Core",
		"version": "1.2.0",
		"side": "client",
		"lazy": true,
		"dependencies": {
			"example.base": ">=1.0.0"
		},
		"recommends": {
			"example.extras": "^2.0.0"
		},
		"mixins": {
			"client": "core.client.json",
			"common": "core.common.json"
		}
	}`)

	mods, err := ParseManifest(doc)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if len(mods) != 1 {
		t.Fatalf("expected 1 mod, got %d", len(mods))
	}

	m := mods[0]
	if m.Ref() != "example.core" {
		t.Fatalf("identity not case-folded: %q", m.Ref())
	}
	if m.Side != SideClient {
		t.Fatalf("side=%v, want client", m.Side)
	}
	if !m.Lazy {
		t.Fatalf("lazy flag lost")
	}
	if m.Mixins.Client != "core.client.json" || m.Mixins.Common != "core.common.json" {
		t.Fatalf("mixins wrong: %+v", m.Mixins)
	}
	if len(m.Dependencies) != 2 {
		t.Fatalf("expected 2 dependencies, got %d", len(m.Dependencies))
	}
	if !m.Dependencies[0].Required {
		t.Fatalf("dependencies block entries must default to required")
	}
	if m.Dependencies[1].Required {
		t.Fatalf("recommends block entries must be optional")
	}
}

func TestParseManifestArray(t *testing.T) {
	doc := []byte(`[
		{"group": "g", "id": "a", "version": "1.0.0"},
		{"group": "g", "id": "b", "version": "2.0.0"}
	]`)

	mods, err := ParseManifest(doc)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if len(mods) != 2 {
		t.Fatalf("expected 2 mods, got %d", len(mods))
	}
	if mods[0].Ref() != "g.a" || mods[1].Ref() != "g.b" {
		t.Fatalf("mods out of document order: %q, %q", mods[0].Ref(), mods[1].Ref())
	}
}

func TestParseManifestDefaults(t *testing.T) {
	mods, err := ParseManifest([]byte(`{"group": "g", "id": "a", "version": "1.0.0"}`))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	m := mods[0]
	if m.Side != SideBoth {
		t.Fatalf("side must default to both, got %v", m.Side)
	}
	if m.Lazy {
		t.Fatalf("lazy must default to false")
	}
	if len(m.Dependencies) != 0 {
		t.Fatalf("expected no dependencies, got %d", len(m.Dependencies))
	}
}

func TestParseManifestMissingFields(t *testing.T) {
	cases := []struct {
		name  string
		doc   string
		field string
	}{
		{"group", `{"id": "a", "version": "1.0.0"}`, "group"},
		{"id", `{"group": "g", "version": "1.0.0"}`, "id"},
		{"version", `{"group": "g", "id": "a"}`, "version"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tc.doc))
			var merr *ManifestError
			if !errors.As(err, &merr) {
				t.Fatalf("expected ManifestError, got %v", err)
			}
			if merr.Field != tc.field {
				t.Fatalf("error names field %q, want %q", merr.Field, tc.field)
			}
		})
	}
}

func TestParseManifestRejectsNonObjectDocuments(t *testing.T) {
	for _, doc := range []string{`"hello"`, `42`, `[1, 2]`, `{not json`} {
		var merr *ManifestError
		if _, err := ParseManifest([]byte(doc)); !errors.As(err, &merr) {
			t.Fatalf("doc %q: expected ManifestError, got %v", doc, err)
		}
	}
}

func TestParseManifestBadVersionIsFatalToManifest(t *testing.T) {
	if _, err := ParseManifest([]byte(`{"group": "g", "id": "a", "version": "banana"}`)); err == nil {
		t.Fatalf("expected version parse error")
	}
	doc := `{"group": "g", "id": "a", "version": "1.0.0", "dependencies": {"g.b": "%%%"}}`
	if _, err := ParseManifest([]byte(doc)); err == nil {
		t.Fatalf("expected constraint parse error")
	}
}

func TestParseManifestDependencyForms(t *testing.T) {
	doc := []byte(`{
		"group": "g", "id": "a", "version": "1.0.0",
		"dependencies": {
			"g.str": ">=1.0.0",
			"g.list": ["~1.0.0", ">=2.5.0"],
			"g.obj": {"versions": "^3.0.0", "required": false},
			"g.ver": {"version": ">=2.0.0"},
			"g.bare": {}
		}
	}`)
	mods, err := ParseManifest(doc)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	deps := mods[0].Dependencies
	if len(deps) != 5 {
		t.Fatalf("expected 5 deps, got %d", len(deps))
	}

	byRef := map[string]Dependency{}
	for _, d := range deps {
		byRef[d.Ref.Ref()] = d
	}

	list := byRef["g.list"]
	if !semver.Satisfies(semver.MustParseVersion("1.0.5"), list.Constraint) ||
		!semver.Satisfies(semver.MustParseVersion("2.6.0"), list.Constraint) ||
		semver.Satisfies(semver.MustParseVersion("2.0.0"), list.Constraint) {
		t.Fatalf("matcher list must be a logical OR")
	}
	if byRef["g.obj"].Required {
		t.Fatalf("object form required=false not honored")
	}
	ver := byRef["g.ver"]
	if semver.Satisfies(semver.MustParseVersion("1.0.0"), ver.Constraint) {
		t.Fatalf("singular version key must gate the version, not widen to any")
	}
	if !semver.Satisfies(semver.MustParseVersion("2.1.0"), ver.Constraint) {
		t.Fatalf("singular version key constraint lost")
	}
	if !byRef["g.bare"].Required {
		t.Fatalf("object form must default to required")
	}
	if !semver.Satisfies(semver.MustParseVersion("99.0.0"), byRef["g.bare"].Constraint) {
		t.Fatalf("missing versions must mean any version")
	}
}

func TestParseManifestInvalidDependencyRef(t *testing.T) {
	doc := `{"group": "g", "id": "a", "version": "1.0.0", "dependencies": {"noseparator": "*"}}`
	if _, err := ParseManifest([]byte(doc)); !errors.Is(err, ErrInvalidRef) {
		t.Fatalf("expected ErrInvalidRef, got %v", err)
	}
}

func TestParseManifestInvalidSide(t *testing.T) {
	doc := `{"group": "g", "id": "a", "version": "1.0.0", "side": "gpu"}`
	if _, err := ParseManifest([]byte(doc)); !errors.Is(err, ErrInvalidSide) {
		t.Fatalf("expected ErrInvalidSide, got %v", err)
	}
}
