package mod

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/TheEpicBlock/quilt-loader/internal/semver"
)

// ManifestName is the fixed manifest filename looked up inside mod
// archives and at the root of classpath source directories.
const ManifestName = "quilt.mod.json"

// ParseManifest parses a manifest document into zero or more Metadata
// values. The document is either a single mod object or an array of
// mod objects.
func ParseManifest(data []byte) ([]Metadata, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ManifestError{Reason: "is not valid JSON"}
	}
	doc := gjson.ParseBytes(data)
	switch {
	case doc.IsObject():
		m, err := parseMod(doc)
		if err != nil {
			return nil, err
		}
		return []Metadata{m}, nil
	case doc.IsArray():
		var (
			mods []Metadata
			err  error
		)
		doc.ForEach(func(_, el gjson.Result) bool {
			if !el.IsObject() {
				err = &ManifestError{Reason: "array entries must be objects"}
				return false
			}
			var m Metadata
			if m, err = parseMod(el); err != nil {
				return false
			}
			mods = append(mods, m)
			return true
		})
		if err != nil {
			return nil, err
		}
		return mods, nil
	default:
		return nil, &ManifestError{Reason: "must be a JSON object or array of objects"}
	}
}

func parseMod(doc gjson.Result) (Metadata, error) {
	group := strings.TrimSpace(doc.Get("group").String())
	if group == "" {
		return Metadata{}, &ManifestError{Field: "group", Reason: "is required"}
	}
	id := strings.TrimSpace(doc.Get("id").String())
	if id == "" {
		return Metadata{}, &ManifestError{Field: "id", Reason: "is required"}
	}
	rawVersion := strings.TrimSpace(doc.Get("version").String())
	if rawVersion == "" {
		return Metadata{}, &ManifestError{Field: "version", Reason: "is required"}
	}
	version, err := semver.ParseVersion(rawVersion)
	if err != nil {
		return Metadata{}, err
	}

	side := SideBoth
	if s := doc.Get("side"); s.Exists() {
		if side, err = ParseSide(s.String()); err != nil {
			return Metadata{}, err
		}
	}

	deps, err := parseDependencyBlock(doc.Get("dependencies"), "dependencies", true)
	if err != nil {
		return Metadata{}, err
	}
	recommends, err := parseDependencyBlock(doc.Get("recommends"), "recommends", false)
	if err != nil {
		return Metadata{}, err
	}

	return Metadata{
		Group:        group,
		ID:           id,
		RawVersion:   rawVersion,
		Version:      version,
		Side:         side,
		Lazy:         doc.Get("lazy").Bool(),
		Dependencies: append(deps, recommends...),
		Mixins: Mixins{
			Client: strings.TrimSpace(doc.Get("mixins.client").String()),
			Common: strings.TrimSpace(doc.Get("mixins.common").String()),
		},
	}, nil
}

func parseDependencyBlock(node gjson.Result, field string, requiredDefault bool) ([]Dependency, error) {
	if !node.Exists() {
		return nil, nil
	}
	if !node.IsObject() {
		return nil, &ManifestError{Field: field, Reason: "must be an object keyed by dependency reference"}
	}
	var (
		deps []Dependency
		err  error
	)
	node.ForEach(func(key, value gjson.Result) bool {
		var d Dependency
		if d, err = parseDependency(key.String(), value, requiredDefault); err != nil {
			return false
		}
		deps = append(deps, d)
		return true
	})
	if err != nil {
		return nil, err
	}
	return deps, nil
}

// parseDependency accepts three value forms for a dependency entry:
// a single matcher string, an array of matcher strings (logical OR),
// or an object {"version"|"versions": ..., "required": bool}.
func parseDependency(ref string, value gjson.Result, requiredDefault bool) (Dependency, error) {
	ident, err := ParseRef(ref)
	if err != nil {
		return Dependency{}, err
	}

	required := requiredDefault
	var matchers []string
	switch {
	case value.Type == gjson.String:
		matchers = []string{value.String()}
	case value.IsArray():
		for _, el := range value.Array() {
			matchers = append(matchers, el.String())
		}
	case value.IsObject():
		matchers = matcherList(value.Get("versions"))
		if len(matchers) == 0 {
			matchers = matcherList(value.Get("version"))
		}
		if r := value.Get("required"); r.Exists() {
			required = r.Bool()
		}
	default:
		return Dependency{}, &ManifestError{Field: ref, Reason: "has an unsupported dependency form"}
	}
	if len(matchers) == 0 {
		matchers = []string{"*"}
	}

	constraint, err := semver.ParseConstraint(matchers...)
	if err != nil {
		return Dependency{}, err
	}
	return Dependency{Ref: ident, Constraint: constraint, Required: required}, nil
}

func matcherList(node gjson.Result) []string {
	switch {
	case node.IsArray():
		var out []string
		for _, el := range node.Array() {
			out = append(out, el.String())
		}
		return out
	case node.Exists():
		return []string{node.String()}
	default:
		return nil
	}
}
