package loader

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/TheEpicBlock/quilt-loader/internal/discovery"
	"github.com/TheEpicBlock/quilt-loader/internal/mod"
	"github.com/TheEpicBlock/quilt-loader/internal/observability"
)

// SideProvider is the host role query used for admission filtering.
type SideProvider interface {
	Side() mod.Side
}

// FixedSide is a SideProvider returning a constant host role.
type FixedSide mod.Side

func (s FixedSide) Side() mod.Side { return mod.Side(s) }

// Config assembles a Loader. Zero-value fields get safe defaults:
// side both, nop bus, no instantiation.
type Config struct {
	Side         SideProvider
	Bus          EventBus
	Instantiator Instantiator
	Logger       zerolog.Logger
}

// Loader runs the activation pipeline and holds the active set for one
// load cycle. Owned by the host; not safe for concurrent use.
type Loader struct {
	side         SideProvider
	bus          EventBus
	instantiator Instantiator
	log          zerolog.Logger

	index map[string]*Container
	mods  []*Container
}

func New(cfg Config) *Loader {
	side := cfg.Side
	if side == nil {
		side = FixedSide(mod.SideBoth)
	}
	bus := cfg.Bus
	if bus == nil {
		bus = NopBus{}
	}
	return &Loader{
		side:         side,
		bus:          bus,
		instantiator: cfg.Instantiator,
		log:          cfg.Logger,
		index:        make(map[string]*Container),
	}
}

// Load rebuilds the active set from the discovered candidates and runs
// the pipeline to completion: lazy reconciliation, admission, required
// dependency validation, ordering, initialization. A DependencyError
// aborts before any mod is initialized.
func (l *Loader) Load(candidates []discovery.Candidate) error {
	start := time.Now()
	l.index = make(map[string]*Container)
	l.mods = nil

	for i, c := range candidates {
		if c.Meta.Lazy && !referenced(i, candidates) {
			l.log.Debug().Str("mod", c.Meta.Ref()).Msg("lazy mod has no dependents, not admitted")
			continue
		}
		l.addMod(c)
	}

	l.log.Info().
		Int("count", len(l.mods)).
		Str("mods", strings.Join(l.activeRefs(), ", ")).
		Msg("loading mods")

	if err := l.checkDependencies(); err != nil {
		observability.RecordLoadFailure("dependency")
		return err
	}

	l.mods = sortMods(l.mods)
	l.initializeMods()

	observability.RecordLoad(len(l.mods), time.Since(start))
	return nil
}

// referenced reports whether any other discovered candidate declares a
// dependency (required or optional) satisfied by candidate self. The
// full discovered set is consulted, not just the active one.
func referenced(self int, all []discovery.Candidate) bool {
	target := all[self].Meta
	for i := range all {
		if i == self {
			continue
		}
		for _, dep := range all[i].Meta.Dependencies {
			if dep.SatisfiedBy(target) {
				return true
			}
		}
	}
	return false
}

// addMod admits one candidate into the active set. Candidates whose
// side affinity excludes the current host role are dropped silently.
// A duplicate active identity is rejected, keeping the first admission.
func (l *Loader) addMod(c discovery.Candidate) {
	side := l.side.Side()
	if (side == mod.SideClient && !c.Meta.Side.HasClient()) ||
		(side == mod.SideServer && !c.Meta.Side.HasServer()) {
		return
	}

	ref := c.Meta.Ref()
	if prev, ok := l.index[ref]; ok {
		l.log.Error().
			Str("mod", ref).
			Str("origin", c.Origin).
			Str("kept", prev.Origin).
			Msg("duplicate mod identity rejected")
		return
	}

	container := &Container{Meta: c.Meta, Origin: c.Origin}
	if l.instantiator != nil {
		instance, err := l.instantiator.Instantiate(c.Meta, c.Origin)
		if err != nil {
			l.log.Error().Err(err).Str("mod", ref).Msg("mod instantiation failed")
		} else {
			container.instance = instance
		}
	}

	l.index[ref] = container
	l.mods = append(l.mods, container)
}

// checkDependencies validates every required dependency of every active
// mod against the rest of the active set, collecting all violations.
func (l *Loader) checkDependencies() error {
	l.log.Debug().Msg("validating mod dependencies")

	var unsatisfied []UnsatisfiedDependency
	for _, c := range l.mods {
		for _, dep := range c.Meta.Dependencies {
			if !dep.Required {
				continue
			}
			if l.dependencySatisfied(c, dep) {
				continue
			}
			unsatisfied = append(unsatisfied, UnsatisfiedDependency{
				Mod:        c.Meta.Identity(),
				Ref:        dep.Ref.Ref(),
				Constraint: dep.Constraint.String(),
			})
		}
	}
	if len(unsatisfied) > 0 {
		return &DependencyError{Unsatisfied: unsatisfied}
	}
	return nil
}

// dependencySatisfied searches the active set for a mod other than self
// satisfying dep. A mod never satisfies its own requirement.
func (l *Loader) dependencySatisfied(self *Container, dep mod.Dependency) bool {
	for _, other := range l.mods {
		if other == self {
			continue
		}
		if dep.SatisfiedBy(other.Meta) {
			return true
		}
	}
	return false
}

// initializeMods drives initialization in final order. Containers
// without an instance are skipped.
func (l *Loader) initializeMods() {
	l.bus.RegisterMarker(ModsInitialized)
	for _, c := range l.mods {
		if !c.HasInstance() {
			continue
		}
		if err := c.Initialize(); err != nil {
			l.log.Error().Err(err).Str("mod", c.Meta.Ref()).Msg("mod initialization failed")
		}
	}
	l.bus.Fire(ModsInitialized)
}

// IsModLoaded reports whether the identity (group, id) is in the active
// set. Case-insensitive.
func (l *Loader) IsModLoaded(group, id string) bool {
	_, ok := l.index[mod.NewIdentity(group, id).Ref()]
	return ok
}

// Mods returns the active set in activation order.
func (l *Loader) Mods() []*Container {
	out := make([]*Container, len(l.mods))
	copy(out, l.mods)
	return out
}

// ClientMixinConfigs returns the deduplicated client-scoped mixin
// configuration names across active mods, in activation order.
func (l *Loader) ClientMixinConfigs() []string {
	return l.mixinConfigs(func(m mod.Metadata) string { return m.Mixins.Client })
}

// CommonMixinConfigs returns the deduplicated common-scoped mixin
// configuration names across active mods, in activation order.
func (l *Loader) CommonMixinConfigs() []string {
	return l.mixinConfigs(func(m mod.Metadata) string { return m.Mixins.Common })
}

func (l *Loader) mixinConfigs(pick func(mod.Metadata) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range l.mods {
		name := pick(c.Meta)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func (l *Loader) activeRefs() []string {
	out := make([]string, len(l.mods))
	for i, c := range l.mods {
		out[i] = c.Meta.Ref()
	}
	return out
}
