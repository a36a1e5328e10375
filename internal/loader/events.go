package loader

// ModsInitialized is the load-event identifier registered before the
// initialization pass and fired after it completes.
const ModsInitialized = "quilt:modsInitialized"

// EventBus is the host's load-event bus boundary. Markers are registered
// and signals fired by exact string identifier.
type EventBus interface {
	RegisterMarker(name string)
	Fire(name string)
}

// NopBus ignores all events.
type NopBus struct{}

func (NopBus) RegisterMarker(string) {}
func (NopBus) Fire(string)           {}

// Bus is a minimal in-process EventBus. No locking: the load pipeline
// is single-threaded.
type Bus struct {
	markers  map[string]struct{}
	handlers map[string][]func()
}

func NewBus() *Bus {
	return &Bus{
		markers:  make(map[string]struct{}),
		handlers: make(map[string][]func()),
	}
}

func (b *Bus) RegisterMarker(name string) {
	b.markers[name] = struct{}{}
}

// Registered reports whether a marker name has been announced.
func (b *Bus) Registered(name string) bool {
	_, ok := b.markers[name]
	return ok
}

// Subscribe attaches a handler invoked synchronously when name fires.
func (b *Bus) Subscribe(name string, fn func()) {
	b.handlers[name] = append(b.handlers[name], fn)
}

func (b *Bus) Fire(name string) {
	for _, fn := range b.handlers[name] {
		fn()
	}
}
