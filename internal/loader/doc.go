// Package loader owns the mod activation pipeline.
//
// Ownership boundary:
// - lazy-activation reconciliation
//
// - side-filtered admission into the active set
//
// - required-dependency validation
//
// - activation ordering
//
// - initialization driving and the load-event bus boundary
//
// The pipeline is single-threaded and run-to-completion. A Loader is
// owned by the host and rebuilt from empty on every Load call; callers
// must serialize Load invocations.
package loader
