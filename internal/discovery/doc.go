// Package discovery owns candidate collection.
//
// Ownership boundary:
// - scanning the packaged mods directory for archives
//
// - scanning development classpath entries
//
// - code-loading registration of contributing archives
//
// Every per-source failure is recoverable: it is logged, counted, and
// the source contributes zero candidates. Discovery never aborts a load.
package discovery
