// Package mod owns the parsed mod manifest model.
//
// Ownership boundary:
// - mod identity and dependency reference format
//
// - side affinity semantics
//
// - manifest document parsing and field defaults
//
// Metadata values are immutable once parsed.
package mod
