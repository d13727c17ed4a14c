// Package domain defines the core entities for dupes.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchState: Parameters of the last duplicate search in a session
//   - Entry: One formatted line of the listing with its output range
//   - ExitStatus: How the finder pipeline terminated
//   - RunRecord: A finished run kept in history
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
