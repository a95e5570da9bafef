// Package domain defines the core business entities for acronym resolution.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A registered document whose text can be extracted
//   - AcronymResult: The versioned per-document extraction result
//   - AggregateEntry: Cross-document long form votes for one short form
//   - EngineSettings: Tunables for extraction and matching
//   - RefreshReport: Outcome of one stale-result refresh run
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
