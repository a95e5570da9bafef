// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - TextExtractor: Fetches a document and converts it to plain text
//   - DocumentStore: Registry of documents and their locations
//   - ResultStore: Per-document acronym results
//   - AggregateStore: Cross-document long form votes and verified overrides
//   - RefreshLog: Recorded background refresh runs
//   - ConfigStore: Application configuration
//   - Converter, Fetcher: Building blocks of the TextExtractor
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
