// Package acronyms extracts short forms and their long forms from document text.
//
// The pipeline for one document is:
//
//   - Tokenize: split raw text into word tokens
//   - DetectShortForms: find acronym-shaped runs in the raw text
//   - ContextWindow: take the tokens preceding one occurrence
//   - Matcher.Match: backtracking search for a long form in that window
//   - Builder.Build: run the above for every short form of a document
//
// Everything in this package is pure and safe for concurrent use.
// Persistence, versioning and vote aggregation live in the core services.
package acronyms
