// Package normalisers turns registered documents into plain text.
//
// The Extractor fetches a document's bytes through a local or remote
// fetcher and dispatches them to the Converter registered for the
// document's MIME type. Converters live in subpackages (plaintext, pdf,
// markdown, html, docx) and are registered at startup.
package normalisers
