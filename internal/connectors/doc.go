// Package connectors provides the document sources the extraction pipeline
// reads from. Each connector knows how to fetch the raw bytes behind a
// document URI of one kind (local files, HTTP).
package connectors
