// Package migrations holds the SQLite schema for documents, acronym votes,
// verified long forms, cached resolutions and refresh runs. Files are applied
// in lexical order.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
