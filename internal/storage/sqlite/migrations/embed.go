package migrations

import "embed"

// FS contains embedded SQLite migrations for ledger state storage.
//
//go:embed *.sql
var FS embed.FS
