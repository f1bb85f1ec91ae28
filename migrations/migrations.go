package migrations

import "embed"

// FS holds the goose SQL migrations so the binary does not depend on its working directory.
//
//go:embed *.sql
var FS embed.FS
