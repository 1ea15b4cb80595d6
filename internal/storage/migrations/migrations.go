// Package migrations holds the versioned schema of the structured store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
