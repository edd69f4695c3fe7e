// Package migrations embeds the versioned schema files so the binary can
// migrate on startup without a deploy-time asset step.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
