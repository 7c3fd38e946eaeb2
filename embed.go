// Package spamoverflow holds module-level embedded assets.
package spamoverflow

import "embed"

// Migrations contains the goose SQL migrations applied by the migrate
// subcommand and the storage integration tests.
//
//go:embed migrations/*.sql
var Migrations embed.FS
