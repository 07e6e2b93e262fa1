// Package migrations embeds the goose SQL migrations for the server schema.
package migrations

import "embed"

// Migrations contains the SQL migration files applied at startup.
//
//go:embed *.sql
var Migrations embed.FS
