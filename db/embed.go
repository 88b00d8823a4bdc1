// Package db ships the goose migrations inside the binary.
package db

import "embed"

// Migrations holds one directory of migrations per SQL dialect:
// migrations/postgres and migrations/sqlite.
//
//go:embed migrations
var Migrations embed.FS
