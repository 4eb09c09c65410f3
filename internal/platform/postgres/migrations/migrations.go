// Package migrations embeds the goose SQL migrations for the Postgres schema.
package migrations

import "embed"

// FS holds every migration file at its root.
//
//go:embed *.sql
var FS embed.FS

// Dir is the directory to pass to goose when FS is the base filesystem.
const Dir = "."

// TableName is the goose version table.
const TableName = "schema_migrations"
