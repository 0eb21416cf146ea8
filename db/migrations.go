// Package db embeds the goose SQL migrations so the binary can migrate without the source tree.
package db

import "embed"

// Migrations holds migrations/*.sql; pass it to goose.SetBaseFS with dir "migrations".
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations.
const MigrationsDir = "migrations"
