package db

import "embed"

// MigrationsDir is the goose directory inside Migrations.
const MigrationsDir = "migrations"

//go:embed migrations/*.sql
var Migrations embed.FS
