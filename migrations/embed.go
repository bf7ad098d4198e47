// Package migrations holds the PostgreSQL schema, applied with golang-migrate.
package migrations

import "embed"

// FS contains every *.up.sql and *.down.sql file in this directory
//
//go:embed *.sql
var FS embed.FS
