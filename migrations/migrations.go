// Package migrations bundles the schema files for each supported database
// so the binary can migrate without files on disk.
package migrations

import "embed"

//go:embed sqlite/*.sql
var SqliteMigrations embed.FS

//go:embed postgres/*.sql
var PostgresMigrations embed.FS
