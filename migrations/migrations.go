// Package migrations embeds the SQL schema migrations so the migrate command
// and the integration tests apply the same files.
package migrations

import "embed"

// FS holds every NNNNNN_name.{up,down}.sql file.
//
//go:embed *.sql
var FS embed.FS
