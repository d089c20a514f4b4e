// Package migrations embeds the SQL schema for the pg driver.
package migrations

import "embed"

// FS contains the ordered schema files applied at startup.
//
//go:embed *.sql
var FS embed.FS
