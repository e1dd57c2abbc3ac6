// Package migrations embeds the database schema applied at startup.
package migrations

import _ "embed"

// InitialSQL creates the full schema. Every statement is written with
// IF NOT EXISTS so the daemon can apply it unconditionally on boot.
//
//go:embed sql/001_initial.sql
var InitialSQL string
