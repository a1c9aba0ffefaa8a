// Package schema loads versioned SQL plans and applies them.
//
// A plan is a directory of numbered step files:
//
//	0001_create_settings.up.sql
//	0002_add_updated_at.up.sql
//
// The number is the schema version the step produces. Create applies every
// step up to a version, Upgrade the steps between two versions. Neither
// opens a transaction: the caller's lifecycle transaction wraps them, so a
// failing step leaves nothing behind.
//
// Files ending in .down.sql and files that are not SQL are ignored.
package schema
