// Package catalog parses the library's catalog definition file and rewrites
// catalog assignments and tags on asset metadata records.
//
// The definition file maps UUIDs to hierarchy paths; malformed lines are
// skipped with a warning. The Cache wraps parsing with explicit ownership
// and invalidation so no state hides in a package global.
package catalog
