// Package index maintains a per-library SQLite cache of marked assets so
// listing and searching the library does not require opening every
// container. The index is never authoritative; a refresh rebuilds it from
// the files on disk.
package index
