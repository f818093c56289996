// Package container reads and writes asset container files.
//
// A container is a versioned header plus a compressed serialized closure of
// entities. Readers never mutate the source file and classify failures as
// unreadable or incompatible-version so batch callers can skip bad files.
// The writer is all-or-nothing: temp file, then rename into place.
package container
