// Package packer temporarily embeds external resource bytes into entities so
// a written container is self-contained, then restores the prior storage
// state.
//
// Pack before the container write, defer Restore so it runs regardless of
// the write's outcome; the live document's packing state then never diverges
// from what the user had before the operation.
package packer
