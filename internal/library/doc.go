// Package library implements filesystem policy around container files:
// cross-platform name sanitization, collision handling, companion file
// detection and copying, trash-based removal, and the per-root advisory
// lock.
//
// Nothing here understands container contents; that separation keeps the
// repackaging engine free of naming and sidecar concerns.
package library
