// Package bundle merges many library containers into a single shareable
// container, with size limits, destination space checks, and a duplicate
// policy for entities that appear in more than one source.
package bundle
