// Package deps walks the entity reference graph to find what an asset needs
// to be self-contained.
//
// Collect returns the resource-bearing dependencies (images, fonts, sounds,
// clips, volumetrics) of a root entity; CollectClosure returns the full
// reachable set the container writer serializes. Both are pure traversals
// with identity-keyed visited tracking, so mutually referencing node graphs
// terminate.
package deps
