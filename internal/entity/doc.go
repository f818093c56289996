// Package entity defines the data model shared by every curator component:
// entity kinds, cross-entity references, resource storage state, and the
// asset metadata record that marks an entity as a reusable library asset.
//
// Entities are treated opaquely except for the reference fields the
// dependency walker needs. The kind enum is closed on purpose; when the host
// format grows a new datablock kind, add it here and to the walker rather
// than discovering kinds dynamically.
package entity
