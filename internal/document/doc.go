// Package document implements the live entity store the engine works
// against: list-by-kind, lookup, rename, remove, and store-assigned
// identities.
//
// The engine stages, imports, and removes entities here during a repackaging
// operation; user-owned entities created outside the engine live alongside
// them. The document is deliberately single-threaded.
package document
