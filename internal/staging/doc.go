// Package staging protects resident entities from name collisions during a
// container import.
//
// Before an import, every resident whose name an incoming entity would take
// is renamed to an unguessable temporary name; the returned Lease restores
// the originals. Stage and a deferred Release bracket the import so no exit
// path, success or failure, leaves an entity permanently misnamed.
package staging
