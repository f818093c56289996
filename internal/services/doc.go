// Package services defines the error taxonomy shared by the repackaging
// engine and its callers, plus context helpers for threading the current
// container path through an operation.
//
// Errors are tagged with sentinel markers so batch code can classify failures
// with errors.Is instead of matching message text. Unreadable or
// newer-format containers are skippable; write failures and staging
// collisions abort the affected container with cleanup.
package services
