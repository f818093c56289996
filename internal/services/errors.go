package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnreadable marks containers that cannot be opened at all: missing
	// files, bad magic, truncated streams. Batch callers skip and continue.
	ErrUnreadable = errors.New("container unreadable")
	// ErrIncompatibleVersion marks containers written by a newer format
	// revision. Also skip-and-continue in batch contexts.
	ErrIncompatibleVersion = errors.New("container format too new")
	// ErrNotFound marks operations whose target entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrWriteFailed marks failed container writes; the destination path is
	// guaranteed untouched when this is returned.
	ErrWriteFailed = errors.New("write failed")
	// ErrStagingCollision marks an unresolvable staging rename conflict.
	// The uniqueness construction should make this unreachable; it exists so
	// a detected conflict aborts before any import happens.
	ErrStagingCollision = errors.New("staging collision")
	// ErrDestinationExists marks a destination file collision the caller's
	// policy resolved by skipping. Batch callers count it skipped, never
	// failed.
	ErrDestinationExists = errors.New("destination exists")
	// ErrValidation marks rejected inputs.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrWriteFailed
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Skippable reports whether a per-container failure should be counted and
// skipped rather than aborting the whole batch.
func Skippable(err error) bool {
	return errors.Is(err, ErrUnreadable) ||
		errors.Is(err, ErrIncompatibleVersion) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDestinationExists)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "engine failure"
	}
	return strings.Join(parts, ": ")
}
