package services_test

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"curator/internal/services"
)

func TestWrapTagsWithMarker(t *testing.T) {
	cause := fs.ErrNotExist
	err := services.Wrap(services.ErrUnreadable, "container", "stat", "/tmp/x.bshelf", cause)

	if !errors.Is(err, services.ErrUnreadable) {
		t.Fatalf("marker lost: %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("cause lost: %v", err)
	}
	for _, part := range []string{"container", "stat", "/tmp/x.bshelf"} {
		if !strings.Contains(err.Error(), part) {
			t.Fatalf("message missing %q: %v", part, err)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := services.Wrap(services.ErrValidation, "repack", "save", "no entities selected", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("marker lost: %v", err)
	}
}

func TestSkippable(t *testing.T) {
	cases := []struct {
		marker error
		want   bool
	}{
		{services.ErrUnreadable, true},
		{services.ErrIncompatibleVersion, true},
		{services.ErrNotFound, true},
		{services.ErrDestinationExists, true},
		{services.ErrWriteFailed, false},
		{services.ErrStagingCollision, false},
		{services.ErrValidation, false},
	}
	for _, tc := range cases {
		err := services.Wrap(tc.marker, "c", "o", "m", nil)
		if got := services.Skippable(err); got != tc.want {
			t.Fatalf("Skippable(%v) = %v, want %v", tc.marker, got, tc.want)
		}
	}
	if services.Skippable(errors.New("plain")) {
		t.Fatalf("untagged error reported skippable")
	}
}
