package library

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"curator/internal/config"
)

// MaxIncrementalFiles bounds the numeric suffix search when resolving
// filename collisions by incrementing.
const MaxIncrementalFiles = 9999

var invalidNameChars = regexp.MustCompile(`[<>:"|?*\x00-\x1f]`)

// SanitizeName makes a filename component safe on Windows, macOS, and Linux:
// path separators and invalid characters become underscores, trailing dots
// and spaces are stripped, and the result is NFC-normalized and bounded in
// length. An input with nothing usable becomes "asset".
func SanitizeName(name string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = 128
	}
	name = norm.NFC.String(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = invalidNameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, ". ")
	if name == "" {
		name = "asset"
	}
	if len(name) > maxLength {
		// Cut on a rune boundary; a byte cut can split a multibyte rune and
		// produce an invalid-UTF-8 filename.
		cut := maxLength
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = strings.Trim(name[:cut], ". ")
		if name == "" {
			name = "asset"
		}
	}
	return name
}

// BuildFileName assembles the final file stem from the configured naming
// convention: [prefix_]base[_suffix][_date]. Each part is sanitized on its
// own so a hostile prefix cannot smuggle separators in.
func BuildFileName(base string, naming config.Naming) string {
	parts := make([]string, 0, 4)
	if prefix := strings.Trim(SanitizeName(naming.Prefix, 32), "_"); naming.Prefix != "" && prefix != "" && prefix != "asset" {
		parts = append(parts, prefix)
	}
	parts = append(parts, base)
	if suffix := strings.Trim(SanitizeName(naming.Suffix, 32), "_"); naming.Suffix != "" && suffix != "" && suffix != "asset" {
		parts = append(parts, suffix)
	}
	if naming.IncludeDate {
		parts = append(parts, time.Now().Format("2006-01-02"))
	}
	maxLength := naming.MaxLength
	if maxLength <= 0 {
		maxLength = 200
	}
	return SanitizeName(strings.Join(parts, "_"), maxLength)
}

// IncrementFilename returns dir/stem+ext, or the first free
// dir/stem_NNN+ext with a zero-padded counter when the plain name exists.
func IncrementFilename(dir, stem, ext string) (string, error) {
	if strings.TrimSpace(stem) == "" {
		return "", fmt.Errorf("increment filename: empty stem")
	}
	candidate := filepath.Join(dir, stem+ext)
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}
	for counter := 1; counter <= MaxIncrementalFiles; counter++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%03d%s", stem, counter, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("too many incremental files for %q (exceeded %d)", stem, MaxIncrementalFiles)
}

// CollisionPolicy decides what happens when a destination file already
// exists. The policy is chosen by the caller and passed in; the engine has
// no opinion of its own.
type CollisionPolicy string

const (
	// PolicyIncrement appends a zero-padded numeric suffix.
	PolicyIncrement CollisionPolicy = "increment"
	// PolicyOverwrite replaces the existing file.
	PolicyOverwrite CollisionPolicy = "overwrite"
	// PolicySkip leaves the existing file alone and skips the operation.
	PolicySkip CollisionPolicy = "skip"
)

// ParseCollisionPolicy converts a string flag value into a policy.
func ParseCollisionPolicy(value string) (CollisionPolicy, error) {
	switch CollisionPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case PolicyIncrement, "":
		return PolicyIncrement, nil
	case PolicyOverwrite:
		return PolicyOverwrite, nil
	case PolicySkip:
		return PolicySkip, nil
	default:
		return "", fmt.Errorf("unknown collision policy %q", value)
	}
}

// ResolveCollision applies the policy to dir/stem+ext. The returned skip
// flag is true only under PolicySkip with an existing destination.
func ResolveCollision(dir, stem, ext string, policy CollisionPolicy) (path string, skip bool, err error) {
	candidate := filepath.Join(dir, stem+ext)
	if _, statErr := os.Stat(candidate); os.IsNotExist(statErr) {
		return candidate, false, nil
	}
	switch policy {
	case PolicyOverwrite:
		return candidate, false, nil
	case PolicySkip:
		return candidate, true, nil
	default:
		path, err = IncrementFilename(dir, stem, ext)
		return path, false, err
	}
}
