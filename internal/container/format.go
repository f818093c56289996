package container

// Container files are a fixed 10-byte header followed by a gzip stream of a
// JSON body. The version lives outside the compressed payload so an
// incompatible future revision is detectable without decoding anything.

// Extension is the on-disk suffix for container files.
const Extension = ".bshelf"

// FormatVersion is the current container format revision. Readers refuse
// files with a higher version; lower versions remain readable.
const FormatVersion uint16 = 1

// MinFileSize is the floor below which a file cannot be a container; smaller
// files are skipped without being opened.
const MinFileSize int64 = 100

// tempPrefix is the private prefix for in-flight sibling temp files.
const tempPrefix = ".tmp_"

var magic = [8]byte{'B', 'S', 'H', 'E', 'L', 'F', 0, 0}

const headerSize = len(magic) + 2
