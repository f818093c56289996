package container

import (
	"compress/gzip"
	"encoding/binary"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"curator/internal/deps"
	"curator/internal/entity"
	"curator/internal/services"
)

// Write serializes the entity set plus its dependency closure (resolved via
// the given resolver) to path, atomically. The bytes go to a sibling temp
// file first; only a fully serialized temp file is renamed into place, so no
// process observing path ever sees a truncated or mixed-state file. On any
// failure the temp file is removed and the prior content of path is
// untouched.
func Write(path string, set []*entity.Entity, resolver entity.Resolver) error {
	if len(set) == 0 {
		return services.Wrap(services.ErrValidation, "container", "write", "empty entity set", nil)
	}

	closure := deps.CollectClosure(set, resolver)
	payload, err := json.Marshal(body{Entities: closure})
	if err != nil {
		return services.Wrap(services.ErrWriteFailed, "container", "serialize", path, err)
	}

	dir := filepath.Dir(path)
	tempPath := filepath.Join(dir, tempPrefix+filepath.Base(path))

	if err := writeTemp(tempPath, payload); err != nil {
		_ = os.Remove(tempPath)
		return services.Wrap(services.ErrWriteFailed, "container", "write temp", path, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return services.Wrap(services.ErrWriteFailed, "container", "replace", path, err)
	}
	return nil
}

func writeTemp(tempPath string, payload []byte) error {
	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	var header [headerSize]byte
	copy(header[:], magic[:])
	binary.BigEndian.PutUint16(header[len(magic):], FormatVersion)
	if _, err := file.Write(header[:]); err != nil {
		_ = file.Close()
		return err
	}

	zw := gzip.NewWriter(file)
	if _, err := zw.Write(payload); err != nil {
		_ = zw.Close()
		_ = file.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		_ = file.Close()
		return err
	}

	// Tiny entity sets can compress below the size floor readers use to
	// rule out non-container files. Pad past it; the reader stops at the
	// end of the gzip stream.
	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		_ = file.Close()
		return err
	}
	if size < MinFileSize {
		if _, err := file.Write(make([]byte, MinFileSize-size)); err != nil {
			_ = file.Close()
			return err
		}
	}
	return file.Close()
}
