package pipeline

import (
	"bytes"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/confdocs/internal/foundation/errors"
)

// WriteFileAtomic replaces path with data via a temp file and rename, creating
// parent directories. A file that already holds data is left untouched and
// changed is false.
func WriteFileAtomic(path string, data []byte) (changed bool, err error) {
	if existing, readErr := os.ReadFile(path); readErr == nil && bytes.Equal(existing, data) {
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, writeError(err, "failed to create output directory", path)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return false, writeError(err, "failed to create temp file", path)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return false, writeError(err, "failed to write temp file", path)
	}
	if err = tmp.Close(); err != nil {
		return false, writeError(err, "failed to close temp file", path)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return false, writeError(err, "failed to set output mode", path)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return false, writeError(err, "atomic rename failed", path)
	}
	return true, nil
}

func writeError(err error, msg, path string) error {
	return errors.WrapError(err, errors.CategoryFileSystem, msg).Fatal().WithContext("output", path).Build()
}
