// Package sitecopy merges static content trees into the site source
// directory before the documentation build runs.
package sitecopy

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/confdocs/internal/foundation/errors"
)

// Stats counts what a copy touched.
type Stats struct {
	Files int
	Dirs  int
}

// CopyTree recursively copies src into dst. Existing destination directories
// are merged into and existing files are overwritten. Modes are preserved.
// A missing src is a fatal filesystem error.
func CopyTree(src, dst string) (Stats, error) {
	var st Stats
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return st, errors.FileSystemError("static content source does not exist").
				WithContext("source", src).Build()
		}
		return st, errors.WrapError(err, errors.CategoryFileSystem, "failed to stat static content source").
			Fatal().WithContext("source", src).Build()
	}
	if !info.IsDir() {
		return st, errors.FileSystemError("static content source is not a directory").
			WithContext("source", src).Build()
	}
	if err := copyDir(src, dst, info.Mode().Perm(), &st); err != nil {
		return st, errors.WrapError(err, errors.CategoryFileSystem, "failed to copy static content").
			Fatal().WithContext("source", src).WithContext("destination", dst).Build()
	}
	return st, nil
}

func copyDir(src, dst string, perm fs.FileMode, st *Stats) error {
	if err := os.MkdirAll(dst, perm); err != nil {
		return err
	}
	// MkdirAll leaves an existing directory's mode alone.
	if err := os.Chmod(dst, perm); err != nil {
		return err
	}
	st.Dirs++

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		// Follow symlinks so linked content is copied, not the link.
		info, err := os.Stat(srcPath)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := copyDir(srcPath, dstPath, info.Mode().Perm(), st); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath, info.Mode().Perm()); err != nil {
			return err
		}
		st.Files++
	}
	return nil
}

func copyFile(src, dst string, perm fs.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	if err := dstFile.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, perm)
}
