package conformance

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	cerrors "git.home.luguber.info/inful/confdocs/internal/conformance/errors"
	"git.home.luguber.info/inful/confdocs/internal/foundation/errors"
)

// DiscoveredFile is a report file found under the reports root.
type DiscoveredFile struct {
	Path    string // root joined with RelPath, in OS form
	RelPath string // slash separated, relative to root
}

// Discover finds every file under root matching the doublestar pattern,
// sorted by relative path. A missing root or an empty result is an error:
// an empty table must never be published silently.
func Discover(root, pattern string) ([]DiscoveredFile, error) {
	st, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		return nil, errors.WrapError(cerrors.ErrReportsDirMissing, errors.CategoryFileSystem, "reports directory not found").
			Fatal().
			WithContext("path", root).
			Build()
	case err != nil:
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to stat reports directory").
			Fatal().
			WithContext("path", root).
			Build()
	case !st.IsDir():
		return nil, errors.WrapError(cerrors.ErrReportsDirMissing, errors.CategoryFileSystem, "reports path is not a directory").
			Fatal().
			WithContext("path", root).
			Build()
	}

	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to scan reports directory").
			Fatal().
			WithContext("path", root).
			WithContext("pattern", pattern).
			Build()
	}

	if len(matches) == 0 {
		return nil, errors.WrapError(cerrors.ErrNoReports, errors.CategoryNotFound, "no conformance reports found").
			Fatal().
			WithContext("path", root).
			WithContext("pattern", pattern).
			Build()
	}

	slices.Sort(matches)
	files := make([]DiscoveredFile, 0, len(matches))
	for _, rel := range matches {
		files = append(files, DiscoveredFile{
			Path:    filepath.Join(root, filepath.FromSlash(rel)),
			RelPath: rel,
		})
	}

	return files, nil
}
