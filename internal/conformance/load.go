package conformance

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	cerrors "git.home.luguber.info/inful/confdocs/internal/conformance/errors"
	"git.home.luguber.info/inful/confdocs/internal/foundation/errors"
)

// Load reads, decodes and validates a single report file.
func Load(file DiscoveredFile) (*Report, error) {
	data, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, errors.WrapError(fmt.Errorf("%w: %w", cerrors.ErrReportRead, err), errors.CategoryFileSystem, "failed to read report").
			Fatal().
			WithContext("report", file.RelPath).
			Build()
	}
	return Parse(data, file)
}

// Parse decodes report content and validates it. file supplies the source
// metadata used for defaults and error context.
func Parse(data []byte, file DiscoveredFile) (*Report, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, parseError(file, fmt.Errorf("%w: empty document", cerrors.ErrReportParse))
	}

	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, parseError(file, fmt.Errorf("%w: %w", cerrors.ErrReportParse, err))
	}

	r.Source = Source{
		Path:     file.Path,
		RelPath:  file.RelPath,
		FileName: ParseFileName(file.RelPath),
	}

	if err := normalize(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadAll loads every file in order, stopping at the first failure.
func LoadAll(files []DiscoveredFile) ([]*Report, error) {
	reports := make([]*Report, 0, len(files))
	for _, f := range files {
		r, err := Load(f)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// normalize validates required fields and canonicalises the values used as
// grouping keys. Optional blocks stay nil and are read through accessors.
func normalize(r *Report) error {
	impl := &r.Implementation
	impl.Organization = canonical(impl.Organization)
	if impl.Organization == "" {
		return missingField(r, "implementation.organization")
	}

	impl.Version = strings.TrimSpace(impl.Version)
	if impl.Version == "" {
		if !r.Source.FileName.Valid {
			return missingField(r, "implementation.version")
		}
		impl.Version = r.Source.FileName.Version
	}

	if r.Mode == "" && r.Source.FileName.Valid {
		r.Mode = r.Source.FileName.Mode
	}
	if r.GatewayAPIChannel == "" && r.Source.FileName.Valid {
		r.GatewayAPIChannel = r.Source.FileName.Channel
	}

	if len(r.Profiles) == 0 {
		return missingField(r, "profiles")
	}
	for i := range r.Profiles {
		p := &r.Profiles[i]
		p.Name = canonical(p.Name)
		if p.Name == "" {
			return missingField(r, fmt.Sprintf("profiles[%d].name", i))
		}
		if p.Extended != nil {
			p.Extended.SupportedFeatures = cleanFeatures(p.Extended.SupportedFeatures)
			p.Extended.UnsupportedFeatures = cleanFeatures(p.Extended.UnsupportedFeatures)
		}
	}
	return nil
}

// canonical trims and NFC-normalises a grouping key so that visually
// identical organization or category names compare equal.
func canonical(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// cleanFeatures trims, drops empties, de-duplicates and sorts feature identifiers.
func cleanFeatures(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func parseError(file DiscoveredFile, err error) error {
	return errors.WrapError(err, errors.CategoryParse, "report is not valid YAML").
		Fatal().
		WithContext("report", file.RelPath).
		Build()
}

func missingField(r *Report, field string) error {
	return errors.WrapError(cerrors.ErrMissingField, errors.CategorySchema, "report missing required field").
		Fatal().
		WithContext("report", r.Source.RelPath).
		WithContext("field", field).
		Build()
}
