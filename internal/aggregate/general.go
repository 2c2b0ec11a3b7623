package aggregate

import (
	"cmp"
	"slices"
	"strings"

	"git.home.luguber.info/inful/confdocs/internal/conformance"
	"git.home.luguber.info/inful/confdocs/internal/table"
	"git.home.luguber.info/inful/confdocs/internal/util/sets"
)

// Raw column names, renamed to display labels by HeaderLabels.
const (
	ColumnOrganization = "organization"
	ColumnVersion      = "version"
	ColumnProfile      = "name"
)

// HeaderLabels maps raw column names to the labels shown on the site.
var HeaderLabels = map[string]string{
	ColumnOrganization: "Organization",
	ColumnVersion:      "Version",
	ColumnProfile:      "Protocol Profile",
}

// NoFeatures is rendered when a category was reported with an empty feature set.
const NoFeatures = "None"

// SupportedFeaturesColumn names the per-category column of the general table.
func SupportedFeaturesColumn(category string) string {
	return category + ": Supported Features"
}

// GeneralOptions configures BuildGeneralTable.
type GeneralOptions struct {
	ExcludedCategories     []string // never rendered as a Supported Features column
	ExcludeEmptyCategories bool     // also drop categories where nobody reports a feature
	MissingValue           string   // cell text when an implementation lacks the category
}

// implementationKey is the explicit join key of the general table.
type implementationKey struct {
	organization string
	version      string
}

type implementationRow struct {
	key      implementationKey
	profiles sets.Set[string]
	features map[string]sets.Set[string] // category -> supported features
}

// Categories returns the sorted set of profile names present in rows.
func Categories(rows []conformance.Row) []string {
	s := sets.New[string]()
	for _, r := range rows {
		s.Add(r.Category)
	}
	return sets.Sorted(s)
}

// IsExcluded reports whether category is in excluded, ignoring case.
func IsExcluded(category string, excluded []string) bool {
	for _, e := range excluded {
		if strings.EqualFold(category, e) {
			return true
		}
	}
	return false
}

// ResolveCategory returns the spelling of name used in known, matching case-insensitively.
func ResolveCategory(name string, known []string) (string, bool) {
	for _, k := range known {
		if strings.EqualFold(name, k) {
			return k, true
		}
	}
	return "", false
}

// FeatureColumns returns the categories that get a Supported Features column.
func FeatureColumns(rows []conformance.Row, opts GeneralOptions) []string {
	reported := sets.New[string]()
	for _, r := range rows {
		if len(r.SupportedFeatures) > 0 {
			reported.Add(r.Category)
		}
	}

	var out []string
	for _, c := range Categories(rows) {
		if IsExcluded(c, opts.ExcludedCategories) {
			continue
		}
		if opts.ExcludeEmptyCategories && !reported.Has(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// BuildGeneralTable merges rows into one wide row per organization, keeping
// only each organization's highest version.
func BuildGeneralTable(rows []conformance.Row, opts GeneralOptions) (*table.Table, error) {
	columns := FeatureColumns(rows, opts)

	grouped := make(map[implementationKey]*implementationRow)
	for _, r := range rows {
		key := implementationKey{organization: r.Organization, version: r.Version}
		ir, ok := grouped[key]
		if !ok {
			ir = &implementationRow{key: key, profiles: sets.New[string](), features: make(map[string]sets.Set[string])}
			grouped[key] = ir
		}
		ir.profiles.Add(r.Category)
		fs, ok := ir.features[r.Category]
		if !ok {
			fs = sets.New[string]()
			ir.features[r.Category] = fs
		}
		fs.AddAll(r.SupportedFeatures...)
	}

	header := []string{ColumnOrganization, ColumnVersion, ColumnProfile}
	for _, c := range columns {
		header = append(header, SupportedFeaturesColumn(c))
	}
	t := table.New(header...)

	for _, ir := range latestPerOrganization(grouped) {
		cells := []string{ir.key.organization, ir.key.version, strings.Join(sets.Sorted(ir.profiles), ", ")}
		for _, c := range columns {
			cells = append(cells, featureCell(ir.features, c, opts.MissingValue))
		}
		if err := t.Append(cells...); err != nil {
			return nil, err
		}
	}

	t.Rename(HeaderLabels)
	return t, nil
}

func featureCell(features map[string]sets.Set[string], category, missing string) string {
	fs, ok := features[category]
	switch {
	case !ok:
		return missing
	case fs.Len() == 0:
		return NoFeatures
	default:
		return strings.Join(sets.Sorted(fs), ", ")
	}
}

// latestPerOrganization sorts by (organization, version) and keeps the last
// entry of each organization.
func latestPerOrganization(grouped map[implementationKey]*implementationRow) []*implementationRow {
	all := make([]*implementationRow, 0, len(grouped))
	for _, ir := range grouped {
		all = append(all, ir)
	}
	slices.SortFunc(all, func(a, b *implementationRow) int {
		return compareKeys(a.key, b.key)
	})

	out := make([]*implementationRow, 0, len(all))
	for i, ir := range all {
		if i+1 < len(all) && all[i+1].key.organization == ir.key.organization {
			continue
		}
		out = append(out, ir)
	}
	return out
}

func compareKeys(a, b implementationKey) int {
	if c := cmp.Compare(a.organization, b.organization); c != 0 {
		return c
	}
	return conformance.CompareVersions(a.version, b.version)
}
