package aggregate

import (
	"strings"

	"git.home.luguber.info/inful/confdocs/internal/conformance"
	"git.home.luguber.info/inful/confdocs/internal/table"
	"git.home.luguber.info/inful/confdocs/internal/util/sets"
)

// ColumnFeatures is the first column of the feature matrix.
const ColumnFeatures = "Features"

// MatrixOptions configures BuildFeatureMatrix.
type MatrixOptions struct {
	Category    string
	Features    []string
	Supported   string
	Unsupported string
}

// MatrixHeading titles the feature matrix page.
func MatrixHeading(category string) string {
	return category + " Extended Features"
}

// Organizations returns the sorted set of organizations present in rows.
func Organizations(rows []conformance.Row) []string {
	s := sets.New[string]()
	for _, r := range rows {
		s.Add(r.Organization)
	}
	return sets.Sorted(s)
}

// LatestSupport returns, per organization, the supported features of its
// highest version reporting category (compared case-insensitively).
// Organizations without such rows are absent.
func LatestSupport(rows []conformance.Row, category string) map[string]sets.Set[string] {
	latest := make(map[string]string)
	for _, r := range rows {
		if !strings.EqualFold(r.Category, category) {
			continue
		}
		if v, ok := latest[r.Organization]; !ok || conformance.CompareVersions(r.Version, v) > 0 {
			latest[r.Organization] = r.Version
		}
	}

	support := make(map[string]sets.Set[string], len(latest))
	for _, r := range rows {
		if !strings.EqualFold(r.Category, category) || latest[r.Organization] != r.Version {
			continue
		}
		fs, ok := support[r.Organization]
		if !ok {
			fs = sets.New[string]()
			support[r.Organization] = fs
		}
		fs.AddAll(r.SupportedFeatures...)
	}
	return support
}

// BuildFeatureMatrix renders one row per policy feature and one column per
// organization found anywhere in rows. An organization that never reported
// the category gets the unsupported marker in every cell.
func BuildFeatureMatrix(rows []conformance.Row, opts MatrixOptions) (*table.Table, error) {
	orgs := Organizations(rows)
	support := LatestSupport(rows, opts.Category)

	t := table.New(append([]string{ColumnFeatures}, orgs...)...)
	for _, feature := range opts.Features {
		cells := make([]string, 0, len(orgs)+1)
		cells = append(cells, feature)
		for _, org := range orgs {
			// A missing organization yields a nil set, and Has on nil is false.
			if support[org].Has(feature) {
				cells = append(cells, opts.Supported)
			} else {
				cells = append(cells, opts.Unsupported)
			}
		}
		if err := t.Append(cells...); err != nil {
			return nil, err
		}
	}
	return t, nil
}
