package conformance

// Row is one (report, profile) pair with the implementation metadata
// carried alongside the profile's own fields.
type Row struct {
	Organization      string
	Project           string
	Version           string
	Category          string
	SupportedFeatures []string
	CoreResult        string
	ExtendedResult    string
	Source            string // report path relative to the reports root
}

// Flatten produces one Row per profile of every report, in input order.
func Flatten(reports []*Report) []Row {
	var rows []Row
	for _, r := range reports {
		for _, p := range r.Profiles {
			row := Row{
				Organization:      r.Implementation.Organization,
				Project:           r.Implementation.Project,
				Version:           r.Implementation.Version,
				Category:          p.Name,
				SupportedFeatures: p.SupportedFeatures(),
				Source:            r.Source.RelPath,
			}
			if p.Core != nil {
				row.CoreResult = p.Core.Result
			}
			if p.Extended != nil {
				row.ExtendedResult = p.Extended.Result.Result
			}
			rows = append(rows, row)
		}
	}
	return rows
}
