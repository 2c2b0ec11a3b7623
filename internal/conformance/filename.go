package conformance

import (
	"path"
	"strings"
)

// ReportSuffix terminates every report file name.
const ReportSuffix = "-report.yaml"

// FileName is the metadata encoded in a report file name:
// <channel>-<implementation-version>-<mode>-report.yaml, e.g.
// experimental-v1.0.0-default-report.yaml. Versions may contain dashes.
type FileName struct {
	Channel string
	Version string
	Mode    string
	Valid   bool
}

// ParseFileName extracts FileName metadata from a path or base name.
// Names not following the convention return a FileName with Valid=false.
func ParseFileName(name string) FileName {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	stem, ok := strings.CutSuffix(base, ReportSuffix)
	if !ok {
		return FileName{}
	}

	first := strings.Index(stem, "-")
	last := strings.LastIndex(stem, "-")
	if first <= 0 || last <= first+1 || last == len(stem)-1 {
		return FileName{}
	}

	return FileName{
		Channel: stem[:first],
		Version: stem[first+1 : last],
		Mode:    stem[last+1:],
		Valid:   true,
	}
}
