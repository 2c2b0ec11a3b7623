package pipeline

import (
	"log/slog"

	"git.home.luguber.info/inful/confdocs/internal/aggregate"
	"git.home.luguber.info/inful/confdocs/internal/config"
	"git.home.luguber.info/inful/confdocs/internal/conformance"
	"git.home.luguber.info/inful/confdocs/internal/metrics"
	"git.home.luguber.info/inful/confdocs/internal/table"
)

// Output is one rendered page waiting to be written.
type Output struct {
	Name string // general or matrix; used as a metrics label
	Path string
	Body []byte
}

// BuildState carries data between stages of one run.
type BuildState struct {
	Config   *config.Config
	BuildID  string
	Logger   *slog.Logger
	Recorder metrics.Recorder
	Report   *BuildReport

	Files    []conformance.DiscoveredFile
	Reports  []*conformance.Report
	Rows     []conformance.Row
	Features *aggregate.FeatureList
	General  *table.Table
	Matrix   *table.Table
	Outputs  []Output

	// MatrixCategory is the configured matrix category as spelled in the reports.
	MatrixCategory string
}
