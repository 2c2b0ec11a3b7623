package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/confdocs/internal/aggregate"
	"git.home.luguber.info/inful/confdocs/internal/config"
	"git.home.luguber.info/inful/confdocs/internal/conformance"
	"git.home.luguber.info/inful/confdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/confdocs/internal/logfields"
	"git.home.luguber.info/inful/confdocs/internal/markdown"
	"git.home.luguber.info/inful/confdocs/internal/metrics"
	"git.home.luguber.info/inful/confdocs/internal/sitecopy"
)

// Output names used in logs and metrics labels.
const (
	OutputGeneral = "general"
	OutputMatrix  = "matrix"
)

// Options tune a single run.
type Options struct {
	SkipCopy bool
	Recorder metrics.Recorder // nil means metrics.NoopRecorder
	Logger   *slog.Logger     // nil means slog.Default()
	BuildID  string           // generated when empty
}

// Run executes the hook against cfg. The returned report is never nil, even on error.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*BuildReport, error) {
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.BuildID == "" {
		opts.BuildID = uuid.NewString()
	}

	bs := &BuildState{
		Config:   cfg,
		BuildID:  opts.BuildID,
		Logger:   opts.Logger.With(logfields.BuildID(opts.BuildID)),
		Recorder: opts.Recorder,
		Report:   NewBuildReport(opts.BuildID),
	}

	bs.Logger.Info("Starting conformance docs build",
		logfields.Path(cfg.Reports.Directory), slog.Bool("skip_copy", opts.SkipCopy))

	err := RunStages(ctx, bs, Stages(opts.SkipCopy))

	rep := bs.Report
	rep.Err = err
	rep.Finish()
	rep.DeriveOutcome()
	opts.Recorder.ObserveBuildDuration(rep.Duration())
	opts.Recorder.IncBuildOutcome(outcomeLabel(rep.Outcome))

	if err != nil {
		return rep, err
	}
	bs.Logger.Info("Build completed",
		logfields.DurationMS(durationMS(rep.Duration())),
		slog.String("summary", rep.Summary()),
		slog.Int("unchanged", rep.OutputsUnchanged))
	return rep, nil
}

func stageCopyStatic(_ context.Context, bs *BuildState) error {
	for _, c := range bs.Config.Copy {
		st, err := sitecopy.CopyTree(c.Source, c.Destination)
		if err != nil {
			return err
		}
		bs.Report.CopiedFiles += st.Files
		bs.Logger.Info("Copied static content",
			logfields.Path(c.Source), logfields.Output(c.Destination), logfields.Count(st.Files))
	}
	return nil
}

func stageDiscoverReports(_ context.Context, bs *BuildState) error {
	files, err := conformance.Discover(bs.Config.Reports.Directory, bs.Config.Reports.Pattern)
	if err != nil {
		return err
	}
	bs.Files = files
	bs.Report.Files = len(files)
	bs.Logger.Debug("Discovered conformance reports",
		logfields.Path(bs.Config.Reports.Directory), logfields.Count(len(files)))
	return nil
}

func stageLoadReports(_ context.Context, bs *BuildState) error {
	reports, err := conformance.LoadAll(bs.Files)
	if err != nil {
		return err
	}
	bs.Reports = reports
	bs.Rows = conformance.Flatten(reports)
	bs.Report.Reports = len(reports)
	bs.Report.Rows = len(bs.Rows)
	bs.Recorder.SetReportsLoaded(len(reports))

	for _, r := range reports {
		bs.Logger.Debug("Loaded report",
			logfields.Report(r.Source.RelPath),
			logfields.Organization(r.Implementation.Organization),
			logfields.Version(r.Implementation.Version),
			logfields.Count(len(r.Profiles)))
	}
	bs.Logger.Info("Loaded conformance reports", logfields.Count(len(reports)), slog.Int("rows", len(bs.Rows)))
	return nil
}

func stageAggregate(_ context.Context, bs *BuildState) error {
	tc := bs.Config.Tables

	features, err := loadFeatures(tc)
	if err != nil {
		return err
	}
	bs.Features = features

	// Rows decide the spelling; the feature list is the fallback when no
	// report carries the matrix category at all.
	categories := aggregate.Categories(bs.Rows)
	matrixCategory, ok := aggregate.ResolveCategory(tc.MatrixCategory, categories)
	if !ok {
		matrixCategory = features.Category
		bs.Logger.Warn("No report covers the matrix category; every cell will be unsupported",
			logfields.Category(matrixCategory))
	}
	bs.MatrixCategory = matrixCategory

	general, err := aggregate.BuildGeneralTable(bs.Rows, aggregate.GeneralOptions{
		ExcludedCategories:     tc.ExcludedCategories,
		ExcludeEmptyCategories: tc.ExcludeEmptyCategories,
		MissingValue:           tc.MissingValue,
	})
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to build general table").Build()
	}
	matrix, err := aggregate.BuildFeatureMatrix(bs.Rows, aggregate.MatrixOptions{
		Category:    matrixCategory,
		Features:    features.Features,
		Supported:   tc.SupportedMarker,
		Unsupported: tc.UnsupportedMarker,
	})
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to build feature matrix").Build()
	}
	bs.General, bs.Matrix = general, matrix

	bs.Report.Categories = categories
	bs.Report.Organizations = general.Len()
	bs.Recorder.SetOrganizations(OutputGeneral, general.Len())
	bs.Recorder.SetOrganizations(OutputMatrix, len(matrix.Header)-1)

	for _, c := range categories {
		bs.Logger.Debug("Discovered category", logfields.Category(c),
			slog.Bool("excluded", aggregate.IsExcluded(c, tc.ExcludedCategories)))
	}
	return nil
}

func loadFeatures(tc config.TablesConfig) (*aggregate.FeatureList, error) {
	var (
		fl  *aggregate.FeatureList
		err error
	)
	if tc.FeaturesFile != "" {
		fl, err = aggregate.LoadFeatureList(tc.FeaturesFile)
	} else {
		fl, err = aggregate.BuiltinFeatureList(tc.MatrixCategory)
	}
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(fl.Category, tc.MatrixCategory) {
		return nil, errors.ConfigError(fmt.Sprintf("feature list is for category %q, matrix category is %q", fl.Category, tc.MatrixCategory)).
			WithContext("features_file", tc.FeaturesFile).Build()
	}
	return fl, nil
}

func stageRender(_ context.Context, bs *BuildState) error {
	tc := bs.Config.Tables
	docs := []struct {
		name string
		path string
		doc  markdown.Document
	}{
		{OutputGeneral, bs.Config.Output.GeneralTable, markdown.Document{Preamble: tc.Preamble, Table: bs.General}},
		{OutputMatrix, bs.Config.Output.FeatureMatrix, markdown.Document{Preamble: tc.Preamble, Heading: aggregate.MatrixHeading(bs.MatrixCategory), Table: bs.Matrix}},
	}

	bs.Outputs = bs.Outputs[:0]
	for _, d := range docs {
		body := d.doc.Render()
		want := markdown.Shape{Columns: len(d.doc.Table.Header), Rows: d.doc.Table.Len()}
		if err := markdown.VerifyTable(body, want); err != nil {
			return errors.WrapError(err, errors.CategoryRender, "rendered table failed verification").
				Fatal().WithContext("output", d.path).Build()
		}
		bs.Outputs = append(bs.Outputs, Output{Name: d.name, Path: d.path, Body: body})
	}
	return nil
}

func stageWriteOutputs(_ context.Context, bs *BuildState) error {
	for _, out := range bs.Outputs {
		t0 := time.Now()
		changed, err := WriteFileAtomic(out.Path, out.Body)
		if err != nil {
			return err
		}
		bs.Report.Outputs = append(bs.Report.Outputs, out.Path)
		if changed {
			bs.Report.OutputsWritten++
		} else {
			bs.Report.OutputsUnchanged++
		}
		bs.Logger.Info("Wrote table",
			logfields.Output(out.Path),
			slog.String("table", out.Name),
			slog.Bool("changed", changed),
			logfields.DurationMS(durationMS(time.Since(t0))))
	}
	return nil
}
