package pipeline

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/confdocs/internal/metrics"
	"git.home.luguber.info/inful/confdocs/internal/version"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// BuildReport captures what a run did.
type BuildReport struct {
	BuildID          string
	Version          string
	Start            time.Time
	End              time.Time
	StageOrder       []StageName
	StageDurations   map[StageName]time.Duration
	StageResults     map[StageName]StageResult
	CopiedFiles      int
	Files            int // report files discovered
	Reports          int
	Rows             int
	Organizations    int
	Categories       []string
	Outputs          []string // files written or already up to date
	OutputsWritten   int
	OutputsUnchanged int
	Outcome          BuildOutcome
	Err              error
}

// NewBuildReport constructs a new BuildReport.
func NewBuildReport(buildID string) *BuildReport {
	return &BuildReport{
		BuildID:        buildID,
		Version:        version.Version,
		Start:          time.Now(),
		StageDurations: make(map[StageName]time.Duration),
		StageResults:   make(map[StageName]StageResult),
	}
}

// RecordStageResult stores the stage result and emits it to recorder (if non-nil).
func (r *BuildReport) RecordStageResult(stage StageName, res StageResult, recorder metrics.Recorder) {
	if _, seen := r.StageResults[stage]; !seen {
		r.StageOrder = append(r.StageOrder, stage)
	}
	r.StageResults[stage] = res
	if recorder == nil {
		return
	}
	switch res {
	case StageResultSuccess:
		recorder.IncStageResult(string(stage), metrics.ResultSuccess)
	case StageResultFatal:
		recorder.IncStageResult(string(stage), metrics.ResultFatal)
	case StageResultCanceled:
		recorder.IncStageResult(string(stage), metrics.ResultCanceled)
	}
}

// Finish sets the end time of the report.
func (r *BuildReport) Finish() { r.End = time.Now() }

// Duration is End minus Start, or zero before Finish.
func (r *BuildReport) Duration() time.Duration {
	if r.End.IsZero() {
		return 0
	}
	return r.End.Sub(r.Start)
}

// DeriveOutcome sets Outcome from the recorded stage results.
func (r *BuildReport) DeriveOutcome() {
	r.Outcome = OutcomeSuccess
	for _, res := range r.StageResults {
		switch res {
		case StageResultCanceled:
			r.Outcome = OutcomeCanceled
			return
		case StageResultFatal:
			r.Outcome = OutcomeFailed
		}
	}
}

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	return fmt.Sprintf("build=%s reports=%d rows=%d organizations=%d categories=%d outputs=%d written=%d duration=%s outcome=%s",
		r.BuildID, r.Reports, r.Rows, r.Organizations, len(r.Categories), len(r.Outputs), r.OutputsWritten,
		r.Duration().Truncate(time.Millisecond), r.Outcome)
}

func outcomeLabel(o BuildOutcome) metrics.BuildOutcomeLabel {
	switch o {
	case OutcomeSuccess:
		return metrics.BuildOutcomeSuccess
	case OutcomeCanceled:
		return metrics.BuildOutcomeCanceled
	default:
		return metrics.BuildOutcomeFailed
	}
}
