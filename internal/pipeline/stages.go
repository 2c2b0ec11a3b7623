// Package pipeline runs the documentation hook as an ordered list of timed
// stages that share one BuildState.
package pipeline

import (
	"context"
	"fmt"
)

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names.
const (
	StageCopyStatic      StageName = "copy_static"
	StageDiscoverReports StageName = "discover_reports"
	StageLoadReports     StageName = "load_reports"
	StageAggregate       StageName = "aggregate"
	StageRender          StageName = "render"
	StageWriteOutputs    StageName = "write_outputs"
)

// StageResult is the outcome recorded for one stage.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
)

// StageFunc does the work of one stage.
type StageFunc func(ctx context.Context, bs *BuildState) error

// StageDef pairs a stage name with its implementation.
type StageDef struct {
	Name StageName
	Fn   StageFunc
}

// StageError ties a failure to the stage that produced it.
type StageError struct {
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("stage %s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Stages returns the stage list for a run. Generate-only runs start at
// discovery and leave static content alone.
func Stages(skipCopy bool) []StageDef {
	defs := []StageDef{
		{Name: StageCopyStatic, Fn: stageCopyStatic},
		{Name: StageDiscoverReports, Fn: stageDiscoverReports},
		{Name: StageLoadReports, Fn: stageLoadReports},
		{Name: StageAggregate, Fn: stageAggregate},
		{Name: StageRender, Fn: stageRender},
		{Name: StageWriteOutputs, Fn: stageWriteOutputs},
	}
	if skipCopy {
		return defs[1:]
	}
	return defs
}
