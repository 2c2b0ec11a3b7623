package pipeline

import (
	"context"
	"time"

	"git.home.luguber.info/inful/confdocs/internal/logfields"
)

// RunStages executes stages in order, recording timing and stopping on the first error.
func RunStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			bs.Report.RecordStageResult(st.Name, StageResultCanceled, bs.Recorder)
			return &StageError{Stage: st.Name, Err: err}
		}

		log := bs.Logger.With(logfields.Stage(string(st.Name)))
		log.Debug("Stage started")

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)

		bs.Report.StageDurations[st.Name] = dur
		bs.Recorder.ObserveStageDuration(string(st.Name), dur)

		if err != nil {
			bs.Report.RecordStageResult(st.Name, StageResultFatal, bs.Recorder)
			log.Error("Stage failed", logfields.DurationMS(durationMS(dur)), logfields.Error(err))
			return &StageError{Stage: st.Name, Err: err}
		}

		bs.Report.RecordStageResult(st.Name, StageResultSuccess, bs.Recorder)
		log.Debug("Stage completed", logfields.DurationMS(durationMS(dur)))
	}
	return nil
}

func durationMS(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
