package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/confdocs/internal/metrics"
)

type countingRecorder struct {
	metrics.NoopRecorder
	stageResults map[string]metrics.ResultLabel
	reports      int
	outcomes     int
}

func (c *countingRecorder) IncStageResult(stage string, res metrics.ResultLabel) {
	if c.stageResults == nil {
		c.stageResults = map[string]metrics.ResultLabel{}
	}
	c.stageResults[stage] = res
}
func (c *countingRecorder) SetReportsLoaded(n int)                     { c.reports = n }
func (c *countingRecorder) IncBuildOutcome(metrics.BuildOutcomeLabel) { c.outcomes++ }

func TestBuildReport_DeriveOutcome(t *testing.T) {
	rec := &countingRecorder{}
	r := NewBuildReport("id")
	r.RecordStageResult(StageDiscoverReports, StageResultSuccess, rec)
	r.DeriveOutcome()
	assert.Equal(t, OutcomeSuccess, r.Outcome)

	r.RecordStageResult(StageLoadReports, StageResultFatal, rec)
	r.DeriveOutcome()
	assert.Equal(t, OutcomeFailed, r.Outcome)
	assert.Equal(t, metrics.ResultFatal, rec.stageResults[string(StageLoadReports)])
	assert.Equal(t, []StageName{StageDiscoverReports, StageLoadReports}, r.StageOrder)
}

func TestBuildReport_Summary(t *testing.T) {
	r := NewBuildReport("abc")
	r.Reports = 2
	r.Start = time.Unix(0, 0)
	r.End = time.Unix(1, 0)
	r.Outcome = OutcomeSuccess
	assert.Equal(t, "build=abc reports=2 rows=0 organizations=0 categories=0 outputs=0 written=0 duration=1s outcome=success", r.Summary())
}

func TestStages(t *testing.T) {
	assert.Len(t, Stages(false), 6)
	skipped := Stages(true)
	assert.Len(t, skipped, 5)
	assert.Equal(t, StageDiscoverReports, skipped[0].Name)
}
