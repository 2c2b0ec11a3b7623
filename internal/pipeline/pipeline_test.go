package pipeline

import (
	"bytes"
	"context"
	stdErrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/confdocs/internal/config"
	cerrors "git.home.luguber.info/inful/confdocs/internal/conformance/errors"
	"git.home.luguber.info/inful/confdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/confdocs/internal/markdown"
)

const acmeOld = `apiVersion: gateway.networking.k8s.io/v1
kind: ConformanceReport
implementation:
  organization: acme
  project: gateway
  version: v1.0.0
profiles:
  - name: HTTP
    core:
      result: success
    extended:
      result: partial
      supportedFeatures:
        - HTTPRouteMethodMatching
        - HTTPRouteQueryParamMatching
`

const acmeNew = `implementation:
  organization: acme
  version: v1.1.0
profiles:
  - name: HTTP
    extended:
      supportedFeatures:
        - HTTPRouteHostRewrite
        - HTTPRouteMethodMatching
  - name: TLS
    core:
      result: success
`

const globex = `implementation:
  organization: globex
profiles:
  - name: MESH
    extended:
      supportedFeatures:
        - MeshHTTPRouteRewritePath
`

type fixture struct {
	root string
	cfg  *config.Config
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	reports := filepath.Join(root, "conformance", "reports", "v1.0.0")
	writeFile(t, filepath.Join(reports, "acme", "experimental-v1.0.0-default-report.yaml"), acmeOld)
	writeFile(t, filepath.Join(reports, "acme", "experimental-v1.1.0-default-report.yaml"), acmeNew)
	writeFile(t, filepath.Join(reports, "globex", "standard-2.3-default-report.yaml"), globex)
	writeFile(t, filepath.Join(reports, "globex", "README.md"), "not a report\n")
	writeFile(t, filepath.Join(root, "geps", "index.md"), "# GEPs\n")

	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Copy = []config.CopyConfig{{Source: filepath.Join(root, "geps"), Destination: filepath.Join(root, "site-src", "geps")}}
	cfg.Reports.Directory = reports
	cfg.Output.GeneralTable = filepath.Join(root, "site-src", "implementation-table.md")
	cfg.Output.FeatureMatrix = filepath.Join(root, "site-src", "implementation-table-http.md")
	return fixture{root: root, cfg: cfg}
}

func TestRun_EndToEnd(t *testing.T) {
	fx := newFixture(t)
	rec := &countingRecorder{}

	rep, err := Run(context.Background(), fx.cfg, Options{Recorder: rec, BuildID: "test-build"})
	require.NoError(t, err)

	assert.Equal(t, OutcomeSuccess, rep.Outcome)
	assert.Equal(t, "test-build", rep.BuildID)
	assert.Equal(t, 3, rep.Files)
	assert.Equal(t, 3, rep.Reports)
	assert.Equal(t, 2, rep.Organizations)
	assert.Equal(t, []string{"HTTP", "MESH", "TLS"}, rep.Categories)
	assert.Equal(t, 2, rep.OutputsWritten)
	assert.Equal(t, 1, rep.CopiedFiles)
	assert.Equal(t, []StageName{StageCopyStatic, StageDiscoverReports, StageLoadReports, StageAggregate, StageRender, StageWriteOutputs}, rep.StageOrder)
	assert.Equal(t, 3, rec.reports)
	assert.Equal(t, 1, rec.outcomes)

	_, err = os.Stat(filepath.Join(fx.root, "site-src", "geps", "index.md"))
	require.NoError(t, err)

	general, err := os.ReadFile(fx.cfg.Output.GeneralTable)
	require.NoError(t, err)
	body := string(general)
	assert.True(t, strings.HasPrefix(body, strings.TrimSpace(fx.cfg.Tables.Preamble)))
	assert.Contains(t, body, "| acme ")
	assert.Contains(t, body, "v1.1.0")
	assert.NotContains(t, body, "v1.0.0 ")
	assert.Contains(t, body, "HTTPRouteHostRewrite, HTTPRouteMethodMatching")
	assert.NotContains(t, body, "MESH: Supported Features")
	assert.Equal(t, 1, strings.Count(body, "| acme "))
	assert.Equal(t, []markdown.Shape{{Columns: 5, Rows: 2}}, markdown.TableShapes(general))

	matrix, err := os.ReadFile(fx.cfg.Output.FeatureMatrix)
	require.NoError(t, err)
	assert.Contains(t, string(matrix), "## HTTP Extended Features")
	for _, line := range strings.Split(string(matrix), "\n") {
		if strings.HasPrefix(line, "| HTTPRouteHostRewrite ") {
			assert.Contains(t, line, ":white_check_mark:")
		}
		if strings.HasPrefix(line, "| HTTPRouteQueryParamMatching ") {
			// acme's latest version no longer claims it; globex has no HTTP profile.
			assert.NotContains(t, line, ":white_check_mark:")
		}
	}
}

func TestRun_RerunIsByteIdentical(t *testing.T) {
	fx := newFixture(t)

	_, err := Run(context.Background(), fx.cfg, Options{})
	require.NoError(t, err)
	first, err := os.ReadFile(fx.cfg.Output.GeneralTable)
	require.NoError(t, err)
	firstMatrix, err := os.ReadFile(fx.cfg.Output.FeatureMatrix)
	require.NoError(t, err)

	rep, err := Run(context.Background(), fx.cfg, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, rep.OutputsWritten)
	assert.Equal(t, 2, rep.OutputsUnchanged)

	second, err := os.ReadFile(fx.cfg.Output.GeneralTable)
	require.NoError(t, err)
	secondMatrix, err := os.ReadFile(fx.cfg.Output.FeatureMatrix)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, firstMatrix, secondMatrix)
}

func TestRun_SkipCopy(t *testing.T) {
	fx := newFixture(t)
	fx.cfg.Copy = []config.CopyConfig{{Source: filepath.Join(fx.root, "missing"), Destination: filepath.Join(fx.root, "dst")}}

	rep, err := Run(context.Background(), fx.cfg, Options{SkipCopy: true})
	require.NoError(t, err)
	assert.NotContains(t, rep.StageOrder, StageCopyStatic)

	rep, err = Run(context.Background(), fx.cfg, Options{})
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, rep.Outcome)
	assert.Equal(t, StageResultFatal, rep.StageResults[StageCopyStatic])
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestRun_NoReportsIsFatal(t *testing.T) {
	fx := newFixture(t)
	fx.cfg.Reports.Pattern = "**/*-nothing.yaml"

	rep, err := Run(context.Background(), fx.cfg, Options{SkipCopy: true})
	require.Error(t, err)
	assert.True(t, stdErrors.Is(err, cerrors.ErrNoReports))
	var se *StageError
	require.True(t, stdErrors.As(err, &se))
	assert.Equal(t, StageDiscoverReports, se.Stage)
	assert.Equal(t, OutcomeFailed, rep.Outcome)

	_, statErr := os.Stat(fx.cfg.Output.GeneralTable)
	assert.True(t, os.IsNotExist(statErr), "no output is written on failure")
}

func TestRun_FeatureListCategoryMismatch(t *testing.T) {
	fx := newFixture(t)
	path := filepath.Join(fx.root, "tls.yaml")
	writeFile(t, path, "version: v1\ncategory: TLS\nfeatures: [TLSRouteSNI]\n")
	fx.cfg.Tables.FeaturesFile = path

	_, err := Run(context.Background(), fx.cfg, Options{SkipCopy: true})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestRun_Canceled(t *testing.T) {
	fx := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := Run(ctx, fx.cfg, Options{})
	require.Error(t, err)
	assert.True(t, stdErrors.Is(err, context.Canceled))
	assert.Equal(t, OutcomeCanceled, rep.Outcome)
}

func TestRun_MatrixCategoryIgnoresCase(t *testing.T) {
	fx := newFixture(t)
	fx.cfg.Tables.MatrixCategory = "http"

	_, err := Run(context.Background(), fx.cfg, Options{SkipCopy: true})
	require.NoError(t, err)

	matrix, err := os.ReadFile(fx.cfg.Output.FeatureMatrix)
	require.NoError(t, err)
	body := string(matrix)
	assert.Contains(t, body, "## HTTP Extended Features")

	var hostRewrite string
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "| HTTPRouteHostRewrite ") {
			hostRewrite = line
		}
	}
	require.NotEmpty(t, hostRewrite)
	// Columns are Features, acme, globex.
	cells := strings.Split(strings.Trim(hostRewrite, "|"), "|")
	require.Len(t, cells, 3)
	assert.Equal(t, ":white_check_mark:", strings.TrimSpace(cells[1]))
	assert.Equal(t, ":x:", strings.TrimSpace(cells[2]))
}

func TestRun_ExcludedCategoriesIgnoreCase(t *testing.T) {
	fx := newFixture(t)
	fx.cfg.Tables.ExcludedCategories = []string{"mesh"}

	_, err := Run(context.Background(), fx.cfg, Options{SkipCopy: true})
	require.NoError(t, err)

	general, err := os.ReadFile(fx.cfg.Output.GeneralTable)
	require.NoError(t, err)
	assert.NotContains(t, string(general), "MESH: Supported Features")
}

func TestRun_EveryLogLineCarriesBuildID(t *testing.T) {
	fx := newFixture(t)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Run(context.Background(), fx.cfg, Options{Logger: logger, BuildID: "b-42"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.Contains(t, line, "build_id=b-42", line)
	}
	assert.Equal(t, 3, strings.Count(logs.String(), `msg="Loaded report"`))
	assert.Contains(t, logs.String(), "summary=")
}
