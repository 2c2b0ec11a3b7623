package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/confdocs/internal/config"
	"git.home.luguber.info/inful/confdocs/internal/foundation/errors"
)

const report = `implementation:
  organization: acme
  version: v1.1.0
profiles:
  - name: HTTP
    extended:
      supportedFeatures: [HTTPRouteHostRewrite]
  - name: TLS
    core:
      result: success
`

type harness struct {
	out  *bytes.Buffer
	logs *bytes.Buffer
}

// run parses args and runs the selected command inside dir.
func run(t *testing.T, dir string, args ...string) (harness, error) {
	t.Helper()
	t.Chdir(dir)

	h := harness{out: &bytes.Buffer{}, logs: &bytes.Buffer{}}
	g := &Global{Out: h.out, LogOut: h.logs}
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("confdocs"),
		kong.Bind(g),
		Vars("test"),
		kong.Exit(func(int) { t.Fatalf("unexpected exit") }),
	)
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	if err != nil {
		return h, err
	}
	return h, ctx.Run(g, cli)
}

func writeSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "conformance", "reports", "v1.0.0", "acme", "experimental-v1.1.0-default-report.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(report), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "geps"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "geps", "index.md"), []byte("# GEPs\n"), 0o644))
	return dir
}

func TestBuildIsDefaultCommand(t *testing.T) {
	dir := writeSite(t)

	h, err := run(t, dir)
	require.NoError(t, err)

	assert.Contains(t, h.out.String(), "wrote "+config.DefaultGeneralTable)
	assert.Contains(t, h.out.String(), "wrote "+config.DefaultFeatureMatrix)
	assert.FileExists(t, filepath.Join(dir, "site-src", "geps", "index.md"))
	assert.FileExists(t, filepath.Join(dir, config.DefaultGeneralTable))
	assert.Contains(t, h.logs.String(), "build_id=")
}

func TestBuildSkipCopyAndMetricsFile(t *testing.T) {
	dir := writeSite(t)
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "geps")))

	_, err := run(t, dir, "build", "--skip-copy", "--metrics-file", "metrics/confdocs.prom")
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(dir, "site-src", "geps"))
	data, err := os.ReadFile(filepath.Join(dir, "metrics", "confdocs.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "confdocs_reports_loaded 1")
	assert.Contains(t, string(data), `confdocs_build_outcomes_total{outcome="success"} 1`)
}

func TestBuildMissingStaticSourceFails(t *testing.T) {
	dir := writeSite(t)
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "geps")))

	_, err := run(t, dir, "build")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
	assert.Equal(t, 11, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestGenerateSkipsCopy(t *testing.T) {
	dir := writeSite(t)

	_, err := run(t, dir, "generate")
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(dir, "site-src", "geps"))
	assert.FileExists(t, filepath.Join(dir, config.DefaultFeatureMatrix))
}

func TestDiscover(t *testing.T) {
	dir := writeSite(t)

	h, err := run(t, dir, "discover")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
	require.Len(t, lines, 4, h.out.String())
	assert.Contains(t, lines[2], "acme/experimental-v1.1.0-default-report.yaml")
	assert.Contains(t, lines[2], "| HTTP ")
	assert.Contains(t, lines[3], "| TLS ")
	assert.Contains(t, lines[3], "| success ")
	assert.NoFileExists(t, filepath.Join(dir, config.DefaultGeneralTable))
}

func TestDiscoverMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "discover", "-d", "nope")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	h, err := run(t, dir, "init")
	require.NoError(t, err)
	assert.Contains(t, h.out.String(), config.DefaultPath)
	assert.FileExists(t, filepath.Join(dir, config.DefaultPath))

	_, err = run(t, dir, "init")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))

	_, err = run(t, dir, "init", "--force")
	require.NoError(t, err)
}

func TestExplicitMissingConfig(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "--config", "absent.yaml", "generate")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestResolveLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	assert.Equal(t, "DEBUG", resolveLevel(true, config.LogLevelError).String())
	assert.Equal(t, "ERROR", resolveLevel(false, config.LogLevelError).String())

	t.Setenv(EnvLogLevel, "warning")
	assert.Equal(t, "WARN", resolveLevel(false, config.LogLevelError).String())
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, resolveLevel(false, ""), config.LogFormatJSON).Info("hello")
	assert.True(t, strings.HasPrefix(buf.String(), "{"), buf.String())
}
