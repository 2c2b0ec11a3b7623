package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/confdocs/internal/config"
)

// EnvLogLevel overrides the configured log level when set.
const EnvLogLevel = "CONFDOCS_LOG_LEVEL"

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer // user-facing output; logs go to LogOut
	LogOut io.Writer
}

// Vars holds the interpolation variables referenced by CLI help and flags.
func Vars(versionString string) kong.Vars {
	return kong.Vars{
		"version":        versionString,
		"default_config": config.DefaultPath,
	}
}

// NewGlobal returns the process-wide defaults: stdout for results, stderr for logs.
func NewGlobal() *Global {
	return &Global{Logger: slog.Default(), Out: os.Stdout, LogOut: os.Stderr}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: ${default_config} when present)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" default:"withargs" help:"Copy static content and generate conformance tables (default)"`
	Generate GenerateCmd `cmd:"" help:"Generate conformance tables only"`
	Discover DiscoverCmd `cmd:"" help:"List discovered conformance reports without writing tables"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; sets up logging before the config is read.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	g.Logger = newLogger(g.LogOut, resolveLevel(c.Verbose, ""), config.LogFormatText)
	slog.SetDefault(g.Logger)
	return nil
}

// loadConfig reads the configuration and reconfigures logging from it.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	lc := cfg.Monitoring.Logging
	g.Logger = newLogger(g.LogOut, resolveLevel(root.Verbose, lc.Level), lc.Format)
	slog.SetDefault(g.Logger)
	return cfg, nil
}

// resolveLevel applies precedence: --verbose > CONFDOCS_LOG_LEVEL > config.
func resolveLevel(verbose bool, configured config.LogLevel) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	if env := os.Getenv(EnvLogLevel); env != "" {
		return config.NormalizeLogLevel(env).SlogLevel()
	}
	return config.NormalizeLogLevel(string(configured)).SlogLevel()
}

func newLogger(w io.Writer, level slog.Level, format config.LogFormat) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	if config.NormalizeLogFormat(string(format)) == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
