package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/confdocs/internal/config"
	"git.home.luguber.info/inful/confdocs/internal/logfields"
	"git.home.luguber.info/inful/confdocs/internal/metrics"
	"git.home.luguber.info/inful/confdocs/internal/pipeline"
)

// BuildCmd implements the 'build' command: the full pre-build hook.
type BuildCmd struct {
	SkipCopy    bool   `name:"skip-copy" help:"Do not copy static content into the site source"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in textfile format to this path (overrides monitoring.metrics.textfile)" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	return RunBuild(g, cfg, b.SkipCopy, b.MetricsFile)
}

// RunBuild executes the pipeline and exports metrics when a textfile is configured.
func RunBuild(g *Global, cfg *config.Config, skipCopy bool, metricsFile string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if metricsFile == "" {
		metricsFile = cfg.Monitoring.Metrics.Textfile
	}
	var (
		recorder metrics.Recorder = metrics.NoopRecorder{}
		registry *prom.Registry
	)
	if metricsFile != "" {
		registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	rep, runErr := pipeline.Run(ctx, cfg, pipeline.Options{
		SkipCopy: skipCopy,
		Recorder: recorder,
		Logger:   g.Logger,
	})

	if registry != nil {
		if err := metrics.WriteTextfile(metricsFile, registry); err != nil {
			g.Logger.Warn("Failed to export metrics", logfields.Path(metricsFile), logfields.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}

	for _, out := range rep.Outputs {
		_, _ = fmt.Fprintf(g.Out, "wrote %s\n", out)
	}
	return nil
}
