// Package metrics records build and stage metrics for confdocs runs.
//
// Components receive a Recorder and default to NoopRecorder, so call sites
// never check for nil:
//
//	rec := metrics.Recorder(metrics.NoopRecorder{})
//	if cfg.Monitoring.Metrics.Textfile != "" {
//	    reg := prom.NewRegistry()
//	    rec = metrics.NewPrometheusRecorder(reg)
//	    defer metrics.WriteTextfile(cfg.Monitoring.Metrics.Textfile, reg)
//	}
//
// A one-shot hook has nothing to scrape, so the Prometheus registry is written
// in node-exporter textfile format after the build instead of being served.
package metrics
