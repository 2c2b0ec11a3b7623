package config

import "strings"

// Default values mirror the documentation site layout the hook was written for.
const (
	DefaultReportsDirectory = "conformance/reports/v1.0.0"
	DefaultReportsPattern   = "**/*-report.yaml"
	DefaultMatrixCategory   = "HTTP"
	DefaultSupportedMarker  = ":white_check_mark:"
	DefaultUnsupported      = ":x:"
	DefaultMissingValue     = "N/A"
	DefaultGeneralTable     = "site-src/implementation-table.md"
	DefaultFeatureMatrix    = "site-src/implementation-table-http.md"

	DefaultPreamble = "The following tables are populated from the conformance reports " +
		"[uploaded by project implementations](https://github.com/kubernetes-sigs/gateway-api/tree/main/conformance/reports). " +
		"They are separated into the extended features that each project supports listed in their reports."
)

// DefaultExcludedCategories lists categories whose Supported Features column is
// always dropped from the general table. No implementation reports MESH features yet.
var DefaultExcludedCategories = []string{"MESH"}

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// CopyDefaultApplier handles static content copy defaults.
type CopyDefaultApplier struct{}

func (CopyDefaultApplier) Domain() string { return "copy" }

func (CopyDefaultApplier) ApplyDefaults(cfg *Config) error {
	// nil means unset; an explicit empty list disables copying.
	if cfg.Copy == nil {
		cfg.Copy = []CopyConfig{{Source: "geps", Destination: "site-src/geps"}}
	}
	return nil
}

// ReportsDefaultApplier handles report discovery defaults.
type ReportsDefaultApplier struct{}

func (ReportsDefaultApplier) Domain() string { return "reports" }

func (ReportsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Reports.Directory == "" {
		cfg.Reports.Directory = DefaultReportsDirectory
	}
	if cfg.Reports.Pattern == "" {
		cfg.Reports.Pattern = DefaultReportsPattern
	}
	return nil
}

// TablesDefaultApplier handles table shape and wording defaults.
type TablesDefaultApplier struct{}

func (TablesDefaultApplier) Domain() string { return "tables" }

func (TablesDefaultApplier) ApplyDefaults(cfg *Config) error {
	t := &cfg.Tables
	if t.Preamble == "" {
		t.Preamble = DefaultPreamble
	}
	if t.ExcludedCategories == nil {
		t.ExcludedCategories = append([]string(nil), DefaultExcludedCategories...)
	}
	for i, c := range t.ExcludedCategories {
		t.ExcludedCategories[i] = strings.TrimSpace(c)
	}
	t.MatrixCategory = strings.TrimSpace(t.MatrixCategory)
	if t.MatrixCategory == "" {
		t.MatrixCategory = DefaultMatrixCategory
	}
	if t.SupportedMarker == "" {
		t.SupportedMarker = DefaultSupportedMarker
	}
	if t.UnsupportedMarker == "" {
		t.UnsupportedMarker = DefaultUnsupported
	}
	if t.MissingValue == "" {
		t.MissingValue = DefaultMissingValue
	}
	return nil
}

// OutputDefaultApplier handles output file defaults.
type OutputDefaultApplier struct{}

func (OutputDefaultApplier) Domain() string { return "output" }

func (OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Output.GeneralTable == "" {
		cfg.Output.GeneralTable = DefaultGeneralTable
	}
	if cfg.Output.FeatureMatrix == "" {
		cfg.Output.FeatureMatrix = DefaultFeatureMatrix
	}
	return nil
}

// MonitoringDefaultApplier handles logging defaults.
type MonitoringDefaultApplier struct{}

func (MonitoringDefaultApplier) Domain() string { return "monitoring" }

func (MonitoringDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Monitoring.Logging.Level = NormalizeLogLevel(string(cfg.Monitoring.Logging.Level))
	cfg.Monitoring.Logging.Format = NormalizeLogFormat(string(cfg.Monitoring.Logging.Format))
	return nil
}

var defaultAppliers = []DefaultApplier{
	CopyDefaultApplier{},
	ReportsDefaultApplier{},
	TablesDefaultApplier{},
	OutputDefaultApplier{},
	MonitoringDefaultApplier{},
}

func applyDefaults(cfg *Config) error {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	for _, a := range defaultAppliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
