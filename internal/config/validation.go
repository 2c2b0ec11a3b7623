package config

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/confdocs/internal/foundation/errors"
)

// ValidateConfig validates a configuration after defaults were applied.
func ValidateConfig(cfg *Config) error {
	return newConfigurationValidator(cfg).validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateCopy(); err != nil {
		return err
	}
	if err := cv.validateReports(); err != nil {
		return err
	}
	if err := cv.validateTables(); err != nil {
		return err
	}
	return cv.validateOutput()
}

func (cv *configurationValidator) validateCopy() error {
	for i, c := range cv.config.Copy {
		if c.Source == "" || c.Destination == "" {
			return invalid(fmt.Sprintf("copy[%d] requires both source and destination", i))
		}
		if filepath.Clean(c.Source) == filepath.Clean(c.Destination) {
			return invalid(fmt.Sprintf("copy[%d] source and destination are the same path", i))
		}
	}
	return nil
}

func (cv *configurationValidator) validateReports() error {
	if !doublestar.ValidatePattern(cv.config.Reports.Pattern) {
		return invalid(fmt.Sprintf("reports.pattern is not a valid glob: %q", cv.config.Reports.Pattern))
	}
	return nil
}

func (cv *configurationValidator) validateTables() error {
	t := cv.config.Tables
	if t.SupportedMarker == t.UnsupportedMarker {
		return invalid("tables.supported_marker and tables.unsupported_marker must differ")
	}
	for _, c := range t.ExcludedCategories {
		if c == "" {
			return invalid("tables.excluded_categories contains an empty category")
		}
	}
	return nil
}

func (cv *configurationValidator) validateOutput() error {
	o := cv.config.Output
	if filepath.Clean(o.GeneralTable) == filepath.Clean(o.FeatureMatrix) {
		return invalid("output.general_table and output.feature_matrix must be different files")
	}
	return nil
}

func invalid(msg string) error {
	return errors.ValidationError(msg).Build()
}
