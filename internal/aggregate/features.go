package aggregate

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/confdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/confdocs/internal/util/sets"
)

//go:embed features/*.yaml
var builtinFeatures embed.FS

// FeatureList is the versioned set of feature identifiers rendered as matrix rows.
type FeatureList struct {
	Version  string   `yaml:"version"`
	Category string   `yaml:"category"`
	Features []string `yaml:"features"`
}

// BuiltinFeatureList returns the embedded list for category (case-insensitive).
func BuiltinFeatureList(category string) (*FeatureList, error) {
	name := "features/" + strings.ToLower(strings.TrimSpace(category)) + ".yaml"
	data, err := fs.ReadFile(builtinFeatures, name)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("no built-in feature list for category %q; set tables.features_file", category)).Build()
	}
	return ParseFeatureList(data, name)
}

// LoadFeatureList reads a feature list from disk.
func LoadFeatureList(path string) (*FeatureList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read feature list").
			Fatal().WithContext("path", path).Build()
	}
	return ParseFeatureList(data, path)
}

// ParseFeatureList decodes and validates a feature list. source only labels errors.
func ParseFeatureList(data []byte, source string) (*FeatureList, error) {
	var fl FeatureList
	if err := yaml.Unmarshal(data, &fl); err != nil {
		return nil, errors.WrapError(err, errors.CategoryParse, "feature list is not valid YAML").
			Fatal().WithContext("path", source).Build()
	}

	fl.Category = strings.TrimSpace(fl.Category)
	if fl.Category == "" {
		return nil, errors.SchemaError("feature list has no category").WithContext("path", source).Build()
	}
	if len(fl.Features) == 0 {
		return nil, errors.SchemaError("feature list is empty").WithContext("path", source).Build()
	}

	seen := sets.New[string]()
	for i, f := range fl.Features {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, errors.SchemaError(fmt.Sprintf("feature list entry %d is empty", i)).WithContext("path", source).Build()
		}
		if seen.Has(f) {
			return nil, errors.SchemaError(fmt.Sprintf("feature %q listed twice", f)).WithContext("path", source).Build()
		}
		seen.Add(f)
		fl.Features[i] = f
	}
	return &fl, nil
}
