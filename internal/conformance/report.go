package conformance

// Report is a conformance report document submitted by an implementation.
// Only the fields the documentation tables need are modelled; unknown keys are ignored.
type Report struct {
	APIVersion        string         `yaml:"apiVersion"`
	Kind              string         `yaml:"kind"`
	Date              string         `yaml:"date"`
	GatewayAPIVersion string         `yaml:"gatewayAPIVersion"`
	GatewayAPIChannel string         `yaml:"gatewayAPIChannel"`
	Mode              string         `yaml:"mode"`
	Implementation    Implementation `yaml:"implementation"`
	Profiles          []Profile      `yaml:"profiles"`

	// Source is filled in by Load and never decoded.
	Source Source `yaml:"-"`
}

// Implementation identifies who submitted the report.
type Implementation struct {
	Organization string   `yaml:"organization"`
	Project      string   `yaml:"project"`
	URL          string   `yaml:"url"`
	Version      string   `yaml:"version"`
	Contact      []string `yaml:"contact"`
}

// Profile is one test category (HTTP, TLS, MESH, ...) within a report.
type Profile struct {
	Name     string          `yaml:"name"`
	Summary  string          `yaml:"summary"`
	Core     *Result         `yaml:"core"`
	Extended *ExtendedResult `yaml:"extended"`
}

// Result is the outcome of a group of conformance tests.
type Result struct {
	Result       string     `yaml:"result"`
	Statistics   Statistics `yaml:"statistics"`
	FailedTests  []string   `yaml:"failedTests"`
	SkippedTests []string   `yaml:"skippedTests"`
}

// Statistics counts test outcomes. Report keys are capitalised.
type Statistics struct {
	Passed  int `yaml:"Passed"`
	Failed  int `yaml:"Failed"`
	Skipped int `yaml:"Skipped"`
}

// ExtendedResult adds the optional feature claims to a Result.
type ExtendedResult struct {
	Result              `yaml:",inline"`
	SupportedFeatures   []string `yaml:"supportedFeatures"`
	UnsupportedFeatures []string `yaml:"unsupportedFeatures"`
}

// SupportedFeatures returns the profile's claimed extended features.
// A profile without an extended block supports nothing.
func (p Profile) SupportedFeatures() []string {
	if p.Extended == nil {
		return nil
	}
	return p.Extended.SupportedFeatures
}

// Source records where a report was loaded from.
type Source struct {
	Path     string   // Path as discovered (root joined with the relative match)
	RelPath  string   // Path relative to the reports root, slash separated
	FileName FileName // Metadata parsed from the base name
}
