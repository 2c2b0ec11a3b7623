package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID      = "build_id"
	KeyStage        = "stage"
	KeyDurationMS   = "duration_ms"
	KeyReport       = "report"
	KeyOrganization = "organization"
	KeyVersion      = "version"
	KeyCategory     = "category"
	KeyOutput       = "output"
	KeyPath         = "path"
	KeyCount        = "count"
	KeyError        = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr       { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr       { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Report(path string) slog.Attr      { return slog.String(KeyReport, path) }
func Organization(org string) slog.Attr { return slog.String(KeyOrganization, org) }
func Version(v string) slog.Attr        { return slog.String(KeyVersion, v) }
func Category(c string) slog.Attr       { return slog.String(KeyCategory, c) }
func Output(path string) slog.Attr      { return slog.String(KeyOutput, path) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr             { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
