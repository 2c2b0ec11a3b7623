package conformance

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions orders implementation versions. It is a total order:
// strings that parse as semantic versions (a leading "v" is accepted) sort after
// those that do not and compare semantically; everything else compares
// lexicographically. Semantically equal versions ("v1.0.0", "1.0.0") fall back
// to the raw string so the result is never ambiguous.
func CompareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)

	switch {
	case errA == nil && errB == nil:
		if c := va.Compare(vb); c != 0 {
			return c
		}
	case errA == nil:
		return 1
	case errB == nil:
		return -1
	}
	return strings.Compare(a, b)
}
