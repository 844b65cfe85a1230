package doctor

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b. A leading "v" is ignored.
func CompareVersions(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// AtLeast reports whether version satisfies the minimum.
func AtLeast(version, minimum string) (bool, error) {
	cmp, err := CompareVersions(version, minimum)
	if err != nil {
		return false, err
	}
	return cmp >= 0, nil
}

// parseSemver strips whitespace and a leading "v" before parsing, so raw
// "node --version" output can be passed in.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.NewVersion(version)
}
