// Package version normalizes and orders the semantic versions that name
// stored configurations.
//
// Versions are written without the "v" prefix ("1.2.0"). Short forms are
// accepted and completed, so "1" and "v1.0" both normalize to "1.0.0".
// Build metadata ("+build") is dropped.
package version

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/k3tzchen/conf/pkg"
)

// Latest selects the newest stored version wherever a version is expected.
const Latest = "latest"

var (
	// ErrInvalid is returned for a string that is not a semantic version.
	ErrInvalid = pkg.ErrSyntax.Kind("invalid version")
	// ErrPart is returned for an unknown version part name.
	ErrPart = pkg.ErrSyntax.Kind("invalid version part")
)

// Part names a component of a version incremented by [Bump].
type Part string

const (
	Major Part = "major"
	Minor Part = "minor"
	Patch Part = "patch"
)

// Parts returns the names of all version parts.
func Parts() []string { return []string{string(Major), string(Minor), string(Patch)} }

// ParsePart parses a part name, ignoring case.
func ParsePart(s string) (Part, error) {
	p := Part(strings.ToLower(strings.TrimSpace(s)))

	if !slices.Contains(Parts(), string(p)) {
		return "", ErrPart.Wrap(fmt.Errorf("%q", s))
	}

	return p, nil
}

// IsLatest reports whether s selects the newest version.
func IsLatest(s string) bool {
	s = strings.TrimSpace(s)

	return s == "" || strings.EqualFold(s, Latest)
}

// Normalize returns the canonical form of s without the "v" prefix.
func Normalize(s string) (string, error) {
	v := strings.TrimSpace(s)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}

	if !semver.IsValid(v) {
		return "", ErrInvalid.Wrap(fmt.Errorf("%q", s))
	}

	return strings.TrimPrefix(semver.Canonical(v), "v"), nil
}

// Valid reports whether s normalizes without error.
func Valid(s string) bool {
	_, err := Normalize(s)

	return err == nil
}

// Compare returns -1, 0, or +1 as a is less than, equal to, or greater
// than b. Invalid versions compare less than all valid ones.
func Compare(a, b string) int {
	return semver.Compare(prefixed(a), prefixed(b))
}

// Sort sorts versions in ascending order.
func Sort(versions []string) {
	slices.SortStableFunc(versions, Compare)
}

// Max returns the greatest valid version, or false if there is none.
func Max(versions []string) (string, bool) {
	var best string

	for _, v := range versions {
		if Valid(v) && (best == "" || Compare(v, best) > 0) {
			best = v
		}
	}

	return best, best != ""
}

// Bump increments part of v. Lower parts reset to zero. Bumping the patch
// of a prerelease yields its release, so "1.2.3-rc.1" becomes "1.2.3".
func Bump(v string, part Part) (string, error) {
	n, err := Normalize(v)
	if err != nil {
		return "", err
	}

	core, pre, _ := strings.Cut(n, "-")

	f := strings.Split(core, ".")
	nums := make([]int, len(f))

	for i, s := range f {
		if nums[i], err = strconv.Atoi(s); err != nil {
			return "", ErrInvalid.Wrap(err)
		}
	}

	switch part {
	case Major:
		nums = []int{nums[0] + 1, 0, 0}
	case Minor:
		nums = []int{nums[0], nums[1] + 1, 0}
	case Patch:
		if pre == "" {
			nums[2]++
		}
	default:
		return "", ErrPart.Wrap(fmt.Errorf("%q", part))
	}

	return fmt.Sprintf("%d.%d.%d", nums[0], nums[1], nums[2]), nil
}

func prefixed(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}

	return s
}
