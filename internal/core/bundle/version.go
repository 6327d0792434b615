package bundle

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is an OSGi bundle version: a numeric major.minor.micro triple
// plus an optional textual qualifier (e.g. "3.10.0.v20140606-1445").
// Versions are totally ordered: the triple compares numerically, the
// qualifier breaks ties lexicographically.
type Version struct {
	triple    *semver.Version
	qualifier string
}

// ParseVersion parses an OSGi-style version string. Missing minor/micro
// segments default to zero, matching the platform's own version parser.
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, fmt.Errorf("version string cannot be empty")
	}

	parts := strings.SplitN(s, ".", 4)
	qualifier := ""
	if len(parts) == 4 {
		qualifier = parts[3]
		if !validQualifier(qualifier) {
			return Version{}, fmt.Errorf("version %q has an invalid qualifier %q", s, qualifier)
		}
		parts = parts[:3]
	}

	triple, err := semver.NewVersion(strings.Join(parts, "."))
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}
	if triple.Prerelease() != "" || triple.Metadata() != "" {
		return Version{}, fmt.Errorf("invalid version %q: expected numeric major.minor.micro", s)
	}

	return Version{triple: triple, qualifier: qualifier}, nil
}

// validQualifier reports whether q is a legal OSGi qualifier
// (alphanumerics, underscores, and hyphens only).
func validQualifier(q string) bool {
	if q == "" {
		return false
	}
	for _, r := range q {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

// MustParseVersion is ParseVersion that panics on error, for use in tests
// and fixed tables.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1, 0, or 1 if v is less than, equal to, or greater
// than o.
func (v Version) Compare(o Version) int {
	if c := v.triple.Compare(o.triple); c != 0 {
		return c
	}
	return strings.Compare(v.qualifier, o.qualifier)
}

// String renders the normalized major.minor.micro[.qualifier] form.
func (v Version) String() string {
	if v.triple == nil {
		return ""
	}
	s := fmt.Sprintf("%d.%d.%d", v.triple.Major(), v.triple.Minor(), v.triple.Patch())
	if v.qualifier != "" {
		s += "." + v.qualifier
	}
	return s
}
