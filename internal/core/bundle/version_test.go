package bundle

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseVersion_ValidInputs tests version parsing across the forms the
// platform accepts
func TestParseVersion_ValidInputs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "FullTriple",
			input:    "3.10.0",
			expected: "3.10.0",
		},
		{
			name:     "TripleWithQualifier",
			input:    "3.10.0.v20140606-1445",
			expected: "3.10.0.v20140606-1445",
		},
		{
			name:     "MajorOnly_NormalizesToTriple",
			input:    "3",
			expected: "3.0.0",
		},
		{
			name:     "MajorMinor_NormalizesToTriple",
			input:    "3.10",
			expected: "3.10.0",
		},
		{
			name:     "NumericQualifier",
			input:    "1.2.3.4",
			expected: "1.2.3.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVersion(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, v.String(), "normalized form should match")
		})
	}
}

// TestParseVersion_InvalidInputs tests rejection of malformed versions
func TestParseVersion_InvalidInputs(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "Empty", input: ""},
		{name: "NonNumeric", input: "abc"},
		{name: "NonNumericSegment", input: "1.2.x"},
		{name: "EmptyQualifier", input: "1.2.3."},
		{name: "QualifierWithDot", input: "1.2.3.a.b"},
		{name: "NegativeSegment", input: "-1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVersion(tt.input)

			assert.Error(t, err, "input %q should be rejected", tt.input)
		})
	}
}

// TestVersion_Compare_TotalOrdering tests that versions sort by numeric
// triple first and qualifier second
func TestVersion_Compare_TotalOrdering(t *testing.T) {
	ordered := []Version{
		MustParseVersion("1.0.0"),
		MustParseVersion("1.0.1"),
		MustParseVersion("1.2.0"),
		MustParseVersion("1.2.0.a"),
		MustParseVersion("1.2.0.b"),
		MustParseVersion("1.10.0"),
		MustParseVersion("2.0.0"),
	}

	for i := range ordered {
		for j := range ordered {
			got := ordered[i].Compare(ordered[j])
			switch {
			case i < j:
				assert.Negative(t, got, "%s should sort before %s", ordered[i], ordered[j])
			case i > j:
				assert.Positive(t, got, "%s should sort after %s", ordered[i], ordered[j])
			default:
				assert.Zero(t, got, "%s should equal itself", ordered[i])
			}
		}
	}
}

// TestVersion_Compare_SortsShuffledInput tests sorting a shuffled slice
func TestVersion_Compare_SortsShuffledInput(t *testing.T) {
	versions := []Version{
		MustParseVersion("2.0.0"),
		MustParseVersion("1.10.0"),
		MustParseVersion("1.2.0.b"),
		MustParseVersion("1.0.0"),
		MustParseVersion("1.2.0"),
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) < 0
	})

	rendered := make([]string, len(versions))
	for i, v := range versions {
		rendered[i] = v.String()
	}
	assert.Equal(t, []string{"1.0.0", "1.2.0", "1.2.0.b", "1.10.0", "2.0.0"}, rendered)
}
