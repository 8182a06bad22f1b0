package similarity

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Method selects the ratio used once containment fails.
type Method string

const (
	MethodSequence    Method = "sequence"
	MethodLevenshtein Method = "levenshtein"
)

// DefaultThreshold is the ratio a pair must exceed to count as similar.
const DefaultThreshold = 0.6

// ParseMethod maps a configuration value to a Method.
func ParseMethod(value string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(value))) {
	case "", MethodSequence:
		return MethodSequence, nil
	case MethodLevenshtein:
		return MethodLevenshtein, nil
	default:
		return "", fmt.Errorf("unknown similarity method %q", value)
	}
}

// Matcher compares folder names. Threshold is used as given, so a zero
// threshold matches any pair with a positive ratio; Default supplies
// DefaultThreshold.
type Matcher struct {
	Threshold   float64
	Method      Method
	FoldAccents bool
}

// Default returns the matcher used when nothing is configured.
func Default() Matcher {
	return Matcher{Threshold: DefaultThreshold, Method: MethodSequence}
}

// Similar reports whether a and b name the same thing: after normalization
// one contains the other, or their ratio is strictly above the threshold.
// Similar(a, b) == Similar(b, a) for every pair.
func (m Matcher) Similar(a, b string) bool {
	na, nb := m.normalize(a), m.normalize(b)
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	return m.ratio(na, nb) > m.Threshold
}

// Score returns 1 for containment and the configured ratio otherwise.
func (m Matcher) Score(a, b string) float64 {
	na, nb := m.normalize(a), m.normalize(b)
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 1
	}
	return m.ratio(na, nb)
}

func (m Matcher) normalize(name string) string {
	if m.FoldAccents {
		name = FoldAccents(name)
	}
	return Normalize(name)
}

func (m Matcher) ratio(a, b string) float64 {
	// the matching-blocks ratio depends on argument order when the longest
	// match is ambiguous
	if b < a {
		a, b = b, a
	}
	switch m.Method {
	case MethodLevenshtein:
		return LevenshteinRatio(a, b)
	default:
		return SequenceRatio(a, b)
	}
}

// LevenshteinRatio returns 1 - distance/maxLen, or 1 for two empty strings.
func LevenshteinRatio(a, b string) float64 {
	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(fuzzy.LevenshteinDistance(a, b))/float64(longest)
}

// Similar applies the default matcher.
func Similar(a, b string) bool {
	return Default().Similar(a, b)
}
