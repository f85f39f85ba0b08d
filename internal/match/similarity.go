package match

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Ratio returns a 0-100 similarity score between two strings based on
// Levenshtein edit distance. Case-sensitive; callers normalize beforehand.
func Ratio(a, b string) float64 {
	if a == b {
		return 100
	}
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 100
	}

	dist := fuzzy.LevenshteinDistance(a, b)
	return 100 * (1 - float64(dist)/float64(longest))
}

// PartialRatio returns a substring-tolerant 0-100 similarity score.
//
// The shorter string is compared against every equal-length window of the
// longer one and the best window ratio wins, so "Nice Song" scores high
// against "Nice Song - Topic". Comparison is case-insensitive. An empty
// string scores 0 against anything non-empty; two empty strings score 100.
func PartialRatio(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == "" && b == "" {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	if len(shorter) == len(longer) {
		return Ratio(string(shorter), string(longer))
	}

	best := 0.0
	window := len(shorter)
	for i := 0; i+window <= len(longer); i++ {
		score := Ratio(string(shorter), string(longer[i:i+window]))
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}
	return best
}
