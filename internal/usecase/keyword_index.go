package usecase

import (
	ahocorasick "github.com/cloudflare/ahocorasick"
)

// keywordIndex answers "does this needle occur in the string" for a fixed
// dictionary in a single Aho-Corasick pass over the input.
type keywordIndex struct {
	matcher *ahocorasick.Matcher
	needles []string
}

// keywordHits is the set of needles found in one string
type keywordHits map[string]bool

func (h keywordHits) has(needle string) bool {
	return h[needle]
}

func (h keywordHits) hasAny(needles []string) bool {
	for _, n := range needles {
		if h[n] {
			return true
		}
	}
	return false
}

// newKeywordIndex builds the automaton over the distinct non-empty needles
func newKeywordIndex(groups ...[]string) *keywordIndex {
	seen := make(map[string]bool)
	needles := make([]string, 0, 128)
	for _, group := range groups {
		for _, n := range group {
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			needles = append(needles, n)
		}
	}

	return &keywordIndex{
		matcher: ahocorasick.NewStringMatcher(needles),
		needles: needles,
	}
}

// find returns the needles occurring in s. s must already be lowercase.
func (k *keywordIndex) find(s string) keywordHits {
	hits := make(keywordHits)
	if s == "" || len(k.needles) == 0 {
		return hits
	}

	// MatchThreadSafe keeps the scorer usable from concurrent handlers
	for _, idx := range k.matcher.MatchThreadSafe([]byte(s)) {
		if idx >= 0 && idx < len(k.needles) {
			hits[k.needles[idx]] = true
		}
	}
	return hits
}

// keywordsOf projects the keyword column of a weighted table
func keywordsOf(table []weightedKeyword) []string {
	out := make([]string, len(table))
	for i, kw := range table {
		out[i] = kw.keyword
	}
	return out
}

func certificationKeywords() []string {
	out := make([]string, len(certifications))
	for i, c := range certifications {
		out[i] = c.keyword
	}
	return out
}
