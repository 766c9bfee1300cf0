package iso3166

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Score ceilings per match kind. Exact beats any partial match; a query
// found as whole words inside a name beats a typo match.
const (
	scoreExact     = 100.0
	scoreWordMatch = 90.0
	scoreSubstring = 70.0
	scoreTypo      = 80.0

	// Shorter queries only match whole words.
	minSubstringLen = 4
)

// Match is a ranked search hit.
type Match struct {
	Country Country
	Score   float64
}

// SearchFuzzy ranks countries against a free-text query, best first.
// An exact code or name match returns that country alone. Otherwise
// countries whose names contain the query, or are within the typo
// threshold of it, are returned. No hits yields an empty slice.
func (c *Catalog) SearchFuzzy(query string) []Match {
	q := normalizeKey(query)
	if q == "" {
		return nil
	}

	if ct, ok := c.exact(query, q); ok {
		return []Match{{Country: ct, Score: scoreExact}}
	}

	var hits []Match
	for i, keys := range c.keys {
		best := 0.0
		for _, k := range keys {
			if s := c.score(q, k); s > best {
				best = s
			}
		}
		if best > 0 {
			hits = append(hits, Match{Country: c.countries[i], Score: best})
		}
	}

	// Stable keeps catalog order among equal scores
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	return hits
}

// Lookup returns the canonical ISO name of the best-ranked match.
func (c *Catalog) Lookup(query string) (string, bool) {
	hits := c.SearchFuzzy(query)
	if len(hits) == 0 {
		return "", false
	}
	return hits[0].Country.Name, true
}

func (c *Catalog) exact(raw, q string) (Country, bool) {
	code := strings.TrimSpace(raw)
	if n := len(code); n == 2 || n == 3 {
		if ct, ok := c.Get(code); ok {
			return ct, true
		}
	}
	for i, keys := range c.keys {
		for _, k := range keys {
			if k == q {
				return c.countries[i], true
			}
		}
	}
	return Country{}, false
}

// score rates how well normalized query q matches normalized name k.
func (c *Catalog) score(q, k string) float64 {
	best := 0.0

	ql, kl := utf8.RuneCountInString(q), utf8.RuneCountInString(k)
	coverage := float64(ql) / float64(kl)

	switch {
	case strings.Contains(" "+k+" ", " "+q+" "):
		best = scoreWordMatch * coverage
	case ql >= minSubstringLen && strings.Contains(k, q):
		best = scoreSubstring * coverage
	}

	longest := ql
	if kl > longest {
		longest = kl
	}
	sim := 1 - float64(levenshtein.ComputeDistance(q, k))/float64(longest)
	if sim >= c.minSimilarity {
		if s := scoreTypo * sim; s > best {
			best = s
		}
	}
	return best
}
