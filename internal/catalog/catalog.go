// Package catalog provides the priced-item catalog and the layered fuzzy
// matcher that scores free-text descriptions against it. Matching is a
// cheap, explainable heuristic — containment, then substring, then
// word-overlap — chosen over edit distance or embeddings so that re-running
// a match against the same catalog is always reproducible.
package catalog

import (
	"sort"
	"strings"

	"github.com/tanafus/engine/pkg/artext"
)

// Similarity floors per call site. Nomination search casts a wider net than
// cost-item pricing.
const (
	NominationFloor = 0.3
	CostItemFloor   = 0.5
)

// Layered similarity scores.
const (
	scoreContainment = 0.9
	scoreNameSub     = 0.85
	overlapScale     = 0.8
)

// Item is one priced catalog entry. The catalog is read-only input; the
// matcher never mutates it.
type Item struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Specification string  `json:"specification,omitempty"`
	Unit          string  `json:"unit"`
	UnitPrice     float64 `json:"unit_price"`
}

// Match is one scored candidate, similarity in [0,1].
type Match struct {
	Item       Item    `json:"item"`
	Similarity float64 `json:"similarity"`
}

// Search scores query against every catalog item, discards candidates below
// floor, and returns the remainder sorted by descending similarity,
// truncated to limit. Ties break on item ID so results are deterministic.
func Search(query string, items []Item, floor float64, limit int) []Match {
	normalizedQuery := artext.Normalize(query)
	if normalizedQuery == "" {
		return nil
	}

	var matches []Match
	for _, item := range items {
		s := similarity(normalizedQuery, item)
		if s < floor {
			continue
		}
		matches = append(matches, Match{Item: item, Similarity: s})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].Item.ID < matches[j].Item.ID
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// similarity applies the layered heuristic: combined-text containment 0.9,
// name-substring 0.85, else word-overlap ratio scaled by 0.8.
func similarity(normalizedQuery string, item Item) float64 {
	name := artext.Normalize(item.Name)
	combined := name + " " + artext.Normalize(item.Category)
	if item.Specification != "" {
		combined += " " + artext.Normalize(item.Specification)
	}

	if strings.Contains(combined, normalizedQuery) || strings.Contains(normalizedQuery, name) {
		return scoreContainment
	}
	if strings.Contains(name, normalizedQuery) {
		return scoreNameSub
	}

	words := strings.Fields(normalizedQuery)
	if len(words) == 0 {
		return 0
	}

	hits := 0
	for _, w := range words {
		if strings.Contains(combined, w) {
			hits++
		}
	}
	return overlapScale * float64(hits) / float64(len(words))
}
