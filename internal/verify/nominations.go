package verify

import (
	"math"
	"sort"
)

// complianceDriftTolerance is the maximum allowed gap between the claimed
// compliance score and the score recomputed from structured detail.
const complianceDriftTolerance = 10

// VerifyNominations checks the nominations generated for one spec card.
// When structured compliance detail exists the compliance score is
// recomputed as the percentage of mandatory parameters met; negative prices
// are nulled; omitted ranks are synthesized; and ranks are de-duplicated so
// every nomination carries a distinct positive rank.
func VerifyNominations(noms []Nomination) ([]Nomination, []string) {
	var log correctionLog

	checked := make([]Nomination, len(noms))
	copy(checked, noms)

	maxRank := 0
	for _, n := range checked {
		if n.Rank > maxRank {
			maxRank = n.Rank
		}
	}

	for i := range checked {
		n := &checked[i]

		if expected, ok := recomputeCompliance(n.Compliance); ok {
			if abs(expected-n.ComplianceScore) > complianceDriftTolerance {
				log.addf("nomination %q compliance score %.1f overridden with recomputed %.1f", n.ProductName, n.ComplianceScore, expected)
				n.ComplianceScore = expected
			}
		}
		if clamped := clamp(n.ComplianceScore); clamped != n.ComplianceScore {
			log.addf("nomination %q compliance score %.1f clamped to %.1f", n.ProductName, n.ComplianceScore, clamped)
			n.ComplianceScore = clamped
		}

		if n.Price != nil && *n.Price < 0 {
			log.addf("nomination %q price %.2f nulled: negative", n.ProductName, *n.Price)
			n.Price = nil
		}

		if n.Rank <= 0 {
			maxRank++
			n.Rank = maxRank
			log.addf("nomination %q assigned synthesized rank %d", n.ProductName, n.Rank)
		}
	}

	dedupeRanks(checked, &log)

	sort.SliceStable(checked, func(i, j int) bool {
		return checked[i].Rank < checked[j].Rank
	})

	return checked, log.entries
}

// recomputeCompliance derives the score from mandatory criteria only.
// Returns ok=false when no mandatory criteria exist to recompute from.
func recomputeCompliance(entries []ComplianceEntry) (float64, bool) {
	total, met := 0, 0
	for _, e := range entries {
		if !e.Mandatory {
			continue
		}
		total++
		if e.Met {
			met++
		}
	}
	if total == 0 {
		return 0, false
	}
	return math.Round(100 * float64(met) / float64(total)), true
}

// dedupeRanks resolves duplicate ranks by assigning the next free integer
// above the current maximum used, preserving the first holder of each rank.
func dedupeRanks(noms []Nomination, log *correctionLog) {
	used := make(map[int]struct{}, len(noms))
	maxUsed := 0

	for i := range noms {
		rank := noms[i].Rank
		if _, taken := used[rank]; taken {
			rank = maxUsed + 1
			log.addf("nomination %q duplicate rank %d reassigned to %d", noms[i].ProductName, noms[i].Rank, rank)
			noms[i].Rank = rank
		}
		used[rank] = struct{}{}
		if rank > maxUsed {
			maxUsed = rank
		}
	}
}
