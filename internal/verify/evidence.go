package verify

import (
	"strings"

	"github.com/tanafus/engine/pkg/artext"
)

// Evidence cross-check parameters: quote words longer than
// evidenceTokenMinLen runes are matched against the normalized source, and
// at least evidenceMatchRatio of them must appear for the quote to stand.
const (
	evidenceTokenMinLen = 2
	evidenceMatchRatio  = 0.5
)

// VerifyEvidence cross-checks quoted evidence spans against the source text.
// Quote and source are both normalized (diacritics stripped, letter shapes
// folded, whitespace collapsed) before word containment is tested. Failing
// quotes are relabeled concerning and returned in the flagged list; the
// model's claim is downgraded, never erased.
func VerifyEvidence(evidence []Evidence, source string) ([]Evidence, []Evidence, []string) {
	var log correctionLog

	normalizedSource := artext.Normalize(source)

	checked := make([]Evidence, len(evidence))
	var flagged []Evidence

	for i, ev := range evidence {
		checked[i] = ev
		if quoteSupported(ev.Quote, normalizedSource) {
			continue
		}

		checked[i].Relevance = RelevanceConcerning
		flagged = append(flagged, checked[i])
		log.addf("evidence quote %q not found in source text; relevance downgraded to %q", truncateQuote(ev.Quote), RelevanceConcerning)
	}

	return checked, flagged, log.entries
}

// quoteSupported reports whether at least half of the quote's significant
// words occur in the normalized source. An empty or all-short-word quote is
// unsupported by definition.
func quoteSupported(quote, normalizedSource string) bool {
	tokens := artext.Tokens(artext.Normalize(quote), evidenceTokenMinLen)
	if len(tokens) == 0 {
		return false
	}

	hits := 0
	for _, tok := range tokens {
		if strings.Contains(normalizedSource, tok) {
			hits++
		}
	}
	return float64(hits)/float64(len(tokens)) >= evidenceMatchRatio
}

func truncateQuote(q string) string {
	runes := []rune(q)
	if len(runes) > 60 {
		return string(runes[:60]) + "…"
	}
	return q
}
