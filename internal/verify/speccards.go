package verify

import "github.com/tanafus/engine/internal/extract"

// An empty-parameter card cannot be highly confident: claims above
// emptyParamsMaxClaim collapse to emptyParamsConfidence.
const (
	emptyParamsMaxClaim   = 40
	emptyParamsConfidence = 30
)

// VerifySpecCards checks generated spec cards for consistency against the
// deterministic line items. A card whose declared sequence has no matching
// line item is flagged but kept; confidence is clamped; a missing parameter
// list is coerced to an empty one, and an empty list caps confidence.
func VerifySpecCards(cards []SpecCard, items []extract.LineItem) ([]SpecCard, []string) {
	var log correctionLog

	sequences := make(map[int]struct{}, len(items))
	for _, it := range items {
		sequences[it.Sequence] = struct{}{}
	}
	if len(items) == 0 && len(cards) > 0 {
		log.addf("no line items available to match %d spec cards against", len(cards))
	}

	checked := make([]SpecCard, len(cards))
	for i, card := range cards {
		if _, ok := sequences[card.Sequence]; !ok && len(items) > 0 {
			log.addf("spec card %q declares sequence %d with no matching line item", card.ItemName, card.Sequence)
		}

		if card.Parameters == nil {
			log.addf("spec card %q parameters coerced to empty list", card.ItemName)
			card.Parameters = []Parameter{}
		}

		if clamped := clamp(card.Confidence); clamped != card.Confidence {
			log.addf("spec card %q confidence %.1f clamped to %.1f", card.ItemName, card.Confidence, clamped)
			card.Confidence = clamped
		}

		if len(card.Parameters) == 0 && card.Confidence > emptyParamsMaxClaim {
			log.addf("spec card %q confidence %.1f reduced to %d: no parameters extracted", card.ItemName, card.Confidence, emptyParamsConfidence)
			card.Confidence = emptyParamsConfidence
		}

		checked[i] = card
	}

	return checked, log.entries
}
