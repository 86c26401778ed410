package verify_test

import (
	"strings"
	"testing"

	"github.com/tanafus/engine/internal/extract"
	"github.com/tanafus/engine/internal/verify"
)

func lineItems(sequences ...int) []extract.LineItem {
	items := make([]extract.LineItem, len(sequences))
	for i, seq := range sequences {
		items[i] = extract.LineItem{Sequence: seq, Description: "بند", Confidence: 65}
	}
	return items
}

func TestVerifySpecCards(t *testing.T) {
	t.Run("consistent card passes unchanged", func(t *testing.T) {
		cards := []verify.SpecCard{{
			Sequence:   1,
			ItemName:   "كيبل نحاس مدرع",
			Parameters: []verify.Parameter{{Name: "المقطع", Value: "16", Unit: "مم2", Mandatory: true}},
			Confidence: 80,
		}}

		got, corrections := verify.VerifySpecCards(cards, lineItems(1, 2))
		if len(corrections) != 0 {
			t.Errorf("corrections = %v, want none", corrections)
		}
		if got[0].Confidence != 80 {
			t.Errorf("Confidence = %v, want 80", got[0].Confidence)
		}
	})

	t.Run("unknown sequence flagged but kept", func(t *testing.T) {
		cards := []verify.SpecCard{{
			Sequence:   99,
			ItemName:   "بند شبح",
			Parameters: []verify.Parameter{{Name: "القدرة", Value: "5", Mandatory: true}},
			Confidence: 70,
		}}

		got, corrections := verify.VerifySpecCards(cards, lineItems(1, 2))
		if len(got) != 1 {
			t.Fatalf("len(cards) = %d, want 1", len(got))
		}
		if len(corrections) != 1 || !strings.Contains(corrections[0], "no matching line item") {
			t.Errorf("corrections = %v, want sequence mismatch flag", corrections)
		}
	})

	t.Run("no line items noted once", func(t *testing.T) {
		cards := []verify.SpecCard{
			{Sequence: 5, ItemName: "بند", Parameters: []verify.Parameter{{Name: "اللون", Value: "أبيض"}}, Confidence: 60},
			{Sequence: 6, ItemName: "بند آخر", Parameters: []verify.Parameter{{Name: "الوزن", Value: "2"}}, Confidence: 55},
		}

		got, corrections := verify.VerifySpecCards(cards, nil)
		if len(got) != 2 {
			t.Fatalf("len(cards) = %d, want 2", len(got))
		}
		if len(corrections) != 1 || !strings.Contains(corrections[0], "no line items available") {
			t.Errorf("corrections = %v, want single no-line-items note", corrections)
		}
	})

	t.Run("nil parameters coerced to empty list", func(t *testing.T) {
		cards := []verify.SpecCard{{Sequence: 1, ItemName: "بند", Confidence: 35}}

		got, corrections := verify.VerifySpecCards(cards, lineItems(1))
		if got[0].Parameters == nil {
			t.Error("Parameters = nil, want empty list")
		}
		if len(corrections) != 1 {
			t.Errorf("corrections = %v, want coercion entry", corrections)
		}
	})

	t.Run("empty parameters cap confidence", func(t *testing.T) {
		cards := []verify.SpecCard{{
			Sequence:   1,
			ItemName:   "بند غامض",
			Parameters: []verify.Parameter{},
			Confidence: 85,
		}}

		got, _ := verify.VerifySpecCards(cards, lineItems(1))
		if got[0].Confidence != 30 {
			t.Errorf("Confidence = %v, want reduced 30", got[0].Confidence)
		}
	})

	t.Run("confidence clamped before cap", func(t *testing.T) {
		cards := []verify.SpecCard{{
			Sequence:   1,
			ItemName:   "بند",
			Parameters: []verify.Parameter{{Name: "الطول", Value: "3", Unit: "م"}},
			Confidence: 130,
		}}

		got, _ := verify.VerifySpecCards(cards, lineItems(1))
		if got[0].Confidence != 100 {
			t.Errorf("Confidence = %v, want clamped 100", got[0].Confidence)
		}
	})
}
