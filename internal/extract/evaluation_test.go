package extract_test

import (
	"testing"

	"github.com/tanafus/engine/internal/extract"
)

func TestExtractEvaluation(t *testing.T) {
	t.Run("both weights and explicit method", func(t *testing.T) {
		section := "الوزن المالي: 40% والوزن الفني: 60% وتتم المفاضلة على أساس الجودة والتكلفة"
		got := extract.ExtractEvaluation(section)

		if got.FinancialWeight.Value != 40 {
			t.Errorf("FinancialWeight = %v, want 40", got.FinancialWeight.Value)
		}
		if got.TechnicalWeight.Value != 60 {
			t.Errorf("TechnicalWeight = %v, want 60", got.TechnicalWeight.Value)
		}
		if got.Method.Value != extract.MethodQualityAndCost {
			t.Errorf("Method = %q, want quality_and_cost", got.Method.Value)
		}
		if got.Method.Confidence != 85 {
			t.Errorf("Method confidence = %d, want 85", got.Method.Confidence)
		}
		if got.Confidence != 90 {
			t.Errorf("Confidence = %d, want 90", got.Confidence)
		}
	})

	t.Run("missing technical weight derived as complement", func(t *testing.T) {
		got := extract.ExtractEvaluation("الوزن المالي: 30%")

		if got.TechnicalWeight.Value != 70 {
			t.Errorf("TechnicalWeight = %v, want 70", got.TechnicalWeight.Value)
		}
		if got.TechnicalWeight.Source != extract.SourceHeuristic {
			t.Errorf("TechnicalWeight source = %q, want heuristic", got.TechnicalWeight.Source)
		}
		if got.TechnicalWeight.Confidence != 70 {
			t.Errorf("TechnicalWeight confidence = %d, want 70", got.TechnicalWeight.Confidence)
		}
	})

	t.Run("financial weight without phrase defaults to quality and cost", func(t *testing.T) {
		got := extract.ExtractEvaluation("نسبة التقييم المالي: 45%")

		if got.Method.Value != extract.MethodQualityAndCost {
			t.Errorf("Method = %q, want quality_and_cost", got.Method.Value)
		}
		if got.Method.Confidence != 50 {
			t.Errorf("Method confidence = %d, want 50", got.Method.Confidence)
		}
	})

	t.Run("lowest price", func(t *testing.T) {
		got := extract.ExtractEvaluation("تتم الترسية على صاحب أقل الأسعار المطابقة للمواصفات")

		if got.Method.Value != extract.MethodLowestPrice {
			t.Errorf("Method = %q, want lowest_price", got.Method.Value)
		}
		if got.FinancialWeight.Found {
			t.Error("FinancialWeight found, want absent")
		}
	})

	t.Run("empty section", func(t *testing.T) {
		got := extract.ExtractEvaluation("")
		if got.Method.Found || got.Confidence != 0 {
			t.Errorf("got %+v, want zero evaluation", got)
		}
	})
}
