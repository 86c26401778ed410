package extract_test

import (
	"testing"

	"github.com/tanafus/engine/internal/extract"
)

func TestExtractContractTerms(t *testing.T) {
	section := `مدة العقد: 12 شهر من تاريخ استلام الموقع
فترة الضمان: 365 يوم من الاستلام الابتدائي
غرامة التأخير لا تتجاوز 6% من قيمة العقد
الضمان النهائي بنسبة 5% من قيمة العقد
طريقة الدفع: دفعات شهرية حسب نسبة الإنجاز`

	got := extract.ExtractContractTerms(section)

	t.Run("duration normalized to days", func(t *testing.T) {
		if got.DurationDays.Value != 360 {
			t.Errorf("DurationDays = %d, want 360", got.DurationDays.Value)
		}
	})

	t.Run("warranty in days", func(t *testing.T) {
		if got.WarrantyDays.Value != 365 {
			t.Errorf("WarrantyDays = %d, want 365", got.WarrantyDays.Value)
		}
	})

	t.Run("penalty percent", func(t *testing.T) {
		if got.PenaltyPercent.Value != 6 {
			t.Errorf("PenaltyPercent = %v, want 6", got.PenaltyPercent.Value)
		}
	})

	t.Run("performance bond percent", func(t *testing.T) {
		if got.PerformanceBondPercent.Value != 5 {
			t.Errorf("PerformanceBondPercent = %v, want 5", got.PerformanceBondPercent.Value)
		}
	})

	t.Run("payment terms", func(t *testing.T) {
		if got.PaymentTerms.Value != "دفعات شهرية حسب نسبة الإنجاز" {
			t.Errorf("PaymentTerms = %q", got.PaymentTerms.Value)
		}
	})

	t.Run("confidence capped", func(t *testing.T) {
		if got.Confidence != 90 {
			t.Errorf("Confidence = %d, want 90", got.Confidence)
		}
	})
}

func TestExtractContractTermsYearUnit(t *testing.T) {
	got := extract.ExtractContractTerms("مدة التنفيذ: 2 سنة")
	if got.DurationDays.Value != 730 {
		t.Errorf("DurationDays = %d, want 730", got.DurationDays.Value)
	}
}

func TestExtractContractTermsEmpty(t *testing.T) {
	got := extract.ExtractContractTerms("لا توجد شروط تعاقدية في هذا النص.")
	if got.DurationDays.Found || got.PenaltyPercent.Found {
		t.Error("expected no fields found")
	}
	if got.Confidence != 0 {
		t.Errorf("Confidence = %d, want 0", got.Confidence)
	}
}
