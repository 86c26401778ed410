package extract_test

import (
	"strings"
	"testing"

	"github.com/tanafus/engine/internal/extract"
)

func TestExtractLineItemsHeaderTable(t *testing.T) {
	section := strings.Join([]string{
		"م\tالوصف\tالوحدة\tالكمية",
		"1\tتوريد كيبل نحاس مدرع\tمتر\t500",
		"2\tتركيب لوحة توزيع رئيسية\tعدد\t10",
		"3\tصيانة مولد كهربائي احتياطي\tقطعة\t4",
	}, "\n")

	got := extract.ExtractLineItems(section)

	if len(got.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(got.Items))
	}
	if got.Confidence != 75 {
		t.Errorf("Confidence = %d, want 75 (header mapping)", got.Confidence)
	}

	first := got.Items[0]
	if first.Sequence != 1 {
		t.Errorf("Sequence = %d, want 1", first.Sequence)
	}
	if first.Description != "توريد كيبل نحاس مدرع" {
		t.Errorf("Description = %q", first.Description)
	}
	if first.Unit == nil || *first.Unit != "متر" {
		t.Errorf("Unit = %v, want متر", first.Unit)
	}
	if first.Quantity == nil || *first.Quantity != 500 {
		t.Errorf("Quantity = %v, want 500", first.Quantity)
	}
	if first.Category != nil {
		t.Errorf("Category = %v, want nil", *first.Category)
	}

	// no category column in the source table
	if got.PricingType != extract.PricingMixed {
		t.Errorf("PricingType = %q, want mixed", got.PricingType)
	}
}

func TestExtractLineItemsCategoryHeuristic(t *testing.T) {
	section := strings.Join([]string{
		"1\tتوريد\tكيبل نحاس 16مم\tمتر\t500",
		"2\tتركيب\tلوحة توزيع رئيسية\tعدد\t10",
		"3\tصيانة\tمولد كهربائي احتياطي\tقطعة\t4",
		"4\tتوريد\tكاميرات مراقبة داخلية\tعدد\t25",
		"5\tتشغيل\tنظام التكييف المركزي\tشهر\t12",
	}, "\n")

	got := extract.ExtractLineItems(section)

	if len(got.Items) != 5 {
		t.Fatalf("len(Items) = %d, want 5", len(got.Items))
	}
	if got.Confidence != 65 {
		t.Errorf("Confidence = %d, want 65 (category heuristic)", got.Confidence)
	}
	if got.PricingType != extract.PricingUnitBased {
		t.Errorf("PricingType = %q, want unit_based", got.PricingType)
	}

	for i, item := range got.Items {
		if item.Sequence != i+1 {
			t.Errorf("Items[%d].Sequence = %d, want %d", i, item.Sequence, i+1)
		}
		if item.Category == nil {
			t.Errorf("Items[%d].Category = nil, want value", i)
		}
	}

	last := got.Items[4]
	if last.Description != "نظام التكييف المركزي" {
		t.Errorf("Description = %q", last.Description)
	}
	if last.Unit == nil || *last.Unit != "شهر" {
		t.Errorf("Unit = %v, want شهر", last.Unit)
	}
	if last.Quantity == nil || *last.Quantity != 12 {
		t.Errorf("Quantity = %v, want 12", last.Quantity)
	}
}

func TestExtractLineItemsSpaceDelimited(t *testing.T) {
	section := strings.Join([]string{
		"1   توريد كراسي مكتبية   عدد   40",
		"2   توريد طاولات اجتماعات   عدد   8",
		"3   توريد خزائن ملفات   عدد   15",
	}, "\n")

	got := extract.ExtractLineItems(section)

	if len(got.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(got.Items))
	}
	if got.Items[1].Description != "توريد طاولات اجتماعات" {
		t.Errorf("Description = %q", got.Items[1].Description)
	}
}

func TestExtractLineItemsNoTable(t *testing.T) {
	got := extract.ExtractLineItems("نص سردي عن نطاق العمل بدون أي جدول كميات أو بنود.")

	if len(got.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(got.Items))
	}
	if got.PricingType != extract.PricingMixed {
		t.Errorf("PricingType = %q, want mixed", got.PricingType)
	}
	if got.Confidence != 0 {
		t.Errorf("Confidence = %d, want 0", got.Confidence)
	}
}

func TestExtractLineItemsArabicDigits(t *testing.T) {
	section := strings.Join([]string{
		"١\tتوريد\tمضخة مياه عمودية\tعدد\t٦",
		"٢\tتركيب\tمضخة مياه غاطسة\tعدد\t٤",
		"٣\tصيانة\tشبكة الري الرئيسية\tمتر\t٣٠٠",
	}, "\n")

	got := extract.ExtractLineItems(section)

	if len(got.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(got.Items))
	}
	if got.Items[0].Quantity == nil || *got.Items[0].Quantity != 6 {
		t.Errorf("Quantity = %v, want 6", got.Items[0].Quantity)
	}
}
