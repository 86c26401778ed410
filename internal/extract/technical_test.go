package extract_test

import (
	"reflect"
	"testing"

	"github.com/tanafus/engine/internal/extract"
)

func TestExtractTechnicalSpecs(t *testing.T) {
	section := `يجب أن تتوافق جميع المواد مع معايير SASO 2902 و ISO 9001 كما يشترط ISO 9001 للمصنع.
الماركات المعتمدة:
- شنايدر إلكتريك
- ABB
- ليجراند`

	got := extract.ExtractTechnicalSpecs(section)

	t.Run("standards deduplicated", func(t *testing.T) {
		want := []string{"SASO 2902", "ISO 9001"}
		if !reflect.DeepEqual(got.Standards, want) {
			t.Errorf("Standards = %v, want %v", got.Standards, want)
		}
	})

	t.Run("approved brands", func(t *testing.T) {
		want := []string{"شنايدر إلكتريك", "ABB", "ليجراند"}
		if !reflect.DeepEqual(got.Brands, want) {
			t.Errorf("Brands = %v, want %v", got.Brands, want)
		}
	})

	t.Run("confidence", func(t *testing.T) {
		if got.Confidence != 80 {
			t.Errorf("Confidence = %d, want 80", got.Confidence)
		}
	})
}

func TestExtractTechnicalSpecsNoBrands(t *testing.T) {
	got := extract.ExtractTechnicalSpecs("تنفذ الأعمال وفق معيار SASO 1234 فقط.")
	if len(got.Brands) != 0 {
		t.Errorf("Brands = %v, want none", got.Brands)
	}
	if got.Confidence != 55 {
		t.Errorf("Confidence = %d, want 55", got.Confidence)
	}
}

func TestExtractTechnicalSpecsEmpty(t *testing.T) {
	got := extract.ExtractTechnicalSpecs("")
	if got.Confidence != 0 {
		t.Errorf("Confidence = %d, want 0", got.Confidence)
	}
}
