package extract_test

import (
	"strings"
	"testing"

	"github.com/tanafus/engine/internal/extract"
)

func TestDetectSections(t *testing.T) {
	doc := strings.Join([]string{
		"القسم الأول: المقدمة",
		"محتوى تمهيدي عن المنافسة والجهة الحكومية وأهداف المشروع.",
		"القسم الخامس: تقييم العروض",
		"تفاصيل منهجية التقييم والأوزان المعتمدة.",
		"القسم السابع: نطاق العمل المفصل",
		"جدول الكميات والأعمال المطلوبة.",
	}, "\n")

	sections := extract.DetectSections(doc)
	if len(sections) != 3 {
		t.Fatalf("len(sections) = %d, want 3", len(sections))
	}

	wantNumbers := []int{1, 5, 7}
	for i, s := range sections {
		if s.Number != wantNumbers[i] {
			t.Errorf("sections[%d].Number = %d, want %d", i, s.Number, wantNumbers[i])
		}
	}

	t.Run("spans are contiguous", func(t *testing.T) {
		for i := 0; i < len(sections)-1; i++ {
			if sections[i].End != sections[i+1].Start {
				t.Errorf("sections[%d].End = %d, want %d", i, sections[i].End, sections[i+1].Start)
			}
		}
		if last := sections[len(sections)-1]; last.End != len(doc) {
			t.Errorf("last section End = %d, want %d", last.End, len(doc))
		}
	})

	t.Run("section text matches span", func(t *testing.T) {
		for _, s := range sections {
			if s.Text != doc[s.Start:s.End] {
				t.Errorf("section %d Text does not match doc[%d:%d]", s.Number, s.Start, s.End)
			}
		}
	})
}

func TestDetectSectionsTOCCutoff(t *testing.T) {
	heading := "القسم الأول: المقدمة"
	filler := strings.Repeat("محتويات الكراسة وفهرس الأقسام والصفحات المقابلة لها. ", 30)

	doc := heading + " .......... 3\n" + filler + "\n" + heading + "\nنص المقدمة الفعلي."

	sections := extract.DetectSections(doc)
	if len(sections) != 1 {
		t.Fatalf("len(sections) = %d, want 1", len(sections))
	}

	want := strings.LastIndex(doc, heading)
	if sections[0].Start != want {
		t.Errorf("Start = %d, want %d (post-TOC occurrence)", sections[0].Start, want)
	}
}

func TestDetectSectionsHamzaVariants(t *testing.T) {
	doc := "القسم الاول: المقدمة\nنص بدون همزة في الترقيم.\nالقسم الثالث: اعداد العروض\nشروط إعداد العرض."

	sections := extract.DetectSections(doc)
	if len(sections) != 2 {
		t.Fatalf("len(sections) = %d, want 2", len(sections))
	}
	if sections[0].Number != 1 || sections[1].Number != 3 {
		t.Errorf("section numbers = %d, %d, want 1, 3", sections[0].Number, sections[1].Number)
	}
}

func TestDetectSectionsNone(t *testing.T) {
	if got := extract.DetectSections("نص حر لا يحتوي على أي عناوين أقسام نظامية."); len(got) != 0 {
		t.Errorf("len(sections) = %d, want 0", len(got))
	}
}
