package extract

import (
	"regexp"
	"sort"
)

// tocCutoffCap bounds the assumed table-of-contents region: heading matches
// before min(5% of document length, tocCutoffCap) bytes are deprioritized so
// a contents line does not shadow the real heading.
const tocCutoffCap = 3000

// sectionPattern pairs a canonical section ordinal with its heading pattern.
// Patterns accept an optional "القسم" literal, the ordinal word form, a
// separator run, and the canonical name with hamza-tolerant spelling and
// optional trailing qualifier words.
type sectionPattern struct {
	number int
	name   string
	re     *regexp.Regexp
}

func heading(ordinal, name string) *regexp.Regexp {
	return regexp.MustCompile(`(?:القسم\s+)?` + ordinal + `\s*[:：\-–—]?\s*` + name)
}

var sectionPatterns = []sectionPattern{
	{1, "المقدمة", heading(`ال[أا]ول`, `المقدمة`)},
	{2, "الأحكام العامة", heading(`الثاني`, `ال[أا]حكام\s+العامة`)},
	{3, "إعداد العروض", heading(`الثالث`, `[إا]عداد\s+العروض`)},
	{4, "تقديم العروض", heading(`الرابع`, `تقديم\s+العروض`)},
	{5, "تقييم العروض", heading(`الخامس`, `(?:تقييم|تحليل)\s+العروض`)},
	{6, "متطلبات التعاقد", heading(`السادس`, `متطلبات\s+التعاقد`)},
	{7, "نطاق العمل المفصل", heading(`السابع`, `نطاق\s+العمل(?:\s+المفصل)?`)},
	{8, "المواصفات الفنية", heading(`الثامن`, `المواصفات(?:\s+الفنية)?`)},
	{9, "الشروط الخاصة", heading(`التاسع`, `الشروط\s+الخاصة`)},
	{10, "الضمانات", heading(`العاشر`, `الضمانات`)},
	{11, "الملاحق", heading(`الحادي\s+عشر`, `الملاحق`)},
	{12, "نموذج العقد", heading(`الثاني\s+عشر`, `نم(?:وذج|اذج)\s+العقد`)},
}

// DetectSections scans the document for the 12 canonical section headings
// and returns the detected sections ordered by document offset. For each
// ordinal the first match after the table-of-contents cutoff wins; if none
// exists the first match anywhere is used. Sections with no match are simply
// absent, never synthesized.
func DetectSections(text string) []Section {
	cutoff := len(text) / 20
	if cutoff > tocCutoffCap {
		cutoff = tocCutoffCap
	}

	var sections []Section
	for _, sp := range sectionPatterns {
		matches := sp.re.FindAllStringIndex(text, -1)
		if matches == nil {
			continue
		}

		start := matches[0][0]
		for _, m := range matches {
			if m[0] >= cutoff {
				start = m[0]
				break
			}
		}

		sections = append(sections, Section{
			Number: sp.number,
			Name:   sp.name,
			Start:  start,
		})
	}

	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Start < sections[j].Start
	})

	for i := range sections {
		if i < len(sections)-1 {
			sections[i].End = sections[i+1].Start
		} else {
			sections[i].End = len(text)
		}
		sections[i].Text = text[sections[i].Start:sections[i].End]
	}

	return sections
}
