package extract

import (
	"regexp"
	"time"

	"github.com/tanafus/engine/pkg/artext"
	"github.com/tanafus/engine/pkg/hijri"
)

// introRubric holds the Introduction extractor's scalar patterns. Confidence
// values reflect pattern specificity: a labeled tender number is near-certain,
// an entity line less so.
var introRubric = []fieldPattern{
	{
		name:       "tender_number",
		re:         regexp.MustCompile(`(?:رقم\s+المنافسة|الرقم\s+المرجعي)\s*[:#]?\s*([0-9][0-9/\-.]*)`),
		source:     SourceRegex,
		confidence: 90,
	},
	{
		name:       "entity",
		re:         regexp.MustCompile(`(?:الجهة\s+الحكومية|الجهة\s+المالكة|اسم\s+الجهة)\s*:?\s*([^\n،.]{3,80})`),
		source:     SourceRegex,
		confidence: 80,
	},
	{
		name:       "title",
		re:         regexp.MustCompile(`(?:اسم\s+المنافسة|عنوان\s+المنافسة|مسمى\s+المنافسة)\s*:?\s*([^\n]{3,120})`),
		source:     SourceRegex,
		confidence: 85,
	},
	{
		name:       "city",
		re:         regexp.MustCompile(`(?:مكان\s+التنفيذ|مدينة\s+التنفيذ)\s*:?\s*([^\n،.]{2,40})`),
		source:     SourceProximity,
		confidence: 70,
	},
}

var deadlinePattern = regexp.MustCompile(
	`(?:[آا]خر\s+موعد\s+لتقديم\s+العروض|الموعد\s+النهائي\s+لتقديم\s+العروض|تاريخ\s+فتح\s+العروض)[^\n]{0,80}`,
)

// ExtractIntroduction recovers identifying metadata from the introduction
// section. The estimated value is taken as the largest currency amount in
// the whole document, a weak proxy that carries a deliberately low
// confidence of 60.
func ExtractIntroduction(section, full string) Introduction {
	section = artext.FoldDigits(section)

	var out Introduction
	confidence := 0

	for _, fp := range introRubric {
		m := fp.re.FindStringSubmatch(section)
		if m == nil {
			continue
		}
		value := artext.CollapseWhitespace(m[1])
		field := NewField(value, fp.source, snippet(m[0]), fp.confidence)

		switch fp.name {
		case "tender_number":
			out.TenderNumber = field
			confidence += 25
		case "entity":
			out.Entity = field
			confidence += 15
		case "title":
			out.Title = field
			confidence += 20
		case "city":
			out.City = field
			confidence += 5
		}
	}

	if deadline, evidence, ok := findDeadline(section); ok {
		out.SubmissionDeadline = NewField(deadline, SourceProximity, evidence, 85)
		confidence += 20
	}

	if value, evidence, ok := largestAmount(full); ok {
		out.EstimatedValue = NewField(value, SourceHeuristic, evidence, 60)
		confidence += 10
	}

	out.Confidence = capConfidence(confidence, 95)
	return out
}

// findDeadline looks for a Hijri date on the same line as a submission
// deadline phrase.
func findDeadline(section string) (time.Time, string, bool) {
	for _, line := range deadlinePattern.FindAllString(section, -1) {
		if t, ok := hijri.ParseDate(line); ok {
			return t, snippet(line), true
		}
	}
	return time.Time{}, "", false
}
