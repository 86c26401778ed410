package extract

import (
	"regexp"

	"github.com/tanafus/engine/pkg/artext"
)

var (
	financialWeightPattern = regexp.MustCompile(
		`(?:الوزن\s+المالي|نسبة\s+التقييم\s+المالي|الجانب\s+المالي)\s*:?\s*` + percentValue,
	)
	technicalWeightPattern = regexp.MustCompile(
		`(?:الوزن\s+الفني|نسبة\s+التقييم\s+الفني|الجانب\s+الفني)\s*:?\s*` + percentValue,
	)
)

// methodPhrases maps explicit evaluation-method phrases to their
// classification. Checked in order; the first hit wins.
var methodPhrases = []struct {
	re     *regexp.Regexp
	method EvaluationMethod
}{
	{regexp.MustCompile(`الجودة\s+والتكلفة`), MethodQualityAndCost},
	{regexp.MustCompile(`(?:[أا]قل\s+ال[أا]سعار|السعر\s+ال[أا]قل|[أا]قل\s+سعر)`), MethodLowestPrice},
	{regexp.MustCompile(`الجودة\s+فقط`), MethodQualityOnly},
}

// ExtractEvaluation recovers the offer-evaluation methodology. When only one
// weight is present the other is derived as its complement to 100; when a
// financial weight exists without an explicit method phrase the method
// defaults to quality_and_cost.
func ExtractEvaluation(section string) Evaluation {
	section = artext.FoldDigits(section)

	var out Evaluation
	confidence := 0

	if v, evidence, ok := findPercent(financialWeightPattern, section); ok {
		out.FinancialWeight = NewField(v, SourceRegex, evidence, 85)
		confidence += 35
	}
	if v, evidence, ok := findPercent(technicalWeightPattern, section); ok {
		out.TechnicalWeight = NewField(v, SourceRegex, evidence, 85)
		confidence += 25
	}

	switch {
	case out.FinancialWeight.Found && !out.TechnicalWeight.Found:
		out.TechnicalWeight = NewField(
			100-out.FinancialWeight.Value,
			SourceHeuristic,
			out.FinancialWeight.Evidence,
			70,
		)
	case out.TechnicalWeight.Found && !out.FinancialWeight.Found:
		out.FinancialWeight = NewField(
			100-out.TechnicalWeight.Value,
			SourceHeuristic,
			out.TechnicalWeight.Evidence,
			70,
		)
	}

	for _, mp := range methodPhrases {
		if m := mp.re.FindString(section); m != "" {
			out.Method = NewField(mp.method, SourceRegex, snippet(m), 85)
			confidence += 30
			break
		}
	}

	if !out.Method.Found && out.FinancialWeight.Found {
		out.Method = NewField(MethodQualityAndCost, SourceHeuristic, out.FinancialWeight.Evidence, 50)
		confidence += 15
	}

	out.Confidence = capConfidence(confidence, 90)
	return out
}
