package verify

import (
	"strings"

	"github.com/tanafus/engine/pkg/artext"
)

// scoreDriftTolerance is the maximum allowed gap between the model's claimed
// overall score and the score recomputed from its sub-scores.
const scoreDriftTolerance = 5

// insufficientDataMarkers downgrade a claimed high confidence when they
// appear in any sub-score's reasoning.
var insufficientDataMarkers = []string{
	"insufficient data",
	"بيانات غير كافيه",
	"لا توجد معلومات كافيه",
	"معلومات غير كافيه",
}

// VerifyAnalysis re-validates a tender analysis. Sub-scores are clamped, the
// overall score is recomputed from the caller-supplied per-criterion weights
// (overriding claims that drift by more than 5 points), the recommendation is
// re-derived from fixed thresholds, and a claimed high confidence is
// downgraded when any reasoning admits insufficient data.
func VerifyAnalysis(a Analysis, weights map[string]float64) (Analysis, []string) {
	var log correctionLog

	for i := range a.Scores {
		if clamped := clamp(a.Scores[i].Score); clamped != a.Scores[i].Score {
			log.addf("criterion %q score %.1f clamped to %.1f", a.Scores[i].Criterion, a.Scores[i].Score, clamped)
			a.Scores[i].Score = clamped
		}
	}

	if recomputed, ok := weightedScore(a.Scores, weights); ok {
		if abs(recomputed-a.OverallScore) > scoreDriftTolerance {
			log.addf("overall score %.1f overridden with recomputed %.1f", a.OverallScore, recomputed)
			a.OverallScore = recomputed
		}
	}
	if clamped := clamp(a.OverallScore); clamped != a.OverallScore {
		log.addf("overall score %.1f clamped to %.1f", a.OverallScore, clamped)
		a.OverallScore = clamped
	}

	if expected := Recommend(a.OverallScore); a.Recommendation != expected {
		log.addf("recommendation %q overridden with %q for score %.1f", a.Recommendation, expected, a.OverallScore)
		a.Recommendation = expected
	}

	if a.Confidence == ConfidenceHigh && admitsInsufficientData(a.Scores) {
		log.addf("confidence downgraded from high to medium: reasoning admits insufficient data")
		a.Confidence = ConfidenceMedium
	}

	return a, log.entries
}

// weightedScore recomputes the overall score from sub-scores and weights.
// Criteria without a supplied weight share the remaining weight equally;
// with no weights at all the mean is used. Returns ok=false when there are
// no sub-scores to recompute from.
func weightedScore(scores []CriterionScore, weights map[string]float64) (float64, bool) {
	if len(scores) == 0 {
		return 0, false
	}

	var total, weightSum float64
	for _, s := range scores {
		w, ok := weights[s.Criterion]
		if !ok {
			w = 1
		}
		total += s.Score * w
		weightSum += w
	}
	if weightSum == 0 {
		return 0, false
	}
	return total / weightSum, true
}

func admitsInsufficientData(scores []CriterionScore) bool {
	for _, s := range scores {
		reasoning := artext.Normalize(s.Reasoning)
		for _, marker := range insufficientDataMarkers {
			if strings.Contains(reasoning, marker) {
				return true
			}
		}
	}
	return false
}
