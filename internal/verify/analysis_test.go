package verify_test

import (
	"strings"
	"testing"

	"github.com/tanafus/engine/internal/verify"
)

func scores(values ...float64) []verify.CriterionScore {
	names := []string{"commercial_viability", "technical_fit", "competition_level", "financial_risk", "delivery_feasibility"}
	out := make([]verify.CriterionScore, len(values))
	for i, v := range values {
		out[i] = verify.CriterionScore{Criterion: names[i%len(names)], Score: v, Reasoning: "تحليل مفصل"}
	}
	return out
}

func TestVerifyAnalysis(t *testing.T) {
	t.Run("consistent analysis passes unchanged", func(t *testing.T) {
		a := verify.Analysis{
			OverallScore:   72,
			Scores:         scores(80, 70, 60, 75, 75),
			Recommendation: verify.RecommendPursue,
			Confidence:     verify.ConfidenceHigh,
		}

		got, corrections := verify.VerifyAnalysis(a, nil)
		if len(corrections) != 0 {
			t.Errorf("corrections = %v, want none", corrections)
		}
		if got.OverallScore != 72 {
			t.Errorf("OverallScore = %v, want 72", got.OverallScore)
		}
	})

	t.Run("drifting overall score recomputed", func(t *testing.T) {
		a := verify.Analysis{
			OverallScore:   95,
			Scores:         scores(50, 50, 50, 50, 50),
			Recommendation: verify.RecommendPursue,
		}

		got, corrections := verify.VerifyAnalysis(a, nil)
		if got.OverallScore != 50 {
			t.Errorf("OverallScore = %v, want recomputed 50", got.OverallScore)
		}
		if got.Recommendation != verify.RecommendReview {
			t.Errorf("Recommendation = %q, want review", got.Recommendation)
		}
		if len(corrections) == 0 {
			t.Error("expected corrections recorded")
		}
	})

	t.Run("weights applied to recomputation", func(t *testing.T) {
		a := verify.Analysis{
			OverallScore: 10,
			Scores: []verify.CriterionScore{
				{Criterion: "commercial_viability", Score: 100},
				{Criterion: "technical_fit", Score: 0},
			},
			Recommendation: verify.RecommendSkip,
		}
		weights := map[string]float64{"commercial_viability": 3, "technical_fit": 1}

		got, _ := verify.VerifyAnalysis(a, weights)
		if got.OverallScore != 75 {
			t.Errorf("OverallScore = %v, want 75", got.OverallScore)
		}
		if got.Recommendation != verify.RecommendPursue {
			t.Errorf("Recommendation = %q, want pursue", got.Recommendation)
		}
	})

	t.Run("sub-scores clamped", func(t *testing.T) {
		a := verify.Analysis{
			OverallScore:   100,
			Scores:         scores(150, 90, 80, 110, 70),
			Recommendation: verify.RecommendPursue,
		}

		got, _ := verify.VerifyAnalysis(a, nil)
		for _, s := range got.Scores {
			if s.Score < 0 || s.Score > 100 {
				t.Errorf("criterion %q score %v outside [0,100]", s.Criterion, s.Score)
			}
		}
	})

	t.Run("high confidence downgraded on insufficient data", func(t *testing.T) {
		a := verify.Analysis{
			OverallScore: 50,
			Scores: []verify.CriterionScore{
				{Criterion: "technical_fit", Score: 50, Reasoning: "بيانات غير كافية لتقييم الجانب الفني"},
			},
			Recommendation: verify.RecommendReview,
			Confidence:     verify.ConfidenceHigh,
		}

		got, corrections := verify.VerifyAnalysis(a, nil)
		if got.Confidence != verify.ConfidenceMedium {
			t.Errorf("Confidence = %q, want medium", got.Confidence)
		}
		found := false
		for _, c := range corrections {
			if strings.Contains(c, "insufficient data") {
				found = true
			}
		}
		if !found {
			t.Errorf("corrections = %v, want insufficient data entry", corrections)
		}
	})

	t.Run("no sub-scores leaves overall score alone", func(t *testing.T) {
		a := verify.Analysis{OverallScore: 65, Recommendation: verify.RecommendReview}
		got, _ := verify.VerifyAnalysis(a, nil)
		if got.OverallScore != 65 {
			t.Errorf("OverallScore = %v, want 65", got.OverallScore)
		}
	})
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		score float64
		want  verify.Recommendation
	}{
		{85, verify.RecommendPursue},
		{70, verify.RecommendPursue},
		{69.9, verify.RecommendReview},
		{40, verify.RecommendReview},
		{39.9, verify.RecommendSkip},
		{0, verify.RecommendSkip},
	}

	for _, tt := range tests {
		if got := verify.Recommend(tt.score); got != tt.want {
			t.Errorf("Recommend(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
