package verify

import "fmt"

// Recommendation thresholds on the corrected overall score.
const (
	pursueThreshold = 70
	reviewThreshold = 40
)

// Recommend derives the recommendation from an overall score using the fixed
// thresholds: >=70 pursue, >=40 review, else skip.
func Recommend(score float64) Recommendation {
	switch {
	case score >= pursueThreshold:
		return RecommendPursue
	case score >= reviewThreshold:
		return RecommendReview
	default:
		return RecommendSkip
	}
}

// clamp constrains v to [0,100].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// correctionLog accumulates ordered human-readable corrections within a
// single guardrail invocation. Each invocation owns its log; nothing is
// shared across calls.
type correctionLog struct {
	entries []string
}

func (l *correctionLog) addf(format string, args ...any) {
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}
