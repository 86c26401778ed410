package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tanafus/engine/pkg/artext"
)

// fieldPattern is one entry in an extractor's rubric: a named pattern with
// its provenance kind and fixed confidence contribution. Keeping the rubric
// as data keeps it independently testable and tunable.
type fieldPattern struct {
	name       string
	re         *regexp.Regexp
	source     SourceKind
	confidence int
}

var (
	// currency amounts followed by a riyal marker
	amountPattern = regexp.MustCompile(`(\d[\d,،.]*)\s*(?:ريال|ر\.س|SAR)`)

	// bare percent value, ASCII or Arabic percent sign
	percentValue = `(\d{1,3}(?:\.\d+)?)\s*[%٪]`

	numberCleaner = strings.NewReplacer(",", "", "،", "")
)

// parseAmount parses a currency amount with thousands separators removed.
func parseAmount(s string) (float64, bool) {
	s = numberCleaner.Replace(strings.TrimSpace(s))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// largestAmount scans text for the largest currency amount. The largest
// amount in a document is a weak proxy for the estimated tender value, so
// callers assign it a deliberately low confidence.
func largestAmount(text string) (float64, string, bool) {
	text = artext.FoldDigits(text)

	var (
		best     float64
		evidence string
		found    bool
	)
	for _, m := range amountPattern.FindAllStringSubmatch(text, -1) {
		v, ok := parseAmount(m[1])
		if !ok {
			continue
		}
		if v > best {
			best = v
			evidence = strings.TrimSpace(m[0])
			found = true
		}
	}
	return best, evidence, found
}

// findPercent applies re to text and returns the first captured percentage
// within [0,100]. The capture group must be the percentage value.
func findPercent(re *regexp.Regexp, text string) (float64, string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v < 0 || v > 100 {
		return 0, "", false
	}
	return v, strings.TrimSpace(m[0]), true
}

// capConfidence accumulates per-signal bonuses without exceeding the
// extractor's documented ceiling. Deterministic heuristics are never fully
// certain, so ceilings stay below 100.
func capConfidence(sum, ceiling int) int {
	if sum > ceiling {
		return ceiling
	}
	return sum
}

// snippet trims an evidence excerpt to a bounded length for the provenance
// record.
func snippet(s string) string {
	s = artext.CollapseWhitespace(s)
	runes := []rune(s)
	if len(runes) > 120 {
		return string(runes[:120])
	}
	return s
}
