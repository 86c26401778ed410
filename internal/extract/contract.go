package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tanafus/engine/pkg/artext"
)

// Fixed day multipliers for duration units. The month and year values are
// approximations, not calendar-aware conversions.
const (
	daysPerMonth = 30
	daysPerYear  = 365
)

const durationUnits = `(يوما?|[أا]يام|شهرا?|[أا]شهر|شهور|سنوات|سن[هة])`

var (
	durationPattern = regexp.MustCompile(
		`مدة\s+(?:العقد|التنفيذ|المشروع)\s*:?\s*\(?(\d{1,4})\)?\s*` + durationUnits,
	)
	warrantyPattern = regexp.MustCompile(
		`(?:فترة\s+|مدة\s+)?الضمان(?:\s+على\s+ال[أا]عمال)?\s*:?\s*\(?(\d{1,4})\)?\s*` + durationUnits,
	)
	penaltyPattern = regexp.MustCompile(
		`غرام(?:ة|ات)\s+(?:التأخير|تأخير)?[^\n.]{0,60}?` + percentValue,
	)
	bondPattern = regexp.MustCompile(
		`الضمان\s+النهائي[^\n.]{0,60}?` + percentValue,
	)
	paymentPattern = regexp.MustCompile(
		`(?:شروط|طريقة|[آا]لية)\s+(?:الدفع|الصرف)\s*:?\s*([^\n]{3,100})`,
	)
)

// ExtractContractTerms recovers contractual terms from the contract
// requirements section. Durations expressed in months or years are
// normalized to day counts with the fixed multipliers above.
func ExtractContractTerms(section string) ContractTerms {
	section = artext.FoldDigits(section)

	var out ContractTerms
	confidence := 0

	if days, evidence, ok := findDuration(durationPattern, section); ok {
		out.DurationDays = NewField(days, SourceRegex, evidence, 85)
		confidence += 25
	}
	if days, evidence, ok := findDuration(warrantyPattern, section); ok {
		out.WarrantyDays = NewField(days, SourceRegex, evidence, 80)
		confidence += 25
	}
	if v, evidence, ok := findPercent(penaltyPattern, section); ok && v > 0 {
		out.PenaltyPercent = NewField(v, SourceRegex, evidence, 80)
		confidence += 20
	}
	if v, evidence, ok := findPercent(bondPattern, section); ok && v > 0 {
		out.PerformanceBondPercent = NewField(v, SourceRegex, evidence, 80)
		confidence += 10
	}
	if m := paymentPattern.FindStringSubmatch(section); m != nil {
		out.PaymentTerms = NewField(artext.CollapseWhitespace(m[1]), SourceProximity, snippet(m[0]), 65)
		confidence += 10
	}

	out.Confidence = capConfidence(confidence, 90)
	return out
}

func findDuration(re *regexp.Regexp, text string) (int, string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}

	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, "", false
	}

	return n * unitDays(m[2]), snippet(m[0]), true
}

func unitDays(unit string) int {
	unit = artext.FoldLetters(unit)
	switch {
	case strings.HasPrefix(unit, "يوم") || strings.HasPrefix(unit, "ايام"):
		return 1
	case strings.HasPrefix(unit, "شه") || strings.HasPrefix(unit, "اشهر"):
		return daysPerMonth
	default:
		return daysPerYear
	}
}
