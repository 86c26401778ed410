package verify

import (
	"maps"
	"slices"
	"time"
)

// Extraction guardrail limits. Fields below confidenceFloor are nulled;
// estimated values outside the plausibility band are flagged but kept;
// section claims below sectionConfidenceFloor are nulled.
const (
	confidenceFloor        = 30
	sectionConfidenceFloor = 20
	overallDriftTolerance  = 10

	minPlausibleValue = 1_000
	maxPlausibleValue = 10_000_000_000
)

var deadlineLayouts = []string{time.RFC3339, "2006-01-02"}

// VerifyExtraction sanity-checks a model re-extraction. Fields whose claimed
// confidence is below the floor are nulled and added to the not-found set
// rather than surfaced as false positives; implausible values are flagged;
// the overall confidence is recomputed over the surviving fields. now is
// supplied by the caller so the check stays deterministic.
func VerifyExtraction(c ExtractionClaim, now time.Time) (ExtractionClaim, []string) {
	var log correctionLog

	c.NotFound = slices.Clone(c.NotFound)

	dropBelowFloor(&c, &log, "tender_number", func() { c.TenderNumber = nil })
	dropBelowFloor(&c, &log, "entity", func() { c.Entity = nil })
	dropBelowFloor(&c, &log, "title", func() { c.Title = nil })
	dropBelowFloor(&c, &log, "city", func() { c.City = nil })
	dropBelowFloor(&c, &log, "submission_deadline", func() { c.SubmissionDeadline = nil })
	dropBelowFloor(&c, &log, "estimated_value", func() { c.EstimatedValue = nil })

	checkEstimatedValue(&c, &log)
	checkDeadline(&c, now, &log)

	if recomputed, ok := meanFieldConfidence(&c); ok {
		if abs(recomputed-c.OverallConfidence) > overallDriftTolerance {
			log.addf("overall confidence %.1f overridden with recomputed %.1f", c.OverallConfidence, recomputed)
			c.OverallConfidence = recomputed
		}
	}
	c.OverallConfidence = clamp(c.OverallConfidence)

	c.Sections = verifySections(c.Sections, &log)

	return c, log.entries
}

func dropBelowFloor(c *ExtractionClaim, log *correctionLog, field string, null func()) {
	conf, ok := c.FieldConfidence[field]
	if !ok || conf >= confidenceFloor {
		return
	}
	if !fieldPresent(c, field) {
		return
	}

	null()
	markNotFound(c, field)
	log.addf("field %q nulled: confidence %.1f below floor %d", field, conf, confidenceFloor)
}

func fieldPresent(c *ExtractionClaim, field string) bool {
	switch field {
	case "tender_number":
		return c.TenderNumber != nil
	case "entity":
		return c.Entity != nil
	case "title":
		return c.Title != nil
	case "city":
		return c.City != nil
	case "submission_deadline":
		return c.SubmissionDeadline != nil
	case "estimated_value":
		return c.EstimatedValue != nil
	}
	return false
}

func markNotFound(c *ExtractionClaim, field string) {
	if !slices.Contains(c.NotFound, field) {
		c.NotFound = append(c.NotFound, field)
	}
}

func checkEstimatedValue(c *ExtractionClaim, log *correctionLog) {
	if c.EstimatedValue == nil {
		return
	}

	v := *c.EstimatedValue
	if v <= 0 {
		c.EstimatedValue = nil
		markNotFound(c, "estimated_value")
		log.addf("estimated value %.2f rejected: non-positive", v)
		return
	}
	if v < minPlausibleValue || v > maxPlausibleValue {
		log.addf("estimated value %.2f outside plausible band [%d, %d]", v, minPlausibleValue, maxPlausibleValue)
	}
}

func checkDeadline(c *ExtractionClaim, now time.Time, log *correctionLog) {
	if c.SubmissionDeadline == nil {
		return
	}

	parsed, ok := parseDeadline(*c.SubmissionDeadline)
	if !ok {
		log.addf("submission deadline %q nulled: unparseable", *c.SubmissionDeadline)
		c.SubmissionDeadline = nil
		markNotFound(c, "submission_deadline")
		return
	}

	if parsed.Before(now) {
		log.addf("submission deadline %q is in the past", *c.SubmissionDeadline)
	}
}

func parseDeadline(s string) (time.Time, bool) {
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// meanFieldConfidence averages the claimed confidences of the fields that
// are currently non-null.
func meanFieldConfidence(c *ExtractionClaim) (float64, bool) {
	fields := []string{"tender_number", "entity", "title", "city", "submission_deadline", "estimated_value"}

	var sum float64
	count := 0
	for _, f := range fields {
		if !fieldPresent(c, f) {
			continue
		}
		if conf, ok := c.FieldConfidence[f]; ok {
			sum += conf
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// verifySections applies percentage bounds and the section confidence floor
// to each structured section claim. The bundle is cloned so corrections never
// write back into the caller's claim. When every sub-section is nulled the
// whole bundle collapses to nil.
func verifySections(s *SectionClaims, log *correctionLog) *SectionClaims {
	if s == nil {
		return nil
	}

	out := &SectionClaims{
		Evaluation:     verifySection(s.Evaluation, "evaluation", log),
		Contract:       verifySection(s.Contract, "contract", log),
		Qualifications: verifySection(s.Qualifications, "qualifications", log),
	}

	if out.Evaluation == nil && out.Contract == nil && out.Qualifications == nil {
		return nil
	}
	return out
}

func verifySection(sc *SectionClaim, name string, log *correctionLog) *SectionClaim {
	if sc == nil {
		return nil
	}

	if sc.Confidence < sectionConfidenceFloor {
		log.addf("section %q nulled: confidence %.1f below floor %d", name, sc.Confidence, sectionConfidenceFloor)
		return nil
	}

	out := *sc
	out.Percentages = maps.Clone(sc.Percentages)
	for key, v := range out.Percentages {
		if clamped := clamp(v); clamped != v {
			log.addf("section %q percentage %q %.1f clamped to %.1f", name, key, v, clamped)
			out.Percentages[key] = clamped
		}
	}
	out.Confidence = clamp(out.Confidence)

	return &out
}
