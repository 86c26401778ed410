package extract

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"
)

// Limits for orchestrated extraction. Text below minTextLength short-circuits
// to an empty result; the fallback BOQ heading search scans at most
// boqFallbackWindow bytes after the heading.
const (
	minTextLength     = 200
	boqFallbackWindow = 15000
)

// boqHeadings are scanned in order when no section 7 span was detected.
var boqHeadings = []*regexp.Regexp{
	regexp.MustCompile(`جد(?:ول|اول)\s+الكميات`),
	regexp.MustCompile(`قائم[هة]\s+الكميات`),
	regexp.MustCompile(`نطاق\s+العمل`),
}

// ExtractedText is the linearized form of a document produced by a text
// source. An empty Text is a degraded mode, not an error.
type ExtractedText struct {
	Text      string
	PageCount int
}

// TextSource linearizes raw document bytes. pkg/textract satisfies this; the
// orchestrator depends only on the contract so tests can supply fixed text.
type TextSource interface {
	Extract(ctx context.Context, data []byte) (ExtractedText, error)
}

// TextSourceFunc adapts a function to the TextSource interface.
type TextSourceFunc func(ctx context.Context, data []byte) (ExtractedText, error)

// Extract calls f.
func (f TextSourceFunc) Extract(ctx context.Context, data []byte) (ExtractedText, error) {
	return f(ctx, data)
}

// Orchestrator sequences the deterministic pass: text extraction, section
// detection, field and table extraction, and confidence aggregation. It
// holds no mutable state; concurrent Run calls are independent.
type Orchestrator struct {
	source TextSource
	logger *slog.Logger
}

// NewOrchestrator creates an orchestrator over the given text source.
func NewOrchestrator(source TextSource, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		source: source,
		logger: logger.With("system", "extract"),
	}
}

// Run executes the full deterministic pass over one document. Document
// variability never yields an error: unreadable or near-empty text produces
// an explicit empty result with a warning. The returned error is reserved
// for context cancellation.
func (o *Orchestrator) Run(ctx context.Context, data []byte) (*PreExtraction, error) {
	started := time.Now()

	var warnings []string

	extracted, err := o.source.Extract(ctx, data)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		warnings = append(warnings, fmt.Sprintf("text extraction failed: %v", err))
	}

	result := &PreExtraction{
		Text:      extracted.Text,
		PageCount: extracted.PageCount,
	}

	if len(extracted.Text) < minTextLength {
		warnings = append(warnings, "extracted text empty or below minimum length; document may be scanned images")
		result.BOQ = BOQ{PricingType: PricingMixed}
		result.Warnings = warnings
		result.Duration = time.Since(started)
		return result, nil
	}

	text := extracted.Text
	result.Sections = DetectSections(text)
	if len(result.Sections) == 0 {
		warnings = append(warnings, "no canonical sections detected; extracting against full document text")
	}

	result.Introduction = ExtractIntroduction(o.sectionText(result.Sections, 1, text), text)
	result.Qualifications = ExtractQualifications(o.qualificationText(result.Sections, text))
	result.Evaluation = ExtractEvaluation(o.sectionText(result.Sections, 5, text))
	result.Contract = ExtractContractTerms(o.sectionText(result.Sections, 6, text))
	result.Technical = ExtractTechnicalSpecs(o.sectionText(result.Sections, 8, text))

	boqText, boqWarning := resolveBOQText(result.Sections, text)
	if boqWarning != "" {
		warnings = append(warnings, boqWarning)
	}
	result.BOQ = ExtractLineItems(boqText)

	result.OverallConfidence = overallConfidence(result)
	result.Warnings = warnings
	result.Duration = time.Since(started)

	o.logger.InfoContext(
		ctx, "deterministic extraction complete",
		"sections", len(result.Sections),
		"items", len(result.BOQ.Items),
		"overall_confidence", result.OverallConfidence,
		"warnings", len(warnings),
	)

	return result, nil
}

// sectionText returns the detected span for a section number, falling back
// to the full document when the section was not detected.
func (o *Orchestrator) sectionText(sections []Section, number int, full string) string {
	for _, s := range sections {
		if s.Number == number {
			return s.Text
		}
	}
	return full
}

// qualificationText joins the offer-preparation and special-conditions
// spans, the two places qualification requirements appear in practice.
func (o *Orchestrator) qualificationText(sections []Section, full string) string {
	prep := ""
	special := ""
	for _, s := range sections {
		switch s.Number {
		case 3:
			prep = s.Text
		case 9:
			special = s.Text
		}
	}
	if prep == "" && special == "" {
		return full
	}
	return prep + "\n" + special
}

// resolveBOQText prefers the detected section 7 span; otherwise it scans for
// a bill-of-quantities heading and takes a bounded window after it. A
// non-empty warning is returned when the window truncates remaining text.
func resolveBOQText(sections []Section, full string) (string, string) {
	for _, s := range sections {
		if s.Number == 7 {
			return s.Text, ""
		}
	}

	for _, re := range boqHeadings {
		loc := re.FindStringIndex(full)
		if loc == nil {
			continue
		}

		rest := full[loc[0]:]
		if len(rest) > boqFallbackWindow {
			return rest[:boqFallbackWindow],
				"bill-of-quantities fallback window truncated remaining text"
		}
		return rest, ""
	}

	return full, ""
}

// overallConfidence is the unweighted mean of the six section-level
// confidences.
func overallConfidence(r *PreExtraction) int {
	sum := r.Introduction.Confidence +
		r.Evaluation.Confidence +
		r.Contract.Confidence +
		r.Technical.Confidence +
		r.Qualifications.Confidence +
		r.BOQ.Confidence
	return sum / 6
}
