package providers

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tanafus/engine/internal/catalog"
	"github.com/tanafus/engine/internal/extract"
	"github.com/tanafus/engine/internal/verify"
)

// maxPromptChars bounds the document excerpt embedded in prompts.
const maxPromptChars = 30000

const systemPrompt = "You are a procurement analyst specializing in Saudi government tenders. " +
	"Answer in valid JSON only, matching the requested structure exactly. " +
	"Quote evidence verbatim from the provided document text."

// analysisCriteria are the five scoring dimensions. Their names must match
// the weight keys supplied to the analysis guardrail.
var analysisCriteria = []string{
	"commercial_viability",
	"technical_fit",
	"competition_level",
	"financial_risk",
	"delivery_feasibility",
}

func buildAnalysisPrompt(documentText string, pre *extract.PreExtraction) string {
	summary, _ := json.Marshal(map[string]any{
		"tender_number":   pre.Introduction.TenderNumber.Value,
		"title":           pre.Introduction.Title.Value,
		"estimated_value": pre.Introduction.EstimatedValue.Value,
		"line_items":      len(pre.BOQ.Items),
		"pricing_type":    pre.BOQ.PricingType,
	})

	return fmt.Sprintf(`Analyze this tender for bid/no-bid assessment.

Score each criterion 0-100: %s.
For each criterion give a short reasoning. Compute overall_score as the weighted mean.
Set recommendation to "pursue", "review", or "skip".
Cite evidence quotes copied verbatim from the document.
Set confidence to "high", "medium", or "low".

Deterministic pre-extraction summary:
%s

Document text:
%s`,
		strings.Join(analysisCriteria, ", "), summary, truncate(documentText))
}

func buildReextractionPrompt(documentText string) string {
	return fmt.Sprintf(`Extract the following fields from this tender document:
tender_number, entity, title, city, submission_deadline (Gregorian ISO date),
estimated_value (number, Saudi riyal). Use null for anything not present and
list its name in not_found. Report per-field confidence 0-100 in
field_confidence and an overall_confidence.
Also summarize the evaluation, contract, and qualifications sections with any
percentage values you find.

Document text:
%s`, truncate(documentText))
}

func buildSpecCardsPrompt(items []extract.LineItem) string {
	encoded, _ := json.Marshal(items)
	return fmt.Sprintf(`Generate one technical spec card per bill-of-quantities
line item below. Each card carries the item's sequence number, a parameter
list (name, value, unit, mandatory flag), referenced standards, approved
brands, constraints, and a confidence 0-100.

Line items:
%s`, encoded)
}

func buildNominationPrompt(card verify.SpecCard, candidates []catalog.Item) string {
	encodedCard, _ := json.Marshal(card)
	encodedCandidates, _ := json.Marshal(candidates)
	return fmt.Sprintf(`Nominate products from the candidate catalog that satisfy
this spec card. For each nomination report per-parameter compliance (met /
not met, mandatory flag), a compliance_score 0-100, the catalog price, and a
1-based rank.

Spec card:
%s

Candidates:
%s`, encodedCard, encodedCandidates)
}

func truncate(s string) string {
	if len(s) <= maxPromptChars {
		return s
	}

	// back up to a rune boundary so the cut never leaves invalid UTF-8
	n := maxPromptChars
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
