// Package verify re-validates generative-model output against deterministic
// signals: recomputed formulas, fixed thresholds, and source-text evidence.
// Every checker is a pure function returning a corrected value plus an
// ordered, human-readable correction log; corrections are the audit trail
// and are never silently dropped.
package verify

// Recommendation is the action derived from an analysis score.
type Recommendation string

// Recommendation values, a deterministic function of the corrected overall
// score.
const (
	RecommendPursue Recommendation = "pursue"
	RecommendReview Recommendation = "review"
	RecommendSkip   Recommendation = "skip"
)

// ConfidenceLevel is the model's categorical self-assessment.
type ConfidenceLevel string

// Confidence levels.
const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Evidence relevance labels. A quote that fails the source cross-check is
// downgraded to concerning, never deleted.
const (
	RelevanceStrong     = "strong"
	RelevanceModerate   = "moderate"
	RelevanceConcerning = "concerning"
)

// CriterionScore is one sub-score with the model's reasoning.
type CriterionScore struct {
	Criterion string  `json:"criterion"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// Evidence is one quoted span the model cites for its analysis.
type Evidence struct {
	Quote     string `json:"quote"`
	Section   string `json:"section,omitempty"`
	Relevance string `json:"relevance"`
}

// Analysis is the model's tender analysis: an overall score, five weighted
// sub-scores, cited evidence, and a recommendation.
type Analysis struct {
	OverallScore   float64          `json:"overall_score"`
	Scores         []CriterionScore `json:"scores"`
	Evidence       []Evidence       `json:"evidence"`
	Recommendation Recommendation   `json:"recommendation"`
	Confidence     ConfidenceLevel  `json:"confidence"`
	RedFlags       []string         `json:"red_flags"`
}

// ExtractionClaim is the model's re-extraction of the deterministic fields.
// Pointer fields distinguish "not extracted" from zero values.
// FieldConfidence is keyed by the JSON field name.
type ExtractionClaim struct {
	TenderNumber       *string  `json:"tender_number"`
	Entity             *string  `json:"entity"`
	Title              *string  `json:"title"`
	City               *string  `json:"city"`
	SubmissionDeadline *string  `json:"submission_deadline"`
	EstimatedValue     *float64 `json:"estimated_value"`

	FieldConfidence   map[string]float64 `json:"field_confidence"`
	OverallConfidence float64            `json:"overall_confidence"`
	NotFound          []string           `json:"not_found"`
	Sections          *SectionClaims     `json:"sections,omitempty"`
}

// SectionClaims bundles the model's structured section summaries.
type SectionClaims struct {
	Evaluation     *SectionClaim `json:"evaluation,omitempty"`
	Contract       *SectionClaim `json:"contract,omitempty"`
	Qualifications *SectionClaim `json:"qualifications,omitempty"`
}

// SectionClaim is one structured section summary with any percentage values
// the model recovered for it.
type SectionClaim struct {
	Summary     string             `json:"summary"`
	Percentages map[string]float64 `json:"percentages,omitempty"`
	Confidence  float64            `json:"confidence"`
}

// Parameter is one technical parameter on a spec card.
type Parameter struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Unit      string `json:"unit,omitempty"`
	Mandatory bool   `json:"mandatory"`
}

// SpecCard is a generated structured technical-specification record for one
// bill-of-quantities line item, keyed by that item's sequence number.
type SpecCard struct {
	Sequence    int         `json:"sequence"`
	ItemName    string      `json:"item_name"`
	Parameters  []Parameter `json:"parameters"`
	Standards   []string    `json:"standards,omitempty"`
	Brands      []string    `json:"brands,omitempty"`
	Constraints []string    `json:"constraints,omitempty"`
	Confidence  float64     `json:"confidence"`
}

// ComplianceEntry records whether a nominated product meets one spec-card
// parameter.
type ComplianceEntry struct {
	Parameter string `json:"parameter"`
	Mandatory bool   `json:"mandatory"`
	Met       bool   `json:"met"`
	Note      string `json:"note,omitempty"`
}

// Nomination is a generated candidate product for one spec card. Rank 0
// means the model omitted the rank; the guardrail synthesizes one.
type Nomination struct {
	CardSequence    int               `json:"card_sequence"`
	ProductName     string            `json:"product_name"`
	Supplier        string            `json:"supplier,omitempty"`
	Compliance      []ComplianceEntry `json:"compliance"`
	ComplianceScore float64           `json:"compliance_score"`
	Price           *float64          `json:"price"`
	Rank            int               `json:"rank"`
}
