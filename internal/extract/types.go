// Package extract implements the deterministic structuring pass over a
// linearized tender booklet: canonical section detection, per-field
// provenance-scored extraction, and bill-of-quantities table parsing.
// Every function in this package is a pure computation over its inputs;
// unusual document layout degrades confidence, it never raises an error.
package extract

import "time"

// SourceKind records how a field's value was derived.
type SourceKind string

// Provenance kinds for extracted fields.
const (
	SourceRegex     SourceKind = "regex"
	SourceHeuristic SourceKind = "heuristic"
	SourceProximity SourceKind = "heading_proximity"
)

// Field is the atomic unit of deterministic extraction: a typed value paired
// with its provenance and a heuristic confidence in [0,100]. Found
// distinguishes "not extracted" from "extracted as the zero value".
// Confidence is only ever compared relatively; it is not a calibrated
// probability.
type Field[T any] struct {
	Value      T          `json:"value"`
	Source     SourceKind `json:"source,omitempty"`
	Evidence   string     `json:"evidence,omitempty"`
	Confidence int        `json:"confidence"`
	Found      bool       `json:"found"`
}

// NewField wraps a recovered value with its provenance.
func NewField[T any](value T, source SourceKind, evidence string, confidence int) Field[T] {
	return Field[T]{
		Value:      value,
		Source:     source,
		Evidence:   evidence,
		Confidence: confidence,
		Found:      true,
	}
}

// Section is one detected canonical section span. Start and End are byte
// offsets into the source text; spans are contiguous and non-overlapping by
// construction (each section's End is the next section's Start, the last
// section runs to document end).
type Section struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Text   string `json:"-"`
}

// Introduction holds the identifying metadata recovered from section 1 of
// the booklet.
type Introduction struct {
	TenderNumber       Field[string]    `json:"tender_number"`
	Entity             Field[string]    `json:"entity"`
	Title              Field[string]    `json:"title"`
	City               Field[string]    `json:"city"`
	SubmissionDeadline Field[time.Time] `json:"submission_deadline"`
	EstimatedValue     Field[float64]   `json:"estimated_value"`
	Confidence         int              `json:"confidence"`
}

// EvaluationMethod classifies how offers are scored.
type EvaluationMethod string

// Recognized evaluation methods.
const (
	MethodQualityAndCost EvaluationMethod = "quality_and_cost"
	MethodLowestPrice    EvaluationMethod = "lowest_price"
	MethodQualityOnly    EvaluationMethod = "quality_only"
)

// Evaluation holds the offer-evaluation methodology recovered from section 5.
type Evaluation struct {
	Method          Field[EvaluationMethod] `json:"method"`
	FinancialWeight Field[float64]          `json:"financial_weight"`
	TechnicalWeight Field[float64]          `json:"technical_weight"`
	Confidence      int                     `json:"confidence"`
}

// ContractTerms holds contractual terms recovered from section 6. Duration
// and warranty are normalized to day counts with fixed multipliers
// (month≈30 days, year=365 days); this is an approximation, not a
// calendar-aware conversion.
type ContractTerms struct {
	DurationDays           Field[int]     `json:"duration_days"`
	WarrantyDays           Field[int]     `json:"warranty_days"`
	PenaltyPercent         Field[float64] `json:"penalty_percent"`
	PerformanceBondPercent Field[float64] `json:"performance_bond_percent"`
	PaymentTerms           Field[string]  `json:"payment_terms"`
	Confidence             int            `json:"confidence"`
}

// TechnicalSpecs holds the technical requirements recovered from section 8:
// referenced standards and any approved-brand list.
type TechnicalSpecs struct {
	Standards  []string `json:"standards"`
	Brands     []string `json:"brands"`
	Confidence int      `json:"confidence"`
}

// Qualifications holds bidder qualification requirements recovered from
// sections 3 and 9.
type Qualifications struct {
	Classification     Field[string] `json:"classification"`
	Certificates       []string      `json:"certificates"`
	MinExperienceYears Field[int]    `json:"min_experience_years"`
	SimilarProjects    Field[int]    `json:"similar_projects"`
	Confidence         int           `json:"confidence"`
}

// PricingType classifies how a bill of quantities is priced.
type PricingType string

// Pricing classifications. PricingLumpSum is reserved: the current heuristic
// has no lump-sum signal and never emits it automatically.
const (
	PricingUnitBased PricingType = "unit_based"
	PricingMixed     PricingType = "mixed"
	PricingLumpSum   PricingType = "lump_sum"
)

// LineItem is one structured bill-of-quantities row. Sequence is the source
// document's own item number when parseable, else a synthesized 1-based
// counter; it must not be assumed equal to slice index. Absent optional
// columns are nil, never empty strings.
type LineItem struct {
	Sequence      int      `json:"sequence"`
	Category      *string  `json:"category"`
	Description   string   `json:"description"`
	Specification *string  `json:"specification"`
	Unit          *string  `json:"unit"`
	Quantity      *float64 `json:"quantity"`
	Confidence    int      `json:"confidence"`
}

// BOQ is the parsed bill of quantities: ordered line items plus the pricing
// classification. Item order matches source table row order.
type BOQ struct {
	Items       []LineItem  `json:"items"`
	PricingType PricingType `json:"pricing_type"`
	Confidence  int         `json:"confidence"`
}

// PreExtraction aggregates the full deterministic pass over one document.
// It is constructed once, synchronously, and never mutated after return.
type PreExtraction struct {
	Text              string         `json:"-"`
	PageCount         int            `json:"page_count"`
	Sections          []Section      `json:"sections"`
	Introduction      Introduction   `json:"introduction"`
	Evaluation        Evaluation     `json:"evaluation"`
	Contract          ContractTerms  `json:"contract"`
	Technical         TechnicalSpecs `json:"technical"`
	Qualifications    Qualifications `json:"qualifications"`
	BOQ               BOQ            `json:"boq"`
	OverallConfidence int            `json:"overall_confidence"`
	Duration          time.Duration  `json:"duration"`
	Warnings          []string       `json:"warnings"`
}
