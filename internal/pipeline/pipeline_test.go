package pipeline_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tanafus/engine/internal/catalog"
	"github.com/tanafus/engine/internal/extract"
	"github.com/tanafus/engine/internal/pipeline"
	"github.com/tanafus/engine/internal/verify"
)

const pipelineDoc = `القسم الأول: المقدمة
رقم المنافسة: 1446/220
اسم الجهة: أمانة منطقة الرياض
اسم المنافسة: مشروع صيانة شبكات الري بالحدائق العامة
وصف عام لأعمال الصيانة الدورية والتشغيل المستمر لشبكات الري.
القسم السابع: نطاق العمل المفصل
1	توريد	مضخة مياه عمودية	عدد	6
2	تركيب	مضخة مياه غاطسة	عدد	4
3	صيانة	شبكة الري الرئيسية	متر	300`

// stubProvider returns canned responses with deliberate inconsistencies so
// the verification pass has something to correct.
type stubProvider struct{}

func (stubProvider) Name() string { return "stub" }

func (stubProvider) Analyze(ctx context.Context, documentText string, pre *extract.PreExtraction) (*verify.Analysis, error) {
	return &verify.Analysis{
		OverallScore: 95,
		Scores: []verify.CriterionScore{
			{Criterion: "commercial_viability", Score: 60, Reasoning: "قيمة مناسبة"},
			{Criterion: "technical_fit", Score: 50, Reasoning: "متوافق جزئياً"},
		},
		Evidence: []verify.Evidence{
			{Quote: "صيانة شبكات الري بالحدائق", Relevance: verify.RelevanceStrong},
			{Quote: "توريد طائرات مسيرة للمراقبة", Relevance: verify.RelevanceStrong},
		},
		Recommendation: verify.RecommendPursue,
		Confidence:     verify.ConfidenceHigh,
	}, nil
}

func (stubProvider) Reextract(ctx context.Context, documentText string) (*verify.ExtractionClaim, error) {
	num := "1446/220"
	value := -100.0
	return &verify.ExtractionClaim{
		TenderNumber:    &num,
		EstimatedValue:  &value,
		FieldConfidence: map[string]float64{"tender_number": 90, "estimated_value": 80},
	}, nil
}

func (stubProvider) SpecCards(ctx context.Context, items []extract.LineItem) ([]verify.SpecCard, error) {
	cards := make([]verify.SpecCard, len(items))
	for i, it := range items {
		cards[i] = verify.SpecCard{
			Sequence:   it.Sequence,
			ItemName:   it.Description,
			Parameters: []verify.Parameter{{Name: "النوع", Value: it.Description, Mandatory: true}},
			Confidence: 70,
		}
	}
	return cards, nil
}

func (stubProvider) Nominate(ctx context.Context, card verify.SpecCard, candidates []catalog.Item) ([]verify.Nomination, error) {
	noms := make([]verify.Nomination, len(candidates))
	for i, c := range candidates {
		price := c.UnitPrice
		noms[i] = verify.Nomination{
			CardSequence:    card.Sequence,
			ProductName:     c.Name,
			Compliance:      []verify.ComplianceEntry{{Parameter: "النوع", Mandatory: true, Met: true}},
			ComplianceScore: 100,
			Price:           &price,
		}
	}
	return noms, nil
}

func testPipeline() *pipeline.Pipeline {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	source := extract.TextSourceFunc(func(ctx context.Context, data []byte) (extract.ExtractedText, error) {
		return extract.ExtractedText{Text: pipelineDoc, PageCount: 1}, nil
	})
	return pipeline.New(extract.NewOrchestrator(source, logger), stubProvider{}, logger)
}

func TestPipelineAnalyze(t *testing.T) {
	job, err := testPipeline().Analyze(context.Background(), nil)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	t.Run("job identity assigned", func(t *testing.T) {
		if job.ID == uuid.Nil {
			t.Error("job ID is zero")
		}
	})

	t.Run("overall score corrected from drift", func(t *testing.T) {
		if job.Analysis.OverallScore != 55 {
			t.Errorf("OverallScore = %v, want recomputed 55", job.Analysis.OverallScore)
		}
		if job.Analysis.Recommendation != verify.RecommendReview {
			t.Errorf("Recommendation = %q, want review", job.Analysis.Recommendation)
		}
	})

	t.Run("fabricated evidence downgraded", func(t *testing.T) {
		if len(job.Analysis.Evidence) != 2 {
			t.Fatalf("len(Evidence) = %d, want 2", len(job.Analysis.Evidence))
		}
		if job.Analysis.Evidence[0].Relevance != verify.RelevanceStrong {
			t.Errorf("Evidence[0].Relevance = %q, want strong", job.Analysis.Evidence[0].Relevance)
		}
		if job.Analysis.Evidence[1].Relevance != verify.RelevanceConcerning {
			t.Errorf("Evidence[1].Relevance = %q, want concerning", job.Analysis.Evidence[1].Relevance)
		}
	})

	t.Run("negative estimated value nulled", func(t *testing.T) {
		if job.Claim.EstimatedValue != nil {
			t.Errorf("EstimatedValue = %v, want nil", *job.Claim.EstimatedValue)
		}
	})

	t.Run("corrections accumulated", func(t *testing.T) {
		if len(job.Corrections) < 3 {
			t.Errorf("corrections = %v, want at least score, evidence, and value entries", job.Corrections)
		}
	})
}

func TestPipelineNominate(t *testing.T) {
	items := []catalog.Item{
		{ID: "cat-001", Name: "مضخة مياه عمودية", Category: "معدات", Unit: "عدد", UnitPrice: 4200},
		{ID: "cat-002", Name: "مضخة مياه غاطسة", Category: "معدات", Unit: "عدد", UnitPrice: 6100},
	}

	p := testPipeline()
	pre, err := extract.NewOrchestrator(extract.TextSourceFunc(func(ctx context.Context, data []byte) (extract.ExtractedText, error) {
		return extract.ExtractedText{Text: pipelineDoc, PageCount: 1}, nil
	}), slog.New(slog.NewTextHandler(io.Discard, nil))).Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("extraction error: %v", err)
	}
	if len(pre.BOQ.Items) != 3 {
		t.Fatalf("len(BOQ.Items) = %d, want 3", len(pre.BOQ.Items))
	}

	job, err := p.Nominate(context.Background(), pre.BOQ.Items, items)
	if err != nil {
		t.Fatalf("Nominate error: %v", err)
	}

	if len(job.Cards) != 3 {
		t.Errorf("len(Cards) = %d, want 3", len(job.Cards))
	}
	if len(job.Nominations) == 0 {
		t.Error("no nominations produced")
	}

	for _, n := range job.Nominations {
		if n.Rank <= 0 {
			t.Errorf("nomination %q rank = %d, want synthesized positive rank", n.ProductName, n.Rank)
		}
	}
}

func TestPipelineNominateNoItems(t *testing.T) {
	_, err := testPipeline().Nominate(context.Background(), nil, nil)
	if err == nil || !strings.Contains(err.Error(), "no line items") {
		t.Errorf("err = %v, want ErrNoLineItems", err)
	}
}
