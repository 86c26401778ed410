package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tanafus/engine/internal/extract"
	"github.com/tanafus/engine/internal/providers"
	"github.com/tanafus/engine/internal/verify"
)

// Pipeline wires deterministic extraction, the generative provider, and the
// verification guardrails into end-to-end jobs. Every model response passes
// through verification before it reaches a result; corrections are recorded
// on the job for auditing.
type Pipeline struct {
	orchestrator *extract.Orchestrator
	provider     providers.Provider
	logger       *slog.Logger
}

func New(orchestrator *extract.Orchestrator, provider providers.Provider, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		orchestrator: orchestrator,
		provider:     provider,
		logger:       logger,
	}
}

// AnalysisJob is the audited result of a full document analysis run.
type AnalysisJob struct {
	ID          uuid.UUID              `json:"id"`
	StartedAt   time.Time              `json:"started_at"`
	Duration    time.Duration          `json:"duration"`
	Pre         *extract.PreExtraction `json:"pre_extraction"`
	Analysis    verify.Analysis        `json:"analysis"`
	Claim       verify.ExtractionClaim `json:"extraction_claim"`
	Corrections []string               `json:"corrections,omitempty"`
}

// Analyze runs the full pipeline over raw document bytes: deterministic
// pre-extraction, then parallel model analysis and re-extraction, each
// verified against the source text before the job is returned.
func (p *Pipeline) Analyze(ctx context.Context, data []byte) (*AnalysisJob, error) {
	job := &AnalysisJob{
		ID:        uuid.New(),
		StartedAt: time.Now(),
	}

	pre, err := p.orchestrator.Run(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}
	job.Pre = pre

	var (
		analysis *verify.Analysis
		claim    *verify.ExtractionClaim
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := p.provider.Analyze(gctx, pre.Text, pre)
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
		analysis = a
		return nil
	})
	g.Go(func() error {
		c, err := p.provider.Reextract(gctx, pre.Text)
		if err != nil {
			return fmt.Errorf("reextract: %w", err)
		}
		claim = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	verified, corrections := verify.VerifyAnalysis(*analysis, nil)
	job.Corrections = append(job.Corrections, corrections...)

	checked, _, evCorrections := verify.VerifyEvidence(verified.Evidence, pre.Text)
	verified.Evidence = checked
	job.Corrections = append(job.Corrections, evCorrections...)
	job.Analysis = verified

	verifiedClaim, claimCorrections := verify.VerifyExtraction(*claim, time.Now())
	job.Corrections = append(job.Corrections, claimCorrections...)
	job.Claim = verifiedClaim

	job.Duration = time.Since(job.StartedAt)

	p.logger.InfoContext(
		ctx, "analysis job complete",
		"job_id", job.ID,
		"recommendation", job.Analysis.Recommendation,
		"overall_score", job.Analysis.OverallScore,
		"corrections", len(job.Corrections),
		"duration", job.Duration,
	)

	return job, nil
}
