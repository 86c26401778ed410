package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tanafus/engine/internal/catalog"
	"github.com/tanafus/engine/internal/extract"
	"github.com/tanafus/engine/internal/verify"
)

const (
	nominationWorkers = 4
	candidatesPerCard = 10
)

// NominationJob is the audited result of spec-card generation and product
// nomination over a bill of quantities.
type NominationJob struct {
	ID          uuid.UUID           `json:"id"`
	StartedAt   time.Time           `json:"started_at"`
	Duration    time.Duration       `json:"duration"`
	Cards       []verify.SpecCard   `json:"cards"`
	Nominations []verify.Nomination `json:"nominations"`
	Corrections []string            `json:"corrections,omitempty"`
}

// Nominate generates a specification card per line item, matches each card
// against the catalog, and asks the model to rank the candidates. Cards are
// processed with bounded concurrency; verification runs on every response.
func (p *Pipeline) Nominate(ctx context.Context, items []extract.LineItem, catalogItems []catalog.Item) (*NominationJob, error) {
	if len(items) == 0 {
		return nil, ErrNoLineItems
	}

	job := &NominationJob{
		ID:        uuid.New(),
		StartedAt: time.Now(),
	}

	cards, err := p.provider.SpecCards(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("%w: spec cards: %w", ErrNominationFailed, err)
	}

	verified, corrections := verify.VerifySpecCards(cards, items)
	job.Cards = verified
	job.Corrections = append(job.Corrections, corrections...)

	results := make([][]verify.Nomination, len(verified))
	logs := make([][]string, len(verified))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(nominationWorkers)

	for i := range verified {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			card := verified[i]
			candidates := catalog.Search(card.ItemName, catalogItems, catalog.NominationFloor, candidatesPerCard)
			if len(candidates) == 0 {
				logs[i] = []string{fmt.Sprintf("card %d (%s): no catalog candidates", card.Sequence, card.ItemName)}
				return nil
			}

			pool := make([]catalog.Item, len(candidates))
			for j, m := range candidates {
				pool[j] = m.Item
			}

			noms, err := p.provider.Nominate(gctx, card, pool)
			if err != nil {
				return fmt.Errorf("card %d: nominate: %w", card.Sequence, err)
			}

			checked, nomCorrections := verify.VerifyNominations(noms)
			results[i] = checked
			logs[i] = nomCorrections
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNominationFailed, err)
	}

	for i := range verified {
		job.Nominations = append(job.Nominations, results[i]...)
		job.Corrections = append(job.Corrections, logs[i]...)
	}

	job.Duration = time.Since(job.StartedAt)

	p.logger.InfoContext(
		ctx, "nomination job complete",
		"job_id", job.ID,
		"cards", len(job.Cards),
		"nominations", len(job.Nominations),
		"corrections", len(job.Corrections),
		"duration", job.Duration,
	)

	return job, nil
}
