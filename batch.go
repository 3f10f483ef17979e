package courier

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/courierflow/courier/pkg/mail"
	"github.com/courierflow/courier/pkg/ports"
)

// DefaultBatchConcurrency bounds parallel runs in ProcessBatch when the
// caller passes a non-positive limit.
const DefaultBatchConcurrency = 4

// ProcessBatch runs the workflow for each record as fully independent
// concurrent runs. Runs are isolated: one record's failure is recorded in
// its tagged outcome and does not stop the rest. Outcomes are returned in
// input order. The only error returned is context cancellation.
func (s *Service) ProcessBatch(ctx context.Context, emails []mail.Email, concurrency int) ([]*ports.Outcome, error) {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	outcomes := make([]*ports.Outcome, len(emails))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, email := range emails {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcome, err := s.Process(ctx, email)
			outcomes[i] = outcome
			// Per-run failures are tagged in the outcome; only
			// cancellation aborts the batch.
			if ctx.Err() != nil {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}
