package enrich

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mataconnect/communitypipe/ai"
	"github.com/mataconnect/communitypipe/storage"
)

// Summary reports the outcome of an enrichment run.
type Summary struct {
	Total     int // URLs in the input list
	Processed int // newly enriched and stored
	Skipped   int // already cached, not re-enriched
	Failed    int // enrichment collaborator errors
}

// Runner drives the enrichment phase: for each URL in input order it skips
// cached entries, otherwise calls the enrichment service once and stores
// the result. URLs are processed strictly sequentially.
type Runner struct {
	store    storage.RecordStore
	enricher ai.Enricher
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRunner creates a new enrichment runner.
func NewRunner(store storage.RecordStore, enricher ai.Enricher, opts ...Option) (*Runner, error) {
	if store == nil {
		return nil, ErrRecordStoreRequired
	}
	if enricher == nil {
		return nil, ErrEnricherRequired
	}

	r := &Runner{
		store:    store,
		enricher: enricher,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Run processes the URL list. A single URL's enrichment failure is counted
// and the run continues; a store failure is fatal and aborts the run. The
// summary is always returned, even alongside a fatal error, so callers can
// report partial progress.
func (r *Runner) Run(ctx context.Context, urls []string) (*Summary, error) {
	summary := &Summary{Total: len(urls)}

	for i, url := range urls {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		r.logger.Info(fmt.Sprintf("[%d/%d] processing", i+1, summary.Total), "url", url)

		exists, err := r.store.Exists(ctx, url)
		if err != nil {
			return summary, fmt.Errorf("checking cache for %s: %w", url, err)
		}
		if exists {
			r.logger.Info("already cached, skipping", "url", url)
			summary.Skipped++
			continue
		}

		community, err := r.enricher.EnrichCommunity(ctx, url)
		if err != nil {
			r.logger.Error("enrichment failed", "url", url, "err", err)
			summary.Failed++
			continue
		}

		if _, err := r.store.Upsert(ctx, url, community); err != nil {
			return summary, fmt.Errorf("storing enrichment for %s: %w", url, err)
		}

		r.logger.Info("enriched and stored", "url", url, "name", community.Name)
		summary.Processed++
	}

	r.logger.Info("enrichment run complete",
		"total", summary.Total,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"failed", summary.Failed)

	return summary, nil
}
