package feed

import (
	"log"

	"github.com/rogerio-castellano/catalog-sync/internal/observability"
	repo "github.com/rogerio-castellano/catalog-sync/internal/repo"
)

// Syncer executes one full pipeline run: fetch, parse, reconcile. Item
// failures are isolated; only a fetch or top-level format problem fails the
// run as a whole.
type Syncer struct {
	client      *Client
	reconciler  *Reconciler
	feedURL     string
	maxProducts int
}

func NewSyncer(client *Client, r repo.ProductRepository, feedURL string, maxProducts int) *Syncer {
	return &Syncer{
		client:      client,
		reconciler:  NewReconciler(r),
		feedURL:     feedURL,
		maxProducts: maxProducts,
	}
}

// RunResult summarizes one completed run.
type RunResult struct {
	Processed       int
	SkippedProducts int
	SavedVariants   int
	SkippedVariants int
}

func (s *Syncer) Run() (RunResult, error) {
	log.Printf("Starting product fetch from %s", s.feedURL)

	raw, err := s.client.Fetch(s.feedURL)
	if err != nil {
		observability.RunFailures.Inc()
		return RunResult{}, err
	}

	items, err := Parse(raw)
	if err != nil {
		observability.RunFailures.Inc()
		return RunResult{}, err
	}

	var result RunResult
	for _, item := range items {
		if result.Processed >= s.maxProducts {
			break
		}

		bundle, err := parseProduct(item)
		if err != nil {
			log.Printf("Error processing product: %v", err)
			result.SkippedProducts++
			observability.ProductsSkipped.Inc()
			continue
		}

		saved, err := s.reconciler.Reconcile(bundle)
		if err != nil {
			log.Printf("Error processing product: %v", err)
			result.SkippedProducts++
			observability.ProductsSkipped.Inc()
			continue
		}

		result.Processed++
		result.SavedVariants += saved
		result.SkippedVariants += bundle.SkippedVariants + (len(bundle.Variants) - saved)
		observability.ProductsUpserted.Inc()
		observability.VariantsUpserted.Add(float64(saved))
	}

	observability.RunsTotal.Inc()
	log.Printf("Finished fetching products. Saved/updated: %d, skipped: %d", result.Processed, result.SkippedProducts)
	return result, nil
}
