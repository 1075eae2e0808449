package worker

import (
	"encoding/json"
	"fmt"

	"pricehound/internal/scrape"
	"pricehound/logger"
	"pricehound/pkg/errors"
	"pricehound/services/publisher"
)

// Searcher is one retailer's search pipeline.
type Searcher interface {
	Name() string
	Search(query string) []scrape.ProductRecord
}

// Worker runs every retailer pipeline for one query, strictly sequentially:
// the pipelines share a single stateful browser session, so no concurrent
// navigation is permitted. Errors never cross retailer boundaries; the
// worst case for one retailer is an empty contribution.
type Worker struct {
	pipelines []Searcher
	publisher publisher.Publisher
	log       *logger.Logger
}

// NewWorker creates a new worker. pub may be nil, disabling publishing.
func NewWorker(pipelines []Searcher, pub publisher.Publisher) *Worker {
	return &Worker{
		pipelines: pipelines,
		publisher: pub,
		log:       logger.ForWorker(),
	}
}

// Run searches every retailer and returns the per-retailer record lists.
func (w *Worker) Run(query string) map[string][]scrape.ProductRecord {
	results := make(map[string][]scrape.ProductRecord, len(w.pipelines))

	for _, p := range w.pipelines {
		records := w.searchOne(p, query)
		results[p.Name()] = records

		w.log.Info().
			Str("retailer", p.Name()).
			Int("count", len(records)).
			Msg("retailer search finished")
		fmt.Printf("Found %d results from %s\n", len(records), p.Name())
	}

	return results
}

// searchOne runs a single pipeline with panic recovery so an unexpected
// failure inside one retailer degrades to an empty list for that retailer.
func (w *Worker) searchOne(p Searcher, query string) (records []scrape.ProductRecord) {
	defer func() {
		if r := recover(); r != nil {
			perr := errors.NewPipeline(p.Name(), fmt.Sprintf("panic: %v", r), nil)
			w.log.Error().
				Err(perr).
				Str("retailer", p.Name()).
				Msg("pipeline panicked, contributing empty result")
			records = nil
		}
	}()

	return p.Search(query)
}

// PublishRecords publishes exported records to the configured stream.
// A nil publisher makes this a no-op.
func (w *Worker) PublishRecords(records []scrape.ProductRecord) {
	if w.publisher == nil {
		return
	}

	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			w.log.Error().Err(err).Str("link", record.Link).Msg("failed to marshal record")
			continue
		}
		if err := w.publisher.Publish(record.Source, data); err != nil {
			w.log.Error().Err(err).Str("retailer", record.Source).Msg("failed to publish record")
		}
	}
}
