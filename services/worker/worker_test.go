package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricehound/internal/scrape"
)

type fakePipeline struct {
	name    string
	records []scrape.ProductRecord
	panics  bool
}

func (f *fakePipeline) Name() string { return f.name }

func (f *fakePipeline) Search(query string) []scrape.ProductRecord {
	if f.panics {
		panic("selector exploded")
	}
	return f.records
}

type fakePublisher struct {
	published map[string][][]byte
	closed    bool
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{published: make(map[string][][]byte)}
}

func (f *fakePublisher) Publish(retailer string, message []byte) error {
	f.published[retailer] = append(f.published[retailer], message)
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func TestRunCollectsPerRetailer(t *testing.T) {
	records := []scrape.ProductRecord{
		{Title: "A", Source: "Alpha", Link: "https://a/1", CurrentPrice: 10, OriginalPrice: 20, DiscountPct: 50},
	}
	w := NewWorker([]Searcher{
		&fakePipeline{name: "Alpha", records: records},
		&fakePipeline{name: "Beta"},
	}, nil)

	results := w.Run("widget")
	require.Len(t, results, 2)
	assert.Len(t, results["Alpha"], 1)
	assert.Empty(t, results["Beta"])
}

func TestRunSurvivesPipelinePanic(t *testing.T) {
	// One retailer blowing up must not abort the run; it contributes an
	// empty list and the others still report.
	w := NewWorker([]Searcher{
		&fakePipeline{name: "Broken", panics: true},
		&fakePipeline{name: "Fine", records: []scrape.ProductRecord{{Title: "ok", Link: "https://f/1"}}},
	}, nil)

	results := w.Run("widget")
	require.Len(t, results, 2)
	assert.Empty(t, results["Broken"])
	assert.Len(t, results["Fine"], 1)
}

func TestPublishRecords(t *testing.T) {
	pub := newFakePublisher()
	w := NewWorker(nil, pub)

	w.PublishRecords([]scrape.ProductRecord{
		{Title: "A", Source: "Alpha", Link: "https://a/1"},
		{Title: "B", Source: "Beta", Link: "https://b/1"},
		{Title: "C", Source: "Alpha", Link: "https://a/2"},
	})

	assert.Len(t, pub.published["Alpha"], 2)
	assert.Len(t, pub.published["Beta"], 1)
}

func TestPublishRecordsNilPublisher(t *testing.T) {
	w := NewWorker(nil, nil)
	assert.NotPanics(t, func() {
		w.PublishRecords([]scrape.ProductRecord{{Title: "A", Source: "Alpha"}})
	})
}
