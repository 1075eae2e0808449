package scrape

import (
	"time"

	"github.com/PuerkitoBio/goquery"

	"pricehound/logger"
)

// Pipeline orchestrates one retailer's paginated, segmented search:
// fetch each segment, extract every discovered item independently, then
// dedupe and rank the accumulated records. Segment failures degrade to an
// empty contribution and the sweep moves on.
type Pipeline struct {
	cfg       RetailerConfig
	fetcher   *Fetcher
	extractor *Extractor
	log       *logger.Logger

	delayMin time.Duration
	delayMax time.Duration
	sleep    func(time.Duration)
}

// NewPipeline creates a search pipeline for one retailer.
func NewPipeline(cfg RetailerConfig, fetcher *Fetcher, delayMin, delayMax time.Duration) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		fetcher:   fetcher,
		extractor: NewExtractor(cfg),
		log:       logger.ForRetailer(cfg.Name),
		delayMin:  delayMin,
		delayMax:  delayMax,
		sleep:     time.Sleep,
	}
}

// Name returns the retailer name this pipeline searches.
func (p *Pipeline) Name() string {
	return p.cfg.Name
}

// Search runs the full segment sweep for a query and returns the
// deduplicated, discount-ranked records.
func (p *Pipeline) Search(query string) []ProductRecord {
	segments := p.cfg.Segments
	if len(segments) == 0 {
		segments = []Segment{{}}
	}

	maxPages := p.cfg.MaxPages
	if maxPages < 1 {
		maxPages = 1
	}

	var records []ProductRecord
	for i, seg := range segments {
		if i > 0 {
			p.sleep(jitter(p.delayMin, p.delayMax))
		}
		for page := 1; page <= maxPages; page++ {
			extracted := p.searchSegment(query, seg, page)
			if extracted == nil {
				// Empty page ends this segment's pagination.
				break
			}
			records = append(records, extracted...)
		}
		// Personalization state must not leak across segments.
		p.clearCookies()
	}

	deduped := Dedupe(records)
	SortByDiscount(deduped, p.cfg.PreferNewOnSort)

	p.log.Info().
		Int("raw", len(records)).
		Int("kept", len(deduped)).
		Str("query", query).
		Msg("search complete")

	return deduped
}

// searchSegment fetches and extracts one (segment, page) unit of work.
// Returns nil when the fetch degraded to empty.
func (p *Pipeline) searchSegment(query string, seg Segment, page int) []ProductRecord {
	url := p.cfg.SearchURL(query, seg, page)

	doc := p.fetcher.FetchPage(url, p.cfg.ReadySelector, p.cfg.Fetch)
	if doc == nil {
		p.log.Warn().
			Str("department", seg.Department).
			Str("condition", string(seg.Condition)).
			Int("page", page).
			Msg("segment fetch degraded to empty")
		return nil
	}

	items := doc.Find(p.cfg.ItemSelector)
	p.log.Debug().
		Int("items", items.Length()).
		Str("department", seg.Department).
		Int("page", page).
		Msg("extracting items")

	extracted := make([]ProductRecord, 0, items.Length())
	items.Each(func(_ int, s *goquery.Selection) {
		record, err := p.extractor.ExtractItem(s, seg)
		if err != nil {
			// A single unextractable item never aborts the segment.
			p.log.Debug().Err(err).Msg("item dropped")
			return
		}
		if record == nil {
			return
		}
		if p.cfg.Keep != nil && !p.cfg.Keep(*record) {
			return
		}
		extracted = append(extracted, *record)
	})

	return extracted
}

func (p *Pipeline) clearCookies() {
	if err := p.fetcher.session.ClearCookies(); err != nil {
		p.log.Warn().Err(err).Msg("failed to clear cookies")
	}
}
