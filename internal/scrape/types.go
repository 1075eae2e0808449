package scrape

import (
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Condition is the sale condition of a product listing.
type Condition string

const (
	ConditionNew         Condition = "New"
	ConditionUsed        Condition = "Used"
	ConditionRenewed     Condition = "Renewed"
	ConditionOpenBox     Condition = "Open Box"
	ConditionRefurbished Condition = "Refurbished"
)

// ProductRecord represents one extracted product listing.
// Records are immutable once constructed; deduplication replaces whole
// records, it never merges fields across two of them.
type ProductRecord struct {
	Title         string    `json:"title"`
	CurrentPrice  float64   `json:"current_price"`
	OriginalPrice float64   `json:"original_price"`
	DiscountPct   float64   `json:"discount_pct"`
	Condition     Condition `json:"condition"`
	Link          string    `json:"link"`
	Source        string    `json:"source"`
	Category      string    `json:"category,omitempty"`
}

// KeepFunc decides whether an extracted record is kept by a pipeline.
type KeepFunc func(ProductRecord) bool

// KeepDiscounted keeps only records carrying a discount.
func KeepDiscounted(r ProductRecord) bool {
	return r.DiscountPct > 0
}

// KeepDiscountedOrNonNew keeps discounted records plus any non-New
// condition record, so used/refurbished alternatives surface regardless
// of discount.
func KeepDiscountedOrNonNew(r ProductRecord) bool {
	return r.DiscountPct > 0 || r.Condition != ConditionNew
}

// PriceSelector is one step of a price waterfall. Either Selector points
// at a single element containing the full price text, or WholeSelector and
// FractionSelector point at a price rendered as two separate elements.
type PriceSelector struct {
	Selector         string
	WholeSelector    string
	FractionSelector string
}

// FieldSelectors holds the ordered fallback selectors per extracted field.
// Each list is tried in order and the first non-empty, parseable value wins.
type FieldSelectors struct {
	Title         []string
	CurrentPrice  []PriceSelector
	OriginalPrice []PriceSelector
	Link          []string
	Condition     []string
	Badge         []string
}

// Segment is one unit of fetch+extract work within a retailer's sweep:
// a search-term variant plus a condition filter.
type Segment struct {
	Department string
	Term       string
	Condition  Condition
}

// SearchURLFunc builds the search URL for a query within a segment and page.
type SearchURLFunc func(query string, seg Segment, page int) string

// FetchConfig tunes the retrying fetcher for one retailer. Backoff between
// attempts is uniform random within [BackoffMin, BackoffMax], scaled per
// retailer because response latency varies widely between them.
type FetchConfig struct {
	Retailer   string
	Timeout    time.Duration
	MaxRetries int
	BackoffMin time.Duration
	BackoffMax time.Duration
	// Rate-limit guard; empty RateLimitKey disables it.
	RateLimitKey string
	BlockTime    time.Duration
}

// RetailerConfig fully describes how to search and extract one retailer.
type RetailerConfig struct {
	Name          string
	BaseURL       string
	SearchURL     SearchURLFunc
	ReadySelector string
	ItemSelector  string
	// Items with this class are skipped (ad slots and the like).
	ClassFilter     string
	Fields          FieldSelectors
	BadgeKeywords   []string
	Keep            KeepFunc
	Segments        []Segment
	MaxPages        int
	Fetch           FetchConfig
	PreferNewOnSort bool
}

// PageSession is the browser capability surface the core depends on.
// One session is shared serially across all retailers and segments.
type PageSession interface {
	Navigate(url string) error
	WaitFor(selector string, timeout time.Duration) error
	Reload() error
	ScrollBy(delta int) error
	ClearCookies() error
	CurrentURL() string
	Snapshot() (*goquery.Document, error)
}
