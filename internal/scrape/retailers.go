package scrape

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"pricehound/config"
)

// PrimaryRetailer is the retailer whose records get top billing in the
// report's tier ordering.
const PrimaryRetailer = "Amazon"

// amazonDepartments are the sweep's search-term qualifiers, one per
// department facet of the search.
var amazonDepartments = []struct {
	name string
	term string
}{
	{"deals", ""},
	{"electronics", "electronics"},
	{"home", "home kitchen"},
	{"fashion", "clothing"},
}

// amazonConditions are the condition sub-searches of the sweep. Non-New
// conditions are reached by qualifying the search term; the condition
// waterfall then corrects per-item classification where the page shows it.
var amazonConditions = []struct {
	condition Condition
	term      string
}{
	{ConditionNew, ""},
	{ConditionUsed, "used"},
	{ConditionRenewed, "renewed"},
}

// CreateRetailers builds the retailer configurations enabled by cfg.
func CreateRetailers(cfg config.Config) []RetailerConfig {
	var retailers []RetailerConfig
	if cfg.AmazonEnabled {
		retailers = append(retailers, amazonConfig(cfg))
	}
	if cfg.WalmartEnabled {
		retailers = append(retailers, walmartConfig(cfg))
	}
	return retailers
}

// amazonConfig is the sweep variant: departments crossed with conditions,
// up to two pages each, keeping non-New records regardless of discount so
// used and refurbished alternatives always surface.
func amazonConfig(cfg config.Config) RetailerConfig {
	var segments []Segment
	for _, dept := range amazonDepartments {
		for _, cond := range amazonConditions {
			segments = append(segments, Segment{
				Department: dept.name,
				Term:       strings.TrimSpace(dept.term + " " + cond.term),
				Condition:  cond.condition,
			})
		}
	}

	return RetailerConfig{
		Name:          "Amazon",
		BaseURL:       "https://www.amazon.com",
		SearchURL:     searchURLBuilder(cfg.AmazonSearchURL),
		ReadySelector: "div.s-main-slot",
		ItemSelector:  "div[data-component-type='s-search-result']",
		ClassFilter:   "AdHolder",
		Fields: FieldSelectors{
			Title: []string{"h2 a span", "h2 span", "h2 a"},
			CurrentPrice: []PriceSelector{
				{Selector: ".a-price:not(.a-text-price) .a-offscreen"},
				{
					WholeSelector:    ".a-price:not(.a-text-price) .a-price-whole",
					FractionSelector: ".a-price:not(.a-text-price) .a-price-fraction",
				},
			},
			OriginalPrice: []PriceSelector{
				{Selector: ".a-text-price .a-offscreen"},
				{Selector: "span.a-price.a-text-price"},
			},
			Link:      []string{"h2 a", "a.a-link-normal.s-no-outline", "a.a-link-normal"},
			Condition: []string{"div.a-row.a-size-base.a-color-secondary", "span.a-color-secondary"},
			Badge:     []string{"span.a-badge-text", ".s-coupon-highlight-color", "span.a-letter-space + span"},
		},
		BadgeKeywords:   []string{"deal", "save", "off", "%", "clearance", "sale"},
		Keep:            KeepDiscountedOrNonNew,
		Segments:        segments,
		MaxPages:        2,
		PreferNewOnSort: true,
		Fetch: FetchConfig{
			Retailer:     "Amazon",
			Timeout:      cfg.FetchTimeout,
			MaxRetries:   cfg.MaxRetries,
			BackoffMin:   2 * time.Second,
			BackoffMax:   5 * time.Second,
			RateLimitKey: "amazon_rate_limited",
			BlockTime:    300 * time.Second,
		},
	}
}

// walmartConfig is a single deal-only search; Walmart responds slowly so
// its backoff range sits higher than Amazon's.
func walmartConfig(cfg config.Config) RetailerConfig {
	return RetailerConfig{
		Name:          "Walmart",
		BaseURL:       "https://www.walmart.com",
		SearchURL:     searchURLBuilder(cfg.WalmartSearchURL),
		ReadySelector: "[data-testid='list-view']",
		ItemSelector:  "[data-testid='list-view'] > div",
		Fields: FieldSelectors{
			Title: []string{"[data-automation-id='product-title']", "span.w_V_DM"},
			CurrentPrice: []PriceSelector{
				{Selector: "[data-automation-id='product-price'] span.w_iUH7"},
				{Selector: "[data-automation-id='product-price']"},
			},
			OriginalPrice: []PriceSelector{
				{Selector: "[data-automation-id='strikethrough-price']"},
				{Selector: "div.gray.strike"},
			},
			Link:      []string{"a[link-identifier]", "a[href*='/ip/']", "a"},
			Condition: []string{"div.gray.f7"},
			Badge:     []string{"span.tag-leading-badge", "div.flex span.b"},
		},
		BadgeKeywords:   []string{"rollback", "clearance", "reduced", "save", "deal"},
		Keep:            KeepDiscounted,
		MaxPages:        1,
		PreferNewOnSort: false,
		Fetch: FetchConfig{
			Retailer:     "Walmart",
			Timeout:      cfg.FetchTimeout,
			MaxRetries:   cfg.MaxRetries,
			BackoffMin:   3 * time.Second,
			BackoffMax:   7 * time.Second,
			RateLimitKey: "walmart_rate_limited",
			BlockTime:    300 * time.Second,
		},
	}
}

// searchURLBuilder returns a SearchURLFunc over a template with one %s verb
// for the escaped search terms. Segment terms qualify the user query; pages
// past the first append a page parameter.
func searchURLBuilder(template string) SearchURLFunc {
	return func(query string, seg Segment, page int) string {
		terms := strings.TrimSpace(query + " " + seg.Term)
		u := fmt.Sprintf(template, url.QueryEscape(terms))
		if page > 1 {
			u += fmt.Sprintf("&page=%d", page)
		}
		return u
	}
}
