package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pricehound/helpers"
	"pricehound/pkg/errors"
)

// Extractor turns one rendered item element into a ProductRecord using the
// retailer's selector waterfalls. Each field fails independently; only a
// missing title, current price or link drops the whole item.
type Extractor struct {
	cfg RetailerConfig
}

// NewExtractor creates an extractor for a retailer configuration.
func NewExtractor(cfg RetailerConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// ExtractItem extracts a record from one item selection. A nil record with a
// nil error means the item was filtered out (ad slot). Extraction fails
// closed: candidates missing a required field are dropped, never defaulted.
func (e *Extractor) ExtractItem(s *goquery.Selection, seg Segment) (*ProductRecord, error) {
	if e.cfg.ClassFilter != "" && s.HasClass(e.cfg.ClassFilter) {
		return nil, nil
	}

	title := e.extractTitle(s)
	if title == "" {
		return nil, errors.NewExtract(e.cfg.Name, "no extractable title", nil)
	}

	link := e.extractLink(s)
	if link == "" {
		return nil, errors.NewExtract(e.cfg.Name, "no extractable link", nil)
	}

	current, ok := e.extractPrice(s, e.cfg.Fields.CurrentPrice)
	if !ok {
		return nil, errors.NewExtract(e.cfg.Name, "no parseable current price", nil)
	}

	original, hasOriginal := e.extractPrice(s, e.cfg.Fields.OriginalPrice)

	discount := 0.0
	switch {
	case hasOriginal && original > current:
		discount = Discount(current, original)
	case !hasOriginal && e.hasDealBadge(s):
		// Badge detected and no parseable original price: weak-signal tier.
		// A parsed original at or below the current price is not a deal,
		// badge or not.
		discount = WeakSignalDiscount
		original = current
	default:
		original = current
	}
	if original < current {
		original = current
		discount = 0
	}

	condition := seg.Condition
	if condition == "" {
		condition = ConditionNew
	}
	if text := e.firstText(s, e.cfg.Fields.Condition); text != "" {
		if classified, ok := ClassifyCondition(text); ok {
			condition = classified
		}
	}

	return &ProductRecord{
		Title:         title,
		CurrentPrice:  current,
		OriginalPrice: original,
		DiscountPct:   discount,
		Condition:     condition,
		Link:          link,
		Source:        e.cfg.Name,
		Category:      ClassifyCategory(title),
	}, nil
}

// extractTitle walks the title waterfall, preferring the long-form title
// attribute over visible text on each candidate.
func (e *Extractor) extractTitle(s *goquery.Selection) string {
	for _, selector := range e.cfg.Fields.Title {
		sel := s.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if attr, exists := sel.Attr("title"); exists && strings.TrimSpace(attr) != "" {
			return helpers.CollapseWhitespace(attr)
		}
		if text := helpers.CollapseWhitespace(sel.Text()); text != "" {
			return text
		}
	}
	return ""
}

// extractLink walks the link waterfall and resolves the first href against
// the retailer's base URL. Unresolvable links fail the candidate.
func (e *Extractor) extractLink(s *goquery.Selection) string {
	for _, selector := range e.cfg.Fields.Link {
		sel := s.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		href, exists := sel.Attr("href")
		if !exists {
			continue
		}
		if resolved := helpers.ResolveURL(e.cfg.BaseURL, href); resolved != "" {
			return resolved
		}
	}
	return ""
}

// extractPrice walks a price waterfall, handling both single-element prices
// and prices split across whole/fraction sub-elements.
func (e *Extractor) extractPrice(s *goquery.Selection, waterfall []PriceSelector) (float64, bool) {
	for _, ps := range waterfall {
		if ps.Selector != "" {
			sel := s.Find(ps.Selector).First()
			if sel.Length() == 0 {
				continue
			}
			if value, err := ParsePrice(sel.Text()); err == nil {
				return value, true
			}
			continue
		}

		if ps.WholeSelector != "" {
			wholeSel := s.Find(ps.WholeSelector).First()
			if wholeSel.Length() == 0 {
				continue
			}
			fraction := ""
			if ps.FractionSelector != "" {
				fraction = s.Find(ps.FractionSelector).First().Text()
			}
			if value, err := ParseSplitPrice(wholeSel.Text(), fraction); err == nil {
				return value, true
			}
		}
	}
	return 0, false
}

// hasDealBadge reports whether any badge selector's text matches the
// retailer's badge keyword set.
func (e *Extractor) hasDealBadge(s *goquery.Selection) bool {
	if len(e.cfg.BadgeKeywords) == 0 {
		return false
	}
	for _, selector := range e.cfg.Fields.Badge {
		text := strings.ToLower(s.Find(selector).Text())
		if text == "" {
			continue
		}
		for _, kw := range e.cfg.BadgeKeywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
	}
	return false
}

// firstText returns the first non-empty text yielded by a selector waterfall.
func (e *Extractor) firstText(s *goquery.Selection, waterfall []string) string {
	for _, selector := range waterfall {
		if text := helpers.CollapseWhitespace(s.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}
