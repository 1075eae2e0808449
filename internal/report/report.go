package report

import (
	"pricehound/internal/scrape"
)

// AssembleRows merges per-retailer record lists into one ordered sequence
// under a fixed three-tier priority:
//
//  1. New-condition discounted items from the primary retailer
//  2. discounted items from all other retailers
//  3. non-New-condition items from the primary retailer
//
// Each tier is sorted by discount descending, stable within ties. The
// minimum-discount threshold applies to the discounted tiers only; tier 3
// surfaces used and refurbished alternatives unconditionally.
func AssembleRows(results map[string][]scrape.ProductRecord, primary string, minDiscount float64, retailerOrder []string) []scrape.ProductRecord {
	var tier1, tier2, tier3 []scrape.ProductRecord

	for _, record := range results[primary] {
		switch {
		case record.Condition == scrape.ConditionNew && record.DiscountPct >= minDiscount && record.DiscountPct > 0:
			tier1 = append(tier1, record)
		case record.Condition != scrape.ConditionNew:
			tier3 = append(tier3, record)
		}
	}

	for _, retailer := range retailerOrder {
		if retailer == primary {
			continue
		}
		for _, record := range results[retailer] {
			if record.DiscountPct >= minDiscount && record.DiscountPct > 0 {
				tier2 = append(tier2, record)
			}
		}
	}

	scrape.SortByDiscount(tier1, false)
	scrape.SortByDiscount(tier2, false)
	scrape.SortByDiscount(tier3, false)

	rows := make([]scrape.ProductRecord, 0, len(tier1)+len(tier2)+len(tier3))
	rows = append(rows, tier1...)
	rows = append(rows, tier2...)
	rows = append(rows, tier3...)
	return rows
}
