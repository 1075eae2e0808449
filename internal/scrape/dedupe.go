package scrape

import "sort"

// Dedupe merges records fetched across pages, segments and categories.
// The identity key is the record link. Within a group the single record
// with the highest discount wins; ties keep the first seen. Output order
// follows first appearance of each link, independent of which segment
// contributed the surviving record.
func Dedupe(records []ProductRecord) []ProductRecord {
	if len(records) == 0 {
		return nil
	}

	best := make(map[string]ProductRecord, len(records))
	order := make([]string, 0, len(records))

	for _, r := range records {
		existing, seen := best[r.Link]
		if !seen {
			best[r.Link] = r
			order = append(order, r.Link)
			continue
		}
		if r.DiscountPct > existing.DiscountPct {
			best[r.Link] = r
		}
	}

	out := make([]ProductRecord, 0, len(order))
	for _, link := range order {
		out = append(out, best[link])
	}
	return out
}

// SortByDiscount stable-sorts records by discount descending, preserving
// discovery order among equal discounts. When preferNew is set, New-condition
// records rank ahead of others at equal discount, so the sweep variant
// surfaces new items before used alternatives of the same deal depth.
func SortByDiscount(records []ProductRecord, preferNew bool) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.DiscountPct != b.DiscountPct {
			return a.DiscountPct > b.DiscountPct
		}
		if preferNew && (a.Condition == ConditionNew) != (b.Condition == ConditionNew) {
			return a.Condition == ConditionNew
		}
		return false
	})
}
