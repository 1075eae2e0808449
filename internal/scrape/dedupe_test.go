package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeKeepsHighestDiscount(t *testing.T) {
	records := []ProductRecord{
		{Title: "Widget", Link: "https://example.com/p/1", DiscountPct: 10, CurrentPrice: 90, OriginalPrice: 100},
		{Title: "Other", Link: "https://example.com/p/2", DiscountPct: 5, CurrentPrice: 95, OriginalPrice: 100},
		{Title: "Widget", Link: "https://example.com/p/1", DiscountPct: 25, CurrentPrice: 75, OriginalPrice: 100},
	}

	merged := Dedupe(records)
	assert.Len(t, merged, 2)
	// Group order follows first appearance of the link
	assert.Equal(t, "https://example.com/p/1", merged[0].Link)
	assert.Equal(t, 25.0, merged[0].DiscountPct)
	assert.Equal(t, "https://example.com/p/2", merged[1].Link)
}

func TestDedupeTieKeepsFirstSeen(t *testing.T) {
	records := []ProductRecord{
		{Title: "First seen", Link: "https://example.com/p/1", DiscountPct: 15, CurrentPrice: 85},
		{Title: "Second seen", Link: "https://example.com/p/1", DiscountPct: 15, CurrentPrice: 85},
	}

	merged := Dedupe(records)
	assert.Len(t, merged, 1)
	assert.Equal(t, "First seen", merged[0].Title)
}

func TestDedupeEmpty(t *testing.T) {
	assert.Nil(t, Dedupe(nil))
	assert.Nil(t, Dedupe([]ProductRecord{}))
}

func TestSortByDiscountStable(t *testing.T) {
	records := []ProductRecord{
		{Title: "a", Link: "l1", DiscountPct: 5},
		{Title: "b", Link: "l2", DiscountPct: 40},
		{Title: "c", Link: "l3", DiscountPct: 40},
		{Title: "d", Link: "l4", DiscountPct: 0},
	}

	SortByDiscount(records, false)

	assert.Equal(t, "b", records[0].Title)
	assert.Equal(t, "c", records[1].Title)
	assert.Equal(t, "a", records[2].Title)
	assert.Equal(t, "d", records[3].Title)
}

func TestSortByDiscountPrefersNewOnTies(t *testing.T) {
	records := []ProductRecord{
		{Title: "used", Link: "l1", DiscountPct: 30, Condition: ConditionUsed},
		{Title: "new", Link: "l2", DiscountPct: 30, Condition: ConditionNew},
		{Title: "bigger", Link: "l3", DiscountPct: 35, Condition: ConditionUsed},
	}

	SortByDiscount(records, true)

	assert.Equal(t, "bigger", records[0].Title)
	assert.Equal(t, "new", records[1].Title)
	assert.Equal(t, "used", records[2].Title)
}
