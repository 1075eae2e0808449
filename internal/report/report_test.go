package report

import (
	"encoding/csv"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricehound/internal/scrape"
)

func sampleResults() map[string][]scrape.ProductRecord {
	return map[string][]scrape.ProductRecord{
		"Amazon": {
			{Title: "New deal A", Source: "Amazon", Condition: scrape.ConditionNew, DiscountPct: 25, CurrentPrice: 75, OriginalPrice: 100, Link: "https://a/1"},
			{Title: "Used alt", Source: "Amazon", Condition: scrape.ConditionUsed, DiscountPct: 0, CurrentPrice: 60, OriginalPrice: 60, Link: "https://a/2"},
			{Title: "New deal B", Source: "Amazon", Condition: scrape.ConditionNew, DiscountPct: 40, CurrentPrice: 60, OriginalPrice: 100, Link: "https://a/3"},
			{Title: "Renewed deal", Source: "Amazon", Condition: scrape.ConditionRenewed, DiscountPct: 30, CurrentPrice: 70, OriginalPrice: 100, Link: "https://a/4"},
		},
		"Walmart": {
			{Title: "Walmart deal", Source: "Walmart", Condition: scrape.ConditionNew, DiscountPct: 35, CurrentPrice: 65, OriginalPrice: 100, Link: "https://w/1"},
			{Title: "Walmart small", Source: "Walmart", Condition: scrape.ConditionNew, DiscountPct: 5, CurrentPrice: 95, OriginalPrice: 100, Link: "https://w/2"},
		},
	}
}

func TestAssembleRowsTierOrdering(t *testing.T) {
	rows := AssembleRows(sampleResults(), "Amazon", 0, []string{"Amazon", "Walmart"})
	require.Len(t, rows, 6)

	// Tier 1: primary retailer, New and discounted, by discount desc
	assert.Equal(t, "New deal B", rows[0].Title)
	assert.Equal(t, "New deal A", rows[1].Title)
	// Tier 2: other retailers, discounted
	assert.Equal(t, "Walmart deal", rows[2].Title)
	assert.Equal(t, "Walmart small", rows[3].Title)
	// Tier 3: primary retailer, non-New, regardless of discount
	assert.Equal(t, "Renewed deal", rows[4].Title)
	assert.Equal(t, "Used alt", rows[5].Title)
}

func TestAssembleRowsMinDiscount(t *testing.T) {
	rows := AssembleRows(sampleResults(), "Amazon", 30, []string{"Amazon", "Walmart"})
	require.Len(t, rows, 4)

	assert.Equal(t, "New deal B", rows[0].Title)
	assert.Equal(t, "Walmart deal", rows[1].Title)
	// Non-New alternatives survive the threshold
	assert.Equal(t, "Renewed deal", rows[2].Title)
	assert.Equal(t, "Used alt", rows[3].Title)
}

func TestAssembleRowsEmpty(t *testing.T) {
	rows := AssembleRows(map[string][]scrape.ProductRecord{}, "Amazon", 0, []string{"Amazon"})
	assert.Empty(t, rows)
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 30, 5, 0, time.UTC)
	assert.Equal(t, "price_comparison_gaming_laptop_20260901_143005.csv", Filename("gaming laptop", now))
	assert.Equal(t, "price_comparison_4k_tv_20260901_143005.csv", Filename(`4k "tv"`, now))
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	rows := []scrape.ProductRecord{
		{Source: "Amazon", Title: "Thing, with comma", CurrentPrice: 19.9, OriginalPrice: 39.99, DiscountPct: 50.26, Condition: scrape.ConditionNew, Link: "https://a/1"},
	}

	path, err := WriteCSV(rows, dir, "out.csv")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	parsed, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	assert.Equal(t, Columns, parsed[0])
	assert.Equal(t, []string{"Amazon", "Thing, with comma", "$19.90", "$39.99", "50.3%", "New", "https://a/1"}, parsed[1])
}

func TestWriteCSVBadDir(t *testing.T) {
	_, err := WriteCSV(nil, "/nonexistent-dir-for-sure", "out.csv")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "export"))
}
