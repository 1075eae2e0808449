package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricehound/internal/scrape"
)

func TestExportReportWritesFile(t *testing.T) {
	rows := []scrape.ProductRecord{
		{Source: "Amazon", Title: "Widget", CurrentPrice: 10, OriginalPrice: 20, DiscountPct: 50, Condition: scrape.ConditionNew, Link: "https://a/1"},
	}

	path, err := exportReport(rows, t.TempDir(), "widget")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Contains(t, filepath.Base(path), "price_comparison_widget_")
}

func TestExportReportFailureReturnsError(t *testing.T) {
	// Export failures must surface as errors so the deferred browser and
	// service teardown in run still executes.
	_, err := exportReport(nil, "/nonexistent-dir-for-sure", "widget")
	assert.Error(t, err)
}
