package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"pricehound/internal/scrape"
	"pricehound/pkg/errors"
)

// Columns is the fixed export header.
var Columns = []string{"Store", "Title", "Current Price", "Original Price", "Discount %", "Condition", "Link"}

var filenameSanitizeRe = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Filename builds the export filename for a query at a point in time:
// price_comparison_<query>_<YYYYMMDD_HHMMSS>.csv
func Filename(query string, now time.Time) string {
	q := filenameSanitizeRe.ReplaceAllString(strings.TrimSpace(query), "_")
	q = strings.Trim(q, "_")
	return fmt.Sprintf("price_comparison_%s_%s.csv", q, now.Format("20060102_150405"))
}

// WriteCSV writes the assembled rows to a CSV file under dir and returns
// the file path. Currency fields are formatted to two decimals, the
// discount to one decimal with a trailing percent sign.
func WriteCSV(rows []scrape.ProductRecord, dir, filename string) (string, error) {
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", errors.NewExport("failed to create report file", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(Columns); err != nil {
		return "", errors.NewExport("failed to write header", err)
	}

	for _, r := range rows {
		row := []string{
			r.Source,
			r.Title,
			fmt.Sprintf("$%.2f", r.CurrentPrice),
			fmt.Sprintf("$%.2f", r.OriginalPrice),
			fmt.Sprintf("%.1f%%", r.DiscountPct),
			string(r.Condition),
			r.Link,
		}
		if err := w.Write(row); err != nil {
			return "", errors.NewExport("failed to write row", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.NewExport("failed to flush report", err)
	}

	return path, nil
}
