package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// priceQualifiers are words retailers render around a price that carry no
// numeric information ("Was $49.99", "Now $19.99", "Reg. $30").
var priceQualifiers = []string{
	"list price", "reg.", "was", "now", "reg", "list", "from", "price", "only",
}

var priceCleanRe = regexp.MustCompile(`[^0-9.]`)

// ParsePrice turns raw currency-formatted text into a positive price value.
// It strips the currency symbol, thousands separators and known qualifier
// words. Text without a digit, or yielding a zero or negative value, is an
// error.
func ParsePrice(text string) (float64, error) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return 0, fmt.Errorf("empty price text")
	}

	lower := strings.ToLower(cleaned)
	for _, q := range priceQualifiers {
		lower = strings.TrimSpace(strings.TrimPrefix(lower, q))
		lower = strings.TrimSpace(strings.TrimSuffix(lower, q))
	}
	lower = strings.Trim(lower, " .:")

	if !strings.ContainsAny(lower, "0123456789") {
		return 0, fmt.Errorf("no digits in price text %q", text)
	}

	lower = strings.ReplaceAll(lower, ",", "")
	lower = priceCleanRe.ReplaceAllString(lower, "")

	// A trailing dot survives inputs like "$19." — drop it before parsing.
	lower = strings.TrimSuffix(lower, ".")

	value, err := strconv.ParseFloat(lower, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable price text %q: %w", text, err)
	}

	if value <= 0 {
		return 0, fmt.Errorf("non-positive price %.2f from %q", value, text)
	}

	return value, nil
}

// ParseSplitPrice joins a price rendered as two separate elements, the whole
// part and the fractional part. A missing fraction defaults to "00".
func ParseSplitPrice(whole, fraction string) (float64, error) {
	whole = strings.TrimSpace(whole)
	if whole == "" {
		return 0, fmt.Errorf("empty whole part")
	}

	fraction = strings.TrimSpace(fraction)
	if fraction == "" {
		fraction = "00"
	}

	// Some layouts render the separator inside the whole part ("19." + "99").
	whole = strings.TrimSuffix(whole, ".")

	return ParsePrice(whole + "." + fraction)
}
