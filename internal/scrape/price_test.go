package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"plain dollars", "$19.99", 19.99, false},
		{"thousands separator", "$1,299.00", 1299.00, false},
		{"was qualifier", "Was $49.99", 49.99, false},
		{"now qualifier", "Now $9.50", 9.50, false},
		{"reg qualifier with dot", "Reg. $30", 30, false},
		{"list price qualifier", "List Price: $120.00", 120.00, false},
		{"no currency symbol", "25.49", 25.49, false},
		{"whitespace", "  $5.00  ", 5.00, false},
		{"no digits", "current price unavailable", 0, true},
		{"empty", "", 0, true},
		{"zero", "$0.00", 0, true},
		{"garbage", "$..", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestParseSplitPrice(t *testing.T) {
	got, err := ParseSplitPrice("19", "99")
	assert.NoError(t, err)
	assert.InDelta(t, 19.99, got, 0.001)

	// Fraction defaults to 00 when absent
	got, err = ParseSplitPrice("19", "")
	assert.NoError(t, err)
	assert.InDelta(t, 19.00, got, 0.001)

	// Some layouts render the separator inside the whole part
	got, err = ParseSplitPrice("1,299.", "95")
	assert.NoError(t, err)
	assert.InDelta(t, 1299.95, got, 0.001)

	_, err = ParseSplitPrice("", "99")
	assert.Error(t, err)

	_, err = ParseSplitPrice("n/a", "99")
	assert.Error(t, err)
}
