package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscount(t *testing.T) {
	assert.Equal(t, 0.0, Discount(100, 100))
	assert.InDelta(t, 20.0, Discount(80, 100), 0.001)
	// Original below current means no discount
	assert.Equal(t, 0.0, Discount(100, 80))
	assert.Equal(t, 0.0, Discount(10, 0))
	assert.InDelta(t, 50.0, Discount(14.995, 29.99), 0.001)
}

func TestDiscountBounds(t *testing.T) {
	pairs := [][2]float64{
		{0.01, 10000}, {1, 1.01}, {99.99, 100}, {5, 5}, {250, 200},
	}
	for _, p := range pairs {
		pct := Discount(p[0], p[1])
		assert.GreaterOrEqual(t, pct, 0.0)
		assert.LessOrEqual(t, pct, 100.0)
	}
}

func TestDiscountMonotonicInOriginal(t *testing.T) {
	// Higher original price means higher or equal discount for fixed current
	current := 50.0
	prev := -1.0
	for original := 50.0; original <= 500; original += 25 {
		pct := Discount(current, original)
		assert.GreaterOrEqual(t, pct, prev)
		prev = pct
	}
}

func TestWeakSignalDiscountRanksBelowNumeric(t *testing.T) {
	// The badge sentinel must survive deal-only filters but rank below any
	// realistically derived numeric discount.
	assert.Greater(t, WeakSignalDiscount, 0.0)
	assert.Less(t, WeakSignalDiscount, Discount(99, 100))
}
