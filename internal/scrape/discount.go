package scrape

// WeakSignalDiscount is the sentinel assigned when a deal badge is textually
// detected but no numeric original price could be parsed. It is nonzero so
// badge-only deals survive deal-only filters, yet small enough to rank below
// every numerically derived discount.
const WeakSignalDiscount = 0.1

// Discount returns the discount percentage for a (current, original) price
// pair, clamped to [0,100]. An original at or below the current price means
// no discount.
func Discount(current, original float64) float64 {
	if original <= current || original <= 0 {
		return 0
	}

	pct := (original - current) / original * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
