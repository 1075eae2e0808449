package scrape

import "strings"

// categoryKeywords maps title keywords to a coarse category facet.
// Ordered so more specific buckets win over broader ones.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"laptop", []string{"laptop", "notebook", "macbook", "chromebook"}},
	{"phone", []string{"phone", "iphone", "galaxy", "pixel", "smartphone"}},
	{"tablet", []string{"tablet", "ipad", "kindle"}},
	{"tv", []string{" tv", "television", "oled", "qled"}},
	{"audio", []string{"headphone", "earbud", "speaker", "soundbar"}},
	{"clothing", []string{"shirt", "jacket", "hoodie", "jeans", "dress", "sweater"}},
	{"shoes", []string{"shoe", "sneaker", "boot", "sandal"}},
	{"kitchen", []string{"blender", "cookware", "air fryer", "coffee maker", "toaster"}},
	{"furniture", []string{"sofa", "desk", "chair", "table", "mattress"}},
}

// ClassifyCategory derives a best-effort category facet from a title.
// Unmatched titles fall into "other".
func ClassifyCategory(title string) string {
	lower := strings.ToLower(title)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category
			}
		}
	}
	return "other"
}

// conditionKeywords maps secondary DOM text to a sale condition.
// Best-effort only; unmatched text leaves the segment default in place.
var conditionKeywords = []struct {
	condition Condition
	keywords  []string
}{
	{ConditionOpenBox, []string{"open box", "open-box"}},
	{ConditionRefurbished, []string{"refurbished", "refurb"}},
	{ConditionRenewed, []string{"renewed"}},
	{ConditionUsed, []string{"used", "pre-owned", "preowned", "second hand"}},
}

// ClassifyCondition matches condition text against known keywords,
// returning ok=false when nothing matches.
func ClassifyCondition(text string) (Condition, bool) {
	lower := strings.ToLower(text)
	for _, entry := range conditionKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.condition, true
			}
		}
	}
	return ConditionNew, false
}
