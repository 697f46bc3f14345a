// Package budget holds the core accounting logic: the yearly allowance
// ledger, the live session timer, and the per-day category aggregator.
package budget

// Category is one of the closed set of study-purpose tags. It doubles as
// the UI label and the key into the daily_stats category columns.
type Category string

const (
	Uni         Category = "Uni"
	FYP         Category = "FYP"
	Freelancing Category = "Freelancing"
	Career      Category = "Career"
)

// Categories lists all categories in display order.
var Categories = []Category{Uni, FYP, Freelancing, Career}

// Column returns the daily_stats column backing this category.
func (c Category) Column() string {
	switch c {
	case FYP:
		return "fyp_seconds"
	case Freelancing:
		return "freelancing_seconds"
	case Career:
		return "career_seconds"
	default:
		return "uni_seconds"
	}
}

// ParseCategory maps a label to its Category, falling back to Uni for
// anything outside the closed set rather than erroring.
func ParseCategory(s string) Category {
	switch Category(s) {
	case Uni, FYP, Freelancing, Career:
		return Category(s)
	}
	return Uni
}
