package risk

// Tier is the coarse risk classification of a single file.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Thresholds holds the two independent threshold families used for
// classification. Co-change thresholds apply to a file's peak co-change
// count; contributor thresholds apply to its recent contributor count.
// The scales are unrelated: a file may pass the high contributor bar
// without ever passing the medium co-change bar.
type Thresholds struct {
	MediumCoChange     int
	HighCoChange       int
	MediumContributors int
	HighContributors   int
}

// Classify maps a file's aggregated counters to a tier. Boundaries are
// inclusive, and the high check runs independently of whether the medium
// check fired. Zero co-changes with zero recent contributors is always low.
func Classify(peakCoChange, recentContributors int, t Thresholds) Tier {
	tier := TierLow
	if peakCoChange >= t.MediumCoChange || recentContributors >= t.MediumContributors {
		tier = TierMedium
	}
	if peakCoChange >= t.HighCoChange || recentContributors >= t.HighContributors {
		tier = TierHigh
	}
	return tier
}
