package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var defaultThresholds = Thresholds{
	MediumCoChange:     3,
	HighCoChange:       6,
	MediumContributors: 3,
	HighContributors:   6,
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		peakCoChange int
		recent       int
		want         Tier
	}{
		{"zero everything is low", 0, 0, TierLow},
		{"below both medium bars", 2, 2, TierLow},
		{"medium co-change boundary inclusive", 3, 0, TierMedium},
		{"medium contributor boundary inclusive", 0, 3, TierMedium},
		{"between medium and high", 4, 0, TierMedium},
		{"high co-change boundary inclusive", 6, 0, TierHigh},
		{"high contributor boundary inclusive", 0, 6, TierHigh},
		{"both families high", 10, 10, TierHigh},
		{"co-change low but contributors high", 1, 7, TierHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.peakCoChange, tt.recent, defaultThresholds))
		})
	}
}

// A file co-changing once each with two partners stays low against
// thresholds of 3/6: peak is 1, not the sum.
func TestClassifyUsesPeakNotSum(t *testing.T) {
	// coChangeCounts = {About.tsx: 1, Contacts.tsx: 1} -> peak 1
	assert.Equal(t, TierLow, Classify(1, 0, defaultThresholds))
}

// The high check is evaluated on its own scale even when the medium
// condition never fired.
func TestClassifyHighIndependentOfMedium(t *testing.T) {
	th := Thresholds{
		MediumCoChange:     10,
		HighCoChange:       4,
		MediumContributors: 10,
		HighContributors:   8,
	}
	assert.Equal(t, TierHigh, Classify(5, 0, th))
}
