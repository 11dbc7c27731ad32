// Package abv derives alcohol by volume from specific-gravity readings.
package abv

import "sort"

// Factor converts a gravity drop to percent alcohol by volume. Standard
// homebrew approximation; no temperature correction is applied.
const Factor = 131.25

// Reading is one gravity observation. Gravity is nil when the step carried no
// reading; such entries are ignored.
type Reading struct {
	Gravity    *float64
	OccurredAt int64
}

// Calculate computes ABV from the earliest and latest gravity-bearing readings
// by OccurredAt, regardless of input order. It reports ok=false when fewer
// than two readings carry a gravity. Equal timestamps keep their input order
// (stable sort), OG == FG yields 0, and FG above OG yields a negative result
// rather than an error.
func Calculate(readings []Reading) (float64, bool) {
	withGravity := make([]Reading, 0, len(readings))
	for _, r := range readings {
		if r.Gravity != nil {
			withGravity = append(withGravity, r)
		}
	}
	if len(withGravity) < 2 {
		return 0, false
	}

	sort.SliceStable(withGravity, func(i, j int) bool {
		return withGravity[i].OccurredAt < withGravity[j].OccurredAt
	})

	og := *withGravity[0].Gravity
	fg := *withGravity[len(withGravity)-1].Gravity

	return (og - fg) * Factor, true
}
