// Package geo provides the pure position and heading math consumed by the
// conflict detector.
package geo

import (
	"math"

	"github.com/huntgame/conflict-engine/pkg/types"
)

// Distance returns the Euclidean distance between two grid positions.
func Distance(a, b types.Position) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// HeadingSeparation returns the absolute angular separation between two
// headings in degrees, normalized to [0, 180].
func HeadingSeparation(h1, h2 float64) float64 {
	diff := math.Mod(math.Abs(h1-h2), 360)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// OppositeHeadings reports whether two headings (degrees) point in
// near-opposite directions, i.e. their separation falls in the 150-210
// degree band.
func OppositeHeadings(h1, h2 float64) bool {
	// 150..180 after normalization covers the raw 150..210 band.
	return HeadingSeparation(h1, h2) >= 150
}
