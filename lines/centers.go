package lines

import "github.com/cwbudde/algo-lines/dsp/core"

// ResolveCenters returns the offsets within segment of its valley bottoms,
// the points where the slope turns from falling to rising. Blended lines in
// one complex yield one offset each.
//
// A flat bottom (equal neighbours between a descent and an ascent) counts
// once, at its middle. A segment that opens flat and then rises has its
// bottom at the start, and one that descends into a flat tail has its bottom
// at the middle of that tail. Flat shoulders on a monotone slope and constant
// segments are not valleys.
func ResolveCenters(segment []float64) []int {
	var centers []int
	floor := -1 // first sample of the current bottom; -1 outside a valley
	flat := false
	for i := 0; i+1 < len(segment); i++ {
		step := core.Sign(segment[i+1] - segment[i])
		switch step {
		case -1:
			floor = i + 1
		case 1:
			if floor >= 0 {
				centers = append(centers, (floor+i+1)/2)
			}
			floor = -1
		default:
			if i == 0 {
				floor = 0
			}
		}
		flat = step == 0
	}
	if flat && floor > 0 {
		centers = append(centers, (floor+len(segment))/2)
	}
	return centers
}
