package lines

import (
	"math"

	"github.com/cwbudde/algo-lines/reference"
)

// DetectedLine is a resolved line center.
type DetectedLine struct {
	Index      int
	Wavelength float64
	SNR        float64
}

// Match pairs a detected line with the reference wavelength it lies near.
type Match struct {
	Line      DetectedLine
	Reference float64
}

// MatchReference pairs every detected line with every reference wavelength
// closer than tolerance. A line between two reference wavelengths less than
// 2*tolerance apart matches both and is counted twice. present reports
// whether at least minMatches matches were found.
func MatchReference(detected []DetectedLine, table reference.Table, tolerance float64, minMatches int) (matches []Match, present bool) {
	for _, line := range detected {
		for i := range table.Len() {
			ref := table.At(i)
			if math.Abs(line.Wavelength-ref) < tolerance {
				matches = append(matches, Match{Line: line, Reference: ref})
			}
		}
	}
	return matches, len(matches) >= minMatches
}
