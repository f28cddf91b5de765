// Package lines detects absorption lines in a one-dimensional spectrum and
// matches them against a reference wavelength table.
//
// The pipeline runs strictly left to right on index-aligned sequences:
//
//	raw flux → smooth → baseline (white top-hat) → corrected
//	raw, smoothed → noise profile
//	corrected, noise → line complexes → centers → SNR → reference match
//
// Each stage is exported on its own ([Baseline], [EstimateNoise],
// [FindComplexes], [ResolveCenters], [MatchReference]); [Detector] wires them
// together with validated tunables and [Analyze] is the one-call entry point:
//
//	v, err := lines.Analyze(wavelengths, fluxes, reference.Helium,
//		lines.WithThreshold(1), lines.WithTolerance(5))
//	if err != nil {
//		return err
//	}
//	if v.Present {
//		for _, m := range v.Matches {
//			fmt.Printf("%.1f Å  S/N %.2f\n", m.Line.Wavelength, m.Line.SNR)
//		}
//	}
//
// A Detector holds no mutable state after construction and may be shared by
// goroutines analysing different spectra.
package lines
