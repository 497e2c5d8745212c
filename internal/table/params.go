package table

// Params configures table localization and separator extraction.
// Numeric defaults are empirically tuned and exposed rather than
// hard-coded; different scan qualities may need different values.
type Params struct {
	// Polygon approximation epsilon as a fraction of contour arc length.
	EpsilonFrac float64
	// Additional epsilon fractions tried when the first approximation
	// does not reduce to four corners.
	EpsilonSweep []float64
	// Minimum table area as a fraction of the page area. Contours below
	// this are noise, not table candidates.
	MinAreaFrac float64

	// Peak detection threshold as a fraction of the global signal
	// maximum. Relative so it is illumination-independent.
	PeakFrac float64
	// Maximum gap in pixels between adjacent peaks merged into one
	// separator.
	MergeGap int

	// Guided search window as a fraction of the expected separator
	// spacing, used only by GuidedSeparators.
	SearchWindowFrac float64
}

// DefaultParams returns localization and extraction defaults.
func DefaultParams() Params {
	return Params{
		EpsilonFrac:      0.02,
		EpsilonSweep:     []float64{0.01, 0.03, 0.05},
		MinAreaFrac:      0.01,
		PeakFrac:         0.30,
		MergeGap:         5,
		SearchWindowFrac: 0.40,
	}
}

// WithPeakFrac returns a copy of params with a custom peak threshold.
func (p Params) WithPeakFrac(frac float64) Params {
	p.PeakFrac = frac
	return p
}

// WithMergeGap returns a copy of params with a custom merge window.
func (p Params) WithMergeGap(gap int) Params {
	p.MergeGap = gap
	return p
}
