package sheet

// Params configures page binarization and grid-line extraction.
type Params struct {
	// Bilateral filter (edge-preserving denoise)
	BilateralDiameter   int
	BilateralSigmaColor float64
	BilateralSigmaSpace float64

	// Adaptive threshold
	AdaptiveBlockSize int     // Window size in pixels, must be odd
	AdaptiveC         float64 // Constant subtracted from the local mean

	// Structuring element length as a fraction of the image dimension.
	// Relative sizing keeps line extraction stable across scan resolutions.
	KernelScale float64
}

// DefaultParams returns binarization parameters tuned for 150-300 DPI scans.
func DefaultParams() Params {
	return Params{
		BilateralDiameter:   9,
		BilateralSigmaColor: 75,
		BilateralSigmaSpace: 75,
		AdaptiveBlockSize:   11,
		AdaptiveC:           2,
		KernelScale:         0.02,
	}
}

// WithKernelScale returns a copy of params with a custom kernel scale.
func (p Params) WithKernelScale(scale float64) Params {
	p.KernelScale = scale
	return p
}

// WithAdaptiveWindow returns a copy of params with custom threshold settings.
func (p Params) WithAdaptiveWindow(blockSize int, c float64) Params {
	p.AdaptiveBlockSize = blockSize
	p.AdaptiveC = c
	return p
}
