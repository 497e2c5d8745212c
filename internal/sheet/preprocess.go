// Package sheet turns a raw scanned page into binary ink and grid-line masks.
package sheet

import (
	"image"

	"gocv.io/x/gocv"
)

// Binarize converts a raw page image into an inverted binary ink mask:
// grayscale conversion, edge-preserving denoise, locally-adaptive
// threshold, then polarity inversion so ink pixels become foreground
// (255). An all-background or all-foreground result is valid output;
// degenerate pages are caught by later validation, not here.
func Binarize(src gocv.Mat, params Params) gocv.Mat {
	gray := gocv.NewMat()
	defer gray.Close()
	if src.Channels() == 1 {
		src.CopyTo(&gray)
	} else {
		gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
	}

	// Bilateral filter suppresses scan noise while keeping line edges sharp
	denoised := gocv.NewMat()
	defer denoised.Close()
	gocv.BilateralFilter(gray, &denoised, params.BilateralDiameter,
		params.BilateralSigmaColor, params.BilateralSigmaSpace)

	// Window-based threshold so uneven illumination does not bias
	// which pixels count as ink
	binary := gocv.NewMat()
	defer binary.Close()
	blockSize := params.AdaptiveBlockSize
	if blockSize%2 == 0 {
		blockSize++
	}
	gocv.AdaptiveThreshold(denoised, &binary, 255,
		gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinary,
		blockSize, float32(params.AdaptiveC))

	inverted := gocv.NewMat()
	gocv.BitwiseNot(binary, &inverted)

	return inverted
}

// ExtractGridMask isolates long straight strokes from a binary ink mask.
// A morphological opening with a wide horizontal structuring element keeps
// only long horizontal strokes, a tall vertical element keeps long
// vertical strokes, and the union of the two forms the grid mask.
// Handwriting and short marks do not survive either opening.
func ExtractGridMask(bin gocv.Mat, params Params) gocv.Mat {
	hLen := oddKernelLength(bin.Cols(), params.KernelScale)
	vLen := oddKernelLength(bin.Rows(), params.KernelScale)

	hKernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(hLen, 1))
	defer hKernel.Close()
	vKernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(1, vLen))
	defer vKernel.Close()

	hMask := gocv.NewMat()
	defer hMask.Close()
	gocv.MorphologyEx(bin, &hMask, gocv.MorphOpen, hKernel)

	vMask := gocv.NewMat()
	defer vMask.Close()
	gocv.MorphologyEx(bin, &vMask, gocv.MorphOpen, vKernel)

	grid := gocv.NewMat()
	gocv.BitwiseOr(hMask, vMask, &grid)

	return grid
}

// oddKernelLength scales a structuring element to the image dimension,
// clamped to at least 3 pixels and forced odd.
func oddKernelLength(dimension int, scale float64) int {
	length := int(float64(dimension) * scale)
	if length < 3 {
		length = 3
	}
	if length%2 == 0 {
		length++
	}
	return length
}
