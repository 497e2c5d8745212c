package table

import (
	"fmt"
	"image"

	"omr-grader/pkg/geometry"

	"gocv.io/x/gocv"
)

// Localize finds the answer table boundary in a grid mask and returns its
// four corners in canonical order. The table is assumed to be the largest
// closed structure on the page, so the largest external contour is taken
// and approximated to a polygon. A boundary that cannot be reduced to
// four corners is a localization failure, reported as *NotFoundError.
func Localize(gridMask gocv.Mat, params Params) (geometry.Quad, error) {
	contours := gocv.FindContours(gridMask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	if contours.Size() == 0 {
		return geometry.Quad{}, &NotFoundError{Reason: "no contours in grid mask"}
	}

	pageArea := float64(gridMask.Cols() * gridMask.Rows())
	bestIdx := -1
	var bestArea float64
	for i := 0; i < contours.Size(); i++ {
		area := gocv.ContourArea(contours.At(i))
		if area > bestArea {
			bestArea = area
			bestIdx = i
		}
	}
	if bestIdx < 0 || bestArea < pageArea*params.MinAreaFrac {
		return geometry.Quad{}, &NotFoundError{
			Reason: fmt.Sprintf("largest contour area %.0f below %.0f%% of page",
				bestArea, params.MinAreaFrac*100),
		}
	}

	contour := contours.At(bestIdx)
	arc := gocv.ArcLength(contour, true)

	// Sweep approximation tolerances; double lines from print bleed can
	// make the first epsilon produce extra vertices.
	epsilons := append([]float64{params.EpsilonFrac}, params.EpsilonSweep...)
	lastCount := 0
	var overApprox []geometry.Point2D
	for _, frac := range epsilons {
		approx := gocv.ApproxPolyDP(contour, frac*arc, true)
		n := approx.Size()
		if n == 4 {
			pts := pointVectorToPoints(approx)
			approx.Close()
			return geometry.OrderCorners(pts)
		}
		if n > 4 && overApprox == nil {
			overApprox = pointVectorToPoints(approx)
		}
		lastCount = n
		approx.Close()
	}

	// More than four near-coplanar corner candidates (e.g. an inner
	// border doubled by print bleed): take the outermost candidates from
	// the convex hull rather than relying on contour ordering.
	if overApprox != nil {
		hull := geometry.ConvexHull(overApprox)
		if len(hull) >= 4 {
			return geometry.OrderCorners(extremeCorners(hull))
		}
	}

	return geometry.Quad{}, &NotFoundError{
		Reason: fmt.Sprintf("boundary approximated to %d corners, want 4", lastCount),
	}
}

// extremeCorners picks the four outermost points of a set by the same
// sum/difference heuristic used for canonical corner ordering.
func extremeCorners(points []geometry.Point2D) []geometry.Point2D {
	tl, tr, br, bl := points[0], points[0], points[0], points[0]
	for _, p := range points[1:] {
		if p.X+p.Y < tl.X+tl.Y {
			tl = p
		}
		if p.X+p.Y > br.X+br.Y {
			br = p
		}
		if p.Y-p.X < tr.Y-tr.X {
			tr = p
		}
		if p.Y-p.X > bl.Y-bl.X {
			bl = p
		}
	}
	return []geometry.Point2D{tl, tr, br, bl}
}

func pointVectorToPoints(pv gocv.PointVector) []geometry.Point2D {
	pts := make([]geometry.Point2D, pv.Size())
	for i := 0; i < pv.Size(); i++ {
		p := pv.At(i)
		pts[i] = geometry.Point2D{X: float64(p.X), Y: float64(p.Y)}
	}
	return pts
}

// Rectify maps the quad region of src onto an axis-aligned rectangle.
// Output dimensions come from the longest opposing edge pairs so the
// table's aspect ratio is preserved rather than forced to a fixed size.
// The same quad may be applied to both the binary mask and the source
// image; the warps stay in register.
func Rectify(src gocv.Mat, quad geometry.Quad) gocv.Mat {
	width := int(quad.Width())
	height := int(quad.Height())
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	srcPts := gocv.NewPoint2fVectorFromPoints([]gocv.Point2f{
		{X: float32(quad.TL.X), Y: float32(quad.TL.Y)},
		{X: float32(quad.TR.X), Y: float32(quad.TR.Y)},
		{X: float32(quad.BR.X), Y: float32(quad.BR.Y)},
		{X: float32(quad.BL.X), Y: float32(quad.BL.Y)},
	})
	defer srcPts.Close()

	dstPts := gocv.NewPoint2fVectorFromPoints([]gocv.Point2f{
		{X: 0, Y: 0},
		{X: float32(width), Y: 0},
		{X: float32(width), Y: float32(height)},
		{X: 0, Y: float32(height)},
	})
	defer dstPts.Close()

	transform := gocv.GetPerspectiveTransform2f(srcPts, dstPts)
	defer transform.Close()

	dst := gocv.NewMat()
	gocv.WarpPerspective(src, &dst, transform, image.Pt(width, height))

	return dst
}
