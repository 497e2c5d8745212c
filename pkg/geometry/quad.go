package geometry

import "fmt"

// Quad represents a quadrilateral with corners in canonical order:
// top-left, top-right, bottom-right, bottom-left. The ordering invariant
// keeps a perspective warp built from the quad non-mirrored and
// non-rotated regardless of the rotation of the source image.
type Quad struct {
	TL, TR, BR, BL Point2D
}

// OrderCorners sorts four arbitrary corner points into canonical order
// using the sum/difference heuristic: the top-left corner minimizes x+y,
// the bottom-right maximizes x+y, and the top-right/bottom-left corners
// minimize/maximize y-x.
func OrderCorners(points []Point2D) (Quad, error) {
	if len(points) != 4 {
		return Quad{}, fmt.Errorf("need exactly 4 corner points, got %d", len(points))
	}

	var q Quad
	minSum, maxSum := points[0].X+points[0].Y, points[0].X+points[0].Y
	minDiff, maxDiff := points[0].Y-points[0].X, points[0].Y-points[0].X
	q.TL, q.BR, q.TR, q.BL = points[0], points[0], points[0], points[0]

	for _, p := range points[1:] {
		sum := p.X + p.Y
		diff := p.Y - p.X
		if sum < minSum {
			minSum = sum
			q.TL = p
		}
		if sum > maxSum {
			maxSum = sum
			q.BR = p
		}
		if diff < minDiff {
			minDiff = diff
			q.TR = p
		}
		if diff > maxDiff {
			maxDiff = diff
			q.BL = p
		}
	}

	return q, nil
}

// Corners returns the corners in canonical order.
func (q Quad) Corners() []Point2D {
	return []Point2D{q.TL, q.TR, q.BR, q.BL}
}

// Width returns the longer of the top and bottom edge lengths.
func (q Quad) Width() float64 {
	top := q.TL.Distance(q.TR)
	bottom := q.BL.Distance(q.BR)
	if top > bottom {
		return top
	}
	return bottom
}

// Height returns the longer of the left and right edge lengths.
func (q Quad) Height() float64 {
	left := q.TL.Distance(q.BL)
	right := q.TR.Distance(q.BR)
	if left > right {
		return left
	}
	return right
}

// Bounds returns the axis-aligned bounding box of the quad.
func (q Quad) Bounds() Rect {
	return BoundingBox(q.Corners())
}
