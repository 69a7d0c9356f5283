package blob

import (
	"fmt"

	"github.com/npillmayer/morphspace"
)

// Lerp blends two curves of equal point count. Every anchor and incoming
// control is interpolated as a + (b-a)*ratio, coordinate by coordinate.
// ratio is not clamped; values outside [0,1] extrapolate linearly.
//
// The inputs are not modified. The result is a new curve with stale
// outgoing controls.
func Lerp(a, b *Curve, ratio float64) (*Curve, error) {
	if err := sameDimension(a, b); err != nil {
		return nil, err
	}
	return lerp(a, b, ratio), nil
}

func lerp(a, b *Curve, ratio float64) *Curve {
	n := a.N()
	anchors := make([]morphspace.Pair, n)
	controls := make([]morphspace.Pair, n)
	for i := 0; i < n; i++ {
		anchors[i] = morphspace.Lerp(a.anchors[i], b.anchors[i], ratio)
		controls[i] = morphspace.Lerp(a.controlsIn[i], b.controlsIn[i], ratio)
	}
	return newCurve(anchors, controls)
}

// Morph2D blends four corner curves bilinearly. The top edge is blended
// across weightX, then the bottom edge, and finally both intermediate
// curves across weightY:
//
//	top    = Lerp(topLeft, topRight, weightX)
//	bottom = Lerp(bottomLeft, bottomRight, weightX)
//	result = Lerp(top, bottom, weightY)
//
// All four curves must have the same point count; this is checked before
// anything is computed. Inputs are never modified.
func Morph2D(topLeft, topRight, bottomLeft, bottomRight *Curve, weightX, weightY float64) (*Curve, error) {
	if err := sameDimension(topLeft, topRight, bottomLeft, bottomRight); err != nil {
		return nil, err
	}
	top := lerp(topLeft, topRight, weightX)
	bottom := lerp(bottomLeft, bottomRight, weightX)
	return lerp(top, bottom, weightY), nil
}

// MustMorph2D is like Morph2D, but panics on error.
func MustMorph2D(topLeft, topRight, bottomLeft, bottomRight *Curve, weightX, weightY float64) *Curve {
	c, err := Morph2D(topLeft, topRight, bottomLeft, bottomRight, weightX, weightY)
	if err != nil {
		panic(err)
	}
	return c
}

// Splice joins two curves structurally: points with index below N/2 (rounded
// down) are taken from first, all others from second. Values are copied,
// not blended.
//
// The bottom-right corner of a morph space is Splice(bottomLeft, topRight).
func Splice(first, second *Curve) (*Curve, error) {
	if err := sameDimension(first, second); err != nil {
		return nil, err
	}
	n := first.N()
	mid := n / 2
	anchors := make([]morphspace.Pair, 0, n)
	anchors = append(anchors, first.anchors[:mid]...)
	anchors = append(anchors, second.anchors[mid:]...)
	controls := make([]morphspace.Pair, 0, n)
	controls = append(controls, first.controlsIn[:mid]...)
	controls = append(controls, second.controlsIn[mid:]...)
	tracer().Debugf("spliced %d + %d points", mid, n-mid)
	return newCurve(anchors, controls), nil
}

func sameDimension(curves ...*Curve) error {
	for i, c := range curves {
		if c == nil {
			return fmt.Errorf("%w: argument %d", ErrNilCurve, i)
		}
	}
	n := curves[0].N()
	for i, c := range curves[1:] {
		if c.N() != n {
			tracer().Errorf("curve %d has %d points, expected %d", i+1, c.N(), n)
			return fmt.Errorf("%w: curve %d has %d points, expected %d",
				ErrDimensionMismatch, i+1, c.N(), n)
		}
	}
	return nil
}
