package blob

import (
	"fmt"

	"github.com/npillmayer/morphspace"
)

// New creates a curve from anchors and incoming control points. Both
// sequences are copied. Outgoing controls start out zero-valued and are
// derived on first use.
func New(anchors, controlsIn []morphspace.Pair) (*Curve, error) {
	if len(anchors) != len(controlsIn) {
		return nil, fmt.Errorf("%w: %d anchors, %d controls", ErrDimensionMismatch,
			len(anchors), len(controlsIn))
	}
	if len(anchors) < MinAnchors {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrTooFewAnchors, MinAnchors, len(anchors))
	}
	return newCurve(clonePairs(anchors), clonePairs(controlsIn)), nil
}

// FromCoordinates creates a curve from four coordinate sequences, as delivered
// by point capture or by import files: anchor x/y and control x/y.
func FromCoordinates(x, y, ctrlX, ctrlY []float64) (*Curve, error) {
	n := len(x)
	if len(y) != n || len(ctrlX) != n || len(ctrlY) != n {
		return nil, fmt.Errorf("%w: coordinate arrays of length %d, %d, %d, %d",
			ErrDimensionMismatch, len(x), len(y), len(ctrlX), len(ctrlY))
	}
	anchors := make([]morphspace.Pair, n)
	controls := make([]morphspace.Pair, n)
	for i := 0; i < n; i++ {
		anchors[i] = morphspace.P(x[i], y[i])
		controls[i] = morphspace.P(ctrlX[i], ctrlY[i])
	}
	if n < MinAnchors {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrTooFewAnchors, MinAnchors, n)
	}
	return newCurve(anchors, controls), nil
}

// FromClicks creates a curve from 2*N captured points: the first N are the
// anchors, the remaining N the incoming controls.
func FromClicks(clicks []morphspace.Pair) (*Curve, error) {
	if len(clicks)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of captured points (%d)",
			ErrDimensionMismatch, len(clicks))
	}
	n := len(clicks) / 2
	return New(clicks[:n], clicks[n:])
}

// MustNew is like New, but panics on error.
func MustNew(anchors, controlsIn []morphspace.Pair) *Curve {
	c, err := New(anchors, controlsIn)
	if err != nil {
		panic(err)
	}
	return c
}

// newCurve takes ownership of its arguments, which have to be of equal length.
func newCurve(anchors, controlsIn []morphspace.Pair) *Curve {
	return &Curve{
		anchors:     anchors,
		controlsIn:  controlsIn,
		controlsOut: make([]morphspace.Pair, len(anchors)),
		stale:       true,
	}
}

// Clone returns a deep copy of c.
func (c *Curve) Clone() *Curve {
	return &Curve{
		anchors:     clonePairs(c.anchors),
		controlsIn:  clonePairs(c.controlsIn),
		controlsOut: clonePairs(c.controlsOut),
		stale:       c.stale,
	}
}

// CopyFrom replaces anchors and incoming controls of c with copies of other's.
// Outgoing controls become stale.
func (c *Curve) CopyFrom(other *Curve) {
	c.anchors = clonePairs(other.anchors)
	c.controlsIn = clonePairs(other.controlsIn)
	if len(c.controlsOut) != len(c.anchors) {
		c.controlsOut = make([]morphspace.Pair, len(c.anchors))
	}
	c.stale = true
}

// SetAnchor moves anchor i to p.
func (c *Curve) SetAnchor(i int, p morphspace.Pair) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.anchors[i] = p
	c.stale = true
	return nil
}

// SetControlIn moves incoming control i to p.
func (c *Curve) SetControlIn(i int, p morphspace.Pair) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.controlsIn[i] = p
	c.stale = true
	return nil
}

// Move sets the point of type pt at index i to p. This is the entry point for
// drag-and-drop edits.
func (c *Curve) Move(pt PointType, i int, p morphspace.Pair) error {
	switch pt {
	case Anchor:
		return c.SetAnchor(i, p)
	case Control:
		return c.SetControlIn(i, p)
	}
	return fmt.Errorf("cannot move point of type %s", pt)
}

// Perturb moves incoming control i by magnitude in direction angle (radians).
// Anchors are not affected.
func (c *Curve) Perturb(i int, angle, magnitude float64) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.controlsIn[i] += morphspace.Polar(magnitude, angle)
	c.stale = true
	tracer().Debugf("perturbed control %d by %g at %g rad", i, magnitude, angle)
	return nil
}

func (c *Curve) checkIndex(i int) error {
	if i < 0 || i >= c.N() {
		return fmt.Errorf("%w: index %d, curve has %d points", ErrIndexOutOfRange, i, c.N())
	}
	return nil
}

func clonePairs(pairs []morphspace.Pair) []morphspace.Pair {
	c := make([]morphspace.Pair, len(pairs))
	copy(c, pairs)
	return c
}
