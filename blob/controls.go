package blob

import (
	"github.com/npillmayer/morphspace"
)

// N returns the number of anchors of c.
func (c *Curve) N() int {
	return len(c.anchors)
}

// Z returns the anchor at position (i mod N).
func (c *Curve) Z(i int) morphspace.Pair {
	return c.anchors[c.wrap(i)]
}

// ControlIn returns the incoming control at position (i mod N).
func (c *Curve) ControlIn(i int) morphspace.Pair {
	return c.controlsIn[c.wrap(i)]
}

// ControlOut returns the outgoing control at position (i mod N),
// reconstructing all outgoing controls first if they are stale.
func (c *Curve) ControlOut(i int) morphspace.Pair {
	if c.stale {
		c.ReconstructControlsOut()
	}
	return c.controlsOut[c.wrap(i)]
}

// Anchors returns a copy of the anchor sequence.
func (c *Curve) Anchors() []morphspace.Pair {
	return clonePairs(c.anchors)
}

// ControlsIn returns a copy of the incoming control sequence.
func (c *Curve) ControlsIn() []morphspace.Pair {
	return clonePairs(c.controlsIn)
}

// ControlsOut returns a copy of the (reconstructed) outgoing control sequence.
func (c *Curve) ControlsOut() []morphspace.Pair {
	if c.stale {
		c.ReconstructControlsOut()
	}
	return clonePairs(c.controlsOut)
}

// IsStale is true if anchors or incoming controls have changed since the last
// reconstruction of the outgoing controls.
func (c *Curve) IsStale() bool {
	return c.stale
}

// ReconstructControlsOut derives every outgoing control by point reflection:
// controlsOut[i] is controlsIn[i+1] mirrored through anchors[i+1].
//
// This mirrors through the next anchor, using the first handle of the next
// segment. Rendered output depends on exactly this formula.
func (c *Curve) ReconstructControlsOut() {
	n := c.N()
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		c.controlsOut[i] = morphspace.Mirror(c.controlsIn[next], c.anchors[next])
	}
	c.stale = false
}

// Segment returns the cubic bezier segment i (mod N) as start point, first
// handle, second handle and end point.
func (c *Curve) Segment(i int) (p0, p1, p2, p3 morphspace.Pair) {
	i = c.wrap(i)
	return c.anchors[i], c.controlsIn[i], c.ControlOut(i), c.Z(i + 1)
}

// Transformed returns a copy of c with all points transformed by m.
// Affine transforms commute with point reflection, so the outgoing controls
// of the copy stay consistent.
func (c *Curve) Transformed(m morphspace.AT) *Curve {
	t := c.Clone()
	for i := range t.anchors {
		t.anchors[i] = m.Transform(t.anchors[i])
		t.controlsIn[i] = m.Transform(t.controlsIn[i])
		t.controlsOut[i] = m.Transform(t.controlsOut[i])
	}
	return t
}

// Equal compares anchors and incoming controls of two curves, tolerating
// differences below morphspace.Epsilon.
func (c *Curve) Equal(other *Curve) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.N() != other.N() {
		return false
	}
	for i := range c.anchors {
		if !c.anchors[i].Equal(other.anchors[i]) || !c.controlsIn[i].Equal(other.controlsIn[i]) {
			return false
		}
	}
	return true
}

func (c *Curve) wrap(i int) int {
	n := c.N()
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
