// Package blob deals with closed cubic bezier shapes ("blobs") and the
// algorithms to blend them.
/*

A blob is given by N anchors, which the curve passes through, and N
incoming control points. Segment i runs from anchor i to anchor i+1 (the
last segment closes the curve back to anchor 0), pulled by the control
point of index i as its first handle. The second handle of every segment
is not stored independently: it is derived by reflecting the first handle
of the following segment through their shared anchor,

   controlsOut[i] = 2*anchors[i+1] - controlsIn[i+1]   (indices mod N)

which makes consecutive segments meet smoothly however the user drags
the editable points.

Usage

Clients create corner blobs from captured points, edit them in place
and blend them:

   tl, err := blob.New(anchors, controls)
   ...
   m, err := blob.Morph2D(tl, tr, bl, br, 0.25, 0.5)

Blending never modifies its inputs and always allocates a new blob.
Curves taking part in a blend must have equal point counts, otherwise
ErrDimensionMismatch is returned.

A blob prints in a notation close to MetaPost's:

   (0,0) .. controls (1.0000,1.0000) and (11.0000,-1.0000)
     .. (10,0) .. controls (9.0000,1.0000) and (5.0000,11.0000)
     .. (5,10) .. controls (5.0000,9.0000) and (-1.0000,-1.0000)
     .. cycle


BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package blob

import "fmt"

// AsString returns a blob, including all control points, as a (debugging)
// string. The string contains a line per segment.
func AsString(c *Curve) string {
	var s string
	for i := 0; i < c.N(); i++ {
		if i > 0 {
			s += "\n  .. "
		}
		s += fmt.Sprintf("%s .. controls %s and %s", ptstring(c.Z(i), false),
			ptstring(c.ControlIn(i), true), ptstring(c.ControlOut(i), true))
	}
	s += "\n  .. cycle"
	return s
}

// PointInfo lists anchors and incoming controls of c, one line per index,
// rounded to one decimal. The line of index highlight is marked; pass -1
// to mark none.
func PointInfo(c *Curve, highlight int) []string {
	lines := make([]string, c.N())
	for i := range lines {
		a, ctrl := c.anchors[i], c.controlsIn[i]
		lines[i] = fmt.Sprintf("P%d: x=%.1f, y=%.1f | ctrlX=%.1f, ctrlY=%.1f",
			i, a.X(), a.Y(), ctrl.X(), ctrl.Y())
	}
	if highlight >= 0 && highlight < len(lines) {
		lines[highlight] = "➤ " + lines[highlight]
	}
	return lines
}
