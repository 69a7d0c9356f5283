package blob

import (
	"fmt"

	"github.com/npillmayer/morphspace"
)

// Corner tags one of the four corner curves of a morph space.
type Corner int8

// The four corners. Their keys in exchange files are "A" to "D".
const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// Corners lists all corners in key order.
var Corners = [4]Corner{TopLeft, TopRight, BottomLeft, BottomRight}

var cornerNames = [4]string{"top-left", "top-right", "bottom-left", "bottom-right"}

// IsValid is a predicate: is c one of the four corners?
func (c Corner) IsValid() bool {
	return c >= TopLeft && c <= BottomRight
}

func (c Corner) String() string {
	if !c.IsValid() {
		return fmt.Sprintf("corner(%d)", int8(c))
	}
	return cornerNames[c]
}

// Key returns the short key of a corner, "A" for top-left through "D" for
// bottom-right.
func (c Corner) Key() string {
	return string(rune('A' + int(c)))
}

// ParseCorner accepts a corner key ("A"–"D", any case) or a corner name.
func ParseCorner(s string) (Corner, error) {
	switch s {
	case "A", "a", "top-left", "tl":
		return TopLeft, nil
	case "B", "b", "top-right", "tr":
		return TopRight, nil
	case "C", "c", "bottom-left", "bl":
		return BottomLeft, nil
	case "D", "d", "bottom-right", "br":
		return BottomRight, nil
	}
	return TopLeft, fmt.Errorf("unknown corner %q", s)
}

// Coords returns the unit-square weights at which a corner is located.
func (c Corner) Coords() (weightX, weightY float64) {
	switch c {
	case TopRight:
		return 1, 0
	case BottomLeft:
		return 0, 1
	case BottomRight:
		return 1, 1
	}
	return 0, 0
}

// HighlightPoint is an editable point of a blob, as offered for dragging.
type HighlightPoint struct {
	Pos   morphspace.Pair
	Type  PointType
	Index int
}

// Highlight returns the points of c that are editable for the given corner,
// anchors first, then controls.
//
// The top-right curve contributes its second half to the bottom-right
// corner and the bottom-left curve its first half (see Splice), so only these
// halves are offered for them. Top-left and bottom-right offer all points.
func Highlight(c *Curve, corner Corner) []HighlightPoint {
	from, to := 0, c.N()
	switch corner {
	case TopRight:
		from = c.N() / 2
	case BottomLeft:
		to = c.N() / 2
	}
	points := make([]HighlightPoint, 0, 2*(to-from))
	for i := from; i < to; i++ {
		points = append(points, HighlightPoint{Pos: c.anchors[i], Type: Anchor, Index: i})
	}
	for i := from; i < to; i++ {
		points = append(points, HighlightPoint{Pos: c.controlsIn[i], Type: Control, Index: i})
	}
	return points
}
