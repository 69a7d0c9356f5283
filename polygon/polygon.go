/*
Package polygon flattens blobs into polygons and answers area questions
about them: containment of points, bounding boxes, area and the overlap
of two blobs.

Polygon clipping is done by github.com/akavel/polyclip-go.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"fmt"
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/morphspace"
	"github.com/npillmayer/morphspace/blob"
	"github.com/npillmayer/schuko/tracing"
)

// L traces to the polygon tracer.
func L() tracing.Trace {
	return tracing.Select("polygon")
}

// DefaultFlatness is the default maximum distance of a bezier handle from its
// chord before a segment gets subdivided.
const DefaultFlatness = 0.25

// maximum subdivision depth per bezier segment
const maxDepth = 16

// Polygon is a closed polygon. Build one with NullPolygon().Knot(...)...Cycle(),
// with Box or by flattening a blob with FromBlob.
type Polygon struct {
	contour polyclip.Contour
	cycle   bool
}

// NullPolygon creates an empty polygon, to be extended by subsequent builder
// calls.
func NullPolygon() *Polygon {
	return &Polygon{}
}

// Knot appends a vertex. Part of builder functionality.
func (pg *Polygon) Knot(p morphspace.Pair) *Polygon {
	pg.contour.Add(polyclip.Point{X: p.X(), Y: p.Y()})
	return pg
}

// Cycle closes the polygon. Part of builder functionality.
func (pg *Polygon) Cycle() *Polygon {
	pg.cycle = true
	return pg
}

// Box creates a rectangular polygon from two opposite corners.
func Box(p1, p2 morphspace.Pair) *Polygon {
	x0, x1 := math.Min(p1.X(), p2.X()), math.Max(p1.X(), p2.X())
	y0, y1 := math.Min(p1.Y(), p2.Y()), math.Max(p1.Y(), p2.Y())
	return NullPolygon().Knot(morphspace.P(x0, y0)).Knot(morphspace.P(x1, y0)).
		Knot(morphspace.P(x1, y1)).Knot(morphspace.P(x0, y1)).Cycle()
}

// N returns the number of vertices.
func (pg *Polygon) N() int {
	return len(pg.contour)
}

// Pt returns vertex i.
func (pg *Polygon) Pt(i int) morphspace.Pair {
	p := pg.contour[i]
	return morphspace.P(p.X, p.Y)
}

// IsCycle is a predicate: is this polygon closed?
func (pg *Polygon) IsCycle() bool {
	return pg.cycle
}

// AsString returns a polygon as a (debugging) string.
func AsString(pg *Polygon) string {
	var s string
	for i := 0; i < pg.N(); i++ {
		if i > 0 {
			s += " -- "
		}
		s += pg.Pt(i).String()
	}
	if pg.cycle {
		s += " -- cycle"
	}
	return s
}

// FromBlob flattens a blob into a closed polygon. Each bezier segment is
// subdivided until both of its handles lie within flatness of the chord.
// A flatness <= 0 selects DefaultFlatness.
func FromBlob(c *blob.Curve, flatness float64) *Polygon {
	if flatness <= 0 {
		flatness = DefaultFlatness
	}
	pg := NullPolygon()
	for i := 0; i < c.N(); i++ {
		p0, p1, p2, p3 := c.Segment(i)
		pg.Knot(p0)
		flatten(pg, p0, p1, p2, p3, flatness, 0)
	}
	L().Debugf("flattened blob of %d segments into %d vertices", c.N(), pg.N())
	return pg.Cycle()
}

// flatten appends the interior vertices of a cubic segment, leaving out
// both end points.
func flatten(pg *Polygon, p0, p1, p2, p3 morphspace.Pair, flatness float64, depth int) {
	if depth >= maxDepth || (chordDist(p1, p0, p3) <= flatness && chordDist(p2, p0, p3) <= flatness) {
		return
	}
	// de Casteljau split at t = 1/2
	p01, p12, p23 := mid(p0, p1), mid(p1, p2), mid(p2, p3)
	p012, p123 := mid(p01, p12), mid(p12, p23)
	m := mid(p012, p123)
	flatten(pg, p0, p01, p012, m, flatness, depth+1)
	pg.Knot(m)
	flatten(pg, m, p123, p23, p3, flatness, depth+1)
}

func mid(a, b morphspace.Pair) morphspace.Pair {
	return morphspace.Lerp(a, b, 0.5)
}

// distance of p from the line segment a-b
func chordDist(p, a, b morphspace.Pair) float64 {
	ab := b - a
	l2 := ab.X()*ab.X() + ab.Y()*ab.Y()
	if l2 == 0 {
		return p.Dist(a)
	}
	ap := p - a
	t := (ap.X()*ab.X() + ap.Y()*ab.Y()) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(morphspace.Lerp(a, b, t))
}

// Contains is a predicate: does p lie inside the polygon?
func (pg *Polygon) Contains(p morphspace.Pair) bool {
	if pg.N() < 3 {
		return false
	}
	return pg.contour.Contains(polyclip.Point{X: p.X(), Y: p.Y()})
}

// BoundingBox returns the lower-left and upper-right corner of the
// polygon's bounding box.
func (pg *Polygon) BoundingBox() (morphspace.Pair, morphspace.Pair) {
	if pg.N() == 0 {
		return morphspace.Origin, morphspace.Origin
	}
	r := pg.contour.BoundingBox()
	return morphspace.P(r.Min.X, r.Min.Y), morphspace.P(r.Max.X, r.Max.Y)
}

// Area returns the enclosed area. Self-intersecting polygons contribute
// their signed parts, so lobes of opposite orientation cancel.
func (pg *Polygon) Area() float64 {
	return math.Abs(signedArea(pg.contour))
}

// Overlap returns the ratio of intersection area to union area of two
// polygons, 1 for congruent and 0 for disjoint ones.
func Overlap(a, b *Polygon) (float64, error) {
	if a.N() < 3 || b.N() < 3 {
		return 0, fmt.Errorf("polygons need at least 3 vertices, have %d and %d", a.N(), b.N())
	}
	pa, pb := polyclip.Polygon{a.contour}, polyclip.Polygon{b.contour}
	union := area(pa.Construct(polyclip.UNION, pb))
	if union == 0 {
		return 0, nil
	}
	inter := area(pa.Construct(polyclip.INTERSECTION, pb))
	L().Debugf("overlap: intersection %g, union %g", inter, union)
	return inter / union, nil
}

// area of a clipping result. Contours nested in an odd number of other
// contours are holes.
func area(p polyclip.Polygon) float64 {
	var total float64
	for i, c := range p {
		if len(c) == 0 {
			continue
		}
		depth := 0
		for j, other := range p {
			if j != i && len(other) > 2 && other.Contains(c[0]) {
				depth++
			}
		}
		a := math.Abs(signedArea(c))
		if depth%2 == 1 {
			a = -a
		}
		total += a
	}
	return math.Max(total, 0)
}

// shoelace formula
func signedArea(c polyclip.Contour) float64 {
	var s float64
	for i := range c {
		j := (i + 1) % len(c)
		s += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return s / 2
}
