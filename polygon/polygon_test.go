package polygon

import (
	"testing"

	"github.com/npillmayer/morphspace"
	"github.com/npillmayer/morphspace/blob"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var P = morphspace.P

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pg := NullPolygon().Knot(P(0, 0)).Knot(P(1, 3)).Knot(P(3, 0)).Cycle()
	L().Infof("pg = %s", AsString(pg))
	if pg.N() != 3 {
		t.Fail()
	}
	assert.Equal(t, "(0,0) -- (1,3) -- (3,0) -- cycle", AsString(pg))
}

func TestBox(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	box := Box(P(0, 5), P(4, 1))
	L().Infof("box = %s", AsString(box))
	if box.N() != 4 {
		t.Fail()
	}
	assert.InDelta(t, 16.0, box.Area(), 1e-9)
	ll, ur := box.BoundingBox()
	assert.Equal(t, P(0, 1), ll)
	assert.Equal(t, P(4, 5), ur)
	assert.True(t, box.Contains(P(2, 3)))
	assert.False(t, box.Contains(P(5, 3)))
}

// Mirrored handles make every side of a square bulge outwards.
func TestFromBlobSquare(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := blob.MustNew(
		[]morphspace.Pair{P(0, 0), P(10, 0), P(10, 10), P(0, 10)},
		[]morphspace.Pair{P(5, 0), P(10, 5), P(5, 10), P(0, 5)},
	)
	pg := FromBlob(c, 0)
	assert.True(t, pg.IsCycle())
	assert.Greater(t, pg.Area(), 100.0)
	assert.True(t, pg.Contains(P(5, 5)))
	assert.False(t, pg.Contains(P(15, 5)))
	ll, ur := pg.BoundingBox()
	assert.Less(t, ll.Y(), 0.0)
	assert.Greater(t, ur.X(), 10.0)
}

func TestFromBlobCurved(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := blob.MustNew(
		[]morphspace.Pair{P(0, 0), P(10, 0), P(5, 10)},
		[]morphspace.Pair{P(1, 1), P(9, 1), P(5, 9)},
	)
	coarse := FromBlob(c, 2)
	fine := FromBlob(c, 0.01)
	assert.Greater(t, fine.N(), coarse.N())
	assert.GreaterOrEqual(t, coarse.N(), 3)
	assert.Equal(t, P(0, 0), fine.Pt(0))
}

func TestOverlap(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := Box(P(0, 0), P(2, 2))
	b := Box(P(1, 1), P(3, 3))
	r, err := Overlap(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/7.0, r, 1e-6)
	r, err = Overlap(a, Box(P(0.5, 0.5), P(1.5, 1.5)))
	require.NoError(t, err)
	assert.InDelta(t, 0.25, r, 1e-6)
	r, err = Overlap(a, Box(P(10, 10), P(12, 12)))
	require.NoError(t, err)
	assert.InDelta(t, 0.0, r, 1e-9)
	_, err = Overlap(a, NullPolygon().Knot(P(0, 0)))
	assert.Error(t, err)
}
