package space

import (
	"math"
	"sync"
	"testing"

	"github.com/npillmayer/morphspace"
	"github.com/npillmayer/morphspace/blob"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var P = morphspace.P

func clicks() []morphspace.Pair {
	return []morphspace.Pair{
		P(0, 0), P(10, 0), P(10, 10), P(0, 10), // anchors
		P(5, -2), P(12, 5), P(5, 12), P(-2, 5), // controls
	}
}

func referenceSpace(t *testing.T) *Space {
	t.Helper()
	s := New()
	require.NoError(t, s.CreateReference(clicks()))
	require.NoError(t, s.FinishReference())
	return s
}

func TestCreateAndFinishReference(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := New()
	assert.Equal(t, 0, s.N())
	assert.ErrorIs(t, s.FinishReference(), ErrEmptyCorner)
	require.NoError(t, s.CreateReference(clicks()))
	assert.Equal(t, 4, s.N())
	assert.True(t, s.Has(blob.TopLeft))
	assert.False(t, s.Has(blob.TopRight))
	require.NoError(t, s.FinishReference())
	assert.True(t, s.IsDerived())
	ref, err := s.Corner(blob.TopLeft)
	require.NoError(t, err)
	assert.False(t, ref.IsStale())
	for _, c := range blob.Corners {
		got, err := s.Corner(c)
		require.NoError(t, err)
		assert.True(t, got.Equal(ref), "corner %s", c)
	}
	assert.ErrorIs(t, s.CreateReference(clicks()[:5]), blob.ErrDimensionMismatch)
}

func TestEditDerivesBottomRight(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := referenceSpace(t)
	// first half of bottom-left, second half of top-right
	require.NoError(t, s.Move(blob.BottomLeft, blob.Anchor, 0, P(-10, -10)))
	require.NoError(t, s.Move(blob.TopRight, blob.Control, 3, P(-20, 5)))
	require.NoError(t, s.Move(blob.TopRight, blob.Anchor, 0, P(99, 99)))
	d, err := s.Corner(blob.BottomRight)
	require.NoError(t, err)
	assert.Equal(t, P(-10, -10), d.Z(0))
	assert.Equal(t, P(-20, 5), d.ControlIn(3))
	assert.Equal(t, P(10, 0), d.Z(1))
	assert.ErrorIs(t, s.Move(blob.BottomRight, blob.Anchor, 0, P(0, 0)), ErrDerivedCorner)
	assert.ErrorIs(t, s.SetCorner(blob.BottomRight, d), ErrDerivedCorner)
}

func TestFailedEditLeavesCornerUntouched(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := referenceSpace(t)
	before, _ := s.Corner(blob.TopLeft)
	assert.ErrorIs(t, s.Move(blob.TopLeft, blob.Anchor, 4, P(1, 1)), blob.ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Distort(blob.TopLeft, -1, 0, 10), blob.ErrIndexOutOfRange)
	after, _ := s.Corner(blob.TopLeft)
	assert.True(t, before.Equal(after))
	assert.ErrorIs(t, New().Move(blob.TopLeft, blob.Anchor, 0, P(0, 0)), ErrEmptyCorner)
}

func TestDistort(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := referenceSpace(t)
	require.NoError(t, s.Distort(blob.TopLeft, 2, math.Pi, 90))
	c, err := s.Corner(blob.TopLeft)
	require.NoError(t, err)
	assert.True(t, c.ControlIn(2).Equal(P(-85, 12)), "got %v", c.ControlIn(2))
	// controlOut[1] mirrors the distorted control
	assert.True(t, c.ControlOut(1).Equal(P(105, 8)), "got %v", c.ControlOut(1))
}

func TestCornerCopiesAreIndependent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := referenceSpace(t)
	c, err := s.Corner(blob.TopLeft)
	require.NoError(t, err)
	require.NoError(t, c.SetAnchor(0, P(50, 50)))
	again, _ := s.Corner(blob.TopLeft)
	assert.Equal(t, P(0, 0), again.Z(0))
}

func TestSetCornerRejectsMismatch(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := referenceSpace(t)
	tri := blob.MustNew([]morphspace.Pair{P(0, 0), P(1, 0), P(0, 1)},
		[]morphspace.Pair{P(0, 0), P(1, 0), P(0, 1)})
	assert.ErrorIs(t, s.SetCorner(blob.TopRight, tri), blob.ErrDimensionMismatch)
	assert.ErrorIs(t, s.SetCorner(blob.TopRight, nil), blob.ErrNilCurve)
}

func TestLoadIsAtomic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := referenceSpace(t)
	tri := blob.MustNew([]morphspace.Pair{P(0, 0), P(1, 0), P(0, 1)},
		[]morphspace.Pair{P(0, 0), P(1, 0), P(0, 1)})
	quad, _ := s.Corner(blob.TopLeft)
	err := s.Load([4]*blob.Curve{tri, quad, nil, nil})
	assert.ErrorIs(t, err, blob.ErrDimensionMismatch)
	assert.Equal(t, 4, s.N())
	assert.True(t, s.IsDerived())

	require.NoError(t, s.Load([4]*blob.Curve{tri, tri, nil, tri}))
	assert.Equal(t, 3, s.N())
	assert.False(t, s.IsDerived())
	assert.False(t, s.Has(blob.BottomLeft))
	require.NoError(t, s.SetCorner(blob.BottomRight, tri))
}

func TestSampleCorners(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := referenceSpace(t)
	require.NoError(t, s.Move(blob.TopRight, blob.Anchor, 2, P(30, 30)))
	require.NoError(t, s.Move(blob.BottomLeft, blob.Anchor, 1, P(-30, 0)))
	for _, corner := range blob.Corners {
		want, err := s.Corner(corner)
		require.NoError(t, err)
		got, err := s.Sample(corner.Coords())
		require.NoError(t, err)
		assert.True(t, got.Equal(want), "corner %s", corner)
		assert.False(t, got.IsStale())
	}
	_, err := New().Sample(0.5, 0.5)
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestPreview(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := referenceSpace(t)
	require.NoError(t, s.Move(blob.TopRight, blob.Anchor, 2, P(30, 30)))
	wx, wy := s.PreviewWeights()
	assert.Equal(t, [2]float64{0.5, 0.5}, [2]float64{wx, wy})
	s.SetPreview(1.7, -3)
	wx, wy = s.PreviewWeights()
	assert.Equal(t, [2]float64{1, 0}, [2]float64{wx, wy})
	m, err := s.Middle()
	require.NoError(t, err)
	tr, _ := s.Corner(blob.TopRight)
	assert.True(t, m.Equal(tr))
	s.ClearPreview()
	m, err = s.Middle()
	require.NoError(t, err)
	assert.True(t, m.Z(2).Equal(P(20, 20)), "got %v", m.Z(2))
}

func TestSweep(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := referenceSpace(t)
	require.NoError(t, s.Move(blob.TopRight, blob.Anchor, 3, P(0, 40)))
	g, err := s.Sweep(5, 3)
	require.NoError(t, err)
	require.Len(t, g.Cells, 15)
	for j := 0; j < 3; j++ {
		for i := 0; i < 5; i++ {
			c := g.At(j, i)
			assert.Equal(t, j, c.Row)
			assert.Equal(t, i, c.Col)
			want, err := s.Sample(Weight(i, 5), Weight(j, 3))
			require.NoError(t, err)
			assert.True(t, c.Blob.Equal(want), "cell %d/%d", j, i)
		}
	}
	assert.Equal(t, 0.25, g.At(0, 1).WeightX)
	assert.Equal(t, 0.5, g.At(1, 0).WeightY)
	single, err := s.Sweep(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, single.At(0, 0).WeightX)
	_, err = s.Sweep(0, 3)
	assert.Error(t, err)
}

func TestSweepReportsCellErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := referenceSpace(t)
	tl, err := s.Corner(blob.TopLeft)
	require.NoError(t, err)
	g, err := sweep(4, 3, func(wx, wy float64) (*blob.Curve, error) {
		if wx == 1 && wy == 0.5 {
			return nil, blob.ErrDimensionMismatch
		}
		return tl, nil
	})
	assert.Nil(t, g)
	assert.ErrorIs(t, err, blob.ErrDimensionMismatch)
	g, err = sweep(4, 3, func(wx, wy float64) (*blob.Curve, error) {
		return tl, nil
	})
	require.NoError(t, err)
	for _, c := range g.Cells {
		assert.NotNil(t, c.Blob)
	}
}

func TestUnknownCorner(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := referenceSpace(t)
	bad := blob.Corner(7)
	assert.False(t, s.Has(bad))
	_, err := s.Corner(bad)
	assert.ErrorIs(t, err, blob.ErrUnknownCorner)
	assert.ErrorIs(t, s.SetCorner(bad, blob.MustNew(clicks()[:4], clicks()[4:])), blob.ErrUnknownCorner)
	assert.ErrorIs(t, s.Move(bad, blob.Anchor, 0, P(1, 1)), blob.ErrUnknownCorner)
	assert.ErrorIs(t, s.Distort(blob.Corner(-1), 0, 0, 10), blob.ErrUnknownCorner)
}

func TestConcurrentEditsAndReads(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := referenceSpace(t)
	var wg sync.WaitGroup
	for k := 0; k < 8; k++ {
		wg.Add(2)
		go func(k int) {
			defer wg.Done()
			_ = s.Distort(blob.TopRight, k%4, float64(k), 1)
		}(k)
		go func() {
			defer wg.Done()
			m, err := s.Middle()
			if assert.NoError(t, err) {
				assert.Equal(t, 4, m.N())
			}
		}()
	}
	wg.Wait()
}
