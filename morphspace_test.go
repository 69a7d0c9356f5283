package morphspace

import (
	"math"
	"math/rand"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestNumericBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := 0.000000008
	if !Is0(a) {
		t.Errorf("Expected a to be zero, is not")
	}
	assert.Equal(t, 0.0, Zap(a))
	assert.Equal(t, 0.0, Clamp01(-0.5))
	assert.Equal(t, 1.0, Clamp01(7))
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
	assert.Equal(t, 0.25, Clamp01(0.25))
}

func TestPairBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := P(3, 2)
	q := P(-3, -2)
	r := p + q
	if !r.Equal(Origin) {
		t.Errorf("Expected p + q to be (0,0), is %v", r)
	}
	assert.Equal(t, "(3,2)", p.String())
	assert.True(t, p.IsValid())
	assert.False(t, P(math.Inf(1), 0).IsValid())
	assert.Equal(t, Origin, C2P(complex(math.NaN(), 0)))
	assert.InDelta(t, 5.0, P(0, 0).Dist(P(3, 4)), 1e-12)
}

func TestLerpEndpointsExact(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a, b := P(0.1, -7.3), P(13.7, 2.9)
	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	assert.True(t, Lerp(a, b, 0.5).Equal(P(6.9, -2.2)))
	// extrapolation is linear
	assert.True(t, Lerp(P(0, 0), P(10, 10), 1.5).Equal(P(15, 15)))
	assert.True(t, Lerp(P(0, 0), P(10, 10), -1).Equal(P(-10, -10)))
	rnd := rand.New(rand.NewSource(17))
	for i := 0; i < 10000; i++ {
		a := P(rnd.Float64()*400-200, rnd.Float64()*400-200)
		b := P(rnd.Float64()*400-200, rnd.Float64()*400-200)
		if l := Lerp(a, b, 0); l != a {
			t.Fatalf("Lerp(%v, %v, 0) = %v", a, b, l)
		}
		if l := Lerp(a, b, 1); l != b {
			t.Fatalf("Lerp(%v, %v, 1) = %v", a, b, l)
		}
	}
}

func TestMirror(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, P(3, 1), Mirror(P(1, 3), P(2, 2)))
	assert.Equal(t, P(2, 2), Mirror(P(2, 2), P(2, 2)))
	// must agree bit for bit with 2*center - p
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 10000; i++ {
		p := P(rnd.Float64()*400-200, rnd.Float64()*400-200)
		c := P(rnd.Float64()*400-200, rnd.Float64()*400-200)
		want := P(2*c.X()-p.X(), 2*c.Y()-p.Y())
		if m := Mirror(p, c); m != want {
			t.Fatalf("Mirror(%v, %v) = %v, want %v", p, c, m, want)
		}
	}
}

func TestPolar(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	v := Polar(2, math.Pi/2)
	assert.True(t, v.Equal(P(0, 2)), "got %v", v)
}

func TestTranslation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	if !P(1, 1).Shifted(P(-1, -1)).Equal(Origin) {
		t.Errorf("Expected (1,1) shifted (-1,-1) to be origin, is not")
	}
}

func TestCombine(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// scale first, then shift
	m := Scaling(2, 3).Combine(Translation(P(10, 20)))
	got := m.Transform(P(1, 1))
	assert.True(t, got.Equal(P(12, 23)), "got %v, transform %s", got, m)
}
