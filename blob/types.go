package blob

import (
	"errors"

	"github.com/npillmayer/morphspace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'blob'
func tracer() tracing.Trace {
	return tracing.Select("blob")
}

// MinAnchors is the smallest number of anchors a closed blob may have.
const MinAnchors = 3

var (
	// ErrDimensionMismatch indicates point sequences or curves of differing length.
	ErrDimensionMismatch = errors.New("point count mismatch")
	// ErrTooFewAnchors indicates a curve with fewer than MinAnchors anchors.
	ErrTooFewAnchors = errors.New("curve has too few anchors")
	// ErrIndexOutOfRange indicates a point index outside [0,N).
	ErrIndexOutOfRange = errors.New("point index out of range")
	// ErrUnknownCorner indicates a Corner value outside TopLeft..BottomRight.
	ErrUnknownCorner = errors.New("unknown corner")
	// ErrNilCurve indicates a nil curve pointer.
	ErrNilCurve = errors.New("curve must not be nil")
)

// Curve is a closed cubic bezier shape, called a blob.
//
// Segment i runs from anchor i to anchor i+1 (mod N), with controlsIn[i] as its
// first and controlsOut[i] as its second bezier handle. Anchors and incoming
// controls are authoritative. Outgoing controls are derived by mirroring
// (see ReconstructControlsOut) and are never set directly.
//
// A Curve is not safe for concurrent use: reading outgoing controls of a
// stale curve reconstructs them in place.
type Curve struct {
	anchors     []morphspace.Pair // anchor i, on the curve
	controlsIn  []morphspace.Pair // first handle of segment i, user-editable
	controlsOut []morphspace.Pair // second handle of segment i, derived
	stale       bool              // controlsOut needs reconstruction
}

// PointType distinguishes the two kinds of editable points of a blob.
type PointType int8

// Editable point types.
const (
	Anchor PointType = iota
	Control
)

func (pt PointType) String() string {
	switch pt {
	case Anchor:
		return "anchor"
	case Control:
		return "control"
	}
	return "unknown"
}
