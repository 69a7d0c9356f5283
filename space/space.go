/*
Package space holds the state of a morph space: four corner blobs, of
which the bottom-right one is derived, and an optional preview position.

A Space serializes all mutations. Readers always receive copies of fully
reconstructed blobs, never the corner blobs themselves, so they may use
them concurrently with further edits.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package space

import (
	"errors"
	"fmt"
	"sync"

	"github.com/npillmayer/morphspace"
	"github.com/npillmayer/morphspace/blob"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'space'
func tracer() tracing.Trace {
	return tracing.Select("space")
}

var (
	// ErrEmptyCorner indicates an operation on a corner which holds no blob.
	ErrEmptyCorner = errors.New("corner is empty")
	// ErrDerivedCorner indicates an edit of the bottom-right corner while it
	// is derived from top-right and bottom-left.
	ErrDerivedCorner = errors.New("corner is derived and cannot be edited")
	// ErrIncomplete indicates a morph request while not all corners are set.
	ErrIncomplete = errors.New("morph space needs all four corners")
)

// Space is a morph space spanned by four corner blobs.
// The zero value is an empty space, ready to use.
type Space struct {
	mu       sync.RWMutex
	corners  [4]*blob.Curve
	preview  bool
	previewX float64
	previewY float64
}

// New creates an empty morph space.
func New() *Space {
	return &Space{}
}

// N returns the point count shared by all corners, or 0 for an empty space.
func (s *Space) N() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.n()
}

func (s *Space) n() int {
	for _, c := range s.corners {
		if c != nil {
			return c.N()
		}
	}
	return 0
}

// Has is a predicate: does corner hold a blob?
func (s *Space) Has(corner blob.Corner) bool {
	if !corner.IsValid() {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.corners[corner] != nil
}

func checkCorner(corner blob.Corner) error {
	if !corner.IsValid() {
		return fmt.Errorf("%w: %s", blob.ErrUnknownCorner, corner)
	}
	return nil
}

// IsDerived is a predicate: is the bottom-right corner spliced from
// top-right and bottom-left?
func (s *Space) IsDerived() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isDerived()
}

func (s *Space) isDerived() bool {
	return s.corners[blob.TopRight] != nil && s.corners[blob.BottomLeft] != nil
}

// Corner returns a reconstructed copy of a corner blob.
func (s *Space) Corner(corner blob.Corner) (*blob.Curve, error) {
	if err := checkCorner(corner); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.corners[corner]
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCorner, corner)
	}
	return snapshot(c), nil
}

// Snapshot returns reconstructed copies of all corners; empty corners are nil.
func (s *Space) Snapshot() [4]*blob.Curve {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var snap [4]*blob.Curve
	for i, c := range s.corners {
		if c != nil {
			snap[i] = snapshot(c)
		}
	}
	return snap
}

// CreateReference starts a new morph space from 2*N captured points, the
// first N being anchors and the rest controls. The result becomes the
// top-left blob; all other corners are cleared.
func (s *Space) CreateReference(clicks []morphspace.Pair) error {
	ref, err := blob.FromClicks(clicks)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corners = [4]*blob.Curve{ref}
	s.preview = false
	tracer().Infof("created reference blob with %d anchors", ref.N())
	return nil
}

// FinishReference copies the top-left blob into the top-right and
// bottom-left corners, which derives the bottom-right corner.
func (s *Space) FinishReference() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref := s.corners[blob.TopLeft]
	if ref == nil {
		return fmt.Errorf("%w: %s", ErrEmptyCorner, blob.TopLeft)
	}
	s.corners[blob.TopRight] = ref.Clone()
	s.corners[blob.BottomLeft] = ref.Clone()
	return s.derive()
}

// SetCorner stores a copy of c in a corner. The point count has to match
// the other corners. The bottom-right corner may only be set while it is
// not derived.
func (s *Space) SetCorner(corner blob.Corner, c *blob.Curve) error {
	if c == nil {
		return blob.ErrNilCurve
	}
	if err := checkCorner(corner); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if corner == blob.BottomRight && s.isDerived() {
		return fmt.Errorf("%w: %s", ErrDerivedCorner, corner)
	}
	for i, other := range s.corners {
		if other != nil && blob.Corner(i) != corner && other.N() != c.N() {
			return fmt.Errorf("%w: %s has %d points, %s has %d", blob.ErrDimensionMismatch,
				corner, c.N(), blob.Corner(i), other.N())
		}
	}
	s.corners[corner] = c.Clone()
	return s.derive()
}

// Load replaces all corners at once. A nil entry clears a corner. Nothing is
// changed if the corners do not share a point count, or if a bottom-right
// blob is given together with top-right and bottom-left (it is re-derived
// then and the given one is ignored).
func (s *Space) Load(corners [4]*blob.Curve) error {
	n := -1
	var loaded [4]*blob.Curve
	for i, c := range corners {
		if c == nil {
			continue
		}
		if n >= 0 && c.N() != n {
			return fmt.Errorf("%w: %s has %d points, expected %d", blob.ErrDimensionMismatch,
				blob.Corner(i), c.N(), n)
		}
		n = c.N()
		loaded[i] = c.Clone()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corners = loaded
	s.preview = false
	tracer().Infof("loaded morph space with %d points per blob", s.n())
	return s.derive()
}

// Move sets a point of a corner blob, as done by dragging it.
func (s *Space) Move(corner blob.Corner, pt blob.PointType, i int, p morphspace.Pair) error {
	return s.edit(corner, func(c *blob.Curve) error {
		return c.Move(pt, i, p)
	})
}

// Distort perturbs incoming control i of a corner blob by magnitude in
// direction angle.
func (s *Space) Distort(corner blob.Corner, i int, angle, magnitude float64) error {
	return s.edit(corner, func(c *blob.Curve) error {
		return c.Perturb(i, angle, magnitude)
	})
}

// edit applies f to a copy of a corner blob and installs the copy only if f
// succeeds.
func (s *Space) edit(corner blob.Corner, f func(*blob.Curve) error) error {
	if err := checkCorner(corner); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if corner == blob.BottomRight && s.isDerived() {
		return fmt.Errorf("%w: %s", ErrDerivedCorner, corner)
	}
	c := s.corners[corner]
	if c == nil {
		return fmt.Errorf("%w: %s", ErrEmptyCorner, corner)
	}
	c = c.Clone()
	if err := f(c); err != nil {
		return err
	}
	s.corners[corner] = c
	return s.derive()
}

// derive splices the bottom-right corner from bottom-left and top-right.
// Must be called with the write lock held.
func (s *Space) derive() error {
	if !s.isDerived() {
		return nil
	}
	d, err := blob.Splice(s.corners[blob.BottomLeft], s.corners[blob.TopRight])
	if err != nil {
		return err
	}
	s.corners[blob.BottomRight] = d
	tracer().Debugf("derived %s corner", blob.BottomRight)
	return nil
}

// Sample returns the blob at weights (weightX, weightY) of the morph space,
// with reconstructed outgoing controls.
func (s *Space) Sample(weightX, weightY float64) (*blob.Curve, error) {
	tl, tr, bl, br, err := s.complete()
	if err != nil {
		return nil, err
	}
	return sample(tl, tr, bl, br, weightX, weightY)
}

func sample(tl, tr, bl, br *blob.Curve, wx, wy float64) (*blob.Curve, error) {
	m, err := blob.Morph2D(tl, tr, bl, br, wx, wy)
	if err != nil {
		return nil, err
	}
	m.ReconstructControlsOut()
	return m, nil
}

// SetPreview moves the preview position. Weights are clamped to [0,1].
func (s *Space) SetPreview(weightX, weightY float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preview = true
	s.previewX = morphspace.Clamp01(weightX)
	s.previewY = morphspace.Clamp01(weightY)
}

// ClearPreview ends previewing; the middle blob returns to the centre.
func (s *Space) ClearPreview() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preview = false
}

// PreviewWeights returns the weights the middle blob is sampled at.
func (s *Space) PreviewWeights() (float64, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.preview {
		return 0.5, 0.5
	}
	return s.previewX, s.previewY
}

// Middle returns the middle blob: the centre of the morph space, or the
// blob at the preview position while previewing.
func (s *Space) Middle() (*blob.Curve, error) {
	wx, wy := s.PreviewWeights()
	return s.Sample(wx, wy)
}

// complete returns copies of all four corners, or an error if one is missing.
func (s *Space) complete() (tl, tr, bl, br *blob.Curve, err error) {
	snap := s.Snapshot()
	for i, c := range snap {
		if c == nil {
			return nil, nil, nil, nil, fmt.Errorf("%w: %s is empty", ErrIncomplete, blob.Corner(i))
		}
	}
	return snap[0], snap[1], snap[2], snap[3], nil
}
