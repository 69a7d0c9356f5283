/*
Package blobfile reads and writes morph spaces and renders morph grids.

Corner blobs are exchanged as a document keyed "A" (top-left), "B"
(top-right), "C" (bottom-left), "D" (bottom-right) and "M" (middle). Each
blob lists its coordinates in separate arrays:

	{ "A": { "x": [...], "y": [...], "ctrlX1": [...], "ctrlY1": [...],
	         "ctrlX2": [...], "ctrlY2": [...] }, ... }

The outgoing controls ctrlX2/ctrlY2 are written for convenience but never
trusted on import: they are always re-derived. Documents are stored as
JSON or, more compactly, as CBOR.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package blobfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/npillmayer/morphspace/blob"
	"github.com/npillmayer/morphspace/space"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'blobfile'
func tracer() tracing.Trace {
	return tracing.Select("blobfile")
}

// ErrMalformedImportData indicates an import document with missing arrays,
// arrays of mismatched length or invalid numbers.
var ErrMalformedImportData = errors.New("malformed import data")

// Format selects an encoding.
type Format int

// Supported encodings.
const (
	JSON Format = iota
	CBOR
)

// FormatFor derives the encoding from a file name extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".cbor":
		return CBOR, nil
	}
	return JSON, fmt.Errorf("unknown file format %q", filepath.Ext(path))
}

// BlobData is the exchange form of one blob.
type BlobData struct {
	X      []float64 `json:"x" cbor:"x"`
	Y      []float64 `json:"y" cbor:"y"`
	CtrlX1 []float64 `json:"ctrlX1" cbor:"ctrlX1"`
	CtrlY1 []float64 `json:"ctrlY1" cbor:"ctrlY1"`
	CtrlX2 []float64 `json:"ctrlX2,omitempty" cbor:"ctrlX2,omitempty"`
	CtrlY2 []float64 `json:"ctrlY2,omitempty" cbor:"ctrlY2,omitempty"`
}

// Document is the exchange form of a morph space.
type Document struct {
	A *BlobData `json:"A,omitempty" cbor:"A,omitempty"`
	B *BlobData `json:"B,omitempty" cbor:"B,omitempty"`
	C *BlobData `json:"C,omitempty" cbor:"C,omitempty"`
	D *BlobData `json:"D,omitempty" cbor:"D,omitempty"`
	M *BlobData `json:"M,omitempty" cbor:"M,omitempty"`
}

func (doc *Document) corners() [4]*BlobData {
	return [4]*BlobData{doc.A, doc.B, doc.C, doc.D}
}

// NewBlobData converts a blob, including its reconstructed outgoing controls.
func NewBlobData(c *blob.Curve) *BlobData {
	n := c.N()
	bd := &BlobData{
		X: make([]float64, n), Y: make([]float64, n),
		CtrlX1: make([]float64, n), CtrlY1: make([]float64, n),
		CtrlX2: make([]float64, n), CtrlY2: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		bd.X[i], bd.Y[i] = c.Z(i).F()
		bd.CtrlX1[i], bd.CtrlY1[i] = c.ControlIn(i).F()
		bd.CtrlX2[i], bd.CtrlY2[i] = c.ControlOut(i).F()
	}
	return bd
}

// Curve validates the data and converts it to a blob.
func (bd *BlobData) Curve() (*blob.Curve, error) {
	switch {
	case bd.X == nil:
		return nil, fmt.Errorf("%w: missing array x", ErrMalformedImportData)
	case bd.Y == nil:
		return nil, fmt.Errorf("%w: missing array y", ErrMalformedImportData)
	case bd.CtrlX1 == nil:
		return nil, fmt.Errorf("%w: missing array ctrlX1", ErrMalformedImportData)
	case bd.CtrlY1 == nil:
		return nil, fmt.Errorf("%w: missing array ctrlY1", ErrMalformedImportData)
	}
	n := len(bd.X)
	for _, derived := range [][]float64{bd.CtrlX2, bd.CtrlY2} {
		if derived != nil && len(derived) != n {
			return nil, fmt.Errorf("%w: outgoing controls of length %d, expected %d",
				ErrMalformedImportData, len(derived), n)
		}
	}
	for _, arr := range [][]float64{bd.X, bd.Y, bd.CtrlX1, bd.CtrlY1} {
		for _, v := range arr {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: invalid coordinate %g", ErrMalformedImportData, v)
			}
		}
	}
	c, err := blob.FromCoordinates(bd.X, bd.Y, bd.CtrlX1, bd.CtrlY1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedImportData, err)
	}
	return c, nil
}

// Corners validates all corner blobs of a document and converts them.
// Either all corners convert or an error is returned.
func (doc *Document) Corners() ([4]*blob.Curve, error) {
	var corners [4]*blob.Curve
	n, count := 0, 0
	for i, bd := range doc.corners() {
		if bd == nil {
			continue
		}
		c, err := bd.Curve()
		if err != nil {
			return corners, fmt.Errorf("blob %s: %w", blob.Corner(i).Key(), err)
		}
		if count > 0 && c.N() != n {
			return corners, fmt.Errorf("%w: blob %s has %d points, expected %d: %w",
				ErrMalformedImportData, blob.Corner(i).Key(), c.N(), n, blob.ErrDimensionMismatch)
		}
		n = c.N()
		corners[i] = c
		count++
	}
	if count == 0 {
		return corners, fmt.Errorf("%w: document contains no corner blobs", ErrMalformedImportData)
	}
	return corners, nil
}

// N returns the point count of the first corner blob present, or 0.
func (doc *Document) N() int {
	for _, bd := range doc.corners() {
		if bd != nil {
			return len(bd.X)
		}
	}
	return 0
}

// FromSpace exports all corners of s. The middle blob is added if the space
// is complete.
func FromSpace(s *space.Space) *Document {
	doc := &Document{}
	snap := s.Snapshot()
	slots := [4]**BlobData{&doc.A, &doc.B, &doc.C, &doc.D}
	for i, c := range snap {
		if c != nil {
			*slots[i] = NewBlobData(c)
		}
	}
	if m, err := s.Middle(); err == nil {
		doc.M = NewBlobData(m)
	}
	return doc
}

// LoadInto validates a document and replaces the corners of s with its blobs.
// s is left untouched if the document is malformed.
func LoadInto(s *space.Space, doc *Document) error {
	corners, err := doc.Corners()
	if err != nil {
		tracer().Errorf("rejected import: %v", err)
		return err
	}
	return s.Load(corners)
}

// Decode parses a document.
func Decode(data []byte, format Format) (*Document, error) {
	doc := &Document{}
	var err error
	switch format {
	case CBOR:
		err = cbor.Unmarshal(data, doc)
	default:
		err = json.Unmarshal(data, doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImportData, err)
	}
	return doc, nil
}

// Encode serializes a document. pretty indents JSON output.
func Encode(doc *Document, format Format, pretty bool) ([]byte, error) {
	switch format {
	case CBOR:
		return cbor.Marshal(doc)
	}
	if pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// ReadFile reads a document, choosing the format by file extension.
func ReadFile(path string) (*Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tracer().Infof("read %s with %d points per blob", path, doc.N())
	return doc, nil
}

// WriteFile writes a document, choosing the format by file extension.
func WriteFile(path string, doc *Document) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Encode(doc, format, true)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
