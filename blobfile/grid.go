package blobfile

import (
	"encoding/json"
	"io"

	"github.com/npillmayer/morphspace/space"
)

// GridCell is the exchange form of one morph grid sample.
type GridCell struct {
	Row     int       `json:"row"`
	Col     int       `json:"col"`
	WeightX float64   `json:"weightX"`
	WeightY float64   `json:"weightY"`
	Blob    *BlobData `json:"blob"`
}

// GridDocument is the exchange form of a morph grid.
type GridDocument struct {
	StepsX int        `json:"stepsX"`
	StepsY int        `json:"stepsY"`
	Cells  []GridCell `json:"cells"`
}

// NewGridDocument converts a morph grid.
func NewGridDocument(g *space.Grid) *GridDocument {
	gd := &GridDocument{StepsX: g.StepsX, StepsY: g.StepsY, Cells: make([]GridCell, len(g.Cells))}
	for i, c := range g.Cells {
		gd.Cells[i] = GridCell{
			Row:     c.Row,
			Col:     c.Col,
			WeightX: c.WeightX,
			WeightY: c.WeightY,
			Blob:    NewBlobData(c.Blob),
		}
	}
	return gd
}

// WriteGridJSON writes a morph grid as indented JSON.
func WriteGridJSON(w io.Writer, g *space.Grid) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewGridDocument(g))
}
