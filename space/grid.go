package space

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/npillmayer/morphspace/blob"
)

// Cell is one sample of a morph grid.
type Cell struct {
	Row, Col int
	WeightX  float64
	WeightY  float64
	Blob     *blob.Curve
}

// Grid is a regular sampling of a morph space, cells stored row by row.
type Grid struct {
	StepsX, StepsY int
	Cells          []Cell
}

// At returns the cell in row and column.
func (g *Grid) At(row, col int) Cell {
	return g.Cells[row*g.StepsX+col]
}

// Weight returns the weight of step i out of steps, spreading the steps
// evenly over [0,1]. A single step sits at weight 0.
func Weight(i, steps int) float64 {
	if steps <= 1 {
		return 0
	}
	return float64(i) / float64(steps-1)
}

// Sweep samples the morph space on a grid of stepsX columns and stepsY rows.
// Rows are computed concurrently; the result is ordered by row and column
// regardless.
func (s *Space) Sweep(stepsX, stepsY int) (*Grid, error) {
	if stepsX < 1 || stepsY < 1 {
		return nil, fmt.Errorf("grid must have at least 1x1 cells, requested %dx%d", stepsX, stepsY)
	}
	tl, tr, bl, br, err := s.complete()
	if err != nil {
		return nil, err
	}
	// fail early, before spawning workers
	if _, err := blob.Morph2D(tl, tr, bl, br, 0, 0); err != nil {
		return nil, err
	}
	g, err := sweep(stepsX, stepsY, func(wx, wy float64) (*blob.Curve, error) {
		return sample(tl, tr, bl, br, wx, wy)
	})
	if err != nil {
		return nil, err
	}
	tracer().Infof("swept morph space on a %dx%d grid", stepsX, stepsY)
	return g, nil
}

// sweep fills a grid by calling at for every cell, distributing rows over
// a pool of workers. The first failing row aborts the sweep.
func sweep(stepsX, stepsY int, at func(wx, wy float64) (*blob.Curve, error)) (*Grid, error) {
	g := &Grid{StepsX: stepsX, StepsY: stepsY, Cells: make([]Cell, stepsX*stepsY)}
	rowErrs := make([]error, stepsY)
	rows := make(chan int)
	var wg sync.WaitGroup
	workers := min(runtime.GOMAXPROCS(0), stepsY)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range rows {
				wy := Weight(j, stepsY)
				for i := 0; i < stepsX; i++ {
					wx := Weight(i, stepsX)
					m, err := at(wx, wy)
					if err != nil {
						rowErrs[j] = fmt.Errorf("grid cell %d/%d: %w", j, i, err)
						break
					}
					g.Cells[j*stepsX+i] = Cell{Row: j, Col: i, WeightX: wx, WeightY: wy, Blob: m}
				}
			}
		}()
	}
	for j := 0; j < stepsY; j++ {
		rows <- j
	}
	close(rows)
	wg.Wait()
	for _, err := range rowErrs {
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

// snapshot returns a copy of c with reconstructed outgoing controls.
func snapshot(c *blob.Curve) *blob.Curve {
	c = c.Clone()
	c.ReconstructControlsOut()
	return c
}
