package blobfile

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/npillmayer/morphspace"
	"github.com/npillmayer/morphspace/blob"
	"github.com/npillmayer/morphspace/config"
	"github.com/npillmayer/morphspace/polygon"
	"github.com/npillmayer/morphspace/space"
)

// RasterOptions configures rendering of morph grids.
type RasterOptions struct {
	CellSize   int         // pixels per cell, cells are square
	Fill       color.Color // blob fill
	Background color.Color
	Text       color.Color // weight labels
	Labels     bool        // print weights into each cell
	Fit        bool        // scale all blobs to fit into their cells
	Flatness   float64     // flattening tolerance for fitting
	Quality    int         // JPEG quality
}

// RasterOptionsFrom derives raster options from a configuration.
func RasterOptionsFrom(conf *config.Config) RasterOptions {
	return RasterOptions{
		CellSize:   conf.CellSize,
		Fill:       conf.FillColor(),
		Background: conf.BackgroundColor(),
		Text:       conf.StrokeColor(),
		Labels:     conf.Labels,
		Flatness:   conf.Flatness,
		Quality:    conf.Quality,
	}
}

// fitMargin is the fraction of a cell left free on each side when fitting.
const fitMargin = 0.05

// RenderGrid draws every blob of a morph grid into its cell. Cell (row, col)
// covers the pixels from (col*CellSize, row*CellSize). Blob coordinates are
// cell-local unless Fit is set.
func RenderGrid(g *space.Grid, opts RasterOptions) (*image.RGBA, error) {
	if opts.CellSize <= 0 {
		return nil, fmt.Errorf("cell size must be positive, is %d", opts.CellSize)
	}
	size := opts.CellSize
	img := image.NewRGBA(image.Rect(0, 0, g.StepsX*size, g.StepsY*size))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	place := morphspace.Identity()
	if opts.Fit {
		place = fitTransform(g, opts)
	}
	fill := image.NewUniform(opts.Fill)
	var wg sync.WaitGroup
	for row := 0; row < g.StepsY; row++ {
		wg.Add(1)
		go func(row int) { // cells of a row cover disjoint pixels
			defer wg.Done()
			r := vector.NewRasterizer(size, size)
			for col := 0; col < g.StepsX; col++ {
				cell := g.At(row, col)
				r.Reset(size, size)
				addBlob(r, cell.Blob.Transformed(place))
				rect := image.Rect(col*size, row*size, (col+1)*size, (row+1)*size)
				r.Draw(img, rect, fill, image.Point{})
			}
		}(row)
	}
	wg.Wait()
	if opts.Labels {
		if err := drawLabels(img, g, opts); err != nil {
			return nil, err
		}
	}
	tracer().Infof("rendered %dx%d grid into %v", g.StepsX, g.StepsY, img.Bounds().Size())
	return img, nil
}

// addBlob appends the closed bezier path of c to the rasterizer.
func addBlob(r *vector.Rasterizer, c *blob.Curve) {
	x, y := c.Z(0).F()
	r.MoveTo(float32(x), float32(y))
	for i := 0; i < c.N(); i++ {
		_, p1, p2, p3 := c.Segment(i)
		r.CubeTo(float32(p1.X()), float32(p1.Y()), float32(p2.X()), float32(p2.Y()),
			float32(p3.X()), float32(p3.Y()))
	}
	r.ClosePath()
}

// fitTransform maps the common bounding box of all blobs of a grid into a
// cell, keeping the aspect ratio.
func fitTransform(g *space.Grid, opts RasterOptions) morphspace.AT {
	var ll, ur morphspace.Pair
	for i, cell := range g.Cells {
		l, u := polygon.FromBlob(cell.Blob, opts.Flatness).BoundingBox()
		if i == 0 {
			ll, ur = l, u
			continue
		}
		ll = morphspace.P(min(ll.X(), l.X()), min(ll.Y(), l.Y()))
		ur = morphspace.P(max(ur.X(), u.X()), max(ur.Y(), u.Y()))
	}
	w, h := ur.X()-ll.X(), ur.Y()-ll.Y()
	if w <= 0 || h <= 0 {
		return morphspace.Identity()
	}
	avail := float64(opts.CellSize) * (1 - 2*fitMargin)
	scale := min(avail/w, avail/h)
	offset := morphspace.P(
		(float64(opts.CellSize)-w*scale)/2,
		(float64(opts.CellSize)-h*scale)/2,
	)
	return morphspace.Translation(-ll).Combine(morphspace.Scaling(scale, scale)).
		Combine(morphspace.Translation(offset))
}

func drawLabels(img *image.RGBA, g *space.Grid, opts RasterOptions) error {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	fontSize := max(8, float64(opts.CellSize)/30)
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: fontSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return err
	}
	defer face.Close()
	d := &font.Drawer{Dst: img, Src: image.NewUniform(opts.Text), Face: face}
	pad := int(fontSize / 2)
	for _, cell := range g.Cells {
		d.Dot = fixed.P(cell.Col*opts.CellSize+pad, (cell.Row+1)*opts.CellSize-pad)
		d.DrawString(fmt.Sprintf("%.2f / %.2f", cell.WeightX, cell.WeightY))
	}
	return nil
}

// EncodeImage writes img as PNG, or as JPEG if jpg is set.
func EncodeImage(w io.Writer, img image.Image, jpg bool, quality int) error {
	if jpg {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	}
	return png.Encode(w, img)
}

// IsJPEG is a predicate: does path name a JPEG file?
func IsJPEG(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".jpg" || ext == ".jpeg"
}
