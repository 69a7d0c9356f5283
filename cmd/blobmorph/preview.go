package main

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/gdamore/tcell/v2"

	"github.com/npillmayer/morphspace"
	"github.com/npillmayer/morphspace/blob"
	"github.com/npillmayer/morphspace/blobfile"
	"github.com/npillmayer/morphspace/config"
	"github.com/npillmayer/morphspace/polygon"
	"github.com/npillmayer/morphspace/space"
)

const sidebarWidth = 44

// Styles
var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorWhite)
	styleSidebar = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleSideH   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// viewport maps world coordinates of blobs onto terminal cells. Terminal
// cells are about twice as tall as wide.
type viewport struct {
	origin morphspace.Pair // world point at the top-left of cell (0,0)
	scale  float64         // world units per cell column
	cols   int
	rows   int
}

const cellAspect = 2.0

// fitViewport chooses a viewport showing the box ll-ur on cols x rows cells.
func fitViewport(ll, ur morphspace.Pair, cols, rows int) viewport {
	v := viewport{origin: ll, scale: 1, cols: cols, rows: rows}
	if cols <= 0 || rows <= 0 {
		return v
	}
	w, h := ur.X()-ll.X(), ur.Y()-ll.Y()
	v.scale = math.Max(w/float64(cols), h/(float64(rows)*cellAspect))
	if v.scale <= 0 {
		v.scale = 1
	}
	// centre the box
	v.origin = ll.Shifted(-morphspace.P(
		(float64(cols)*v.scale-w)/2,
		(float64(rows)*v.scale*cellAspect-h)/2,
	))
	return v
}

// center returns the world point at the centre of cell (col, row).
func (v viewport) center(col, row int) morphspace.Pair {
	return v.origin.Shifted(morphspace.P(
		(float64(col)+0.5)*v.scale,
		(float64(row)+0.5)*v.scale*cellAspect,
	))
}

// cell returns the cell containing world point p.
func (v viewport) cell(p morphspace.Pair) (col, row int) {
	d := p - v.origin
	return int(math.Floor(d.X() / v.scale)), int(math.Floor(d.Y() / (v.scale * cellAspect)))
}

// coverage returns, for every cell of v, whether its centre lies inside pg.
func coverage(pg *polygon.Polygon, v viewport) [][]bool {
	cov := make([][]bool, v.rows)
	for row := range cov {
		cov[row] = make([]bool, v.cols)
		for col := range cov[row] {
			cov[row][col] = pg.Contains(v.center(col, row))
		}
	}
	return cov
}

// Previewer explores a morph space in the terminal.
type Previewer struct {
	screen  tcell.Screen
	space   *space.Space
	conf    *config.Config
	file    string
	wx, wy  float64
	corner  blob.Corner // corner to distort
	message string
	ll, ur  morphspace.Pair // world box shown
}

func cmdPreview(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}
	s, err := loadSpace(opts)
	if err != nil {
		return err
	}
	if _, err := s.Middle(); err != nil {
		return err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	p := &Previewer{screen: screen, space: s, conf: opts.conf, file: opts.input,
		wx: 0.5, wy: 0.5, corner: blob.TopRight}
	p.updateBox()
	return p.run()
}

func (p *Previewer) run() error {
	p.space.SetPreview(p.wx, p.wy)
	for {
		p.draw()
		switch ev := p.screen.PollEvent().(type) {
		case *tcell.EventResize:
			p.screen.Sync()
		case *tcell.EventKey:
			if quit := p.handleKey(ev); quit {
				return nil
			}
		case *tcell.EventMouse:
			p.handleMouse(ev)
		}
	}
}

func (p *Previewer) handleKey(ev *tcell.EventKey) bool {
	step := p.conf.MorphSpeed
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		p.wx -= step
	case tcell.KeyRight:
		p.wx += step
	case tcell.KeyUp:
		p.wy -= step
	case tcell.KeyDown:
		p.wy += step
	case tcell.KeyTab:
		// bottom-right is derived and cannot be distorted
		p.corner = (p.corner + 1) % blob.BottomRight
		p.message = fmt.Sprintf("distorting %s", p.corner)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'd':
			p.distort()
		case 'r':
			p.wx, p.wy = 0.5, 0.5
		case 's':
			p.save()
		}
	}
	p.wx, p.wy = morphspace.Clamp01(p.wx), morphspace.Clamp01(p.wy)
	p.space.SetPreview(p.wx, p.wy)
	return false
}

// handleMouse maps the pointer position over the canvas to weights.
func (p *Previewer) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	w, h := p.canvasSize()
	if x >= w || y >= h || w < 2 || h < 2 {
		return
	}
	p.wx = morphspace.Clamp01(float64(x) / float64(w-1))
	p.wy = morphspace.Clamp01(float64(y) / float64(h-1))
	p.space.SetPreview(p.wx, p.wy)
}

func (p *Previewer) distort() {
	i := rand.Intn(p.space.N())
	angle := rand.Float64() * 2 * math.Pi
	if err := p.space.Distort(p.corner, i, angle, p.conf.DistortionAmount); err != nil {
		p.message = err.Error()
		return
	}
	p.updateBox()
	p.message = fmt.Sprintf("distorted control %d of %s", i, p.corner)
}

func (p *Previewer) save() {
	if err := blobfile.WriteFile(p.file, blobfile.FromSpace(p.space)); err != nil {
		p.message = err.Error()
		return
	}
	p.message = "saved " + p.file
}

// updateBox recomputes the world box containing all corner blobs. Bilinear
// blends stay within it, so the view does not jump while morphing.
func (p *Previewer) updateBox() {
	first := true
	for _, c := range p.space.Snapshot() {
		if c == nil {
			continue
		}
		ll, ur := polygon.FromBlob(c, p.conf.Flatness).BoundingBox()
		if first {
			p.ll, p.ur, first = ll, ur, false
			continue
		}
		p.ll = morphspace.P(min(p.ll.X(), ll.X()), min(p.ll.Y(), ll.Y()))
		p.ur = morphspace.P(max(p.ur.X(), ur.X()), max(p.ur.Y(), ur.Y()))
	}
}

func (p *Previewer) canvasSize() (int, int) {
	w, h := p.screen.Size()
	return max(w-sidebarWidth-1, 0), max(h-1, 0)
}

func (p *Previewer) draw() {
	p.screen.Clear()
	w, h := p.screen.Size()
	cw, ch := p.canvasSize()
	m, err := p.space.Middle()
	if err != nil {
		p.message = err.Error()
	} else {
		p.drawBlob(m, cw, ch)
	}
	for y := 0; y < h-1; y++ {
		p.screen.SetContent(cw, y, '│', nil, styleBorder)
	}
	p.drawSidebar(m, cw+2, w)
	p.drawStatus(w, h)
	p.screen.Show()
}

func (p *Previewer) drawBlob(m *blob.Curve, cw, ch int) {
	if cw <= 0 || ch <= 0 {
		return
	}
	v := fitViewport(p.ll, p.ur, cw, ch)
	fill := tcell.StyleDefault.Foreground(tcellColor(p.conf.FillColor()))
	cov := coverage(polygon.FromBlob(m, p.conf.Flatness), v)
	for row := range cov {
		for col, in := range cov[row] {
			if in {
				p.screen.SetContent(col, row, '█', nil, fill)
			}
		}
	}
	anchor := p.pointStyle(p.conf.Styles.Anchor)
	control := p.pointStyle(p.conf.Styles.Control)
	for _, hp := range blob.Highlight(m, blob.TopLeft) {
		col, row := v.cell(hp.Pos)
		if col < 0 || row < 0 || col >= cw || row >= ch {
			continue
		}
		if hp.Type == blob.Anchor {
			p.screen.SetContent(col, row, 'o', nil, anchor)
		} else {
			p.screen.SetContent(col, row, '+', nil, control)
		}
	}
}

func (p *Previewer) pointStyle(s string) tcell.Style {
	c, err := config.ParseColor(s)
	if err != nil {
		return styleDefault
	}
	return tcell.StyleDefault.Foreground(tcellColor(c)).Bold(true)
}

func (p *Previewer) drawSidebar(m *blob.Curve, x, w int) {
	y := 0
	p.drawText(x, y, w, "Morph preview", styleTitle)
	y += 2
	p.drawText(x, y, w, fmt.Sprintf("weightX %.2f   weightY %.2f", p.wx, p.wy), styleSidebar)
	y++
	p.drawText(x, y, w, fmt.Sprintf("distort: %s (%s)", p.corner.Key(), p.corner), styleSidebar)
	y += 2
	if m != nil {
		p.drawText(x, y, w, "Points", styleSideH)
		y++
		for _, line := range blob.PointInfo(m, -1) {
			p.drawText(x, y, w, line, styleSidebar)
			y++
		}
	}
	y++
	for _, help := range []string{
		"arrows/mouse  move weights",
		"tab           select corner",
		"d             distort control",
		"r             reset to centre",
		"s             save",
		"q             quit",
	} {
		p.drawText(x, y, w, help, styleHelp)
		y++
	}
}

func (p *Previewer) drawStatus(w, h int) {
	for x := 0; x < w; x++ {
		p.screen.SetContent(x, h-1, ' ', nil, styleStatus)
	}
	p.drawText(0, h-1, w, " "+p.file+"  "+p.message, styleStatus)
}

func (p *Previewer) drawText(x, y, maxX int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= maxX {
			return
		}
		p.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func tcellColor(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
