// Command blobmorph is a CLI tool for working with blob morph spaces.
package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/morphspace"
	"github.com/npillmayer/morphspace/blob"
	"github.com/npillmayer/morphspace/blobfile"
	"github.com/npillmayer/morphspace/config"
	"github.com/npillmayer/morphspace/polygon"
	"github.com/npillmayer/morphspace/space"
	"github.com/npillmayer/schuko/tracing"
)

const usage = `blobmorph - blob morph space toolkit

Usage:
  blobmorph <command> [options]

Commands:
  new        Create a morph space from a reference blob
  info       Show corner blobs and how much they overlap
  sample     Print the blob at given weights
  grid       Render the morph grid as PNG or JPEG
  export     Write the morph grid as JSON
  convert    Convert between formats (json, cbor)
  move       Move a point of a corner blob
  distort    Perturb a control point of a corner blob
  preview    Explore the morph space interactively

Examples:
  blobmorph new --anchors 0,0,100,0,50,100 --controls 10,10,90,10,50,90 -o blobs.json
  blobmorph distort blobs.json --corner B --index 1
  blobmorph grid blobs.json -o morph-grid.jpg --x 20 --y 3
  blobmorph sample blobs.json --wx 0.25 --wy 0.5
  blobmorph convert blobs.json -o blobs.cbor

Every command accepts -c <config.yaml>.
`

var traceKeys = []string{"morphspace", "blob", "polygon", "space", "blobfile"}

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "new":
		err = cmdNew(args)
	case "info":
		err = cmdInfo(args)
	case "sample":
		err = cmdSample(args)
	case "grid":
		err = cmdGrid(args)
	case "export":
		err = cmdExport(args)
	case "convert":
		err = cmdConvert(args)
	case "move":
		err = cmdMove(args)
	case "distort":
		err = cmdDistort(args)
	case "preview":
		err = cmdPreview(args)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the positional argument and the flags of a command.
type options struct {
	input string
	flags map[string]string
	conf  *config.Config
}

// parseArgs collects "--name value" pairs and switches listed in bools.
// The first argument not starting with '-' is the input file.
func parseArgs(args []string, bools ...string) (*options, error) {
	opts := &options{flags: make(map[string]string)}
	isBool := func(name string) bool {
		for _, b := range bools {
			if b == name {
				return true
			}
		}
		return false
	}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			if opts.input == "" {
				opts.input = arg
				continue
			}
			return nil, fmt.Errorf("unexpected argument %q", arg)
		}
		name := strings.TrimLeft(arg, "-")
		if isBool(name) {
			opts.flags[name] = "true"
			continue
		}
		if i+1 >= len(args) {
			return nil, fmt.Errorf("missing value for %s", arg)
		}
		opts.flags[name] = args[i+1]
		i++
	}
	conf, err := config.Load(opts.get("c", "config"))
	if err != nil {
		return nil, err
	}
	opts.conf = conf
	setupTracing(conf)
	return opts, nil
}

func (opts *options) get(names ...string) string {
	for _, n := range names {
		if v, ok := opts.flags[n]; ok {
			return v
		}
	}
	return ""
}

func (opts *options) has(name string) bool {
	_, ok := opts.flags[name]
	return ok
}

func (opts *options) floatFlag(name string, deflt float64) (float64, error) {
	v := opts.get(name)
	if v == "" {
		return deflt, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return f, nil
}

func (opts *options) intFlag(name string, deflt int) (int, error) {
	v := opts.get(name)
	if v == "" {
		return deflt, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return n, nil
}

func setupTracing(conf *config.Config) {
	level, err := config.ParseTraceLevel(conf.TraceLevel)
	if err != nil {
		return
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}

// loadSpace reads the input file of a command into a new morph space.
func loadSpace(opts *options) (*space.Space, error) {
	if opts.input == "" {
		return nil, fmt.Errorf("no input file given")
	}
	doc, err := blobfile.ReadFile(opts.input)
	if err != nil {
		return nil, err
	}
	s := space.New()
	if err := blobfile.LoadInto(s, doc); err != nil {
		return nil, fmt.Errorf("%s: %w", opts.input, err)
	}
	return s, nil
}

// saveSpace writes a morph space to the -o file, or back to the input file.
func saveSpace(opts *options, s *space.Space) error {
	out := opts.get("o", "output")
	if out == "" {
		out = opts.input
	}
	if err := blobfile.WriteFile(out, blobfile.FromSpace(s)); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}

func parsePairs(s string) ([]morphspace.Pair, error) {
	fields := strings.Split(s, ",")
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates in %q", s)
	}
	pairs := make([]morphspace.Pair, len(fields)/2)
	for i := range pairs {
		x, err := strconv.ParseFloat(strings.TrimSpace(fields[2*i]), 64)
		if err != nil {
			return nil, err
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(fields[2*i+1]), 64)
		if err != nil {
			return nil, err
		}
		pairs[i] = morphspace.P(x, y)
	}
	return pairs, nil
}

func cmdNew(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}
	if opts.get("o", "output") == "" {
		return fmt.Errorf("usage: blobmorph new --anchors x,y,... --controls x,y,... -o <file>")
	}
	anchors, err := parsePairs(opts.get("anchors"))
	if err != nil {
		return err
	}
	controls, err := parsePairs(opts.get("controls"))
	if err != nil {
		return err
	}
	if len(anchors) != opts.conf.NumCtrls {
		fmt.Fprintf(os.Stderr, "Note: %d anchors given, configuration expects %d\n",
			len(anchors), opts.conf.NumCtrls)
	}
	s := space.New()
	if err := s.CreateReference(append(anchors, controls...)); err != nil {
		return err
	}
	if err := s.FinishReference(); err != nil {
		return err
	}
	return saveSpace(opts, s)
}

func cmdInfo(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}
	s, err := loadSpace(opts)
	if err != nil {
		return err
	}
	fmt.Printf("File:    %s\n", opts.input)
	fmt.Printf("Points:  %d per blob\n", s.N())
	fmt.Printf("Derived: %v\n", s.IsDerived())
	snap := s.Snapshot()
	outlines := make(map[blob.Corner]*polygon.Polygon)
	for i, c := range snap {
		corner := blob.Corner(i)
		if c == nil {
			fmt.Printf("\n%s (%s): empty\n", corner.Key(), corner)
			continue
		}
		outlines[corner] = polygon.FromBlob(c, opts.conf.Flatness)
		fmt.Printf("\n%s (%s), area %.1f:\n", corner.Key(), corner, outlines[corner].Area())
		for _, line := range blob.PointInfo(c, -1) {
			fmt.Printf("  %s\n", line)
		}
	}
	if len(outlines) > 1 {
		fmt.Printf("\nOverlap (intersection / union):\n")
		for _, a := range blob.Corners {
			for _, b := range blob.Corners {
				if a >= b || outlines[a] == nil || outlines[b] == nil {
					continue
				}
				r, err := polygon.Overlap(outlines[a], outlines[b])
				if err != nil {
					return err
				}
				fmt.Printf("  %s-%s: %.3f\n", a.Key(), b.Key(), r)
			}
		}
	}
	return nil
}

func cmdSample(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}
	s, err := loadSpace(opts)
	if err != nil {
		return err
	}
	wx, err := opts.floatFlag("wx", 0.5)
	if err != nil {
		return err
	}
	wy, err := opts.floatFlag("wy", 0.5)
	if err != nil {
		return err
	}
	m, err := s.Sample(wx, wy)
	if err != nil {
		return err
	}
	fmt.Println(blob.AsString(m))
	return nil
}

// sweep samples the grid with dimensions from flags or configuration.
func sweep(opts *options, s *space.Space) (*space.Grid, error) {
	stepsX, err := opts.intFlag("x", opts.conf.GridX)
	if err != nil {
		return nil, err
	}
	stepsY, err := opts.intFlag("y", opts.conf.GridY)
	if err != nil {
		return nil, err
	}
	return s.Sweep(stepsX, stepsY)
}

func cmdGrid(args []string) error {
	opts, err := parseArgs(args, "labels", "fit")
	if err != nil {
		return err
	}
	out := opts.get("o", "output")
	if out == "" {
		out = "morph-grid.jpg"
	}
	s, err := loadSpace(opts)
	if err != nil {
		return err
	}
	g, err := sweep(opts, s)
	if err != nil {
		return err
	}
	ropts := blobfile.RasterOptionsFrom(opts.conf)
	if ropts.CellSize, err = opts.intFlag("cell", ropts.CellSize); err != nil {
		return err
	}
	ropts.Labels = ropts.Labels || opts.has("labels")
	ropts.Fit = opts.has("fit")
	img, err := blobfile.RenderGrid(g, ropts)
	if err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := blobfile.EncodeImage(f, img, blobfile.IsJPEG(out), ropts.Quality); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%dx%d cells)\n", out, g.StepsX, g.StepsY)
	return nil
}

func cmdExport(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}
	s, err := loadSpace(opts)
	if err != nil {
		return err
	}
	g, err := sweep(opts, s)
	if err != nil {
		return err
	}
	out := opts.get("o", "output")
	if out == "" {
		return blobfile.WriteGridJSON(os.Stdout, g)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := blobfile.WriteGridJSON(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func cmdConvert(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}
	if opts.input == "" || opts.get("o", "output") == "" {
		return fmt.Errorf("usage: blobmorph convert <input> -o <output>")
	}
	s, err := loadSpace(opts)
	if err != nil {
		return err
	}
	return saveSpace(opts, s)
}

func cmdMove(args []string) error {
	opts, err := parseArgs(args, "snap")
	if err != nil {
		return err
	}
	s, err := loadSpace(opts)
	if err != nil {
		return err
	}
	corner, err := blob.ParseCorner(opts.get("corner"))
	if err != nil {
		return err
	}
	pt := blob.Anchor
	switch opts.get("type") {
	case "", "anchor":
	case "control":
		pt = blob.Control
	default:
		return fmt.Errorf("--type must be anchor or control")
	}
	index, err := opts.intFlag("index", 0)
	if err != nil {
		return err
	}
	x, err := opts.floatFlag("x", math.NaN())
	if err != nil {
		return err
	}
	y, err := opts.floatFlag("y", math.NaN())
	if err != nil {
		return err
	}
	p := morphspace.P(x, y)
	if !p.IsValid() {
		return fmt.Errorf("--x and --y are required")
	}
	if opts.has("snap") {
		p = opts.conf.Snap(p)
	}
	if err := s.Move(corner, pt, index, p); err != nil {
		return err
	}
	return saveSpace(opts, s)
}

func cmdDistort(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}
	s, err := loadSpace(opts)
	if err != nil {
		return err
	}
	corner, err := blob.ParseCorner(opts.get("corner"))
	if err != nil {
		return err
	}
	index, err := opts.intFlag("index", 0)
	if err != nil {
		return err
	}
	angle, err := opts.floatFlag("angle", rand.Float64()*2*math.Pi)
	if err != nil {
		return err
	}
	amount, err := opts.floatFlag("amount", opts.conf.DistortionAmount)
	if err != nil {
		return err
	}
	if err := s.Distort(corner, index, angle, amount); err != nil {
		return err
	}
	fmt.Printf("Distorted control %d of %s by %.1f at %.1f°\n", index, corner, amount, angle*180/math.Pi)
	return saveSpace(opts, s)
}
