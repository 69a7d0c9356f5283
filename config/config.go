/*
Package config holds the settings of the blob morphing tools. They are
read from a YAML file; every setting not present in the file keeps its
default value.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/morphspace"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates a configuration value out of range or unparsable.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config collects all settings.
type Config struct {
	NumCtrls         int     `yaml:"numCtrls"`         // anchors per blob for newly captured blobs
	SnapGrid         float64 `yaml:"snapGrid"`         // grid for moved points, 0 = off
	DistortionAmount float64 `yaml:"distortionAmount"` // distance a distorted control moves
	MorphSpeed       float64 `yaml:"morphSpeed"`       // weight step of the interactive preview
	CellSize         int     `yaml:"cellSize"`         // pixels per cell of the morph grid
	GridX            int     `yaml:"gridX"`            // morph grid columns
	GridY            int     `yaml:"gridY"`            // morph grid rows
	Flatness         float64 `yaml:"flatness"`         // curve flattening tolerance
	Labels           bool    `yaml:"labels"`           // print weights into grid cells
	Quality          int     `yaml:"quality"`          // JPEG quality
	TraceLevel       string  `yaml:"tracelevel"`       // error, info or debug
	Styles           Styles  `yaml:"styles"`
}

// Styles are the colours used for rendering.
type Styles struct {
	Fill       string `yaml:"fill"`
	Stroke     string `yaml:"stroke"`
	Anchor     string `yaml:"anchor"`
	Control    string `yaml:"control"`
	Background string `yaml:"background"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		NumCtrls:         3,
		SnapGrid:         10,
		DistortionAmount: 90,
		MorphSpeed:       0.1,
		CellSize:         605,
		GridX:            20,
		GridY:            3,
		Flatness:         0.25,
		Quality:          95,
		TraceLevel:       "error",
		Styles: Styles{
			Fill:       "rgba(122, 157, 128, 0.5)",
			Stroke:     "#000000",
			Anchor:     "#0084ff",
			Control:    "#ff6600",
			Background: "#ffffff",
		},
	}
}

// Load reads a configuration file. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads YAML configuration from r on top of the defaults. Unknown
// keys are an error.
func Parse(r io.Reader) (*Config, error) {
	conf := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate checks all values for plausibility.
func (conf *Config) Validate() error {
	switch {
	case conf.NumCtrls < 3:
		return fmt.Errorf("%w: numCtrls must be at least 3, is %d", ErrInvalidConfig, conf.NumCtrls)
	case conf.CellSize <= 0:
		return fmt.Errorf("%w: cellSize must be positive, is %d", ErrInvalidConfig, conf.CellSize)
	case conf.GridX < 1 || conf.GridY < 1:
		return fmt.Errorf("%w: grid must have at least 1x1 cells, is %dx%d", ErrInvalidConfig,
			conf.GridX, conf.GridY)
	case conf.SnapGrid < 0:
		return fmt.Errorf("%w: snapGrid must not be negative", ErrInvalidConfig)
	case conf.MorphSpeed <= 0 || conf.MorphSpeed > 1:
		return fmt.Errorf("%w: morphSpeed must be in (0,1], is %g", ErrInvalidConfig, conf.MorphSpeed)
	case conf.Quality < 1 || conf.Quality > 100:
		return fmt.Errorf("%w: quality must be in [1,100], is %d", ErrInvalidConfig, conf.Quality)
	}
	if _, err := ParseTraceLevel(conf.TraceLevel); err != nil {
		return err
	}
	for _, c := range []string{conf.Styles.Fill, conf.Styles.Stroke, conf.Styles.Anchor,
		conf.Styles.Control, conf.Styles.Background} {
		if _, err := ParseColor(c); err != nil {
			return err
		}
	}
	return nil
}

// Snap rounds p to the configured snap grid.
func (conf *Config) Snap(p morphspace.Pair) morphspace.Pair {
	g := conf.SnapGrid
	if g == 0 {
		return p
	}
	return morphspace.P(math.Round(p.X()/g)*g, math.Round(p.Y()/g)*g)
}

// ParseTraceLevel maps "error", "info" and "debug" to trace levels.
func ParseTraceLevel(s string) (tracing.TraceLevel, error) {
	switch strings.ToLower(s) {
	case "", "error":
		return tracing.LevelError, nil
	case "info":
		return tracing.LevelInfo, nil
	case "debug":
		return tracing.LevelDebug, nil
	}
	return tracing.LevelError, fmt.Errorf("%w: unknown trace level %q", ErrInvalidConfig, s)
}

// ParseColor understands "#rgb", "#rrggbb" and CSS-like "rgba(r, g, b, a)"
// or "rgb(r, g, b)" notation.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	bad := fmt.Errorf("%w: cannot parse colour %q", ErrInvalidConfig, s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return color.NRGBA{}, bad
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, bad
		}
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	var args string
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		args = s[5 : len(s)-1]
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		args = s[4 : len(s)-1]
	default:
		return color.NRGBA{}, bad
	}
	parts := strings.Split(args, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, bad
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, bad
		}
		rgb[i] = uint8(v)
	}
	alpha := uint8(255)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.NRGBA{}, bad
		}
		alpha = uint8(math.Round(a * 255))
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: alpha}, nil
}

// FillColor returns the parsed fill style. Styles are validated on load,
// so errors fall back to opaque black.
func (conf *Config) FillColor() color.NRGBA {
	return mustColor(conf.Styles.Fill)
}

// BackgroundColor returns the parsed background style.
func (conf *Config) BackgroundColor() color.NRGBA {
	return mustColor(conf.Styles.Background)
}

// StrokeColor returns the parsed stroke style.
func (conf *Config) StrokeColor() color.NRGBA {
	return mustColor(conf.Styles.Stroke)
}

func mustColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	return c
}
