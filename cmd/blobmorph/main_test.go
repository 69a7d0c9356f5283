package main

import (
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/morphspace"
	"github.com/npillmayer/morphspace/blob"
	"github.com/npillmayer/morphspace/blobfile"
	"github.com/npillmayer/morphspace/polygon"
)

func TestParseArgs(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	opts, err := parseArgs([]string{"in.json", "--wx", "0.3", "--labels", "-o", "out.png"}, "labels")
	require.NoError(t, err)
	assert.Equal(t, "in.json", opts.input)
	assert.True(t, opts.has("labels"))
	assert.Equal(t, "out.png", opts.get("o", "output"))
	wx, err := opts.floatFlag("wx", 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.3, wx)
	wy, err := opts.floatFlag("wy", 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.5, wy)
	assert.Equal(t, 90.0, opts.conf.DistortionAmount)
	//
	_, err = parseArgs([]string{"a.json", "b.json"})
	assert.Error(t, err)
	_, err = parseArgs([]string{"a.json", "--wx"})
	assert.Error(t, err)
	opts, err = parseArgs([]string{"--x", "three"})
	require.NoError(t, err)
	_, err = opts.intFlag("x", 3)
	assert.Error(t, err)
}

func TestParsePairs(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	pairs, err := parsePairs("0,0, 10,0,5,8.5")
	require.NoError(t, err)
	assert.Equal(t, []morphspace.Pair{morphspace.P(0, 0), morphspace.P(10, 0), morphspace.P(5, 8.5)}, pairs)
	_, err = parsePairs("1,2,3")
	assert.Error(t, err)
	_, err = parsePairs("1,x")
	assert.Error(t, err)
}

func TestNewAndMove(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	file := filepath.Join(t.TempDir(), "blobs.json")
	err := cmdNew([]string{"--anchors", "0,0,10,0,5,10", "--controls", "2,-2,12,4,3,12", "-o", file})
	require.NoError(t, err)
	doc, err := blobfile.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.N())
	require.NotNil(t, doc.D)
	//
	err = cmdMove([]string{file, "--corner", "B", "--type", "anchor", "--index", "1", "--x", "20", "--y", "0"})
	require.NoError(t, err)
	doc, err = blobfile.ReadFile(file)
	require.NoError(t, err)
	corners, err := doc.Corners()
	require.NoError(t, err)
	assert.Equal(t, morphspace.P(20, 0), corners[blob.TopRight].Z(1))
	assert.Equal(t, morphspace.P(10, 0), corners[blob.TopLeft].Z(1))
}

func TestViewport(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	// 40 x 20 world units on 40 x 10 cells: one unit per column, two per row
	v := fitViewport(morphspace.P(0, 0), morphspace.P(40, 20), 40, 10)
	assert.InDelta(t, 1.0, v.scale, 1e-9)
	assert.True(t, v.center(0, 0).Equal(morphspace.P(0.5, 1)))
	col, row := v.cell(morphspace.P(39.5, 19.5))
	assert.Equal(t, 39, col)
	assert.Equal(t, 9, row)
	//
	// a square box is centred horizontally
	v = fitViewport(morphspace.P(0, 0), morphspace.P(10, 10), 20, 5)
	assert.InDelta(t, 1.0, v.scale, 1e-9)
	assert.True(t, v.origin.Equal(morphspace.P(-5, 0)))
}

func TestCoverage(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	box := polygon.Box(morphspace.P(0, 0), morphspace.P(4, 4))
	v := viewport{origin: morphspace.P(0, 0), scale: 1, cols: 8, rows: 4}
	cov := coverage(box, v)
	require.Len(t, cov, 4)
	assert.True(t, cov[0][0])
	assert.True(t, cov[1][3])
	assert.False(t, cov[0][4])
	assert.False(t, cov[2][0])
}
