// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-gnuplot/scene"
)

func TestGridInterpolateExactHit(t *testing.T) {
	pts := []scene.Point3{
		{X: 0, Y: 0, Z: 5},
		{X: 1, Y: 0, Z: 1},
		{X: 0, Y: 1, Z: 1},
		{X: 1, Y: 1, Z: 1},
	}
	// A 2x2 grid lands exactly on the scattered points: each node
	// takes that point's z directly.
	grid := gridInterpolate(pts, 2, 2, "qnorm", 1)
	require.Len(t, grid, 4)
	assert.Equal(t, 5.0, grid[0].Z)
	assert.Equal(t, 1.0, grid[1].Z)
	assert.Equal(t, 1.0, grid[2].Z)
	assert.Equal(t, 1.0, grid[3].Z)
}

func TestGridInterpolateWeighting(t *testing.T) {
	pts := []scene.Point3{
		{X: 0, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 10},
	}
	// The centre of a 3x3 grid is equidistant from both points in
	// x; every kernel must average their z symmetrically.
	for _, mode := range []string{"qnorm", "gauss", "cauchy", "exp", "box"} {
		grid := gridInterpolate(pts, 3, 3, mode, 2)
		require.Len(t, grid, 9, "mode %s", mode)
		centre := grid[4]
		assert.InDelta(t, 1.0, centre.X, 1e-12, "mode %s", mode)
		assert.InDelta(t, 5.0, centre.Z, 1e-9, "mode %s: weights must be symmetric", mode)
	}
}

func TestGridInterpolateBoxKernel(t *testing.T) {
	pts := []scene.Point3{
		{X: 0, Y: 0, Z: 3},
		{X: 10, Y: 10, Z: 100},
	}
	grid := gridInterpolate(pts, 5, 5, "box", 1)
	// A node near (0,0) sees only the first point: the far point's
	// box weight is zero.
	assert.InDelta(t, 3.0, grid[0].Z, 1e-12)
}

func TestGridInterpolateGridShape(t *testing.T) {
	pts := []scene.Point3{
		{X: -2, Y: -3, Z: 1},
		{X: 4, Y: 5, Z: 2},
	}
	grid := gridInterpolate(pts, 4, 6, "qnorm", 1)
	require.Len(t, grid, 24)
	// Row-major: x varies fastest, spanning the data bounds.
	assert.Equal(t, -2.0, grid[0].X)
	assert.Equal(t, 4.0, grid[5].X)
	assert.Equal(t, -3.0, grid[0].Y)
	assert.Equal(t, 5.0, grid[23].Y)
}

func TestDgrid3dEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scatter.dat")
	var content string
	for _, p := range []struct{ x, y, z float64 }{
		{0, 0, 0}, {1, 0, 1}, {0, 1, 1}, {1, 1, 2}, {0.5, 0.5, 1},
	} {
		content += formatPoint(p.x, p.y, p.z)
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ex := testExecutor(t, WithSearchDirs(dir))
	require.NoError(t, ex.ExecuteString("set dgrid3d 4,4,gauss\nsplot 'scatter.dat'"))
	sc := ex.Scenes()[0]
	var surf *scene.SurfacePlot3D
	for _, el := range sc.Elements {
		if s, ok := el.(*scene.SurfacePlot3D); ok {
			surf = s
		}
	}
	require.NotNil(t, surf)
	assert.Equal(t, 4, surf.Rows)
	assert.Equal(t, 4, surf.Cols)
	assert.Len(t, surf.Points, 16)
	assert.Equal(t, scene.Style3DLines, surf.Style)
	for _, p := range surf.Points {
		assert.False(t, math.IsNaN(p.Z))
	}
}

func formatPoint(x, y, z float64) string {
	return fmt.Sprintf("%g %g %g\n", x, y, z)
}
