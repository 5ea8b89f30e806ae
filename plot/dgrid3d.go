// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"math"

	"github.com/aclements/go-gnuplot/scene"
)

// exactHit is the XY distance below which a scattered point's z is
// taken directly, avoiding division by zero in the qnorm kernel.
const exactHit = 1e-10

// gridInterpolate fits scattered 3D data onto a rows x cols regular
// grid spanning the data's XY bounds. Each grid node's z is the
// weighted average of every scattered point's z, with the weight
// kernel selected by mode.
func gridInterpolate(pts []scene.Point3, rows, cols int, mode string, norm float64) []scene.Point3 {
	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		if !p.Finite() {
			continue
		}
		xmin, xmax = math.Min(xmin, p.X), math.Max(xmax, p.X)
		ymin, ymax = math.Min(ymin, p.Y), math.Max(ymax, p.Y)
	}
	if math.IsInf(xmin, 0) || math.IsInf(ymin, 0) {
		return nil
	}
	xmin, xmax = scene.WidenEmpty(xmin, xmax)
	ymin, ymax = scene.WidenEmpty(ymin, ymax)

	grid := make([]scene.Point3, 0, rows*cols)
	for r := 0; r < rows; r++ {
		y := ymin + float64(r)*(ymax-ymin)/float64(rows-1)
		for c := 0; c < cols; c++ {
			x := xmin + float64(c)*(xmax-xmin)/float64(cols-1)
			grid = append(grid, scene.Point3{X: x, Y: y, Z: gridZ(pts, x, y, mode, norm)})
		}
	}
	return grid
}

func gridZ(pts []scene.Point3, x, y float64, mode string, norm float64) float64 {
	var wsum, zsum float64
	for _, p := range pts {
		if !p.Finite() {
			continue
		}
		d := math.Hypot(p.X-x, p.Y-y)
		if d < exactHit {
			return p.Z
		}
		w := weight(mode, d, norm)
		wsum += w
		zsum += w * p.Z
	}
	if wsum == 0 {
		return math.NaN()
	}
	return zsum / wsum
}

func weight(mode string, d, norm float64) float64 {
	switch mode {
	case "gauss":
		return math.Exp(-d * d)
	case "cauchy":
		return 1 / (1 + d*d)
	case "exp":
		return math.Exp(-d)
	case "box":
		if d < 1 {
			return 1
		}
		return 0
	}
	// qnorm
	return 1 / math.Pow(d, norm)
}
