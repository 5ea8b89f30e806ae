// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"math"

	"github.com/aclements/go-gnuplot/command"
	"github.com/aclements/go-gnuplot/scene"
)

const tickGuide = 20

// assemble2D builds the scene for one plot command from the executor's
// current state and in-flight plots.
func (ex *Executor) assemble2D(xr, yr rangeSetting) *scene.Scene {
	// The x-range is taken verbatim; autoscaled sides fall back to
	// the data when files are plotted, or to the default span.
	xmin, xmax := xr.min, xr.max
	if xr.autoMin || xr.autoMax {
		dmin, dmax := math.Inf(1), math.Inf(-1)
		for _, p := range ex.st.plots2D {
			for _, pt := range p.Points {
				if math.IsNaN(pt.X) || math.IsInf(pt.X, 0) {
					continue
				}
				dmin = math.Min(dmin, pt.X)
				dmax = math.Max(dmax, pt.X)
			}
		}
		if xr.autoMin {
			xmin = dmin
		}
		if xr.autoMax {
			xmax = dmax
		}
		if math.IsInf(xmin, 0) || math.IsInf(xmax, 0) {
			xmin, xmax = -10, 10
		}
		xmin, xmax = scene.WidenEmpty(xmin, xmax)
	}

	// Y-range: explicit bounds win; autoscaled sides come from the
	// data and get extended to tick boundaries.
	ymin, ymax := yr.min, yr.max
	if yr.autoMin || yr.autoMax {
		dmin, dmax, ok := scene.Bounds2D(ex.st.plots2D)
		if !ok {
			dmin, dmax = -1, 1
		}
		if yr.autoMin {
			ymin = dmin
		}
		if yr.autoMax {
			ymax = dmax
		}
		ymin, ymax = scene.WidenEmpty(ymin, ymax)
		step := scene.QuantizeNormalTics(ymax-ymin, tickGuide)
		lo, hi := scene.RoundOutward(ymin, ymax, step)
		if yr.autoMin {
			ymin = lo
		}
		if yr.autoMax {
			ymax = hi
		}
	}
	if ymin == ymax {
		ymin, ymax = scene.WidenEmpty(ymin, ymax)
	}

	xstep := scene.QuantizeNormalTics(xmax-xmin, tickGuide)
	ystep := scene.QuantizeNormalTics(ymax-ymin, tickGuide)

	sc := &scene.Scene{
		Title: ex.st.title,
		Viewport: scene.Viewport{
			XMin: xmin, XMax: xmax,
			YMin: ymin, YMax: ymax,
			XTicStep: xstep, YTicStep: ystep,
		},
		ShowBorder: ex.st.border,
	}

	sc.Elements = append(sc.Elements,
		&scene.Axis{
			ID: "x", Kind: scene.AxisX, Min: xmin, Max: xmax,
			ShowTicks: true, ShowGrid: ex.st.grid,
			Label: ex.st.xlabel, TickStep: xstep,
		},
		&scene.Axis{
			ID: "y", Kind: scene.AxisY, Min: ymin, Max: ymax,
			ShowTicks: true, ShowGrid: ex.st.grid,
			Label: ex.st.ylabel, TickStep: ystep,
		},
	)
	for _, p := range ex.st.plots2D {
		sc.Elements = append(sc.Elements, p)
	}

	if lg := ex.legend2D(); lg != nil {
		sc.Elements = append(sc.Elements, lg)
	}
	return sc
}

func (ex *Executor) legend2D() *scene.Legend {
	var entries []scene.LegendEntry
	for _, p := range ex.st.plots2D {
		if p.Label == "" {
			continue
		}
		entries = append(entries, scene.LegendEntry{
			Label: p.Label, Color: p.Color, LineStyle: p.LineStyle,
		})
	}
	if len(entries) == 0 {
		return nil
	}
	return ex.buildLegend(entries)
}

func (ex *Executor) buildLegend(entries []scene.LegendEntry) *scene.Legend {
	cols := 1
	if ex.st.key.horizLayout {
		cols = len(entries)
	}
	return &scene.Legend{
		ID:         "key",
		Position:   composeKey(ex.st.key.vertical, ex.st.key.horizontal),
		ShowBorder: ex.st.key.showBorder,
		Columns:    cols,
		Entries:    entries,
	}
}

// composeKey combines the independently stored anchors into one legend
// position.
func composeKey(vertical, horizontal string) scene.LegendPos {
	col := 2 // right
	switch horizontal {
	case "left":
		col = 0
	case "center":
		col = 1
	}
	switch vertical {
	case "top":
		return []scene.LegendPos{scene.PosTopLeft, scene.PosTopCenter, scene.PosTopRight}[col]
	case "center":
		return []scene.LegendPos{scene.PosCenterLeft, scene.PosCenter, scene.PosCenterRight}[col]
	case "bottom":
		return []scene.LegendPos{scene.PosBottomLeft, scene.PosBottomCenter, scene.PosBottomRight}[col]
	case "tmargin":
		return []scene.LegendPos{scene.PosTMarginLeft, scene.PosTMarginCenter, scene.PosTMarginRight}[col]
	case "bmargin":
		return []scene.LegendPos{scene.PosBMarginLeft, scene.PosBMarginCenter, scene.PosBMarginRight}[col]
	}
	return scene.PosTopRight
}

// assemble3D builds the scene for one splot command. Bounds come from
// the finite data, with explicit command ranges overriding per side;
// when no finite data exists the viewport falls back to [-1,1] cubed.
func (ex *Executor) assemble3D(cmd command.Splot) (*scene.Scene, error) {
	xmin, xmax, ymin, ymax, zmin, zmax := scene.Bounds3D(ex.st.plots3D)

	apply := func(r *command.Range, fb rangeSetting, min, max float64) (float64, float64, error) {
		rs, err := ex.resolveRange(r, fb)
		if err != nil {
			return min, max, err
		}
		if !rs.autoMin {
			min = rs.min
		}
		if !rs.autoMax {
			max = rs.max
		}
		min, max = scene.WidenEmpty(min, max)
		return min, max, nil
	}

	var err error
	if xmin, xmax, err = apply(cmd.XRange, ex.st.xr, xmin, xmax); err != nil {
		return nil, err
	}
	if ymin, ymax, err = apply(cmd.YRange, ex.st.yr, ymin, ymax); err != nil {
		return nil, err
	}
	if zmin, zmax, err = apply(cmd.ZRange, ex.st.zr, zmin, zmax); err != nil {
		return nil, err
	}

	sc := &scene.Scene{
		Title: ex.st.title,
		Viewport: scene.Viewport{
			XMin: xmin, XMax: xmax,
			YMin: ymin, YMax: ymax,
			ZMin: zmin, ZMax: zmax,
			Has3D: true,
		},
		ShowBorder: ex.st.border,
		Hints:      scene.Hints{Is3D: true},
	}
	for _, p := range ex.st.plots3D {
		sc.Elements = append(sc.Elements, p)
	}

	var entries []scene.LegendEntry
	for _, p := range ex.st.plots3D {
		if p.Label == "" {
			continue
		}
		entries = append(entries, scene.LegendEntry{Label: p.Label, Color: p.Color})
	}
	if len(entries) > 0 {
		sc.Elements = append(sc.Elements, ex.buildLegend(entries))
	}
	return sc, nil
}
