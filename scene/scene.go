// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene is the format-agnostic intermediate representation
// between the script executor and the renderers. A Scene describes one
// plot command's output: a viewport, axes, plot elements and an
// optional legend. Renderers consume scenes read-only.
package scene

import "math"

// Element is one renderable scene item.
type Element interface {
	element()
}

// AxisKind identifies which axis an Axis element describes.
type AxisKind int

const (
	AxisX AxisKind = iota
	AxisY
	AxisZ
	AxisX2
	AxisY2
)

// ScaleKind is the axis scale type.
type ScaleKind int

const (
	ScaleLinear ScaleKind = iota
	ScaleLog
	ScaleTime
)

// Axis is one axis with its range and tick settings. Ticks are
// computed lazily from the range at emission time via Ticks.
type Axis struct {
	ID        string
	Kind      AxisKind
	Min, Max  float64
	Scale     ScaleKind
	LogBase   float64 // base for ScaleLog; 0 means 10
	ShowTicks bool
	ShowGrid  bool
	Label     string
	TickStep  float64 // explicit step; 0 means quantise automatically
}

// Ticks generates this axis's tick positions for the given guide.
func (a *Axis) Ticks(guide int) []Tick {
	if a.Scale == ScaleLog {
		base := a.LogBase
		if base == 0 {
			base = 10
		}
		return LogTicks(a.Min, a.Max, base, guide)
	}
	step := a.TickStep
	if step == 0 {
		step = QuantizeNormalTics(a.Max-a.Min, guide)
	}
	return LinearTicks(a.Min, a.Max, step)
}

// Point is a 2D sample. Y may be NaN to mark an evaluation failure at
// that sample; renderers break lines there.
type Point struct {
	X, Y float64
}

// Point3 is a 3D sample.
type Point3 struct {
	X, Y, Z float64
}

// Finite reports whether every coordinate is finite.
func (p Point3) Finite() bool {
	return finite(p.X) && finite(p.Y) && finite(p.Z)
}

func finite(x float64) bool {
	return !(math.IsNaN(x) || math.IsInf(x, 0))
}

// PlotStyle is a 2D plot drawing style.
type PlotStyle int

const (
	StyleLines PlotStyle = iota
	StylePoints
	StyleLinespoints
	StyleImpulses
	StyleDots
)

// LineStyle selects the dash pattern of a stroked line.
type LineStyle int

const (
	LineSolid LineStyle = iota
	LineDashed
	LineDotted
	LineDashDot
)

// LinePlot is one 2D data or function trace.
type LinePlot struct {
	ID        string
	Points    []Point
	Color     string
	Style     PlotStyle
	LineStyle LineStyle
	LineWidth float64
	Label     string
}

// Style3D is a 3D plot drawing style.
type Style3D int

const (
	Style3DPoints Style3D = iota
	Style3DLines
	Style3DSurface
	Style3DDots
)

// SurfacePlot3D is one 3D trace. When Rows and Cols are non-zero the
// points form a row-major regular grid and renderers may draw mesh
// lines; otherwise the points are scattered.
type SurfacePlot3D struct {
	ID     string
	Points []Point3
	Rows   int
	Cols   int
	Style  Style3D
	Color  string
	Label  string
}

// LegendPos is a legend anchor: nine positions inside the plot area
// plus six in the top and bottom margins.
type LegendPos int

const (
	PosTopLeft LegendPos = iota
	PosTopCenter
	PosTopRight
	PosCenterLeft
	PosCenter
	PosCenterRight
	PosBottomLeft
	PosBottomCenter
	PosBottomRight
	PosTMarginLeft
	PosTMarginCenter
	PosTMarginRight
	PosBMarginLeft
	PosBMarginCenter
	PosBMarginRight
)

// LegendEntry is one legend row.
type LegendEntry struct {
	Label     string
	Color     string
	LineStyle LineStyle
}

// Legend lists the labelled plots of a scene.
type Legend struct {
	ID         string
	Position   LegendPos
	ShowBorder bool
	Columns    int
	Entries    []LegendEntry
}

func (*Axis) element()          {}
func (*LinePlot) element()      {}
func (*SurfacePlot3D) element() {}
func (*Legend) element()        {}

// Viewport maps data coordinates onto the plot rectangle. min < max
// holds on every populated axis.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
	Has3D      bool
	XTicStep   float64
	YTicStep   float64
	ZTicStep   float64
}

// Hints carries renderer guidance that is not itself geometry.
type Hints struct {
	Is3D bool
}

// Scene is one plot command's complete output.
type Scene struct {
	Width      int
	Height     int
	Title      string
	Viewport   Viewport
	Elements   []Element
	ShowBorder bool
	Hints      Hints
}

// Bounds2D computes the min/max over all finite Y values of the given
// plots. ok is false when no finite point exists.
func Bounds2D(plots []*LinePlot) (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, p := range plots {
		for _, pt := range p.Points {
			if !finite(pt.Y) || !finite(pt.X) {
				continue
			}
			min = math.Min(min, pt.Y)
			max = math.Max(max, pt.Y)
			ok = true
		}
	}
	return min, max, ok
}

// Bounds3D computes bounds over all finite points of the given
// surfaces, falling back to [-1,1] on every axis when no finite data
// exists.
func Bounds3D(plots []*SurfacePlot3D) (xmin, xmax, ymin, ymax, zmin, zmax float64) {
	xmin, ymin, zmin = math.Inf(1), math.Inf(1), math.Inf(1)
	xmax, ymax, zmax = math.Inf(-1), math.Inf(-1), math.Inf(-1)
	any := false
	for _, s := range plots {
		for _, pt := range s.Points {
			if !pt.Finite() {
				continue
			}
			xmin, xmax = math.Min(xmin, pt.X), math.Max(xmax, pt.X)
			ymin, ymax = math.Min(ymin, pt.Y), math.Max(ymax, pt.Y)
			zmin, zmax = math.Min(zmin, pt.Z), math.Max(zmax, pt.Z)
			any = true
		}
	}
	if !any {
		return -1, 1, -1, 1, -1, 1
	}
	return
}
