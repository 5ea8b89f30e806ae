// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svg renders scenes to SVG documents. The renderer is a
// visitor over the scene graph: it maps data coordinates to pixels,
// clips plot geometry to the viewport via a single clipPath, and
// writes deterministic output (ordered iteration, locale-independent
// number formatting).
package svg

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	svgo "github.com/ajstarks/svgo/float"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/aclements/go-gnuplot/scene"
)

const (
	defaultWidth  = 640
	defaultHeight = 480

	defaultGuide = 20

	fontSize = 12.0

	tickLen  = 5.0
	tickSep  = 4.0
	labelSep = 18.0

	clipID = "plotClip"
)

// Renderer writes scenes as SVG documents.
type Renderer struct {
	// Guide is the target upper bound on major ticks per axis.
	// Zero means 20.
	Guide int
}

// Render writes one scene as a complete SVG document.
func (r *Renderer) Render(sc *scene.Scene, w io.Writer) error {
	guide := r.Guide
	if guide == 0 {
		guide = defaultGuide
	}
	width := float64(sc.Width)
	if width == 0 {
		width = defaultWidth
	}
	height := float64(sc.Height)
	if height == 0 {
		height = defaultHeight
	}

	st := &state{scene: sc, guide: guide, width: width, height: height}
	st.collect()
	st.layout()

	canvas := svgo.New(w)
	canvas.Startview(width, height, 0, 0, width, height)
	canvas.Group(fmt.Sprintf(`font-size="%s"`, fmtF(fontSize)), `font-family="Helvetica,Arial,sans-serif"`)

	// One clipPath per document; every plot element references it.
	canvas.Def()
	canvas.ClipPath(`id="` + clipID + `"`)
	canvas.Rect(st.left, st.top, st.right-st.left, st.bottom-st.top)
	canvas.ClipEnd()
	canvas.DefEnd()

	st.drawGrid(canvas)
	if sc.Hints.Is3D {
		st.draw3D(canvas)
	} else {
		st.drawPlots(canvas)
	}
	st.drawAxes(canvas)
	if sc.ShowBorder {
		st.drawBorder(canvas)
	}
	st.drawLegend(canvas)
	if sc.Title != "" {
		canvas.Text(width/2, st.top-10, sc.Title, `text-anchor="middle"`, `font-weight="bold"`)
	}

	canvas.Gend()
	canvas.End()
	return nil
}

// state holds per-scene render state: classified elements, margins
// and the pixel mapping.
type state struct {
	scene *scene.Scene
	guide int

	width, height float64

	plots    []*scene.LinePlot
	surfaces []*scene.SurfacePlot3D
	legend   *scene.Legend

	xAxis, yAxis *scene.Axis
	xTicks       []scene.Tick
	yTicks       []scene.Tick

	// Plot rectangle in pixels.
	left, right, top, bottom float64
}

func (st *state) collect() {
	for _, el := range st.scene.Elements {
		switch el := el.(type) {
		case *scene.Axis:
			switch el.Kind {
			case scene.AxisX:
				st.xAxis = el
			case scene.AxisY:
				st.yAxis = el
			}
		case *scene.LinePlot:
			st.plots = append(st.plots, el)
		case *scene.SurfacePlot3D:
			st.surfaces = append(st.surfaces, el)
		case *scene.Legend:
			st.legend = el
		}
	}
	if st.xAxis != nil {
		st.xTicks = st.xAxis.Ticks(st.guide)
	}
	if st.yAxis != nil {
		st.yTicks = st.yAxis.Ticks(st.guide)
	}
}

func (st *state) layout() {
	top := 12.0
	if st.scene.Title != "" {
		top = 30
	}
	bottom := 24.0
	left := 24.0
	right := 16.0

	// The left margin must clear the widest Y tick label.
	maxw := 0.0
	for _, t := range st.yTicks {
		if t.Minor {
			continue
		}
		maxw = math.Max(maxw, measure(t.Label))
	}
	left = math.Max(left, maxw+tickSep+8)

	if st.xAxis != nil && st.xAxis.Label != "" {
		bottom += labelSep
	}
	if st.yAxis != nil && st.yAxis.Label != "" {
		left += labelSep
	}

	// Margin legends get dedicated space above or below the plot.
	if st.legend != nil {
		h := legendHeight(st.legend)
		switch st.legend.Position {
		case scene.PosTMarginLeft, scene.PosTMarginCenter, scene.PosTMarginRight:
			top += h
		case scene.PosBMarginLeft, scene.PosBMarginCenter, scene.PosBMarginRight:
			bottom += h
		}
	}

	st.left = left
	st.right = st.width - right
	st.top = top
	st.bottom = st.height - bottom
}

// px maps a data X coordinate to pixels.
func (st *state) px(x float64) float64 {
	vp := st.scene.Viewport
	return st.left + (x-vp.XMin)*(st.right-st.left)/(vp.XMax-vp.XMin)
}

// py maps a data Y coordinate to pixels. SVG y grows downward, so the
// axis is inverted.
func (st *state) py(y float64) float64 {
	vp := st.scene.Viewport
	return st.bottom - (y-vp.YMin)*(st.bottom-st.top)/(vp.YMax-vp.YMin)
}

func (st *state) drawBorder(canvas *svgo.SVG) {
	d := fmt.Sprintf("M%s %sH%sV%sH%sZ",
		fmtF(st.left), fmtF(st.top), fmtF(st.right), fmtF(st.bottom), fmtF(st.left))
	canvas.Path(d, "fill:none;stroke:#000000;stroke-width:1")
}

func (st *state) drawGrid(canvas *svgo.SVG) {
	if st.xAxis != nil && st.xAxis.ShowGrid {
		for _, t := range st.xTicks {
			if t.Minor {
				continue
			}
			x := st.px(t.Pos)
			canvas.Line(x, st.top, x, st.bottom, "stroke:#cccccc;stroke-width:1", `stroke-dasharray="2,4"`)
		}
	}
	if st.yAxis != nil && st.yAxis.ShowGrid {
		for _, t := range st.yTicks {
			if t.Minor {
				continue
			}
			y := st.py(t.Pos)
			canvas.Line(st.left, y, st.right, y, "stroke:#cccccc;stroke-width:1", `stroke-dasharray="2,4"`)
		}
	}
}

func (st *state) drawAxes(canvas *svgo.SVG) {
	// Axis lines along the bottom and left edges of the plot area.
	if st.xAxis != nil {
		canvas.Line(st.left, st.bottom, st.right, st.bottom, "stroke:#000000;stroke-width:1")
		if st.xAxis.ShowTicks {
			for _, t := range st.xTicks {
				x := st.px(t.Pos)
				l := tickLen
				if t.Minor {
					l = tickLen / 2
				}
				canvas.Line(x, st.bottom, x, st.bottom-l, "stroke:#000000;stroke-width:1")
				if !t.Minor && t.Label != "" {
					canvas.Text(x, st.bottom+tickSep, t.Label, `text-anchor="middle"`, `dy="1em"`)
				}
			}
		}
		if st.xAxis.Label != "" {
			canvas.Text((st.left+st.right)/2, st.height-6, st.xAxis.Label, `text-anchor="middle"`)
		}
	}
	if st.yAxis != nil {
		canvas.Line(st.left, st.top, st.left, st.bottom, "stroke:#000000;stroke-width:1")
		if st.yAxis.ShowTicks {
			for _, t := range st.yTicks {
				y := st.py(t.Pos)
				l := tickLen
				if t.Minor {
					l = tickLen / 2
				}
				canvas.Line(st.left, y, st.left+l, y, "stroke:#000000;stroke-width:1")
				if !t.Minor && t.Label != "" {
					canvas.Text(st.left-tickSep, y, t.Label, `text-anchor="end"`, `dy=".32em"`)
				}
			}
		}
		if st.yAxis.Label != "" {
			x, y := 14.0, (st.top+st.bottom)/2
			canvas.Text(x, y, st.yAxis.Label, `text-anchor="middle"`,
				fmt.Sprintf(`transform="rotate(-90 %s %s)"`, fmtF(x), fmtF(y)))
		}
	}
}

func (st *state) drawPlots(canvas *svgo.SVG) {
	for _, p := range st.plots {
		switch p.Style {
		case scene.StyleLines:
			st.drawLines(canvas, p)
		case scene.StylePoints:
			st.drawPoints(canvas, p, 2.5)
		case scene.StyleLinespoints:
			st.drawLines(canvas, p)
			st.drawPoints(canvas, p, 2.5)
		case scene.StyleImpulses:
			st.drawImpulses(canvas, p)
		case scene.StyleDots:
			st.drawPoints(canvas, p, 0.8)
		}
	}
}

// drawLines emits the plot as polylines clipped to the viewport,
// breaking the line at non-finite samples.
func (st *state) drawLines(canvas *svgo.SVG, p *scene.LinePlot) {
	style := st.lineStyle(p)
	var xs, ys []float64
	flush := func() {
		if len(xs) >= 2 {
			canvas.Polyline(xs, ys, style...)
		}
		xs, ys = xs[:0], ys[:0]
	}
	for _, pt := range p.Points {
		if !finite(pt.X) || !finite(pt.Y) {
			flush()
			continue
		}
		xs = append(xs, st.px(pt.X))
		ys = append(ys, st.py(pt.Y))
	}
	flush()
}

func (st *state) lineStyle(p *scene.LinePlot) []string {
	w := p.LineWidth
	if w == 0 {
		w = 1.5
	}
	attrs := []string{
		`clip-path="url(#` + clipID + `)"`,
		fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s", p.Color, fmtF(w)),
	}
	if dash := dashArray(p.LineStyle); dash != "" {
		attrs = append(attrs, `stroke-dasharray="`+dash+`"`)
	}
	return attrs
}

// dashArray maps a line style to its stroke-dasharray; solid lines
// omit the attribute.
func dashArray(ls scene.LineStyle) string {
	switch ls {
	case scene.LineDashed:
		return "8,4"
	case scene.LineDotted:
		return "2,3"
	case scene.LineDashDot:
		return "8,4,2,4"
	}
	return ""
}

func (st *state) drawPoints(canvas *svgo.SVG, p *scene.LinePlot, radius float64) {
	canvas.Group(`clip-path="url(#` + clipID + `)"`)
	for _, pt := range p.Points {
		if !finite(pt.X) || !finite(pt.Y) {
			continue
		}
		canvas.Circle(st.px(pt.X), st.py(pt.Y), radius, "fill:"+p.Color)
	}
	canvas.Gend()
}

func (st *state) drawImpulses(canvas *svgo.SVG, p *scene.LinePlot) {
	vp := st.scene.Viewport
	base := 0.0
	if base < vp.YMin {
		base = vp.YMin
	} else if base > vp.YMax {
		base = vp.YMax
	}
	by := st.py(base)
	canvas.Group(`clip-path="url(#` + clipID + `)"`)
	for _, pt := range p.Points {
		if !finite(pt.X) || !finite(pt.Y) {
			continue
		}
		canvas.Line(st.px(pt.X), by, st.px(pt.X), st.py(pt.Y),
			fmt.Sprintf("stroke:%s;stroke-width:1.5", p.Color))
	}
	canvas.Gend()
}

// draw3D projects surfaces isometrically into the plot rectangle.
// Grid surfaces draw row and column polylines; scattered data draws
// point markers.
func (st *state) draw3D(canvas *svgo.SVG) {
	vp := st.scene.Viewport
	cx := (st.left + st.right) / 2
	cy := (st.top + st.bottom) / 2
	sc := 0.42 * math.Min(st.right-st.left, st.bottom-st.top)

	project := func(p scene.Point3) (float64, float64) {
		nx := norm01(p.X, vp.XMin, vp.XMax)
		ny := norm01(p.Y, vp.YMin, vp.YMax)
		nz := norm01(p.Z, vp.ZMin, vp.ZMax)
		u := (nx - ny) * 0.866
		v := (nx+ny)*0.35 + nz*0.8 - 0.75
		return cx + u*sc, cy - v*sc
	}

	canvas.Group(`clip-path="url(#` + clipID + `)"`)
	for _, s := range st.surfaces {
		style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:1", s.Color)
		switch {
		case s.Rows > 0 && s.Cols > 0 && (s.Style == scene.Style3DLines || s.Style == scene.Style3DSurface):
			for row := 0; row < s.Rows; row++ {
				xs := make([]float64, 0, s.Cols)
				ys := make([]float64, 0, s.Cols)
				for col := 0; col < s.Cols; col++ {
					p := s.Points[row*s.Cols+col]
					if !p.Finite() {
						continue
					}
					x, y := project(p)
					xs = append(xs, x)
					ys = append(ys, y)
				}
				if len(xs) >= 2 {
					canvas.Polyline(xs, ys, style)
				}
			}
			for col := 0; col < s.Cols; col++ {
				xs := make([]float64, 0, s.Rows)
				ys := make([]float64, 0, s.Rows)
				for row := 0; row < s.Rows; row++ {
					p := s.Points[row*s.Cols+col]
					if !p.Finite() {
						continue
					}
					x, y := project(p)
					xs = append(xs, x)
					ys = append(ys, y)
				}
				if len(xs) >= 2 {
					canvas.Polyline(xs, ys, style)
				}
			}
		default:
			r := 2.0
			if s.Style == scene.Style3DDots {
				r = 0.8
			}
			for _, p := range s.Points {
				if !p.Finite() {
					continue
				}
				x, y := project(p)
				canvas.Circle(x, y, r, "fill:"+s.Color)
			}
		}
	}
	canvas.Gend()
}

func norm01(v, min, max float64) float64 {
	if max == min {
		return 0.5
	}
	return (v - min) / (max - min)
}

const (
	legendRowH    = 16.0
	legendSwatchW = 24.0
	legendPad     = 6.0
)

func legendHeight(l *scene.Legend) float64 {
	rows := len(l.Entries)
	if l.Columns > 1 {
		rows = (rows + l.Columns - 1) / l.Columns
	}
	return float64(rows)*legendRowH + 2*legendPad
}

func legendWidth(l *scene.Legend) float64 {
	maxw := 0.0
	for _, e := range l.Entries {
		maxw = math.Max(maxw, measure(e.Label))
	}
	cols := l.Columns
	if cols < 1 {
		cols = 1
	}
	colW := legendSwatchW + 6 + maxw + legendPad
	return float64(cols)*colW + legendPad
}

func (st *state) drawLegend(canvas *svgo.SVG) {
	l := st.legend
	if l == nil || len(l.Entries) == 0 {
		return
	}
	w := legendWidth(l)
	h := legendHeight(l)

	var x, y float64
	switch l.Position {
	case scene.PosTopLeft, scene.PosCenterLeft, scene.PosBottomLeft:
		x = st.left + legendPad
	case scene.PosTopCenter, scene.PosCenter, scene.PosBottomCenter:
		x = (st.left + st.right - w) / 2
	default:
		x = st.right - w - legendPad
	}
	switch l.Position {
	case scene.PosTopLeft, scene.PosTopCenter, scene.PosTopRight:
		y = st.top + legendPad
	case scene.PosCenterLeft, scene.PosCenter, scene.PosCenterRight:
		y = (st.top + st.bottom - h) / 2
	case scene.PosBottomLeft, scene.PosBottomCenter, scene.PosBottomRight:
		y = st.bottom - h - legendPad
	case scene.PosTMarginLeft, scene.PosTMarginCenter, scene.PosTMarginRight:
		y = st.top - h - 2
		x = st.marginX(l.Position, w)
	case scene.PosBMarginLeft, scene.PosBMarginCenter, scene.PosBMarginRight:
		y = st.bottom + 20
		x = st.marginX(l.Position, w)
	}

	if l.ShowBorder {
		canvas.Rect(x, y, w, h, "fill:#ffffff;stroke:#000000;stroke-width:1")
	}

	cols := l.Columns
	if cols < 1 {
		cols = 1
	}
	colW := (w - legendPad) / float64(cols)
	for i, e := range l.Entries {
		col := i % cols
		row := i / cols
		ex := x + legendPad + float64(col)*colW
		ey := y + legendPad + float64(row)*legendRowH + legendRowH/2
		style := fmt.Sprintf("stroke:%s;stroke-width:2", e.Color)
		if dash := dashArray(e.LineStyle); dash != "" {
			canvas.Line(ex, ey, ex+legendSwatchW, ey, style, `stroke-dasharray="`+dash+`"`)
		} else {
			canvas.Line(ex, ey, ex+legendSwatchW, ey, style)
		}
		canvas.Text(ex+legendSwatchW+6, ey, e.Label, `dy=".32em"`)
	}
}

func (st *state) marginX(pos scene.LegendPos, w float64) float64 {
	switch pos {
	case scene.PosTMarginLeft, scene.PosBMarginLeft:
		return st.left
	case scene.PosTMarginCenter, scene.PosBMarginCenter:
		return (st.left + st.right - w) / 2
	}
	return st.right - w
}

// measure estimates the rendered width of s in pixels at the document
// font size, using the basicfont metrics scaled from its native size.
func measure(s string) float64 {
	adv := font.MeasureString(basicfont.Face7x13, s)
	return float64(adv.Ceil()) * fontSize / 13.0
}

func finite(x float64) bool {
	return !(math.IsNaN(x) || math.IsInf(x, 0))
}

// fmtF formats a float compactly and locale-independently.
func fmtF(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
