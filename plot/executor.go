// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot executes parsed gnuplot scripts. The Executor is a
// state machine driven by command objects: set/unset mutate plot
// state, plot and splot sample their specs and assemble scenes, and
// the accumulated scenes are flushed to SVG files when execution
// finishes. One executor owns one evaluation context and one scene
// list; executors are not safe for concurrent use, but distinct
// executors are independent.
package plot

import (
	"math"
	"strconv"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/aclements/go-gnuplot/command"
	"github.com/aclements/go-gnuplot/eval"
	"github.com/aclements/go-gnuplot/expr"
	"github.com/aclements/go-gnuplot/scene"
)

// defaultPalette is cycled across the specs of one plot command.
var defaultPalette = []string{
	"#9400D3", "#009E73", "#56B4E9", "#E69F00",
	"#F0E442", "#0072B2", "#D55E00", "#CC79A7",
}

const defaultSamples = 100

// rangeSetting is one axis range: explicit bounds or autoscale per
// side.
type rangeSetting struct {
	min, max         float64
	autoMin, autoMax bool
}

func autoRange() rangeSetting { return rangeSetting{autoMin: true, autoMax: true} }

// keyState holds the legend settings. The vertical and horizontal
// anchors are stored independently and only combined at scene
// assembly: `set key bmargin center` followed by `set key left` must
// yield bmargin_left, not top_left.
type keyState struct {
	vertical    string // top, bottom, center, tmargin, bmargin
	horizontal  string // left, right, center
	showBorder  bool
	horizLayout bool
}

type dgridState struct {
	enabled    bool
	rows, cols int
	mode       string
	norm       float64
}

type execState struct {
	title, xlabel, ylabel string
	samples               int
	grid                  bool
	border                bool
	output                string
	xr, yr, zr            rangeSetting
	key                   keyState
	styleData             string
	dgrid                 dgridState

	plots2D []*scene.LinePlot
	plots3D []*scene.SurfacePlot3D
}

func defaultState() execState {
	return execState{
		samples:   defaultSamples,
		border:    true,
		xr:        autoRange(),
		yr:        autoRange(),
		zr:        autoRange(),
		key:       keyState{vertical: "top", horizontal: "right"},
		styleData: "points",
		dgrid:     dgridState{rows: 10, cols: 10, mode: "qnorm", norm: 1},
	}
}

// Executor runs scripts and accumulates scenes.
type Executor struct {
	ctx    *eval.Context
	logger *zap.SugaredLogger
	clk    clock.Clock

	scriptName string
	searchDirs []string

	st      execState
	scenes  []*scene.Scene
	outputs []string // `set output` value in effect per scene
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the diagnostic stream. Warnings never abort
// execution.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(ex *Executor) {
		if l != nil {
			ex.logger = l
		}
	}
}

// WithClock substitutes the clock used by the pause command.
func WithClock(c clock.Clock) Option {
	return func(ex *Executor) { ex.clk = c }
}

// WithScriptName sets the name default output files derive from.
func WithScriptName(name string) Option {
	return func(ex *Executor) { ex.scriptName = name }
}

// WithSearchDirs appends directories searched for data files.
func WithSearchDirs(dirs ...string) Option {
	return func(ex *Executor) { ex.searchDirs = append(ex.searchDirs, dirs...) }
}

// New returns an executor with a fresh evaluation context.
func New(opts ...Option) *Executor {
	ex := &Executor{
		ctx:        eval.NewContext(),
		logger:     zap.NewNop().Sugar(),
		clk:        clock.New(),
		searchDirs: []string{".", "demo"},
		st:         defaultState(),
	}
	for _, o := range opts {
		o(ex)
	}
	return ex
}

// Context exposes the evaluation context for embedders.
func (ex *Executor) Context() *eval.Context { return ex.ctx }

// Scenes returns the scenes accumulated so far.
func (ex *Executor) Scenes() []*scene.Scene { return ex.scenes }

// ExecuteString parses and executes a script.
func (ex *Executor) ExecuteString(script string) error {
	cmds, err := command.Parse(script)
	if err != nil {
		return err
	}
	return ex.Execute(cmds)
}

// Execute runs a parsed command sequence in order.
func (ex *Executor) Execute(cmds []command.Command) error {
	for _, cmd := range cmds {
		if err := ex.execute(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (ex *Executor) execute(cmd command.Command) error {
	switch cmd := cmd.(type) {
	case command.Set:
		return ex.doSet(cmd)
	case command.Unset:
		ex.doUnset(cmd)
		return nil
	case command.Plot:
		return ex.doPlot(cmd)
	case command.Splot:
		return ex.doSplot(cmd)
	case command.Pause:
		ex.doPause(cmd)
		return nil
	case command.Reset:
		ex.doReset()
		return nil
	case command.Assign:
		return ex.doAssign(cmd)
	case command.DefineFunc:
		ex.ctx.DefineFunc(cmd.Name, cmd.Params, cmd.Body)
		return nil
	}
	ex.logger.Warnf("ignoring unsupported command %T", cmd)
	return nil
}

func (ex *Executor) doSet(cmd command.Set) error {
	arg0 := ""
	if len(cmd.Args) > 0 {
		arg0 = cmd.Args[0]
	}
	switch cmd.Option {
	case "title":
		ex.st.title = arg0
	case "xlabel":
		ex.st.xlabel = arg0
	case "ylabel":
		ex.st.ylabel = arg0
	case "samples":
		n, err := strconv.Atoi(arg0)
		if err != nil || n < 2 {
			ex.logger.Warnf("set samples: bad count %q; keeping %d", cmd.Raw, ex.st.samples)
			return nil
		}
		ex.st.samples = n
	case "grid":
		ex.st.grid = true
	case "border":
		ex.st.border = true
	case "output":
		ex.st.output = arg0
	case "key":
		ex.setKey(cmd.Args)
	case "style":
		if arg0 == "data" && len(cmd.Args) > 1 {
			ex.st.styleData = cmd.Args[1]
		} else {
			ex.logger.Warnf("ignoring unsupported style setting %q", cmd.Raw)
		}
	case "dgrid3d":
		ex.setDgrid3d(cmd.Args)
	case "xrange", "yrange", "zrange":
		r, err := command.ParseRangeSpec(cmd.Raw)
		if err != nil {
			ex.logger.Warnf("set %s: %v", cmd.Option, err)
			return nil
		}
		rs, err := ex.resolveRange(r, autoRange())
		if err != nil {
			return err
		}
		switch cmd.Option {
		case "xrange":
			ex.st.xr = rs
		case "yrange":
			ex.st.yr = rs
		case "zrange":
			ex.st.zr = rs
		}
	default:
		// Unknown options are ignored by design.
		ex.logger.Warnf("ignoring unknown set option %q", cmd.Option)
	}
	return nil
}

// setKey updates the legend sub-state. Each token touches only its own
// field; fields not mentioned keep their previous value.
func (ex *Executor) setKey(args []string) {
	sawCenter := false
	for _, a := range args {
		switch a {
		case "top", "bottom", "tmargin", "bmargin":
			ex.st.key.vertical = a
		case "left", "right":
			ex.st.key.horizontal = a
		case "center":
			// A single center applies horizontally; a second one
			// in the same command centres both axes.
			if sawCenter {
				ex.st.key.vertical = "center"
			}
			ex.st.key.horizontal = "center"
			sawCenter = true
		case "box":
			ex.st.key.showBorder = true
		case "nobox":
			ex.st.key.showBorder = false
		case "horizontal":
			ex.st.key.horizLayout = true
		case "vertical":
			ex.st.key.horizLayout = false
		default:
			ex.logger.Warnf("ignoring unknown key setting %q", a)
		}
	}
}

func (ex *Executor) setDgrid3d(args []string) {
	d := &ex.st.dgrid
	d.enabled = true
	if len(args) == 0 {
		return
	}
	// rows[,cols[,mode[,norm]]] — accept both comma- and
	// whitespace-separated forms.
	var fields []string
	for _, a := range args {
		for _, f := range splitList(a) {
			if f != "" {
				fields = append(fields, f)
			}
		}
	}
	for i, f := range fields {
		switch i {
		case 0, 1:
			n, err := strconv.Atoi(f)
			if err != nil || n < 2 {
				ex.logger.Warnf("dgrid3d: bad grid size %q", f)
				continue
			}
			if i == 0 {
				d.rows = n
				d.cols = n
			} else {
				d.cols = n
			}
		case 2:
			switch f {
			case "qnorm", "gauss", "cauchy", "exp", "box":
				d.mode = f
			default:
				ex.logger.Warnf("dgrid3d: unknown mode %q", f)
			}
		case 3:
			norm, err := strconv.ParseFloat(f, 64)
			if err != nil {
				ex.logger.Warnf("dgrid3d: bad norm %q", f)
				continue
			}
			d.norm = norm
		}
	}
}

func splitList(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return out
}

func (ex *Executor) doUnset(cmd command.Unset) {
	switch cmd.Option {
	case "grid":
		ex.st.grid = false
	case "border":
		ex.st.border = false
	case "title":
		ex.st.title = ""
	case "xlabel":
		ex.st.xlabel = ""
	case "ylabel":
		ex.st.ylabel = ""
	case "dgrid3d":
		ex.st.dgrid.enabled = false
	case "key":
		ex.st.key = keyState{vertical: "top", horizontal: "right"}
	case "output":
		ex.st.output = ""
	default:
		ex.logger.Warnf("ignoring unknown unset option %q", cmd.Option)
	}
}

func (ex *Executor) doAssign(cmd command.Assign) error {
	ev := eval.NewWithSource(ex.ctx, cmd.Expr)
	v, err := ev.EvalString(cmd.Expr)
	if err != nil {
		return errors.Wrapf(err, "in assignment to %q", cmd.Name)
	}
	ex.ctx.SetVar(cmd.Name, real(v))
	return nil
}

func (ex *Executor) doPause(cmd command.Pause) {
	if cmd.Message != "" {
		ex.logger.Infof("pause: %s", cmd.Message)
	}
	if cmd.Seconds < 0 {
		// `pause -1` waits for input interactively; scripted
		// execution continues immediately.
		return
	}
	ex.clk.Sleep(time.Duration(cmd.Seconds * float64(time.Second)))
}

// doReset restores plot state defaults: title and labels cleared,
// samples back to 100, grid off, in-flight plots and variables
// dropped. Completed scenes and the function registry survive.
func (ex *Executor) doReset() {
	ex.st.title = ""
	ex.st.xlabel = ""
	ex.st.ylabel = ""
	ex.st.samples = defaultSamples
	ex.st.grid = false
	ex.st.plots2D = nil
	ex.st.plots3D = nil
	ex.ctx.ClearVars()
}

// resolveRange produces a concrete range setting from an optional
// command range, falling back to fb. Bound expressions are evaluated
// in the executor's context.
func (ex *Executor) resolveRange(r *command.Range, fb rangeSetting) (rangeSetting, error) {
	if r == nil {
		return fb, nil
	}
	out := rangeSetting{autoMin: r.AutoMin, autoMax: r.AutoMax}
	ev := eval.New(ex.ctx)
	if !r.AutoMin {
		v, err := ev.EvalString(r.MinExpr)
		if err != nil {
			return out, errors.Wrapf(err, "in range bound %q", r.MinExpr)
		}
		out.min = real(v)
	}
	if !r.AutoMax {
		v, err := ev.EvalString(r.MaxExpr)
		if err != nil {
			return out, errors.Wrapf(err, "in range bound %q", r.MaxExpr)
		}
		out.max = real(v)
	}
	return out, nil
}

// resolveStyle applies the three-level style fallback: an explicit
// `with` wins; data-file specs then take the `style data` setting;
// function specs default to lines.
func (ex *Executor) resolveStyle(spec command.PlotSpec) string {
	if spec.Style != "" {
		return spec.Style
	}
	if spec.DataFile != "" {
		return ex.st.styleData
	}
	return "lines"
}

func (ex *Executor) plotStyle(name string) scene.PlotStyle {
	switch name {
	case "lines":
		return scene.StyleLines
	case "points":
		return scene.StylePoints
	case "linespoints":
		return scene.StyleLinespoints
	case "impulses":
		return scene.StyleImpulses
	case "dots":
		return scene.StyleDots
	}
	ex.logger.Warnf("unknown plot style %q; using lines", name)
	return scene.StyleLines
}

func (ex *Executor) doPlot(cmd command.Plot) error {
	ex.st.plots2D = nil

	xr, err := ex.resolveRange(cmd.XRange, ex.st.xr)
	if err != nil {
		return err
	}
	yr, err := ex.resolveRange(cmd.YRange, ex.st.yr)
	if err != nil {
		return err
	}

	for i, spec := range cmd.Specs {
		color := defaultPalette[i%len(defaultPalette)]
		styleName := ex.resolveStyle(spec)

		var pts []scene.Point
		var label string
		if spec.DataFile != "" {
			pts, err = ex.readDataFile2D(spec.DataFile)
			if err != nil {
				ex.logger.Warnf("%v", err)
				pts = nil
			}
			label = spec.DataFile
		} else {
			node, perr := expr.Parse(spec.Expr)
			if perr != nil {
				return perr
			}
			sampleRange, rerr := ex.specSampleRange(spec.Range, xr)
			if rerr != nil {
				return rerr
			}
			pts = ex.sample(node, spec.Expr, sampleRange)
			label = spec.Expr
		}
		if spec.HasTitle {
			label = spec.Title
		}

		ex.st.plots2D = append(ex.st.plots2D, &scene.LinePlot{
			ID:     "plot-" + strconv.Itoa(i+1),
			Points: pts,
			Color:  color,
			Style:  ex.plotStyle(styleName),
			Label:  label,
		})
	}

	ex.appendScene(ex.assemble2D(xr, yr))
	return nil
}

func (ex *Executor) appendScene(sc *scene.Scene) {
	ex.scenes = append(ex.scenes, sc)
	ex.outputs = append(ex.outputs, ex.st.output)
}

// specSampleRange decides the sampling interval of one function spec:
// the per-spec range when present, the command/current x-range
// otherwise, with autoscaled sides falling back to the default span.
func (ex *Executor) specSampleRange(r *command.Range, xr rangeSetting) (rangeSetting, error) {
	out, err := ex.resolveRange(r, xr)
	if err != nil {
		return out, err
	}
	if out.autoMin {
		out.min = -10
	}
	if out.autoMax {
		out.max = 10
	}
	return out, nil
}

func (ex *Executor) doSplot(cmd command.Splot) error {
	ex.st.plots3D = nil

	for i, spec := range cmd.Specs {
		color := defaultPalette[i%len(defaultPalette)]
		if spec.DataFile == "" {
			// 3D function sampling is unsupported; warn and move on.
			ex.logger.Warnf("splot: function plotting is not supported; skipping %q", spec.Expr)
			continue
		}

		pts, err := ex.readDataFile3D(spec.DataFile)
		if err != nil {
			ex.logger.Warnf("%v", err)
			continue
		}
		label := spec.DataFile
		if spec.HasTitle {
			label = spec.Title
		}

		sp := &scene.SurfacePlot3D{
			ID:     "splot-" + strconv.Itoa(i+1),
			Points: pts,
			Style:  style3D(ex.resolveStyle(spec)),
			Color:  color,
			Label:  label,
		}
		if ex.st.dgrid.enabled {
			d := ex.st.dgrid
			sp.Points = gridInterpolate(pts, d.rows, d.cols, d.mode, d.norm)
			sp.Rows, sp.Cols = d.rows, d.cols
			sp.Style = scene.Style3DLines
		}
		ex.st.plots3D = append(ex.st.plots3D, sp)
	}

	sc, err := ex.assemble3D(cmd)
	if err != nil {
		return err
	}
	ex.appendScene(sc)
	return nil
}

func style3D(name string) scene.Style3D {
	switch name {
	case "lines":
		return scene.Style3DLines
	case "dots":
		return scene.Style3DDots
	case "surface":
		return scene.Style3DSurface
	}
	return scene.Style3DPoints
}

func (ex *Executor) sample(node expr.Node, src string, r rangeSetting) []scene.Point {
	n := ex.st.samples
	if n < 2 {
		n = 2
	}
	ev := eval.NewWithSource(ex.ctx, src)
	pts := make([]scene.Point, n)
	for i := 0; i < n; i++ {
		// The x variable is deliberately not restored between
		// samples or after the sweep.
		x := r.min + float64(i)*(r.max-r.min)/float64(n-1)
		ex.ctx.SetVar("x", x)
		y, err := ev.EvalReal(node)
		if err != nil {
			y = math.NaN()
		}
		pts[i] = scene.Point{X: x, Y: y}
	}
	return pts
}
