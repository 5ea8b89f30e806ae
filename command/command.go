// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package command parses gnuplot scripts into command objects. The
// grammar here is line-oriented and entirely separate from the
// expression grammar in package expr; expression text inside commands
// (plot specs, assignments, range bounds) is carried verbatim and
// parsed later by the consumer.
package command

// Command is one parsed script directive.
type Command interface {
	command()
}

// Set assigns a value to an option: `set <option> [value]`. Args holds
// the whitespace-split value tokens with quotes resolved; Raw is the
// unsplit remainder of the line.
type Set struct {
	Option string
	Args   []string
	Raw    string
}

// Unset clears an option: `unset <option>`.
type Unset struct {
	Option string
}

// Range is one `[min:max]` range. Bounds are expression text; an
// empty or `*` bound autoscales that side.
type Range struct {
	MinExpr string
	MaxExpr string
	AutoMin bool
	AutoMax bool
}

// PlotSpec is one element of a plot or splot command: an expression or
// a quoted data file, with optional per-spec range, title and style.
type PlotSpec struct {
	Expr     string // expression text; empty when DataFile is set
	DataFile string // quoted data file reference
	Range    *Range
	Title    string
	HasTitle bool
	Style    string // "" means unresolved; see executor style fallback
}

// Plot is a 2D plot command.
type Plot struct {
	XRange *Range
	YRange *Range
	Specs  []PlotSpec
}

// Splot is a 3D plot command.
type Splot struct {
	XRange *Range
	YRange *Range
	ZRange *Range
	Specs  []PlotSpec
}

// Pause suspends execution: `pause <seconds> ["message"]`. Negative
// seconds mean "wait for input" in gnuplot; scripted execution treats
// that as a no-op.
type Pause struct {
	Seconds float64
	Message string
}

// Reset restores default plot state.
type Reset struct{}

// Assign is `<ident> = <expression>`.
type Assign struct {
	Name string
	Expr string
}

// DefineFunc is `<ident>(<params>) = <expression>`. The body is kept
// as text and parsed at call time.
type DefineFunc struct {
	Name   string
	Params []string
	Body   string
}

func (Set) command()        {}
func (Unset) command()      {}
func (Plot) command()       {}
func (Splot) command()      {}
func (Pause) command()      {}
func (Reset) command()      {}
func (Assign) command()     {}
func (DefineFunc) command() {}
