// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eval evaluates gnuplot expression ASTs. Evaluation is
// internally complex-valued: every intermediate is a complex128, and
// callers that want a real extract the real part. The Context carries
// variables, builtin functions and user-defined functions; one context
// lives per executor instance and is never shared across goroutines.
package eval

import "math"

// RealFunc is a real-valued builtin.
type RealFunc struct {
	Arity int
	Fn    func(args []float64) float64
}

// ComplexFunc is a complex-aware builtin. Complex builtins take
// precedence over real ones with the same name.
type ComplexFunc struct {
	Arity int
	Fn    func(args []complex128) complex128
}

// UserFunc is a user-defined function. The body is stored as unparsed
// text and re-parsed on every call, which matches gnuplot's behaviour.
// Free variables in the body are looked up when the function is
// called, so later variable bindings are visible to it.
type UserFunc struct {
	Params []string
	Body   string
}

// Context holds the mutable evaluation state: variables, the builtin
// registries and user-defined functions.
type Context struct {
	vars  map[string]float64
	real  map[string]RealFunc
	cplx  map[string]ComplexFunc
	users map[string]UserFunc
}

// NewContext returns a context with pi and e predefined and the full
// builtin library bound.
func NewContext() *Context {
	ctx := &Context{
		vars:  make(map[string]float64),
		real:  make(map[string]RealFunc),
		cplx:  make(map[string]ComplexFunc),
		users: make(map[string]UserFunc),
	}
	ctx.bindConstants()
	bindBuiltins(ctx)
	return ctx
}

func (ctx *Context) bindConstants() {
	ctx.vars["pi"] = math.Pi
	ctx.vars["e"] = math.E
}

// SetVar binds name to a real value.
func (ctx *Context) SetVar(name string, value float64) {
	ctx.vars[name] = value
}

// Var looks up a variable.
func (ctx *Context) Var(name string) (float64, bool) {
	v, ok := ctx.vars[name]
	return v, ok
}

// RemoveVar deletes a variable binding if present.
func (ctx *Context) RemoveVar(name string) {
	delete(ctx.vars, name)
}

// ClearVars drops every variable and rebinds the predefined
// constants. Builtin and user-defined functions survive.
func (ctx *Context) ClearVars() {
	ctx.vars = make(map[string]float64)
	ctx.bindConstants()
}

// RegisterFunc binds a real-valued builtin.
func (ctx *Context) RegisterFunc(name string, arity int, fn func(args []float64) float64) {
	ctx.real[name] = RealFunc{Arity: arity, Fn: fn}
}

// RegisterComplexFunc binds a complex-valued builtin.
func (ctx *Context) RegisterComplexFunc(name string, arity int, fn func(args []complex128) complex128) {
	ctx.cplx[name] = ComplexFunc{Arity: arity, Fn: fn}
}

// DefineFunc defines or replaces a user function. The body text is
// parsed at call time, not here.
func (ctx *Context) DefineFunc(name string, params []string, body string) {
	ctx.users[name] = UserFunc{Params: params, Body: body}
}

// UserFuncNamed looks up a user-defined function.
func (ctx *Context) UserFuncNamed(name string) (UserFunc, bool) {
	f, ok := ctx.users[name]
	return f, ok
}
