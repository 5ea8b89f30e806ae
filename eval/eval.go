// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/aclements/go-gnuplot/expr"
)

// Evaluator walks an expression AST over a Context. It implements
// expr.Visitor; every visit result is a complex128.
type Evaluator struct {
	ctx *Context
	src string // source text for error snippets, may be empty
}

// New returns an evaluator over ctx.
func New(ctx *Context) *Evaluator {
	return &Evaluator{ctx: ctx}
}

// NewWithSource is like New but attaches the expression source text so
// evaluation errors can carry a snippet with a caret pointer.
func NewWithSource(ctx *Context, src string) *Evaluator {
	return &Evaluator{ctx: ctx, src: src}
}

// Eval evaluates a parsed node.
func (e *Evaluator) Eval(n expr.Node) (complex128, error) {
	v, err := n.Accept(e)
	if err != nil {
		return 0, err
	}
	return v.(complex128), nil
}

// EvalReal evaluates n and extracts the real part. A stray imaginary
// component is not an error; it is simply dropped.
func (e *Evaluator) EvalReal(n expr.Node) (float64, error) {
	v, err := e.Eval(n)
	if err != nil {
		return 0, err
	}
	return real(v), nil
}

// EvalString parses and evaluates src in one step.
func (e *Evaluator) EvalString(src string) (complex128, error) {
	n, err := expr.Parse(src)
	if err != nil {
		return 0, err
	}
	saved := e.src
	e.src = src
	defer func() { e.src = saved }()
	return e.Eval(n)
}

func (e *Evaluator) errorf(pos expr.Pos, format string, args ...interface{}) error {
	return &Error{Msg: fmt.Sprintf(format, args...), Pos: pos, Expr: e.src}
}

func isTrue(v complex128) bool {
	return real(v) != 0 || imag(v) != 0
}

func boolVal(b bool) complex128 {
	if b {
		return 1
	}
	return 0
}

func (e *Evaluator) VisitNumber(n *expr.NumberLit) (interface{}, error) {
	return complex(n.Value, 0), nil
}

func (e *Evaluator) VisitIdent(n *expr.Ident) (interface{}, error) {
	v, ok := e.ctx.Var(n.Name)
	if !ok {
		return nil, e.errorf(n.Pos(), "undefined variable %q", n.Name)
	}
	return complex(v, 0), nil
}

func (e *Evaluator) VisitBinary(n *expr.BinaryExpr) (interface{}, error) {
	// Logical operators short-circuit.
	switch n.Op {
	case expr.OpAnd, expr.OpOr:
		l, err := e.Eval(n.Left)
		if err != nil {
			return nil, err
		}
		if n.Op == expr.OpAnd && !isTrue(l) {
			return complex128(0), nil
		}
		if n.Op == expr.OpOr && isTrue(l) {
			return complex128(1), nil
		}
		r, err := e.Eval(n.Right)
		if err != nil {
			return nil, err
		}
		return boolVal(isTrue(r)), nil
	}

	l, err := e.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	r, err := e.Eval(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case expr.OpAdd:
		return l + r, nil
	case expr.OpSub:
		return l - r, nil
	case expr.OpMul:
		return l * r, nil
	case expr.OpDiv:
		if r == 0 {
			// Division by zero is a value, not a failure.
			return complex(math.NaN(), math.NaN()), nil
		}
		return l / r, nil
	case expr.OpMod:
		if real(r) == 0 {
			return nil, e.errorf(n.Pos(), "domain error: modulo by zero")
		}
		return complex(math.Mod(real(l), real(r)), 0), nil
	case expr.OpPow:
		return pow(l, r), nil
	case expr.OpLt:
		return boolVal(real(l) < real(r)), nil
	case expr.OpLe:
		return boolVal(real(l) <= real(r)), nil
	case expr.OpGt:
		return boolVal(real(l) > real(r)), nil
	case expr.OpGe:
		return boolVal(real(l) >= real(r)), nil
	case expr.OpEq:
		return boolVal(real(l) == real(r)), nil
	case expr.OpNe:
		return boolVal(real(l) != real(r)), nil
	case expr.OpBitAnd:
		return complex(float64(int64(real(l))&int64(real(r))), 0), nil
	case expr.OpBitOr:
		return complex(float64(int64(real(l))|int64(real(r))), 0), nil
	case expr.OpBitXor:
		return complex(float64(int64(real(l))^int64(real(r))), 0), nil
	}
	return nil, e.errorf(n.Pos(), "unsupported binary operator %q", n.Op)
}

// pow computes l ** r, with a real fast path when both operands are
// purely real and the base is non-negative.
func pow(l, r complex128) complex128 {
	if imag(l) == 0 && imag(r) == 0 && real(l) >= 0 {
		return complex(math.Pow(real(l), real(r)), 0)
	}
	return cmplx.Pow(l, r)
}

func (e *Evaluator) VisitUnary(n *expr.UnaryExpr) (interface{}, error) {
	v, err := e.Eval(n.Child)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case expr.OpNeg:
		// Negating a purely real value keeps a +0 imaginary part, so
		// -1 stays on the upper side of branch cuts: sqrt(-1) is i.
		if imag(v) == 0 {
			return complex(-real(v), 0), nil
		}
		return -v, nil
	case expr.OpPlus:
		return v, nil
	case expr.OpNot:
		return boolVal(!isTrue(v)), nil
	case expr.OpBitNot:
		return complex(float64(^int64(real(v))), 0), nil
	}
	return nil, e.errorf(n.Pos(), "unsupported unary operator %q", n.Op)
}

func (e *Evaluator) VisitTernary(n *expr.Ternary) (interface{}, error) {
	cond, err := e.Eval(n.Cond)
	if err != nil {
		return nil, err
	}
	// Only the selected branch is evaluated.
	if isTrue(cond) {
		return e.Eval(n.Then)
	}
	return e.Eval(n.Else)
}

func (e *Evaluator) VisitAssign(n *expr.Assign) (interface{}, error) {
	v, err := e.Eval(n.Value)
	if err != nil {
		return nil, err
	}
	// The context stores reals; the full value is still the result.
	e.ctx.SetVar(n.Name, real(v))
	return v, nil
}

func (e *Evaluator) VisitSequence(n *expr.Sequence) (interface{}, error) {
	if _, err := e.Eval(n.Left); err != nil {
		return nil, err
	}
	return e.Eval(n.Right)
}

func (e *Evaluator) VisitCall(n *expr.Call) (interface{}, error) {
	// Dispatch priority: user-defined, then complex-aware builtin,
	// then real-valued builtin.
	if f, ok := e.ctx.UserFuncNamed(n.Name); ok {
		return e.callUser(n, f)
	}
	if f, ok := e.ctx.cplx[n.Name]; ok {
		if len(n.Args) != f.Arity {
			return nil, e.arityError(n, f.Arity)
		}
		args := make([]complex128, len(n.Args))
		for i, a := range n.Args {
			v, err := e.Eval(a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return f.Fn(args), nil
	}
	if f, ok := e.ctx.real[n.Name]; ok {
		if len(n.Args) != f.Arity {
			return nil, e.arityError(n, f.Arity)
		}
		args := make([]float64, len(n.Args))
		for i, a := range n.Args {
			v, err := e.EvalReal(a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return complex(f.Fn(args), 0), nil
	}
	return nil, e.errorf(n.Pos(), "undefined function %q", n.Name)
}

func (e *Evaluator) arityError(n *expr.Call, want int) error {
	return e.errorf(n.Pos(), "function %q expects %d argument(s), got %d",
		n.Name, want, len(n.Args))
}

// callUser evaluates a user-defined function. Parameter names are
// saved in the flat variable map, bound to the argument real parts,
// and restored (or deleted) on every exit path. The body text is
// parsed fresh on each call.
func (e *Evaluator) callUser(n *expr.Call, f UserFunc) (interface{}, error) {
	if len(n.Args) != len(f.Params) {
		return nil, e.arityError(n, len(f.Params))
	}

	args := make([]float64, len(n.Args))
	for i, a := range n.Args {
		v, err := e.EvalReal(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	body, err := expr.Parse(f.Body)
	if err != nil {
		return nil, e.errorf(n.Pos(), "in function %q: %v", n.Name, err)
	}

	type saved struct {
		value  float64
		wasSet bool
	}
	prior := make([]saved, len(f.Params))
	for i, p := range f.Params {
		v, ok := e.ctx.Var(p)
		prior[i] = saved{value: v, wasSet: ok}
		e.ctx.SetVar(p, args[i])
	}
	defer func() {
		for i, p := range f.Params {
			if prior[i].wasSet {
				e.ctx.SetVar(p, prior[i].value)
			} else {
				e.ctx.RemoveVar(p)
			}
		}
	}()

	inner := NewWithSource(e.ctx, f.Body)
	v, err := inner.Eval(body)
	if err != nil {
		if ee, ok := err.(*Error); ok {
			return nil, e.errorf(n.Pos(), "in function %q: %s", n.Name, ee.Msg)
		}
		return nil, err
	}
	return v, nil
}
