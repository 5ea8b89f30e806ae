// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"strconv"
	"strings"
)

// Op identifies a unary or binary operator.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpBitXor

	OpNeg
	OpPlus
	OpNot
	OpBitNot
)

var opText = map[Op]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
	OpPow: "**", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpEq: "==", OpNe: "!=", OpAnd: "&&", OpOr: "||",
	OpBitAnd: "&", OpBitOr: "|", OpBitXor: "^",
	OpNeg: "-", OpPlus: "+", OpNot: "!", OpBitNot: "~",
}

func (op Op) String() string { return opText[op] }

// Node is an expression AST node. Nodes are immutable once constructed;
// evaluators borrow them without copying.
type Node interface {
	Pos() Pos
	Accept(v Visitor) (interface{}, error)
	String() string
}

// Visitor has one method per node kind. Accept double-dispatches to
// the matching method.
type Visitor interface {
	VisitNumber(n *NumberLit) (interface{}, error)
	VisitIdent(n *Ident) (interface{}, error)
	VisitBinary(n *BinaryExpr) (interface{}, error)
	VisitUnary(n *UnaryExpr) (interface{}, error)
	VisitCall(n *Call) (interface{}, error)
	VisitTernary(n *Ternary) (interface{}, error)
	VisitAssign(n *Assign) (interface{}, error)
	VisitSequence(n *Sequence) (interface{}, error)
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
	pos   Pos
}

// Ident is a variable reference.
type Ident struct {
	Name string
	pos  Pos
}

// BinaryExpr applies Op to Left and Right.
type BinaryExpr struct {
	Op    Op
	Left  Node
	Right Node
	pos   Pos
}

// UnaryExpr applies a prefix Op to Child.
type UnaryExpr struct {
	Op    Op
	Child Node
	pos   Pos
}

// Call invokes the function Name with Args. Arity is checked at
// evaluation time against the function's declaration.
type Call struct {
	Name string
	Args []Node
	pos  Pos
}

// Ternary is cond ? then : else.
type Ternary struct {
	Cond Node
	Then Node
	Else Node
	pos  Pos
}

// Assign stores the value of Value under Name. Evaluating an Assign
// yields the assigned value.
type Assign struct {
	Name  string
	Value Node
	pos   Pos
}

// Sequence is the comma operator: evaluate Left, discard it, yield
// Right.
type Sequence struct {
	Left  Node
	Right Node
	pos   Pos
}

func (n *NumberLit) Pos() Pos  { return n.pos }
func (n *Ident) Pos() Pos      { return n.pos }
func (n *BinaryExpr) Pos() Pos { return n.pos }
func (n *UnaryExpr) Pos() Pos  { return n.pos }
func (n *Call) Pos() Pos       { return n.pos }
func (n *Ternary) Pos() Pos    { return n.pos }
func (n *Assign) Pos() Pos     { return n.pos }
func (n *Sequence) Pos() Pos   { return n.pos }

func (n *NumberLit) Accept(v Visitor) (interface{}, error)  { return v.VisitNumber(n) }
func (n *Ident) Accept(v Visitor) (interface{}, error)      { return v.VisitIdent(n) }
func (n *BinaryExpr) Accept(v Visitor) (interface{}, error) { return v.VisitBinary(n) }
func (n *UnaryExpr) Accept(v Visitor) (interface{}, error)  { return v.VisitUnary(n) }
func (n *Call) Accept(v Visitor) (interface{}, error)       { return v.VisitCall(n) }
func (n *Ternary) Accept(v Visitor) (interface{}, error)    { return v.VisitTernary(n) }
func (n *Assign) Accept(v Visitor) (interface{}, error)     { return v.VisitAssign(n) }
func (n *Sequence) Accept(v Visitor) (interface{}, error)   { return v.VisitSequence(n) }

// String renders a node back to parseable text. Binary and unary
// expressions are fully parenthesised so that re-parsing the result
// yields an equivalent tree.
func (n *NumberLit) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *Ident) String() string { return n.Name }

func (n *BinaryExpr) String() string {
	return "(" + n.Left.String() + " " + n.Op.String() + " " + n.Right.String() + ")"
}

func (n *UnaryExpr) String() string {
	return "(" + n.Op.String() + n.Child.String() + ")"
}

func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Name + "(" + strings.Join(args, ", ") + ")"
}

func (n *Ternary) String() string {
	return "(" + n.Cond.String() + " ? " + n.Then.String() + " : " + n.Else.String() + ")"
}

func (n *Assign) String() string {
	return n.Name + " = " + n.Value.String()
}

func (n *Sequence) String() string {
	return n.Left.String() + ", " + n.Right.String()
}
