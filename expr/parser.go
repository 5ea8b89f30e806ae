// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package expr implements gnuplot's arithmetic expression language: a
// lexer, a recursive-descent parser with 14 precedence levels, and an
// immutable AST with a visitor contract. Evaluation lives in the eval
// package.
package expr

import (
	"strconv"

	"github.com/pkg/errors"
)

// Parse parses a single expression and returns its AST. On failure it
// returns a *ParseError carrying every syntax error found, each with
// line, column and an optional suggestion. Empty input is rejected
// before tokenisation.
func Parse(src string) (Node, error) {
	if len(src) == 0 {
		return nil, errors.New("expr: empty expression")
	}
	blank := true
	for i := 0; i < len(src); i++ {
		if c := src[i]; c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			blank = false
			break
		}
	}
	if blank {
		return nil, errors.New("expr: empty expression")
	}

	lx := newLexer(src)
	toks := lx.lex()
	p := &parser{src: src, toks: toks, errs: lx.errs}
	node := p.parseSequence()
	if p.cur().kind != tokEOF {
		p.unexpected(p.cur())
	}
	if len(p.errs) > 0 {
		return nil, &ParseError{Src: src, Errors: p.errs}
	}
	return node, nil
}

type parser struct {
	src  string
	toks []token
	idx  int
	errs []SyntaxError
}

func (p *parser) cur() token { return p.toks[p.idx] }

func (p *parser) next() token {
	t := p.toks[p.idx]
	if t.kind != tokEOF {
		p.idx++
	}
	return t
}

func (p *parser) at(k tokKind) bool { return p.cur().kind == k }

func (p *parser) accept(k tokKind) (token, bool) {
	if p.at(k) {
		return p.next(), true
	}
	return token{}, false
}

func (p *parser) errorAt(t token, msg, suggestion string) {
	p.errs = append(p.errs, SyntaxError{Pos: t.pos, Msg: msg, Suggestion: suggestion})
}

func (p *parser) unexpected(t token) {
	switch t.kind {
	case tokEOF:
		p.errorAt(t, "unexpected end of expression", "the expression appears to be incomplete")
	case tokIdent, tokNumber:
		p.errorAt(t, "unexpected "+tokNames[t.kind]+" "+strconv.Quote(t.text),
			"a binary operator may be missing before it")
	default:
		p.errorAt(t, "unexpected "+tokNames[t.kind], "")
	}
}

// sync skips tokens until a point the comma level can resume from:
// a top-level ',' or ')' or the end of input. depth counts the
// parentheses opened while skipping, so their ',' and ')' are passed
// over.
func (p *parser) sync() {
	depth := 0
	for {
		switch p.cur().kind {
		case tokEOF:
			return
		case tokLParen:
			depth++
		case tokRParen:
			if depth == 0 {
				return
			}
			depth--
		case tokComma:
			if depth == 0 {
				return
			}
		}
		p.next()
	}
}

// Precedence climbing, lowest first:
//
//	sequence , | assign = | ternary ?: | or || | and && |
//	bitor | | bitxor ^ | bitand & | equality == != |
//	relational < <= > >= | additive + - | multiplicative * / % |
//	power ** | unary - + ! ~ | postfix call/group/literal/identifier

func (p *parser) parseSequence() Node {
	left := p.parseAssign()
	for p.at(tokComma) {
		p.next()
		right := p.parseAssign()
		if left == nil || right == nil {
			p.sync()
			if left == nil {
				left = right
			}
			continue
		}
		left = &Sequence{Left: left, Right: right, pos: left.Pos().span(right.Pos())}
	}
	return left
}

func (p *parser) parseAssign() Node {
	// Assignment requires an identifier on the left; anything else
	// parses as a ternary. Right-associative.
	if p.at(tokIdent) && p.toks[p.idx+1].kind == tokAssign {
		name := p.next()
		p.next() // =
		value := p.parseAssign()
		if value == nil {
			return nil
		}
		return &Assign{Name: name.text, Value: value, pos: name.pos.span(value.Pos())}
	}
	return p.parseTernary()
}

func (p *parser) parseTernary() Node {
	cond := p.parseOr()
	if cond == nil || !p.at(tokQuestion) {
		return cond
	}
	p.next()
	then := p.parseTernary()
	if then == nil {
		return nil
	}
	if _, ok := p.accept(tokColon); !ok {
		p.errorAt(p.cur(), "expected ':' in conditional expression", "")
		return nil
	}
	els := p.parseTernary()
	if els == nil {
		return nil
	}
	return &Ternary{Cond: cond, Then: then, Else: els, pos: cond.Pos().span(els.Pos())}
}

// parseBinaryLevel builds one left-associative precedence level.
func (p *parser) parseBinaryLevel(ops map[tokKind]Op, operand func() Node) Node {
	left := operand()
	for left != nil {
		op, ok := ops[p.cur().kind]
		if !ok {
			break
		}
		p.next()
		right := operand()
		if right == nil {
			return nil
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, pos: left.Pos().span(right.Pos())}
	}
	return left
}

var (
	orOps    = map[tokKind]Op{tokOrOr: OpOr}
	andOps   = map[tokKind]Op{tokAndAnd: OpAnd}
	bitorOps = map[tokKind]Op{tokOr: OpBitOr}
	xorOps   = map[tokKind]Op{tokXor: OpBitXor}
	bandOps  = map[tokKind]Op{tokAnd: OpBitAnd}
	eqOps    = map[tokKind]Op{tokEq: OpEq, tokNe: OpNe}
	relOps   = map[tokKind]Op{tokLt: OpLt, tokLe: OpLe, tokGt: OpGt, tokGe: OpGe}
	addOps   = map[tokKind]Op{tokPlus: OpAdd, tokMinus: OpSub}
	mulOps   = map[tokKind]Op{tokStar: OpMul, tokSlash: OpDiv, tokPercent: OpMod}
)

func (p *parser) parseOr() Node  { return p.parseBinaryLevel(orOps, p.parseAnd) }
func (p *parser) parseAnd() Node { return p.parseBinaryLevel(andOps, p.parseBitOr) }
func (p *parser) parseBitOr() Node {
	return p.parseBinaryLevel(bitorOps, p.parseBitXor)
}
func (p *parser) parseBitXor() Node {
	return p.parseBinaryLevel(xorOps, p.parseBitAnd)
}
func (p *parser) parseBitAnd() Node {
	return p.parseBinaryLevel(bandOps, p.parseEquality)
}
func (p *parser) parseEquality() Node {
	return p.parseBinaryLevel(eqOps, p.parseRelational)
}
func (p *parser) parseRelational() Node {
	return p.parseBinaryLevel(relOps, p.parseAdditive)
}
func (p *parser) parseAdditive() Node {
	return p.parseBinaryLevel(addOps, p.parseMultiplicative)
}
func (p *parser) parseMultiplicative() Node {
	return p.parseBinaryLevel(mulOps, p.parsePower)
}

func (p *parser) parsePower() Node {
	base := p.parseUnary()
	if base == nil || !p.at(tokPow) {
		return base
	}
	p.next()
	// Right-associative: a ** b ** c is a ** (b ** c).
	exp := p.parsePower()
	if exp == nil {
		return nil
	}
	return &BinaryExpr{Op: OpPow, Left: base, Right: exp, pos: base.Pos().span(exp.Pos())}
}

var unaryOps = map[tokKind]Op{
	tokMinus: OpNeg, tokPlus: OpPlus, tokNot: OpNot, tokTilde: OpBitNot,
}

func (p *parser) parseUnary() Node {
	if op, ok := unaryOps[p.cur().kind]; ok {
		t := p.next()
		child := p.parseUnary()
		if child == nil {
			return nil
		}
		return &UnaryExpr{Op: op, Child: child, pos: t.pos.span(child.Pos())}
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() Node {
	switch t := p.cur(); t.kind {
	case tokNumber:
		p.next()
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			p.errorAt(t, "malformed number "+strconv.Quote(t.text), "")
			return nil
		}
		return &NumberLit{Value: v, pos: t.pos}

	case tokIdent:
		p.next()
		if p.at(tokLParen) {
			return p.parseCall(t)
		}
		return &Ident{Name: t.text, pos: t.pos}

	case tokLParen:
		open := p.next()
		inner := p.parseSequence()
		if inner == nil {
			return nil
		}
		close, ok := p.accept(tokRParen)
		if !ok {
			p.errorAt(p.cur(), "unmatched '('",
				"a closing ')' is missing for the '(' at "+open.pos.String())
			return nil
		}
		// No Group node: grouping only affects structure, and the
		// inner node keeps its own span (the parentheses are not
		// included in it).
		_ = close
		return inner

	default:
		p.unexpected(t)
		if t.kind != tokEOF {
			p.next()
		}
		return nil
	}
}

func (p *parser) parseCall(name token) Node {
	open := p.next() // (
	call := &Call{Name: name.text, pos: name.pos}
	if !p.at(tokRParen) {
		for {
			arg := p.parseAssign()
			if arg == nil {
				return nil
			}
			call.Args = append(call.Args, arg)
			if _, ok := p.accept(tokComma); !ok {
				break
			}
		}
	}
	close, ok := p.accept(tokRParen)
	if !ok {
		p.errorAt(p.cur(), "unmatched '(' in call to "+name.text,
			"a closing ')' is missing for the '(' at "+open.pos.String())
		return nil
	}
	call.pos = name.pos.span(close.pos)
	return call
}
