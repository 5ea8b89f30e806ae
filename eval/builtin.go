// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// bindBuiltins installs the builtin mathematical library into ctx.
// Domain violations never fail evaluation: they yield NaN (or a
// complex result through the complex-aware registry). The single
// exception, modulo by zero, lives in the evaluator itself.
func bindBuiltins(ctx *Context) {
	real1 := func(name string, fn func(float64) float64) {
		ctx.RegisterFunc(name, 1, func(args []float64) float64 { return fn(args[0]) })
	}
	real2 := func(name string, fn func(float64, float64) float64) {
		ctx.RegisterFunc(name, 2, func(args []float64) float64 { return fn(args[0], args[1]) })
	}
	cplx1 := func(name string, fn func(complex128) complex128) {
		ctx.RegisterComplexFunc(name, 1, func(args []complex128) complex128 { return fn(args[0]) })
	}

	// Arithmetic.
	real1("abs", math.Abs)
	real1("ceil", math.Ceil)
	real1("floor", math.Floor)
	real1("round", math.Round)
	real1("int", math.Trunc)
	real1("sgn", sgn)
	real2("min", math.Min)
	real2("max", math.Max)

	// Trigonometric.
	real1("sin", math.Sin)
	real1("cos", math.Cos)
	real1("tan", math.Tan)
	real1("asin", math.Asin)
	real1("acos", math.Acos)
	real1("atan", math.Atan)
	real2("atan2", math.Atan2)

	// Hyperbolic.
	real1("sinh", math.Sinh)
	real1("cosh", math.Cosh)
	real1("tanh", math.Tanh)

	// Exponential and logarithmic.
	real1("exp", math.Exp)
	real1("log", math.Log)
	real1("log10", math.Log10)
	real1("sqrt", math.Sqrt)
	real1("cbrt", math.Cbrt)
	real2("pow", math.Pow)

	// Special functions.
	real1("gamma", math.Gamma)
	real1("lgamma", func(x float64) float64 { l, _ := math.Lgamma(x); return l })
	real2("beta", beta)
	ctx.RegisterFunc("ibeta", 3, func(args []float64) float64 {
		return ibeta(args[0], args[1], args[2])
	})
	real2("igamma", igamma)

	// Bessel functions of the first kind.
	real1("besj0", math.J0)
	real1("besj1", math.J1)
	real2("besjn", besjn)

	// Error functions.
	real1("erf", math.Erf)
	real1("erfc", math.Erfc)
	real1("inverf", math.Erfinv)
	real1("inverfc", math.Erfcinv)

	// Standard normal CDF and its inverse.
	real1("norm", distuv.UnitNormal.CDF)
	real1("invnorm", invnorm)

	// Complex-aware overloads. These win the dispatch over the real
	// registry, so sqrt(-1) and asin(2) resolve to complex results
	// instead of NaN.
	cplx1("sqrt", cmplx.Sqrt)
	cplx1("exp", cmplx.Exp)
	cplx1("log", cmplx.Log)
	cplx1("log10", cmplx.Log10)
	cplx1("sin", cmplx.Sin)
	cplx1("cos", cmplx.Cos)
	cplx1("tan", cmplx.Tan)
	cplx1("asin", cmplx.Asin)
	cplx1("acos", cmplx.Acos)
	cplx1("atan", cmplx.Atan)
	cplx1("sinh", cmplx.Sinh)
	cplx1("cosh", cmplx.Cosh)
	cplx1("tanh", cmplx.Tanh)
	cplx1("abs", func(z complex128) complex128 { return complex(cmplx.Abs(z), 0) })
	cplx1("arg", func(z complex128) complex128 { return complex(cmplx.Phase(z), 0) })
	cplx1("real", func(z complex128) complex128 { return complex(real(z), 0) })
	cplx1("imag", func(z complex128) complex128 { return complex(imag(z), 0) })
}

func sgn(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return x // 0 or NaN
}

func beta(a, b float64) float64 {
	if a <= 0 || b <= 0 {
		return math.NaN()
	}
	return mathext.Beta(a, b)
}

// ibeta is the regularised incomplete beta function I_x(a, b).
func ibeta(a, b, x float64) float64 {
	if a <= 0 || b <= 0 || x < 0 || x > 1 {
		return math.NaN()
	}
	return mathext.RegIncBeta(a, b, x)
}

// igamma is the regularised lower incomplete gamma function P(a, x).
func igamma(a, x float64) float64 {
	if a <= 0 || x < 0 {
		return math.NaN()
	}
	return mathext.GammaIncReg(a, x)
}

// besjn evaluates J_n with negative orders and arguments folded by the
// parity relation J_-n(x) = (-1)^n J_n(x).
func besjn(n, x float64) float64 {
	order := int(n)
	sign := 1.0
	if order < 0 {
		order = -order
		if order%2 == 1 {
			sign = -sign
		}
	}
	if x < 0 {
		if order%2 == 1 {
			sign = -sign
		}
		x = -x
	}
	return sign * math.Jn(order, x)
}

func invnorm(p float64) float64 {
	if p < 0 || p > 1 {
		return math.NaN()
	}
	return distuv.UnitNormal.Quantile(p)
}
