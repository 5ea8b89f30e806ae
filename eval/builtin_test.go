// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalogue(t *testing.T) {
	ctx := NewContext()
	tests := []struct {
		src  string
		want float64
		tol  float64
	}{
		// Arithmetic.
		{"abs(-3.5)", 3.5, 0},
		{"ceil(2.1)", 3, 0},
		{"floor(2.9)", 2, 0},
		{"round(2.5)", 3, 0},
		{"int(2.9)", 2, 0},
		{"int(-2.9)", -2, 0},
		{"sgn(-7)", -1, 0},
		{"sgn(0)", 0, 0},
		{"sgn(4)", 1, 0},
		{"min(2, 3)", 2, 0},
		{"max(2, 3)", 3, 0},

		// Trigonometric.
		{"sin(pi/2)", 1, 1e-15},
		{"cos(pi)", -1, 1e-15},
		{"tan(pi/4)", 1, 1e-10},
		{"asin(1)", math.Pi / 2, 1e-10},
		{"acos(-1)", math.Pi, 1e-10},
		{"atan(1)", math.Pi / 4, 1e-10},
		{"atan2(1, 1)", math.Pi / 4, 1e-10},

		// Hyperbolic.
		{"sinh(1)", math.Sinh(1), 1e-10},
		{"cosh(1)", math.Cosh(1), 1e-10},
		{"tanh(1)", math.Tanh(1), 1e-10},

		// Exponential and logarithmic.
		{"exp(1)", math.E, 1e-10},
		{"log(e)", 1, 1e-10},
		{"log10(1000)", 3, 1e-10},
		{"sqrt(2)", math.Sqrt2, 1e-10},
		{"cbrt(27)", 3, 1e-10},
		{"pow(2, 10)", 1024, 0},

		// Special functions.
		{"gamma(5)", 24, 1e-9},
		{"gamma(0.5)", math.Sqrt(math.Pi), 1e-10},
		{"lgamma(10)", math.Log(362880), 1e-8},
		{"beta(2, 3)", 1.0 / 12, 1e-10},
		{"ibeta(2, 3, 1)", 1, 1e-10},
		{"ibeta(2, 2, 0.5)", 0.5, 1e-10},
		{"igamma(1, 1)", 1 - math.Exp(-1), 1e-10},

		// Bessel.
		{"besj0(0)", 1, 0},
		{"besj1(0)", 0, 0},
		{"besjn(2, 1)", math.Jn(2, 1), 1e-10},
		{"besjn(-1, 1)", -math.J1(1), 1e-10},
		{"besjn(1, -1)", -math.J1(1), 1e-10},

		// Error functions.
		{"erf(0)", 0, 0},
		{"erf(1)", math.Erf(1), 1e-10},
		{"erfc(1)", math.Erfc(1), 1e-10},
		{"inverf(erf(0.5))", 0.5, 1e-9},
		{"inverfc(erfc(0.5))", 0.5, 1e-9},

		// Standard normal.
		{"norm(0)", 0.5, 1e-6},
		{"norm(1.96)", 0.9750021048517795, 1e-6},
		{"invnorm(0.5)", 0, 1e-6},
		{"invnorm(0.9750021048517795)", 1.96, 1e-5},
	}
	for _, tt := range tests {
		got := evalReal(t, ctx, tt.src)
		if tt.tol == 0 {
			assert.Equal(t, tt.want, got, "evaluate %q", tt.src)
		} else {
			assert.InDelta(t, tt.want, got, tt.tol, "evaluate %q", tt.src)
		}
	}
}

func TestBuiltinDomainViolations(t *testing.T) {
	ctx := NewContext()
	// Domain violations propagate values (NaN or complex), never
	// errors.
	for _, src := range []string{
		"ibeta(2, 3, 1.5)",
		"igamma(-1, 1)",
		"beta(-1, 2)",
		"invnorm(2)",
	} {
		v, err := New(ctx).EvalString(src)
		require.NoError(t, err, "evaluate %q", src)
		assert.True(t, math.IsNaN(real(v)), "evaluate %q", src)
	}

	// log(0) through the complex registry: -Inf real part.
	v, err := New(ctx).EvalString("log(0)")
	require.NoError(t, err)
	assert.True(t, math.IsInf(real(v), -1))
}
