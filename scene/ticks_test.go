// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"math"
	"testing"
)

func TestQuantizeNormalTics(t *testing.T) {
	check := func(rng float64, guide int, want float64) {
		t.Helper()
		if got := QuantizeNormalTics(rng, guide); math.Abs(got-want) > want*1e-12 {
			t.Errorf("QuantizeNormalTics(%v, %v) = %v, want %v", rng, guide, got, want)
		}
	}
	check(10, 20, 1)
	check(1, 20, 0.1)
	check(100, 20, 10)
	check(0.1, 20, 0.01)
	check(5, 20, 0.5)
	check(2, 20, 0.2)
	check(50, 20, 5)
	check(7, 20, 1)
	check(1000, 20, 100)
}

func TestQuantizeStepForm(t *testing.T) {
	// Every returned step must be m * 10^k with m in the fixed
	// multiplier table (or ceil(x) in the fallback row).
	allowed := map[float64]bool{0.05: true, 0.1: true, 0.2: true, 0.5: true, 1: true, 2: true}
	for _, rng := range []float64{0.003, 0.42, 1, 2.5, 7.7, 10, 33, 99, 1234, 8.5e6} {
		step := QuantizeNormalTics(rng, 20)
		power := math.Pow(10, math.Floor(math.Log10(rng)))
		m := step / power
		// Normalise tiny floating error in the quotient.
		rounded := math.Round(m*1e9) / 1e9
		if !allowed[rounded] && rounded != math.Ceil(rng/power) {
			t.Errorf("QuantizeNormalTics(%v, 20) = %v: multiplier %v not in table", rng, step, m)
		}
	}
}

func TestLinearTicks(t *testing.T) {
	ticks := LinearTicks(0, 10, 1)
	if len(ticks) != 11 {
		t.Fatalf("LinearTicks(0, 10, 1) returned %d ticks, want 11", len(ticks))
	}
	for i, tk := range ticks {
		if tk.Pos != float64(i) {
			t.Errorf("tick %d at %v, want %v", i, tk.Pos, float64(i))
		}
		if want := FormatTickLabel(float64(i), 1); tk.Label != want {
			t.Errorf("tick %d labelled %q, want %q", i, tk.Label, want)
		}
	}

	ticks = LinearTicks(0, 1, 0.1)
	if len(ticks) != 11 {
		t.Fatalf("LinearTicks(0, 1, 0.1) returned %d ticks, want 11", len(ticks))
	}
	if ticks[3].Label != "0.3" {
		t.Errorf("tick 3 labelled %q, want 0.3", ticks[3].Label)
	}
	if last := ticks[10]; last.Pos > 1 || last.Label != "1.0" {
		t.Errorf("last tick %v %q, want 1 \"1.0\"", last.Pos, last.Label)
	}
}

func TestLinearTicksClampAndSpacing(t *testing.T) {
	cases := []struct{ min, max float64 }{
		{0, 10}, {-3, 7}, {0.001, 0.093}, {-1e6, 2.5e6}, {2.3, 2.7},
	}
	for _, c := range cases {
		step := QuantizeNormalTics(c.max-c.min, 20)
		ticks := LinearTicks(c.min, c.max, step)
		if len(ticks) == 0 {
			t.Errorf("no ticks for [%v, %v]", c.min, c.max)
			continue
		}
		eps := step * 1e-9
		for i, tk := range ticks {
			if tk.Pos < c.min-eps || tk.Pos > c.max+eps {
				t.Errorf("[%v, %v]: tick %v outside range", c.min, c.max, tk.Pos)
			}
			if i > 0 {
				gap := tk.Pos - ticks[i-1].Pos
				// Interior gaps are exactly step; clamping may
				// shorten the first and last gap.
				if i > 1 && i < len(ticks)-1 && math.Abs(gap-step) > eps {
					t.Errorf("[%v, %v]: gap %v between ticks %d..%d, want %v",
						c.min, c.max, gap, i-1, i, step)
				}
			}
		}
	}
}

func TestRoundOutward(t *testing.T) {
	lo, hi := RoundOutward(-0.95, 0.95, 0.2)
	if lo > -0.95 || hi < 0.95 {
		t.Errorf("RoundOutward did not extend: [%v, %v]", lo, hi)
	}
	if math.Abs(lo-(-1.0)) > 1e-12 || math.Abs(hi-1.0) > 1e-12 {
		t.Errorf("RoundOutward(-0.95, 0.95, 0.2) = [%v, %v], want [-1, 1]", lo, hi)
	}

	lo, hi = RoundOutward(0, 10, 1)
	if lo != 0 || hi != 10 {
		t.Errorf("RoundOutward(0, 10, 1) = [%v, %v], want [0, 10]", lo, hi)
	}
}

func TestWidenEmpty(t *testing.T) {
	lo, hi := WidenEmpty(5, 5)
	if math.Abs(lo-4.95) > 1e-12 || math.Abs(hi-5.05) > 1e-12 {
		t.Errorf("WidenEmpty(5, 5) = [%v, %v], want [4.95, 5.05]", lo, hi)
	}
	lo, hi = WidenEmpty(0, 0)
	if lo != -1 || hi != 1 {
		t.Errorf("WidenEmpty(0, 0) = [%v, %v], want [-1, 1]", lo, hi)
	}
	lo, hi = WidenEmpty(1, 2)
	if lo != 1 || hi != 2 {
		t.Errorf("WidenEmpty(1, 2) = [%v, %v]; non-empty ranges must pass through", lo, hi)
	}
}

func TestSubdivideMinor(t *testing.T) {
	majors := LinearTicks(0, 4, 1)
	ticks := SubdivideMinor(majors, 2)
	if len(ticks) != 9 {
		t.Fatalf("SubdivideMinor returned %d ticks, want 9", len(ticks))
	}
	if !ticks[1].Minor || ticks[1].Pos != 0.5 {
		t.Errorf("tick 1 = %+v, want minor at 0.5", ticks[1])
	}
	if ticks[2].Minor || ticks[2].Pos != 1 {
		t.Errorf("tick 2 = %+v, want major at 1", ticks[2])
	}
}

func TestFormatTickLabel(t *testing.T) {
	check := func(v, step float64, want string) {
		t.Helper()
		if got := FormatTickLabel(v, step); got != want {
			t.Errorf("FormatTickLabel(%v, %v) = %q, want %q", v, step, got, want)
		}
	}
	check(3, 1, "3")
	check(-40, 10, "-40")
	check(0.3, 0.1, "0.3")
	check(0.25, 0.05, "0.25")
	check(0.002, 0.001, "0.002")
}

func TestLogTicks(t *testing.T) {
	ticks := LogTicks(1, 1000, 10, 20)
	var majors []float64
	minors := 0
	for _, tk := range ticks {
		if tk.Minor {
			minors++
		} else {
			majors = append(majors, tk.Pos)
		}
	}
	want := []float64{1, 10, 100, 1000}
	if len(majors) != len(want) {
		t.Fatalf("majors = %v, want %v", majors, want)
	}
	for i := range want {
		if math.Abs(majors[i]-want[i]) > want[i]*1e-12 {
			t.Errorf("major %d = %v, want %v", i, majors[i], want[i])
		}
	}
	// Minor ticks at 2..9 within each of the three full decades.
	if minors != 24 {
		t.Errorf("got %d minor ticks, want 24", minors)
	}
}

func TestLogTicksWideRange(t *testing.T) {
	// 100 decades cannot all be major ticks with guide 20: the
	// stride must grow and every tick stays within the range.
	ticks := LogTicks(1e-50, 1e50, 10, 20)
	majors := 0
	for _, tk := range ticks {
		if !tk.Minor {
			majors++
		}
		if tk.Pos < 1e-50*(1-1e-9) || tk.Pos > 1e50*(1+1e-9) {
			t.Errorf("tick %v outside range", tk.Pos)
		}
	}
	if majors == 0 || majors > 20 {
		t.Errorf("got %d major ticks, want between 1 and 20", majors)
	}
}

func TestAxisTicks(t *testing.T) {
	ax := &Axis{Kind: AxisX, Min: 0, Max: 10}
	ticks := ax.Ticks(20)
	if len(ticks) != 11 {
		t.Errorf("axis ticks = %d, want 11", len(ticks))
	}

	ax = &Axis{Kind: AxisX, Min: 1, Max: 100, Scale: ScaleLog}
	ticks = ax.Ticks(20)
	if len(ticks) == 0 {
		t.Error("log axis produced no ticks")
	}
}
