// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"math"
	"strconv"

	"github.com/aclements/go-moremath/scale"
)

// Tick is one labelled or unlabelled axis position.
type Tick struct {
	Pos   float64
	Label string
	Minor bool
}

// QuantizeNormalTics picks a "nice" tick step for a range so that at
// most guide major ticks are produced. This reproduces gnuplot's
// quantize_normal_tics: the step is m*10^k with m drawn from a fixed
// table keyed by guide/(range/10^floor(log10 range)).
func QuantizeNormalTics(rng float64, guide int) float64 {
	if rng < 0 {
		rng = -rng
	}
	if rng == 0 || math.IsNaN(rng) || math.IsInf(rng, 0) {
		return 1
	}
	power := math.Pow(10, math.Floor(math.Log10(rng)))
	xnorm := rng / power
	posns := float64(guide) / xnorm

	// Inclusive boundaries: a decade range with guide 20 lands
	// exactly on posns == 20 and must take the 0.1 step.
	var tics float64
	switch {
	case posns >= 40:
		tics = 0.05
	case posns >= 20:
		tics = 0.1
	case posns >= 10:
		tics = 0.2
	case posns >= 4:
		tics = 0.5
	case posns >= 2:
		tics = 1
	case posns >= 0.5:
		tics = 2
	default:
		tics = math.Ceil(xnorm)
	}
	return tics * power
}

// LinearTicks generates major ticks for [min, max] with the given
// step. Candidates start at floor(min/step)*step and step by step
// while <= max + eps (eps = step*1e-9). Candidates more than eps below
// min are skipped; the rest are clamped into [min, max] to absorb
// floating-point drift.
func LinearTicks(min, max, step float64) []Tick {
	if step <= 0 || max < min {
		return nil
	}
	var ticks []Tick
	eps := step * 1e-9
	first := math.Floor(min/step) * step
	for i := 0; ; i++ {
		pos := first + float64(i)*step
		if pos > max+eps {
			break
		}
		p := pos
		if p < min {
			if min-p > eps {
				continue
			}
			p = min
		}
		if p > max {
			p = max
		}
		ticks = append(ticks, Tick{Pos: p, Label: FormatTickLabel(p, step)})
	}
	return ticks
}

// SubdivideMinor inserts minor ticks between consecutive major ticks.
// per is the number of subdivisions per major interval.
func SubdivideMinor(ticks []Tick, per int) []Tick {
	if per < 2 || len(ticks) < 2 {
		return ticks
	}
	out := make([]Tick, 0, len(ticks)*per)
	for i, t := range ticks {
		out = append(out, t)
		if i+1 == len(ticks) {
			break
		}
		stride := (ticks[i+1].Pos - t.Pos) / float64(per)
		for j := 1; j < per; j++ {
			out = append(out, Tick{Pos: t.Pos + float64(j)*stride, Minor: true})
		}
	}
	return out
}

// FormatTickLabel formats a tick position: integer formatting when
// step >= 1, otherwise ceil(-log10(step)) decimal places.
func FormatTickLabel(v, step float64) string {
	if step >= 1 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	dec := int(math.Ceil(-math.Log10(step)))
	if dec < 0 {
		dec = 0
	}
	return strconv.FormatFloat(v, 'f', dec, 64)
}

// RoundOutward extends both endpoints outward to the nearest multiple
// of step. Autoscaled ranges pass through this so that data extremes
// land on tick boundaries; explicit ranges do not.
func RoundOutward(min, max, step float64) (float64, float64) {
	if step <= 0 {
		return min, max
	}
	lo := math.Floor(min/step) * step
	hi := math.Ceil(max/step) * step
	return lo, hi
}

// WidenEmpty widens a degenerate range (min == max) by 1% of the
// value, or by 1.0 when the value is zero.
func WidenEmpty(min, max float64) (float64, float64) {
	if min != max {
		return min, max
	}
	d := math.Abs(min) * 0.01
	if d == 0 {
		d = 1
	}
	return min - d, max + d
}

// LogTicks places major ticks at integer powers of base within
// [min, max] (min > 0) and minor ticks at the integer multiples
// 2..base-1 inside each decade. When the span covers more decades
// than guide allows, the exponent stride grows; the stride search
// uses scale.TickOptions.
func LogTicks(min, max, base float64, guide int) []Tick {
	if min <= 0 || max <= min || base <= 1 {
		return nil
	}
	lb := math.Log(base)
	e0 := int(math.Ceil(math.Log(min)/lb - 1e-9))
	e1 := int(math.Floor(math.Log(max)/lb + 1e-9))
	if e1 < e0 {
		return nil
	}

	count := func(level int) int {
		if level < 1 {
			level = 1
		}
		return (e1-e0)/level + 1
	}
	tickAt := func(level int) []float64 {
		if level < 1 {
			level = 1
		}
		var ps []float64
		for e := e0; e <= e1; e += level {
			ps = append(ps, math.Pow(base, float64(e)))
		}
		return ps
	}
	opts := scale.TickOptions{Max: guide, MinLevel: 1, MaxLevel: 1000}
	stride, ok := opts.FindLevel(logTicker{count, tickAt}, 1)
	if !ok {
		stride = e1 - e0 + 1
	}

	var ticks []Tick
	for e := e0; e <= e1; e += stride {
		pos := math.Pow(base, float64(e))
		ticks = append(ticks, Tick{Pos: pos, Label: formatLogLabel(pos)})
		// Minor ticks fill the decade above this major tick when
		// the stride is a single decade.
		if stride == 1 && e < e1 {
			for m := 2.0; m < base; m++ {
				mp := m * pos
				if mp >= min && mp <= max {
					ticks = append(ticks, Tick{Pos: mp, Minor: true})
				}
			}
		}
	}
	return ticks
}

// logTicker adapts the count and tickAt closures in LogTicks to the
// scale.Ticker interface expected by scale.TickOptions.FindLevel.
type logTicker struct {
	count  func(level int) int
	tickAt func(level int) []float64
}

func (t logTicker) CountTicks(level int) int           { return t.count(level) }
func (t logTicker) TicksAtLevel(level int) interface{} { return t.tickAt(level) }

func formatLogLabel(v float64) string {
	if v >= 0.001 && v < 100000 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'e', 0, 64)
}
