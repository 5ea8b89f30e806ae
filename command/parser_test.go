// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, line string) Command {
	t.Helper()
	cmds, err := Parse(line)
	require.NoError(t, err, "parse %q", line)
	require.Len(t, cmds, 1)
	return cmds[0]
}

func TestParseSet(t *testing.T) {
	cmd := parseOne(t, `set title "Damped oscillation"`).(Set)
	assert.Equal(t, "title", cmd.Option)
	assert.Equal(t, []string{"Damped oscillation"}, cmd.Args)

	cmd = parseOne(t, "set samples 200").(Set)
	assert.Equal(t, "samples", cmd.Option)
	assert.Equal(t, []string{"200"}, cmd.Args)

	cmd = parseOne(t, "set key bmargin center box").(Set)
	assert.Equal(t, "key", cmd.Option)
	assert.Equal(t, []string{"bmargin", "center", "box"}, cmd.Args)

	cmd = parseOne(t, "set style data linespoints").(Set)
	assert.Equal(t, "style", cmd.Option)
	assert.Equal(t, []string{"data", "linespoints"}, cmd.Args)

	cmd = parseOne(t, "set dgrid3d 30,30,gauss").(Set)
	assert.Equal(t, "dgrid3d", cmd.Option)
	assert.Equal(t, "30,30,gauss", cmd.Raw)
}

func TestParseUnset(t *testing.T) {
	cmd := parseOne(t, "unset grid").(Unset)
	assert.Equal(t, "grid", cmd.Option)
}

func TestParseCommentsAndBlanks(t *testing.T) {
	cmds, err := Parse("# a comment\n\n   \nset grid # trailing\n")
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, "grid", cmds[0].(Set).Option)

	// A '#' inside a quoted string is not a comment.
	cmd := parseOne(t, `set title "issue #42"`).(Set)
	assert.Equal(t, []string{"issue #42"}, cmd.Args)
}

func TestParsePlot(t *testing.T) {
	cmd := parseOne(t, "plot sin(x)").(Plot)
	require.Len(t, cmd.Specs, 1)
	assert.Equal(t, "sin(x)", cmd.Specs[0].Expr)
	assert.Nil(t, cmd.XRange)

	cmd = parseOne(t, "plot [0:2*pi] [-1:1] sin(x), cos(x)").(Plot)
	require.NotNil(t, cmd.XRange)
	assert.Equal(t, "0", cmd.XRange.MinExpr)
	assert.Equal(t, "2*pi", cmd.XRange.MaxExpr)
	require.NotNil(t, cmd.YRange)
	require.Len(t, cmd.Specs, 2)
	assert.Equal(t, "sin(x)", cmd.Specs[0].Expr)
	assert.Equal(t, "cos(x)", cmd.Specs[1].Expr)
}

func TestParsePlotAutoRange(t *testing.T) {
	cmd := parseOne(t, "plot [*:10] f(x)").(Plot)
	require.NotNil(t, cmd.XRange)
	assert.True(t, cmd.XRange.AutoMin)
	assert.False(t, cmd.XRange.AutoMax)
	assert.Equal(t, "10", cmd.XRange.MaxExpr)

	cmd = parseOne(t, "plot [:][0:] f(x)").(Plot)
	assert.True(t, cmd.XRange.AutoMin)
	assert.True(t, cmd.XRange.AutoMax)
	assert.False(t, cmd.YRange.AutoMin)
	assert.True(t, cmd.YRange.AutoMax)
}

func TestParsePlotModifiers(t *testing.T) {
	cmd := parseOne(t, `plot sin(x) title "sine" with linespoints`).(Plot)
	spec := cmd.Specs[0]
	assert.Equal(t, "sin(x)", spec.Expr)
	assert.True(t, spec.HasTitle)
	assert.Equal(t, "sine", spec.Title)
	assert.Equal(t, "linespoints", spec.Style)

	cmd = parseOne(t, `plot 'data.dat' with points, x**2 notitle`).(Plot)
	require.Len(t, cmd.Specs, 2)
	assert.Equal(t, "data.dat", cmd.Specs[0].DataFile)
	assert.Equal(t, "points", cmd.Specs[0].Style)
	assert.Equal(t, "x**2", cmd.Specs[1].Expr)
	assert.True(t, cmd.Specs[1].HasTitle)
	assert.Equal(t, "", cmd.Specs[1].Title)
}

func TestParsePlotCommaInCall(t *testing.T) {
	// The comma inside atan2(...) must not split the spec list.
	cmd := parseOne(t, "plot atan2(y, x), sin(x)").(Plot)
	require.Len(t, cmd.Specs, 2)
	assert.Equal(t, "atan2(y, x)", cmd.Specs[0].Expr)
}

func TestParsePlotPerSpecRange(t *testing.T) {
	cmd := parseOne(t, "plot [0:1] sin(x), [2:3] cos(x)").(Plot)
	require.Len(t, cmd.Specs, 2)
	// The leading range belongs to the command; the second range
	// belongs to the second spec.
	require.NotNil(t, cmd.XRange)
	assert.Nil(t, cmd.Specs[0].Range)
	require.NotNil(t, cmd.Specs[1].Range)
	assert.Equal(t, "2", cmd.Specs[1].Range.MinExpr)
}

func TestParseSplot(t *testing.T) {
	cmd := parseOne(t, `splot 'points.dat' with points`).(Splot)
	require.Len(t, cmd.Specs, 1)
	assert.Equal(t, "points.dat", cmd.Specs[0].DataFile)

	cmd = parseOne(t, "splot [0:1][0:1][*:*] 'g.dat'").(Splot)
	require.NotNil(t, cmd.XRange)
	require.NotNil(t, cmd.YRange)
	require.NotNil(t, cmd.ZRange)
	assert.True(t, cmd.ZRange.AutoMin)
}

func TestParsePause(t *testing.T) {
	cmd := parseOne(t, `pause 2.5 "between plots"`).(Pause)
	assert.Equal(t, 2.5, cmd.Seconds)
	assert.Equal(t, "between plots", cmd.Message)

	cmd = parseOne(t, "pause -1").(Pause)
	assert.Equal(t, -1.0, cmd.Seconds)
	assert.Equal(t, "", cmd.Message)
}

func TestParseReset(t *testing.T) {
	_ = parseOne(t, "reset").(Reset)
}

func TestParseAssignment(t *testing.T) {
	cmd := parseOne(t, "a = 2*pi + 1").(Assign)
	assert.Equal(t, "a", cmd.Name)
	assert.Equal(t, "2*pi + 1", cmd.Expr)
}

func TestParseDefineFunc(t *testing.T) {
	cmd := parseOne(t, "f(x) = x**2 - 1").(DefineFunc)
	assert.Equal(t, "f", cmd.Name)
	assert.Equal(t, []string{"x"}, cmd.Params)
	assert.Equal(t, "x**2 - 1", cmd.Body)

	cmd = parseOne(t, "dist(x, y) = sqrt(x*x + y*y)").(DefineFunc)
	assert.Equal(t, []string{"x", "y"}, cmd.Params)
	assert.Equal(t, "sqrt(x*x + y*y)", cmd.Body)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("plot\nbogus !!\npause abc")
	require.Error(t, err)
	se, ok := err.(*ScriptError)
	require.True(t, ok)
	assert.Len(t, se.Errors, 3)
	assert.Equal(t, 1, se.Errors[0].Line)
	assert.Equal(t, 2, se.Errors[1].Line)
	assert.Equal(t, 3, se.Errors[2].Line)
}

func TestParseRangeSpec(t *testing.T) {
	r, err := ParseRangeSpec("[-2*pi:2*pi]")
	require.NoError(t, err)
	assert.Equal(t, "-2*pi", r.MinExpr)
	assert.Equal(t, "2*pi", r.MaxExpr)

	_, err = ParseRangeSpec("0:1")
	require.Error(t, err)
}
