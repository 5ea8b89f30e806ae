// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"fmt"
	"strconv"
	"strings"
)

// LineError is a diagnostic for one script line.
type LineError struct {
	Line int
	Msg  string
}

func (e LineError) String() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// ScriptError aggregates every command-level parse error in a script.
type ScriptError struct {
	Errors []LineError
}

func (e *ScriptError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, le := range e.Errors {
		msgs[i] = le.String()
	}
	return strings.Join(msgs, "\n")
}

// Parse turns a script into a command sequence. Blank lines and `#`
// comments are dropped; each command occupies one line.
func Parse(script string) ([]Command, error) {
	var (
		cmds []Command
		errs []LineError
	)
	for i, raw := range strings.Split(script, "\n") {
		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}
		cmd, err := parseLine(line)
		if err != nil {
			errs = append(errs, LineError{Line: i + 1, Msg: err.Error()})
			continue
		}
		cmds = append(cmds, cmd)
	}
	if len(errs) > 0 {
		return nil, &ScriptError{Errors: errs}
	}
	return cmds, nil
}

// stripComment removes a trailing # comment, honouring quoted strings.
func stripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '#':
			return line[:i]
		}
	}
	return line
}

func parseLine(line string) (Command, error) {
	word, rest := splitWord(line)
	switch word {
	case "set":
		opt, val := splitWord(rest)
		if opt == "" {
			return nil, fmt.Errorf("set: missing option")
		}
		return Set{Option: opt, Args: splitQuoted(val), Raw: val}, nil
	case "unset":
		opt, _ := splitWord(rest)
		if opt == "" {
			return nil, fmt.Errorf("unset: missing option")
		}
		return Unset{Option: opt}, nil
	case "plot":
		ranges, specsText, err := leadingRanges(rest, 2)
		if err != nil {
			return nil, err
		}
		specs, err := parseSpecs(specsText)
		if err != nil {
			return nil, err
		}
		return Plot{XRange: ranges[0], YRange: ranges[1], Specs: specs}, nil
	case "splot":
		ranges, specsText, err := leadingRanges(rest, 3)
		if err != nil {
			return nil, err
		}
		specs, err := parseSpecs(specsText)
		if err != nil {
			return nil, err
		}
		return Splot{XRange: ranges[0], YRange: ranges[1], ZRange: ranges[2], Specs: specs}, nil
	case "pause":
		secText, msg := splitWord(rest)
		sec, err := strconv.ParseFloat(secText, 64)
		if err != nil {
			return nil, fmt.Errorf("pause: bad duration %q", secText)
		}
		return Pause{Seconds: sec, Message: unquote(strings.TrimSpace(msg))}, nil
	case "reset":
		return Reset{}, nil
	}
	return parseDefinition(line)
}

// parseDefinition handles `name = expr` and `name(params) = expr`.
func parseDefinition(line string) (Command, error) {
	name, i := scanIdent(line, 0)
	if name == "" {
		return nil, fmt.Errorf("unrecognised command %q", firstWord(line))
	}
	i = skipSpace(line, i)
	if i < len(line) && line[i] == '(' {
		close := strings.IndexByte(line[i:], ')')
		if close < 0 {
			return nil, fmt.Errorf("missing ')' in function definition")
		}
		params := []string{}
		for _, p := range strings.Split(line[i+1:i+close], ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				return nil, fmt.Errorf("empty parameter in definition of %q", name)
			}
			params = append(params, p)
		}
		i += close + 1
		i = skipSpace(line, i)
		if i >= len(line) || line[i] != '=' {
			return nil, fmt.Errorf("expected '=' in definition of %q", name)
		}
		body := strings.TrimSpace(line[i+1:])
		if body == "" {
			return nil, fmt.Errorf("empty body in definition of %q", name)
		}
		return DefineFunc{Name: name, Params: params, Body: body}, nil
	}
	if i < len(line) && line[i] == '=' && (i+1 >= len(line) || line[i+1] != '=') {
		value := strings.TrimSpace(line[i+1:])
		if value == "" {
			return nil, fmt.Errorf("empty value in assignment to %q", name)
		}
		return Assign{Name: name, Expr: value}, nil
	}
	return nil, fmt.Errorf("unrecognised command %q", firstWord(line))
}

// leadingRanges consumes up to max bracketed ranges from the front of
// s. Absent ranges are nil.
func leadingRanges(s string, max int) ([]*Range, string, error) {
	ranges := make([]*Range, max)
	for i := 0; i < max; i++ {
		s = strings.TrimSpace(s)
		if !strings.HasPrefix(s, "[") {
			break
		}
		close := strings.IndexByte(s, ']')
		if close < 0 {
			return nil, "", fmt.Errorf("missing ']' in range")
		}
		r, err := parseRange(s[1:close])
		if err != nil {
			return nil, "", err
		}
		ranges[i] = r
		s = s[close+1:]
	}
	return ranges, strings.TrimSpace(s), nil
}

// parseRange parses the interior of `[min:max]`. `*` or an empty
// bound autoscales that side.
func parseRange(body string) (*Range, error) {
	colon := strings.IndexByte(body, ':')
	if colon < 0 {
		return nil, fmt.Errorf("range %q lacks ':'", body)
	}
	r := &Range{
		MinExpr: strings.TrimSpace(body[:colon]),
		MaxExpr: strings.TrimSpace(body[colon+1:]),
	}
	if r.MinExpr == "" || r.MinExpr == "*" {
		r.AutoMin = true
		r.MinExpr = ""
	}
	if r.MaxExpr == "" || r.MaxExpr == "*" {
		r.AutoMax = true
		r.MaxExpr = ""
	}
	return r, nil
}

// ParseRangeSpec parses a standalone bracketed range such as
// `[-2*pi:2*pi]`, as used by `set xrange`.
func ParseRangeSpec(s string) (*Range, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("range must be bracketed: %q", s)
	}
	return parseRange(s[1 : len(s)-1])
}

// parseSpecs splits the spec list on top-level commas and parses each
// element.
func parseSpecs(s string) ([]PlotSpec, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("plot: missing plot specification")
	}
	var specs []PlotSpec
	for _, chunk := range splitTopLevel(s, ',') {
		spec, err := parseSpec(strings.TrimSpace(chunk))
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseSpec(s string) (PlotSpec, error) {
	var spec PlotSpec

	if strings.HasPrefix(s, "[") {
		close := strings.IndexByte(s, ']')
		if close < 0 {
			return spec, fmt.Errorf("missing ']' in range")
		}
		r, err := parseRange(s[1:close])
		if err != nil {
			return spec, err
		}
		spec.Range = r
		s = strings.TrimSpace(s[close+1:])
	}

	if s == "" {
		return spec, fmt.Errorf("empty plot specification")
	}

	// A quoted string is a data-file reference; anything else is
	// expression text running up to a top-level `title` or `with`.
	if s[0] == '\'' || s[0] == '"' {
		end := strings.IndexByte(s[1:], s[0])
		if end < 0 {
			return spec, fmt.Errorf("unterminated string in plot specification")
		}
		spec.DataFile = s[1 : 1+end]
		s = strings.TrimSpace(s[end+2:])
	} else {
		body, rest := splitAtKeyword(s)
		if body == "" {
			return spec, fmt.Errorf("empty plot specification")
		}
		spec.Expr = body
		s = rest
	}

	// Trailing modifiers: `title "<text>"`, `with <style>`.
	for s != "" {
		word, rest := splitWord(s)
		switch word {
		case "title":
			rest = strings.TrimSpace(rest)
			if rest == "" || (rest[0] != '\'' && rest[0] != '"') {
				return spec, fmt.Errorf("title requires a quoted string")
			}
			end := strings.IndexByte(rest[1:], rest[0])
			if end < 0 {
				return spec, fmt.Errorf("unterminated title string")
			}
			spec.Title = rest[1 : 1+end]
			spec.HasTitle = true
			s = strings.TrimSpace(rest[end+2:])
		case "with":
			style, more := splitWord(rest)
			if style == "" {
				return spec, fmt.Errorf("with requires a style")
			}
			spec.Style = style
			s = strings.TrimSpace(more)
		case "notitle":
			spec.Title = ""
			spec.HasTitle = true
			s = strings.TrimSpace(rest)
		default:
			return spec, fmt.Errorf("unexpected %q in plot specification", word)
		}
	}
	return spec, nil
}

// splitAtKeyword splits expression text from its trailing modifiers:
// the expression runs to the first top-level `title`, `notitle` or
// `with` word.
func splitAtKeyword(s string) (body, rest string) {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
			continue
		case c == '\'' || c == '"':
			quote = c
			continue
		case c == '(' || c == '[':
			depth++
			continue
		case c == ')' || c == ']':
			depth--
			continue
		}
		if depth != 0 || !isWordStart(c) || (i > 0 && isWordPart(s[i-1])) {
			continue
		}
		word, _ := splitWord(s[i:])
		if word == "title" || word == "with" || word == "notitle" {
			return strings.TrimSpace(s[:i]), s[i:]
		}
	}
	return strings.TrimSpace(s), ""
}

// splitTopLevel splits on sep outside quotes, parentheses and
// brackets.
func splitTopLevel(s string, sep byte) []string {
	var (
		parts []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// splitQuoted splits a string on whitespace, keeping quoted strings
// together with their quotes removed.
func splitQuoted(s string) []string {
	var (
		fields []string
		cur    strings.Builder
		quote  byte
		have   bool
	)
	flush := func() {
		if have {
			fields = append(fields, cur.String())
			cur.Reset()
			have = false
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				cur.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
			have = true
		case c == ' ' || c == '\t':
			flush()
		default:
			cur.WriteByte(c)
			have = true
		}
	}
	flush()
	return fields
}

func splitWord(s string) (word, rest string) {
	s = strings.TrimSpace(s)
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' {
			return s[:i], strings.TrimSpace(s[i+1:])
		}
	}
	return s, ""
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func firstWord(s string) string {
	w, _ := splitWord(s)
	return w
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func scanIdent(s string, i int) (string, int) {
	start := i
	for i < len(s) && isWordPart(s[i]) {
		if i == start && s[i] >= '0' && s[i] <= '9' {
			return "", start
		}
		i++
	}
	return s[start:i], i
}

func isWordStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isWordPart(c byte) bool {
	return isWordStart(c) || ('0' <= c && c <= '9')
}
