// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"fmt"
	"strings"
)

// SyntaxError is a single diagnostic from the expression parser.
type SyntaxError struct {
	Pos        Pos
	Msg        string
	Suggestion string
}

func (e SyntaxError) String() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Pos, e.Msg, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ParseError aggregates every syntax error found in one parse. There
// is no partial AST: if ParseError is returned, the expression was
// rejected as a whole.
type ParseError struct {
	Src    string
	Errors []SyntaxError
}

func (e *ParseError) Error() string {
	var b strings.Builder
	for i, se := range e.Errors {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(se.String())
		if line, caret := Snippet(e.Src, se.Pos); line != "" {
			b.WriteString("\n  ")
			b.WriteString(line)
			b.WriteString("\n  ")
			b.WriteString(caret)
		}
	}
	return b.String()
}
