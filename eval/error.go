// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"fmt"
	"strings"

	"github.com/aclements/go-gnuplot/expr"
)

// Error is an evaluation failure: undefined name, arity mismatch,
// modulo by zero or a failure inside a user-defined function. NaN and
// Inf results are not errors; they propagate as values.
type Error struct {
	Msg  string
	Pos  expr.Pos
	Expr string // originating expression text, may be empty
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s at %s", e.Msg, e.Pos)
	if e.Expr != "" {
		if line, caret := expr.Snippet(e.Expr, e.Pos); line != "" {
			b.WriteString("\n  ")
			b.WriteString(line)
			b.WriteString("\n  ")
			b.WriteString(caret)
		}
	}
	return b.String()
}
