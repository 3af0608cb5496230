// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import "fmt"

// SyntaxError reports malformed source text, raised by the tokenizer
// or reader. It unwinds through panic/recover, the same mechanism the
// teacher interpreter uses for its own Error/EOF sentinels.
type SyntaxError struct{ Msg string }

func (e *SyntaxError) Error() string { return e.Msg }

// EOFError signals that the reader ran out of tokens at a point where
// no EOF handler could supply more. At top level this is the normal
// REPL exit signal; inside an open form it is fatal.
type EOFError struct{}

func (e *EOFError) Error() string { return "unexpected end of file" }

// LispError reports a semantic error: unbound variable, wrong type,
// wrong arity, a user (error ...) call, or a malformed special form.
type LispError struct{ Msg string }

func (e *LispError) Error() string { return e.Msg }

func syntaxErrorf(format string, args ...interface{}) {
	panic(&SyntaxError{Msg: fmt.Sprintf(format, args...)})
}

func lispErrorf(format string, args ...interface{}) {
	panic(&LispError{Msg: fmt.Sprintf(format, args...)})
}

func raiseEOF() {
	panic(&EOFError{})
}
