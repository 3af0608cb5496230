// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import (
	"fmt"
	"os"
)

// display renders v with its plain printed form, without the REPL's
// leading quote mark, and prints strings without their surrounding
// quotes (spec.md §4.4).
func display(v Value) string {
	if s, ok := v.(*String); ok {
		return s.s
	}
	return v.String()
}

// ioBuiltins implements the output procedures: display/displayln print
// to standard output without a leading quote mark, print
// uses the REPL's own quote-prefix convention (spec.md §4.4, §6).
var ioBuiltins = map[string]BuiltinFunc{
	"display": func(args []Value, ev *Evaluator) Value {
		exactArgs("display", args, 1)
		fmt.Fprint(os.Stdout, display(args[0]))
		return TheNil
	},
	"displayln": func(args []Value, ev *Evaluator) Value {
		exactArgs("displayln", args, 1)
		fmt.Fprintln(os.Stdout, display(args[0]))
		return TheNil
	},
	"newline": func(args []Value, ev *Evaluator) Value {
		exactArgs("newline", args, 0)
		fmt.Fprintln(os.Stdout)
		return TheNil
	},
	"print": func(args []Value, ev *Evaluator) Value {
		exactArgs("print", args, 1)
		fmt.Fprintln(os.Stdout, FormatResult(args[0]))
		return TheNil
	},
}

// FormatResult renders v the way the REPL prints a top-level result: a
// leading quote mark for Symbol, Pair, or Nil, then the value's own
// printed form (spec.md §6). It is also used by the print builtin and
// the embedding interpreter so the convention has one implementation.
func FormatResult(v Value) string {
	switch v.(type) {
	case Symbol, *Pair, Nil:
		return "'" + v.String()
	default:
		return v.String()
	}
}

// controlBuiltins implements error and exit, the two procedures with
// process-level side effects beyond ordinary evaluation (spec.md
// §4.4).
var controlBuiltins = map[string]BuiltinFunc{
	"error": func(args []Value, ev *Evaluator) Value {
		exactArgs("error", args, 1)
		lispErrorf("%s", display(args[0]))
		panic("unreachable")
	},
	"exit": func(args []Value, ev *Evaluator) Value {
		code := 0
		switch len(args) {
		case 0:
		case 1:
			code = int(wantNumber("exit", args[0]))
		default:
			lispErrorf("exit: expected 0 or 1 argument(s), got %d", len(args))
		}
		os.Exit(code)
		panic("unreachable")
	},
}
