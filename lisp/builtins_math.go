// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import "math"

// arithmeticBuiltins implements the numeric-tower-free arithmetic
// procedures of spec.md §4.4. quotient/modulo/remainder follow
// spec.md's explicit text rather than original_source/src/buitlins.cpp's
// floor/fmod-based implementation, which gives the wrong sign for
// negative operands (see DESIGN.md).
var arithmeticBuiltins = map[string]BuiltinFunc{
	"+": func(args []Value, ev *Evaluator) Value {
		var sum Number
		for _, a := range args {
			sum += wantNumber("+", a)
		}
		return sum
	},
	"-": func(args []Value, ev *Evaluator) Value {
		rangeArgs("-", args, 1, 2)
		if len(args) == 1 {
			return -wantNumber("-", args[0])
		}
		return wantNumber("-", args[0]) - wantNumber("-", args[1])
	},
	"*": func(args []Value, ev *Evaluator) Value {
		product := Number(1)
		for _, a := range args {
			product *= wantNumber("*", a)
		}
		return product
	},
	"/": func(args []Value, ev *Evaluator) Value {
		rangeArgs("/", args, 1, 2)
		if len(args) == 1 {
			divisor := wantNumber("/", args[0])
			if divisor == 0 {
				lispErrorf("/: division by zero")
			}
			return 1 / divisor
		}
		divisor := wantNumber("/", args[1])
		if divisor == 0 {
			lispErrorf("/: division by zero")
		}
		return wantNumber("/", args[0]) / divisor
	},
	"quotient": func(args []Value, ev *Evaluator) Value {
		exactArgs("quotient", args, 2)
		a, b := wantNumber("quotient", args[0]), wantNumber("quotient", args[1])
		if b == 0 {
			lispErrorf("quotient: division by zero")
		}
		return Number(math.Trunc(float64(a) / float64(b)))
	},
	"modulo": func(args []Value, ev *Evaluator) Value {
		exactArgs("modulo", args, 2)
		a, b := wantNumber("modulo", args[0]), wantNumber("modulo", args[1])
		if b == 0 {
			lispErrorf("modulo: division by zero")
		}
		m := math.Mod(float64(a), float64(b))
		if m != 0 && (m < 0) != (float64(b) < 0) {
			m += float64(b)
		}
		return Number(m)
	},
	"remainder": func(args []Value, ev *Evaluator) Value {
		exactArgs("remainder", args, 2)
		a, b := wantNumber("remainder", args[0]), wantNumber("remainder", args[1])
		if b == 0 {
			lispErrorf("remainder: division by zero")
		}
		return Number(math.Mod(float64(a), float64(b)))
	},
	"expt": func(args []Value, ev *Evaluator) Value {
		exactArgs("expt", args, 2)
		base, exp := wantNumber("expt", args[0]), wantNumber("expt", args[1])
		return Number(math.Pow(float64(base), float64(exp)))
	},
	"abs": func(args []Value, ev *Evaluator) Value {
		exactArgs("abs", args, 1)
		return Number(math.Abs(float64(wantNumber("abs", args[0]))))
	},
	"min": func(args []Value, ev *Evaluator) Value {
		minArgs("min", args, 1)
		result := wantNumber("min", args[0])
		for _, a := range args[1:] {
			n := wantNumber("min", a)
			if n < result {
				result = n
			}
		}
		return result
	},
	"max": func(args []Value, ev *Evaluator) Value {
		minArgs("max", args, 1)
		result := wantNumber("max", args[0])
		for _, a := range args[1:] {
			n := wantNumber("max", a)
			if n > result {
				result = n
			}
		}
		return result
	},
}

// comparisonBuiltins implements the two-argument numeric comparisons
// of spec.md §4.4. Arity is part of the external contract, matching
// original_source/src/buitlins.cpp's eq/lt/gt/lteq/gteq, which all call
// checkArgsCount(args, 2) and reject anything else.
var comparisonBuiltins = map[string]BuiltinFunc{
	"=":  numCompare("=", func(a, b Number) bool { return a == b }),
	"<":  numCompare("<", func(a, b Number) bool { return a < b }),
	">":  numCompare(">", func(a, b Number) bool { return a > b }),
	"<=": numCompare("<=", func(a, b Number) bool { return a <= b }),
	">=": numCompare(">=", func(a, b Number) bool { return a >= b }),
}

func numCompare(name string, cmp func(a, b Number) bool) BuiltinFunc {
	return func(args []Value, ev *Evaluator) Value {
		exactArgs(name, args, 2)
		return Boolean(cmp(wantNumber(name, args[0]), wantNumber(name, args[1])))
	}
}
