// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import "math"

// registerBuiltins installs the entire builtin procedure table into
// env. This generalizes the teacher's funcMap dispatch table
// (elementary.go/math.go), which mapped names straight to *Context
// methods; here each builtin is a free BuiltinFunc closed over nothing
// but its name, registered as a *BuiltinProc value so it can be passed
// around like any other first-class procedure (spec.md §4.4's map/
// filter/reduce/apply require this).
func registerBuiltins(env *Environment) {
	register(env, predicateBuiltins)
	register(env, equalityBuiltins)
	register(env, pairListBuiltins)
	register(env, arithmeticBuiltins)
	register(env, comparisonBuiltins)
	register(env, ioBuiltins)
	register(env, controlBuiltins)
	register(env, higherOrderBuiltins)
	register(env, reflectiveBuiltins)
}

func register(env *Environment, table map[string]BuiltinFunc) {
	for name, fn := range table {
		env.Define(name, &BuiltinProc{Name: name, Fn: fn})
	}
}

func exactArgs(name string, args []Value, n int) {
	if len(args) != n {
		lispErrorf("%s: expected %d argument(s), got %d", name, n, len(args))
	}
}

func minArgs(name string, args []Value, n int) {
	if len(args) < n {
		lispErrorf("%s: expected at least %d argument(s), got %d", name, n, len(args))
	}
}

func rangeArgs(name string, args []Value, min, max int) {
	if len(args) < min || len(args) > max {
		lispErrorf("%s: expected %d to %d argument(s), got %d", name, min, max, len(args))
	}
}

func wantNumber(name string, v Value) Number {
	n, ok := v.(Number)
	if !ok {
		lispErrorf("%s: expected a number, got %s", name, v.String())
	}
	return n
}

func wantString(name string, v Value) *String {
	s, ok := v.(*String)
	if !ok {
		lispErrorf("%s: expected a string, got %s", name, v.String())
	}
	return s
}

func wantPair(name string, v Value) *Pair {
	p, ok := v.(*Pair)
	if !ok {
		lispErrorf("%s: expected a pair, got %s", name, v.String())
	}
	return p
}

func wantProcedure(name string, v Value) Value {
	if !IsProcedure(v) {
		lispErrorf("%s: expected a procedure, got %s", name, v.String())
	}
	return v
}

// predicateBuiltins implements the one-argument predicates of spec.md
// §4.4. The type predicates are thin adapters over the Is* functions in
// value.go; integer?, zero?, even? and odd? test numbers via
// isInteger and wantNumber.
var predicateBuiltins = map[string]BuiltinFunc{
	"atom?": func(args []Value, ev *Evaluator) Value {
		exactArgs("atom?", args, 1)
		return Boolean(!IsPair(args[0]))
	},
	"pair?": func(args []Value, ev *Evaluator) Value {
		exactArgs("pair?", args, 1)
		return Boolean(IsPair(args[0]))
	},
	"null?": func(args []Value, ev *Evaluator) Value {
		exactArgs("null?", args, 1)
		return Boolean(IsNil(args[0]))
	},
	"list?": func(args []Value, ev *Evaluator) Value {
		exactArgs("list?", args, 1)
		return Boolean(IsList(args[0]))
	},
	"number?": func(args []Value, ev *Evaluator) Value {
		exactArgs("number?", args, 1)
		return Boolean(IsNumber(args[0]))
	},
	"boolean?": func(args []Value, ev *Evaluator) Value {
		exactArgs("boolean?", args, 1)
		return Boolean(IsBoolean(args[0]))
	},
	"string?": func(args []Value, ev *Evaluator) Value {
		exactArgs("string?", args, 1)
		return Boolean(IsString(args[0]))
	},
	"symbol?": func(args []Value, ev *Evaluator) Value {
		exactArgs("symbol?", args, 1)
		return Boolean(IsSymbol(args[0]))
	},
	"procedure?": func(args []Value, ev *Evaluator) Value {
		exactArgs("procedure?", args, 1)
		return Boolean(IsProcedure(args[0]))
	},
	"integer?": func(args []Value, ev *Evaluator) Value {
		exactArgs("integer?", args, 1)
		n, ok := args[0].(Number)
		return Boolean(ok && isInteger(n))
	},
	"zero?": func(args []Value, ev *Evaluator) Value {
		exactArgs("zero?", args, 1)
		return Boolean(wantNumber("zero?", args[0]) == 0)
	},
	"even?": func(args []Value, ev *Evaluator) Value {
		exactArgs("even?", args, 1)
		n := wantNumber("even?", args[0])
		if !isInteger(n) {
			lispErrorf("even?: expected an integer, got %s", n.String())
		}
		return Boolean(math.Mod(float64(n), 2) == 0)
	},
	"odd?": func(args []Value, ev *Evaluator) Value {
		exactArgs("odd?", args, 1)
		n := wantNumber("odd?", args[0])
		if !isInteger(n) {
			lispErrorf("odd?: expected an integer, got %s", n.String())
		}
		return Boolean(math.Mod(float64(n), 2) != 0)
	},
}

// isInteger reports spec.md §3's invariant 3 predicate: finite and
// equal to its own floor.
func isInteger(n Number) bool {
	f := float64(n)
	return f == math.Floor(f) && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// equalityBuiltins implements eq?/equal? (spec.md §4.4, eq? semantics
// per DESIGN.md's resolution of the explicit ambiguity in spec.md §9).
var equalityBuiltins = map[string]BuiltinFunc{
	"eq?": func(args []Value, ev *Evaluator) Value {
		exactArgs("eq?", args, 2)
		return Boolean(eq(args[0], args[1]))
	},
	"equal?": func(args []Value, ev *Evaluator) Value {
		exactArgs("equal?", args, 2)
		return Boolean(equal(args[0], args[1]))
	},
	"not": func(args []Value, ev *Evaluator) Value {
		exactArgs("not", args, 1)
		return Boolean(!IsTrue(args[0]))
	},
}

// pairListBuiltins implements pair construction/access and list
// convenience procedures.
var pairListBuiltins = map[string]BuiltinFunc{
	"cons": func(args []Value, ev *Evaluator) Value {
		exactArgs("cons", args, 2)
		return Cons(args[0], args[1])
	},
	"car": func(args []Value, ev *Evaluator) Value {
		exactArgs("car", args, 1)
		return wantPair("car", args[0]).Car
	},
	"cdr": func(args []Value, ev *Evaluator) Value {
		exactArgs("cdr", args, 1)
		return wantPair("cdr", args[0]).Cdr
	},
	"list": func(args []Value, ev *Evaluator) Value {
		return fromSlice(args)
	},
	"length": func(args []Value, ev *Evaluator) Value {
		exactArgs("length", args, 1)
		return Number(len(toSlice(args[0])))
	},
	"append": func(args []Value, ev *Evaluator) Value {
		var all []Value
		for _, a := range args {
			all = append(all, toSlice(a)...)
		}
		return fromSlice(all)
	},
}

// reflectiveBuiltins implements apply/eval, the two builtins that
// re-enter the evaluator directly rather than operating on plain data
// (spec.md §4.4).
var reflectiveBuiltins = map[string]BuiltinFunc{
	"apply": func(args []Value, ev *Evaluator) Value {
		minArgs("apply", args, 2)
		op := wantProcedure("apply", args[0])
		last := toSlice(args[len(args)-1])
		flat := append(append([]Value{}, args[1:len(args)-1]...), last...)
		return ev.Apply(op, flat)
	},
	"eval": func(args []Value, ev *Evaluator) Value {
		exactArgs("eval", args, 1)
		return ev.Eval(args[0])
	},
}
