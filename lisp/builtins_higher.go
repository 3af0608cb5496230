// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

// higherOrderBuiltins implements map/filter/reduce, the three
// procedures that drive the evaluator back through Apply once per
// list element (spec.md §4.4).
var higherOrderBuiltins = map[string]BuiltinFunc{
	"map": func(args []Value, ev *Evaluator) Value {
		exactArgs("map", args, 2)
		proc := wantProcedure("map", args[0])
		elems := toSlice(args[1])
		out := make([]Value, len(elems))
		for i, e := range elems {
			out[i] = ev.Apply(proc, []Value{e})
		}
		return fromSlice(out)
	},
	"filter": func(args []Value, ev *Evaluator) Value {
		exactArgs("filter", args, 2)
		pred := wantProcedure("filter", args[0])
		elems := toSlice(args[1])
		var out []Value
		for _, e := range elems {
			if IsTrue(ev.Apply(pred, []Value{e})) {
				out = append(out, e)
			}
		}
		return fromSlice(out)
	},
	"reduce": func(args []Value, ev *Evaluator) Value {
		exactArgs("reduce", args, 2)
		proc := wantProcedure("reduce", args[0])
		elems := toSlice(args[1])
		if len(elems) == 0 {
			lispErrorf("reduce: list must be non-empty")
		}
		acc := elems[0]
		for _, e := range elems[1:] {
			acc = ev.Apply(proc, []Value{acc, e})
		}
		return acc
	},
}
