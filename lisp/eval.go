// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

// specialForm is a syntactic form whose operands are not evaluated
// before dispatch; the handler decides what (if anything) to
// evaluate. operands is the unevaluated cdr of the form.
type specialForm func(ev *Evaluator, operands Value, env *Environment) Value

var specialForms map[string]specialForm

func init() {
	specialForms = map[string]specialForm{
		"define":     defineForm,
		"lambda":     lambdaForm,
		"quote":      quoteForm,
		"quasiquote": quasiquoteForm,
		"begin":      beginForm,
		"if":         ifForm,
		"and":        andForm,
		"or":         orForm,
		"cond":       condForm,
		"let":        letForm,
	}
}

// Evaluator holds the state of one interpreter session: the global
// environment every closure ultimately chains back to, and a
// recursion guard. This generalizes the teacher's Context (eval.go),
// which kept an explicit stack of call frames purely for tracebacks
// and a depth counter; we keep only the depth counter, since our
// frames are reachable through the closures' own parent pointers.
type Evaluator struct {
	Global   *Environment
	depth    int
	maxDepth int
}

// NewEvaluator returns an Evaluator ready to execute. maxDepth bounds
// the recursion depth of nested Apply calls; <= 0 means unlimited.
// Mini-Lisp has no tail-call optimization (spec.md §1 Non-goals), so a
// runaway recursive Lambda must fail with a LispError rather than
// overflow the host's goroutine stack; this is a direct adaptation of
// the teacher's Context.maxStackDepth / stackDepth pair.
func NewEvaluator(maxDepth int) *Evaluator {
	return &Evaluator{Global: NewGlobalEnvironment(), maxDepth: maxDepth}
}

// Eval evaluates expr against the global environment.
func (ev *Evaluator) Eval(expr Value) Value {
	return ev.eval(expr, ev.Global)
}

// eval is spec.md §4.4's Eval algorithm, steps 1-6.
func (ev *Evaluator) eval(expr Value, env *Environment) Value {
	switch v := expr.(type) {
	case Symbol:
		val, ok := env.Lookup(string(v))
		if !ok {
			lispErrorf("Unbound variable: %s", v)
		}
		return val
	case Nil:
		lispErrorf("Shouldn't evaluate empty list")
	case Boolean, Number, *String:
		return expr
	case *Pair:
		if sym, ok := v.Car.(Symbol); ok {
			if form, ok := specialForms[string(sym)]; ok {
				return form(ev, v.Cdr, env)
			}
		}
		op := ev.eval(v.Car, env)
		args := ev.evalList(v.Cdr, env)
		return ev.Apply(op, args)
	}
	lispErrorf("Malformed list: %s", expr.String())
	panic("unreachable")
}

// evalList requires expr to be a proper list and evaluates each
// element in order, left to right (spec.md §5's ordering guarantee).
func (ev *Evaluator) evalList(expr Value, env *Environment) []Value {
	elems := toSlice(expr)
	out := make([]Value, len(elems))
	for i, e := range elems {
		out[i] = ev.eval(e, env)
	}
	return out
}

// evalSequence evaluates a non-empty sequence of forms in order,
// returning the value of the last one. Used by begin, cond clause
// bodies, let bodies, and lambda bodies (spec.md §5).
func (ev *Evaluator) evalSequence(forms []Value, env *Environment) Value {
	var result Value = TheNil
	for _, f := range forms {
		result = ev.eval(f, env)
	}
	return result
}

// Apply applies op to args: a BuiltinProc is called directly; a Lambda
// gets a fresh child environment parented at its captured env, with
// its parameters bound to args, and its body evaluated as a sequence.
// Any other operator raises "Not a procedure" (spec.md §4.4).
func (ev *Evaluator) Apply(op Value, args []Value) Value {
	ev.depth++
	if ev.maxDepth > 0 && ev.depth > ev.maxDepth {
		ev.depth--
		lispErrorf("stack too deep")
	}
	defer func() { ev.depth-- }()

	switch fn := op.(type) {
	case *BuiltinProc:
		return fn.Fn(args, ev)
	case *Lambda:
		child := fn.Env.CreateChild(fn.Params, args)
		return ev.evalSequence(fn.Body, child)
	default:
		lispErrorf("Not a procedure: %s", op.String())
		panic("unreachable")
	}
}

// --- special forms ---

func requireOperands(operands Value, min int) []Value {
	vals := toSlice(operands)
	if len(vals) < min {
		lispErrorf("too few operands: %d < %d", len(vals), min)
	}
	return vals
}

func requireOperandsRange(operands Value, min, max int) []Value {
	vals := toSlice(operands)
	if len(vals) < min {
		lispErrorf("too few operands: %d < %d", len(vals), min)
	}
	if len(vals) > max {
		lispErrorf("too many operands: %d > %d", len(vals), max)
	}
	return vals
}

// parseParams turns a formals list into distinct parameter names,
// raising a LispError on a non-symbol or a duplicate name.
func parseParams(formals Value) []string {
	elems := toSlice(formals)
	seen := make(map[string]bool, len(elems))
	params := make([]string, len(elems))
	for i, e := range elems {
		sym, ok := e.(Symbol)
		if !ok {
			lispErrorf("expected a symbol in parameter list, found %s", e.String())
		}
		if seen[string(sym)] {
			lispErrorf("duplicate parameter name: %s", sym)
		}
		seen[string(sym)] = true
		params[i] = string(sym)
	}
	return params
}

// makeLambda builds a *Lambda from a formals Value and a body Value
// (the list of body forms), capturing env. Shared by the lambda
// special form and define's function-shorthand desugaring.
func makeLambda(formals, body Value, env *Environment) *Lambda {
	params := parseParams(formals)
	bodyForms := toSlice(body)
	if len(bodyForms) == 0 {
		lispErrorf("lambda requires at least one body form")
	}
	return &Lambda{Params: params, Body: bodyForms, Env: env}
}

func lambdaForm(ev *Evaluator, operands Value, env *Environment) Value {
	pair, ok := operands.(*Pair)
	if !ok {
		lispErrorf("malformed lambda")
	}
	return makeLambda(pair.Car, pair.Cdr, env)
}

// defineForm implements both (define name expr) and
// (define (name . formals) body...), the latter desugaring to
// (define name (lambda formals body...)). Returns the symbol defined.
// define installs the binding in the current frame only (spec.md
// §4.3, resolved ambiguity in DESIGN.md).
func defineForm(ev *Evaluator, operands Value, env *Environment) Value {
	pair, ok := operands.(*Pair)
	if !ok {
		lispErrorf("too few operands to define")
	}
	switch target := pair.Car.(type) {
	case Symbol:
		rest := toSlice(pair.Cdr)
		if len(rest) != 1 {
			lispErrorf("define expects exactly one value expression, got %d", len(rest))
		}
		val := ev.eval(rest[0], env)
		env.Define(string(target), val)
		return target
	case *Pair:
		nameSym, ok := target.Car.(Symbol)
		if !ok {
			lispErrorf("in function define, %s is not a symbol name", target.Car.String())
		}
		fn := makeLambda(target.Cdr, pair.Cdr, env)
		env.Define(string(nameSym), fn)
		return nameSym
	default:
		lispErrorf("malformed define form: %s", pair.Car.String())
		panic("unreachable")
	}
}

func quoteForm(ev *Evaluator, operands Value, env *Environment) Value {
	args := requireOperandsRange(operands, 1, 1)
	return args[0]
}

const (
	symQuasiquote = Symbol("quasiquote")
	symUnquote    = Symbol("unquote")
)

func quasiquoteForm(ev *Evaluator, operands Value, env *Environment) Value {
	args := requireOperandsRange(operands, 1, 1)
	return quasiquoteWalk(ev, env, args[0], 1)
}

// quasiquoteWalk descends a quasiquote template tracking the current
// nesting level; unquote at level 1 is the only point that calls
// Eval. Grounded on original_source/src/forms.cpp's quasiquoteItem and
// cross-checked against the level-counting quasiquote walker in
// other_examples' t73f.de/r/sx builtins (see DESIGN.md).
func quasiquoteWalk(ev *Evaluator, env *Environment, val Value, level int) Value {
	pair, ok := val.(*Pair)
	if !ok {
		return val
	}
	if sym, ok := pair.Car.(Symbol); ok {
		if sym == symUnquote {
			level--
			if level == 0 {
				args := requireOperandsRange(pair.Cdr, 1, 1)
				return ev.eval(args[0], env)
			}
		} else if sym == symQuasiquote {
			level++
		}
	}
	car := quasiquoteWalk(ev, env, pair.Car, level)
	cdr := quasiquoteWalk(ev, env, pair.Cdr, level)
	return Cons(car, cdr)
}

func beginForm(ev *Evaluator, operands Value, env *Environment) Value {
	forms := requireOperands(operands, 1)
	return ev.evalSequence(forms, env)
}

func ifForm(ev *Evaluator, operands Value, env *Environment) Value {
	args := requireOperandsRange(operands, 2, 3)
	if IsTrue(ev.eval(args[0], env)) {
		return ev.eval(args[1], env)
	}
	if len(args) == 3 {
		return ev.eval(args[2], env)
	}
	return TheNil
}

func andForm(ev *Evaluator, operands Value, env *Environment) Value {
	pair, ok := operands.(*Pair)
	if !ok {
		return Boolean(true)
	}
	val := ev.eval(pair.Car, env)
	if !IsTrue(val) {
		return Boolean(false)
	}
	if IsNil(pair.Cdr) {
		return val
	}
	return andForm(ev, pair.Cdr, env)
}

func orForm(ev *Evaluator, operands Value, env *Environment) Value {
	pair, ok := operands.(*Pair)
	if !ok {
		return Boolean(false)
	}
	val := ev.eval(pair.Car, env)
	if IsTrue(val) {
		return val
	}
	return orForm(ev, pair.Cdr, env)
}

func condForm(ev *Evaluator, operands Value, env *Environment) Value {
	clauses := toSlice(operands)
	for i, clauseVal := range clauses {
		clause := requireOperands(clauseVal, 1)
		var test Value
		if sym, ok := clause[0].(Symbol); ok && sym == "else" {
			if i != len(clauses)-1 {
				lispErrorf("else clause must be the last one")
			}
			test = Boolean(true)
		} else {
			test = ev.eval(clause[0], env)
		}
		if IsTrue(test) {
			if len(clause) > 1 {
				return ev.evalSequence(clause[1:], env)
			}
			return test
		}
	}
	return TheNil
}

func letForm(ev *Evaluator, operands Value, env *Environment) Value {
	pair, ok := operands.(*Pair)
	if !ok {
		lispErrorf("too few operands to let")
	}
	bindings := toSlice(pair.Car)
	names := make([]string, len(bindings))
	values := make([]Value, len(bindings))
	for i, b := range bindings {
		parts := requireOperandsRange(b, 2, 2)
		sym, ok := parts[0].(Symbol)
		if !ok {
			lispErrorf("expected a let binding name, found %s", parts[0].String())
		}
		// Each vi is evaluated in the enclosing environment, not
		// sequentially in the new one (spec.md §4.4).
		names[i] = string(sym)
		values[i] = ev.eval(parts[1], env)
	}
	child := env.CreateChild(names, values)
	body := requireOperands(pair.Cdr, 1)
	return ev.evalSequence(body, child)
}
