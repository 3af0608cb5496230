// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

// Package lisp implements the Mini-Lisp value model, tokenizer,
// reader, and evaluator: a small Scheme-like dialect with lexically
// scoped closures, pairs, and a library of builtin procedures.
//
// The design follows github.com/robpike/lisp/lisp1_5 (a single-atom
// tagged Expr, a token-driven parser, and a Context holding lexical
// frames) generalized to the richer value set and semantics of a
// Scheme-like reader: booleans, strings, quasiquotation, and doubles
// in place of Lisp 1.5's big.Int atoms.
package lisp

import (
	"math"
	"strconv"
	"strings"
)

// Value is the tagged union at the center of the interpreter. Every
// concrete type below satisfies it; type switches over these concrete
// types are exhaustive and are the only form of dispatch the
// interpreter needs.
type Value interface {
	String() string
}

// Nil is the empty list, (). It is also a distinct value, not the
// same as the boolean false (see IsTrue).
type Nil struct{}

func (Nil) String() string { return "()" }

// TheNil is the single shared Nil value.
var TheNil = Nil{}

// Boolean carries a single bit.
type Boolean bool

func (b Boolean) String() string {
	if b {
		return "#t"
	}
	return "#f"
}

// Number is an IEEE-754 double. "Integer?" is a runtime predicate, not
// a distinct representation.
type Number float64

func (n Number) String() string {
	f := float64(n)
	if f == math.Floor(f) && !math.IsInf(f, 0) && !math.IsNaN(f) {
		i := int64(f)
		// int64(f) silently wraps once |f| >= 2^63; only trust the
		// round-trip conversion, otherwise fall back to the default
		// float formatting (see DESIGN.md open question 4).
		if float64(i) == f {
			return strconv.FormatInt(i, 10)
		}
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// String is an immutable byte sequence, heap-allocated so that eq? can
// observe reference identity: two separately constructed strings with
// equal content are not eq? (only equal?), per spec.md §4.4 and
// original_source/src/buitlins.cpp's eqQ, which falls back to
// shared_ptr pointer comparison for strings. This puts String in the
// same pointer-identified category as *Pair, *Lambda, and
// *BuiltinProc rather than the by-value Number/Boolean/Symbol atoms.
type String struct{ s string }

// NewString allocates a new String wrapping s. Each call returns a
// distinct reference, even when called twice with equal content.
func NewString(s string) *String { return &String{s: s} }

func (s *String) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s.s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Symbol is an interned-by-value identifier. Two symbols are eq? iff
// their names are equal; Go's string comparison already gives us
// that, so Symbol needs no separate interning table.
type Symbol string

func (s Symbol) String() string { return string(s) }

// Pair is an ordered two-field record. A proper list is Nil or a Pair
// whose Cdr is a proper list; an improper list is a chain terminated
// by a non-Nil, non-Pair atom.
type Pair struct {
	Car Value
	Cdr Value
}

// Cons builds a new Pair, mirroring the teacher's free Cons function.
func Cons(car, cdr Value) *Pair {
	return &Pair{Car: car, Cdr: cdr}
}

func (p *Pair) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(p.Car.String())
	cdr := p.Cdr
	for {
		switch v := cdr.(type) {
		case Nil:
			b.WriteByte(')')
			return b.String()
		case *Pair:
			b.WriteByte(' ')
			b.WriteString(v.Car.String())
			cdr = v.Cdr
		default:
			b.WriteString(" . ")
			b.WriteString(v.String())
			b.WriteByte(')')
			return b.String()
		}
	}
}

// BuiltinFunc is the signature native procedures implement. It
// receives the already-evaluated argument vector and the evaluator
// driving the call, for procedures like apply/map that need to invoke
// other procedures.
type BuiltinFunc func(args []Value, ev *Evaluator) Value

// BuiltinProc is a reference to a native function.
type BuiltinProc struct {
	Name string
	Fn   BuiltinFunc
}

func (b *BuiltinProc) String() string { return "#<procedure:" + b.Name + ">" }

// Lambda is a closure: a parameter list, a body (a sequence of forms
// evaluated in order, the last of which is the result), and the
// environment captured at creation time.
type Lambda struct {
	Params []string
	Body   []Value
	Env    *Environment
}

func (l *Lambda) String() string { return "#<procedure>" }

// IsNil reports whether v is the empty list.
func IsNil(v Value) bool { _, ok := v.(Nil); return ok }

// IsBoolean reports whether v is a Boolean.
func IsBoolean(v Value) bool { _, ok := v.(Boolean); return ok }

// IsNumber reports whether v is a Number.
func IsNumber(v Value) bool { _, ok := v.(Number); return ok }

// IsString reports whether v is a String.
func IsString(v Value) bool { _, ok := v.(*String); return ok }

// IsSymbol reports whether v is a Symbol.
func IsSymbol(v Value) bool { _, ok := v.(Symbol); return ok }

// IsPair reports whether v is a Pair.
func IsPair(v Value) bool { _, ok := v.(*Pair); return ok }

// IsProcedure reports whether v is a BuiltinProc or a Lambda.
func IsProcedure(v Value) bool {
	switch v.(type) {
	case *BuiltinProc, *Lambda:
		return true
	default:
		return false
	}
}

// IsList reports whether v is Nil, or a Pair whose cdr chain
// terminates in Nil.
func IsList(v Value) bool {
	for {
		switch t := v.(type) {
		case Nil:
			return true
		case *Pair:
			v = t.Cdr
		default:
			return false
		}
	}
}

// IsSelfEvaluating reports whether v evaluates to itself: every
// Boolean, Number, and String. Nil is deliberately excluded: evaluating
// an empty list form is a runtime error (see Evaluator.eval).
func IsSelfEvaluating(v Value) bool {
	switch v.(type) {
	case Boolean, Number, *String:
		return true
	default:
		return false
	}
}

// IsTrue reports whether v counts as true in a boolean context. Every
// value except Boolean(false) is true, including Nil (Scheme
// semantics, per spec).
func IsTrue(v Value) bool {
	b, ok := v.(Boolean)
	return !ok || bool(b)
}

// toSlice flattens a proper list into a Go slice, panicking with a
// LispError if the list is improper.
func toSlice(v Value) []Value {
	var out []Value
	for {
		switch t := v.(type) {
		case Nil:
			return out
		case *Pair:
			out = append(out, t.Car)
			v = t.Cdr
		default:
			lispErrorf("malformed list: %s", v.String())
		}
	}
}

// fromSlice builds a proper list out of a Go slice, the inverse of
// toSlice.
func fromSlice(vs []Value) Value {
	var result Value = TheNil
	for i := len(vs) - 1; i >= 0; i-- {
		result = Cons(vs[i], result)
	}
	return result
}

// eq reports structural identity for the atomic kinds spec.md
// requires (number, boolean, symbol, nil by value) and falls back to
// pointer identity otherwise. This is the "more useful" eq? contract
// flagged in spec.md §9 and is the one the original C++ (eqQ in
// buitlins.cpp) and this implementation both follow.
func eq(a, b Value) bool {
	if IsNil(a) && IsNil(b) {
		return true
	}
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case Symbol:
		bv, ok := b.(Symbol)
		return ok && av == bv
	default:
		return a == b
	}
}

// equal reports recursive structural equality over pairs and strings,
// delegating to eq for every other atom.
func equal(a, b Value) bool {
	switch av := a.(type) {
	case *Pair:
		bv, ok := b.(*Pair)
		return ok && equal(av.Car, bv.Car) && equal(av.Cdr, bv.Cdr)
	case *String:
		bv, ok := b.(*String)
		return ok && av.s == bv.s
	default:
		if IsPair(b) {
			return false
		}
		return eq(a, b)
	}
}
