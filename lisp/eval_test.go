// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evalAll feeds src through a fresh interpreter and evaluates every
// top-level form in order, returning the rendered result of the last
// one. Any error EvalString returns fails the test via require.NoError.
func evalAll(t *testing.T, src string) string {
	t.Helper()
	in := NewInterpreter(0)
	out, err := in.EvalString(src)
	require.NoError(t, err)
	return out
}

func evalErr(t *testing.T, src string) error {
	t.Helper()
	in := NewInterpreter(0)
	_, err := in.EvalString(src)
	require.Error(t, err)
	return err
}

var consEvalTests = []struct {
	in  string
	out string
}{
	{"(cons 1 2)", "'(1 . 2)"},
	{"(cons 'a (cons 'b (cons 'c '())))", "'(a b c)"},
	{"(list 'a 'b 'c)", "'(a b c)"},
	{"(cons 1 '(2 3 4))", "'(1 2 3 4)"},
	{"(cons '(a b c) '())", "'((a b c))"},
	{"(cons '(a b c) '(d))", "'((a b c) d)"},
}

func TestConsEval(t *testing.T) {
	for _, test := range consEvalTests {
		assert.Equal(t, test.out, evalAll(t, test.in), test.in)
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct{ in, out string }{
		{"(+ 1 2 3)", "6"},
		{"(- 10 1)", "9"},
		{"(- 5)", "-5"},
		{"(* 2 3 4)", "24"},
		{"(/ 1 2)", "0.5"},
		{"(quotient 7 2)", "3"},
		{"(quotient -7 2)", "-3"},
		{"(modulo 7 -2)", "-1"},
		{"(modulo -7 2)", "1"},
		{"(remainder -7 2)", "-1"},
		{"(remainder 7 -2)", "1"},
	}
	for _, test := range tests {
		assert.Equal(t, test.out, evalAll(t, test.in), test.in)
	}
}

func TestComparisonIsTwoArgsOnly(t *testing.T) {
	assert.Equal(t, "#t", evalAll(t, "(< 1 2)"))
	assert.Equal(t, "#f", evalAll(t, "(< 3 2)"))
	assert.Equal(t, "#t", evalAll(t, "(<= 1 1)"))

	var le *LispError
	assert.ErrorAs(t, evalErr(t, "(< 1 2 3)"), &le)
	assert.ErrorAs(t, evalErr(t, "(= 1)"), &le)
}

func TestSubAndDivRejectTooManyArgs(t *testing.T) {
	var le *LispError
	assert.ErrorAs(t, evalErr(t, "(- 10 1 2)"), &le)
	assert.ErrorAs(t, evalErr(t, "(/ 8 2 2)"), &le)
}

func TestDefineAndLambda(t *testing.T) {
	src := `
		(define (square x) (* x x))
		(square 7)
	`
	assert.Equal(t, "49", evalAll(t, src))
}

func TestClosureCapturesDefiningEnv(t *testing.T) {
	src := `
		(define (make-adder n) (lambda (x) (+ x n)))
		(define add5 (make-adder 5))
		(add5 10)
	`
	assert.Equal(t, "15", evalAll(t, src))
}

func TestLetEvaluatesInitsInEnclosingEnvironment(t *testing.T) {
	src := `
		(define x 1)
		(let ((x 2) (y x)) (list x y))
	`
	assert.Equal(t, "'(2 1)", evalAll(t, src))
}

func TestCondElse(t *testing.T) {
	src := `(cond (#f 1) (#f 2) (else 3))`
	assert.Equal(t, "3", evalAll(t, src))
}

func TestAndOr(t *testing.T) {
	assert.Equal(t, "#f", evalAll(t, "(and 1 2 #f)"))
	assert.Equal(t, "3", evalAll(t, "(and 1 2 3)"))
	assert.Equal(t, "1", evalAll(t, "(or 1 2 3)"))
	assert.Equal(t, "#f", evalAll(t, "(or #f #f)"))
}

func TestQuasiquote(t *testing.T) {
	src := `
		(define x 5)
		` + "`(a ,x ,(+ x 1))"
	assert.Equal(t, "'(a 5 6)", evalAll(t, src))
}

func TestNestedQuasiquoteUnquoteLevels(t *testing.T) {
	src := "`(a `(b ,(+ 1 2)))"
	assert.Equal(t, "'(a (quasiquote (b (unquote (+ 1 2)))))", evalAll(t, src))
}

func TestRecursiveFactorial(t *testing.T) {
	src := `
		(define (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))
		(fact 10)
	`
	assert.Equal(t, "3628800", evalAll(t, src))
}

func TestMapFilterReduce(t *testing.T) {
	assert.Equal(t, "'(1 4 9 16)", evalAll(t, "(map (lambda (x) (* x x)) '(1 2 3 4))"))
	assert.Equal(t, "'(2 4)", evalAll(t, "(filter (lambda (x) (= 0 (remainder x 2))) '(1 2 3 4))"))
	assert.Equal(t, "10", evalAll(t, "(reduce + '(1 2 3 4))"))
}

func TestApplyDoesNotReevaluateArguments(t *testing.T) {
	src := `(apply + (list 1 2 3))`
	assert.Equal(t, "6", evalAll(t, src))
	// The symbols a and b are unbound; evaluating them again would fail.
	assert.Equal(t, "'(a b)", evalAll(t, "(apply list (list 'a 'b))"))
}

func TestEvalReflective(t *testing.T) {
	src := `(eval (list (quote +) 1 2))`
	assert.Equal(t, "3", evalAll(t, src))
}

func TestUnboundVariableIsLispError(t *testing.T) {
	err := evalErr(t, "(+ unbound-thing 1)")
	var le *LispError
	assert.ErrorAs(t, err, &le)
}

func TestNotAProcedure(t *testing.T) {
	err := evalErr(t, "(1 2 3)")
	var le *LispError
	assert.ErrorAs(t, err, &le)
}

func TestDuplicateLambdaParamIsError(t *testing.T) {
	err := evalErr(t, "(lambda (x x) x)")
	var le *LispError
	assert.ErrorAs(t, err, &le)
}

func TestStackDepthGuard(t *testing.T) {
	in := NewInterpreter(100)
	src := `
		(define (loop n) (+ 1 (loop n)))
		(loop 0)
	`
	_, err := in.EvalString(src)
	require.Error(t, err)
	var le *LispError
	assert.ErrorAs(t, err, &le)
}

func TestEqAndEqual(t *testing.T) {
	assert.Equal(t, "#t", evalAll(t, "(eq? 'a 'a)"))
	assert.Equal(t, "#t", evalAll(t, "(eq? 1 1)"))
	assert.Equal(t, "#f", evalAll(t, "(eq? (list 1 2) (list 1 2))"))
	assert.Equal(t, "#t", evalAll(t, "(equal? (list 1 2) (list 1 2))"))
	assert.Equal(t, "#f", evalAll(t, `(equal? "ab" "ac")`))
}

func TestEqOnStringsIsPointerIdentityNotContent(t *testing.T) {
	src := `(define a "x") (define b "x") (eq? a b)`
	assert.Equal(t, "#f", evalAll(t, src))
	assert.Equal(t, "#t", evalAll(t, `(define a "x") (eq? a a)`))
	assert.Equal(t, "#t", evalAll(t, `(equal? "x" "x")`))
}

func TestNumericPredicates(t *testing.T) {
	assert.Equal(t, "#t", evalAll(t, "(integer? 4)"))
	assert.Equal(t, "#f", evalAll(t, "(integer? 4.5)"))
	assert.Equal(t, "#t", evalAll(t, "(zero? 0)"))
	assert.Equal(t, "#t", evalAll(t, "(even? 4)"))
	assert.Equal(t, "#f", evalAll(t, "(even? 3)"))
	assert.Equal(t, "#t", evalAll(t, "(odd? 3)"))
}

func TestExpt(t *testing.T) {
	assert.Equal(t, "8", evalAll(t, "(expt 2 3)"))
}

func TestErrorBuiltinRaisesLispError(t *testing.T) {
	err := evalErr(t, `(error "boom")`)
	var le *LispError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "boom", le.Error())
}
