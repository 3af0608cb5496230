// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

// Interpreter is the embedding surface for Mini-Lisp: one global
// environment plus the tokenizer state needed to feed it source
// incrementally. This generalizes original_source/src/wasm_env.h's
// WasmEnv, which exposed a single eval(code string) -> string entry
// point over the same tokenize/read/eval/toString pipeline.
type Interpreter struct {
	ev  *Evaluator
	tok *Tokenizer
}

// NewInterpreter returns a ready-to-use Interpreter. maxDepth bounds
// recursive Apply nesting; <= 0 means unlimited.
func NewInterpreter(maxDepth int) *Interpreter {
	return &Interpreter{ev: NewEvaluator(maxDepth), tok: NewTokenizer()}
}

// Global exposes the interpreter's root environment, so a host program
// can install additional builtins before evaluating any source.
func (in *Interpreter) Global() *Environment { return in.ev.Global }

// EvalString tokenizes, reads, and evaluates every top-level form in
// src against the interpreter's persistent global environment, in
// order, returning the REPL-format rendering of the last form's
// result (or "" if src contains no forms). A SyntaxError, EOFError, or
// LispError raised anywhere in the pipeline is converted to a plain
// Go error; the interpreter's environment still reflects whatever
// definitions completed before the error (spec.md §6's embedding
// contract: no global rollback on error).
func (in *Interpreter) EvalString(src string) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = toError(r)
		}
	}()

	in.tok.FeedAll(src)
	reader := NewReader(in.tok, func(topLevel bool) bool { return false })

	var last Value = TheNil
	any := false
	for in.tok.Len() > 0 {
		form := reader.Read()
		last = in.ev.Eval(form)
		any = true
	}
	if !any {
		return "", nil
	}
	return FormatResult(last), nil
}

// toError converts a recovered panic value from one of SyntaxError,
// EOFError, or LispError into a Go error, re-panicking anything else
// (an actual programming bug should not be silently swallowed at this
// boundary).
func toError(r interface{}) error {
	switch e := r.(type) {
	case *SyntaxError:
		return e
	case *EOFError:
		return e
	case *LispError:
		return e
	case error:
		return e
	default:
		panic(r)
	}
}
