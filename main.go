// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

// Command minilisp is a REPL and file loader for Mini-Lisp, a small
// Scheme-like dialect with lexically scoped closures, pairs, and a
// library of builtin procedures.
//
// Invoked with no arguments it starts an interactive prompt reading
// from standard input. Invoked with -load it evaluates a file first;
// -load alone (without a following interactive session) behaves as a
// batch file loader, stopping at the first error.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"github.com/cpressey/minilisp/lisp"
)

var (
	loadPath   = flag.String("load", "", "source file to evaluate before the prompt, or alone")
	verbose    = flag.Bool("verbose", false, "log each top-level form read, to standard error")
	stackDepth = flag.Int("depth", 1e5, "maximum call/apply nesting depth; 0 means unlimited")
)

var log zerolog.Logger

func main() {
	flag.Parse()
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		log = log.Level(zerolog.Disabled)
	}

	ev := lisp.NewEvaluator(*stackDepth)

	if *loadPath != "" {
		ok := loadFile(ev, *loadPath)
		if flag.NArg() == 0 {
			if ok {
				os.Exit(0)
			}
			os.Exit(1)
		}
		if !ok {
			os.Exit(1)
		}
	}

	repl(ev)
}

// loadFile reads the named source file and evaluates each top-level
// form in it in order, stopping at the first runtime error. It
// returns whether the entire file evaluated without error (spec.md
// §6's file-loader contract).
func loadFile(ev *lisp.Evaluator, path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return false
	}

	tok := lisp.NewTokenizer()
	tok.FeedAll(string(data))
	reader := lisp.NewReader(tok, func(topLevel bool) bool { return false })

	ok := true
	func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintln(os.Stderr, "Error:", formatPanic(r))
				ok = false
			}
		}()
		for tok.Len() > 0 {
			form := reader.Read()
			log.Debug().Str("form", form.String()).Msg("read")
			ev.Eval(form)
		}
	}()
	return ok
}

// repl runs the interactive loop: >>> at top level, .. to continue a
// partial form, one line of standard input at a time, via
// github.com/chzyer/readline for editing and history. Each top-level
// form is evaluated and its result printed with the quote-prefix
// convention; an error is reported and the loop continues; an
// EOFError (end of input) exits cleanly. This generalizes the
// teacher's input/handler pair (main.go) to the spec's token-deque
// reader with an EOF callback in place of the teacher's rune-at-a-time
// Parser pushback.
func repl(ev *lisp.Evaluator) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer rl.Close()

	tok := lisp.NewTokenizer()
	eofHandler := func(topLevel bool) bool {
		if topLevel {
			rl.SetPrompt(">>> ")
		} else {
			rl.SetPrompt(" .. ")
		}
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			return true
		}
		if err == io.EOF || err != nil {
			return false
		}
		tok.FeedLine(line)
		return true
	}
	reader := lisp.NewReader(tok, eofHandler)

	for {
		done := evalOneForm(ev, reader)
		if done {
			return
		}
	}
}

// evalOneForm reads and evaluates a single top-level form, printing
// its result or error. It returns true when input is exhausted and
// the REPL should exit.
func evalOneForm(ev *lisp.Evaluator, reader *lisp.Reader) (exit bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*lisp.EOFError); ok {
				exit = true
				return
			}
			fmt.Fprintln(os.Stderr, "Error:", formatPanic(r))
		}
	}()

	form := reader.Read()
	log.Debug().Str("form", form.String()).Msg("read")
	result := ev.Eval(form)
	fmt.Println(lisp.FormatResult(result))
	return false
}

func formatPanic(r interface{}) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(r)
}
