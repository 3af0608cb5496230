// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

// EOFHandler is invoked when the reader needs more tokens than the
// tokenizer currently holds. topLevel is true only when no token has
// yet been consumed for the form currently being read, which lets a
// REPL distinguish "show the normal prompt" from "show the
// continuation prompt". The handler returns true after supplying more
// tokens, or false to signal genuine end-of-input.
type EOFHandler func(topLevel bool) bool

// Reader consumes a Tokenizer's shared token deque, producing one
// Value per top-level call to Read. This generalizes the teacher's
// Parser (parse.go), which parses directly off a lexer with one token
// of pushback, to the spec's token-deque-plus-EOF-callback contract
// (spec.md §4.2), matching original_source/src/reader.cpp's
// readValue/readTails/checkEmpty shape.
type Reader struct {
	tok        *Tokenizer
	eofHandler EOFHandler
	topLevel   bool
}

// NewReader returns a Reader pulling tokens from tok, invoking eof
// when more input is needed. eof may be nil, in which case running out
// of tokens always raises EOFError.
func NewReader(tok *Tokenizer, eof EOFHandler) *Reader {
	return &Reader{tok: tok, eofHandler: eof}
}

func (r *Reader) checkEmpty() {
	for r.tok.Len() == 0 {
		if r.eofHandler == nil || !r.eofHandler(r.topLevel) {
			raiseEOF()
		}
	}
}

func (r *Reader) peek() Token {
	r.checkEmpty()
	return r.tok.Peek()
}

func (r *Reader) pop() Token {
	r.checkEmpty()
	return r.tok.Pop()
}

// Read parses one top-level value. It panics with *EOFError if input
// is exhausted before a complete form is read, or *SyntaxError on
// malformed syntax.
func (r *Reader) Read() Value {
	r.topLevel = true
	return r.readValue()
}

func (r *Reader) readValue() Value {
	tok := r.pop()
	r.topLevel = false
	switch tok.Type {
	case tokLeftParen:
		next := r.peek()
		if isDotToken(next) {
			syntaxErrorf(". cannot be the first token in a list")
		}
		return r.readTails()
	case tokQuote:
		return r.readQuoteLike("quote")
	case tokQuasiquote:
		return r.readQuoteLike("quasiquote")
	case tokUnquote:
		return r.readQuoteLike("unquote")
	case tokNumber:
		return Number(tok.Num)
	case tokBoolean:
		return Boolean(tok.Bool)
	case tokString:
		return NewString(tok.Text)
	case tokIdentifier:
		return Symbol(tok.Text)
	case tokRightParen:
		syntaxErrorf("unexpected )")
	}
	syntaxErrorf("unexpected token %q", tok.String())
	panic("unreachable")
}

// readQuoteLike desugars a reader macro into (sym v): 'x -> (quote x),
// `x -> (quasiquote x), ,x -> (unquote x).
func (r *Reader) readQuoteLike(sym string) Value {
	v := r.readValue()
	return Cons(Symbol(sym), Cons(v, TheNil))
}

// readTails reads the body of a list, the opening paren already
// consumed.
func (r *Reader) readTails() Value {
	next := r.peek()
	switch {
	case next.Type == tokRightParen:
		r.pop()
		return TheNil
	case isDotToken(next):
		r.pop()
		value := r.readValue()
		tok := r.pop()
		if tok.Type != tokRightParen {
			syntaxErrorf("expected ) after dotted tail, found %q", tok.String())
		}
		return value
	default:
		car := r.readValue()
		cdr := r.readTails()
		return Cons(car, cdr)
	}
}
