// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, line string) []Token {
	t.Helper()
	tok := NewTokenizer()
	tok.FeedLine(line)
	var out []Token
	for tok.Len() > 0 {
		out = append(out, tok.Pop())
	}
	return out
}

func TestTokenizeAtoms(t *testing.T) {
	toks := tokenize(t, `(foo 42 -3.5 "a\"b" #t #f bar)`)
	types := make([]TokType, len(toks))
	for i, tk := range toks {
		types[i] = tk.Type
	}
	assert.Equal(t, []TokType{
		tokLeftParen, tokIdentifier, tokNumber, tokNumber, tokString,
		tokBoolean, tokBoolean, tokIdentifier, tokRightParen,
	}, types)
	assert.Equal(t, `a"b`, toks[4].Text)
	assert.True(t, toks[5].Bool)
	assert.False(t, toks[6].Bool)
}

func TestTokenizeSignsAreIdentifiersWhenBare(t *testing.T) {
	toks := tokenize(t, "(+ - 1 -1)")
	assert.Equal(t, tokIdentifier, toks[1].Type)
	assert.Equal(t, tokIdentifier, toks[2].Type)
	assert.Equal(t, tokNumber, toks[3].Type)
	assert.Equal(t, tokNumber, toks[4].Type)
}

func TestTokenizeQuoteFamily(t *testing.T) {
	toks := tokenize(t, "'a `b ,c")
	assert.Equal(t, []TokType{tokQuote, tokIdentifier, tokQuasiquote, tokIdentifier, tokUnquote, tokIdentifier}, []TokType{
		toks[0].Type, toks[1].Type, toks[2].Type, toks[3].Type, toks[4].Type, toks[5].Type,
	})
}

func TestTokenizeComment(t *testing.T) {
	toks := tokenize(t, "(a ; this is a comment\n")
	assert.Len(t, toks, 2)
}

func TestUnterminatedStringIsSyntaxError(t *testing.T) {
	tok := NewTokenizer()
	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*SyntaxError)
		assert.True(t, ok)
	}()
	tok.FeedLine(`"unterminated`)
	t.Fatal("expected panic")
}

func TestInvalidEscapeIsSyntaxError(t *testing.T) {
	tok := NewTokenizer()
	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*SyntaxError)
		assert.True(t, ok)
	}()
	tok.FeedLine(`"bad\qescape"`)
	t.Fatal("expected panic")
}
