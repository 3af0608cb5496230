// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpreterPersistsEnvironmentAcrossCalls(t *testing.T) {
	in := NewInterpreter(0)
	_, err := in.EvalString("(define x 10)")
	require.NoError(t, err)
	out, err := in.EvalString("(+ x 5)")
	require.NoError(t, err)
	assert.Equal(t, "15", out)
}

func TestInterpreterKeepsBindingsMadeBeforeAnError(t *testing.T) {
	in := NewInterpreter(0)
	_, err := in.EvalString("(define y 1) (car 5)")
	require.Error(t, err)
	out, err := in.EvalString("y")
	require.NoError(t, err)
	assert.Equal(t, "1", out)
}

func TestInterpreterEmptySourceReturnsEmptyResult(t *testing.T) {
	in := NewInterpreter(0)
	out, err := in.EvalString("  ; just a comment\n")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestInterpreterHostCanInstallBuiltins(t *testing.T) {
	in := NewInterpreter(0)
	in.Global().Define("host-constant", Number(42))
	out, err := in.EvalString("(+ host-constant 1)")
	require.NoError(t, err)
	assert.Equal(t, "43", out)
}
