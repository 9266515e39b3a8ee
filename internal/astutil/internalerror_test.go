// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package astutil_test

import (
	"go/ast"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/inspector"

	. "fillmore-labs.com/observetrack/internal/astutil"
	"fillmore-labs.com/observetrack/internal/testsource"
)

func TestInternalError(t *testing.T) {
	t.Parallel()

	_, f := testsource.ParseFile(t, "package test\n")

	var got []analysis.Diagnostic

	p := &analysis.Pass{Report: func(d analysis.Diagnostic) { got = append(got, d) }}

	InternalError(p, f.Name, "%v in %s", "scope underflow", "test.go")

	require.Len(t, got, 1)
	assert.Equal(t, "Internal Error: scope underflow in test.go", got[0].Message)
	assert.Equal(t, f.Name.Pos(), got[0].Pos)
	assert.Equal(t, f.Name.End(), got[0].End)
	assert.Equal(t, "internal", got[0].Category)
}

func TestNodeIndex(t *testing.T) {
	t.Parallel()

	_, f, _, _ := testsource.Parse(t, `_ = 1`)
	in := inspector.New([]*ast.File{f})

	assert.False(t, NodeIndexOf(in.Root()).Valid())

	var stmt inspector.Cursor
	for c := range in.Root().Preorder((*ast.AssignStmt)(nil)) {
		stmt = c
	}

	n := NodeIndexOf(stmt)
	require.True(t, n.Valid())
	assert.Equal(t, stmt.Node(), n.Cursor(in).Node())
}
