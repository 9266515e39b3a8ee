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

package reference_test

import (
	"go/ast"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/ast/inspector"

	. "fillmore-labs.com/observetrack/internal/reference"
	"fillmore-labs.com/observetrack/internal/testsource"
)

// values returns the right-hand sides of all `_ = ...` assignments in order.
func values(body inspector.Cursor) []inspector.Cursor {
	var found []inspector.Cursor

	for c := range body.Preorder((*ast.AssignStmt)(nil)) {
		as := c.Node().(*ast.AssignStmt)
		if id, ok := as.Lhs[0].(*ast.Ident); ok && id.Name == "_" {
			rhs, _ := c.FindNode(as.Rhs[0])
			found = append(found, rhs)
		}
	}

	return found
}

func TestTargets(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name    string
		src     string
		targets []string
	}{
		{
			name: "variable",
			src:  `var s []int; _ = s`,
		},
		{
			name:    "call",
			src:     `f := func() []int { return nil }; _ = f()[0]`,
			targets: []string{"f()"},
		},
		{
			name: "conversion",
			src:  `type T []int; var s []int; _ = T(s)[0]`,
		},
		{
			name: "len",
			src:  `var s []int; _ = s[len(s)-1]`,
			// the index is an operator
			targets: []string{"len(s) - 1"},
		},
		{
			name:    "receive",
			src:     `var ch chan *struct{ A int }; _ = (<-ch).A`,
			targets: []string{"<-ch"},
		},
		{
			name:    "index_and_base",
			src:     `f := func() []int { return nil }; var i int; _ = f()[i+1]`,
			targets: []string{"f()", "i + 1"},
		},
		{
			name: "constant",
			src:  `var s []int; _ = s[1+1]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fset, f, _, body := testsource.Parse(t, tt.src)
			_, info := testsource.Check(t, fset, f)

			exprs := values(body)
			require.Len(t, exprs, 1)

			var got []string
			for _, e := range Targets(info, exprs[0].Node().(ast.Expr)) {
				got = append(got, types.ExprString(e))
			}

			assert.Equal(t, tt.targets, got)
			assert.Equal(t, len(tt.targets) > 0, ShouldReference(info, exprs[0].Node().(ast.Expr)))
		})
	}
}

func TestExtractor(t *testing.T) {
	t.Parallel()

	fset, f, _, body := testsource.Parse(t, `f := func() []int { return nil }
_ref0 := 1
_ = _ref0
_ = f()
if true {
	_ = f()
}`)
	_, _ = testsource.Check(t, fset, f)

	exprs := values(body)
	require.Len(t, exprs, 3)

	x := New(f)

	first, err := x.Reference(exprs[1], true)
	require.NoError(t, err)
	assert.Equal(t, "_ref1", first.Name, "existing names are skipped")
	assert.True(t, first.Replace)

	again, err := x.Reference(exprs[1], false)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.True(t, again.Replace)

	nested, err := x.Reference(exprs[2], false)
	require.NoError(t, err)
	assert.Equal(t, "_ref2", nested.Name)
	assert.False(t, nested.Replace)

	b, ok := x.Binding(exprs[2].Node().(ast.Expr))
	require.True(t, ok)
	assert.Same(t, nested, b)

	var slots int
	for slot, bindings := range x.Declarations() {
		assert.True(t, slot.Valid())
		assert.Len(t, bindings, 1)

		slots++
	}

	assert.Equal(t, 2, slots)
	assert.Equal(t, 2, x.Len())
}

func TestReferenceWithoutSlot(t *testing.T) {
	t.Parallel()

	fset, f, _, body := testsource.Parse(t, `f := func() int { return 0 }
for i := 0; i < f(); i++ {
}`)
	_, _ = testsource.Check(t, fset, f)

	var call inspector.Cursor
	for c := range body.Preorder((*ast.CallExpr)(nil)) {
		call = c
	}

	_, err := New(f).Reference(call, true)
	require.Error(t, err)
}
