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

package hashing_test

import (
	"go/ast"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/observetrack/internal/hashing"
	"fillmore-labs.com/observetrack/internal/testsource"
)

// exprsOf returns the right-hand sides of all `_ = ...` assignments in order.
func exprsOf(body *ast.BlockStmt) []ast.Expr {
	var exprs []ast.Expr

	ast.Inspect(body, func(n ast.Node) bool {
		if as, ok := n.(*ast.AssignStmt); ok && len(as.Lhs) == 1 {
			if id, ok := as.Lhs[0].(*ast.Ident); ok && id.Name == "_" {
				exprs = append(exprs, as.Rhs[0])
			}
		}

		return true
	})

	return exprs
}

func TestHash(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name      string
		src       string
		equal     bool
		pure      bool
		safe      bool
		localVars int
	}{
		{
			name:      "same_variable",
			src:       `type S struct{ A int }; var s S; _ = s.A; _ = s.A`,
			equal:     true,
			pure:      true,
			safe:      true,
			localVars: 1,
		},
		{
			name:      "shadowed_variable",
			src:       `type S struct{ A int }; var s S; _ = s.A; { var s S; _ = s.A }`,
			equal:     false,
			pure:      true,
			safe:      true,
			localVars: 1,
		},
		{
			name:      "pointer_indirection",
			src:       `type S struct{ A int }; var s *S; _ = s.A; _ = s.A`,
			equal:     true,
			pure:      true,
			safe:      false,
			localVars: 1,
		},
		{
			name:      "map_index",
			src:       `var m map[string]int; k := "a"; _ = m[k]; _ = m[k]`,
			equal:     true,
			pure:      true,
			safe:      true,
			localVars: 2,
		},
		{
			name:      "slice_index",
			src:       `var s []int; _ = s[0]; _ = s[0]`,
			equal:     true,
			pure:      true,
			safe:      false,
			localVars: 1,
		},
		{
			name:      "call",
			src:       `f := func() []int { return nil }; _ = f()[0]; _ = f()[0]`,
			equal:     true,
			pure:      false,
			safe:      false,
			localVars: 1,
		},
		{
			name:      "len_is_pure",
			src:       `var s []int; _ = len(s); _ = len(s)`,
			equal:     true,
			pure:      true,
			safe:      false,
			localVars: 1,
		},
		{
			name:      "constant_index",
			src:       `const n = 2; var s []int; _ = s[n]; _ = s[1+1]`,
			equal:     true,
			pure:      true,
			safe:      false,
			localVars: 1,
		},
		{
			name:      "binary",
			src:       `var a, b int; _ = a + b; _ = a - b`,
			equal:     false,
			pure:      false,
			safe:      false,
			localVars: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fset, f, fn, _ := testsource.Parse(t, tt.src)
			_, info := testsource.Check(t, fset, f)

			exprs := exprsOf(fn.Body)
			require.Len(t, exprs, 2)

			h := New(info)
			first, second := h.Hash(exprs[0]), h.Hash(exprs[1])

			assert.Equal(t, tt.equal, first.Equal(second), "%s vs %s", first.Name, second.Name)
			assert.Equal(t, tt.pure, first.Pure, "pure %s", first.Name)
			assert.Equal(t, tt.safe, first.Safe, "safe %s", first.Name)
			assert.Len(t, first.Vars, tt.localVars)
		})
	}
}

func TestAccess(t *testing.T) {
	t.Parallel()

	fset, f, fn, _ := testsource.Parse(t, `type S struct{ A []int }; var s S; _ = s; _ = s`)
	_, info := testsource.Check(t, fset, f)

	exprs := exprsOf(fn.Body)
	require.Len(t, exprs, 2)

	h := New(info)

	field, element := h.Access(exprs[0], "A"), h.Access(exprs[0], "")
	assert.False(t, field.Equal(element))
	assert.True(t, field.Equal(h.Access(exprs[1], "A")))
	assert.Equal(t, h.Hash(exprs[0]).Name+".A", field.Name)
	assert.Equal(t, h.Hash(exprs[0]).Name+"[]", element.Name)
}
