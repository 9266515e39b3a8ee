// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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
package observe_test

import (
	"go/ast"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis"

	. "fillmore-labs.com/observetrack/internal/observe"
	"fillmore-labs.com/observetrack/internal/testsource"
)

const source = `package test

type Store struct {
	A     int
	B     int "observe:\"-\""
	C     int "observe:\"readonly\""
	_d    int
	Items []*Store
	Plain Plain
}

func (*Store) Observed() {}

type Plain struct {
	X int
	Y int "observe:\"observed\""
}

//observetrack:observed
type Marked struct{ M int }

func f(s *Store, p *Plain, m *Marked, list []*Store, n []int) {
	_ = s.A
	_ = s.B
	_ = s.C
	_ = s._d
	_ = s.Items[0]
	_ = p.X
	_ = p.Y
	_ = m.M
	_ = list[0]
	_ = n[0]
	_ = s.Plain.X
	_ = list[1:]
}
`

// accesses returns the right-hand sides of all blank assignments.
func accesses(f *ast.File) []ast.Expr {
	var exprs []ast.Expr

	ast.Inspect(f, func(n ast.Node) bool {
		if as, ok := n.(*ast.AssignStmt); ok {
			if id, ok := as.Lhs[0].(*ast.Ident); ok && id.Name == "_" {
				exprs = append(exprs, as.Rhs[0])
			}
		}

		return true
	})

	return exprs
}

func newResolver(t *testing.T, marker string, facts Facts) (*Resolver, *ast.File) {
	t.Helper()

	fset, f := testsource.ParseFile(t, source)
	pkg, info := testsource.Check(t, fset, f)

	return NewResolver(info, pkg, []*ast.File{f}, marker, facts), f
}

func TestTracked(t *testing.T) {
	t.Parallel()

	r, f := newResolver(t, "Observed", Facts{})
	c := NewClassifier(r, "_")

	want := map[string]bool{
		"s.A":        true,
		"s.B":        false,
		"s.C":        false,
		"s._d":       false,
		"s.Items[0]": true,
		"p.X":        false,
		"p.Y":        true,
		"m.M":        true,
		"list[0]":    true,
		"n[0]":       false,
		"s.Plain.X":  true,
		"list[1:]":   true,
	}

	exprs := accesses(f)
	require.Len(t, exprs, len(want))

	for _, e := range exprs {
		name := types.ExprString(e)

		a, ok := c.Access(e)
		require.True(t, ok, "%s is an access", name)

		assert.Equal(t, want[name], c.Tracked(nil, a), "tracking of %s", name)
	}
}

func TestAccess(t *testing.T) {
	t.Parallel()

	r, f := newResolver(t, "Observed", Facts{})
	c := NewClassifier(r, "")

	exprs := accesses(f)

	a, ok := c.Access(exprs[0])
	require.True(t, ok)
	assert.Equal(t, "A", a.Key)
	assert.False(t, a.Element())
	assert.Equal(t, "s", types.ExprString(a.Base))

	a, ok = c.Access(exprs[4])
	require.True(t, ok)
	assert.Empty(t, a.Key)
	assert.True(t, a.Element())
	assert.Equal(t, "s.Items", types.ExprString(a.Base))

	a, ok = c.Access(exprs[1])
	require.True(t, ok)
	assert.Equal(t, TagIgnore, a.Tag)

	_, ok = c.Access(exprs[0].(*ast.SelectorExpr).X)
	assert.False(t, ok, "an identifier is no access")
}

func TestIsReactive(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name   string
		marker string
		want   map[string]bool
	}{
		{
			name:   "marker",
			marker: "Observed",
			want:   map[string]bool{"Store": true, "Plain": false, "Marked": true},
		},
		{
			name: "directive_only",
			want: map[string]bool{"Store": false, "Plain": false, "Marked": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var exported []string

			facts := Facts{
				Export: func(obj types.Object, _ analysis.Fact) { exported = append(exported, obj.Name()) },
			}

			r, _ := newResolver(t, tt.marker, facts)

			for name, want := range tt.want {
				obj := r.Pkg().Scope().Lookup(name)
				require.NotNil(t, obj, name)

				assert.Equal(t, want, r.IsReactive(obj.Type()), "%s", name)
				assert.Equal(t, want, r.IsReactive(types.NewPointer(obj.Type())), "*%s", name)
			}

			assert.Equal(t, []string{"Marked"}, exported)
		})
	}
}

func TestParseTag(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		tag  string
		want Tag
	}{
		{``, TagNone},
		{`json:"a"`, TagNone},
		{`observe:"observed"`, TagObserved},
		{`observe:"-"`, TagIgnore},
		{`observe:"readonly,omitempty"`, TagReadonly},
		{`json:"a" observe:"derived"`, TagDerived},
		{`observe:"unknown"`, TagNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTag(tt.tag), "%q", tt.tag)
	}
}

func TestHasDirective(t *testing.T) {
	t.Parallel()

	group := func(lines ...string) *ast.CommentGroup {
		g := &ast.CommentGroup{}
		for _, l := range lines {
			g.List = append(g.List, &ast.Comment{Text: l})
		}

		return g
	}

	assert.True(t, HasDirective(DirectiveObserved, nil, group("// Doc.", "//observetrack:observed")))
	assert.True(t, HasDirective(DirectiveEffect, group("//observetrack:effect some reason")))
	assert.False(t, HasDirective(DirectiveObserved, group("// observetrack:observed")))
	assert.False(t, HasDirective(DirectiveObserved, group("//observetrack:observedness")))
	assert.False(t, HasDirective(DirectiveObserved))
}
