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

// Package usage collects how unexported fields of reactive types are accessed across a package.
//
// A private field that is only ever read, or only ever written, cannot be observed from outside
// the package, so its tracking calls can be dropped.
package usage

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"runtime/trace"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/observetrack/internal/observe"
)

// Collect builds the [Census] of all files of a package.
func Collect(ctx context.Context, in *inspector.Inspector, r *observe.Resolver) Census {
	defer trace.StartRegion(ctx, "Usage").End()

	c := collector{
		Resolver: r,
		fields:   make(map[*types.Var]Mask),
		owners:   make(map[*types.Named]bool),
	}

	for sc := range in.Root().Preorder((*ast.SelectorExpr)(nil)) {
		c.handleSelector(sc)
	}

	return Census{fields: c.fields}
}

type collector struct {
	*observe.Resolver

	fields map[*types.Var]Mask

	// owners caches the reactivity of struct types declaring private fields.
	owners map[*types.Named]bool
}

func (c *collector) handleSelector(sc inspector.Cursor) {
	sel := c.Info().Selections[sc.Node().(*ast.SelectorExpr)]
	if sel == nil || sel.Kind() != types.FieldVal {
		return
	}

	field, ok := sel.Obj().(*types.Var)
	if !ok || field.Exported() || field.Pkg() != c.Pkg() || !c.privateOwner(sel) {
		return
	}

	if tag := observe.SelectionTag(sel); tag == observe.TagDerived {
		return
	}

	c.fields[field] |= accessOf(sc)
}

// privateOwner reports whether the struct directly declaring the selected field is a reactive type.
func (c *collector) privateOwner(sel *types.Selection) bool {
	t := sel.Recv()
	path := sel.Index()

	for _, idx := range path[:len(path)-1] {
		st := structOf(t)
		if st == nil || idx >= st.NumFields() {
			return false
		}

		t = st.Field(idx).Type()
	}

	named := namedOf(t)
	if named == nil || named.Obj().Pkg() != c.Pkg() {
		return false
	}

	named = named.Origin()
	if reactive, ok := c.owners[named]; ok {
		return reactive
	}

	reactive := c.IsReactive(named)
	c.owners[named] = reactive

	return reactive
}

// accessOf classifies a field selection by its syntactic context.
func accessOf(sc inspector.Cursor) Mask {
	parent := sc.Parent()

	switch kind, _ := sc.ParentEdge(); kind {
	case edge.AssignStmt_Lhs:
		if parent.Node().(*ast.AssignStmt).Tok == token.ASSIGN {
			return Set
		}

		return GetSet

	case edge.IncDecStmt_X:
		return GetSet

	case edge.RangeStmt_Key, edge.RangeStmt_Value:
		return Set

	case edge.UnaryExpr_X:
		if parent.Node().(*ast.UnaryExpr).Op == token.AND {
			return GetSet // the pointer may be used either way
		}

	case edge.ParenExpr_X:
		return accessOf(parent)
	}

	return Get
}

func structOf(t types.Type) *types.Struct {
	if ptr, ok := types.Unalias(t).Underlying().(*types.Pointer); ok {
		t = ptr.Elem()
	}

	st, _ := t.Underlying().(*types.Struct)

	return st
}

func namedOf(t types.Type) *types.Named {
	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
	}

	named, _ := t.(*types.Named)

	return named
}
