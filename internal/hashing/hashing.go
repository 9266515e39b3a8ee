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

// Package hashing computes structural, declaration-resolved keys of expressions.
//
// Two expressions hash equal when they are spelled the same and every identifier resolves to the
// same object, so a shadowed variable of the same name produces a different key.
package hashing

import (
	"go/ast"
	"go/token"
	"go/types"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"fillmore-labs.com/observetrack/internal/scope"
)

// Result is the hash of an expression.
type Result struct {
	// Name is the structural key, e.g. "s@42.Items[]".
	Name string

	// Sum is a digest of Name for fast comparison.
	Sum uint64

	// Vars are the local variables the expression depends on.
	Vars []*types.Var

	// Pure is false when evaluating the expression twice may give different results or side effects.
	Pure bool

	// Safe is false when evaluating the expression may panic beyond what its root variable does.
	Safe bool
}

// Equal compares two results by key.
func (r Result) Equal(o Result) bool {
	return r.Sum == o.Sum && r.Name == o.Name
}

// Hasher hashes expressions of one file, caching results per node.
type Hasher struct {
	info  *types.Info
	cache map[ast.Expr]Result
}

// New creates a [Hasher].
func New(info *types.Info) *Hasher {
	return &Hasher{info: info, cache: make(map[ast.Expr]Result)}
}

// Reset drops all cached results.
func (h *Hasher) Reset() {
	clear(h.cache)
}

// Hash returns the hash of an expression.
func (h *Hasher) Hash(e ast.Expr) Result {
	if r, ok := h.cache[e]; ok {
		return r
	}

	var b builder
	b.expr(h.info, e)
	r := b.result()

	h.cache[e] = r

	return r
}

// Access returns the hash of accessing key on base, "" denoting any element.
func (h *Hasher) Access(base ast.Expr, key string) Result {
	r := h.Hash(base)

	if key == "" {
		r.Name += "[]"
	} else {
		r.Name += "." + key
	}

	r.Sum = xxhash.Sum64String(r.Name)

	return r
}

type builder struct {
	name   strings.Builder
	vars   []*types.Var
	impure bool
	unsafe bool
}

func (b *builder) result() Result {
	name := b.name.String()

	return Result{
		Name: name,
		Sum:  xxhash.Sum64String(name),
		Vars: b.vars,
		Pure: !b.impure,
		Safe: !b.unsafe,
	}
}

func (b *builder) addVar(v *types.Var) {
	if !slices.Contains(b.vars, v) {
		b.vars = append(b.vars, v)
	}
}

func (b *builder) literal(kind string, pos token.Pos) {
	b.impure = true
	b.unsafe = true
	b.name.WriteString(kind)
	b.name.WriteByte('@')
	b.name.WriteString(strconv.Itoa(int(pos)))
}

func (b *builder) object(obj types.Object, name string) {
	switch obj := obj.(type) {
	case nil:
		b.name.WriteString(name)

	case *types.Var:
		if scope.Local(obj) {
			b.addVar(obj)
			b.name.WriteString(obj.Name())
			b.name.WriteByte('@')
			b.name.WriteString(strconv.Itoa(int(obj.Pos())))

			return
		}

		b.qualified(obj)

	case *types.PkgName:
		b.name.WriteString(obj.Imported().Path())

	default:
		b.qualified(obj)
	}
}

func (b *builder) qualified(obj types.Object) {
	if pkg := obj.Pkg(); pkg != nil {
		b.name.WriteString(pkg.Path())
		b.name.WriteByte('.')
	}

	b.name.WriteString(obj.Name())
}

func (b *builder) list(info *types.Info, es []ast.Expr) {
	for i, e := range es {
		if i > 0 {
			b.name.WriteByte(',')
		}

		b.expr(info, e)
	}
}

func (b *builder) expr(info *types.Info, e ast.Expr) {
	if tv, ok := info.Types[e]; ok {
		switch {
		case tv.IsType():
			b.name.WriteString(types.TypeString(tv.Type, nil))

			return

		case tv.Value != nil:
			b.name.WriteString(tv.Value.ExactString())

			return
		}
	}

	switch e := e.(type) {
	case *ast.Ident:
		b.object(info.ObjectOf(e), e.Name)

	case *ast.BasicLit:
		b.name.WriteString(e.Value)

	case *ast.ParenExpr:
		b.expr(info, e.X)

	case *ast.SelectorExpr:
		if _, ok := info.Uses[identOf(e.X)].(*types.PkgName); ok {
			b.object(info.Uses[e.Sel], e.Sel.Name)

			return
		}

		b.expr(info, e.X)
		b.name.WriteByte('.')
		b.name.WriteString(e.Sel.Name)

		if sel := info.Selections[e]; sel == nil || sel.Indirect() || isPointer(info.TypeOf(e.X)) {
			b.unsafe = true
		}

	case *ast.IndexExpr:
		b.expr(info, e.X)
		b.name.WriteByte('[')
		b.expr(info, e.Index)
		b.name.WriteByte(']')

		if !isMap(info.TypeOf(e.X)) {
			b.unsafe = true
		}

	case *ast.IndexListExpr:
		b.expr(info, e.X)
		b.name.WriteByte('[')
		b.list(info, e.Indices)
		b.name.WriteByte(']')

	case *ast.SliceExpr:
		b.unsafe = true
		b.expr(info, e.X)
		b.name.WriteByte('[')
		b.list(info, sliceBounds(e))
		b.name.WriteByte(']')

	case *ast.StarExpr:
		b.unsafe = true
		b.name.WriteString("*(")
		b.expr(info, e.X)
		b.name.WriteByte(')')

	case *ast.UnaryExpr:
		if e.Op == token.ARROW {
			b.impure = true
		}

		b.name.WriteString(e.Op.String())
		b.expr(info, e.X)

	case *ast.BinaryExpr:
		b.impure = true
		b.unsafe = true
		b.name.WriteByte('(')
		b.expr(info, e.X)
		b.name.WriteString(e.Op.String())
		b.expr(info, e.Y)
		b.name.WriteByte(')')

	case *ast.CallExpr:
		b.call(info, e)

	case *ast.TypeAssertExpr:
		b.unsafe = true
		b.expr(info, e.X)
		b.name.WriteString(".(")
		if e.Type != nil {
			b.expr(info, e.Type)
		}
		b.name.WriteByte(')')

	case *ast.CompositeLit:
		b.literal("composite", e.Pos())

	case *ast.FuncLit:
		b.literal("func", e.Pos())

	default:
		b.literal("expr", e.Pos())
	}
}

func (b *builder) call(info *types.Info, e *ast.CallExpr) {
	pure := false

	if tv, ok := info.Types[e.Fun]; ok && tv.IsType() {
		pure = true
	} else if id, ok := ast.Unparen(e.Fun).(*ast.Ident); ok {
		if bi, ok := info.Uses[id].(*types.Builtin); ok && (bi.Name() == "len" || bi.Name() == "cap") {
			pure = true
		}
	}

	if !pure {
		b.impure = true
	}

	b.unsafe = true
	b.expr(info, e.Fun)
	b.name.WriteByte('(')
	b.list(info, e.Args)
	b.name.WriteByte(')')
}

func sliceBounds(e *ast.SliceExpr) []ast.Expr {
	bounds := make([]ast.Expr, 0, 3)
	for _, x := range [...]ast.Expr{e.Low, e.High, e.Max} {
		if x == nil {
			x = &ast.Ident{Name: "_", NamePos: e.Lbrack}
		}

		bounds = append(bounds, x)
	}

	return bounds
}

func identOf(e ast.Expr) *ast.Ident {
	id, _ := ast.Unparen(e).(*ast.Ident)

	return id
}

func isPointer(t types.Type) bool {
	if t == nil {
		return true
	}

	_, ok := t.Underlying().(*types.Pointer)

	return ok
}

func isMap(t types.Type) bool {
	if t == nil {
		return false
	}

	_, ok := t.Underlying().(*types.Map)

	return ok
}
