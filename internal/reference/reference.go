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

// Package reference extracts expressions that must be evaluated once into synthesized variables.
//
// A tracking call emitted away from an access has to name the accessed object again. When the
// object is computed by a call, a receive or an operator, re-evaluating it may give a different
// result or repeat side effects, so the expression is assigned to a fresh variable `_refN` in front
// of its statement and every occurrence reads that variable instead.
package reference

import (
	"cmp"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"iter"
	"slices"
	"strconv"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/observetrack/internal/astutil"
	"fillmore-labs.com/observetrack/internal/tracking"
)

const prefix = "_ref"

// Binding is a synthesized variable holding the value of an expression.
type Binding struct {
	Expr ast.Expr
	Name string

	// Slot is where the variable is declared.
	Slot astutil.Slot

	// Replace is set when occurrences of Expr read the variable instead.
	// Otherwise the variable only keeps the value for later tracking calls.
	Replace bool
}

// Extractor allocates bindings for one file.
type Extractor struct {
	used     map[string]struct{}
	next     int
	byExpr   map[ast.Expr]*Binding
	bindings []*Binding
}

// New creates an [Extractor] avoiding all identifiers used in file.
func New(file *ast.File) *Extractor {
	used := make(map[string]struct{})

	ast.Inspect(file, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok {
			used[id.Name] = struct{}{}
		}

		return true
	})

	return &Extractor{used: used, byExpr: make(map[ast.Expr]*Binding)}
}

// Reference binds the expression at c to a new variable declared before its statement.
// Referencing an expression twice returns the same binding.
func (x *Extractor) Reference(c inspector.Cursor, replace bool) (*Binding, error) {
	e, ok := c.Node().(ast.Expr)
	if !ok {
		return nil, fmt.Errorf("%w: %T is no expression", tracking.ErrUnresolvedReference, c.Node())
	}

	if b, ok := x.byExpr[e]; ok {
		b.Replace = b.Replace || replace

		return b, nil
	}

	slot, ok := astutil.SlotBefore(c)
	if !ok {
		return nil, fmt.Errorf("%w: no statement before %s", tracking.ErrUnresolvedReference, types.ExprString(e))
	}

	b := &Binding{Expr: e, Name: x.name(), Slot: slot, Replace: replace}
	x.byExpr[e] = b
	x.bindings = append(x.bindings, b)

	return b, nil
}

// Binding returns the binding of an expression, if any.
func (x *Extractor) Binding(e ast.Expr) (*Binding, bool) {
	b, ok := x.byExpr[e]

	return b, ok
}

// Len returns the number of bindings.
func (x *Extractor) Len() int {
	return len(x.bindings)
}

// Declarations iterates over the bindings grouped by slot in source order.
// Within a slot, bindings are in evaluation order: nested expressions precede their enclosing ones.
func (x *Extractor) Declarations() iter.Seq2[astutil.Slot, []*Binding] {
	return func(yield func(astutil.Slot, []*Binding) bool) {
		bindings := slices.Clone(x.bindings)
		slices.SortStableFunc(bindings, func(a, b *Binding) int {
			return cmp.Or(
				cmp.Compare(a.Slot.Pos, b.Slot.Pos),
				cmp.Compare(a.Expr.End(), b.Expr.End()),
				cmp.Compare(b.Expr.Pos(), a.Expr.Pos()),
			)
		})

		for start := 0; start < len(bindings); {
			end := start + 1
			for end < len(bindings) && bindings[end].Slot.Pos == bindings[start].Slot.Pos {
				end++
			}

			if !yield(bindings[start].Slot, bindings[start:end:end]) {
				return
			}

			start = end
		}
	}
}

func (x *Extractor) name() string {
	for {
		name := prefix + strconv.Itoa(x.next)
		x.next++

		if _, ok := x.used[name]; !ok {
			x.used[name] = struct{}{}

			return name
		}
	}
}

// ShouldReference reports whether evaluating e twice may give a different result or repeat side effects.
func ShouldReference(info *types.Info, e ast.Expr) bool {
	return len(Targets(info, e)) > 0
}

// Targets returns the outermost subexpressions of e that must be evaluated once:
// calls other than conversions and len or cap, operators and receives.
// It looks through parentheses, dereferences, type assertions, selectors, index and slice expressions.
func Targets(info *types.Info, e ast.Expr) []ast.Expr {
	var t targets
	t.collect(info, e)

	return t
}

type targets []ast.Expr

func (t *targets) collect(info *types.Info, e ast.Expr) {
	if e == nil {
		return
	}

	if tv, ok := info.Types[e]; ok && (tv.Value != nil || tv.IsType()) {
		return
	}

	switch e := e.(type) {
	case *ast.ParenExpr:
		t.collect(info, e.X)

	case *ast.StarExpr:
		t.collect(info, e.X)

	case *ast.TypeAssertExpr:
		t.collect(info, e.X)

	case *ast.SelectorExpr:
		t.collect(info, e.X)

	case *ast.IndexExpr:
		t.collect(info, e.X)
		t.collect(info, e.Index)

	case *ast.IndexListExpr:
		t.collect(info, e.X)

	case *ast.SliceExpr:
		t.collect(info, e.X)
		t.collect(info, e.Low)
		t.collect(info, e.High)
		t.collect(info, e.Max)

	case *ast.UnaryExpr:
		if e.Op == token.ARROW {
			*t = append(*t, e)

			return
		}

		t.collect(info, e.X)

	case *ast.BinaryExpr:
		*t = append(*t, e)

	case *ast.CallExpr:
		if !pure(info, e) {
			*t = append(*t, e)

			return
		}

		for _, arg := range e.Args {
			t.collect(info, arg)
		}
	}
}

// pure reports whether a call is a conversion or a call of len or cap.
func pure(info *types.Info, call *ast.CallExpr) bool {
	if tv, ok := info.Types[call.Fun]; ok && tv.IsType() {
		return true
	}

	id, ok := ast.Unparen(call.Fun).(*ast.Ident)
	if !ok {
		return false
	}

	b, ok := info.Uses[id].(*types.Builtin)

	return ok && (b.Name() == "len" || b.Name() == "cap")
}
