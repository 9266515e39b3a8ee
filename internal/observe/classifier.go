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

package observe

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"
)

// Variables reports the recorded observation state of local variables.
type Variables interface {
	// Observed returns whether v is observed, and false for ok when v was never recorded.
	Observed(v *types.Var) (observed, ok bool)
}

// Access is a field or element access of a collection or struct.
type Access struct {
	Node  ast.Expr   // the accessing expression
	Base  ast.Expr   // the object accessed
	Key   string     // field name, "" for collection elements
	Field *types.Var // the selected field, nil for elements
	Tag   Tag        // struct tag of the field
}

// Element reports whether this is a collection element access.
func (a Access) Element() bool { return a.Field == nil }

// Classifier decides whether expressions are observed. It is pure: results only depend on its
// arguments and the immutable type information.
type Classifier struct {
	r             *Resolver
	excludePrefix string
}

// NewClassifier creates a [Classifier]. Fields starting with excludePrefix are never tracked.
func NewClassifier(r *Resolver, excludePrefix string) *Classifier {
	return &Classifier{r: r, excludePrefix: excludePrefix}
}

// Resolver returns the underlying resolver.
func (c *Classifier) Resolver() *Resolver { return c.r }

// Access decomposes a field selection, index or slice expression.
func (c *Classifier) Access(e ast.Expr) (Access, bool) {
	switch e := e.(type) {
	case *ast.SelectorExpr:
		sel := c.r.info.Selections[e]
		if sel == nil || sel.Kind() != types.FieldVal {
			return Access{}, false // qualified identifier or method
		}

		field, ok := sel.Obj().(*types.Var)
		if !ok {
			return Access{}, false
		}

		return Access{Node: e, Base: e.X, Key: e.Sel.Name, Field: field, Tag: SelectionTag(sel)}, true

	case *ast.IndexExpr:
		if tv, ok := c.r.info.Types[e.X]; !ok || tv.IsType() {
			return Access{}, false
		}

		if ElemType(c.r.TypeOf(e.X)) == nil {
			return Access{}, false // generic instantiation or string
		}

		return Access{Node: e, Base: e.X}, true

	case *ast.SliceExpr:
		if ElemType(c.r.TypeOf(e.X)) == nil {
			return Access{}, false
		}

		return Access{Node: e, Base: e.X}, true

	default:
		return Access{}, false
	}
}

// Element returns an element access of a whole collection, as used by range loops and collection functions.
func (c *Classifier) Element(e ast.Expr) (Access, bool) {
	if ElemType(c.r.TypeOf(e)) == nil {
		return Access{}, false
	}

	return Access{Node: e, Base: e}, true
}

// Tracked reports whether an access must emit tracking calls.
func (c *Classifier) Tracked(vars Variables, a Access) bool {
	if a.Element() {
		return c.IsObserved(vars, a.Base, true)
	}

	if a.Tag == TagObserved {
		return true
	}

	if c.Excluded(a.Field, a.Tag) {
		return false
	}

	return c.IsObserved(vars, a.Base, false)
}

// Excluded reports whether a field is never tracked.
func (c *Classifier) Excluded(field *types.Var, tag Tag) bool {
	switch tag {
	case TagDerived:
		return false

	case TagIgnore, TagReadonly:
		return true
	}

	if c.excludePrefix != "" && strings.HasPrefix(field.Name(), c.excludePrefix) {
		return true
	}

	if pkg := field.Pkg(); pkg != nil && pkg != c.r.pkg && c.r.isStdlib(pkg.Path()) {
		return true
	}

	return false
}

// IsObserved reports whether the value of e is reactive. In parental mode, collections
// whose elements are reactive count as observed, too.
//
// Missing type information degrades to "not observed".
func (c *Classifier) IsObserved(vars Variables, e ast.Expr, parental bool) bool {
	t := c.r.TypeOf(e)
	if t == nil || IsBasic(t) {
		return false
	}

	if _, ok := t.Underlying().(*types.Signature); ok {
		return false
	}

	byType := c.r.IsReactive(t) || parental && c.r.IsReactive(ElemType(t))

	switch e := e.(type) {
	case *ast.ParenExpr:
		return c.IsObserved(vars, e.X, parental)

	case *ast.Ident:
		return c.identObserved(vars, e, byType)

	case *ast.SelectorExpr:
		a, ok := c.Access(e)
		if !ok {
			if _, isPkg := c.r.info.Uses[identOf(e.X)].(*types.PkgName); isPkg {
				return c.identObserved(vars, e.Sel, byType)
			}

			return false // method value
		}

		if a.Tag == TagObserved || byType {
			return true
		}

		return !c.Excluded(a.Field, a.Tag) && c.IsObserved(vars, e.X, false)

	case *ast.IndexExpr:
		if tv, ok := c.r.info.Types[e.X]; ok && tv.IsType() {
			return byType
		}

		if byType {
			return true
		}

		return ElemType(c.r.TypeOf(e.X)) != nil && c.IsObserved(vars, e.X, true)

	case *ast.SliceExpr:
		return byType || c.IsObserved(vars, e.X, parental)

	case *ast.StarExpr:
		return byType || c.IsObserved(vars, e.X, parental)

	case *ast.UnaryExpr:
		switch e.Op {
		case token.AND:
			return byType || c.IsObserved(vars, e.X, parental)

		case token.ARROW:
			return byType

		default:
			return false
		}

	case *ast.TypeAssertExpr:
		return byType || c.IsObserved(vars, e.X, parental)

	case *ast.CallExpr:
		return c.callObserved(vars, e, parental, byType)

	case *ast.CompositeLit:
		return c.r.IsReactive(t)

	default:
		return byType
	}
}

func (c *Classifier) identObserved(vars Variables, id *ast.Ident, byType bool) bool {
	v, ok := c.r.info.ObjectOf(id).(*types.Var)
	if !ok {
		return false
	}

	if vars != nil {
		if observed, known := vars.Observed(v); known {
			return observed || byType
		}
	}

	return byType
}

func (c *Classifier) callObserved(vars Variables, call *ast.CallExpr, parental, byType bool) bool {
	if byType {
		return true
	}

	if c.r.IsConversion(call) {
		return len(call.Args) == 1 && c.IsObserved(vars, call.Args[0], parental)
	}

	if c.r.Builtin(call) == "append" {
		return len(call.Args) > 0 && c.IsObserved(vars, call.Args[0], parental)
	}

	return false
}

func identOf(e ast.Expr) *ast.Ident {
	id, _ := ast.Unparen(e).(*ast.Ident)

	return id
}
