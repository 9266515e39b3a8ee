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

// Resolver answers declaration and type questions about the package under analysis.
type Resolver struct {
	info       *types.Info
	pkg        *types.Package
	marker     string
	facts      Facts
	directives map[*types.TypeName]struct{}
}

// NewResolver scans the package for reactive type declarations and exports facts for them.
func NewResolver(info *types.Info, pkg *types.Package, files []*ast.File, marker string, facts Facts) *Resolver {
	r := &Resolver{
		info:       info,
		pkg:        pkg,
		marker:     marker,
		facts:      facts,
		directives: make(map[*types.TypeName]struct{}),
	}

	for _, f := range files {
		for _, decl := range f.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				tspec := spec.(*ast.TypeSpec)
				if !HasDirective(DirectiveObserved, gen.Doc, tspec.Doc, tspec.Comment) {
					continue
				}

				obj, ok := info.Defs[tspec.Name].(*types.TypeName)
				if !ok {
					continue
				}

				r.directives[obj] = struct{}{}
				facts.export(obj)
			}
		}
	}

	return r
}

// Info returns the type information of the package.
func (r *Resolver) Info() *types.Info { return r.info }

// Pkg returns the package under analysis.
func (r *Resolver) Pkg() *types.Package { return r.pkg }

// TypeOf returns the type of an expression, or nil when unknown.
func (r *Resolver) TypeOf(e ast.Expr) types.Type {
	return r.info.TypeOf(e)
}

// Declaration resolves an identifier or selector to the object it denotes.
func (r *Resolver) Declaration(e ast.Expr) types.Object {
	switch e := ast.Unparen(e).(type) {
	case *ast.Ident:
		return r.info.ObjectOf(e)

	case *ast.SelectorExpr:
		if sel := r.info.Selections[e]; sel != nil {
			return sel.Obj()
		}

		return r.info.Uses[e.Sel]

	default:
		return nil
	}
}

// ResultType returns the type a call evaluates to.
func (r *Resolver) ResultType(call *ast.CallExpr) types.Type {
	return r.info.TypeOf(call)
}

// IsReactive reports whether values of type t, or of the type t points to, are reactive.
func (r *Resolver) IsReactive(t types.Type) bool {
	if t == nil {
		return false
	}

	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
	}

	switch t := t.(type) {
	case *types.Named:
		obj := t.Origin().Obj()
		if _, ok := r.directives[obj]; ok {
			return true
		}

		if obj.Pkg() != r.pkg && r.facts.imported(obj) {
			return true
		}

		return r.hasMarker(t, obj.Pkg())

	case *types.TypeParam:
		return r.hasMarker(t, r.pkg)

	default:
		return false
	}
}

// hasMarker reports whether *t has a method named like the marker without parameters and results.
func (r *Resolver) hasMarker(t types.Type, pkg *types.Package) bool {
	if r.marker == "" {
		return false
	}

	obj, _, _ := types.LookupFieldOrMethod(t, true, pkg, r.marker)

	fun, ok := obj.(*types.Func)
	if !ok {
		return false
	}

	sig := fun.Signature()

	return sig.Params().Len() == 0 && sig.Results().Len() == 0
}

// ElemType returns the element type of a slice, array, pointer to array or map type, or nil.
func ElemType(t types.Type) types.Type {
	if t == nil {
		return nil
	}

	u := t.Underlying()
	if ptr, ok := u.(*types.Pointer); ok {
		if arr, ok := ptr.Elem().Underlying().(*types.Array); ok {
			return arr.Elem()
		}

		return nil
	}

	switch u := u.(type) {
	case *types.Slice:
		return u.Elem()

	case *types.Array:
		return u.Elem()

	case *types.Map:
		return u.Elem()

	default:
		return nil
	}
}

// IsBasic reports whether t is a boolean, numeric or string type.
func IsBasic(t types.Type) bool {
	_, ok := t.Underlying().(*types.Basic)

	return ok
}

// isStdlib reports whether a package path looks like a standard library path
// foreign to the package under analysis.
func (r *Resolver) isStdlib(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	if strings.Contains(first, ".") {
		return false
	}

	own, _, _ := strings.Cut(r.pkg.Path(), "/")

	return first != own
}
