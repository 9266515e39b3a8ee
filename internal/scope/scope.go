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

package scope

import (
	"go/ast"
	"go/token"
	"go/types"
)

// Index maps type checker scopes to the syntax nodes that introduce them.
//
// It is used to:
//   - Find the node declaring a local variable
//   - Check whether a variable is still visible at an insertion point
type Index map[*types.Scope]ast.Node

// NewIndex creates a scope index from the type checker's scope map.
func NewIndex(info *types.Info) Index {
	s := make(Index, len(info.Scopes))
	for node, scope := range info.Scopes {
		s[scope] = node
	}

	return s
}

// DeclNode returns the node whose scope declares v, or nil for package-level and universe objects.
func (s Index) DeclNode(v *types.Var) ast.Node {
	if !Local(v) {
		return nil
	}

	return s[v.Parent()]
}

// Local reports whether v is declared inside a function.
func Local(v *types.Var) bool {
	parent := v.Parent()
	if parent == nil || parent == types.Universe {
		return false
	}

	return v.Pkg() == nil || parent != v.Pkg().Scope()
}

// Innermost finds the innermost scope containing a position, with special handling
// for case/select expressions.
//
// For most positions, this returns the innermost scope from the type checker. However,
// when the position is in a case or select expression (between "case" and ":" tokens),
// it adjusts the scope to the parent.
func (s Index) Innermost(outer *types.Scope, pos token.Pos) *types.Scope {
	inner := outer.Innermost(pos)
	switch inner {
	case outer, nil:
		return inner
	}

	switch n := s[inner].(type) {
	case *ast.CaseClause:
		if pos < n.Colon {
			// case x == 0: variables of the clause are not yet declared
			inner = inner.Parent()
		}

	case *ast.CommClause:
		if pos < n.Colon {
			// case v := <-ch: v is declared after the colon
			inner = inner.Parent()
		}
	}

	return inner
}

// Visible reports whether v is the object an identifier named like v resolves to at pos.
func (s Index) Visible(outer *types.Scope, v *types.Var, pos token.Pos) bool {
	inner := s.Innermost(outer, pos)
	if inner == nil {
		return false
	}

	_, obj := inner.LookupParent(v.Name(), pos)

	return obj == v
}

// Resolves reports whether name resolves to anything at pos.
func (s Index) Resolves(outer *types.Scope, name string, pos token.Pos) bool {
	inner := s.Innermost(outer, pos)
	if inner == nil {
		inner = outer
	}

	_, obj := inner.LookupParent(name, pos)

	return obj != nil
}
