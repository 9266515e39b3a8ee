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

package tracking

import (
	"go/ast"
	"go/types"
	"iter"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/observetrack/internal/astutil"
)

// Scope is a node of the tracking scope tree, mirroring a control flow relevant source region.
type Scope struct {
	Roles Roles
	Shape Shape

	// Cursor points to the wrapped node, the first statement for content ranges.
	Cursor inspector.Cursor

	// EndCursor points to the last statement of a content range.
	EndCursor inspector.Cursor

	// Index is the visit index of the wrapped node.
	Index astutil.NodeIndex

	Parent   *Scope
	Children []*Scope

	// Variables records local variables declared in this scope and whether they are observed.
	Variables map[*types.Var]bool

	Capturer *Capturer

	// flow collects the interruptions reaching this scope.
	flow Interruption

	// fn is the closest enclosing function that is not instantly invoked, or the root.
	fn *Scope
}

func newScope(roles Roles, shape Shape, c inspector.Cursor, parent *Scope, effect bool) *Scope {
	s := &Scope{
		Roles:     roles,
		Shape:     shape,
		Cursor:    c,
		Index:     astutil.NodeIndexOf(c),
		Parent:    parent,
		Variables: make(map[*types.Var]bool),
	}

	switch {
	case parent == nil, s.nonInstantFunction():
		s.fn = s

	default:
		s.fn = parent.fn
	}

	if parent != nil {
		parent.Children = append(parent.Children, s)
	}

	s.Capturer = newCapturer(s, effect)

	return s
}

// Node returns the wrapped node, the first statement for content ranges.
func (s *Scope) Node() ast.Node {
	return s.Cursor.Node()
}

// End returns the last statement of a content range, nil otherwise.
func (s *Scope) End() ast.Node {
	if s.EndCursor == (inspector.Cursor{}) {
		return nil
	}

	return s.EndCursor.Node()
}

// Range reports whether this is a content range scope.
func (s *Scope) Range() bool {
	return s.Roles.Has(ContentRange)
}

// Flow returns the interruptions reaching this scope.
func (s *Scope) Flow() Interruption {
	return s.flow
}

// Observed implements [observe.Variables], looking up v through the enclosing scopes.
func (s *Scope) Observed(v *types.Var) (observed, ok bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if observed, ok := sc.Variables[v]; ok {
			return observed, true
		}
	}

	return false, false
}

func (s *Scope) nonInstantFunction() bool {
	return s.Roles.Has(FunctionLike) && !s.Roles.Has(InstantlyInvokedFunction)
}

// ancestorOf reports whether s is o or encloses o.
func (s *Scope) ancestorOf(o *Scope) bool {
	for ; o != nil; o = o.Parent {
		if o == s {
			return true
		}
	}

	return false
}

// ChildFirst iterates over the subtree, descendants before their parents.
func (s *Scope) ChildFirst() iter.Seq[*Scope] {
	return func(yield func(*Scope) bool) {
		s.walkChildFirst(nil, yield)
	}
}

// SelfFirst iterates over the subtree, parents before their descendants.
func (s *Scope) SelfFirst() iter.Seq[*Scope] {
	return func(yield func(*Scope) bool) {
		s.walkSelfFirst(yield)
	}
}

// walkChildFirst visits the subtree child-first; a false filter result prunes the scope and its descendants.
func (s *Scope) walkChildFirst(filter func(*Scope) bool, yield func(*Scope) bool) bool {
	if filter != nil && !filter(s) {
		return true
	}

	for _, child := range s.Children {
		if !child.walkChildFirst(filter, yield) {
			return false
		}
	}

	return yield(s)
}

func (s *Scope) walkSelfFirst(yield func(*Scope) bool) bool {
	if !yield(s) {
		return false
	}

	for _, child := range s.Children {
		if !child.walkSelfFirst(yield) {
			return false
		}
	}

	return true
}

// Placements iterates over all groups holding items in emission order, parents first.
func (s *Scope) Placements() iter.Seq2[*Scope, *Group] {
	return func(yield func(*Scope, *Group) bool) {
		for sc := range s.SelfFirst() {
			for _, g := range sc.Capturer.captured {
				if len(g.Items) == 0 {
					continue
				}

				if !yield(sc, g) {
					return
				}
			}
		}
	}
}
