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
	"slices"

	"golang.org/x/tools/go/ast/edge"
)

// moveOptions restrict which items may leave a scope.
type moveOptions struct {
	// guarded moves out of code that may not execute; conservative mode keeps items that may panic.
	guarded bool
}

// moveFirstOutward moves the always executed group of from into an ancestor scope.
// Items that cannot move stay.
func (st *CompilationState) moveFirstOutward(from, to *Scope, opts moveOptions) {
	g := from.Capturer.firstGroup()
	if len(g.Items) == 0 || to == nil {
		return
	}

	g.Items = st.moveSomeOutward(g.Items, from, to, opts)
}

// moveSomeOutward appends items captured in from to the group of the ancestor to emitted after from.
// It returns the items that failed to move: unstable or impure ones, and those using variables of a left scope.
func (st *CompilationState) moveSomeOutward(items []*Item, from, to *Scope, opts moveOptions) []*Item {
	group := to.Capturer.groupFollowing(from.Node())
	left := leftScopes(from, to, group)

	var residual []*Item

	for _, it := range items {
		if it.Unstable || !it.Hash.Pure || opts.guarded && st.Conservative && !it.Hash.Safe || st.dependsOn(it, left) {
			residual = append(residual, it)

			continue
		}

		group.Items = append(group.Items, it)
	}

	return residual
}

// moveResidualInto moves the pure items left in a loop condition to a group at the start of the body.
// The body starts in the state the condition was evaluated in, so the items are stable there.
func (st *CompilationState) moveResidualInto(cond, body *Scope) {
	g := cond.Capturer.firstGroup()

	var moved, kept []*Item

	for _, it := range g.Items {
		if !it.Hash.Pure {
			kept = append(kept, it)

			continue
		}

		it.Unstable = false
		moved = append(moved, it)
	}

	if len(moved) == 0 {
		return
	}

	g.Items = kept

	start := &Group{Items: moved}
	start.seal(bodyStart(body), NoInterruption)

	// appended, the first group stays the one the body pass hoists
	body.Capturer.captured = append(body.Capturer.captured, start)
}

// bodyStart anchors before the first statement of a loop body, or inside it when empty.
func bodyStart(body *Scope) Anchor {
	block, ok := body.Node().(*ast.BlockStmt)
	if !ok || len(block.List) == 0 {
		return anchorAt(body.Cursor, Append)
	}

	return anchorAt(body.Cursor.ChildAt(edge.BlockStmt_List, 0), Before)
}

// leftScopes lists the scopes an item leaves moving from from to group of to: from inclusive,
// to exclusive, unless the group is emitted before the node of to.
func leftScopes(from, to *Scope, group *Group) []*Scope {
	var left []*Scope
	for s := from; s != nil && s != to; s = s.Parent {
		left = append(left, s)
	}

	if group.Anchor.Position == Before && group.Anchor.Node == to.Node() {
		left = append(left, to)
	}

	return left
}

// dependsOn reports whether an item uses a variable declared in any of the scopes.
func (st *CompilationState) dependsOn(it *Item, scopes []*Scope) bool {
	for _, v := range it.Hash.Vars {
		if slices.Contains(scopes, st.DeclScope(v)) {
			return true
		}
	}

	return false
}

// intersectFirst returns the items of the first scope's first group that all scopes capture
// with equal hash and kind. Impure and unstable items never take part.
func intersectFirst(scopes []*Scope) []*Item {
	if len(scopes) == 0 {
		return nil
	}

	shared := make(map[string]struct{})
	for i, s := range scopes {
		own := make(map[string]struct{})
		for _, it := range s.Capturer.firstGroup().Items {
			if !it.Hash.Pure || it.Unstable {
				continue
			}

			own[it.key()] = struct{}{}
		}

		if i == 0 {
			shared = own
		} else {
			for k := range shared {
				if _, ok := own[k]; !ok {
					delete(shared, k)
				}
			}
		}

		if len(shared) == 0 {
			return nil
		}
	}

	var items []*Item
	for _, it := range scopes[0].Capturer.firstGroup().Items {
		if _, ok := shared[it.key()]; ok && it.Hash.Pure && !it.Unstable {
			items = append(items, it)
			delete(shared, it.key())
		}
	}

	return items
}

// removeKeys drops items with the given keys from the first groups of the scopes.
func removeKeys(scopes []*Scope, keys map[string]struct{}) {
	for _, s := range scopes {
		g := s.Capturer.firstGroup()
		g.Items = slices.DeleteFunc(g.Items, func(it *Item) bool {
			_, ok := keys[it.key()]

			return ok && it.Hash.Pure && !it.Unstable
		})
	}
}

// mergeOutward moves the items shared by all scopes into the ancestor to and removes them from the scopes.
func (st *CompilationState) mergeOutward(scopes []*Scope, to *Scope, opts moveOptions) {
	shared := intersectFirst(scopes)
	if len(shared) == 0 {
		return
	}

	residual := st.moveSomeOutward(shared, scopes[0], to, opts)

	moved := make(map[string]struct{})
	for _, it := range shared {
		if slices.Contains(residual, it) {
			continue
		}

		it.Pinned = true
		moved[it.key()] = struct{}{}
	}

	removeKeys(scopes, moved)
}
