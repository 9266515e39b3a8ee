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
	"slices"

	"fillmore-labs.com/observetrack/internal/astutil"
	"fillmore-labs.com/observetrack/internal/hashing"
	"fillmore-labs.com/observetrack/internal/observe"
)

// Item is a captured read or write of a reactive value, pending emission as a tracking call.
type Item struct {
	// Node is the accessing expression.
	Node ast.Expr

	// Base is the object accessed.
	Base ast.Expr

	// Key is the field name, "" for collection elements.
	Key string

	Kind Kind

	// Hash is the structural key of the access.
	Hash hashing.Result

	// Field is the selected field, nil for elements.
	Field *types.Var

	Tag observe.Tag

	// Origin is the scope the item was captured in.
	Origin *Scope

	// Pinned items were merged from several branches and must be emitted at their group.
	Pinned bool

	// Unstable items have a base that is reassigned before their group executes.
	Unstable bool
}

// key identifies equal accesses of the same kind.
func (it *Item) key() string {
	return it.Hash.Name + "#" + it.Kind.String()
}

// Position places tracking calls relative to an anchor node.
type Position uint8

//go:generate go tool stringer -type Position -linecomment
const (
	Before Position = iota // before
	After                  // after
	Append                 // append
)

// Anchor is where a [Group] is emitted.
type Anchor struct {
	Node     ast.Node
	Index    astutil.NodeIndex
	Position Position
}

// follows reports whether the anchor is reached after n completes in post-order.
func (a Anchor) follows(n ast.Node) bool {
	if a.Node == nil {
		return false
	}

	if a.Node == n {
		return true
	}

	if a.Node.Pos() <= n.Pos() && n.End() <= a.Node.End() {
		return true // ancestor
	}

	return a.Node.Pos() >= n.End()
}

// Group is an ordered batch of items emitted at one anchor.
type Group struct {
	Items        []*Item
	Anchor       Anchor
	Interruption Interruption
	sealed       bool
}

// Sealed reports whether the group has an anchor.
func (g *Group) Sealed() bool {
	return g.sealed
}

func (g *Group) seal(a Anchor, i Interruption) {
	g.Anchor = a
	g.Interruption = i
	g.sealed = true
}

// removeSame drops an item capturing the same node and key.
func (g *Group) removeSame(it *Item) {
	g.Items = slices.DeleteFunc(g.Items, func(o *Item) bool {
		return o.Node == it.Node && o.Key == it.Key
	})
}

// remove drops the given items.
func (g *Group) remove(items []*Item) {
	if len(items) == 0 {
		return
	}

	g.Items = slices.DeleteFunc(g.Items, func(o *Item) bool {
		return slices.Contains(items, o)
	})
}
