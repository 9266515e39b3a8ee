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

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/observetrack/internal/astutil"
)

// Capturer records the get and set items of one scope into ordered, anchored groups.
type Capturer struct {
	scope *Scope
	kind  Kind

	// captured is never empty, the last group is the open one until the scope exits.
	captured []*Group
}

func newCapturer(s *Scope, effect bool) *Capturer {
	c := &Capturer{scope: s, captured: []*Group{{}}}

	switch {
	case s.Parent == nil:
		c.kind = KindNone

	case effect:
		c.kind = KindBoth

	case s.Roles.Has(FunctionLike):
		c.kind = KindUndetermined

	default:
		c.kind = s.Parent.Capturer.kind
	}

	return c
}

// Kind returns the current capture kind.
func (c *Capturer) Kind() Kind {
	return c.kind
}

// Groups returns the captured groups.
func (c *Capturer) Groups() []*Group {
	return c.captured
}

// Latest returns the last group.
func (c *Capturer) Latest() *Group {
	return c.captured[len(c.captured)-1]
}

// HasCaptured reports whether any group holds items.
func (c *Capturer) HasCaptured() bool {
	for _, g := range c.captured {
		if len(g.Items) > 0 {
			return true
		}
	}

	return false
}

// Open returns the number of groups without anchor.
func (c *Capturer) Open() int {
	open := 0
	for _, g := range c.captured {
		if !g.sealed {
			open++
		}
	}

	return open
}

// ShouldCapture reports whether items of the given kind are recorded.
func (c *Capturer) ShouldCapture(k Kind) bool {
	switch c.kind {
	case KindNone:
		return false

	case KindSet:
		return k != KindGet

	default:
		return true
	}
}

// Capture appends an item to the latest group, replacing an earlier capture of the same node and key.
func (c *Capturer) Capture(it *Item) {
	c.addKind(it.Kind)

	g := c.Latest()
	g.removeSame(it)
	g.Items = append(g.Items, it)

	if it.Origin == nil {
		it.Origin = c.scope
	}
}

// addKind adopts the first capture kind and switches get scopes of the enclosing function to set on a write.
func (c *Capturer) addKind(k Kind) {
	closest := c.scope.fn
	switchGets := k == KindSet && (c.kind == KindGet || closest.Capturer.kind == KindGet)

	// undetermined scopes up to the function decide with their first capture
	for s := c.scope; s != nil && s.Capturer.kind == KindUndetermined; s = s.Parent {
		s.Capturer.kind = k
		if s == closest {
			break
		}
	}

	if !switchGets {
		return
	}

	filter := func(s *Scope) bool {
		if s == closest {
			return true
		}

		return s.Capturer.kind == KindGet && !s.nonInstantFunction()
	}

	closest.walkChildFirst(filter, func(s *Scope) bool {
		if s.Capturer.kind == KindGet {
			s.Capturer.switchToSet()
		}

		return true
	})
}

func (c *Capturer) switchToSet() {
	latest := c.Latest()
	latest.Items = nil

	c.kind = KindSet
	c.captured = []*Group{latest}
}

// BreakCaptured seals the latest group before the node at and opens a new one.
// Conditional scopes capture only their own evaluation and are never split.
func (c *Capturer) BreakCaptured(at inspector.Cursor, i Interruption) {
	if c.scope.Roles.Has(Conditional) {
		return
	}

	c.Latest().seal(Anchor{Node: at.Node(), Index: astutil.NodeIndexOf(at), Position: Before}, i)
	c.captured = append(c.captured, &Group{})
}

// endCapture seals the latest group at the scope exit.
func (c *Capturer) endCapture() {
	s := c.scope

	var a Anchor

	switch {
	case s.Roles.Has(FunctionLike):
		k := edge.FuncDecl_Body
		if s.Shape == ShapeFuncLit {
			k = edge.FuncLit_Body
		}

		a = anchorAt(s.Cursor.ChildAt(k, -1), Append)

	case s.Roles.Has(FlowInterruption), s.Roles.Has(Conditional), s.Roles.Has(Switch):
		a = anchorAt(s.Cursor, Before)

	case s.Shape == ShapeStmts:
		a = anchorAt(s.EndCursor, After)

	case s.Shape.holdsStatements():
		a = anchorAt(s.Cursor, Append)

	default:
		a = anchorAt(s.Cursor, After)
	}

	c.Latest().seal(a, NoInterruption)
}

func anchorAt(c inspector.Cursor, p Position) Anchor {
	return Anchor{Node: c.Node(), Index: astutil.NodeIndexOf(c), Position: p}
}

// firstGroup returns the group that always executes when the scope does.
func (c *Capturer) firstGroup() *Group {
	return c.captured[0]
}

// groupFollowing returns the first group emitted after n completes, or the latest.
func (c *Capturer) groupFollowing(n ast.Node) *Group {
	for _, g := range c.captured {
		if g.sealed && g.Anchor.follows(n) {
			return g
		}
	}

	return c.Latest()
}
