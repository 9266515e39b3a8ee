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

package report

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"slices"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/observetrack/internal/astutil"
	"fillmore-labs.com/observetrack/internal/reference"
	"fillmore-labs.com/observetrack/internal/scope"
	"fillmore-labs.com/observetrack/internal/tracking"
)

// plan collects the placements of one file.
type plan struct {
	*Emitter

	in   *inspector.Inspector
	refs *reference.Extractor

	// insertions holds the statements to insert, by slot position.
	insertions map[token.Pos]*insertion

	// closers holds the text closing blocks opened around else-if statements.
	closers map[token.Pos]string

	// wraps holds inline tracking, by accessed object.
	wraps map[ast.Expr]*wrap

	qual   string
	header []byte
	imprt  token.Pos

	accesses, calls, inline int
}

// insertion is the list of statements inserted at one slot.
type insertion struct {
	slot  astutil.Slot
	calls []*call
}

// call is one tracking call naming several keys of the same object.
type call struct {
	kind tracking.Kind
	base ast.Expr
	id   string
	keys []string
}

// wrap is the inline tracking of an accessed object.
type wrap struct {
	gets, sets []string
}

func newPlan(e *Emitter) *plan {
	p := &plan{
		Emitter:    e,
		in:         e.cursor.Inspector(),
		refs:       reference.New(e.file.File()),
		insertions: make(map[token.Pos]*insertion),
		closers:    make(map[token.Pos]string),
		wraps:      make(map[ast.Expr]*wrap),
	}

	p.qual, p.imprt, p.header = p.runtimeImport()

	return p
}

// placeGroup emits the items of a group at its slot, falling back to inline tracking per item.
func (p *plan) placeGroup(g *tracking.Group) error {
	slot, ok := p.groupSlot(g.Anchor)
	if !ok && g.Anchor.Node != nil {
		p.logger.Debug("No statement slot",
			"file", p.file.Name(),
			"line", p.file.Line(g.Anchor.Node.Pos()),
			"anchor", scope.Name(g.Anchor.Node),
			"position", g.Anchor.Position.String())
	}

	var placed []*tracking.Item

	for _, it := range g.Items {
		p.accesses++

		if ok && p.place(it, slot) {
			placed = append(placed, it)

			continue
		}

		if err := p.inlineItem(it); err != nil {
			return err
		}
	}

	if len(placed) > 0 {
		p.addCalls(slot, placed)
	}

	return nil
}

// groupSlot resolves the statement slot of an anchor.
func (p *plan) groupSlot(a tracking.Anchor) (astutil.Slot, bool) {
	if a.Node == nil || !a.Index.Valid() {
		return astutil.Slot{}, false
	}

	c := a.Index.Cursor(p.in)

	switch a.Position {
	case tracking.Before:
		return astutil.SlotBefore(c)

	case tracking.After:
		return astutil.SlotAfter(c, p.terminates)

	case tracking.Append:
		return astutil.SlotAppend(c, p.terminates)

	default:
		return astutil.Slot{}, false
	}
}

// place decides whether an item can be tracked by a call at slot and binds the references it needs.
func (p *plan) place(it *tracking.Item, slot astutil.Slot) bool {
	for _, v := range it.Hash.Vars {
		if !p.index.Visible(p.outer, v, slot.Pos) {
			return false
		}
	}

	base, ok := p.cursor.FindNode(it.Base)
	if !ok {
		return false
	}

	targets := reference.Targets(p.info, it.Base)

	if it.Unstable {
		// the object has to be kept before it is reassigned
		if len(targets) > 0 || !p.encloses(base, slot) {
			return false
		}

		if _, err := p.refs.Reference(base, false); err != nil {
			return false
		}

		return true
	}

	cursors := make([]inspector.Cursor, 0, len(targets))
	for _, t := range targets {
		c, ok := base.FindNode(t)
		if !ok || !p.encloses(c, slot) {
			return false
		}

		cursors = append(cursors, c)
	}

	for _, c := range cursors {
		if _, err := p.refs.Reference(c, true); err != nil {
			return false
		}
	}

	return true
}

// encloses reports whether a variable declared before the statement of c is visible at slot.
func (p *plan) encloses(c inspector.Cursor, slot astutil.Slot) bool {
	if b, ok := p.refs.Binding(c.Node().(ast.Expr)); ok {
		return visibleFrom(b.Slot, slot)
	}

	ref, ok := astutil.SlotBefore(c)

	return ok && visibleFrom(ref, slot)
}

func visibleFrom(decl, use astutil.Slot) bool {
	return decl.Pos <= use.Pos && use.Pos < decl.List.End()
}

// inlineItem wraps the accessed object of an item in place.
func (p *plan) inlineItem(it *tracking.Item) error {
	if it.Pinned {
		return tracking.NewInternalError(it.Node, fmt.Errorf("%w: merged %s", tracking.ErrPlacement, it.Hash.Name))
	}

	base, ok := p.cursor.FindNode(it.Base)
	if !ok {
		return tracking.NewInternalError(it.Node, fmt.Errorf("%w: %s outside of file", tracking.ErrPlacement, it.Hash.Name))
	}

	if needsAddress(p.info, base) {
		return tracking.NewInternalError(it.Node, fmt.Errorf("%w: %s is not addressable inline", tracking.ErrPlacement, it.Hash.Name))
	}

	w, ok := p.wraps[it.Base]
	if !ok {
		w = &wrap{}
		p.wraps[it.Base] = w
	}

	switch it.Kind {
	case tracking.KindSet:
		w.sets = appendKey(w.sets, it.Key)

	default:
		w.gets = appendKey(w.gets, it.Key)
	}

	p.inline++

	p.logger.Debug("Inline tracking",
		"file", p.file.Name(),
		"line", p.file.Line(it.Node.Pos()),
		"access", it.Hash.Name)

	return nil
}

// addCalls merges placed items into tracking calls, one per kind and object in first-occurrence order.
func (p *plan) addCalls(slot astutil.Slot, items []*tracking.Item) {
	ins := p.insertionAt(slot)

	for _, it := range items {
		id := it.Kind.String() + "#" + p.baseID(it.Base)

		i := slices.IndexFunc(ins.calls, func(c *call) bool { return c.id == id })
		if i < 0 {
			ins.calls = append(ins.calls, &call{kind: it.Kind, base: it.Base, id: id})
			i = len(ins.calls) - 1
			p.calls++
		}

		ins.calls[i].keys = appendKey(ins.calls[i].keys, it.Key)
	}
}

// baseID identifies the object a tracking call names.
func (p *plan) baseID(base ast.Expr) string {
	if b, ok := p.refs.Binding(base); ok {
		return b.Name
	}

	h := p.hasher.Hash(base)
	if !h.Pure {
		return fmt.Sprintf("%s@%d", h.Name, base.Pos())
	}

	return h.Name
}

func (p *plan) insertionAt(slot astutil.Slot) *insertion {
	ins, ok := p.insertions[slot.Pos]
	if !ok {
		ins = &insertion{slot: slot}
		p.insertions[slot.Pos] = ins

		if slot.ElseIf {
			// the else branch becomes a block holding the statements and the if statement
			p.closers[slot.Next.End()] += "\n" + p.file.Indent(slot.Next.Pos()) + "}"
		}
	}

	return ins
}

func appendKey(keys []string, key string) []string {
	if slices.Contains(keys, key) {
		return keys
	}

	return append(keys, key)
}

// needsAddress reports whether wrapping the object at c in a call would make an assignment,
// an increment or an address operation on it illegal.
func needsAddress(info *types.Info, c inspector.Cursor) bool {
	for {
		kind, _ := c.ParentEdge()
		parent := c.Parent()

		switch kind {
		case edge.ParenExpr_X:

		case edge.SelectorExpr_X:
			sel := info.Selections[parent.Node().(*ast.SelectorExpr)]
			if sel == nil || isPointer(info.TypeOf(c.Node().(ast.Expr))) {
				return false
			}

			if sel.Kind() != types.FieldVal {
				// value receivers copy anyway
				_, ptr := sel.Obj().Type().(*types.Signature).Recv().Type().(*types.Pointer)

				return ptr
			}

		case edge.IndexExpr_X:
			if !isArray(info.TypeOf(c.Node().(ast.Expr))) {
				return false
			}

		case edge.SliceExpr_X:
			return isArray(info.TypeOf(c.Node().(ast.Expr)))

		case edge.AssignStmt_Lhs, edge.IncDecStmt_X, edge.RangeStmt_Key, edge.RangeStmt_Value:
			return true

		case edge.UnaryExpr_X:
			return parent.Node().(*ast.UnaryExpr).Op == token.AND

		default:
			return false
		}

		c = parent
	}
}

func isPointer(t types.Type) bool {
	if t == nil {
		return false
	}

	_, ok := t.Underlying().(*types.Pointer)

	return ok
}

func isArray(t types.Type) bool {
	if t == nil {
		return false
	}

	_, ok := t.Underlying().(*types.Array)

	return ok
}
