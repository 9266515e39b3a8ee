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
	"cmp"
	"go/ast"
	"go/token"
	"maps"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/observetrack/internal/astutil"
	"fillmore-labs.com/observetrack/internal/reference"
	"fillmore-labs.com/observetrack/internal/tracking"
)

// renderer produces source text with synthesized variables and inline tracking applied.
type renderer struct {
	*plan

	// subst holds the nodes whose text changes, by position with enclosing nodes first.
	subst []ast.Expr

	// positions holds all insertion positions in order.
	positions []token.Pos

	texts map[token.Pos]string
}

// edits renders the plan into non-overlapping text edits.
func (p *plan) edits() []analysis.TextEdit {
	for slot := range p.refs.Declarations() {
		p.insertionAt(slot)
	}

	r := &renderer{plan: p, texts: make(map[token.Pos]string)}

	for e := range p.wraps {
		r.subst = append(r.subst, e)
	}

	for _, bindings := range p.refs.Declarations() {
		for _, b := range bindings {
			if b.Replace && p.wraps[b.Expr] == nil {
				r.subst = append(r.subst, b.Expr)
			}
		}
	}

	slices.SortFunc(r.subst, func(a, b ast.Expr) int {
		return cmp.Or(cmp.Compare(a.Pos(), b.Pos()), cmp.Compare(b.End(), a.End()))
	})

	r.positions = slices.Sorted(maps.Keys(p.insertions))
	for pos := range p.closers {
		if _, ok := p.insertions[pos]; !ok {
			r.positions = append(r.positions, pos)
		}
	}

	slices.Sort(r.positions)

	var (
		edits []analysis.TextEdit
		used  = make(map[token.Pos]bool)
		end   token.Pos
	)

	for _, e := range r.subst {
		if e.Pos() < end {
			continue // rendered with its enclosing node
		}

		end = e.End()

		var text strings.Builder
		if !used[e.Pos()] {
			text.WriteString(r.insertText(e.Pos()))
			used[e.Pos()] = true
		}

		text.WriteString(r.substitute(e, true))

		for _, pos := range r.positions {
			if e.Pos() < pos && pos < e.End() {
				used[pos] = true
			}
		}

		if pos := e.End(); !used[pos] && r.hasInsertion(pos) {
			text.WriteString(r.insertText(pos))
			used[pos] = true
		}

		edits = append(edits, analysis.TextEdit{Pos: e.Pos(), End: e.End(), NewText: []byte(text.String())})
	}

	for _, pos := range r.positions {
		if used[pos] {
			continue
		}

		edits = append(edits, analysis.TextEdit{Pos: pos, End: pos, NewText: []byte(r.insertText(pos))})
	}

	if p.header != nil {
		edits = append(edits, analysis.TextEdit{Pos: p.imprt, End: p.imprt, NewText: p.header})
	}

	slices.SortStableFunc(edits, func(a, b analysis.TextEdit) int {
		return cmp.Or(cmp.Compare(a.Pos, b.Pos), cmp.Compare(a.End, b.End))
	})

	return edits
}

func (r *renderer) hasInsertion(pos token.Pos) bool {
	_, ok := slices.BinarySearch(r.positions, pos)

	return ok
}

// code renders n with all substitutions and insertions strictly inside.
func (r *renderer) code(n ast.Node) string {
	return r.render(n, true)
}

// plain renders n with synthesized variables only, as the object named in a tracking call.
func (r *renderer) plain(n ast.Node) string {
	return r.render(n, false)
}

func (r *renderer) render(n ast.Node, full bool) string {
	from, to := n.Pos(), n.End()

	var b strings.Builder

	pos := from
	for _, e := range r.subst {
		if ast.Node(e) == n || e.Pos() < pos || e.End() > to {
			continue
		}

		if full {
			r.copySource(&b, pos, e.Pos(), from, true)
		} else {
			b.WriteString(r.file.Source(pos, e.Pos()))
		}

		b.WriteString(r.substitute(e, full))
		pos = e.End()
	}

	if full {
		r.copySource(&b, pos, to, from, false)
	} else {
		b.WriteString(r.file.Source(pos, to))
	}

	return b.String()
}

// copySource copies the source between pos and end, adding insertions after start.
// An insertion at end is added when more text follows.
func (r *renderer) copySource(b *strings.Builder, pos, end, start token.Pos, inclusive bool) {
	i, _ := slices.BinarySearch(r.positions, pos)

	for ; i < len(r.positions); i++ {
		at := r.positions[i]
		if at > end || at == end && !inclusive {
			break
		}

		if at <= start {
			continue
		}

		b.WriteString(r.file.Source(pos, at))
		b.WriteString(r.insertText(at))
		pos = at
	}

	b.WriteString(r.file.Source(pos, end))
}

// substitute renders the replacement of a node.
func (r *renderer) substitute(e ast.Expr, full bool) string {
	var inner string
	if b, ok := r.refs.Binding(e); ok && b.Replace {
		inner = b.Name
	} else {
		inner = r.render(e, full)
	}

	w := r.wraps[e]
	if !full || w == nil {
		return inner
	}

	if len(w.gets) > 0 {
		inner = r.trackCall("Read", inner, w.gets)
	}

	if len(w.sets) > 0 {
		inner = r.trackCall("Write", inner, w.sets)
	}

	return inner
}

// object renders the object named by a tracking call.
func (r *renderer) object(base ast.Expr) string {
	if b, ok := r.refs.Binding(base); ok {
		return b.Name
	}

	return r.plain(base)
}

func (r *renderer) trackCall(fun, obj string, keys []string) string {
	var b strings.Builder

	b.WriteString(r.qual)
	b.WriteString(fun)
	b.WriteByte('(')
	b.WriteString(obj)

	for _, key := range keys {
		b.WriteString(", ")
		b.WriteString(strconv.Quote(key))
	}

	b.WriteByte(')')

	return b.String()
}

// insertText renders all statements inserted at pos, following any closing braces.
func (r *renderer) insertText(pos token.Pos) string {
	if text, ok := r.texts[pos]; ok {
		return text
	}

	text := r.closers[pos]

	if ins, ok := r.insertions[pos]; ok {
		text += r.layout(ins.slot, r.statements(ins))
	}

	r.texts[pos] = text

	return text
}

// statements renders the reference declarations and tracking calls of a slot.
func (r *renderer) statements(ins *insertion) []string {
	var stmts []string

	for slot, bindings := range r.refs.Declarations() {
		if slot.Pos == ins.slot.Pos {
			stmts = append(stmts, r.declarations(bindings)...)
		}
	}

	for _, c := range ins.calls {
		fun := "Get"
		if c.kind == tracking.KindSet {
			fun = "Set"
		}

		stmts = append(stmts, r.trackCall(fun, r.object(c.base), c.keys))
	}

	return stmts
}

// declarations renders bindings sharing a slot, starting a new statement when a value uses an earlier name.
func (r *renderer) declarations(bindings []*reference.Binding) []string {
	var (
		stmts        []string
		names, exprs []string
		group        []*reference.Binding
	)

	flush := func() {
		if len(group) == 0 {
			return
		}

		stmts = append(stmts, strings.Join(names, ", ")+" := "+strings.Join(exprs, ", "))
		names, exprs, group = nil, nil, nil
	}

	for _, b := range bindings {
		if slices.ContainsFunc(group, func(o *reference.Binding) bool {
			return o.Replace && b.Expr.Pos() <= o.Expr.Pos() && o.Expr.End() <= b.Expr.End()
		}) {
			flush()
		}

		group = append(group, b)
		names = append(names, b.Name)
		exprs = append(exprs, r.code(b.Expr))
	}

	flush()

	return stmts
}

// layout places statements at a slot, matching the indentation of the surrounding code.
func (r *renderer) layout(slot astutil.Slot, stmts []string) string {
	if len(stmts) == 0 {
		return ""
	}

	switch {
	case slot.ElseIf:
		inner := r.file.Indent(slot.Next.Pos()) + "\t"

		return "{\n" + inner + strings.Join(stmts, "\n"+inner) + "\n" + inner

	case slot.Next != nil:
		indent := r.file.Indent(slot.Next.Pos())

		return strings.Join(stmts, "\n"+indent) + "\n" + indent

	case slot.Prev != nil:
		indent := r.file.Indent(slot.Prev.Pos())

		return "\n" + indent + strings.Join(stmts, "\n"+indent)

	default:
		indent := r.file.Indent(slot.List.Pos())
		inner := indent + "\t"

		text := "\n" + inner + strings.Join(stmts, "\n"+inner)
		if r.file.Source(slot.Pos, slot.Pos+1) != "\n" {
			text += "\n" + indent
		}

		return text
	}
}
