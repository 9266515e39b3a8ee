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
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/observetrack/internal/astutil"
	"fillmore-labs.com/observetrack/internal/observe"
)

// visit handles a node after its children, capturing into the innermost scope s.
func (b *Builder) visit(c inspector.Cursor, s *Scope) {
	switch n := c.Node().(type) {
	case *ast.SelectorExpr, *ast.IndexExpr, *ast.SliceExpr:
		b.visitAccess(c, n.(ast.Expr), s)

	case *ast.AssignStmt:
		b.visitAssign(n, s)

	case *ast.IncDecStmt:
		b.captureAccess(s, n.X, KindGet)
		b.captureAccess(s, n.X, KindSet)
		b.recordWrite(n.X, n.End(), s)

	case *ast.UnaryExpr:
		if n.Op == token.AND {
			b.captureAccess(s, n.X, KindSet)
			b.recordWrite(n.X, n.End(), s)
		}

	case *ast.CallExpr:
		b.visitCall(n, s)

	case *ast.ValueSpec:
		b.visitValueSpec(c, n, s)

	case *ast.ReturnStmt:
		if len(n.Results) == 0 {
			b.interrupt(c, s, Return)
		}

	case *ast.BranchStmt:
		b.interrupt(c, s, branchInterruption(n))
	}

	if kind, _ := c.ParentEdge(); kind == edge.RangeStmt_X {
		b.captureElements(s, c.Node().(ast.Expr), KindGet)
	}
}

func (b *Builder) visitAccess(c inspector.Cursor, e ast.Expr, s *Scope) {
	switch kind, _ := c.ParentEdge(); kind {
	case edge.AssignStmt_Lhs, edge.IncDecStmt_X:
		return // handled by the statement

	case edge.RangeStmt_Key, edge.RangeStmt_Value:
		if rng := c.Parent().Node().(*ast.RangeStmt); rng.Tok == token.ASSIGN {
			b.captureAccess(s, e, KindSet)
			b.recordWrite(e, rng.Body.Lbrace, s)
		}

		return

	case edge.UnaryExpr_X:
		if c.Parent().Node().(*ast.UnaryExpr).Op == token.AND {
			return // handled by the address operator
		}
	}

	b.captureAccess(s, e, KindGet)
}

func (b *Builder) visitAssign(n *ast.AssignStmt, s *Scope) {
	if n.Tok == token.DEFINE {
		b.visitDefine(n)

		return
	}

	for _, lhs := range n.Lhs {
		lhs = ast.Unparen(lhs)

		if n.Tok != token.ASSIGN {
			b.captureAccess(s, lhs, KindGet)
		}

		b.captureAccess(s, lhs, KindSet)
		b.recordWrite(lhs, n.End(), s)
	}
}

// visitDefine records the variables of a short variable declaration, and writes of redeclared ones.
func (b *Builder) visitDefine(n *ast.AssignStmt) {
	s := b.top()

	for i, id := range astutil.AllAssignedIdents(n) {
		if _, ok := b.info.Defs[id]; !ok {
			b.recordWrite(id, n.End(), s) // redeclared

			continue
		}

		var init ast.Expr
		if len(n.Rhs) == len(n.Lhs) {
			init = n.Rhs[i]
		}

		b.declare(id, init != nil && b.classifier.IsObserved(s, init, false))
	}
}

func (b *Builder) visitValueSpec(c inspector.Cursor, n *ast.ValueSpec, s *Scope) {
	var docs []*ast.CommentGroup
	if gen, ok := c.Parent().Node().(*ast.GenDecl); ok {
		if gen.Tok != token.VAR {
			return
		}

		docs = append(docs, gen.Doc)
	}

	directive := observe.HasDirective(observe.DirectiveObserved, append(docs, n.Doc, n.Comment)...)

	for i, id := range n.Names {
		if id.Name == "_" {
			continue
		}

		observed := directive
		if !observed && len(n.Values) == len(n.Names) {
			observed = b.classifier.IsObserved(s, n.Values[i], false)
		}

		b.declare(id, observed)
	}
}

// visitCall captures element accesses of well-known collection functions.
func (b *Builder) visitCall(n *ast.CallExpr, s *Scope) {
	ci, ok := b.classifier.Resolver().Call(n)
	if !ok {
		return
	}

	for _, e := range ci.Effects {
		if e.Arg >= len(n.Args) {
			continue
		}

		arg := n.Args[e.Arg]
		switch e.Effect {
		case observe.ReadsElements:
			b.captureElements(s, arg, KindGet)

		case observe.WritesElements:
			b.captureElements(s, arg, KindSet)
		}
	}
}

// captureAccess captures a field, index or slice expression when it is tracked.
func (b *Builder) captureAccess(s *Scope, e ast.Expr, k Kind) {
	if !s.Capturer.ShouldCapture(k) {
		return
	}

	a, ok := b.classifier.Access(e)
	if !ok {
		return
	}

	if b.info.TypeOf(a.Base) == nil {
		b.Logger.Debug("Missing type information", "expr", types.ExprString(a.Base))

		return
	}

	if !b.classifier.Tracked(s, a) {
		return
	}

	b.capture(s, a, k)
}

// captureElements captures all elements of an observed collection.
func (b *Builder) captureElements(s *Scope, e ast.Expr, k Kind) {
	if !s.Capturer.ShouldCapture(k) {
		return
	}

	a, ok := b.classifier.Element(e)
	if !ok || !b.classifier.IsObserved(s, e, true) {
		return
	}

	b.capture(s, a, k)
}

func (b *Builder) capture(s *Scope, a observe.Access, k Kind) {
	s.Capturer.Capture(&Item{
		Node:  a.Node,
		Base:  a.Base,
		Key:   a.Key,
		Kind:  k,
		Hash:  b.hasher.Access(a.Base, a.Key),
		Field: a.Field,
		Tag:   a.Tag,
	})
}

// recordWrite notes an assignment of e taking effect at pos.
func (b *Builder) recordWrite(e ast.Expr, pos token.Pos, s *Scope) {
	e = ast.Unparen(e)
	if id, ok := e.(*ast.Ident); ok && id.Name == "_" {
		return
	}

	w := write{name: b.hasher.Hash(e).Name, pos: pos, fn: s.fn}
	if id, ok := e.(*ast.Ident); ok {
		w.v, _ = b.info.Uses[id].(*types.Var)
	}

	b.writes = append(b.writes, w)
}
