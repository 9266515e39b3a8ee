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
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"runtime/trace"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/observetrack/internal/astutil"
	"fillmore-labs.com/observetrack/internal/observe"
)

// Builder walks one file depth-first, creating a scope for every control flow relevant node
// and capturing accesses of reactive values into them.
type Builder struct {
	*CompilationState

	stack []*Scope
	err   error
}

// NewBuilder creates a [Builder] over a state that has been [CompilationState.Reset].
func NewBuilder(st *CompilationState) *Builder {
	return &Builder{CompilationState: st}
}

// Build walks the file, then optimizes the finished scope tree. It returns the root scope.
func (b *Builder) Build(ctx context.Context) (*Scope, error) {
	region := trace.StartRegion(ctx, "build")
	astutil.Walk(b.file, b.enter, b.leave)
	region.End()

	if b.err != nil {
		return nil, b.err
	}

	if len(b.stack) > 0 {
		return nil, NewInternalError(b.top().Node(), ErrUnbalancedRange)
	}

	defer trace.StartRegion(ctx, "optimize").End()

	b.markUnstable()
	b.optimizeAll(b.root)

	return b.root, nil
}

func (b *Builder) top() *Scope {
	if len(b.stack) == 0 {
		return nil
	}

	return b.stack[len(b.stack)-1]
}

func (b *Builder) enter(c inspector.Cursor) bool {
	if b.err != nil {
		return false
	}

	switch n := c.Node().(type) {
	case *ast.FuncDecl:
		if astutil.Skipped(n.Doc) {
			return false
		}

	case *ast.GenDecl:
		if astutil.Skipped(n.Doc) {
			return false
		}
	}

	if bareBlock(c) {
		b.MarkContentRange(c.Node(), c.Node(), 0)
	}

	b.enterRanges(c)

	if roles, flow := b.Classify(c); !roles.Empty() {
		s := b.push(c, roles, shapeOf(c.Node()))
		s.flow = flow
		b.seed(c, s)
	}

	return true
}

func (b *Builder) enterRanges(c inspector.Cursor) {
	n := c.Node()

	ranges, ok := b.ranges[n]
	if !ok {
		return
	}

	delete(b.ranges, n)

	for _, r := range ranges {
		shape := ShapeStmts
		if _, ok := n.(*ast.BlockStmt); ok && r.end == n {
			shape = ShapeBlock
		}

		s := b.push(c, r.roles, shape)

		end, ok := c.Parent().FindNode(r.end)
		if !ok {
			b.err = NewInternalError(n, ErrUnbalancedRange)
			return
		}

		s.EndCursor = end
	}
}

func (b *Builder) push(c inspector.Cursor, roles Roles, shape Shape) *Scope {
	parent := b.top()

	effect := false
	if fn, ok := c.Node().(*ast.FuncDecl); ok {
		effect = observe.HasDirective(observe.DirectiveEffect, fn.Doc)
	}

	s := newScope(roles, shape, c, parent, effect)
	if parent == nil {
		b.root = s
	}

	b.stack = append(b.stack, s)
	b.byNode[c.Node()] = s

	if roles.Has(Loop) {
		b.loops = append(b.loops, c.Node())
	}

	return s
}

func (b *Builder) leave(c inspector.Cursor) {
	if b.err != nil {
		return
	}

	n := c.Node()
	s := b.top()
	if s == nil {
		b.err = NewInternalError(n, ErrScopeUnderflow)
		return
	}

	b.visit(c, s)

	if own, ok := b.byNode[n]; ok && !own.Range() && own.Cursor == c {
		if own != s {
			b.err = NewInternalError(n, ErrUnbalancedRange)
			return
		}

		b.pop()
	}

	for s := b.top(); s != nil && s.Range() && s.End() == n; s = b.top() {
		b.pop()
	}
}

func (b *Builder) pop() {
	if len(b.stack) == 0 {
		b.err = NewInternalError(b.file.Node(), ErrScopeUnderflow)
		return
	}

	s := b.top()
	b.stack = b.stack[:len(b.stack)-1]

	s.Capturer.endCapture()

	if s.Parent != nil {
		b.leaveChild(s.Parent, s)
	}
}

// seed records the variables a scope declares on entry and pre-registers case bodies.
func (b *Builder) seed(c inspector.Cursor, s *Scope) {
	switch n := c.Node().(type) {
	case *ast.FuncDecl:
		b.declareFields(s, n.Recv)
		b.declareFields(s, n.Type.Params)

	case *ast.FuncLit:
		b.declareFields(s, n.Type.Params)
		if s.Roles.Has(InstantlyInvokedFunction) {
			b.declareCallbackParams(c, s, n)
		}

	case *ast.RangeStmt:
		if n.Tok != token.DEFINE {
			break
		}

		if id, ok := n.Key.(*ast.Ident); ok {
			b.declare(id, false)
		}

		if id, ok := n.Value.(*ast.Ident); ok {
			b.declare(id, b.classifier.IsObserved(s.Parent, n.X, true))
		}

	case *ast.CaseClause:
		b.declareImplicit(c, s, n)

		if len(n.Body) > 0 {
			b.MarkContentRange(n.Body[0], n.Body[len(n.Body)-1], RolesOf(CaseBody))
		}

	case *ast.CommClause:
		if len(n.Body) > 0 {
			b.MarkContentRange(n.Body[0], n.Body[len(n.Body)-1], RolesOf(CaseBody))
		}
	}
}

func (b *Builder) declareFields(s *Scope, fields *ast.FieldList) {
	if fields == nil {
		return
	}

	for _, field := range fields.List {
		for _, name := range field.Names {
			if v, ok := b.info.Defs[name].(*types.Var); ok {
				s.Variables[v] = false
			}
		}
	}
}

// declareCallbackParams marks parameters of a collection callback receiving elements of an observed collection.
func (b *Builder) declareCallbackParams(c inspector.Cursor, s *Scope, lit *ast.FuncLit) {
	call, ok := c.Parent().Node().(*ast.CallExpr)
	if !ok {
		return
	}

	r := b.classifier.Resolver()

	cb, coll, ok := r.Callback(call)
	if !ok || cb != lit {
		return
	}

	elem := observe.ElemType(r.TypeOf(coll))
	if elem == nil || !b.classifier.IsObserved(s.Parent, coll, true) {
		return
	}

	for _, field := range lit.Type.Params.List {
		for _, name := range field.Names {
			if v, ok := b.info.Defs[name].(*types.Var); ok && types.Identical(v.Type(), elem) {
				s.Variables[v] = true
			}
		}
	}
}

// declareImplicit marks the implicit variable of a type switch clause.
func (b *Builder) declareImplicit(c inspector.Cursor, s *Scope, clause *ast.CaseClause) {
	v, ok := b.info.Implicits[clause].(*types.Var)
	if !ok {
		return
	}

	sw, ok := c.Parent().Parent().Node().(*ast.TypeSwitchStmt)
	if !ok {
		return
	}

	assign, ok := sw.Assign.(*ast.AssignStmt)
	if !ok || len(assign.Rhs) != 1 {
		return
	}

	guard, ok := ast.Unparen(assign.Rhs[0]).(*ast.TypeAssertExpr)
	if !ok {
		return
	}

	s.Variables[v] = b.classifier.IsObserved(s.Parent, guard.X, false)
}

// declare records a newly defined variable in its declaring scope.
func (b *Builder) declare(id *ast.Ident, observed bool) {
	v, ok := b.info.Defs[id].(*types.Var)
	if !ok {
		return
	}

	s := b.DeclScope(v)
	if s == nil {
		s = b.top()
	}

	s.Variables[v] = observed
}
