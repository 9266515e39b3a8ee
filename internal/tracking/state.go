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
	"log/slog"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/observetrack/analyzer/level"
	"fillmore-labs.com/observetrack/internal/hashing"
	"fillmore-labs.com/observetrack/internal/observe"
	"fillmore-labs.com/observetrack/internal/reachability/tracker"
	"fillmore-labs.com/observetrack/internal/scope"
	"fillmore-labs.com/observetrack/internal/usage"
)

// Options control the optimizer.
type Options struct {
	// Hoist decides whether loop bodies and callbacks hoist their captures.
	Hoist level.Hoist

	// Residual decides where loop condition captures that cannot be hoisted go.
	Residual level.Residual

	// Conservative keeps captures that may panic inside code that may not run.
	Conservative bool

	Logger *slog.Logger
}

// CompilationState holds all tables of the tracking pass for one file.
// It is created once per package and reset for every file.
type CompilationState struct {
	Options

	classifier *observe.Classifier
	census     usage.Census
	flow       tracker.Tracker
	index      scope.Index
	info       *types.Info

	file   inspector.Cursor
	hasher *hashing.Hasher

	// ranges holds the pre-registered content ranges by start node.
	ranges map[ast.Node][]contentRange

	// byNode maps nodes to the innermost scope wrapping them.
	byNode map[ast.Node]*Scope

	// scopeCursors maps nodes declaring a type checker scope to their cursors.
	scopeCursors map[ast.Node]inspector.Cursor

	declScopes map[*types.Var]*Scope

	writes []write
	loops  []ast.Node

	root *Scope
}

type contentRange struct {
	end   ast.Node
	roles Roles
}

// write is an assignment of a variable or access path.
type write struct {
	name string
	v    *types.Var // the assigned local variable, nil for paths
	pos  token.Pos  // where the write takes effect
	fn   *Scope
}

// NewState creates a [CompilationState] for a package.
func NewState(c *observe.Classifier, census usage.Census, opts Options) *CompilationState {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	info := c.Resolver().Info()

	return &CompilationState{
		Options:    opts,
		classifier: c,
		census:     census,
		flow:       tracker.New(info),
		index:      scope.NewIndex(info),
		info:       info,
	}
}

// Reset prepares the state for a new file.
func (st *CompilationState) Reset(file inspector.Cursor) {
	st.file = file
	st.hasher = hashing.New(st.info)
	st.ranges = make(map[ast.Node][]contentRange)
	st.byNode = make(map[ast.Node]*Scope)
	st.declScopes = make(map[*types.Var]*Scope)
	st.writes = nil
	st.loops = nil
	st.root = nil

	st.scopeCursors = make(map[ast.Node]inspector.Cursor)
	for c := range file.Preorder(scopeNodeTypes...) {
		if _, ok := st.info.Scopes[c.Node()]; ok {
			st.scopeCursors[c.Node()] = c
		}
	}
}

var scopeNodeTypes = []ast.Node{
	// keep-sorted start
	(*ast.BlockStmt)(nil),
	(*ast.CaseClause)(nil),
	(*ast.CommClause)(nil),
	(*ast.ForStmt)(nil),
	(*ast.FuncType)(nil),
	(*ast.IfStmt)(nil),
	(*ast.RangeStmt)(nil),
	(*ast.SwitchStmt)(nil),
	(*ast.TypeSwitchStmt)(nil),
	// keep-sorted end
}

// MarkContentRange registers a statement range that becomes a scope when the walk reaches start.
// extra roles are added to [ContentRange].
func (st *CompilationState) MarkContentRange(start, end ast.Node, extra Roles) {
	st.ranges[start] = append(st.ranges[start], contentRange{end: end, roles: extra.With(ContentRange)})
}

// Hasher returns the expression hasher of the current file.
func (st *CompilationState) Hasher() *hashing.Hasher {
	return st.hasher
}

// Index returns the type checker scope index.
func (st *CompilationState) Index() scope.Index {
	return st.index
}

// Info returns the type information.
func (st *CompilationState) Info() *types.Info {
	return st.info
}

// Root returns the scope tree of the current file after building.
func (st *CompilationState) Root() *Scope {
	return st.root
}

// ScopeOf returns the innermost scope wrapping n, if any.
func (st *CompilationState) ScopeOf(n ast.Node) (*Scope, bool) {
	s, ok := st.byNode[n]

	return s, ok
}

// DeclScope returns the tracking scope declaring a variable, the root for package-level variables.
func (st *CompilationState) DeclScope(v *types.Var) *Scope {
	if s, ok := st.declScopes[v]; ok {
		return s
	}

	s := st.root
	if n := st.index.DeclNode(v); n != nil {
		if c, ok := st.scopeCursors[n]; ok {
			for ; c != st.file.Parent(); c = c.Parent() {
				if sc, ok := st.byNode[c.Node()]; ok {
					s = sc
					break
				}
			}
		}
	}

	if s != nil {
		st.declScopes[v] = s
	}

	return s
}
