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

// Package report places the tracking calls of an optimized scope tree and renders them as suggested fixes.
//
// Every group of captured items is emitted at the statement slot of its anchor. Items that cannot be
// placed there, because no slot exists or a variable they use is not visible, wrap their accessed
// object inline with track.Read or track.Write. Expressions that must not be evaluated twice are
// extracted into synthesized variables first.
package report

import (
	"context"
	"fmt"
	"go/ast"
	"go/types"
	"log/slog"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/observetrack/internal/astutil"
	"fillmore-labs.com/observetrack/internal/config"
	"fillmore-labs.com/observetrack/internal/hashing"
	"fillmore-labs.com/observetrack/internal/reachability/tracker"
	"fillmore-labs.com/observetrack/internal/scope"
	"fillmore-labs.com/observetrack/internal/tracking"
)

// Emitter turns the optimized scope tree of one file into text edits.
type Emitter struct {
	file       astutil.CurrentFile
	cursor     inspector.Cursor
	info       *types.Info
	index      scope.Index
	outer      *types.Scope
	hasher     *hashing.Hasher
	runtime    config.Runtime
	terminates astutil.Terminates
	logger     *slog.Logger
}

// New creates an [Emitter] for the file at c, using the tables of st.
func New(file astutil.CurrentFile, c inspector.Cursor, st *tracking.CompilationState, rt config.Runtime) *Emitter {
	info := st.Info()

	return &Emitter{
		file:       file,
		cursor:     c,
		info:       info,
		index:      st.Index(),
		outer:      info.Scopes[file.File()],
		hasher:     st.Hasher(),
		runtime:    rt,
		terminates: terminating(tracker.New(info)),
		logger:     st.Logger,
	}
}

// Result is the instrumentation of one file.
type Result struct {
	Edits []analysis.TextEdit

	// Accesses is the number of tracked accesses.
	Accesses int

	// Calls is the number of tracking call statements.
	Calls int

	// Inline is the number of accesses tracked inline.
	Inline int

	// References is the number of synthesized variables.
	References int
}

// Empty reports whether the file needs no instrumentation.
func (r Result) Empty() bool {
	return r.Accesses == 0
}

// Emit plans all placements of root and renders them.
// A file either gets all of its edits or fails as a whole.
func (e *Emitter) Emit(ctx context.Context, root *tracking.Scope) (Result, error) {
	defer trace.StartRegion(ctx, "emit").End()

	p := newPlan(e)

	for _, g := range root.Placements() {
		if err := p.placeGroup(g); err != nil {
			return Result{}, err
		}
	}

	if p.accesses == 0 {
		return Result{}, nil
	}

	edits := p.edits()

	e.logger.Debug("Instrumented file",
		slog.String("file", e.file.Name()),
		slog.Int("accesses", p.accesses),
		slog.Int("calls", p.calls),
		slog.Int("inline", p.inline),
		slog.Int("references", p.refs.Len()))

	return Result{
		Edits:      edits,
		Accesses:   p.accesses,
		Calls:      p.calls,
		Inline:     p.inline,
		References: p.refs.Len(),
	}, nil
}

// Diagnostic creates the diagnostic of an instrumented file, positioned at the package clause.
func Diagnostic(file *ast.File, r Result) analysis.Diagnostic {
	noun := "accesses"
	if r.Accesses == 1 {
		noun = "access"
	}

	message := fmt.Sprintf("%d reactive %s without tracking", r.Accesses, noun)

	return analysis.Diagnostic{
		Pos:     file.Name.Pos(),
		End:     file.Name.End(),
		Message: message,
		SuggestedFixes: []analysis.SuggestedFix{
			{Message: "Insert tracking calls", TextEdits: r.Edits},
		},
	}
}
