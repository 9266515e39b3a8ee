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
	"maps"
	"math"

	"fillmore-labs.com/observetrack/analyzer/level"
)

// optimizeAll runs the optimizer passes over the finished tree, descendants before their parents.
func (b *Builder) optimizeAll(root *Scope) {
	for s := range root.ChildFirst() {
		b.optimize(s)
	}
}

// optimize applies the passes guarded by the roles of s. Descendants of s are already optimized.
func (st *CompilationState) optimize(s *Scope) {
	if s.Roles.Has(FlowInterruption) {
		st.hoistInterruption(s)
	}

	if s.Roles.Has(Conditional) {
		st.mergeBranches(s)
	}

	if s.Roles.Any(RolesOf(ConditionalCondition, SwitchCondition)) {
		st.hoistCondition(s)
	}

	if s.Roles.Has(Switch) {
		st.hoistSwitch(s)
	}

	if s.Roles.Has(LoopInitializer) {
		st.moveFirstOutward(s, s.Parent.Parent, moveOptions{})
	}

	if s.Roles.Any(RolesOf(LoopCondition, LoopIncrement, LoopSource)) {
		st.hoistLoopHeader(s)
	}

	if s.Roles.Has(LoopBody) || s.Roles.Has(InstantlyInvokedFunction) {
		st.hoistBody(s)
	}

	if s.Roles.Has(FunctionLike) {
		st.eliminate(s, make(map[string]struct{}))
	}

	if s.Roles.Has(SourceRoot) {
		st.dropPrivate(s)
	}
}

// hoistInterruption moves the content of a return, send or receive into the enclosing sequence.
func (st *CompilationState) hoistInterruption(s *Scope) {
	if s.Roles.Has(ConditionalBranch) {
		return
	}

	st.moveFirstOutward(s, s.Parent, moveOptions{})
}

// hoistCondition moves the captures of a condition before its conditional or switch.
// A condition of an else-if stays inside the else branch.
func (st *CompilationState) hoistCondition(s *Scope) {
	to := s.Parent.Parent
	if s.Parent.Roles.Has(ConditionalBranch) {
		to = s.Parent
	}

	st.moveFirstOutward(s, to, moveOptions{})
}

// mergeBranches hoists the captures all branches of an if statement share.
func (st *CompilationState) mergeBranches(s *Scope) {
	var branches []*Scope
	for _, child := range s.Children {
		if child.Roles.Has(ConditionalBranch) {
			branches = append(branches, child)
		}
	}

	if len(branches) < 2 {
		return
	}

	to := s.Parent
	if s.Roles.Has(ConditionalBranch) {
		to = s
	}

	st.mergeOutward(branches, to, moveOptions{guarded: true})
}

// hoistSwitch moves case expressions before the switch and merges captures shared by all case bodies.
func (st *CompilationState) hoistSwitch(s *Scope) {
	var bodies []*Scope

	for i, clause := range s.Children {
		if !clause.Roles.Has(Case) {
			continue
		}

		for _, child := range clause.Children {
			switch {
			case child.Roles.Has(CaseCondition):
				guarded := s.Shape != ShapeSelect && i > 0
				st.moveFirstOutward(child, s.Parent, moveOptions{guarded: guarded})

			case child.Roles.Has(CaseBody):
				bodies = append(bodies, child)
			}
		}
	}

	if len(bodies) < 2 {
		return
	}

	st.mergeOutward(bodies, s.Parent, moveOptions{guarded: true})
}

// hoistLoopHeader moves the captures of a loop condition, post statement or range expression before the loop.
// With [level.ResidualBody], what a condition keeps goes to the start of the body instead.
func (st *CompilationState) hoistLoopHeader(s *Scope) {
	loop := s.Parent

	opts := moveOptions{guarded: s.Roles.Has(LoopIncrement)}
	st.moveFirstOutward(s, loop.Parent, opts)

	if st.Residual != level.ResidualBody || !s.Roles.Has(LoopCondition) {
		return
	}

	for _, child := range loop.Children {
		if child.Roles.Has(LoopBody) {
			st.moveResidualInto(s, child)

			return
		}
	}
}

// hoistBody moves the captures of a loop body or an instantly invoked function out of it.
func (st *CompilationState) hoistBody(s *Scope) {
	if st.Hoist == level.HoistLazy {
		return
	}

	to := s.Parent
	if s.Roles.Has(LoopBody) {
		to = s.Parent.Parent
	}

	st.moveFirstOutward(s, to, moveOptions{guarded: true})
}

// eliminate drops items repeating an item already tracked on every path reaching them.
// A yield clears what is known, since other code may run in between.
func (st *CompilationState) eliminate(s *Scope, seen map[string]struct{}) {
	next := 0

	visit := func(limit int) {
		for ; next < len(s.Children); next++ {
			child := s.Children[next]
			if int(child.Index) > limit {
				return
			}

			if !child.nonInstantFunction() {
				st.eliminate(child, maps.Clone(seen))
			}
		}
	}

	for _, g := range s.Capturer.captured {
		var repeated []*Item

		for _, it := range g.Items {
			if !it.Hash.Pure || it.Unstable {
				continue
			}

			k := it.key()
			if _, ok := seen[k]; ok {
				repeated = append(repeated, it)

				continue
			}

			seen[k] = struct{}{}
		}

		g.remove(repeated)

		if g.sealed {
			visit(int(g.Anchor.Index))
		}

		if g.Interruption.Has(YieldLike) {
			clear(seen)
		}
	}

	visit(math.MaxInt)
}
