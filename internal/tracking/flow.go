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

	"golang.org/x/tools/go/ast/inspector"
)

// escaping returns the interruptions of a child that reach its parent.
func escaping(child *Scope) Interruption {
	switch {
	case child.nonInstantFunction():
		return NoInterruption

	case child.Roles.Has(InstantlyInvokedFunction):
		return child.flow & YieldLike

	case child.Roles.Has(Loop):
		return child.flow &^ BreakLike

	default:
		return child.flow
	}
}

// leaveChild merges the interruptions of a closed child into its parent and splits the parent's
// captures at the child, so that hoisted items land directly before it.
func (b *Builder) leaveChild(parent, child *Scope) {
	flow := escaping(child)
	parent.flow |= flow

	switch {
	case flow != NoInterruption, child.Roles.Has(FlowInterruption):
		parent.Capturer.BreakCaptured(child.Cursor, flow)

	case child.Roles.Any(RolesOf(Conditional, Switch, Loop, InstantlyInvokedFunction)):
		parent.Capturer.BreakCaptured(child.Cursor, NoInterruption)
	}
}

// interrupt splits the current scope before a statement leaving it.
func (b *Builder) interrupt(c inspector.Cursor, s *Scope, i Interruption) {
	s.flow |= i
	s.Capturer.BreakCaptured(c, i)
}

// branchInterruption classifies a branch statement.
func branchInterruption(n *ast.BranchStmt) Interruption {
	if n.Label != nil {
		return Return
	}

	return BreakLike
}
