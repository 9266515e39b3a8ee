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

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/observetrack/internal/reachability/tracker"
)

// Classify returns the roles of a scope started by the node at c, and the interruptions it causes.
// Empty roles mean the node does not start a scope.
func (st *CompilationState) Classify(c inspector.Cursor) (Roles, Interruption) {
	var (
		roles Roles
		flow  Interruption
	)

	switch n := c.Node().(type) {
	case *ast.File:
		roles = roles.With(SourceRoot)

	case *ast.FuncDecl:
		if n.Body != nil {
			roles = roles.With(FunctionLike)
			if n.Recv != nil {
				roles = roles.With(ObjectBody)
			}
		}

	case *ast.FuncLit:
		roles = roles.With(FunctionLike)
		if st.instantlyInvoked(c) {
			roles = roles.With(InstantlyInvokedFunction)
		}

	case *ast.IfStmt:
		roles = roles.With(Conditional)

	case *ast.BinaryExpr:
		if n.Op == token.LAND || n.Op == token.LOR {
			roles = roles.With(Conditional)
		}

	case *ast.SwitchStmt, *ast.TypeSwitchStmt:
		roles = roles.With(Switch)

	case *ast.SelectStmt:
		roles = roles.With(Switch)
		flow = YieldLike

	case *ast.CaseClause, *ast.CommClause:
		roles = roles.With(Case)

	case *ast.ForStmt, *ast.RangeStmt:
		roles = roles.With(Loop)

	case *ast.ReturnStmt:
		if len(n.Results) > 0 {
			roles = roles.With(FlowInterruption)
			flow = Return
		}

	case *ast.CallExpr:
		switch st.flow.Flow(n) {
		case tracker.Exits:
			roles = roles.With(FlowInterruption)
			flow = Return

		case tracker.Yields:
			roles = roles.With(FlowInterruption)
			flow = YieldLike
		}

	case *ast.UnaryExpr:
		if n.Op == token.ARROW {
			roles = roles.With(FlowInterruption)
			flow = YieldLike
		}

	case *ast.SendStmt:
		roles = roles.With(FlowInterruption)
		flow = YieldLike
	}

	return roles | edgeRoles(c), flow
}

// edgeRoles returns the roles a node takes from its position in the parent.
func edgeRoles(c inspector.Cursor) Roles {
	var roles Roles

	switch kind, _ := c.ParentEdge(); kind {
	case edge.IfStmt_Init, edge.IfStmt_Cond:
		roles = roles.With(ConditionalCondition)

	case edge.IfStmt_Body, edge.IfStmt_Else:
		roles = roles.With(ConditionalBranch)

	case edge.BinaryExpr_X:
		if isLogical(c.Parent().Node()) {
			roles = roles.With(ConditionalCondition)
		}

	case edge.BinaryExpr_Y:
		if isLogical(c.Parent().Node()) {
			roles = roles.With(ConditionalBranch)
		}

	case edge.SwitchStmt_Init, edge.SwitchStmt_Tag, edge.TypeSwitchStmt_Init, edge.TypeSwitchStmt_Assign:
		roles = roles.With(SwitchCondition)

	case edge.CaseClause_List:
		// clause -> body -> switch
		if _, ok := c.Parent().Parent().Parent().Node().(*ast.SwitchStmt); ok {
			roles = roles.With(CaseCondition)
		}

	case edge.CommClause_Comm:
		roles = roles.With(CaseCondition)

	case edge.ForStmt_Init:
		roles = roles.With(LoopInitializer)

	case edge.ForStmt_Cond:
		roles = roles.With(LoopCondition)

	case edge.ForStmt_Post:
		roles = roles.With(LoopIncrement)

	case edge.RangeStmt_X:
		roles = roles.With(LoopSource)

	case edge.ForStmt_Body, edge.RangeStmt_Body:
		roles = roles.With(LoopBody)
	}

	return roles
}

func isLogical(n ast.Node) bool {
	b, ok := n.(*ast.BinaryExpr)

	return ok && (b.Op == token.LAND || b.Op == token.LOR)
}

// instantlyInvoked reports whether a function literal runs before the enclosing statement completes:
// called in place (but not by go or defer), or passed as callback to a well-known collection function.
func (st *CompilationState) instantlyInvoked(c inspector.Cursor) bool {
	lit := c.Node().(*ast.FuncLit)

	for {
		kind, _ := c.ParentEdge()
		switch kind {
		case edge.ParenExpr_X:
			c = c.Parent()
			continue

		case edge.CallExpr_Fun:
			switch call, _ := c.Parent().ParentEdge(); call {
			case edge.GoStmt_Call, edge.DeferStmt_Call:
				return false

			default:
				return true
			}

		case edge.CallExpr_Args:
			cb, _, ok := st.classifier.Resolver().Callback(c.Parent().Node().(*ast.CallExpr))

			return ok && cb == lit

		default:
			return false
		}
	}
}

// bareBlock reports whether c is a block statement standing alone in a statement list.
func bareBlock(c inspector.Cursor) bool {
	if _, ok := c.Node().(*ast.BlockStmt); !ok {
		return false
	}

	switch kind, _ := c.ParentEdge(); kind {
	case edge.BlockStmt_List, edge.CaseClause_Body, edge.CommClause_Body, edge.LabeledStmt_Stmt:
		return true

	default:
		return false
	}
}
