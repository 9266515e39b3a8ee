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
	"go/ast"

	"fillmore-labs.com/observetrack/internal/astutil"
	"fillmore-labs.com/observetrack/internal/reachability/tracker"
)

// terminating returns a check for statements that never complete normally.
// Statements appended to a list go in front of a terminating last statement.
func terminating(flow tracker.Tracker) astutil.Terminates {
	var terminates func(ast.Stmt) bool

	clauses := func(body *ast.BlockStmt, needDefault bool) bool {
		hasDefault := false

		for _, stmt := range body.List {
			var list []ast.Stmt

			switch clause := stmt.(type) {
			case *ast.CaseClause:
				list = clause.Body
				hasDefault = hasDefault || clause.List == nil

			case *ast.CommClause:
				list = clause.Body
				hasDefault = hasDefault || clause.Comm == nil
			}

			if len(list) == 0 || !terminates(list[len(list)-1]) {
				return false
			}
		}

		return hasDefault || !needDefault
	}

	terminates = func(stmt ast.Stmt) bool {
		switch n := stmt.(type) {
		case *ast.ReturnStmt, *ast.BranchStmt:
			return true

		case *ast.ExprStmt:
			call, ok := ast.Unparen(n.X).(*ast.CallExpr)

			return ok && flow.Flow(call) == tracker.Exits

		case *ast.BlockStmt:
			return len(n.List) > 0 && terminates(n.List[len(n.List)-1])

		case *ast.LabeledStmt:
			return terminates(n.Stmt)

		case *ast.IfStmt:
			return n.Else != nil && terminates(n.Body) && terminates(n.Else)

		case *ast.ForStmt:
			// loops without condition count even when they break
			return n.Cond == nil

		case *ast.SwitchStmt:
			return clauses(n.Body, true)

		case *ast.TypeSwitchStmt:
			return clauses(n.Body, true)

		case *ast.SelectStmt:
			return clauses(n.Body, false)

		default:
			return false
		}
	}

	return terminates
}
