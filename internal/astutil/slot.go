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

package astutil

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"
)

// Slot is a place in a statement list where new statements can be inserted.
type Slot struct {
	// Pos is where the statements go.
	Pos token.Pos

	// Next is the statement following the insertion, nil when appending to the list.
	Next ast.Stmt

	// Prev is the statement preceding an append, nil for an empty list or when inserting before Next.
	Prev ast.Stmt

	// List is the *ast.BlockStmt, *ast.CaseClause or *ast.CommClause holding the statements.
	List ast.Node

	// ElseIf is set when Next is the if statement of an else branch, which needs a block to hold statements.
	ElseIf bool
}

// Valid reports whether the slot has a position.
func (s Slot) Valid() bool {
	return s.Pos.IsValid()
}

// Precedes reports whether statements at s run before statements at o within the same list.
func (s Slot) Precedes(o Slot) bool {
	return s.Pos < o.Pos || s.Pos == o.Pos && s.Next != nil && o.Next == nil
}

// Terminates reports whether a statement never completes normally.
type Terminates func(ast.Stmt) bool

// SlotBefore finds where statements run right before the node at c is evaluated.
// It climbs from expressions that are always evaluated with their parent up to a statement of a list.
func SlotBefore(c inspector.Cursor) (Slot, bool) {
	for {
		kind, _ := c.ParentEdge()
		switch kind {
		case edge.BlockStmt_List, edge.CaseClause_Body, edge.CommClause_Body:
			return Slot{Pos: c.Node().Pos(), Next: c.Node().(ast.Stmt), List: c.Parent().Node()}, true

		case edge.IfStmt_Else:
			if n, ok := c.Node().(*ast.IfStmt); ok {
				return Slot{Pos: n.Pos(), Next: n, List: c.Parent().Node(), ElseIf: true}, true
			}

			return Slot{}, false

		case edge.LabeledStmt_Stmt:
			c = c.Parent()

		default:
			if !evaluatedWithParent(kind, c) {
				return Slot{}, false
			}

			c = c.Parent()
		}
	}
}

// SlotAfter finds where statements run right after the statement at c completes.
func SlotAfter(c inspector.Cursor, terminates Terminates) (Slot, bool) {
	kind, _ := c.ParentEdge()
	switch kind {
	case edge.BlockStmt_List, edge.CaseClause_Body, edge.CommClause_Body:
	default:
		return Slot{}, false
	}

	if next, ok := c.NextSibling(); ok {
		return Slot{Pos: next.Node().Pos(), Next: next.Node().(ast.Stmt), List: c.Parent().Node()}, true
	}

	return SlotAppend(c.Parent(), terminates)
}

// SlotAppend finds where statements run at the end of a block or clause, before a final terminating statement.
func SlotAppend(c inspector.Cursor, terminates Terminates) (Slot, bool) {
	var (
		list  []ast.Stmt
		start token.Pos
	)

	switch n := c.Node().(type) {
	case *ast.BlockStmt:
		list, start = n.List, n.Lbrace+1

	case *ast.CaseClause:
		list, start = n.Body, n.Colon+1

	case *ast.CommClause:
		list, start = n.Body, n.Colon+1

	default:
		return Slot{}, false
	}

	if len(list) == 0 {
		return Slot{Pos: start, List: c.Node()}, true
	}

	last := list[len(list)-1]
	if terminates != nil && terminates(last) {
		return Slot{Pos: last.Pos(), Next: last, List: c.Node()}, true
	}

	return Slot{Pos: last.End(), Prev: last, List: c.Node()}, true
}

// evaluatedWithParent reports whether the node at c is evaluated exactly once whenever its parent is,
// before the parent completes.
func evaluatedWithParent(kind edge.Kind, c inspector.Cursor) bool {
	switch kind {
	case edge.ExprStmt_X,
		edge.AssignStmt_Lhs, edge.AssignStmt_Rhs,
		edge.IncDecStmt_X,
		edge.SendStmt_Chan, edge.SendStmt_Value,
		edge.ReturnStmt_Results,
		edge.GoStmt_Call, edge.DeferStmt_Call,
		edge.DeclStmt_Decl, edge.GenDecl_Specs, edge.ValueSpec_Values,
		edge.IfStmt_Init, edge.IfStmt_Cond,
		edge.SwitchStmt_Init, edge.SwitchStmt_Tag,
		edge.TypeSwitchStmt_Init, edge.TypeSwitchStmt_Assign,
		edge.ForStmt_Init, edge.RangeStmt_X,
		edge.CallExpr_Fun, edge.CallExpr_Args,
		edge.SelectorExpr_X,
		edge.IndexExpr_X, edge.IndexExpr_Index,
		edge.IndexListExpr_X, edge.IndexListExpr_Indices,
		edge.SliceExpr_X, edge.SliceExpr_Low, edge.SliceExpr_High, edge.SliceExpr_Max,
		edge.StarExpr_X, edge.UnaryExpr_X, edge.ParenExpr_X, edge.TypeAssertExpr_X,
		edge.CompositeLit_Elts, edge.KeyValueExpr_Key, edge.KeyValueExpr_Value,
		edge.BinaryExpr_X:
		return true

	case edge.BinaryExpr_Y:
		op := c.Parent().Node().(*ast.BinaryExpr).Op

		return op != token.LAND && op != token.LOR

	default:
		return false
	}
}
