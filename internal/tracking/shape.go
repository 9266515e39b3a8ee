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
)

// Shape is the syntactic form of the node wrapping a tracking scope.
type Shape uint8

//go:generate go tool stringer -type Shape -trimprefix Shape
const (
	ShapeFile       Shape = iota // *ast.File
	ShapeFuncDecl                // *ast.FuncDecl
	ShapeFuncLit                 // *ast.FuncLit
	ShapeIf                      // *ast.IfStmt
	ShapeLogical                 // *ast.BinaryExpr with && or ||
	ShapeSwitch                  // *ast.SwitchStmt
	ShapeTypeSwitch              // *ast.TypeSwitchStmt
	ShapeSelect                  // *ast.SelectStmt
	ShapeClause                  // *ast.CaseClause or *ast.CommClause
	ShapeFor                     // *ast.ForStmt
	ShapeRange                   // *ast.RangeStmt
	ShapeBlock                   // *ast.BlockStmt
	ShapeStmts                   // statement range of a content range
	ShapeExpr                    // any other expression
	ShapeStmt                    // any other statement
	ShapeReturn                  // *ast.ReturnStmt
	ShapeCall                    // *ast.CallExpr
	ShapeReceive                 // *ast.UnaryExpr with <-
	ShapeSend                    // *ast.SendStmt
)

// shapeOf computes the shape of a node.
func shapeOf(n ast.Node) Shape {
	switch n := n.(type) {
	case *ast.File:
		return ShapeFile

	case *ast.FuncDecl:
		return ShapeFuncDecl

	case *ast.FuncLit:
		return ShapeFuncLit

	case *ast.IfStmt:
		return ShapeIf

	case *ast.BinaryExpr:
		if n.Op == token.LAND || n.Op == token.LOR {
			return ShapeLogical
		}

		return ShapeExpr

	case *ast.SwitchStmt:
		return ShapeSwitch

	case *ast.TypeSwitchStmt:
		return ShapeTypeSwitch

	case *ast.SelectStmt:
		return ShapeSelect

	case *ast.CaseClause, *ast.CommClause:
		return ShapeClause

	case *ast.ForStmt:
		return ShapeFor

	case *ast.RangeStmt:
		return ShapeRange

	case *ast.BlockStmt:
		return ShapeBlock

	case *ast.ReturnStmt:
		return ShapeReturn

	case *ast.CallExpr:
		return ShapeCall

	case *ast.UnaryExpr:
		if n.Op == token.ARROW {
			return ShapeReceive
		}

		return ShapeExpr

	case *ast.SendStmt:
		return ShapeSend

	case ast.Stmt:
		return ShapeStmt

	default:
		return ShapeExpr
	}
}

// holdsStatements reports whether new statements can be appended inside the node.
func (s Shape) holdsStatements() bool {
	switch s {
	case ShapeFile, ShapeBlock, ShapeClause:
		return true

	case ShapeFuncDecl, ShapeFuncLit, ShapeIf, ShapeLogical, ShapeSwitch, ShapeTypeSwitch, ShapeSelect,
		ShapeFor, ShapeRange, ShapeStmts, ShapeExpr, ShapeStmt, ShapeReturn, ShapeCall, ShapeReceive, ShapeSend:
		return false

	default:
		return false
	}
}
