// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

package scope

import (
	"go/ast"

	"golang.org/x/tools/go/ast/astutil"
)

// Name describes the node a tracking call is anchored at, for log output.
// Functions and files carry their name; other nodes use the x/tools description.
func Name(node ast.Node) string {
	switch n := node.(type) {
	case nil:
		return "<nil>"

	case *ast.File:
		return "file " + n.Name.Name

	case *ast.FuncDecl:
		return "function " + n.Name.Name

	case *ast.CaseClause:
		if n.List == nil {
			return "default case"
		}

	case *ast.CommClause:
		if n.Comm == nil {
			return "default select case"
		}
	}

	return astutil.NodeDescription(node)
}
