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

package tracker

import (
	"go/ast"
	"go/types"
)

// Flow describes what happens to the caller when a call is made.
type Flow uint8

const (
	// Continues is a call that returns normally.
	Continues Flow = iota

	// Exits is a call that never returns, like panic or os.Exit.
	Exits

	// Yields is a call that may let other code run and mutate state before it returns.
	Yields
)

func (f Flow) String() string {
	switch f {
	case Continues:
		return "continues"

	case Exits:
		return "exits"

	case Yields:
		return "yields"

	default:
		return "unknown"
	}
}

// yieldName is the conventional name of the iterator callback parameter.
const yieldName = "yield"

var builtinPanic = types.Universe.Lookup("panic").(*types.Builtin)

// Tracker classifies calls by their effect on the control flow of the caller.
type Tracker struct {
	info *types.Info
}

// New creates a [Tracker] resolving callees with info.
func New(info *types.Info) Tracker {
	return Tracker{info: info}
}

// Flow classifies a call. Statically known functions are looked up by name, the builtin panic exits
// and calling a local function variable named yield hands control to the loop body of an iterator.
func (t Tracker) Flow(n *ast.CallExpr) Flow {
	id := Callee(n)
	if id == nil {
		return Continues
	}

	switch use := t.info.Uses[id].(type) {
	case *types.Func:
		return Lookup(FuncNameOf(use))

	case *types.Builtin:
		if use == builtinPanic {
			return Exits
		}

	case *types.Var:
		if use.Name() == yieldName && isLocalFunc(use) {
			return Yields
		}
	}

	return Continues
}

func isLocalFunc(v *types.Var) bool {
	if v.IsField() || v.Parent() == nil || v.Pkg() == nil || v.Parent() == v.Pkg().Scope() {
		return false
	}

	_, ok := v.Type().Underlying().(*types.Signature)

	return ok
}
