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

package observe

import (
	"go/ast"
	"go/types"

	"fillmore-labs.com/observetrack/internal/reachability/tracker"
)

// Effect is what a call does to the elements of a collection argument.
type Effect uint8

const (
	// ReadsElements means the call inspects the elements.
	ReadsElements Effect = iota + 1

	// WritesElements means the call mutates the elements in place.
	WritesElements
)

// ArgEffect pairs an argument position with its effect.
type ArgEffect struct {
	Arg    int
	Effect Effect
}

// CallInfo describes a well-known call operating on collections.
type CallInfo struct {
	Effects []ArgEffect

	// Callback is the argument position of a function invoked synchronously on the elements, or -1.
	Callback int
}

func reads(args ...int) []ArgEffect {
	e := make([]ArgEffect, 0, len(args))
	for _, a := range args {
		e = append(e, ArgEffect{Arg: a, Effect: ReadsElements})
	}

	return e
}

func writes(arg int, readArgs ...int) []ArgEffect {
	return append([]ArgEffect{{Arg: arg, Effect: WritesElements}}, reads(readArgs...)...)
}

var _builtinCalls = map[string]CallInfo{
	"len":    {Effects: reads(0), Callback: -1},
	"cap":    {Effects: reads(0), Callback: -1},
	"delete": {Effects: writes(0), Callback: -1},
	"clear":  {Effects: writes(0), Callback: -1},
	"copy":   {Effects: writes(0, 1), Callback: -1},
}

var _collectionCalls = map[tracker.FuncName]CallInfo{
	{Path: "slices", Name: "Sort"}:             {Effects: writes(0), Callback: -1},
	{Path: "slices", Name: "SortFunc"}:         {Effects: writes(0), Callback: 1},
	{Path: "slices", Name: "SortStableFunc"}:   {Effects: writes(0), Callback: 1},
	{Path: "slices", Name: "Reverse"}:          {Effects: writes(0), Callback: -1},
	{Path: "slices", Name: "Delete"}:           {Effects: writes(0), Callback: -1},
	{Path: "slices", Name: "DeleteFunc"}:       {Effects: writes(0), Callback: 1},
	{Path: "slices", Name: "Insert"}:           {Effects: writes(0), Callback: -1},
	{Path: "slices", Name: "Replace"}:          {Effects: writes(0), Callback: -1},
	{Path: "slices", Name: "Compact"}:          {Effects: writes(0), Callback: -1},
	{Path: "slices", Name: "CompactFunc"}:      {Effects: writes(0), Callback: 1},
	{Path: "slices", Name: "Contains"}:         {Effects: reads(0), Callback: -1},
	{Path: "slices", Name: "ContainsFunc"}:     {Effects: reads(0), Callback: 1},
	{Path: "slices", Name: "Index"}:            {Effects: reads(0), Callback: -1},
	{Path: "slices", Name: "IndexFunc"}:        {Effects: reads(0), Callback: 1},
	{Path: "slices", Name: "Equal"}:            {Effects: reads(0, 1), Callback: -1},
	{Path: "slices", Name: "Max"}:              {Effects: reads(0), Callback: -1},
	{Path: "slices", Name: "MaxFunc"}:          {Effects: reads(0), Callback: 1},
	{Path: "slices", Name: "Min"}:              {Effects: reads(0), Callback: -1},
	{Path: "slices", Name: "MinFunc"}:          {Effects: reads(0), Callback: 1},
	{Path: "slices", Name: "Clone"}:            {Effects: reads(0), Callback: -1},
	{Path: "slices", Name: "IsSorted"}:         {Effects: reads(0), Callback: -1},
	{Path: "slices", Name: "IsSortedFunc"}:     {Effects: reads(0), Callback: 1},
	{Path: "slices", Name: "BinarySearch"}:     {Effects: reads(0), Callback: -1},
	{Path: "slices", Name: "BinarySearchFunc"}: {Effects: reads(0), Callback: 2},
	{Path: "slices", Name: "All"}:              {Effects: reads(0), Callback: -1},
	{Path: "slices", Name: "Values"}:           {Effects: reads(0), Callback: -1},
	{Path: "slices", Name: "Backward"}:         {Effects: reads(0), Callback: -1},

	{Path: "maps", Name: "Copy"}:       {Effects: writes(0, 1), Callback: -1},
	{Path: "maps", Name: "DeleteFunc"}: {Effects: writes(0), Callback: 1},
	{Path: "maps", Name: "Clone"}:      {Effects: reads(0), Callback: -1},
	{Path: "maps", Name: "Equal"}:      {Effects: reads(0, 1), Callback: -1},
	{Path: "maps", Name: "Keys"}:       {Effects: reads(0), Callback: -1},
	{Path: "maps", Name: "Values"}:     {Effects: reads(0), Callback: -1},
	{Path: "maps", Name: "All"}:        {Effects: reads(0), Callback: -1},

	{Path: "sort", Name: "Slice"}:         {Effects: writes(0), Callback: 1},
	{Path: "sort", Name: "SliceStable"}:   {Effects: writes(0), Callback: 1},
	{Path: "sort", Name: "SliceIsSorted"}: {Effects: reads(0), Callback: 1},
	{Path: "sort", Name: "Ints"}:          {Effects: writes(0), Callback: -1},
	{Path: "sort", Name: "Strings"}:       {Effects: writes(0), Callback: -1},
	{Path: "sort", Name: "Float64s"}:      {Effects: writes(0), Callback: -1},
}

// Call looks up a builtin or standard library call operating on collections.
func (r *Resolver) Call(call *ast.CallExpr) (CallInfo, bool) {
	id := tracker.Callee(call)
	if id == nil {
		return CallInfo{}, false
	}

	switch obj := r.info.Uses[id].(type) {
	case *types.Builtin:
		ci, ok := _builtinCalls[obj.Name()]

		return ci, ok

	case *types.Func:
		ci, ok := _collectionCalls[tracker.FuncNameOf(obj)]

		return ci, ok

	default:
		return CallInfo{}, false
	}
}

// Builtin returns the name of the builtin function a call invokes, or "".
func (r *Resolver) Builtin(call *ast.CallExpr) string {
	id, ok := ast.Unparen(call.Fun).(*ast.Ident)
	if !ok {
		return ""
	}

	if b, ok := r.info.Uses[id].(*types.Builtin); ok {
		return b.Name()
	}

	return ""
}

// IsConversion reports whether a call expression is a type conversion.
func (r *Resolver) IsConversion(call *ast.CallExpr) bool {
	tv, ok := r.info.Types[call.Fun]

	return ok && tv.IsType()
}

// Callback returns the function literal passed as synchronous callback to a collection call,
// together with the collection argument whose elements it receives.
func (r *Resolver) Callback(call *ast.CallExpr) (*ast.FuncLit, ast.Expr, bool) {
	ci, ok := r.Call(call)
	if !ok || ci.Callback < 0 || ci.Callback >= len(call.Args) || len(call.Args) == 0 {
		return nil, nil, false
	}

	lit, ok := ast.Unparen(call.Args[ci.Callback]).(*ast.FuncLit)
	if !ok {
		return nil, nil, false
	}

	return lit, call.Args[0], true
}
