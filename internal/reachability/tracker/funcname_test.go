// Copyright 2025 Oliver Eikemeier. All Rights Reserved.
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

package tracker_test

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"

	. "fillmore-labs.com/observetrack/internal/reachability/tracker"
)

func TestFuncNameOf(t *testing.T) {
	t.Parallel()

	pkg := types.NewPackage("example.com/store", "store")

	empty := types.NewStruct(nil, nil)
	named := types.NewNamed(types.NewTypeName(token.NoPos, pkg, "Todo", nil), empty, nil)
	alias := types.NewAlias(types.NewTypeName(token.NoPos, pkg, "Item", nil), types.NewPointer(named))

	fn := func(p *types.Package, recv types.Type) *types.Func {
		var r *types.Var
		if recv != nil {
			r = types.NewParam(token.NoPos, p, "", recv)
		}

		sig := types.NewSignatureType(r, nil, nil, nil, nil, false)

		return types.NewFunc(token.NoPos, p, "Done", sig)
	}

	iface := types.NewInterfaceType([]*types.Func{fn(pkg, nil)}, nil).Complete()
	errorMethod := types.Universe.Lookup("error").Type().Underlying().(*types.Interface).Method(0)

	tests := [...]struct {
		name string
		fun  *types.Func
		want FuncName
		str  string
	}{
		{"function", fn(pkg, nil), FuncName{Path: "example.com/store", Name: "Done"}, "example.com/store.Done"},
		{"value_method", fn(pkg, named), FuncName{Path: "example.com/store", Receiver: "Todo", Name: "Done"}, "(example.com/store.Todo).Done"},
		{"pointer_method", fn(pkg, types.NewPointer(named)), FuncName{Path: "example.com/store", Receiver: "Todo", Name: "Done"}, "(example.com/store.Todo).Done"},
		{"alias_method", fn(pkg, alias), FuncName{Path: "example.com/store", Receiver: "Todo", Name: "Done"}, "(example.com/store.Todo).Done"},
		{"interface_method", iface.Method(0), FuncName{Receiver: "interface", Name: "Done"}, "(interface).Done"},
		{"no_package", fn(nil, nil), FuncName{Name: "Done"}, "Done"},
		{"universe_method", errorMethod, FuncName{Receiver: "error", Name: "Error"}, "(error).Error"},
		{"unnamed_receiver", fn(pkg, empty), FuncName{Receiver: "<invalid>", Name: "Done"}, "(<invalid>).Done"},
		{"unnamed_pointer", fn(pkg, types.NewPointer(empty)), FuncName{Receiver: "<invalid>", Name: "Done"}, "(<invalid>).Done"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FuncNameOf(tt.fun)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.str, got.String())
		})
	}
}
