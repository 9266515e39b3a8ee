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
	"go/types"
	"reflect"
	"strings"
)

// Tag is the parsed value of an `observe:"..."` struct tag.
type Tag uint8

const (
	// TagNone means the field carries no observe tag.
	TagNone Tag = iota

	// TagObserved marks a field as reactive regardless of its owner.
	TagObserved

	// TagIgnore excludes a field from tracking.
	TagIgnore

	// TagReadonly excludes a field that never changes after construction.
	TagReadonly

	// TagDerived marks a field computed from other state; it is always tracked.
	TagDerived
)

const tagKey = "observe"

// ParseTag extracts the observe option from a raw struct tag.
func ParseTag(structTag string) Tag {
	value, ok := reflect.StructTag(structTag).Lookup(tagKey)
	if !ok {
		return TagNone
	}

	option, _, _ := strings.Cut(value, ",")
	switch strings.TrimSpace(option) {
	case "observed":
		return TagObserved

	case "-":
		return TagIgnore

	case "readonly":
		return TagReadonly

	case "derived":
		return TagDerived

	default:
		return TagNone
	}
}

// SelectionTag returns the struct tag of the field a selection resolves to, following embedded fields.
func SelectionTag(sel *types.Selection) Tag {
	if sel == nil || sel.Kind() != types.FieldVal {
		return TagNone
	}

	t := sel.Recv()
	path := sel.Index()

	for i, idx := range path {
		st := structOf(t)
		if st == nil || idx >= st.NumFields() {
			return TagNone
		}

		if i == len(path)-1 {
			return ParseTag(st.Tag(idx))
		}

		t = st.Field(idx).Type()
	}

	return TagNone
}

func structOf(t types.Type) *types.Struct {
	if ptr, ok := types.Unalias(t).Underlying().(*types.Pointer); ok {
		t = ptr.Elem()
	}

	st, _ := t.Underlying().(*types.Struct)

	return st
}
