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

import "golang.org/x/tools/go/ast/inspector"

// NodeIndex locates a node in the traversal order of an [inspector.Inspector].
// Tracking scopes and anchors store it instead of a cursor, so a later pass can
// find the node again in the same inspector.
type NodeIndex int32

// NodeIndexOf returns the position of c in traversal order.
func NodeIndexOf(c inspector.Cursor) NodeIndex {
	return NodeIndex(c.Index())
}

// Valid reports whether n refers to a node. The virtual root has a negative index.
func (n NodeIndex) Valid() bool {
	return n >= 0
}

// Cursor returns the cursor at n in the inspector n was taken from.
func (n NodeIndex) Cursor(in *inspector.Inspector) inspector.Cursor {
	return in.At(int32(n))
}
