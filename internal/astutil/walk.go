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

// Walk traverses the subtree at c in depth-first order, calling enter before and leave after the children of a node.
// When enter returns false the children are skipped and leave is not called for that node.
func Walk(c inspector.Cursor, enter func(inspector.Cursor) bool, leave func(inspector.Cursor)) {
	if !enter(c) {
		return
	}

	for child := range c.Children() {
		Walk(child, enter, leave)
	}

	leave(c)
}
