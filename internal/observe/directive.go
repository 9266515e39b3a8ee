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
	"strings"
)

const directivePrefix = "//observetrack:"

// Directive names recognized in doc comments.
const (
	DirectiveObserved = "observed"
	DirectiveEffect   = "effect"
)

// HasDirective reports whether any of the comment groups contains the directive //observetrack:<name>.
func HasDirective(name string, docs ...*ast.CommentGroup) bool {
	for _, doc := range docs {
		if doc == nil {
			continue
		}

		for _, c := range doc.List {
			text, ok := strings.CutPrefix(c.Text, directivePrefix)
			if !ok {
				continue
			}

			if directive, _, _ := strings.Cut(text, " "); directive == name {
				return true
			}
		}
	}

	return false
}
