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
	"slices"
	"strings"
)

// markUnstable flags items whose base is reassigned after the read, or within a loop around it.
// Their tracking calls cannot be moved or merged and must be emitted with the value read.
func (b *Builder) markUnstable() {
	if len(b.writes) == 0 {
		return
	}

	for s := range b.root.SelfFirst() {
		for _, g := range s.Capturer.captured {
			for _, it := range g.Items {
				it.Unstable = b.unstable(it)
			}
		}
	}
}

func (b *Builder) unstable(it *Item) bool {
	base := b.hasher.Hash(it.Base)
	fn := it.Origin.fn
	read := it.Node.Pos()

	for _, w := range b.writes {
		if w.fn != fn {
			continue
		}

		if !overwrites(w.name, base.Name) && (w.v == nil || !slices.Contains(base.Vars, w.v)) {
			continue
		}

		if w.pos > read || b.sameLoop(fn, read, w.pos) {
			return true
		}
	}

	return false
}

// overwrites reports whether assigning the path named w changes the value named base.
func overwrites(w, base string) bool {
	if !strings.HasPrefix(base, w) {
		return false
	}

	if len(base) == len(w) {
		return true
	}

	switch base[len(w)] {
	case '.', '[':
		return true

	default:
		return false
	}
}

// sameLoop reports whether a loop inside fn contains both positions.
func (b *Builder) sameLoop(fn *Scope, p, q token.Pos) bool {
	fnNode := fn.Node()

	return slices.ContainsFunc(b.loops, func(l ast.Node) bool {
		return fnNode.Pos() <= l.Pos() && l.End() <= fnNode.End() &&
			contains(l, p) && contains(l, q)
	})
}

func contains(n ast.Node, p token.Pos) bool {
	return n.Pos() <= p && p < n.End()
}
