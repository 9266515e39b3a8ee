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

import "fillmore-labs.com/observetrack/internal/observe"

// dropPrivate removes captures of unexported fields that the package only reads or only writes.
// Nothing outside the package can observe such a field, so tracking it has no effect.
func (st *CompilationState) dropPrivate(root *Scope) {
	for s := range root.SelfFirst() {
		for _, g := range s.Capturer.captured {
			var unused []*Item

			for _, it := range g.Items {
				if st.privateOnly(it) {
					unused = append(unused, it)
				}
			}

			g.remove(unused)
		}
	}
}

func (st *CompilationState) privateOnly(it *Item) bool {
	if it.Field == nil || it.Tag == observe.TagDerived || !st.census.Private(it.Field) {
		return false
	}

	return !st.census.Mask(it.Field).Both()
}
