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

// EliminateRepeated runs repetitive elimination on a function scope.
func (st *CompilationState) EliminateRepeated(s *Scope) {
	st.eliminate(s, make(map[string]struct{}))
}

// SetKind overrides the capture kind of a scope.
func (s *Scope) SetKind(k Kind) {
	s.Capturer.kind = k
}

// AddKind records a capture of kind k in a scope.
func (s *Scope) AddKind(k Kind) {
	s.Capturer.addKind(k)
}
