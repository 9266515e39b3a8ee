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

import "strings"

// Interruption is a set of ways control can leave or suspend a statement sequence.
type Interruption uint8

const (
	// Return leaves the function: return, calls that never return, labeled branches.
	Return Interruption = 1 << iota

	// BreakLike leaves the innermost loop or switch: unlabeled break, continue and fallthrough.
	BreakLike

	// YieldLike suspends the goroutine: channel operations, select and blocking waits.
	YieldLike

	// NoInterruption means control continues with the next statement.
	NoInterruption Interruption = 0
)

// Has reports whether any of other is set.
func (i Interruption) Has(other Interruption) bool {
	return i&other != 0
}

func (i Interruption) String() string {
	if i == NoInterruption {
		return "none"
	}

	var parts []string
	if i.Has(Return) {
		parts = append(parts, "return")
	}

	if i.Has(BreakLike) {
		parts = append(parts, "break")
	}

	if i.Has(YieldLike) {
		parts = append(parts, "yield")
	}

	return strings.Join(parts, "|")
}
