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

// Role is a control flow facet of a tracking scope.
type Role uint8

//go:generate go tool stringer -type Role
const (
	// SourceRoot is the scope of a whole file.
	SourceRoot Role = iota

	// ObjectBody is a method; its receiver is visible to nested functions.
	ObjectBody

	// FunctionLike is a function declaration or literal.
	FunctionLike

	// InstantlyInvokedFunction is a function literal that runs before the enclosing statement completes.
	InstantlyInvokedFunction

	// Conditional is an if statement or a short-circuit operator.
	Conditional

	// ConditionalCondition is evaluated whenever its conditional is.
	ConditionalCondition

	// ConditionalBranch may not execute.
	ConditionalBranch

	// Switch is a switch, type switch or select statement.
	Switch

	// SwitchCondition is the init statement, tag or type guard of a switch.
	SwitchCondition

	// Case is a case clause.
	Case

	// CaseCondition is a case expression or select communication.
	CaseCondition

	// CaseBody is the statement list of a case clause.
	CaseBody

	// ContentRange is a pre-registered sequence of statements.
	ContentRange

	// Loop is a for or range statement.
	Loop

	// LoopInitializer is the init statement of a for loop.
	LoopInitializer

	// LoopCondition is the condition of a for loop.
	LoopCondition

	// LoopIncrement is the post statement of a for loop.
	LoopIncrement

	// LoopSource is the ranged expression of a range loop.
	LoopSource

	// LoopBody is the body of a loop.
	LoopBody

	// FlowInterruption leaves the current statement sequence or suspends it.
	FlowInterruption

	numRoles
)

// Roles is a set of [Role] values.
type Roles uint32

// RolesOf creates a set from the given roles.
func RolesOf(roles ...Role) Roles {
	var r Roles
	for _, role := range roles {
		r = r.With(role)
	}

	return r
}

// With returns the set with role added.
func (r Roles) With(role Role) Roles {
	return r | 1<<role
}

// Has reports whether role is in the set.
func (r Roles) Has(role Role) bool {
	return r&(1<<role) != 0
}

// Any reports whether both sets intersect.
func (r Roles) Any(other Roles) bool {
	return r&other != 0
}

// Empty reports whether the set has no roles.
func (r Roles) Empty() bool {
	return r == 0
}

func (r Roles) String() string {
	if r == 0 {
		return "none"
	}

	var b strings.Builder
	for role := range numRoles {
		if !r.Has(role) {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte('|')
		}

		b.WriteString(role.String())
	}

	return b.String()
}
