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

package usage

import "go/types"

// Mask indicates how a field is accessed.
type Mask uint8

const (
	// Get indicates the field is read.
	Get Mask = 1 << iota

	// Set indicates the field is written.
	Set

	// None indicates the field is never accessed.
	None Mask = 0

	// GetSet represents a combination of [Get] and [Set].
	GetSet = Get | Set
)

// Read indicates the field is read.
func (m Mask) Read() bool {
	return m&Get != 0
}

// Written indicates the field is written.
func (m Mask) Written() bool {
	return m&Set != 0
}

// Both indicates the field is read and written.
func (m Mask) Both() bool {
	return m&GetSet == GetSet
}

// Census is the package-wide access summary of private fields of reactive types.
type Census struct {
	fields map[*types.Var]Mask
}

// Private reports whether field is an unexported field of a reactive type declared in this package.
func (c Census) Private(field *types.Var) bool {
	_, ok := c.fields[field]

	return ok
}

// Mask returns how a private field is accessed throughout the package.
func (c Census) Mask(field *types.Var) Mask {
	return c.fields[field]
}
