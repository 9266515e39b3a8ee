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
	"errors"
	"fmt"
	"go/ast"
)

var (
	// ErrScopeUnderflow is returned when a scope is closed that was never opened.
	ErrScopeUnderflow = errors.New("scope stack underflow")

	// ErrUnbalancedRange is returned when a content range does not end within its enclosing scope.
	ErrUnbalancedRange = errors.New("unbalanced content range")

	// ErrUnresolvedReference is returned when a reference can neither be declared nor inlined.
	ErrUnresolvedReference = errors.New("unresolved reference target")

	// ErrPlacement is returned when an item can neither be placed at a statement nor inlined.
	ErrPlacement = errors.New("no placement for tracked access")
)

// InternalError is a structural failure aborting the current file.
type InternalError struct {
	Node ast.Node
	Err  error
}

// NewInternalError wraps err with the node it occurred at.
func NewInternalError(n ast.Node, err error) *InternalError {
	return &InternalError{Node: n, Err: err}
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%v at %T", e.Err, e.Node)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}
