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

package level

import (
	"fmt"
	"strings"
)

// Residual specifies where loop condition and increment captures go when they depend on loop variables.
type Residual uint8

const (
	// ResidualInline leaves them at the access.
	ResidualInline Residual = iota

	// ResidualBody moves them to the start of the loop body.
	ResidualBody
)

// MarshalText implements [encoding.TextMarshaler].
func (r Residual) MarshalText() ([]byte, error) {
	switch r {
	case ResidualInline:
		return []byte("inline"), nil

	case ResidualBody:
		return []byte("body"), nil

	default:
		return nil, fmt.Errorf("unknown residual level %d", r)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (r *Residual) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "inline":
		*r = ResidualInline

	case "body":
		*r = ResidualBody

	default:
		return fmt.Errorf("unknown residual level %q", string(text))
	}

	return nil
}

// String returns the textual representation.
func (r Residual) String() string {
	b, err := r.MarshalText()
	if err != nil {
		return fmt.Sprintf("Residual(%d)", r)
	}

	return string(b)
}

// Set implements [flag.Value].
func (r *Residual) Set(s string) error { return r.UnmarshalText([]byte(s)) }
