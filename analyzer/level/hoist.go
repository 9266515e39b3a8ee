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

// Hoist specifies how captures of loop bodies and callbacks are treated.
type Hoist uint8

const (
	// HoistEager moves tracking calls out of loop bodies and callbacks, even when the body might never run.
	HoistEager Hoist = iota

	// HoistLazy keeps tracking calls inside loop bodies and callbacks.
	HoistLazy
)

// MarshalText implements [encoding.TextMarshaler].
func (h Hoist) MarshalText() ([]byte, error) {
	switch h {
	case HoistEager:
		return []byte("eager"), nil

	case HoistLazy:
		return []byte("lazy"), nil

	default:
		return nil, fmt.Errorf("unknown hoist level %d", h)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (h *Hoist) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "eager", "on", "true":
		*h = HoistEager

	case "lazy", "off", "false":
		*h = HoistLazy

	default:
		return fmt.Errorf("unknown hoist level %q", string(text))
	}

	return nil
}

// String returns the textual representation.
func (h Hoist) String() string {
	b, err := h.MarshalText()
	if err != nil {
		return fmt.Sprintf("Hoist(%d)", h)
	}

	return string(b)
}

// Set implements [flag.Value].
func (h *Hoist) Set(s string) error { return h.UnmarshalText([]byte(s)) }
