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

package config

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrBadPattern is returned for malformed exclude globs.
var ErrBadPattern = errors.New("bad exclude pattern")

// Excludes is a list of doublestar globs for files that are not instrumented.
type Excludes []string

// NewExcludes validates the given patterns.
func NewExcludes(patterns ...string) (Excludes, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, p)
		}
	}

	return Excludes(patterns), nil
}

// Match reports whether a file name matches any pattern, either in full or by its base name.
func (e Excludes) Match(filename string) bool {
	name := filepath.ToSlash(filename)
	base := path.Base(name)

	for _, p := range e {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}

		if ok, _ := doublestar.Match(p, base); ok {
			return true
		}
	}

	return false
}
