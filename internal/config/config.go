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
	"go/token"
	"path"
	"regexp"
	"strings"
	"unicode"
)

// Behavior represents switchable behavior of the instrumentation pass.
type Behavior uint8

const (
	// IncludeGenerated specifies whether generated files are instrumented.
	IncludeGenerated Behavior = 1 << iota

	// Conservative keeps accesses that may panic inside code that might not execute.
	Conservative
)

// DefaultBehavior returns the flags enabled by default.
func DefaultBehavior() BitMask[Behavior] {
	return NewBitMask(Conservative)
}

// Defaults of the runtime call surface and the reactive markers.
const (
	DefaultRuntimePath   = "fillmore-labs.com/observetrack/track"
	DefaultRuntimeName   = "track"
	DefaultMarker        = "Observed"
	DefaultExcludePrefix = "_"
)

// Runtime names the package providing the tracking functions.
type Runtime struct {
	Path string // import path
	Name string // preferred package name
}

// DefaultRuntime returns the bundled runtime package.
func DefaultRuntime() Runtime {
	return Runtime{Path: DefaultRuntimePath, Name: DefaultRuntimeName}
}

// NewRuntime names a runtime by import path, guessing its package name from the last path element.
func NewRuntime(path string) Runtime {
	return Runtime{Path: path, Name: guessName(path)}
}

// Valid reports whether both path and name are set.
func (r Runtime) Valid() bool {
	return r.Path != "" && token.IsIdentifier(r.Name)
}

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

func guessName(importPath string) string {
	dir, name := path.Split(importPath)
	if majorVersion.MatchString(name) && dir != "" {
		name = path.Base(dir)
	}

	name = strings.TrimPrefix(name, "go-")
	name = strings.TrimSuffix(name, ".go")

	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}

		return '_'
	}, name)
}
