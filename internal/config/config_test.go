// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/observetrack/analyzer/level"
	. "fillmore-labs.com/observetrack/internal/config"
)

func TestBitMask(t *testing.T) {
	t.Parallel()

	b := NewBitMask(IncludeGenerated)
	assert.True(t, b.Enabled(IncludeGenerated))
	assert.False(t, b.Enabled(Conservative))

	b.Set(Conservative, true)
	b.Set(IncludeGenerated, false)
	assert.True(t, b.Enabled(Conservative))
	assert.False(t, b.Enabled(IncludeGenerated))

	merged := b.Merge(NewBitMask(IncludeGenerated))
	assert.True(t, merged.Enabled(IncludeGenerated|Conservative))
	assert.True(t, DefaultBehavior().Enabled(Conservative))
}

func TestNewRuntime(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		path string
		want string
	}{
		{"fillmore-labs.com/observetrack/track", "track"},
		{"example.com/signals/v2", "signals"},
		{"github.com/acme/go-reactive", "reactive"},
		{"example.com/state.go", "state"},
		{"example.com/live-state", "live_state"},
	}

	for _, tt := range tests {
		rt := NewRuntime(tt.path)
		assert.Equal(t, tt.want, rt.Name, tt.path)
		assert.True(t, rt.Valid(), tt.path)
	}

	assert.Equal(t, DefaultRuntime(), NewRuntime(DefaultRuntimePath))
	assert.False(t, Runtime{Path: "example.com/x", Name: "1x"}.Valid())
	assert.False(t, Runtime{Name: "x"}.Valid())
}

func TestExcludes(t *testing.T) {
	t.Parallel()

	e, err := NewExcludes("**/testdata/**", "*_gen.go")
	require.NoError(t, err)

	assert.True(t, e.Match("pkg/testdata/a.go"))
	assert.True(t, e.Match("/abs/path/model_gen.go"))
	assert.False(t, e.Match("pkg/model.go"))

	_, err = NewExcludes("[")
	require.ErrorIs(t, err, ErrBadPattern)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	lazy, body := level.HoistLazy, level.ResidualBody
	generated := true

	tests := [...]struct {
		name    string
		file    string
		content string
		want    File
		err     error
	}{
		{
			name: "yaml",
			file: "observetrack.yaml",
			content: `generated: true
hoist: lazy
loop-residual: body
runtime: example.com/signals
exclude:
  - "*_gen.go"
`,
			want: File{Generated: &generated, Hoist: &lazy, LoopResidual: &body, Runtime: "example.com/signals", Exclude: []string{"*_gen.go"}},
		},
		{
			name: "toml",
			file: "observetrack.toml",
			content: `generated = true
hoist = "lazy"
marker = "Reactive"
`,
			want: File{Generated: &generated, Hoist: &lazy, Marker: "Reactive"},
		},
		{
			name: "empty_yaml",
			file: "empty.yml",
		},
		{
			name:    "unknown_extension",
			file:    "observetrack.json",
			content: "{}",
			err:     ErrUnknownFormat,
		},
		{
			name:    "bad_pattern",
			file:    "observetrack.yaml",
			content: "exclude: [\"[\"]\n",
			err:     ErrBadPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := Load(writeFile(t, tt.file, tt.content))
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, *f)
		})
	}
}

func TestLoadUnknownField(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"observetrack.yaml", "observetrack.toml"} {
		content := "max-lines: 3\n"
		if filepath.Ext(name) == ".toml" {
			content = "max-lines = 3\n"
		}

		_, err := Load(writeFile(t, name, content))
		assert.Error(t, err, name)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
