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
package gclplugin_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/golangci/plugin-module-register/register"

	observetrack "fillmore-labs.com/observetrack/analyzer"
	. "fillmore-labs.com/observetrack/gclplugin"
)

const allSettings = `{
	"conservative": false,
	"hoist": "lazy",
	"loop-residual": "body",
	"runtime": "example.com/signals",
	"runtime-name": "signals",
	"marker": "Reactive",
	"exclude-prefix": "x",
	"exclude": ["**/*_gen.go"],
	"config": ".observetrack.yaml"
}`

func TestSettings(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		name     string
		settings string
		want     int
	}{
		{"all", allSettings, reflect.TypeFor[Settings]().NumField()},
		{"none", `{}`, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dec := json.NewDecoder(strings.NewReader(tc.settings))
			dec.DisallowUnknownFields()

			var s Settings
			if err := dec.Decode(&s); err != nil {
				t.Fatalf("Can't decode settings: %v", err)
			}

			if got := s.Options(); len(got) != tc.want {
				t.Errorf("Got %d options: %s, want %d", len(got), observetrack.Options(got).LogValue(), tc.want)
			}
		})
	}
}

func TestInvalidHoist(t *testing.T) {
	t.Parallel()

	var s Settings
	if err := json.Unmarshal([]byte(`{"hoist": "sometimes"}`), &s); err == nil {
		t.Error("Expected an error for an unknown hoist level")
	}
}

func TestBuildAnalyzers(t *testing.T) {
	t.Parallel()

	p, err := New(map[string]any{"marker": "Reactive"})
	if err != nil {
		t.Fatalf("Can't create plugin: %v", err)
	}

	analyzers, err := p.BuildAnalyzers()
	if err != nil {
		t.Fatalf("Can't build analyzers: %v", err)
	}

	if mode := p.GetLoadMode(); mode != register.LoadModeTypesInfo {
		t.Errorf("Got load mode %q, want %q", mode, register.LoadModeTypesInfo)
	}

	if len(analyzers) != 1 || analyzers[0].Name != Name {
		t.Errorf("Got analyzers %v, want observetrack", analyzers)
	}

	if f := analyzers[0].Flags.Lookup("marker"); f == nil || f.Value.String() != "Reactive" {
		t.Errorf("Got marker flag %v, want Reactive", f)
	}
}
