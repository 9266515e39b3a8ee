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
package analyzer_test

import (
	"flag"
	"strings"
	"testing"

	. "fillmore-labs.com/observetrack/analyzer"
	"fillmore-labs.com/observetrack/internal/config"
)

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial config.Behavior
		args    []string
		want    bool
	}{
		{
			name:    "Enable",
			initial: config.Conservative,
			args:    []string{"-generated"},
			want:    true,
		},
		{
			name:    "Disable",
			initial: config.IncludeGenerated,
			args:    []string{"-generated=false"},
			want:    false,
		},
		{
			name:    "Keep",
			initial: config.IncludeGenerated,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flags := config.NewBitMask(tt.initial)

			fs := flag.NewFlagSet("test", flag.ContinueOnError)

			const value = config.IncludeGenerated
			fv := NewBehaviorValue(&flags, value)
			fs.Var(fv, "generated", "instrument generated files")

			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if fv.Get() != tt.want {
				t.Errorf("Flag get = %v, want %v", fv.Get(), tt.want)
			}

			if flags.Enabled(value) != tt.want {
				t.Errorf("IncludeGenerated enabled = %v, want %v", flags.Enabled(value), tt.want)
			}
		})
	}
}

func TestUsage(t *testing.T) {
	t.Parallel()

	flags := config.NewBitMask(config.Conservative)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)

	fv := NewBehaviorValue(&flags, config.Conservative)
	fs.Var(fv, "conservative", "keep accesses that may panic")

	const expectedUsage = `
  -conservative
    	keep accesses that may panic (default true)
`

	var out strings.Builder
	fs.SetOutput(&out)
	fs.Usage()

	if got, want := out.String(), expectedUsage; !strings.HasSuffix(got, want) {
		t.Errorf("Usage() = %q, want suffix %q", got, want)
	}
}

func TestExcludeValue(t *testing.T) {
	t.Parallel()

	var excludes config.Excludes

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(NewExcludeValue(&excludes), "exclude", "files to leave alone")

	if err := fs.Parse([]string{"-exclude", "*_gen.go, testdata/**", "-exclude=mock_*.go"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got, want := len(excludes), 3; got != want {
		t.Fatalf("Got %d patterns, want %d", got, want)
	}

	if !excludes.Match("pkg/model_gen.go") {
		t.Error("Expected pkg/model_gen.go to be excluded")
	}

	if err := fs.Parse([]string{"-exclude=[bad"}); err == nil {
		t.Error("Expected an error for an invalid pattern")
	}
}

func TestRuntimeValue(t *testing.T) {
	t.Parallel()

	rt := config.DefaultRuntime()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(NewRuntimeValue(&rt), "runtime", "tracking runtime")

	if err := fs.Parse([]string{"-runtime=example.com/go-signals/v3"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if want := (config.Runtime{Path: "example.com/go-signals/v3", Name: "signals"}); rt != want {
		t.Errorf("Runtime = %+v, want %+v", rt, want)
	}
}
