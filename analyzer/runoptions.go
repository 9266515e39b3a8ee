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
package analyzer

import (
	"fmt"
	"sync"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"

	"fillmore-labs.com/observetrack/internal/config"
	"fillmore-labs.com/observetrack/internal/observe"
	"fillmore-labs.com/observetrack/internal/run"
)

// runOptions represent configuration runOptions for the observetrack analyzer.
type runOptions struct {
	run.Options

	// configFile is a YAML or TOML file read before the first package is analyzed.
	configFile string

	resolve func() (*run.Options, error)
}

// makeRunOptions returns a [runOptions] struct with overriding [Options] applied.
func makeRunOptions(opts Options) *runOptions {
	r := defaultRunOptions()
	opts.apply(r)

	return r
}

// defaultRunOptions initializes and returns a new runOptions instance with default values.
func defaultRunOptions() *runOptions {
	r := &runOptions{Options: *run.DefaultOptions()}
	r.resolve = sync.OnceValues(r.resolved)

	return r
}

// resolved merges the configuration file into a copy of the options.
// Flags are parsed before the first package is analyzed, so this runs after all of them are set.
func (r *runOptions) resolved() (*run.Options, error) {
	o := r.Options
	o.Excludes = append(config.Excludes(nil), r.Excludes...)

	if r.configFile == "" {
		return &o, nil
	}

	f, err := config.Load(r.configFile)
	if err != nil {
		return nil, err
	}

	if err := o.Merge(f); err != nil {
		return nil, fmt.Errorf("config %s: %w", r.configFile, err)
	}

	return &o, nil
}

// analyzer returns an observetrack *[analysis.Analyzer] instance.
func (r *runOptions) analyzer() *analysis.Analyzer {
	a := &analysis.Analyzer{
		Name:      name,
		Doc:       doc,
		URL:       url,
		Run:       r.run,
		Requires:  []*analysis.Analyzer{inspect.Analyzer},
		FactTypes: []analysis.Fact{new(observe.ObservedFact)},
	}

	registerFlags(&a.Flags, r)

	return a
}
