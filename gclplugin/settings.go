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
package gclplugin

import (
	observetrack "fillmore-labs.com/observetrack/analyzer"
	"fillmore-labs.com/observetrack/analyzer/level"
)

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// Conservative keeps accesses that may panic inside code that might not run.
	Conservative *bool `json:"conservative,omitzero"`
	// Hoist is "eager" or "lazy".
	Hoist *level.Hoist `json:"hoist,omitzero"`
	// LoopResidual is "inline" or "body".
	LoopResidual *level.Residual `json:"loop-residual,omitzero"`
	// Runtime is the import path of the tracking runtime.
	Runtime *string `json:"runtime,omitzero"`
	// RuntimeName is the package name of the tracking runtime.
	RuntimeName *string `json:"runtime-name,omitzero"`
	// Marker is the method name marking reactive types.
	Marker *string `json:"marker,omitzero"`
	// ExcludePrefix is the field name prefix never tracked.
	ExcludePrefix *string `json:"exclude-prefix,omitzero"`
	// Exclude lists glob patterns of files to leave alone.
	Exclude []string `json:"exclude,omitzero"`
	// Config is a YAML or TOML configuration file.
	Config *string `json:"config,omitzero"`
}

// Options converts [Settings] into a list of [observetrack.Option] for the observetrack analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() []observetrack.Option {
	var opts []observetrack.Option

	opts = appendOption(opts, s.Conservative, observetrack.WithConservative)
	opts = appendOption(opts, s.Hoist, observetrack.WithHoist)
	opts = appendOption(opts, s.LoopResidual, observetrack.WithLoopResidual)
	opts = appendOption(opts, s.Runtime, observetrack.WithRuntime)
	opts = appendOption(opts, s.RuntimeName, observetrack.WithRuntimeName)
	opts = appendOption(opts, s.Marker, observetrack.WithMarker)
	opts = appendOption(opts, s.ExcludePrefix, observetrack.WithExcludePrefix)
	opts = appendOption(opts, s.Config, observetrack.WithConfigFile)

	if len(s.Exclude) > 0 {
		opts = append(opts, observetrack.WithExcludeFiles(s.Exclude...))
	}

	return opts
}

// appendOption appends a non-nil setting to a [observetrack.Option] list.
func appendOption[T any](opts []observetrack.Option, value *T, constructor func(T) observetrack.Option) []observetrack.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
