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

package run

import (
	"fmt"
	"log/slog"

	"fillmore-labs.com/observetrack/analyzer/level"
	"fillmore-labs.com/observetrack/internal/config"
)

// Options represent the configuration of the observetrack pipeline.
type Options struct {
	// Behavior holds the boolean switches.
	Behavior config.BitMask[config.Behavior]

	// Hoist decides whether loop bodies and callbacks hoist their tracking calls.
	Hoist level.Hoist

	// Residual decides where tracking calls of loop conditions go when they cannot be hoisted.
	Residual level.Residual

	// Runtime is the package providing the tracking calls.
	Runtime config.Runtime

	// Marker is the method name marking reactive types, empty to only use directives.
	Marker string

	// ExcludePrefix excludes fields with names starting with it.
	ExcludePrefix string

	// Excludes are glob patterns of file names left alone.
	Excludes config.Excludes

	// Logger receives debug output, nil discards.
	Logger *slog.Logger
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{
		Behavior:      config.DefaultBehavior(),
		Hoist:         level.HoistEager,
		Residual:      level.ResidualInline,
		Runtime:       config.DefaultRuntime(),
		Marker:        config.DefaultMarker,
		ExcludePrefix: config.DefaultExcludePrefix,
	}
}

// Merge overrides the options with the settings present in a configuration file.
func (o *Options) Merge(f *config.File) error {
	if f.Generated != nil {
		o.Behavior.Set(config.IncludeGenerated, *f.Generated)
	}

	if f.Conservative != nil {
		o.Behavior.Set(config.Conservative, *f.Conservative)
	}

	if f.Hoist != nil {
		o.Hoist = *f.Hoist
	}

	if f.LoopResidual != nil {
		o.Residual = *f.LoopResidual
	}

	if f.Runtime != "" {
		o.Runtime = config.NewRuntime(f.Runtime)
	}

	if f.RuntimeName != "" {
		o.Runtime.Name = f.RuntimeName
	}

	if f.Marker != "" {
		o.Marker = f.Marker
	}

	if f.ExcludePrefix != nil {
		o.ExcludePrefix = *f.ExcludePrefix
	}

	if len(f.Exclude) > 0 {
		excludes, err := config.NewExcludes(f.Exclude...)
		if err != nil {
			return err
		}

		o.Excludes = append(o.Excludes, excludes...)
	}

	return nil
}

// Validate checks that the options describe a usable runtime.
func (o *Options) Validate() error {
	if !o.Runtime.Valid() {
		return fmt.Errorf("%w: %q as %q", ErrInvalidRuntime, o.Runtime.Path, o.Runtime.Name)
	}

	return nil
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return o.Logger
}
