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
	"log/slog"

	"fillmore-labs.com/observetrack/analyzer/level"
	"fillmore-labs.com/observetrack/internal/config"
)

// Option configures specific behavior of a [New] observetrack analyzer.
type Option interface {
	apply(r *runOptions)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *runOptions) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithGenerated is an [Option] to configure instrumentation of generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *runOptions) {
	r.Behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithConservative is an [Option] to keep accesses that may panic inside code that might not run.
func WithConservative(conservative bool) Option {
	return conservativeOption{conservative: conservative}
}

type conservativeOption struct{ conservative bool }

func (o conservativeOption) apply(r *runOptions) {
	r.Behavior.Set(config.Conservative, o.conservative)
}

func (o conservativeOption) LogAttr() slog.Attr {
	return slog.Bool("conservative", o.conservative)
}

// WithHoist is an [Option] to configure whether tracking calls move out of loop bodies and callbacks.
func WithHoist(hoist level.Hoist) Option { return hoistOption{hoist: hoist} }

type hoistOption struct{ hoist level.Hoist }

func (o hoistOption) apply(r *runOptions) {
	r.Hoist = o.hoist
}

func (o hoistOption) LogAttr() slog.Attr {
	return slog.String("hoist", o.hoist.String())
}

// WithLoopResidual is an [Option] to configure where tracking calls of loop conditions go
// when they cannot be hoisted out of the loop.
func WithLoopResidual(residual level.Residual) Option { return residualOption{residual: residual} }

type residualOption struct{ residual level.Residual }

func (o residualOption) apply(r *runOptions) {
	r.Residual = o.residual
}

func (o residualOption) LogAttr() slog.Attr {
	return slog.String("loop-residual", o.residual.String())
}

// WithRuntime is an [Option] to configure the import path of the package providing the tracking calls.
// The package name is guessed from the last path element.
func WithRuntime(path string) Option { return runtimeOption{path: path} }

type runtimeOption struct{ path string }

func (o runtimeOption) apply(r *runOptions) {
	r.Runtime = config.NewRuntime(o.path)
}

func (o runtimeOption) LogAttr() slog.Attr {
	return slog.String("runtime", o.path)
}

// WithRuntimeName is an [Option] to configure the package name of the runtime package.
func WithRuntimeName(name string) Option { return runtimeNameOption{name: name} }

type runtimeNameOption struct{ name string }

func (o runtimeNameOption) apply(r *runOptions) {
	r.Runtime.Name = o.name
}

func (o runtimeNameOption) LogAttr() slog.Attr {
	return slog.String("runtime-name", o.name)
}

// WithMarker is an [Option] to configure the method name marking reactive types.
// An empty marker only recognizes types with an //observetrack:observed directive.
func WithMarker(marker string) Option { return markerOption{marker: marker} }

type markerOption struct{ marker string }

func (o markerOption) apply(r *runOptions) {
	r.Marker = o.marker
}

func (o markerOption) LogAttr() slog.Attr {
	return slog.String("marker", o.marker)
}

// WithExcludePrefix is an [Option] to configure the field name prefix that is never tracked.
func WithExcludePrefix(prefix string) Option { return excludePrefixOption{prefix: prefix} }

type excludePrefixOption struct{ prefix string }

func (o excludePrefixOption) apply(r *runOptions) {
	r.ExcludePrefix = o.prefix
}

func (o excludePrefixOption) LogAttr() slog.Attr {
	return slog.String("exclude-prefix", o.prefix)
}

// WithExcludeFiles is an [Option] to leave files matching glob patterns alone.
// Invalid patterns never match.
func WithExcludeFiles(patterns ...string) Option { return excludeOption{patterns: patterns} }

type excludeOption struct{ patterns []string }

func (o excludeOption) apply(r *runOptions) {
	for _, p := range o.patterns {
		if excludes, err := config.NewExcludes(p); err == nil {
			r.Excludes = append(r.Excludes, excludes...)
		}
	}
}

func (o excludeOption) LogAttr() slog.Attr {
	return slog.Any("exclude", o.patterns)
}

// WithConfigFile is an [Option] to read settings from a YAML or TOML file.
// Settings in the file override other options.
func WithConfigFile(path string) Option { return configFileOption{path: path} }

type configFileOption struct{ path string }

func (o configFileOption) apply(r *runOptions) {
	r.configFile = o.path
}

func (o configFileOption) LogAttr() slog.Attr {
	return slog.String("config", o.path)
}

// WithLogger is an [Option] to receive debug output of the pipeline.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(r *runOptions) {
	r.Logger = o.logger
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.Bool("logger", o.logger != nil)
}
