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
	"slices"

	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	observetrack "fillmore-labs.com/observetrack/analyzer"
)

// Name is the linter name the plugin registers under.
const Name = "observetrack"

func init() { register.Plugin(Name, New) }

// New decodes the plugin settings from the golangci-lint configuration.
func New(rawSettings any) (register.LinterPlugin, error) {
	settings, err := register.DecodeSettings[Settings](rawSettings)
	if err != nil {
		return nil, err
	}

	return &Plugin{options: settings.Options()}, nil
}

// Plugin instruments reactive accesses under golangci-lint.
type Plugin struct {
	options []observetrack.Option
}

// GetLoadMode reports that the analyzer needs type information.
func (*Plugin) GetLoadMode() string {
	return register.LoadModeTypesInfo
}

// BuildAnalyzers returns the configured analyzer. Generated files are included,
// since golangci-lint excludes them before reporting.
func (p *Plugin) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	opts := append(slices.Clip(p.options), observetrack.WithGenerated(true))

	return []*analysis.Analyzer{observetrack.New(opts...)}, nil
}
