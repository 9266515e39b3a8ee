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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"fillmore-labs.com/observetrack/analyzer/level"
)

// ErrUnknownFormat is returned for configuration files with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown configuration file format")

// File is the content of a configuration file. Unset fields keep their current value.
type File struct {
	Generated     *bool           `toml:"generated"      yaml:"generated"`
	Conservative  *bool           `toml:"conservative"   yaml:"conservative"`
	Hoist         *level.Hoist    `toml:"hoist"          yaml:"hoist"`
	LoopResidual  *level.Residual `toml:"loop-residual"  yaml:"loop-residual"`
	Runtime       string          `toml:"runtime"        yaml:"runtime"`
	RuntimeName   string          `toml:"runtime-name"   yaml:"runtime-name"`
	Marker        string          `toml:"marker"         yaml:"marker"`
	ExcludePrefix *string         `toml:"exclude-prefix" yaml:"exclude-prefix"`
	Exclude       []string        `toml:"exclude"        yaml:"exclude"`
}

// Load reads a YAML or TOML configuration file, chosen by extension.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var f File

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}

	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()

		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}

	default:
		return nil, fmt.Errorf("config %s: %w %q", path, ErrUnknownFormat, ext)
	}

	if _, err := NewExcludes(f.Exclude...); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &f, nil
}
