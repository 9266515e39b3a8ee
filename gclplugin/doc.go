// Copyright 2025 Oliver Eikemeier. All Rights Reserved.
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

// Package gclplugin registers observetrack as a golangci-lint module plugin.
//
// Build a custom binary with `golangci-lint custom`, listing the plugin in `.custom-gcl.yaml`:
//
//	version: v2.7.0
//	plugins:
//	  - module: fillmore-labs.com/observetrack
//	    import: fillmore-labs.com/observetrack/gclplugin
//	    version: v0.1.0
//
// The plugin runs with type information and leaves generated files to golangci-lint.
// Its settings mirror the command line flags; unset values keep the analyzer defaults:
//
//	linters:
//	  enable:
//	    - observetrack
//	  settings:
//	    custom:
//	      observetrack:
//	        type: module
//	        settings:
//	          conservative: true      # keep accesses that may panic in code that might not run
//	          hoist: eager            # or lazy: leave loop body captures inside the body
//	          loop-residual: inline   # or body: track loop-dependent conditions in the body
//	          runtime: example.com/app/track
//	          runtime-name: track
//	          marker: Observed        # method marking reactive types
//	          exclude-prefix: _       # fields never tracked
//	          exclude:
//	            - "**/*_test.go"
//	          config: observetrack.yaml
//
// See [Settings] for the field types.
package gclplugin
