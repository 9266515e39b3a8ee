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
	"flag"

	"fillmore-labs.com/observetrack/internal/config"
)

// registerFlags binds the [runOptions] values to command line flag values.
// A nil flag set value defaults to the program's command line.
func registerFlags(flags *flag.FlagSet, r *runOptions) {
	if flags == nil {
		flags = flag.CommandLine
	}

	behavior := func(value config.Behavior) flag.Value {
		return boolValue[config.Behavior, *config.BitMask[config.Behavior]]{flags: &r.Behavior, value: value}
	}

	flags.Var(behavior(config.IncludeGenerated), "generated", "instrument generated files")
	flags.Var(behavior(config.Conservative), "conservative", "keep accesses that may panic inside code that might not run")
	flags.Var(&r.Hoist, "hoist", "move tracking calls out of loop bodies and callbacks: eager or lazy")
	flags.Var(&r.Residual, "loop-residual", "where tracking calls of loop conditions go: inline or body")
	flags.Var(runtimeValue{&r.Runtime}, "runtime", "import path of the tracking runtime")
	flags.StringVar(&r.Runtime.Name, "runtime-name", r.Runtime.Name, "package name of the tracking runtime")
	flags.StringVar(&r.Marker, "marker", r.Marker, "method name marking reactive types")
	flags.StringVar(&r.ExcludePrefix, "exclude-prefix", r.ExcludePrefix, "field name prefix never tracked")
	flags.Var(excludeValue{&r.Excludes}, "exclude", "comma separated glob patterns of files to leave alone")
	flags.StringVar(&r.configFile, "config", r.configFile, "YAML or TOML configuration file")
}
