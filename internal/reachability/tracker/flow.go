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

package tracker

// calls lists functions with a known effect on control flow, grouped by package and receiver.
var calls = [...]struct {
	path, receiver string
	flow           Flow
	names          []string
}{
	{"log", "", Exits, []string{"Fatal", "Fatalf", "Fatalln", "Panic", "Panicf", "Panicln"}},
	{"log", "Logger", Exits, []string{"Fatal", "Fatalf", "Fatalln", "Panic", "Panicf", "Panicln"}},
	{"os", "", Exits, []string{"Exit"}},
	{"syscall", "", Exits, []string{"Exit"}},
	{"runtime", "", Exits, []string{"Goexit"}},
	{"testing", "common", Exits, []string{"Fatal", "Fatalf", "FailNow", "Skip", "Skipf", "SkipNow"}},
	{"testing", "TB", Exits, []string{"Fatal", "Fatalf", "FailNow", "Skip", "Skipf", "SkipNow"}},

	{"github.com/sirupsen/logrus", "Entry", Exits, []string{"Panic", "Panicf", "Panicln"}},
	{"github.com/sirupsen/logrus", "Logger", Exits, []string{"Exit", "Panic", "Panicf", "Panicln"}},
	{"go.uber.org/zap", "Logger", Exits, []string{"Fatal", "Panic"}},
	{"go.uber.org/zap", "SugaredLogger", Exits, []string{
		"Fatal", "Fatalf", "Fatalln", "Fatalw", "Panic", "Panicf", "Panicln", "Panicw",
	}},
	{"k8s.io/klog", "", Exits, []string{"Exit", "ExitDepth", "Exitf", "Exitln", "Fatal", "FatalDepth", "Fatalf", "Fatalln"}},
	{"k8s.io/klog/v2", "", Exits, []string{"Exit", "ExitDepth", "Exitf", "Exitln", "Fatal", "FatalDepth", "Fatalf", "Fatalln"}},

	{"sync", "WaitGroup", Yields, []string{"Wait"}},
	{"sync", "Cond", Yields, []string{"Wait"}},
	{"time", "", Yields, []string{"Sleep"}},
	{"runtime", "", Yields, []string{"Gosched"}},
}

var known = func() map[FuncName]Flow {
	m := make(map[FuncName]Flow)

	for _, c := range calls {
		for _, name := range c.names {
			m[FuncName{Path: c.path, Receiver: c.receiver, Name: name}] = c.flow
		}
	}

	return m
}()

// Lookup returns the flow of a named function, [Continues] when it is not known to exit or yield.
func Lookup(name FuncName) Flow {
	return known[name]
}
