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
// Package track is the runtime side of observetrack: the calls inserted into instrumented code.
//
// The calls forward to the [Tracker] installed with [SetTracker] and do nothing without one.
package track

import "sync/atomic"

// Tracker records reads and writes of reactive objects.
type Tracker interface {
	// Get records reads of the keys of obj. The empty key denotes collection elements.
	Get(obj any, keys ...string)

	// Set records writes of the keys of obj.
	Set(obj any, keys ...string)
}

type holder struct{ tracker Tracker }

var current atomic.Pointer[holder]

// SetTracker installs t and returns the tracker it replaces. A nil t disables tracking.
func SetTracker(t Tracker) (previous Tracker) {
	if old := current.Swap(&holder{tracker: t}); old != nil {
		previous = old.tracker
	}

	return previous
}

func tracker() Tracker {
	if h := current.Load(); h != nil {
		return h.tracker
	}

	return nil
}

// Get records reads of the keys of obj.
func Get(obj any, keys ...string) {
	if t := tracker(); t != nil {
		t.Get(obj, keys...)
	}
}

// Set records writes of the keys of obj.
func Set(obj any, keys ...string) {
	if t := tracker(); t != nil {
		t.Set(obj, keys...)
	}
}

// Read records reads of the keys of obj and returns obj, for use inside expressions.
func Read[T any](obj T, keys ...string) T {
	Get(obj, keys...)

	return obj
}

// Write records writes of the keys of obj and returns obj, for use inside expressions.
// The write is recorded before the assignment through the result happens.
func Write[T any](obj T, keys ...string) T {
	Set(obj, keys...)

	return obj
}
