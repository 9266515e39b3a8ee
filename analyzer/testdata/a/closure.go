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
package a // want "3 reactive accesses without tracking"

import (
	"test/model"
	"test/track"
)

var _ = track.Get

func deferred(t *model.Todo) func() string {
	return func() string {
		return t.Title
	}
}

func now(t *model.Todo) string {
	var s string
	func() {
		s = t.Title
	}()
	return s
}

func with(t *model.Todo, fn func(*model.Todo)) {
	fn(t)
}

func titled(t *model.Todo) {
	with(t, func(u *model.Todo) {
		_ = u.Title
	})
}
