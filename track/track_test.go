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
package track_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/observetrack/track"
)

type item struct{ A, B int }

// The tests below share the global tracker, so they do not run in parallel.

func TestTracking(t *testing.T) { //nolint:paralleltest
	var r Recorder

	previous := SetTracker(&r)
	t.Cleanup(func() { SetTracker(previous) })

	obj := &item{A: 1}
	list := []*item{obj}

	Get(obj, "A", "B")
	Set(obj, "A")

	got := Read(list, "")[0]
	Write(obj, "B").B = 2

	assert.Same(t, obj, got)
	assert.Equal(t, 2, obj.B)

	want := []Access{
		{Kind: KindGet, Obj: obj, Key: "A"},
		{Kind: KindGet, Obj: obj, Key: "B"},
		{Kind: KindSet, Obj: obj, Key: "A"},
		{Kind: KindGet, Obj: list, Key: ""},
		{Kind: KindSet, Obj: obj, Key: "B"},
	}

	accesses := r.Accesses()
	require.Len(t, accesses, len(want))

	for i, a := range accesses {
		assert.Equal(t, want[i].Kind, a.Kind, "access %d", i)
		assert.Equal(t, want[i].Key, a.Key, "access %d", i)
	}

	assert.Empty(t, r.Accesses())
}

func TestNoTracker(t *testing.T) { //nolint:paralleltest
	previous := SetTracker(nil)
	t.Cleanup(func() { SetTracker(previous) })

	obj := &item{A: 1}

	assert.NotPanics(t, func() {
		Get(obj, "A")
		Set(obj, "A")
	})

	assert.Same(t, obj, Read(obj, "A"))
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "get", KindGet.String())
	assert.Equal(t, "set", KindSet.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}
