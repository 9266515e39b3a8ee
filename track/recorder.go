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
package track

import (
	"fmt"
	"sync"
)

// Kind distinguishes reads from writes.
type Kind uint8

const (
	// KindGet is a read.
	KindGet Kind = iota

	// KindSet is a write.
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindGet:
		return "get"

	case KindSet:
		return "set"

	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Access is one recorded key of an object.
type Access struct {
	Kind Kind
	Obj  any
	Key  string
}

// Recorder is a [Tracker] keeping all accesses in order. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	accesses []Access
}

var _ Tracker = (*Recorder)(nil)

// Get implements [Tracker].
func (r *Recorder) Get(obj any, keys ...string) { r.record(KindGet, obj, keys) }

// Set implements [Tracker].
func (r *Recorder) Set(obj any, keys ...string) { r.record(KindSet, obj, keys) }

func (r *Recorder) record(kind Kind, obj any, keys []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range keys {
		r.accesses = append(r.accesses, Access{Kind: kind, Obj: obj, Key: key})
	}
}

// Accesses returns the recorded accesses and clears the recorder.
func (r *Recorder) Accesses() []Access {
	r.mu.Lock()
	defer r.mu.Unlock()

	accesses := r.accesses
	r.accesses = nil

	return accesses
}
