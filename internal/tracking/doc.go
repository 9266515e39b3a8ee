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

// Package tracking builds the scope tree of a file and captures the reactive accesses inside it.
//
// A [Builder] walks a file once. Every control flow relevant node (functions, conditionals,
// switches, loops and flow interruptions) opens a [Scope], whose [Capturer] records field and
// element accesses of observed values as [Item]s in ordered, anchored [Group]s. Returns, yields
// and nested control flow split the groups, so each group can be emitted as a batch of tracking
// calls at its [Anchor].
//
// After the walk the optimizer hoists items out of conditions, loop headers and bodies, merges
// items shared by all branches of a conditional, and drops repeated and unobservable items.
// An item only leaves a scope when every variable it uses is still declared at its new place.
package tracking
