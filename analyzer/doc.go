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
// Package analyzer implements the observetrack static analysis pass.
//
// # Overview
//
// ObserveTrack finds reads and writes of reactive objects and suggests the
// tracking calls a reactive runtime needs to record them.
//
// A type is reactive when it has an Observed() method, or carries an
// //observetrack:observed directive. Field tags refine this per field:
// observe:"-" and observe:"readonly" exclude a field, observe:"observed"
// includes it, observe:"derived" always keeps it tracked.
//
// # Example
//
// Before:
//
//	func total(cart *Cart) (sum int) {
//	    for _, item := range cart.Items {
//	        sum += item.Price
//	    }
//	    return sum
//	}
//
// After applying observetrack's suggested fix:
//
//	func total(cart *Cart) (sum int) {
//	    for _, item := range cart.Items {
//	        sum += item.Price
//	    }
//	    track.Get(cart, "Items")
//	    track.Get(cart.Items, "")
//	    return sum
//	}
//
// Tracking calls are hoisted out of branches and loops when this is legal,
// and merged per object. Accesses in loop conditions without a statement
// before them are wrapped in place with track.Read and track.Write.
package analyzer
