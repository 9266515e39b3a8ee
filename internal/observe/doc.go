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

// Package observe decides which expressions hold reactive values and which accesses need tracking.
//
// A named type is reactive when its declaration carries an //observetrack:observed directive,
// when its method set contains the marker method, or when the package declaring it exported an
// [ObservedFact] for it. Values of reactive types, values reached through them and values stored
// in variables initialized from them are observed. Field and element accesses on observed values
// are tracked unless the field is excluded.
package observe
