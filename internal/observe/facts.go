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

package observe

import (
	"go/types"

	"golang.org/x/tools/go/analysis"
)

// ObservedFact marks a type declared reactive by directive, so importing packages see it, too.
type ObservedFact struct {
	Directive bool
}

// AFact implements [analysis.Fact].
func (*ObservedFact) AFact() {}

// String implements [fmt.Stringer].
func (f *ObservedFact) String() string {
	if f.Directive {
		return "observed"
	}

	return "unobserved"
}

// Facts gives access to the fact store of an analysis pass. Zero values disable facts.
type Facts struct {
	Import func(obj types.Object, fact analysis.Fact) bool
	Export func(obj types.Object, fact analysis.Fact)
}

// PassFacts returns the fact store of a pass.
func PassFacts(p *analysis.Pass) Facts {
	return Facts{Import: p.ImportObjectFact, Export: p.ExportObjectFact}
}

func (f Facts) imported(obj types.Object) bool {
	if f.Import == nil {
		return false
	}

	var fact ObservedFact

	return f.Import(obj, &fact) && fact.Directive
}

func (f Facts) export(obj types.Object) {
	if f.Export == nil {
		return
	}

	f.Export(obj, &ObservedFact{Directive: true})
}
