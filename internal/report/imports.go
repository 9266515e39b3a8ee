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

package report

import (
	"go/ast"
	"go/token"
	"strconv"
)

// runtimeImport finds the qualifier of the tracking runtime, and the import to add when the file lacks it.
func (p *plan) runtimeImport() (qual string, pos token.Pos, header []byte) {
	f := p.file.File()
	path := p.runtime.Path

	for _, spec := range f.Imports {
		if importPath(spec) != path {
			continue
		}

		if spec.Name != nil {
			switch spec.Name.Name {
			case "_":
				continue

			case ".":
				return "", token.NoPos, nil
			}
		}

		if pn := p.info.PkgNameOf(spec); pn != nil {
			return pn.Name() + ".", token.NoPos, nil
		}
	}

	name := p.freeName()

	quoted := strconv.Quote(path)
	if name != p.runtime.Name {
		quoted = name + " " + quoted
	}

	pos, text := importInsertion(f, p.packageLineEnd(), path, quoted)

	return name + ".", pos, []byte(text)
}

// importInsertion places a new import spec, sorted into the first parenthesized import declaration.
// Without imports, it goes after the package clause ending at pkgEnd.
func importInsertion(f *ast.File, pkgEnd token.Pos, path, spec string) (token.Pos, string) {
	var last *ast.GenDecl

	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.IMPORT {
			break
		}

		last = gen

		if !gen.Lparen.IsValid() || len(gen.Specs) == 0 {
			continue
		}

		for _, s := range gen.Specs {
			if s := s.(*ast.ImportSpec); importPath(s) > path {
				return s.Pos(), spec + "\n\t"
			}
		}

		return gen.Specs[len(gen.Specs)-1].End(), "\n\t" + spec
	}

	if last != nil {
		return last.End(), "\nimport " + spec
	}

	return pkgEnd, "\n\nimport " + spec
}

// packageLineEnd is the end of the package clause including a trailing comment on the same line.
func (p *plan) packageLineEnd() token.Pos {
	f := p.file.File()
	end, line := f.Name.End(), p.file.Line(f.Name.Pos())

	for _, cg := range f.Comments {
		if cg.Pos() >= end && p.file.Line(cg.Pos()) == line {
			end = cg.End()
		}
	}

	return end
}

// freeName picks the runtime package name, numbered when the file already uses it.
func (p *plan) freeName() string {
	used := make(map[string]struct{})

	ast.Inspect(p.file.File(), func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok {
			used[id.Name] = struct{}{}
		}

		return true
	})

	taken := func(name string) bool {
		if _, ok := used[name]; ok {
			return true
		}

		return p.outer != nil && p.outer.Parent() != nil && p.outer.Parent().Lookup(name) != nil
	}

	name := p.runtime.Name
	for i := 2; taken(name); i++ {
		name = p.runtime.Name + strconv.Itoa(i)
	}

	return name
}

func importPath(spec *ast.ImportSpec) string {
	path, err := strconv.Unquote(spec.Path.Value)
	if err != nil {
		return ""
	}

	return path
}
