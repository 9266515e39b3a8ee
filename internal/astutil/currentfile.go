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

package astutil

import (
	"go/ast"
	"go/token"
	"regexp"
	"strings"
)

const observetrack = "observetrack"

// CurrentFile holds the file being instrumented together with its source text.
type CurrentFile struct {
	file      *ast.File
	handle    *token.File
	src       []byte
	generated bool
}

// NewCurrentFile wraps an [ast.File] and the source it was parsed from.
func NewCurrentFile(fset *token.FileSet, file *ast.File, src []byte) CurrentFile {
	if file == nil {
		return CurrentFile{}
	}

	handle := fset.File(file.FileStart)
	if handle == nil || handle.Size() != len(src) {
		return CurrentFile{}
	}

	generated := ast.IsGenerated(file)

	return CurrentFile{file, handle, src, generated}
}

// Valid reports whether the file has position info matching its source.
func (c CurrentFile) Valid() bool {
	return c.handle != nil
}

// Generated reports whether the file carries a "Code generated" header.
func (c CurrentFile) Generated() bool {
	return c.generated
}

// File returns the syntax tree.
func (c CurrentFile) File() *ast.File {
	return c.file
}

// Name is the file name as recorded in the file set.
func (c CurrentFile) Name() string {
	if c.handle == nil {
		return ""
	}

	return c.handle.Name()
}

// Source returns the text between two positions.
func (c CurrentFile) Source(from, to token.Pos) string {
	return string(c.src[c.offset(from):c.offset(to)])
}

// Text returns the source text of a node.
func (c CurrentFile) Text(n ast.Node) string {
	return c.Source(n.Pos(), n.End())
}

// Indent returns the leading white space of the line containing pos.
func (c CurrentFile) Indent(pos token.Pos) string {
	off := c.offset(pos)
	start := off
	for start > 0 && c.src[start-1] != '\n' {
		start--
	}

	end := start
	for end < off && (c.src[end] == ' ' || c.src[end] == '\t') {
		end++
	}

	return string(c.src[start:end])
}

// Line returns the line number of pos.
func (c CurrentFile) Line(pos token.Pos) int {
	return c.handle.PositionFor(pos, false).Line
}

func (c CurrentFile) offset(pos token.Pos) int {
	return c.handle.Offset(pos)
}

// Skipped reports whether a declaration opted out with a nolint directive in its doc comment.
func Skipped(doc *ast.CommentGroup) bool {
	return doc != nil && CommentHasNoLint(doc.List[len(doc.List)-1])
}

var nolintPattern = regexp.MustCompile(`^//\s*nolint:([a-zA-Z0-9,_-]+)`)

// CommentHasNoLint checks for a nolint comment naming this linter or "all".
func CommentHasNoLint(comment *ast.Comment) bool {
	matches := nolintPattern.FindStringSubmatch(comment.Text)
	if matches == nil {
		return false
	}

	// Parse comma-separated linter list
	for linter := range strings.SplitSeq(matches[1], ",") {
		if l := strings.ToLower(strings.TrimSpace(linter)); l == observetrack || l == "all" {
			return true
		}
	}

	return false
}
