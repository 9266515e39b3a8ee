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

package report_test

import (
	"go/ast"
	"go/format"
	"go/token"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/observetrack/analyzer/level"
	"fillmore-labs.com/observetrack/internal/astutil"
	"fillmore-labs.com/observetrack/internal/config"
	"fillmore-labs.com/observetrack/internal/observe"
	. "fillmore-labs.com/observetrack/internal/report"
	"fillmore-labs.com/observetrack/internal/testsource"
	"fillmore-labs.com/observetrack/internal/tracking"
	"fillmore-labs.com/observetrack/internal/usage"
)

const prelude = `package test

type Store struct {
	A     int
	Flag  bool
	Next  *Store
	Items []*Store
}

func (*Store) Observed() {}

func (s *Store) get() *Store { return s }

func (s *Store) at(int) *Store { return s }

`

type emitted struct {
	result Result
	output string
}

func emit(t *testing.T, src string, rt config.Runtime) emitted {
	t.Helper()

	return emitFile(t, prelude+src, rt, tracking.Options{})
}

// emitFile instruments a complete file and returns the formatted result.
func emitFile(t *testing.T, full string, rt config.Runtime, opts tracking.Options) emitted {
	t.Helper()

	fset, f := testsource.ParseFile(t, full)
	pkg, info := testsource.Check(t, fset, f)

	files := []*ast.File{f}
	r := observe.NewResolver(info, pkg, files, config.DefaultMarker, observe.Facts{})
	in := inspector.New(files)

	st := tracking.NewState(observe.NewClassifier(r, ""), usage.Collect(t.Context(), in, r), opts)

	file, ok := in.Root().FirstChild()
	require.True(t, ok)

	st.Reset(file)

	root, err := tracking.NewBuilder(st).Build(t.Context())
	require.NoError(t, err)

	current := astutil.NewCurrentFile(fset, f, []byte(full))
	require.True(t, current.Valid())

	result, err := New(current, file, st, rt).Emit(t.Context(), root)
	require.NoError(t, err)

	return emitted{result: result, output: apply(t, fset, full, result.Edits)}
}

// apply applies non-overlapping edits and formats the result.
func apply(t *testing.T, fset *token.FileSet, src string, edits []analysis.TextEdit) string {
	t.Helper()

	if len(edits) == 0 {
		return src
	}

	tf := fset.File(edits[0].Pos)

	edits = slices.Clone(edits)
	slices.SortStableFunc(edits, func(a, b analysis.TextEdit) int { return int(a.Pos - b.Pos) })

	var b strings.Builder

	last := 0
	for _, e := range edits {
		start, end := tf.Offset(e.Pos), tf.Offset(e.End)
		require.GreaterOrEqual(t, start, last, "overlapping edits")

		b.WriteString(src[last:start])
		b.Write(e.NewText)

		last = end
	}

	b.WriteString(src[last:])

	out, err := format.Source([]byte(b.String()))
	require.NoError(t, err, "edited source:\n%s", b.String())

	return string(out)
}

// function returns the declaration of f.
func function(output string) string {
	if i := strings.Index(output, "func f("); i >= 0 {
		return output[i:]
	}

	return ""
}

func TestEmit(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name     string
		src      string
		want     string
		accesses int
		inline   int
		refs     int
	}{
		{
			name: "after_statements",
			src: `func f(obs *Store) {
	x := obs.A
	_ = x
}
`,
			want: `func f(obs *Store) {
	x := obs.A
	_ = x
	track.Get(obs, "A")
}
`,
			accesses: 1,
		},
		{
			name: "before_return",
			src: `func f(obs *Store) int {
	return obs.A
}
`,
			want: `func f(obs *Store) int {
	track.Get(obs, "A")
	return obs.A
}
`,
			accesses: 1,
		},
		{
			name: "write",
			src: `func f(obs *Store) {
	obs.A = 1
}
`,
			want: `func f(obs *Store) {
	obs.A = 1
	track.Set(obs, "A")
}
`,
			accesses: 1,
		},
		{
			name: "grouped_keys",
			src: `func f(obs *Store) {
	_ = obs.A
	_ = obs.Flag
}
`,
			want: `func f(obs *Store) {
	_ = obs.A
	_ = obs.Flag
	track.Get(obs, "A", "Flag")
}
`,
			accesses: 2,
		},
		{
			name: "call_reference",
			src: `func f(obs *Store) {
	x := obs.get().A
	_ = x
}
`,
			want: `func f(obs *Store) {
	_ref0 := obs.get()
	x := _ref0.A
	_ = x
	track.Get(_ref0, "A")
}
`,
			accesses: 1,
			refs:     1,
		},
		{
			name: "nested_references",
			src: `func f(obs *Store) {
	x := obs.at(obs.get().A).A
	_ = x
}
`,
			want: `func f(obs *Store) {
	_ref0 := obs.get()
	_ref1 := obs.at(_ref0.A)
	x := _ref1.A
	_ = x
	track.Get(_ref0, "A")
	track.Get(_ref1, "A")
}
`,
			accesses: 2,
			refs:     2,
		},
		{
			name: "else_if",
			src: `func f(obs *Store, ok bool) {
	if ok {
		_ = 1
	} else if obs.A > 0 {
		_ = 2
	}
}
`,
			want: `func f(obs *Store, ok bool) {
	if ok {
		_ = 1
	} else {
		track.Get(obs, "A")
		if obs.A > 0 {
			_ = 2
		}
	}
}
`,
			accesses: 1,
		},
		{
			name: "range_source",
			src: `func f(obs *Store) {
	for range obs.Items {
	}
}
`,
			want: `func f(obs *Store) {
	track.Get(obs, "Items")
	track.Get(obs.Items, "")
	for range obs.Items {
	}
}
`,
			accesses: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := emit(t, tt.src, config.DefaultRuntime())

			assert.Equal(t, tt.want, function(got.output))
			assert.Equal(t, tt.accesses, got.result.Accesses)
			assert.Equal(t, tt.inline, got.result.Inline)
			assert.Equal(t, tt.refs, got.result.References)
			assert.Contains(t, got.output, `import "fillmore-labs.com/observetrack/track"`)
		})
	}
}

func TestEmitInline(t *testing.T) {
	t.Parallel()

	got := emit(t, `func f(obs *Store) {
	for i := 0; obs.Items[i].A > 0; i++ {
	}
}
`, config.DefaultRuntime())

	assert.Contains(t, function(got.output), `for i := 0; track.Read(obs.Items[i], "A").A > 0; i++ {`)
	assert.Equal(t, 1, got.result.Inline)
}

func TestEmitResidualBody(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		src  string
		want string
	}{
		{
			name: "empty_body",
			src: `func f(obs *Store) {
	for i := 0; obs.Items[i].A > 0; i++ {
	}
}
`,
			want: `func f(obs *Store) {
	track.Get(obs, "Items")
	track.Get(obs.Items, "")
	for i := 0; obs.Items[i].A > 0; i++ {
		track.Get(obs.Items[i], "A")
	}
}
`,
		},
		{
			name: "statements",
			src: `func f(obs *Store) {
	for i := 0; obs.Items[i].A > 0; i++ {
		_ = i
	}
}
`,
			want: `func f(obs *Store) {
	track.Get(obs, "Items")
	track.Get(obs.Items, "")
	for i := 0; obs.Items[i].A > 0; i++ {
		track.Get(obs.Items[i], "A")
		_ = i
	}
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := emitFile(t, prelude+tt.src, config.DefaultRuntime(), tracking.Options{Residual: level.ResidualBody})

			assert.Equal(t, tt.want, function(got.output))
			assert.Zero(t, got.result.Inline)
			assert.Equal(t, 3, got.result.Accesses)
		})
	}
}

func TestEmitNothing(t *testing.T) {
	t.Parallel()

	got := emit(t, `func f(s []int) int {
	return s[0]
}
`, config.DefaultRuntime())

	assert.True(t, got.result.Empty())
	assert.Empty(t, got.result.Edits)
}

func TestRuntimeImport(t *testing.T) {
	t.Parallel()

	t.Run("existing", func(t *testing.T) {
		t.Parallel()

		src := strings.Replace(prelude, "package test\n", "package test\n\nimport \"strings\"\n\nvar _ = strings.ToUpper\n", 1)
		rt := config.Runtime{Path: "strings", Name: "strings"}

		got := emitFile(t, src+`func f(obs *Store) {
	_ = obs.A
}
`, rt, tracking.Options{})

		assert.Contains(t, got.output, `strings.Get(obs, "A")`)
		assert.Equal(t, 1, strings.Count(got.output, `"strings"`))
	})

	t.Run("conflict", func(t *testing.T) {
		t.Parallel()

		got := emit(t, `func f(obs *Store) {
	track := obs.A
	_ = track
}
`, config.DefaultRuntime())

		assert.Contains(t, got.output, `import track2 "fillmore-labs.com/observetrack/track"`)
		assert.Contains(t, got.output, `track2.Get(obs, "A")`)
	})
}

func TestDiagnostic(t *testing.T) {
	t.Parallel()

	_, f := testsource.ParseFile(t, "package test\n")

	d := Diagnostic(f, Result{Accesses: 1, Edits: []analysis.TextEdit{{Pos: f.Name.End(), End: f.Name.End()}}})

	assert.Equal(t, f.Name.Pos(), d.Pos)
	assert.Equal(t, "1 reactive access without tracking", d.Message)
	require.Len(t, d.SuggestedFixes, 1)
	assert.Len(t, d.SuggestedFixes[0].TextEdits, 1)

	assert.Regexp(t, regexp.MustCompile(`^3 reactive accesses`), Diagnostic(f, Result{Accesses: 3}).Message)
}
