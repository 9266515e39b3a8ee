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

// Package run drives the observetrack pipeline over the files of a package.
package run

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"log/slog"
	"runtime"
	"runtime/trace"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/observetrack/internal/astutil"
	"fillmore-labs.com/observetrack/internal/config"
	"fillmore-labs.com/observetrack/internal/observe"
	"fillmore-labs.com/observetrack/internal/report"
	"fillmore-labs.com/observetrack/internal/tracking"
	"fillmore-labs.com/observetrack/internal/usage"
)

var (
	// ErrResultMissing is returned when a required analyzer result is missing.
	// This typically indicates a configuration error where the analyzer's
	// Requires field is not properly set.
	ErrResultMissing = errors.New("analyzer result missing")

	// ErrInvalidRuntime is returned when the runtime package has no usable path or name.
	ErrInvalidRuntime = errors.New("invalid runtime package")

	// ErrAborted is reported for a file whose instrumentation stopped unexpectedly.
	ErrAborted = errors.New("instrumentation aborted")
)

// Run executes the observetrack pipeline.
func (o *Options) Run(p *analysis.Pass) (any, error) {
	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("observetrack: %s %w", inspect.Analyzer.Name, ErrResultMissing)
	}

	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("observetrack: %w", err)
	}

	ctx, task := trace.NewTask(context.Background(), "ObserveTrack")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	logger := o.logger().With(slog.String("package", p.Pkg.Path()))

	// Reactive types of this package are exported as facts, even when no file gets instrumented
	r := observe.NewResolver(p.TypesInfo, p.Pkg, p.Files, o.Marker, observe.PassFacts(p))

	s := stage{
		Options:    o,
		pass:       p,
		classifier: observe.NewClassifier(r, o.ExcludePrefix),
		census:     usage.Collect(ctx, in, r),
		tracking: tracking.Options{
			Hoist:        o.Hoist,
			Residual:     o.Residual,
			Conservative: o.Behavior.Enabled(config.Conservative),
			Logger:       logger,
		},
		logger: logger,
	}

	var files []inspector.Cursor
	for f := range in.Root().Children() {
		files = append(files, f)
	}

	results := make([]fileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, f := range files {
		g.Go(func() error {
			res, err := s.process(ctx, f)
			results[i] = res

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("observetrack: %w", err)
	}

	// Report in file order
	for _, res := range results {
		res.report(p)
	}

	return nil, nil
}

// stage holds the package-wide tables shared by all files.
type stage struct {
	*Options

	pass       *analysis.Pass
	classifier *observe.Classifier
	census     usage.Census
	tracking   tracking.Options
	logger     *slog.Logger
}

// fileResult is the outcome of one file, reported after all files are done.
type fileResult struct {
	file   *ast.File
	name   string
	result report.Result
	err    error
}

func (res fileResult) report(p *analysis.Pass) {
	if res.err != nil {
		var ie *tracking.InternalError
		if errors.As(res.err, &ie) && ie.Node != nil {
			astutil.InternalError(p, ie.Node, "%v in %s", ie.Err, res.name)

			return
		}

		astutil.InternalError(p, res.file.Name, "%v in %s", res.err, res.name)

		return
	}

	if res.result.Empty() {
		return
	}

	p.Report(report.Diagnostic(res.file, res.result))
}

// process instruments one file. Failures of the pipeline end up in the result, reading errors are returned.
func (s *stage) process(ctx context.Context, f inspector.Cursor) (fileResult, error) {
	file, ok := f.Node().(*ast.File)
	if !ok {
		return fileResult{}, nil
	}

	tf := s.pass.Fset.File(file.FileStart)
	if tf == nil {
		return fileResult{file: file, err: fmt.Errorf("file %s without position info", file.Name.Name)}, nil
	}

	name := tf.Name()
	res := fileResult{file: file, name: name}

	switch {
	case s.Excludes.Match(name):
		s.logger.Debug("Skipping excluded file", slog.String("file", name))

		return res, nil

	case ast.IsGenerated(file) && !s.Behavior.Enabled(config.IncludeGenerated):
		s.logger.Debug("Skipping generated file", slog.String("file", name))

		return res, nil

	case astutil.Skipped(file.Doc):
		return res, nil
	}

	src, err := s.pass.ReadFile(name)
	if err != nil {
		return res, err
	}

	current := astutil.NewCurrentFile(s.pass.Fset, file, src)
	if !current.Valid() {
		res.err = fmt.Errorf("source of %s does not match its syntax tree", name)

		return res, nil
	}

	region := trace.StartRegion(ctx, "file")
	defer region.End()

	res.result, res.err = s.transform(ctx, current, f)

	return res, nil
}

// transform builds the scope tree of a file and emits its edits. A panic fails only this file.
func (s *stage) transform(ctx context.Context, current astutil.CurrentFile, f inspector.Cursor) (result report.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrAborted, r)
		}
	}()

	st := tracking.NewState(s.classifier, s.census, s.tracking)
	st.Reset(f)

	root, err := tracking.NewBuilder(st).Build(ctx)
	if err != nil {
		return report.Result{}, err
	}

	return report.New(current, f, st, s.Runtime).Emit(ctx, root)
}
