// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/actor-rtc/actr-go/codegen"
	"github.com/actor-rtc/actr-go/manifest"
	"github.com/actor-rtc/actr-go/schema"
)

// errReported marks a failure whose diagnostics were already printed.
var errReported = errors.New("generation failed")

// project is a manifest with everything it points at loaded.
type project struct {
	manifest *manifest.Manifest
	opts     manifest.Options
	deps     []manifest.Dependency
	files    []string
	set      *schema.Set
}

func loadProject(
	ctx context.Context,
	manifestPath string,
	overrides manifest.Overrides,
	logger zerolog.Logger,
) (*project, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	opts, err := manifest.Resolve(m, overrides)
	if err != nil {
		return nil, err
	}
	lock, err := manifest.LoadLock(opts.Lock)
	if err != nil {
		return nil, err
	}
	deps := manifest.Dependencies(m, lock)
	files, err := manifest.SchemaFiles(opts.ProtoRoot, deps)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("manifest", manifestPath).
		Str("proto_root", opts.ProtoRoot).
		Int("dependencies", len(deps)).
		Int("files", len(files)).
		Msg("loaded manifest")

	loader := &schema.Loader{
		ImportPaths: []string{opts.ProtoRoot},
		Logger:      logger,
	}
	set, err := loader.Load(ctx, files)
	if err != nil {
		return nil, err
	}
	return &project{
		manifest: m,
		opts:     opts,
		deps:     deps,
		files:    files,
		set:      set,
	}, nil
}

func (proj *project) runtimeImport() string {
	if proj.opts.RuntimeImport == "" {
		return codegen.DefaultRuntimeImport
	}
	return proj.opts.RuntimeImport
}

func (proj *project) generate(logger zerolog.Logger) codegen.Result {
	deps := make([]codegen.Dependency, 0, len(proj.deps))
	for _, dep := range proj.deps {
		deps = append(deps, codegen.Dependency{
			Name:     dep.Name,
			ActrType: dep.ActrType,
		})
	}
	return codegen.Generate(
		proj.set,
		codegen.WithDependencies(deps),
		codegen.WithGoPackage(proj.opts.GoPackage),
		codegen.WithRuntimeImport(proj.runtimeImport()),
		codegen.WithLogger(logger),
	)
}

// printDiagnostics writes warnings, then errors, one per line.
func printDiagnostics(w io.Writer, result *codegen.Result) {
	for _, warning := range result.Warnings {
		fmt.Fprintln(w, warning)
	}
	for _, err := range result.Errors {
		fmt.Fprintln(w, err)
	}
}
