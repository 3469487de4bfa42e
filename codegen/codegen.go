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

// Package codegen turns a collected schema into Go codecs, route stubs, and
// a dispatch table.
package codegen

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/actor-rtc/actr-go/schema"
)

const DefaultGoPackage = "generated"

type GenerateOption interface {
	apply(*GenerateOptions)
}

type generateOption func(*GenerateOptions)

func (f generateOption) apply(opts *GenerateOptions) { f(opts) }

type GenerateOptions struct {
	deps          []Dependency
	goPackage     string
	runtimeImport string
	logger        zerolog.Logger
}

func WithDependencies(deps []Dependency) GenerateOption {
	return generateOption(func(opts *GenerateOptions) {
		opts.deps = deps
	})
}

func WithGoPackage(goPackage string) GenerateOption {
	return generateOption(func(opts *GenerateOptions) {
		opts.goPackage = goPackage
	})
}

func WithRuntimeImport(importPath string) GenerateOption {
	return generateOption(func(opts *GenerateOptions) {
		opts.runtimeImport = importPath
	})
}

func WithLogger(logger zerolog.Logger) GenerateOption {
	return generateOption(func(opts *GenerateOptions) {
		opts.logger = logger
	})
}

type File struct {
	Path    string
	Content []byte
}

type Result struct {
	Files []*File
	Plans *PlanSet

	Errors   []*Error
	Warnings []*Warning
}

// Err joins Errors, or returns nil when generation succeeded.
func (r *Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for ii, err := range r.Errors {
		errs[ii] = err
	}
	return errors.Join(errs...)
}

func Generate(set *schema.Set, opts ...GenerateOption) Result {
	return NewGenerateOptions(opts...).Generate(set)
}

func NewGenerateOptions(opts ...GenerateOption) *GenerateOptions {
	generateOptions := &GenerateOptions{
		goPackage:     DefaultGoPackage,
		runtimeImport: DefaultRuntimeImport,
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt.apply(generateOptions)
	}
	return generateOptions
}

// Generate runs the pipeline over set. If any error is reported, the
// result carries no files.
func (opts *GenerateOptions) Generate(set *schema.Set) Result {
	var result Result

	names, errs := resolveNames(set)
	if len(errs) > 0 {
		result.Errors = errs
		return result
	}

	plans, errs := buildPlans(set, names)
	if len(errs) > 0 {
		result.Errors = errs
		return result
	}

	errs, warnings := buildRoutes(set, plans, names)
	result.Warnings = append(result.Warnings, warnings...)
	if len(errs) > 0 {
		result.Errors = errs
		return result
	}

	errs, warnings = resolveTargets(plans, opts.deps)
	result.Warnings = append(result.Warnings, warnings...)
	if len(errs) > 0 {
		result.Errors = errs
		return result
	}

	files, errs, warnings := opts.render(plans)
	result.Warnings = append(result.Warnings, warnings...)
	if len(errs) > 0 {
		result.Errors = errs
		return result
	}
	result.Files = files
	result.Plans = plans
	return result
}

func (opts *GenerateOptions) render(ps *PlanSet) ([]*File, []*Error, []*Warning) {
	var files []*File
	var errs []*Error
	var warnings []*Warning
	emit := func(path string, src []byte, err error) {
		if err != nil {
			errs = append(errs, errRenderFailed(path, err))
			return
		}
		opts.logger.Debug().Str("file", path).Int("bytes", len(src)).Msg("rendered")
		files = append(files, &File{Path: path, Content: src})
	}

	for _, pp := range ps.Packages {
		if len(pp.Messages) == 0 {
			warnings = append(warnings, warnEmptyPackage(pp.Name))
		} else {
			src, err := renderCodecFile(pp, opts.goPackage)
			emit(pp.FileBase+".codec.go", src, err)
		}
		if len(pp.Routes) > 0 {
			src, err := renderRouteFile(pp, ps, opts.goPackage)
			emit(pp.FileBase+".routes.go", src, err)
		}
	}
	src, err := renderDispatchFile(ps, opts.goPackage, opts.runtimeImport)
	emit(dispatchFile, src, err)

	if len(errs) > 0 {
		return nil, errs, warnings
	}
	return files, nil, warnings
}
