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

package manifest

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"
)

const (
	EnvOutput        = "ACTRGEN_OUTPUT"
	EnvProtoRoot     = "ACTRGEN_PROTO_ROOT"
	EnvRuntimeImport = "ACTRGEN_RUNTIME_IMPORT"
)

const (
	DefaultOutput    = "generated"
	DefaultProtoRoot = "protos"
	DefaultLock      = "Actr.lock.toml"
	DefaultGoPackage = "generated"
)

// Options are the resolved settings of one generation run. Paths are
// already joined with the manifest directory.
type Options struct {
	Output        string
	ProtoRoot     string
	Lock          string
	GoPackage     string
	RuntimeImport string
}

// Overrides are values given on the command line. Empty fields are unset.
type Overrides struct {
	Output        string
	ProtoRoot     string
	Lock          string
	GoPackage     string
	RuntimeImport string
}

// Resolve computes the run options. Each setting is taken from the first
// source that sets it: overrides, then the environment, then the manifest's
// [codegen] table, then the defaults. Paths from the manifest and the
// defaults are relative to the manifest directory; paths from overrides and
// the environment are used as given.
func Resolve(m *Manifest, flags Overrides) (Options, error) {
	return resolve(m, flags, os.Getenv)
}

func resolve(m *Manifest, flags Overrides, getenv func(string) string) (Options, error) {
	dir := m.Dir()
	inDir := func(path string) string {
		if filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(dir, path)
	}
	pick := func(flag, env, fromManifest, fallback string) string {
		if v := strings.TrimSpace(flag); v != "" {
			return v
		}
		if env != "" {
			if v := strings.TrimSpace(getenv(env)); v != "" {
				return v
			}
		}
		if fromManifest != "" {
			return inDir(fromManifest)
		}
		if fallback != "" {
			return inDir(fallback)
		}
		return ""
	}

	opts := Options{
		Output:    pick(flags.Output, EnvOutput, m.Codegen.Output, DefaultOutput),
		ProtoRoot: pick(flags.ProtoRoot, EnvProtoRoot, m.Codegen.ProtoRoot, DefaultProtoRoot),
		Lock:      pick(flags.Lock, "", m.Codegen.Lock, DefaultLock),
	}

	opts.GoPackage = firstNonEmpty(flags.GoPackage, m.Codegen.GoPackage, DefaultGoPackage)
	if !token.IsIdentifier(opts.GoPackage) {
		return Options{}, fmt.Errorf("invalid go_package %q: not a Go identifier", opts.GoPackage)
	}
	opts.RuntimeImport = firstNonEmpty(flags.RuntimeImport, getenv(EnvRuntimeImport), m.Codegen.RuntimeImport)
	return opts, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
