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
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/actor-rtc/actr-go/codegen"
	"github.com/actor-rtc/actr-go/internal/plugin"
	"github.com/actor-rtc/actr-go/manifest"
)

type cmdGenerate struct {
	*cmdEnv
	overrides  manifest.Overrides
	pluginPath string
	watch      bool
}

func (*cmdGenerate) help() *commandHelp {
	return &commandHelp{
		usage:   "generate MANIFEST",
		summary: "Generate codecs, route stubs, and the dispatch table",
	}
}

func (cmd *cmdGenerate) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.overrides.Output, "output", "o", "", "output directory (default: [codegen] output, or \"generated\")")
	flags.StringVar(&cmd.overrides.ProtoRoot, "proto-root", "", "directory containing .proto files (default: [codegen] proto_root, or \"protos\")")
	flags.StringVar(&cmd.overrides.Lock, "lock", "", "lock file (default: [codegen] lock, or \"Actr.lock.toml\")")
	flags.StringVar(&cmd.overrides.RuntimeImport, "runtime-import", "", "import path of the actor runtime package")
	flags.StringVar(&cmd.overrides.GoPackage, "go-package", "", "package name of the generated files")
	flags.StringVar(&cmd.pluginPath, "plugin", "", "render with a WebAssembly plugin instead of the built-in Go renderer")
	flags.BoolVar(&cmd.watch, "watch", false, "regenerate when the manifest, lock, or schema files change")
}

func (cmd *cmdGenerate) run(ctx context.Context, argv []string) int {
	if len(argv) != 1 {
		fmt.Fprintln(cmd.stderr, "usage: actrgen generate MANIFEST")
		return 1
	}
	logger := cmd.logger()
	if cmd.watch {
		return cmd.runWatch(ctx, argv[0], logger)
	}
	if err := cmd.generate(ctx, argv[0], logger); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(cmd.stderr, err)
		}
		return 1
	}
	return 0
}

func (cmd *cmdGenerate) generate(ctx context.Context, manifestPath string, logger zerolog.Logger) error {
	proj, err := loadProject(ctx, manifestPath, cmd.overrides, logger)
	if err != nil {
		return err
	}

	result := proj.generate(logger)
	printDiagnostics(cmd.stderr, &result)
	if result.Err() != nil {
		return errReported
	}

	files := result.Files
	if cmd.pluginPath != "" {
		wasmBin, err := os.ReadFile(cmd.pluginPath)
		if err != nil {
			return err
		}
		files, err = plugin.Run(ctx, wasmBin, &plugin.Request{
			Plans:         result.Plans,
			GoPackage:     proj.opts.GoPackage,
			RuntimeImport: proj.runtimeImport(),
		}, logger)
		if err != nil {
			return err
		}
	}

	if err := codegen.WriteFiles(ctx, proj.opts.Output, files); err != nil {
		return err
	}
	logger.Info().
		Str("output", proj.opts.Output).
		Int("files", len(files)).
		Int("warnings", len(result.Warnings)).
		Msg("generated")
	return nil
}
