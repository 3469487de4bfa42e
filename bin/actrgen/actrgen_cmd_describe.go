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
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/actor-rtc/actr-go/codegen"
	"github.com/actor-rtc/actr-go/manifest"
)

type cmdDescribe struct {
	*cmdEnv
	overrides manifest.Overrides
}

func (*cmdDescribe) help() *commandHelp {
	return &commandHelp{
		usage:   "describe MANIFEST",
		summary: "Print the resolved identifiers, routes, and target actor types",
	}
}

func (cmd *cmdDescribe) flags(flags *pflag.FlagSet) {
	flags.StringVar(&cmd.overrides.ProtoRoot, "proto-root", "", "directory containing .proto files")
	flags.StringVar(&cmd.overrides.Lock, "lock", "", "lock file")
}

func (cmd *cmdDescribe) run(ctx context.Context, argv []string) int {
	if len(argv) != 1 {
		fmt.Fprintln(cmd.stderr, "usage: actrgen describe MANIFEST")
		return 1
	}
	logger := cmd.logger()
	proj, err := loadProject(ctx, argv[0], cmd.overrides, logger)
	if err != nil {
		return cmd.fail(err)
	}
	result := proj.generate(logger)
	printDiagnostics(cmd.stderr, &result)
	if result.Err() != nil {
		return 1
	}
	describePlans(cmd.stdout, result.Plans)
	return 0
}

func describePlans(w io.Writer, ps *codegen.PlanSet) {
	for ii, pp := range ps.Packages {
		if ii > 0 {
			fmt.Fprintln(w)
		}
		name := pp.Name
		if name == "" {
			name = "(root)"
		}
		fmt.Fprintf(w, "package %s (%s)\n", name, pp.FileBase)
		for _, plan := range pp.Messages {
			fmt.Fprintf(w, "  message %s -> %s\n", plan.FullName, plan.Ident)
			for _, f := range plan.Fields {
				label := ""
				if f.Repeated {
					label = "repeated "
				}
				typ := f.Kind.String()
				if f.Message != "" {
					typ = f.Message
				}
				fmt.Fprintf(w, "    %d %s%s %s -> %s\n", f.Number, label, typ, f.Name, f.GoName)
			}
		}
		for _, route := range pp.Routes {
			fmt.Fprintf(w, "  route %s -> %s\n", route.Key, route.RouteConst())
			fmt.Fprintf(w, "    request %s, response %s\n", route.Request, route.Response)
			fmt.Fprintf(w, "    target %s\n", route.Target)
			fmt.Fprintf(w, "    stubs %s\n", strings.Join([]string{
				route.EncodeRequestFn(),
				route.DecodeResponseFn(),
			}, ", "))
		}
	}
}
