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
	"os"

	"github.com/spf13/pflag"

	"github.com/actor-rtc/actr-go/codegen"
	"github.com/actor-rtc/actr-go/dynamic"
	"github.com/actor-rtc/actr-go/manifest"
)

type cmdDecode struct {
	*cmdEnv
	overrides   manifest.Overrides
	messageType string
}

func (*cmdDecode) help() *commandHelp {
	return &commandHelp{
		usage:   "decode MANIFEST [FILE]",
		summary: "Decode a binary message and print it in text form",
	}
}

func (cmd *cmdDecode) flags(flags *pflag.FlagSet) {
	flags.StringVar(&cmd.messageType, "type", "", "fully-qualified message type of the input")
	flags.StringVar(&cmd.overrides.ProtoRoot, "proto-root", "", "directory containing .proto files")
	flags.StringVar(&cmd.overrides.Lock, "lock", "", "lock file")
}

func (cmd *cmdDecode) run(ctx context.Context, argv []string) int {
	if len(argv) < 1 || len(argv) > 2 {
		fmt.Fprintln(cmd.stderr, "usage: actrgen decode MANIFEST --type=FQN [FILE]")
		return 1
	}
	if cmd.messageType == "" {
		fmt.Fprintln(cmd.stderr, "No message type specified (set --type=)")
		return 1
	}

	var input []byte
	var err error
	if len(argv) == 2 && argv[1] != "-" {
		input, err = os.ReadFile(argv[1])
	} else {
		input, err = io.ReadAll(cmd.stdin)
	}
	if err != nil {
		return cmd.fail(err)
	}

	proj, err := loadProject(ctx, argv[0], cmd.overrides, cmd.logger())
	if err != nil {
		return cmd.fail(err)
	}
	plans, err := codegen.Plans(proj.set)
	if err != nil {
		return cmd.fail(err)
	}
	msg, err := dynamic.Decode(plans, cmd.messageType, input)
	if err != nil {
		return cmd.fail(err)
	}
	if err := dynamic.TextTo(cmd.stdout, plans, cmd.messageType, msg); err != nil {
		return cmd.fail(err)
	}
	return 0
}
