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
	stdflag "flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/actor-rtc/actr-go/internal/logging"
)

type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(ctx context.Context, argv []string) int
}

type commandHelp struct {
	usage   string
	summary string
}

// cmdEnv is shared by every subcommand.
type cmdEnv struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	logLevel string
}

func (env *cmdEnv) logger() zerolog.Logger {
	return logging.New(env.stderr, logging.Level(env.logLevel))
}

func (env *cmdEnv) fail(err error) int {
	fmt.Fprintln(env.stderr, err)
	return 1
}

func main() {
	ctx := context.Background()
	env := &cmdEnv{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	actrgenCmd := &cobra.Command{
		Use:   "actrgen [options] COMMAND",
		Short: "Generate Go codecs and actor client stubs from protobuf schemas",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	actrgenCmd.RunE = func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(os.Stderr, actrgenCmd.UsageString())
		os.Exit(1)
		return nil
	}
	actrgenCmd.PersistentFlags().StringVar(
		&env.logLevel, "log-level", "",
		"log level (trace, debug, info, warn, error, off); default $"+logging.EnvLogLevel+" or info",
	)

	commands := []command{
		&cmdGenerate{cmdEnv: env},
		&cmdDescribe{cmdEnv: env},
		&cmdDecode{cmdEnv: env},
	}
	for _, cmd := range commands {
		help := cmd.help()
		cobraCmd := &cobra.Command{
			Use:   help.usage,
			Short: help.summary,
			RunE: func(_ *cobra.Command, args []string) error {
				os.Exit(cmd.run(ctx, args))
				return nil
			},
		}
		actrgenCmd.AddCommand(cobraCmd)
		cmd.flags(cobraCmd.Flags())
	}

	actrgenCmd.Flags().AddGoFlagSet(stdflag.CommandLine)
	actrgenCmd.ParseFlags(nil)
	if _, err := actrgenCmd.ExecuteC(); err != nil {
		os.Exit(1)
	}
}
