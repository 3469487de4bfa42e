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

package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"

	"github.com/actor-rtc/actr-go/internal/testutil"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want zerolog.Level
		ok   bool
	}{
		{"", zerolog.InfoLevel, false},
		{"trace", zerolog.TraceLevel, true},
		{" DEBUG ", zerolog.DebugLevel, true},
		{"info", zerolog.InfoLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"error", zerolog.ErrorLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.InfoLevel, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.raw)
		testutil.ExpectEq(t, tt.want, got)
		testutil.ExpectEq(t, tt.ok, ok)
	}
}

func TestLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	testutil.ExpectEq(t, zerolog.DebugLevel, Level(""))
	testutil.ExpectEq(t, zerolog.ErrorLevel, Level("error"))

	t.Setenv(EnvLogLevel, "bogus")
	testutil.ExpectEq(t, zerolog.InfoLevel, Level(""))
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.WarnLevel)
	logger.Info().Msg("hidden")
	logger.Warn().Str("file", "echo.proto").Msg("shown")

	out := buf.String()
	testutil.ExpectNotContains(t, out, "hidden")
	testutil.ExpectContains(t, out, "shown")
	testutil.ExpectContains(t, out, "file=echo.proto")
	testutil.ExpectNotContains(t, out, "\x1b[")
}
