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

package plugin

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"

	"github.com/actor-rtc/actr-go/codegen"
	"github.com/actor-rtc/actr-go/internal/testutil"
)

func TestOutputPath(t *testing.T) {
	p, err := OutputPath([]string{"echo", "v1", "echo.go"})
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "echo/v1/echo.go", p)

	bad := [][]string{
		nil,
		{""},
		{"."},
		{"..", "escape.go"},
		{"/etc", "passwd"},
		{"a/b.go"},
		{`a\b.go`},
		{"nul\x00.go"},
	}
	for _, parts := range bad {
		_, err := OutputPath(parts)
		if err == nil {
			t.Errorf("OutputPath(%#v): expected error", parts)
		}
	}
}

func TestEncodeRequest(t *testing.T) {
	buf, err := EncodeRequest(&Request{
		Plans:     &codegen.PlanSet{},
		GoPackage: "echopb",
	})
	testutil.AssertNoError(t, err)

	body, err := unframe(buf)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, len(buf)-4, len(body))

	var decoded map[string]any
	testutil.AssertNoError(t, json.Unmarshal(body, &decoded))
	testutil.ExpectEq(t, "echopb", decoded["go_package"].(string))
	testutil.ExpectTrue(t, decoded["plans"] != nil)
}

func TestDecodeResponse(t *testing.T) {
	buf := frame([]byte(`{"files":[{"path":["echo","echo.go"],"content":"cGFja2FnZSBlY2hv"}]}`))
	resp, err := DecodeResponse(buf)
	testutil.AssertNoError(t, err)

	files, err := resp.OutputFiles()
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, 1, len(files))
	testutil.ExpectEq(t, "echo/echo.go", files[0].Path)
	testutil.ExpectEq(t, "package echo", string(files[0].Content))

	_, err = DecodeResponse([]byte{1, 0})
	testutil.AssertError(t, err)
	testutil.ExpectContains(t, err.Error(), "short frame")
	_, err = DecodeResponse([]byte{9, 0, 0, 0, '{'})
	testutil.AssertError(t, err)
	testutil.ExpectContains(t, err.Error(), "exceeds")
}

func TestOutputFiles(t *testing.T) {
	_, err := (&Response{}).OutputFiles()
	testutil.ExpectErrorIs(t, err, ErrNoOutput)

	_, err = (&Response{Files: []OutputFile{
		{Path: []string{"a.go"}},
		{Path: []string{"a.go"}},
	}}).OutputFiles()
	testutil.AssertError(t, err)
	testutil.ExpectContains(t, err.Error(), "duplicate output path")

	_, err = (&Response{Files: []OutputFile{
		{Path: []string{"..", "a.go"}},
	}}).OutputFiles()
	testutil.AssertError(t, err)
	testutil.ExpectContains(t, err.Error(), "bad path component")
}

func TestRun_InvalidModule(t *testing.T) {
	ctx := context.Background()
	req := &Request{Plans: &codegen.PlanSet{}}

	_, err := Run(ctx, []byte("not wasm"), req, zerolog.Nop())
	testutil.AssertError(t, err)
	testutil.ExpectContains(t, err.Error(), "plugin: compile")

	emptyModule := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	_, err = Run(ctx, emptyModule, req, zerolog.Nop())
	testutil.AssertError(t, err)
	testutil.ExpectContains(t, err.Error(), "exports no memory")
}

func fixtureResponse(t *testing.T, resp *Response) []byte {
	t.Helper()
	body, err := json.Marshal(resp)
	testutil.AssertNoError(t, err)
	return frame(body)
}

func TestRun(t *testing.T) {
	module := fixtureModule(0, fixtureResponse(t, &Response{Files: []OutputFile{
		{Path: []string{"greeter", "greeter.go"}, Content: []byte("package greeter\n")},
		{Path: []string{"dispatch.go"}, Content: []byte("package greeterpb\n")},
	}}))

	files, err := Run(context.Background(), module, &Request{
		Plans:     &codegen.PlanSet{},
		GoPackage: "greeterpb",
	}, zerolog.Nop())
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, 2, len(files))
	testutil.ExpectEq(t, "greeter/greeter.go", files[0].Path)
	testutil.ExpectEq(t, "package greeter\n", string(files[0].Content))
	testutil.ExpectEq(t, "dispatch.go", files[1].Path)
}

func TestRun_PluginError(t *testing.T) {
	module := fixtureModule(1, fixtureResponse(t, &Response{Error: "unsupported field kind\n"}))
	_, err := Run(context.Background(), module, &Request{Plans: &codegen.PlanSet{}}, zerolog.Nop())
	testutil.AssertError(t, err)
	testutil.ExpectEq(t, "plugin: unsupported field kind", err.Error())

	module = fixtureModule(3, fixtureResponse(t, &Response{}))
	_, err = Run(context.Background(), module, &Request{Plans: &codegen.PlanSet{}}, zerolog.Nop())
	testutil.AssertError(t, err)
	testutil.ExpectEq(t, "plugin: exit code 3", err.Error())
}

func TestRun_InvalidOutput(t *testing.T) {
	module := fixtureModule(0, fixtureResponse(t, &Response{}))
	_, err := Run(context.Background(), module, &Request{Plans: &codegen.PlanSet{}}, zerolog.Nop())
	testutil.ExpectErrorIs(t, err, ErrNoOutput)

	module = fixtureModule(0, fixtureResponse(t, &Response{Files: []OutputFile{
		{Path: []string{"..", "escape.go"}},
	}}))
	_, err = Run(context.Background(), module, &Request{Plans: &codegen.PlanSet{}}, zerolog.Nop())
	testutil.AssertError(t, err)
	testutil.ExpectContains(t, err.Error(), "bad path component")
}
