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

// Package plugin runs external renderers compiled to WebAssembly.
//
// A plugin exports linear memory and two functions:
//
//	actrgen_allocate(len u32) -> ptr u32
//	actrgen_generate(request_ptr u32, response_ptr_ptr u32) -> rc u8
//
// The host allocates a buffer for the request, writes it, allocates a
// 4-byte cell and calls actrgen_generate, which stores the address of its
// response in that cell. Requests and responses are framed as a 4-byte
// little-endian length followed by a JSON document. A non-zero rc means
// the response carries an error message.
package plugin

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/actor-rtc/actr-go/codegen"
)

const (
	allocateExport = "actrgen_allocate"
	generateExport = "actrgen_generate"

	// 1 GiB of linear memory.
	memoryLimitPages = 16384
)

var ErrNoOutput = errors.New("plugin did not generate any output files")

type Request struct {
	Plans         *codegen.PlanSet `json:"plans"`
	GoPackage     string           `json:"go_package"`
	RuntimeImport string           `json:"runtime_import"`
}

type Response struct {
	Error string       `json:"error,omitempty"`
	Files []OutputFile `json:"files,omitempty"`
}

// OutputFile is one generated file. Path is split into components, each of
// which must be a plain file or directory name.
type OutputFile struct {
	Path    []string `json:"path"`
	Content []byte   `json:"content"`
}

// Run loads the plugin in wasmBin, sends it req and returns the files it
// generated.
func Run(ctx context.Context, wasmBin []byte, req *Request, logger zerolog.Logger) ([]*codegen.File, error) {
	requestBuf, err := EncodeRequest(req)
	if err != nil {
		return nil, err
	}

	runtimeConfig := wazero.NewRuntimeConfigInterpreter().
		WithMemoryLimitPages(memoryLimitPages)
	runtime := wazero.NewRuntimeWithConfig(ctx, runtimeConfig)
	defer runtime.Close(ctx)

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, runtime); err != nil {
		return nil, fmt.Errorf("plugin: instantiate WASI: %w", err)
	}
	compiled, err := runtime.CompileModule(ctx, wasmBin)
	if err != nil {
		return nil, fmt.Errorf("plugin: compile: %w", err)
	}
	moduleConfig := wazero.NewModuleConfig().
		WithStartFunctions("_initialize")
	mod, err := runtime.InstantiateModule(ctx, compiled, moduleConfig)
	if err != nil {
		return nil, fmt.Errorf("plugin: instantiate: %w", err)
	}

	mem := mod.Memory()
	if mem == nil {
		return nil, errors.New("plugin: module exports no memory")
	}
	allocate := mod.ExportedFunction(allocateExport)
	generate := mod.ExportedFunction(generateExport)
	if allocate == nil || generate == nil {
		return nil, fmt.Errorf("plugin: module must export %s and %s", allocateExport, generateExport)
	}

	results, err := allocate.Call(ctx, uint64(len(requestBuf)))
	if err != nil {
		return nil, fmt.Errorf("plugin: allocate request: %w", err)
	}
	requestPtr := uint32(results[0])
	if !mem.Write(requestPtr, requestBuf) {
		return nil, errors.New("plugin: request buffer out of range")
	}

	results, err = allocate.Call(ctx, 4)
	if err != nil {
		return nil, fmt.Errorf("plugin: allocate response cell: %w", err)
	}
	responsePtrPtr := uint32(results[0])

	logger.Debug().Int("request_bytes", len(requestBuf)).Msg("calling plugin")
	results, err = generate.Call(ctx, uint64(requestPtr), uint64(responsePtrPtr))
	if err != nil {
		return nil, fmt.Errorf("plugin: generate: %w", err)
	}
	rc := uint8(results[0])

	responsePtr, ok := mem.ReadUint32Le(responsePtrPtr)
	if !ok {
		return nil, errors.New("plugin: failed to read response address")
	}
	responseLen, ok := mem.ReadUint32Le(responsePtr)
	if !ok {
		return nil, errors.New("plugin: failed to read response length")
	}
	responseBuf, ok := mem.Read(responsePtr, 4+responseLen)
	if !ok {
		return nil, errors.New("plugin: failed to read response")
	}

	resp, err := DecodeResponse(responseBuf)
	if err != nil {
		return nil, err
	}
	if rc != 0 {
		msg := strings.TrimSpace(resp.Error)
		if msg == "" {
			msg = fmt.Sprintf("exit code %d", rc)
		}
		return nil, fmt.Errorf("plugin: %s", msg)
	}
	return resp.OutputFiles()
}

// EncodeRequest frames req for a plugin.
func EncodeRequest(req *Request) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("plugin: encode request: %w", err)
	}
	return frame(body), nil
}

// DecodeResponse reads a framed response.
func DecodeResponse(buf []byte) (*Response, error) {
	body, err := unframe(buf)
	if err != nil {
		return nil, fmt.Errorf("plugin: decode response: %w", err)
	}
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("plugin: decode response: %w", err)
	}
	return &resp, nil
}

// OutputFiles validates the response's paths and converts its files.
func (resp *Response) OutputFiles() ([]*codegen.File, error) {
	if len(resp.Files) == 0 {
		return nil, ErrNoOutput
	}
	files := make([]*codegen.File, 0, len(resp.Files))
	seen := make(map[string]bool, len(resp.Files))
	for _, file := range resp.Files {
		p, err := OutputPath(file.Path)
		if err != nil {
			return nil, err
		}
		if seen[p] {
			return nil, fmt.Errorf("plugin: duplicate output path %q", p)
		}
		seen[p] = true
		files = append(files, &codegen.File{Path: p, Content: file.Content})
	}
	return files, nil
}

// OutputPath joins the components of a plugin output path, rejecting any
// component that could escape the output directory.
func OutputPath(parts []string) (string, error) {
	if len(parts) == 0 {
		return "", fmt.Errorf("invalid output path %#v: empty", parts)
	}
	for _, part := range parts {
		if part == "" || part == "." || part == ".." {
			return "", fmt.Errorf("invalid output path %#v: bad path component %q", parts, part)
		}
		if strings.ContainsAny(part, `/\`) {
			return "", fmt.Errorf("invalid output path %#v: component %q contains a separator", parts, part)
		}
		if strings.ContainsRune(part, 0) {
			return "", fmt.Errorf("invalid output path %#v: component %q contains NUL", parts, part)
		}
	}
	return path.Join(parts...), nil
}

func frame(body []byte) []byte {
	buf := make([]byte, 4, 4+len(body))
	binary.LittleEndian.PutUint32(buf, uint32(len(body)))
	return append(buf, body...)
}

func unframe(buf []byte) ([]byte, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("short frame (%d bytes)", len(buf))
	}
	n := binary.LittleEndian.Uint32(buf)
	if uint64(n) > uint64(len(buf)-4) {
		return nil, fmt.Errorf("frame length %d exceeds %d available bytes", n, len(buf)-4)
	}
	return buf[4 : 4+n], nil
}
