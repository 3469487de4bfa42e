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
	"bytes"
)

// Fixture modules are assembled by hand. Each exports its memory, a bump
// allocator as actrgen_allocate, and an actrgen_generate that stores the
// address of a response baked into a data segment and returns a fixed rc.

const (
	fixtureResponseAddr = 1024
	fixtureHeapBase     = 8192
)

func uleb(v uint32) []byte {
	var out []byte
	for {
		c := byte(v & 0x7F)
		v >>= 7
		if v == 0 {
			return append(out, c)
		}
		out = append(out, c|0x80)
	}
}

func sleb(v int32) []byte {
	var out []byte
	for {
		c := byte(v & 0x7F)
		v >>= 7
		if (v == 0 && c&0x40 == 0) || (v == -1 && c&0x40 != 0) {
			return append(out, c)
		}
		out = append(out, c|0x80)
	}
}

func wasmName(s string) []byte {
	return append(uleb(uint32(len(s))), s...)
}

func wasmSection(id byte, parts ...[]byte) []byte {
	body := bytes.Join(parts, nil)
	out := append([]byte{id}, uleb(uint32(len(body)))...)
	return append(out, body...)
}

func fixtureModule(rc int32, response []byte) []byte {
	const (
		i32      = 0x7F
		funcType = 0x60
	)
	allocate := []byte{
		0x00,       // no locals
		0x23, 0x00, // global.get 0
		0x23, 0x00, // global.get 0
		0x20, 0x00, // local.get 0
		0x6A,       // i32.add
		0x24, 0x00, // global.set 0
		0x0B,
	}
	generate := bytes.Join([][]byte{
		{0x00},       // no locals
		{0x20, 0x01}, // local.get 1
		{0x41}, sleb(fixtureResponseAddr),
		{0x36, 0x02, 0x00}, // i32.store align=4
		{0x41}, sleb(rc),
		{0x0B},
	}, nil)

	return bytes.Join([][]byte{
		{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00},
		wasmSection(0x01, // types
			[]byte{0x02},
			[]byte{funcType, 0x01, i32, 0x01, i32},
			[]byte{funcType, 0x02, i32, i32, 0x01, i32},
		),
		wasmSection(0x03, []byte{0x02, 0x00, 0x01}), // functions
		wasmSection(0x05, []byte{0x01, 0x00, 0x02}), // memory, min 2 pages
		wasmSection(0x06, // globals
			[]byte{0x01, i32, 0x01, 0x41}, sleb(fixtureHeapBase), []byte{0x0B},
		),
		wasmSection(0x07, // exports
			[]byte{0x03},
			wasmName("memory"), []byte{0x02, 0x00},
			wasmName(allocateExport), []byte{0x00, 0x00},
			wasmName(generateExport), []byte{0x00, 0x01},
		),
		wasmSection(0x0A, // code
			[]byte{0x02},
			uleb(uint32(len(allocate))), allocate,
			uleb(uint32(len(generate))), generate,
		),
		wasmSection(0x0B, // data
			[]byte{0x01, 0x00, 0x41}, sleb(fixtureResponseAddr), []byte{0x0B},
			uleb(uint32(len(response))), response,
		),
	}, nil)
}
