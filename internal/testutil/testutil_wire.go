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

package testutil

import (
	"github.com/actor-rtc/actr-go/wire"
)

// NestedMessage encodes a message that holds itself through field num,
// levels deep, with an empty innermost message. The payload is built in
// linear time, so very deep nestings are cheap to construct.
func NestedMessage(num wire.Number, levels int) []byte {
	tag := wire.AppendTag(nil, num, wire.BytesType)

	// sizes[ii] is the encoded size of a message with ii levels below it.
	sizes := make([]int, levels+1)
	for ii := 1; ii <= levels; ii++ {
		inner := sizes[ii-1]
		sizes[ii] = len(tag) + len(wire.AppendVarint(nil, uint64(inner))) + inner
	}

	buf := make([]byte, 0, sizes[levels])
	for ii := levels; ii >= 1; ii-- {
		buf = append(buf, tag...)
		buf = wire.AppendVarint(buf, uint64(sizes[ii-1]))
	}
	return buf
}
