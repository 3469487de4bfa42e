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

// Package wire is the protobuf wire-format runtime used by generated codecs.
//
// Encoding is append-style: every Append function writes one complete
// (tag, value) unit for a single field occurrence. Repeated fields are
// written as one unit per element; this package never emits packed
// encodings.
package wire

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

type Number = protowire.Number

type Type = protowire.Type

const (
	VarintType  Type = protowire.VarintType
	Fixed64Type Type = protowire.Fixed64Type
	BytesType   Type = protowire.BytesType
	Fixed32Type Type = protowire.Fixed32Type
)

// Message is implemented by every generated message type.
type Message interface {
	AppendWire(b []byte) []byte
}

func EncodeTag(num Number, typ Type) uint64 {
	return protowire.EncodeTag(num, typ)
}

func DecodeTag(tag uint64) (Number, Type) {
	return protowire.DecodeTag(tag)
}

func ZigZag32(n int32) uint32 {
	return uint32((n << 1) ^ (n >> 31))
}

func UnZigZag32(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

func ZigZag64(n int64) uint64 {
	return protowire.EncodeZigZag(n)
}

func UnZigZag64(u uint64) int64 {
	return protowire.DecodeZigZag(u)
}

func AppendTag(b []byte, num Number, typ Type) []byte {
	return protowire.AppendTag(b, num, typ)
}

func AppendVarint(b []byte, v uint64) []byte {
	return protowire.AppendVarint(b, v)
}

// Varint fields {{{

func AppendInt32(b []byte, num Number, v int32) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

func AppendInt64(b []byte, num Number, v int64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func AppendUint32(b []byte, num Number, v uint32) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func AppendUint64(b []byte, num Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func AppendSint32(b []byte, num Number, v int32) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(ZigZag32(v)))
}

func AppendSint64(b []byte, num Number, v int64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, ZigZag64(v))
}

func AppendBool(b []byte, num Number, v bool) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func AppendEnum(b []byte, num Number, v int32) []byte {
	return AppendInt32(b, num, v)
}

// }}}

// Fixed-width fields {{{

func AppendFixed32(b []byte, num Number, v uint32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, v)
}

func AppendSfixed32(b []byte, num Number, v int32) []byte {
	return AppendFixed32(b, num, uint32(v))
}

func AppendFloat(b []byte, num Number, v float32) []byte {
	return AppendFixed32(b, num, math.Float32bits(v))
}

func AppendFixed64(b []byte, num Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, v)
}

func AppendSfixed64(b []byte, num Number, v int64) []byte {
	return AppendFixed64(b, num, uint64(v))
}

func AppendDouble(b []byte, num Number, v float64) []byte {
	return AppendFixed64(b, num, math.Float64bits(v))
}

// }}}

// Length-delimited fields {{{

func AppendString(b []byte, num Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func AppendBytes(b []byte, num Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func AppendMessage(b []byte, num Number, m Message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.AppendWire(nil))
}

// }}}
