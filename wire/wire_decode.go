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

package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

var (
	ErrUnsupportedWireType = errors.New("unsupported wire type")
	ErrWireTypeMismatch    = errors.New("wire type mismatch")
	ErrValueOutOfRange     = errors.New("value out of range")
	ErrTruncated           = errors.New("truncated input")
	ErrMalformed           = errors.New("malformed input")
	ErrRecursionLimit      = errors.New("exceeded maximum recursion depth")
)

// RecursionLimit is the deepest nesting of messages a decoder accepts,
// counting the outermost message.
const RecursionLimit = 10000

// Decoder reads (tag, value) units from an encoded message. The value of
// each unit is consumed by Next before the caller inspects the field
// number, so skipping an unknown field is a no-op.
type Decoder struct {
	buf []byte
	off int
}

func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

func (d *Decoder) Done() bool {
	return d.off >= len(d.buf)
}

func (d *Decoder) Offset() int {
	return d.off
}

func (d *Decoder) Next() (Field, error) {
	rest := d.buf[d.off:]
	num, typ, n := protowire.ConsumeTag(rest)
	if n < 0 {
		return Field{}, consumeError(n)
	}
	rest = rest[n:]

	f := Field{Num: num, Type: typ}
	var m int
	switch typ {
	case protowire.VarintType:
		f.bits, m = protowire.ConsumeVarint(rest)
	case protowire.Fixed64Type:
		f.bits, m = protowire.ConsumeFixed64(rest)
	case protowire.BytesType:
		f.raw, m = protowire.ConsumeBytes(rest)
	case protowire.Fixed32Type:
		var v uint32
		v, m = protowire.ConsumeFixed32(rest)
		f.bits = uint64(v)
	default:
		return Field{}, fmt.Errorf("%w %d (field %d)", ErrUnsupportedWireType, typ, num)
	}
	if m < 0 {
		return Field{}, fmt.Errorf("field %d: %w", num, consumeError(m))
	}
	d.off += n + m
	return f, nil
}

func consumeError(n int) error {
	err := protowire.ParseError(n)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return fmt.Errorf("%w: %v", ErrMalformed, err)
}

// Field is one decoded (tag, value) unit.
type Field struct {
	Num  Number
	Type Type

	bits uint64
	raw  []byte
}

func (f Field) expect(typ Type) error {
	if f.Type != typ {
		return fmt.Errorf("%w: got %d, want %d", ErrWireTypeMismatch, f.Type, typ)
	}
	return nil
}

func (f Field) Int32() (int32, error) {
	if err := f.expect(VarintType); err != nil {
		return 0, err
	}
	v := int64(f.bits)
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d does not fit int32", ErrValueOutOfRange, v)
	}
	return int32(v), nil
}

func (f Field) Int64() (int64, error) {
	if err := f.expect(VarintType); err != nil {
		return 0, err
	}
	return int64(f.bits), nil
}

func (f Field) Uint32() (uint32, error) {
	if err := f.expect(VarintType); err != nil {
		return 0, err
	}
	if f.bits > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d does not fit uint32", ErrValueOutOfRange, f.bits)
	}
	return uint32(f.bits), nil
}

func (f Field) Uint64() (uint64, error) {
	if err := f.expect(VarintType); err != nil {
		return 0, err
	}
	return f.bits, nil
}

func (f Field) Sint32() (int32, error) {
	if err := f.expect(VarintType); err != nil {
		return 0, err
	}
	if f.bits > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d does not fit sint32", ErrValueOutOfRange, f.bits)
	}
	return UnZigZag32(uint32(f.bits)), nil
}

func (f Field) Sint64() (int64, error) {
	if err := f.expect(VarintType); err != nil {
		return 0, err
	}
	return UnZigZag64(f.bits), nil
}

func (f Field) Bool() (bool, error) {
	if err := f.expect(VarintType); err != nil {
		return false, err
	}
	return protowire.DecodeBool(f.bits), nil
}

func (f Field) Enum() (int32, error) {
	return f.Int32()
}

func (f Field) Fixed32() (uint32, error) {
	if err := f.expect(Fixed32Type); err != nil {
		return 0, err
	}
	return uint32(f.bits), nil
}

func (f Field) Sfixed32() (int32, error) {
	v, err := f.Fixed32()
	return int32(v), err
}

func (f Field) Float() (float32, error) {
	v, err := f.Fixed32()
	return math.Float32frombits(v), err
}

func (f Field) Fixed64() (uint64, error) {
	if err := f.expect(Fixed64Type); err != nil {
		return 0, err
	}
	return f.bits, nil
}

func (f Field) Sfixed64() (int64, error) {
	v, err := f.Fixed64()
	return int64(v), err
}

func (f Field) Double() (float64, error) {
	v, err := f.Fixed64()
	return math.Float64frombits(v), err
}

func (f Field) Text() (string, error) {
	if err := f.expect(BytesType); err != nil {
		return "", err
	}
	return string(f.raw), nil
}

// Bytes returns a copy of the field value; an empty value is nil.
func (f Field) Bytes() ([]byte, error) {
	if err := f.expect(BytesType); err != nil {
		return nil, err
	}
	if len(f.raw) == 0 {
		return nil, nil
	}
	return bytes.Clone(f.raw), nil
}

// Message returns the encoded sub-message. The slice aliases the buffer
// passed to NewDecoder.
func (f Field) Message() ([]byte, error) {
	if err := f.expect(BytesType); err != nil {
		return nil, err
	}
	return f.raw, nil
}

// Repeated decodes one occurrence of a repeated scalar field. An
// occurrence carrying the element wire type yields one value. A
// length-delimited occurrence of a numeric field is read as a packed run
// of elements.
func Repeated[T any](f Field, elem Type, get func(Field) (T, error)) ([]T, error) {
	if f.Type == elem || f.Type != BytesType {
		v, err := get(f)
		if err != nil {
			return nil, err
		}
		return []T{v}, nil
	}

	var out []T
	buf := f.raw
	for len(buf) > 0 {
		item := Field{Num: f.Num, Type: elem}
		var n int
		switch elem {
		case VarintType:
			item.bits, n = protowire.ConsumeVarint(buf)
		case Fixed64Type:
			item.bits, n = protowire.ConsumeFixed64(buf)
		case Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(buf)
			item.bits = uint64(v)
		default:
			return nil, fmt.Errorf("%w %d in packed field", ErrUnsupportedWireType, elem)
		}
		if n < 0 {
			return nil, consumeError(n)
		}
		buf = buf[n:]
		v, err := get(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// FieldError annotates a decode failure with the message and field it
// occurred in. Recursion limit errors pass through unchanged, so their
// context is the innermost message only.
func FieldError(message string, num Number, err error) error {
	if errors.Is(err, ErrRecursionLimit) {
		return err
	}
	return fmt.Errorf("decode %s field %d: %w", message, num, err)
}

func MessageError(message string, err error) error {
	return fmt.Errorf("decode %s: %w", message, err)
}
