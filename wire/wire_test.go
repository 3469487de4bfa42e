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

package wire_test

import (
	"math"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/actor-rtc/actr-go/internal/testutil"
	"github.com/actor-rtc/actr-go/wire"
)

func decodeOne(t *testing.T, buf []byte) wire.Field {
	t.Helper()
	d := wire.NewDecoder(buf)
	f, err := d.Next()
	testutil.AssertNoError(t, err)
	testutil.ExpectTrue(t, d.Done())
	return f
}

func TestTag(t *testing.T) {
	numbers := []wire.Number{1, 2, 15, 16, 2047, 2048, protowire.MaxValidNumber}
	types := []wire.Type{wire.VarintType, wire.Fixed64Type, wire.BytesType, wire.Fixed32Type}
	for _, num := range numbers {
		for _, typ := range types {
			testutil.ExpectEq(t, uint64(num)<<3|uint64(typ), wire.EncodeTag(num, typ))

			buf := wire.AppendTag(nil, num, typ)
			v, n := protowire.ConsumeVarint(buf)
			testutil.ExpectEq(t, len(buf), n)
			gotNum, gotType := wire.DecodeTag(v)
			testutil.ExpectEq(t, num, gotNum)
			testutil.ExpectEq(t, typ, gotType)
		}
	}
}

func TestKnownEncodings(t *testing.T) {
	testutil.ExpectBytesEq(t, []byte{0x08, 0x96, 0x01}, wire.AppendInt32(nil, 1, 150))
	testutil.ExpectBytesEq(t, []byte{0x12, 0x02, 'h', 'i'}, wire.AppendString(nil, 2, "hi"))
	testutil.ExpectBytesEq(t, []byte{0x18, 0x03}, wire.AppendSint32(nil, 3, -2))
	testutil.ExpectBytesEq(t, []byte{0x25, 0x01, 0x00, 0x00, 0x00}, wire.AppendFixed32(nil, 4, 1))
	testutil.ExpectBytesEq(t,
		[]byte{0x29, 0x01, 0, 0, 0, 0, 0, 0, 0},
		wire.AppendFixed64(nil, 5, 1),
	)

	// Negative int32 values are sign-extended to ten varint bytes.
	buf := wire.AppendInt32(nil, 1, -1)
	testutil.ExpectEq(t, 11, len(buf))
}

func TestZigZag(t *testing.T) {
	testutil.ExpectEq(t, uint32(0), wire.ZigZag32(0))
	testutil.ExpectEq(t, uint32(1), wire.ZigZag32(-1))
	testutil.ExpectEq(t, uint32(2), wire.ZigZag32(1))
	testutil.ExpectEq(t, uint32(3), wire.ZigZag32(-2))
	testutil.ExpectEq(t, uint32(0xFFFFFFFE), wire.ZigZag32(math.MaxInt32))
	testutil.ExpectEq(t, uint32(0xFFFFFFFF), wire.ZigZag32(math.MinInt32))

	for _, n := range []int32{0, 1, -1, 127, 128, -129, math.MaxInt32, math.MinInt32} {
		testutil.ExpectEq(t, n, wire.UnZigZag32(wire.ZigZag32(n)))
	}
	for _, n := range []int64{0, 1, -1, math.MaxInt32, math.MinInt32, math.MaxInt64, math.MinInt64} {
		testutil.ExpectEq(t, n, wire.UnZigZag64(wire.ZigZag64(n)))
	}
	testutil.ExpectEq(t, uint64(math.MaxUint64), wire.ZigZag64(math.MinInt64))
}

func TestRoundTrip_Int32(t *testing.T) {
	for _, v := range []int32{0, 1, 127, 128, math.MaxInt32, -1, math.MinInt32} {
		got, err := decodeOne(t, wire.AppendInt32(nil, 1, v)).Int32()
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, v, got)
	}
}

func TestRoundTrip_Sint32(t *testing.T) {
	for _, v := range []int32{0, 1, 127, 128, math.MaxInt32, -1, math.MinInt32} {
		got, err := decodeOne(t, wire.AppendSint32(nil, 1, v)).Sint32()
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, v, got)
	}
}

func TestRoundTrip_Uint32(t *testing.T) {
	for _, v := range []uint32{0, 127, 128, math.MaxInt32, math.MaxUint32} {
		got, err := decodeOne(t, wire.AppendUint32(nil, 1, v)).Uint32()
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, v, got)
	}
}

func TestRoundTrip_Wide(t *testing.T) {
	for _, v := range []int64{0, 127, 128, math.MaxInt32, -1, math.MaxInt64, math.MinInt64} {
		got, err := decodeOne(t, wire.AppendInt64(nil, 1, v)).Int64()
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, v, got)

		gotZ, err := decodeOne(t, wire.AppendSint64(nil, 2, v)).Sint64()
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, v, gotZ)

		gotF, err := decodeOne(t, wire.AppendSfixed64(nil, 3, v)).Sfixed64()
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, v, gotF)
	}
	for _, v := range []uint64{0, 1 << 53, 1<<53 + 1, math.MaxUint64} {
		got, err := decodeOne(t, wire.AppendUint64(nil, 1, v)).Uint64()
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, v, got)

		gotF, err := decodeOne(t, wire.AppendFixed64(nil, 2, v)).Fixed64()
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, v, gotF)
	}
}

func TestRoundTrip_Fixed(t *testing.T) {
	for _, v := range []int32{0, 127, 128, math.MaxInt32, -1, math.MinInt32} {
		got, err := decodeOne(t, wire.AppendSfixed32(nil, 1, v)).Sfixed32()
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, v, got)
	}
	for _, v := range []float32{0, 1.5, -2.25, math.MaxFloat32} {
		got, err := decodeOne(t, wire.AppendFloat(nil, 1, v)).Float()
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, v, got)
	}
	for _, v := range []float64{0, 1.5, -2.25, math.MaxFloat64, math.SmallestNonzeroFloat64} {
		got, err := decodeOne(t, wire.AppendDouble(nil, 1, v)).Double()
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, v, got)
	}
}

func TestRoundTrip_LengthDelimited(t *testing.T) {
	for _, v := range []string{"", "hello", string(make([]byte, 300))} {
		got, err := decodeOne(t, wire.AppendString(nil, 7, v)).Text()
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, v, got)
	}

	got, err := decodeOne(t, wire.AppendBytes(nil, 8, []byte{0, 1, 2})).Bytes()
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte{0, 1, 2}, got)

	empty, err := decodeOne(t, wire.AppendBytes(nil, 8, nil)).Bytes()
	testutil.AssertNoError(t, err)
	testutil.ExpectTrue(t, empty == nil)

	for _, v := range []bool{true, false} {
		got, err := decodeOne(t, wire.AppendBool(nil, 9, v)).Bool()
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, v, got)
	}
}

type rawMessage []byte

func (m rawMessage) AppendWire(b []byte) []byte {
	return append(b, m...)
}

func TestAppendMessage(t *testing.T) {
	inner := rawMessage(wire.AppendString(nil, 1, "x"))
	buf := wire.AppendMessage(nil, 3, inner)
	testutil.ExpectBytesEq(t, []byte{0x1A, 0x03, 0x0A, 0x01, 'x'}, buf)

	raw, err := decodeOne(t, buf).Message()
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte(inner), raw)
}

func TestRepeated_Unpacked(t *testing.T) {
	var buf []byte
	for _, v := range []int32{3, 270, 86942} {
		buf = wire.AppendInt32(buf, 4, v)
	}

	d := wire.NewDecoder(buf)
	var got []int32
	units := 0
	for !d.Done() {
		f, err := d.Next()
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, wire.Number(4), f.Num)
		testutil.ExpectEq(t, wire.VarintType, f.Type)
		vs, err := wire.Repeated(f, wire.VarintType, wire.Field.Int32)
		testutil.AssertNoError(t, err)
		got = append(got, vs...)
		units++
	}
	testutil.ExpectEq(t, 3, units)
	testutil.ExpectSliceEq(t, []int32{3, 270, 86942}, got)
}

func TestRepeated_Packed(t *testing.T) {
	buf := []byte{0x22, 0x06, 0x03, 0x8E, 0x02, 0x9E, 0xA7, 0x05}
	f := decodeOne(t, buf)
	got, err := wire.Repeated(f, wire.VarintType, wire.Field.Int32)
	testutil.AssertNoError(t, err)
	testutil.ExpectSliceEq(t, []int32{3, 270, 86942}, got)

	var packed []byte
	packed = protowire.AppendFixed32(packed, math.Float32bits(1.5))
	packed = protowire.AppendFixed32(packed, math.Float32bits(-3))
	fbuf := wire.AppendBytes(nil, 5, packed)
	floats, err := wire.Repeated(decodeOne(t, fbuf), wire.Fixed32Type, wire.Field.Float)
	testutil.AssertNoError(t, err)
	testutil.ExpectSliceEq(t, []float32{1.5, -3}, floats)
}

func TestRepeated_Strings(t *testing.T) {
	var buf []byte
	for _, v := range []string{"a", "b", "c"} {
		buf = wire.AppendString(buf, 1, v)
	}
	testutil.ExpectBytesEq(t, []byte{0x0A, 1, 'a', 0x0A, 1, 'b', 0x0A, 1, 'c'}, buf)
}

func TestDecode_UnsupportedWireType(t *testing.T) {
	for _, buf := range [][]byte{
		{0x0B},             // field 1, start group
		{0x0C},             // field 1, end group
		{0x0E, 0x00},       // field 1, wire type 6
		{0x0F, 0x00, 0x00}, // field 1, wire type 7
	} {
		d := wire.NewDecoder(buf)
		_, err := d.Next()
		testutil.ExpectErrorIs(t, err, wire.ErrUnsupportedWireType)
	}
}

func TestDecode_Truncated(t *testing.T) {
	buf := wire.AppendString(nil, 1, "hello")
	d := wire.NewDecoder(buf[:len(buf)-2])
	_, err := d.Next()
	testutil.ExpectErrorIs(t, err, wire.ErrTruncated)

	d = wire.NewDecoder([]byte{0x08, 0x80})
	_, err = d.Next()
	testutil.ExpectErrorIs(t, err, wire.ErrTruncated)
}

func TestDecode_WireTypeMismatch(t *testing.T) {
	f := decodeOne(t, wire.AppendString(nil, 1, "x"))
	_, err := f.Int32()
	testutil.ExpectErrorIs(t, err, wire.ErrWireTypeMismatch)

	f = decodeOne(t, wire.AppendInt32(nil, 1, 1))
	_, err = f.Text()
	testutil.ExpectErrorIs(t, err, wire.ErrWireTypeMismatch)
}

func TestDecode_OutOfRange(t *testing.T) {
	f := decodeOne(t, wire.AppendUint64(nil, 1, 1<<32))
	_, err := f.Uint32()
	testutil.ExpectErrorIs(t, err, wire.ErrValueOutOfRange)

	f = decodeOne(t, wire.AppendInt64(nil, 1, math.MaxInt32+1))
	_, err = f.Int32()
	testutil.ExpectErrorIs(t, err, wire.ErrValueOutOfRange)

	f = decodeOne(t, wire.AppendUint64(nil, 1, math.MaxUint64))
	_, err = f.Sint32()
	testutil.ExpectErrorIs(t, err, wire.ErrValueOutOfRange)
}

func TestDecode_SkipsUnknownFields(t *testing.T) {
	var buf []byte
	buf = wire.AppendFixed32(buf, 90, 7)
	buf = wire.AppendFixed64(buf, 91, 7)
	buf = wire.AppendString(buf, 92, "skip")
	buf = wire.AppendInt64(buf, 93, -5)
	buf = wire.AppendString(buf, 1, "kept")

	d := wire.NewDecoder(buf)
	var kept string
	for !d.Done() {
		f, err := d.Next()
		testutil.AssertNoError(t, err)
		if f.Num == 1 {
			kept, err = f.Text()
			testutil.AssertNoError(t, err)
		}
	}
	testutil.ExpectEq(t, "kept", kept)
	testutil.ExpectEq(t, len(buf), d.Offset())
}

func TestFieldError(t *testing.T) {
	err := wire.FieldError("pkg.Outer", 3, wire.ErrTruncated)
	testutil.ExpectErrorIs(t, err, wire.ErrTruncated)
	testutil.ExpectEq(t, "decode pkg.Outer field 3: truncated input", err.Error())

	limit := wire.MessageError("pkg.Inner", wire.ErrRecursionLimit)
	err = wire.FieldError("pkg.Outer", 3, limit)
	testutil.ExpectErrorIs(t, err, wire.ErrRecursionLimit)
	testutil.ExpectEq(t, limit.Error(), err.Error())
}
