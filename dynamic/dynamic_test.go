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

package dynamic_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/actor-rtc/actr-go/codegen"
	"github.com/actor-rtc/actr-go/dynamic"
	"github.com/actor-rtc/actr-go/internal/echopb"
	"github.com/actor-rtc/actr-go/internal/testutil"
	"github.com/actor-rtc/actr-go/schema"
	"github.com/actor-rtc/actr-go/wire"
)

func echoPlans(t *testing.T) *codegen.PlanSet {
	t.Helper()
	set, err := schema.Load(
		context.Background(),
		filepath.Join("..", "internal", "echopb"),
		[]string{"echo.proto"},
	)
	testutil.AssertNoError(t, err)
	plans, err := codegen.Plans(set)
	testutil.AssertNoError(t, err)
	return plans
}

const scalarsProto = `
syntax = "proto3";
package scalars;

message All {
  double f_double = 1;
  float f_float = 2;
  int32 f_int32 = 3;
  int64 f_int64 = 4;
  uint32 f_uint32 = 5;
  uint64 f_uint64 = 6;
  sint32 f_sint32 = 7;
  sint64 f_sint64 = 8;
  fixed32 f_fixed32 = 9;
  fixed64 f_fixed64 = 10;
  sfixed32 f_sfixed32 = 11;
  sfixed64 f_sfixed64 = 12;
  bool f_bool = 13;
  string f_string = 14;
  bytes f_bytes = 15;
  Color f_enum = 16;
}

enum Color {
  COLOR_UNSPECIFIED = 0;
  COLOR_RED = 1;
}
`

func TestEncode_MatchesGenerated(t *testing.T) {
	plans := echoPlans(t)

	generated, err := (&echopb.Echo_EchoResponse{
		Reply:   "pong",
		Codes:   []int32{3, -3},
		Meta:    &echopb.Echo_EchoResponse_Meta{Id: 9, Ok: true},
		History: []*echopb.Echo_EchoResponse_Meta{{Id: 1}, {Ok: true}},
		Blob:    []byte{0xCA, 0xFE},
		Seq:     math.MaxUint64,
		Score:   0.5,
	}).MarshalBinary()
	testutil.AssertNoError(t, err)

	dyn, err := dynamic.Encode(plans, "echo.EchoResponse", dynamic.Message{
		"reply": "pong",
		"codes": []any{int32(3), int32(-3)},
		"meta":  dynamic.Message{"id": uint32(9), "ok": true},
		"history": []any{
			dynamic.Message{"id": uint32(1)},
			dynamic.Message{"ok": true},
		},
		"blob":  []byte{0xCA, 0xFE},
		"seq":   uint64(math.MaxUint64),
		"score": 0.5,
	})
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, generated, dyn)

	short, err := echopb.Echo_Echo_EncodeRequest("hi")
	testutil.AssertNoError(t, err)
	dyn, err = dynamic.Encode(plans, "echo.EchoRequest", dynamic.Message{"message": "hi"})
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, short, dyn)
}

func TestDecode_Defaults(t *testing.T) {
	plans := echoPlans(t)
	msg, err := dynamic.Decode(plans, "echo.EchoResponse", nil)
	testutil.AssertNoError(t, err)

	testutil.ExpectEq(t, "", msg["reply"].(string))
	testutil.ExpectEq(t, 0, len(msg["codes"].([]any)))
	testutil.ExpectEq(t, 0, len(msg["history"].([]any)))
	testutil.ExpectEq(t, uint64(0), msg["seq"].(uint64))
	testutil.ExpectTrue(t, msg["blob"].([]byte) == nil)
	_, hasMeta := msg["meta"]
	testutil.ExpectFalse(t, hasMeta)
}

func TestDecode_Generated(t *testing.T) {
	plans := echoPlans(t)
	data, err := (&echopb.Echo_EchoResponse{
		Reply:   "pong",
		Codes:   []int32{1, 2, 3},
		Meta:    &echopb.Echo_EchoResponse_Meta{Id: 4},
		History: []*echopb.Echo_EchoResponse_Meta{{Ok: true}},
	}).MarshalBinary()
	testutil.AssertNoError(t, err)

	msg, err := dynamic.Decode(plans, "echo.EchoResponse", data)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "pong", msg["reply"].(string))
	testutil.ExpectSliceEq(t, []any{int32(1), int32(2), int32(3)}, msg["codes"].([]any))
	testutil.ExpectEq(t, uint32(4), msg["meta"].(dynamic.Message)["id"].(uint32))
	history := msg["history"].([]any)
	testutil.ExpectEq(t, 1, len(history))
	testutil.ExpectTrue(t, history[0].(dynamic.Message)["ok"].(bool))

	text, err := dynamic.Text(plans, "echo.EchoResponse", msg)
	testutil.AssertNoError(t, err)
	testutil.ExpectNoDiff(t, `reply = "pong"
codes = [1, 2, 3]
meta = {
	id = 4
}
history {
	ok = true
}
`, text)
}

func TestRoundTrip_Scalars(t *testing.T) {
	set := testutil.LoadProtos(t, map[string]string{"scalars.proto": scalarsProto})
	plans, err := codegen.Plans(set)
	testutil.AssertNoError(t, err)

	for _, msg := range []dynamic.Message{
		{
			"f_int32": int32(math.MaxInt32), "f_int64": int64(math.MaxInt64),
			"f_uint32": uint32(math.MaxUint32), "f_uint64": uint64(math.MaxUint64),
			"f_sint32": int32(math.MinInt32), "f_sint64": int64(math.MinInt64),
			"f_fixed32": uint32(128), "f_fixed64": uint64(1 << 63),
			"f_sfixed32": int32(-1), "f_sfixed64": int64(math.MinInt64),
			"f_float": float32(1.5), "f_double": math.MaxFloat64,
			"f_bool": true, "f_string": "snow ☃", "f_bytes": []byte{0},
			"f_enum": int32(1),
		},
		{
			"f_int32": int32(-1), "f_int64": int64(math.MinInt64),
			"f_uint32": uint32(127), "f_uint64": uint64(128),
			"f_sint32": int32(math.MaxInt32), "f_sint64": int64(math.MaxInt64),
			"f_fixed32": uint32(math.MaxUint32), "f_fixed64": uint64(0),
			"f_sfixed32": int32(math.MaxInt32), "f_sfixed64": int64(math.MaxInt64),
			"f_float": float32(-0.25), "f_double": -1e-300,
			"f_bool": false, "f_string": "", "f_bytes": []byte(nil),
			"f_enum": int32(0),
		},
	} {
		data, err := dynamic.Encode(plans, "scalars.All", msg)
		testutil.AssertNoError(t, err)
		got, err := dynamic.Decode(plans, "scalars.All", data)
		testutil.AssertNoError(t, err)
		for name, want := range msg {
			if b, ok := want.([]byte); ok {
				testutil.ExpectBytesEq(t, b, got[name].([]byte))
				continue
			}
			testutil.ExpectEq(t, want, got[name])
		}
	}
}

func TestEncode_Errors(t *testing.T) {
	plans := echoPlans(t)

	_, err := dynamic.Encode(plans, "echo.Missing", dynamic.Message{})
	testutil.ExpectErrorIs(t, err, dynamic.ErrUnknownMessage)

	_, err = dynamic.Encode(plans, "echo.EchoRequest", dynamic.Message{"nope": "x"})
	testutil.ExpectErrorIs(t, err, dynamic.ErrUnknownField)

	_, err = dynamic.Encode(plans, "echo.EchoRequest", dynamic.Message{"message": 5})
	testutil.ExpectErrorIs(t, err, dynamic.ErrInvalidValue)

	_, err = dynamic.Encode(plans, "echo.EchoResponse", dynamic.Message{"codes": []any{int64(1) << 40}})
	testutil.ExpectErrorIs(t, err, dynamic.ErrInvalidValue)

	_, err = dynamic.Encode(plans, "echo.EchoResponse", dynamic.Message{"codes": int32(1)})
	testutil.ExpectErrorIs(t, err, dynamic.ErrInvalidValue)

	// Untyped integer constants are accepted when they fit.
	data, err := dynamic.Encode(plans, "echo.EchoResponse", dynamic.Message{"seq": 7})
	testutil.AssertNoError(t, err)
	testutil.ExpectBytesEq(t, []byte{0x30, 0x07}, data)
}

func TestDecode_Errors(t *testing.T) {
	plans := echoPlans(t)

	_, err := dynamic.Decode(plans, "echo.EchoResponse", []byte{0x0E, 0x00})
	testutil.ExpectErrorIs(t, err, wire.ErrUnsupportedWireType)

	_, err = dynamic.Decode(plans, "echo.EchoResponse", wire.AppendUint64(nil, 1, 1))
	testutil.ExpectErrorIs(t, err, wire.ErrWireTypeMismatch)

	_, err = dynamic.Decode(plans, "echo.EchoResponse", wire.AppendBytes(nil, 3, []byte{0x08}))
	testutil.ExpectErrorIs(t, err, wire.ErrTruncated)
}

func TestDecode_RecursionLimit(t *testing.T) {
	plans := echoPlans(t)

	msg, err := dynamic.Decode(plans, "echo.Trace", testutil.NestedMessage(2, wire.RecursionLimit-1))
	testutil.AssertNoError(t, err)
	depth := 0
	for next := msg; next != nil; depth++ {
		next, _ = next["next"].(dynamic.Message)
	}
	testutil.ExpectEq(t, wire.RecursionLimit, depth)

	_, err = dynamic.Decode(plans, "echo.Trace", testutil.NestedMessage(2, wire.RecursionLimit))
	testutil.ExpectErrorIs(t, err, wire.ErrRecursionLimit)

	_, err = dynamic.Decode(plans, "echo.Trace", testutil.NestedMessage(2, 3_000_000))
	testutil.ExpectErrorIs(t, err, wire.ErrRecursionLimit)
}

func TestText_InvalidUTF8(t *testing.T) {
	plans := echoPlans(t)

	msg, err := dynamic.Decode(plans, "echo.EchoRequest", wire.AppendString(nil, 1, "a\xffb\xc3\xa9\"\x01\xc3"))
	testutil.AssertNoError(t, err)
	text, err := dynamic.Text(plans, "echo.EchoRequest", msg)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "message = \"a\\xFFbé\\\"\\x01\\xC3\"\n", text)

	msg = dynamic.Message{"message": "�"}
	text, err = dynamic.Text(plans, "echo.EchoRequest", msg)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "message = \"�\"\n", text)
}
