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

// Package dynamic encodes and decodes messages by interpreting codec plans
// at run time, without generated types.
//
// A decoded message is a Message keyed by proto field name. Scalar values
// use the Go type of the corresponding generated field: int32 for int32,
// sint32, sfixed32, and enum fields, []byte for bytes, and so on. Nested
// messages are Message values, and repeated fields are []any.
package dynamic

import (
	"errors"
	"fmt"
	"math"

	"github.com/actor-rtc/actr-go/codegen"
	"github.com/actor-rtc/actr-go/schema"
	"github.com/actor-rtc/actr-go/wire"
)

var (
	ErrUnknownMessage = errors.New("unknown message type")
	ErrUnknownField   = errors.New("unknown field")
	ErrInvalidValue   = errors.New("invalid field value")
)

type Message map[string]any

func lookup(ps *codegen.PlanSet, fullName string) (*codegen.Plan, error) {
	plan := ps.Message(fullName)
	if plan == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownMessage, fullName)
	}
	return plan, nil
}

// Encode {{{

// Encode encodes msg as the message type fullName. Singular scalars equal
// to their zero value are omitted, and repeated fields are written one
// element per tag.
func Encode(ps *codegen.PlanSet, fullName string, msg Message) ([]byte, error) {
	plan, err := lookup(ps, fullName)
	if err != nil {
		return nil, err
	}
	return appendMessage(nil, ps, plan, msg)
}

func appendMessage(b []byte, ps *codegen.PlanSet, plan *codegen.Plan, msg Message) ([]byte, error) {
	for name := range msg {
		if planField(plan, name) == nil {
			return nil, fmt.Errorf("%s: %w %q", plan.FullName, ErrUnknownField, name)
		}
	}
	for _, f := range plan.Fields {
		value, ok := msg[f.Name]
		if !ok || value == nil {
			continue
		}
		var err error
		if f.Repeated {
			items, isSlice := value.([]any)
			if !isSlice {
				return nil, fieldError(plan, f, value)
			}
			for _, item := range items {
				if b, err = appendValue(b, ps, plan, f, item); err != nil {
					return nil, err
				}
			}
			continue
		}
		if isZero(value) {
			continue
		}
		if b, err = appendValue(b, ps, plan, f, value); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func planField(plan *codegen.Plan, name string) *codegen.PlanField {
	for _, f := range plan.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func fieldError(plan *codegen.Plan, f *codegen.PlanField, value any) error {
	return fmt.Errorf(
		"%s.%s: %w: %T for %s field",
		plan.FullName, f.Name, ErrInvalidValue, value, f.Kind,
	)
}

func isZero(value any) bool {
	switch v := value.(type) {
	case bool:
		return !v
	case string:
		return v == ""
	case []byte:
		return len(v) == 0
	case Message:
		return false
	case float32:
		return v == 0
	case float64:
		return v == 0
	}
	if i, ok := asSigned(value); ok {
		return i == 0
	}
	if u, ok := asUnsigned(value); ok {
		return u == 0
	}
	return false
}

func appendValue(
	b []byte,
	ps *codegen.PlanSet,
	plan *codegen.Plan,
	f *codegen.PlanField,
	value any,
) ([]byte, error) {
	num := wire.Number(f.Number)
	bad := func() ([]byte, error) {
		return nil, fieldError(plan, f, value)
	}

	switch f.Kind {
	case schema.KindInt32, schema.KindSint32, schema.KindSfixed32, schema.KindEnum:
		v, ok := asInt(value)
		if !ok || v < math.MinInt32 || v > math.MaxInt32 {
			return bad()
		}
		switch f.Kind {
		case schema.KindSint32:
			return wire.AppendSint32(b, num, int32(v)), nil
		case schema.KindSfixed32:
			return wire.AppendSfixed32(b, num, int32(v)), nil
		}
		return wire.AppendInt32(b, num, int32(v)), nil
	case schema.KindInt64, schema.KindSint64, schema.KindSfixed64:
		v, ok := asInt(value)
		if !ok {
			return bad()
		}
		switch f.Kind {
		case schema.KindSint64:
			return wire.AppendSint64(b, num, v), nil
		case schema.KindSfixed64:
			return wire.AppendSfixed64(b, num, v), nil
		}
		return wire.AppendInt64(b, num, v), nil
	case schema.KindUint32, schema.KindFixed32:
		v, ok := asUint(value)
		if !ok || v > math.MaxUint32 {
			return bad()
		}
		if f.Kind == schema.KindFixed32 {
			return wire.AppendFixed32(b, num, uint32(v)), nil
		}
		return wire.AppendUint32(b, num, uint32(v)), nil
	case schema.KindUint64, schema.KindFixed64:
		v, ok := asUint(value)
		if !ok {
			return bad()
		}
		if f.Kind == schema.KindFixed64 {
			return wire.AppendFixed64(b, num, v), nil
		}
		return wire.AppendUint64(b, num, v), nil
	case schema.KindBool:
		v, ok := value.(bool)
		if !ok {
			return bad()
		}
		return wire.AppendBool(b, num, v), nil
	case schema.KindFloat:
		v, ok := value.(float32)
		if !ok {
			return bad()
		}
		return wire.AppendFloat(b, num, v), nil
	case schema.KindDouble:
		switch v := value.(type) {
		case float64:
			return wire.AppendDouble(b, num, v), nil
		case float32:
			return wire.AppendDouble(b, num, float64(v)), nil
		}
		return bad()
	case schema.KindString:
		v, ok := value.(string)
		if !ok {
			return bad()
		}
		return wire.AppendString(b, num, v), nil
	case schema.KindBytes:
		v, ok := value.([]byte)
		if !ok {
			return bad()
		}
		return wire.AppendBytes(b, num, v), nil
	case schema.KindMessage:
		v, ok := value.(Message)
		if !ok {
			return bad()
		}
		nested, err := lookup(ps, f.Message)
		if err != nil {
			return nil, err
		}
		raw, err := appendMessage(nil, ps, nested, v)
		if err != nil {
			return nil, err
		}
		return wire.AppendBytes(b, num, raw), nil
	}
	return bad()
}

func asInt(value any) (int64, bool) {
	if v, ok := asSigned(value); ok {
		return v, true
	}
	if u, ok := asUnsigned(value); ok && u <= math.MaxInt64 {
		return int64(u), true
	}
	return 0, false
}

func asUint(value any) (uint64, bool) {
	if u, ok := asUnsigned(value); ok {
		return u, true
	}
	if v, ok := asSigned(value); ok && v >= 0 {
		return uint64(v), true
	}
	return 0, false
}

func asSigned(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}

func asUnsigned(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	}
	return 0, false
}

// }}}
