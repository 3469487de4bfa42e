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

package dynamic

import (
	"github.com/actor-rtc/actr-go/codegen"
	"github.com/actor-rtc/actr-go/schema"
	"github.com/actor-rtc/actr-go/wire"
)

// Decode decodes data as the message type fullName. Every singular scalar
// field is present in the result, holding its zero value when absent from
// the input. Absent singular messages are omitted, and every repeated field
// holds a (possibly empty) []any. Unknown fields are skipped.
func Decode(ps *codegen.PlanSet, fullName string, data []byte) (Message, error) {
	plan, err := lookup(ps, fullName)
	if err != nil {
		return nil, err
	}
	return decodeMessage(ps, plan, data, wire.RecursionLimit)
}

func decodeMessage(ps *codegen.PlanSet, plan *codegen.Plan, data []byte, depth int) (Message, error) {
	if depth <= 0 {
		return nil, wire.MessageError(plan.FullName, wire.ErrRecursionLimit)
	}
	msg := make(Message, len(plan.Fields))
	for _, f := range plan.Fields {
		switch {
		case f.Repeated:
			msg[f.Name] = []any{}
		case f.Kind != schema.KindMessage:
			msg[f.Name] = zeroValue(f.Kind)
		}
	}

	d := wire.NewDecoder(data)
	for !d.Done() {
		field, err := d.Next()
		if err != nil {
			return nil, wire.MessageError(plan.FullName, err)
		}
		f := plan.Field(field.Num)
		if f == nil {
			continue
		}

		if f.Kind == schema.KindMessage {
			raw, err := field.Message()
			if err != nil {
				return nil, wire.FieldError(plan.FullName, field.Num, err)
			}
			nestedPlan, err := lookup(ps, f.Message)
			if err != nil {
				return nil, err
			}
			nested, err := decodeMessage(ps, nestedPlan, raw, depth-1)
			if err != nil {
				return nil, wire.FieldError(plan.FullName, field.Num, err)
			}
			if f.Repeated {
				msg[f.Name] = append(msg[f.Name].([]any), nested)
			} else {
				msg[f.Name] = nested
			}
			continue
		}

		if f.Repeated && f.WireType != wire.BytesType {
			values, err := wire.Repeated(field, f.WireType, scalarGetter(f.Kind))
			if err != nil {
				return nil, wire.FieldError(plan.FullName, field.Num, err)
			}
			msg[f.Name] = append(msg[f.Name].([]any), values...)
			continue
		}

		value, err := scalarGetter(f.Kind)(field)
		if err != nil {
			return nil, wire.FieldError(plan.FullName, field.Num, err)
		}
		if f.Repeated {
			msg[f.Name] = append(msg[f.Name].([]any), value)
		} else {
			msg[f.Name] = value
		}
	}
	return msg, nil
}

func zeroValue(kind schema.Kind) any {
	switch kind {
	case schema.KindInt32, schema.KindSint32, schema.KindSfixed32, schema.KindEnum:
		return int32(0)
	case schema.KindInt64, schema.KindSint64, schema.KindSfixed64:
		return int64(0)
	case schema.KindUint32, schema.KindFixed32:
		return uint32(0)
	case schema.KindUint64, schema.KindFixed64:
		return uint64(0)
	case schema.KindFloat:
		return float32(0)
	case schema.KindDouble:
		return float64(0)
	case schema.KindBool:
		return false
	case schema.KindString:
		return ""
	case schema.KindBytes:
		return []byte(nil)
	}
	return nil
}

func scalarGetter(kind schema.Kind) func(wire.Field) (any, error) {
	switch kind {
	case schema.KindInt32:
		return boxed(wire.Field.Int32)
	case schema.KindInt64:
		return boxed(wire.Field.Int64)
	case schema.KindUint32:
		return boxed(wire.Field.Uint32)
	case schema.KindUint64:
		return boxed(wire.Field.Uint64)
	case schema.KindSint32:
		return boxed(wire.Field.Sint32)
	case schema.KindSint64:
		return boxed(wire.Field.Sint64)
	case schema.KindFixed32:
		return boxed(wire.Field.Fixed32)
	case schema.KindFixed64:
		return boxed(wire.Field.Fixed64)
	case schema.KindSfixed32:
		return boxed(wire.Field.Sfixed32)
	case schema.KindSfixed64:
		return boxed(wire.Field.Sfixed64)
	case schema.KindFloat:
		return boxed(wire.Field.Float)
	case schema.KindDouble:
		return boxed(wire.Field.Double)
	case schema.KindBool:
		return boxed(wire.Field.Bool)
	case schema.KindEnum:
		return boxed(wire.Field.Enum)
	case schema.KindString:
		return boxed(wire.Field.Text)
	case schema.KindBytes:
		return boxed(wire.Field.Bytes)
	}
	return func(wire.Field) (any, error) {
		return nil, ErrInvalidValue
	}
}

func boxed[T any](get func(wire.Field) (T, error)) func(wire.Field) (any, error) {
	return func(f wire.Field) (any, error) {
		v, err := get(f)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
