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
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/actor-rtc/actr-go/codegen"
	"github.com/actor-rtc/actr-go/schema"
)

// Text renders msg in a line-oriented text form, one field per line in
// declaration order. Zero-valued singular scalars and empty repeated fields
// are omitted.
func Text(ps *codegen.PlanSet, fullName string, msg Message) (string, error) {
	var buf strings.Builder
	if err := TextTo(&buf, ps, fullName, msg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func TextTo(w io.Writer, ps *codegen.PlanSet, fullName string, msg Message) error {
	plan, err := lookup(ps, fullName)
	if err != nil {
		return err
	}
	e := encoder{w: w, ps: ps}
	e.visitMessage(plan, msg)
	return e.err
}

type encoder struct {
	w      io.Writer
	ps     *codegen.PlanSet
	indent int
	err    error
}

func (e *encoder) line(s string) {
	if e.err != nil {
		return
	}
	if indent := strings.Repeat("\t", e.indent); indent != "" {
		if _, err := io.WriteString(e.w, indent); err != nil {
			e.err = err
			return
		}
	}
	if _, err := io.WriteString(e.w, s+"\n"); err != nil {
		e.err = err
	}
}

func (e *encoder) linef(format string, a ...any) {
	e.line(fmt.Sprintf(format, a...))
}

func (e *encoder) visitMessage(plan *codegen.Plan, msg Message) {
	for _, f := range plan.Fields {
		value, ok := msg[f.Name]
		if !ok || value == nil {
			continue
		}
		if f.Repeated {
			items, _ := value.([]any)
			e.visitRepeated(f, items)
			continue
		}
		if f.Kind == schema.KindMessage {
			e.visitNested(f, fmt.Sprintf("%s = {", f.Name), value)
			continue
		}
		if isZero(value) {
			continue
		}
		e.linef("%s = %s", f.Name, fmtScalar(value))
	}
}

func (e *encoder) visitRepeated(f *codegen.PlanField, items []any) {
	if len(items) == 0 {
		return
	}
	switch f.Kind {
	case schema.KindMessage:
		for _, item := range items {
			e.visitNested(f, fmt.Sprintf("%s {", f.Name), item)
		}
	case schema.KindString, schema.KindBytes:
		e.linef("%s = [", f.Name)
		e.indent += 1
		for _, item := range items {
			e.line(fmtScalar(item))
		}
		e.indent -= 1
		e.line("]")
	default:
		scalars := make([]string, len(items))
		for ii, item := range items {
			scalars[ii] = fmtScalar(item)
		}
		e.linef("%s = [%s]", f.Name, strings.Join(scalars, ", "))
	}
}

func (e *encoder) visitNested(f *codegen.PlanField, open string, value any) {
	nested, ok := value.(Message)
	plan := e.ps.Message(f.Message)
	if !ok || plan == nil {
		e.err = fmt.Errorf("%s: %w: %T", f.Name, ErrInvalidValue, value)
		return
	}
	e.line(open)
	e.indent += 1
	e.visitMessage(plan, nested)
	e.indent -= 1
	e.line("}")
}

func fmtScalar(value any) string {
	switch value := value.(type) {
	case bool:
		return strconv.FormatBool(value)
	case string:
		return quote(value)
	case []byte:
		var buf strings.Builder
		buf.WriteByte('[')
		for ii, b := range value {
			if ii != 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(&buf, "0x%02X", b)
		}
		buf.WriteByte(']')
		return buf.String()
	case float32:
		return strconv.FormatFloat(float64(value), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	}
	if i, ok := asSigned(value); ok {
		return strconv.FormatInt(i, 10)
	}
	if u, ok := asUnsigned(value); ok {
		return strconv.FormatUint(u, 10)
	}
	return fmt.Sprint(value)
}

func quote(text string) string {
	var buf strings.Builder
	buf.WriteByte('"')
	for len(text) > 0 {
		c, size := utf8.DecodeRuneInString(text)
		if c == utf8.RuneError && size == 1 {
			fmt.Fprintf(&buf, "\\x%02X", text[0])
			text = text[1:]
			continue
		}
		text = text[size:]
		if c == '\\' || c == '"' {
			buf.WriteByte('\\')
			buf.WriteRune(c)
			continue
		}
		if c == '\t' {
			buf.WriteString("\\t")
			continue
		}
		if c == '\n' {
			buf.WriteString("\\n")
			continue
		}
		if c < 0x20 || c == 0x7F {
			fmt.Fprintf(&buf, "\\x%02X", c)
			continue
		}
		buf.WriteRune(c)
	}
	buf.WriteByte('"')
	return buf.String()
}
