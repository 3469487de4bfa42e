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

package codegen

import (
	"github.com/actor-rtc/actr-go/schema"
	"github.com/actor-rtc/actr-go/wire"
)

const wireImport = "github.com/actor-rtc/actr-go/wire"

func renderCodecFile(pp *PackagePlan, goPackage string) ([]byte, error) {
	p := &printer{}
	p.header(goPackage, packageSource(pp.Name))
	p.imports(importSpec{path: wireImport})

	for ii, plan := range pp.Messages {
		if ii > 0 {
			p.line("")
		}
		renderStruct(p, plan)
		p.line("")
		renderAppendWire(p, plan)
		p.line("")
		p.open("func (m *%s) MarshalBinary() ([]byte, error) {", plan.Ident)
		p.line("return m.AppendWire(nil), nil")
		p.close("}")
		p.line("")
		renderUnmarshal(p, plan)
	}
	return p.gofmt()
}

func packageSource(pkg string) string {
	if pkg == "" {
		return "root package"
	}
	return "package " + pkg
}

func renderStruct(p *printer, plan *Plan) {
	p.linef("// %s is the message type %s.", plan.Ident, plan.FullName)
	p.open("type %s struct {", plan.Ident)
	for _, f := range plan.Fields {
		if f.Repeated {
			p.linef("%s []%s", f.GoName, f.GoType)
		} else {
			p.linef("%s %s", f.GoName, f.GoType)
		}
	}
	p.close("}")
}

func renderAppendWire(p *printer, plan *Plan) {
	p.open("func (m *%s) AppendWire(b []byte) []byte {", plan.Ident)
	p.open("if m == nil {")
	p.line("return b")
	p.close("}")
	for _, f := range plan.Fields {
		if f.Repeated {
			p.open("for _, v := range m.%s {", f.GoName)
			p.linef("b = wire.%s(b, %d, v)", f.appendFn(), f.Number)
			p.close("}")
			continue
		}
		p.open("if %s {", presenceCheck("m."+f.GoName, f.Kind))
		p.linef("b = wire.%s(b, %d, m.%s)", f.appendFn(), f.Number, f.GoName)
		p.close("}")
	}
	p.line("return b")
	p.close("}")
}

// presenceCheck is the condition under which a singular field is encoded.
// Scalars equal to their zero value are omitted.
func presenceCheck(expr string, kind schema.Kind) string {
	switch kind {
	case schema.KindBool:
		return expr
	case schema.KindString:
		return expr + ` != ""`
	case schema.KindBytes:
		return "len(" + expr + ") != 0"
	case schema.KindMessage:
		return expr + " != nil"
	}
	return expr + " != 0"
}

// renderUnmarshal emits UnmarshalBinary and the depth-limited
// unmarshalWire it delegates to.
func renderUnmarshal(p *printer, plan *Plan) {
	p.open("func (m *%s) UnmarshalBinary(data []byte) error {", plan.Ident)
	p.line("return m.unmarshalWire(data, wire.RecursionLimit)")
	p.close("}")
	p.line("")
	p.open("func (m *%s) unmarshalWire(data []byte, depth int) error {", plan.Ident)
	p.open("if depth <= 0 {")
	p.linef("return wire.MessageError(%q, wire.ErrRecursionLimit)", plan.FullName)
	p.close("}")
	p.linef("*m = %s{}", plan.Ident)
	p.line("d := wire.NewDecoder(data)")
	p.open("for !d.Done() {")
	p.line("f, err := d.Next()")
	p.open("if err != nil {")
	p.linef("return wire.MessageError(%q, err)", plan.FullName)
	p.close("}")
	p.open("switch f.Num {")
	for _, f := range plan.Fields {
		p.linef("case %d:", f.Number)
		p.indent += 1
		renderDecodeField(p, plan, f)
		p.indent -= 1
	}
	p.close("}")
	p.close("}")
	p.line("return nil")
	p.close("}")
}

func renderDecodeField(p *printer, plan *Plan, f *PlanField) {
	fieldErr := func() {
		p.open("if err != nil {")
		p.linef("return wire.FieldError(%q, f.Num, err)", plan.FullName)
		p.close("}")
	}

	switch {
	case f.Kind == schema.KindMessage:
		p.line("raw, err := f.Message()")
		fieldErr()
		p.linef("v := new(%s)", f.GoType[1:])
		p.open("if err := v.unmarshalWire(raw, depth-1); err != nil {")
		p.linef("return wire.FieldError(%q, f.Num, err)", plan.FullName)
		p.close("}")
		if f.Repeated {
			p.linef("m.%s = append(m.%s, v)", f.GoName, f.GoName)
		} else {
			p.linef("m.%s = v", f.GoName)
		}
	case f.Repeated && f.WireType != wire.BytesType:
		p.linef(
			"vs, err := wire.Repeated(f, wire.%s, wire.Field.%s)",
			wireTypeConst(f.WireType), f.getter(),
		)
		fieldErr()
		p.linef("m.%s = append(m.%s, vs...)", f.GoName, f.GoName)
	default:
		p.linef("v, err := f.%s()", f.getter())
		fieldErr()
		if f.Repeated {
			p.linef("m.%s = append(m.%s, v)", f.GoName, f.GoName)
		} else {
			p.linef("m.%s = v", f.GoName)
		}
	}
}

func wireTypeConst(t wire.Type) string {
	switch t {
	case wire.VarintType:
		return "VarintType"
	case wire.Fixed64Type:
		return "Fixed64Type"
	case wire.Fixed32Type:
		return "Fixed32Type"
	}
	return "BytesType"
}
