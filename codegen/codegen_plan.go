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
	"errors"
	"strings"

	"github.com/actor-rtc/actr-go/actr"
	"github.com/actor-rtc/actr-go/schema"
	"github.com/actor-rtc/actr-go/wire"
)

// kindInfo describes how one scalar kind maps onto the wire runtime.
type kindInfo struct {
	wireType wire.Type
	goType   string
	zero     string
	appendFn string // wire.Append* function
	getter   string // wire.Field method
}

var kinds = map[schema.Kind]kindInfo{
	schema.KindDouble:   {wire.Fixed64Type, "float64", "0", "AppendDouble", "Double"},
	schema.KindFloat:    {wire.Fixed32Type, "float32", "0", "AppendFloat", "Float"},
	schema.KindInt32:    {wire.VarintType, "int32", "0", "AppendInt32", "Int32"},
	schema.KindInt64:    {wire.VarintType, "int64", "0", "AppendInt64", "Int64"},
	schema.KindUint32:   {wire.VarintType, "uint32", "0", "AppendUint32", "Uint32"},
	schema.KindUint64:   {wire.VarintType, "uint64", "0", "AppendUint64", "Uint64"},
	schema.KindSint32:   {wire.VarintType, "int32", "0", "AppendSint32", "Sint32"},
	schema.KindSint64:   {wire.VarintType, "int64", "0", "AppendSint64", "Sint64"},
	schema.KindFixed32:  {wire.Fixed32Type, "uint32", "0", "AppendFixed32", "Fixed32"},
	schema.KindFixed64:  {wire.Fixed64Type, "uint64", "0", "AppendFixed64", "Fixed64"},
	schema.KindSfixed32: {wire.Fixed32Type, "int32", "0", "AppendSfixed32", "Sfixed32"},
	schema.KindSfixed64: {wire.Fixed64Type, "int64", "0", "AppendSfixed64", "Sfixed64"},
	schema.KindBool:     {wire.VarintType, "bool", "false", "AppendBool", "Bool"},
	schema.KindString:   {wire.BytesType, "string", `""`, "AppendString", "Text"},
	schema.KindBytes:    {wire.BytesType, "[]byte", "nil", "AppendBytes", "Bytes"},
	schema.KindEnum:     {wire.VarintType, "int32", "0", "AppendEnum", "Enum"},
	schema.KindMessage:  {wire.BytesType, "", "nil", "AppendMessage", "Message"},
}

// PlanSet is the language-neutral codec and route model of one generation
// run. The Go renderer, the dynamic codec, and renderer plugins all consume
// it.
type PlanSet struct {
	Packages []*PackagePlan `json:"packages"`

	messages map[string]*Plan
}

// Message returns the plan of a message type by fully-qualified name.
func (ps *PlanSet) Message(fullName string) *Plan {
	return ps.messages[fullName]
}

type PackagePlan struct {
	Name string `json:"name"`

	// FileBase is the base name of the files emitted for this package.
	FileBase string `json:"file_base"`

	Messages []*Plan      `json:"messages"`
	Routes   []*RoutePlan `json:"routes,omitempty"`
}

// Plan describes the codec of one message type.
type Plan struct {
	FullName string       `json:"full_name"`
	Ident    string       `json:"ident"`
	Fields   []*PlanField `json:"fields"`
}

func (p *Plan) Field(num wire.Number) *PlanField {
	for _, f := range p.Fields {
		if wire.Number(f.Number) == num {
			return f
		}
	}
	return nil
}

type PlanField struct {
	Name     string      `json:"name"`
	GoName   string      `json:"go_name"`
	Number   int32       `json:"number"`
	Kind     schema.Kind `json:"kind"`
	WireType wire.Type   `json:"wire_type"`

	// GoType is the element type; repeated fields are slices of it.
	GoType   string `json:"go_type"`
	Default  string `json:"default"`
	Repeated bool   `json:"repeated,omitempty"`

	// Message is the fully-qualified name of the referenced message type.
	Message string `json:"message,omitempty"`
}

func (f *PlanField) appendFn() string {
	return kinds[f.Kind].appendFn
}

func (f *PlanField) getter() string {
	return kinds[f.Kind].getter
}

// RoutePlan describes one remotely callable method.
type RoutePlan struct {
	Key     string `json:"key"`
	Base    string `json:"base"`
	Service string `json:"service"`
	Method  string `json:"method"`

	Request  string `json:"request"`
	Response string `json:"response"`

	Target actr.ActrType `json:"target"`
}

func (r *RoutePlan) RouteConst() string {
	return r.Base + "_Route"
}

func (r *RoutePlan) EncodeRequestFn() string {
	return r.Base + "_EncodeRequest"
}

func (r *RoutePlan) DecodeResponseFn() string {
	return r.Base + "_DecodeResponse"
}

// Plans resolves names and builds the codec plans of set, without routes.
func Plans(set *schema.Set) (*PlanSet, error) {
	names, errs := resolveNames(set)
	if len(errs) == 0 {
		var plans *PlanSet
		plans, errs = buildPlans(set, names)
		if len(errs) == 0 {
			return plans, nil
		}
	}
	joined := make([]error, len(errs))
	for ii, err := range errs {
		joined[ii] = err
	}
	return nil, errors.Join(joined...)
}

func buildPlans(set *schema.Set, names *nameTable) (*PlanSet, []*Error) {
	ps := &PlanSet{
		messages: make(map[string]*Plan, len(set.Messages)),
	}
	var errs []*Error
	for _, pkg := range set.Packages {
		pp := &PackagePlan{
			Name:     pkg.Name,
			FileBase: fileBase(pkg.Name),
		}
		for _, msg := range pkg.Messages {
			plan, planErrs := buildPlan(msg, names)
			errs = append(errs, planErrs...)
			pp.Messages = append(pp.Messages, plan)
			ps.messages[msg.FullName] = plan
		}
		ps.Packages = append(ps.Packages, pp)
	}
	return ps, errs
}

func buildPlan(msg *schema.Message, names *nameTable) (*Plan, []*Error) {
	ident, _ := names.lookup(msg.FullName)
	plan := &Plan{
		FullName: msg.FullName,
		Ident:    ident,
	}
	var errs []*Error
	goNames := make(map[string]string, len(msg.Fields))
	for _, field := range msg.Fields {
		info, ok := kinds[field.Kind]
		if !ok {
			errs = append(errs, errUnsupportedFieldType(msg.FullName, field.Name, field.Kind))
			continue
		}

		goName := fieldGoName(field.Name)
		if reservedFieldNames[goName] {
			errs = append(errs, errFieldNameConflict(msg.FullName, goName+"()", field.Name, goName))
			continue
		}
		if prev, conflict := goNames[goName]; conflict {
			errs = append(errs, errFieldNameConflict(msg.FullName, prev, field.Name, goName))
			continue
		}
		goNames[goName] = field.Name

		pf := &PlanField{
			Name:     field.Name,
			GoName:   goName,
			Number:   field.Number,
			Kind:     field.Kind,
			WireType: info.wireType,
			GoType:   info.goType,
			Default:  info.zero,
			Repeated: field.Repeated,
		}
		if field.Kind == schema.KindMessage {
			ref, ok := names.lookup(field.TypeName)
			if !ok {
				owner := "Field '" + field.Name + "' of message " + quoted(msg.FullName)
				errs = append(errs, errUnresolvedReference(owner, field.TypeName))
				continue
			}
			pf.GoType = "*" + ref
			pf.Message = field.TypeName
		}
		plan.Fields = append(plan.Fields, pf)
	}
	return plan, errs
}

// fileBase is the base name of the files emitted for a package: dots become
// dashes, and the root package is "root".
func fileBase(pkg string) string {
	if pkg == "" {
		return "root"
	}
	return strings.ReplaceAll(pkg, ".", "-")
}
