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

package schema

import (
	"slices"
	"strings"

	"github.com/jhump/protoreflect/desc"
	"google.golang.org/protobuf/types/descriptorpb"
)

var protoKinds = map[descriptorpb.FieldDescriptorProto_Type]Kind{
	descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:   KindDouble,
	descriptorpb.FieldDescriptorProto_TYPE_FLOAT:    KindFloat,
	descriptorpb.FieldDescriptorProto_TYPE_INT64:    KindInt64,
	descriptorpb.FieldDescriptorProto_TYPE_UINT64:   KindUint64,
	descriptorpb.FieldDescriptorProto_TYPE_INT32:    KindInt32,
	descriptorpb.FieldDescriptorProto_TYPE_FIXED64:  KindFixed64,
	descriptorpb.FieldDescriptorProto_TYPE_FIXED32:  KindFixed32,
	descriptorpb.FieldDescriptorProto_TYPE_BOOL:     KindBool,
	descriptorpb.FieldDescriptorProto_TYPE_STRING:   KindString,
	descriptorpb.FieldDescriptorProto_TYPE_GROUP:    KindGroup,
	descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:  KindMessage,
	descriptorpb.FieldDescriptorProto_TYPE_BYTES:    KindBytes,
	descriptorpb.FieldDescriptorProto_TYPE_UINT32:   KindUint32,
	descriptorpb.FieldDescriptorProto_TYPE_ENUM:     KindEnum,
	descriptorpb.FieldDescriptorProto_TYPE_SFIXED32: KindSfixed32,
	descriptorpb.FieldDescriptorProto_TYPE_SFIXED64: KindSfixed64,
	descriptorpb.FieldDescriptorProto_TYPE_SINT32:   KindSint32,
	descriptorpb.FieldDescriptorProto_TYPE_SINT64:   KindSint64,
}

// Collect groups the message types and services of files, and of every
// file they transitively import, by declaring package.
//
// Files are visited in name order, so the result does not depend on the
// order of the input slice.
func Collect(files []*desc.FileDescriptor) *Set {
	c := collector{
		set: &Set{
			Messages: make(map[string]*Message),
		},
		packages: make(map[string]*Package),
		seen:     make(map[string]bool),
	}

	sorted := slices.Clone(files)
	slices.SortFunc(sorted, func(a, b *desc.FileDescriptor) int {
		return strings.Compare(a.GetName(), b.GetName())
	})
	for _, file := range sorted {
		c.collectFile(file)
	}

	for _, pkg := range c.packages {
		c.set.Packages = append(c.set.Packages, pkg)
	}
	slices.SortFunc(c.set.Packages, func(a, b *Package) int {
		return strings.Compare(a.Name, b.Name)
	})
	return c.set
}

type collector struct {
	set      *Set
	packages map[string]*Package
	seen     map[string]bool
}

func (c *collector) pkg(name string) *Package {
	pkg, ok := c.packages[name]
	if !ok {
		pkg = &Package{Name: name}
		c.packages[name] = pkg
	}
	return pkg
}

func (c *collector) collectFile(file *desc.FileDescriptor) {
	if c.seen[file.GetName()] {
		return
	}
	c.seen[file.GetName()] = true

	deps := slices.Clone(file.GetDependencies())
	slices.SortFunc(deps, func(a, b *desc.FileDescriptor) int {
		return strings.Compare(a.GetName(), b.GetName())
	})
	for _, dep := range deps {
		c.collectFile(dep)
	}

	pkg := c.pkg(file.GetPackage())
	for _, msg := range file.GetMessageTypes() {
		c.collectMessage(pkg, msg, nil)
	}
	for _, svc := range file.GetServices() {
		c.collectService(pkg, svc)
	}
}

func (c *collector) collectMessage(
	pkg *Package,
	md *desc.MessageDescriptor,
	outer []string,
) {
	fullName := md.GetFullyQualifiedName()
	if _, dup := c.set.Messages[fullName]; dup {
		return
	}

	localPath := append(slices.Clip(outer), md.GetName())
	msg := &Message{
		FullName:  fullName,
		Package:   pkg.Name,
		LocalPath: localPath,
		MapEntry:  md.IsMapEntry(),
	}
	for _, fd := range md.GetFields() {
		msg.Fields = append(msg.Fields, collectField(fd))
	}
	c.set.Messages[fullName] = msg
	pkg.Messages = append(pkg.Messages, msg)

	for _, nested := range md.GetNestedMessageTypes() {
		msg.Nested = append(msg.Nested, nested.GetFullyQualifiedName())
		c.collectMessage(pkg, nested, localPath)
	}
}

func collectField(fd *desc.FieldDescriptor) *Field {
	field := &Field{
		Name:     fd.GetName(),
		Number:   fd.GetNumber(),
		Kind:     protoKinds[fd.GetType()],
		Repeated: fd.IsRepeated(),
	}
	switch field.Kind {
	case KindMessage, KindGroup:
		if mt := fd.GetMessageType(); mt != nil {
			field.TypeName = mt.GetFullyQualifiedName()
		}
	case KindEnum:
		if et := fd.GetEnumType(); et != nil {
			field.TypeName = et.GetFullyQualifiedName()
		}
	}
	return field
}

func (c *collector) collectService(pkg *Package, sd *desc.ServiceDescriptor) {
	svc := &Service{
		Name:    sd.GetName(),
		Package: pkg.Name,
	}
	for _, md := range sd.GetMethods() {
		svc.Methods = append(svc.Methods, &Method{
			Name:            md.GetName(),
			Request:         md.GetInputType().GetFullyQualifiedName(),
			Response:        md.GetOutputType().GetFullyQualifiedName(),
			ClientStreaming: md.IsClientStreaming(),
			ServerStreaming: md.IsServerStreaming(),
		})
	}
	pkg.Services = append(pkg.Services, svc)
}
