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

// Package schema holds the resolved descriptor model consumed by the code
// generator: packages, message types, fields, and services.
//
// Message types live in an arena keyed by fully-qualified name. Fields and
// methods refer to other message types by name only.
package schema

import (
	"fmt"
	"sort"
)

type Kind uint8

const (
	KindUnknown Kind = iota
	KindDouble
	KindFloat
	KindInt32
	KindInt64
	KindUint32
	KindUint64
	KindSint32
	KindSint64
	KindFixed32
	KindFixed64
	KindSfixed32
	KindSfixed64
	KindBool
	KindString
	KindBytes
	KindEnum
	KindMessage
	KindGroup
)

var kindNames = [...]string{
	KindUnknown:  "unknown",
	KindDouble:   "double",
	KindFloat:    "float",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindUint32:   "uint32",
	KindUint64:   "uint64",
	KindSint32:   "sint32",
	KindSint64:   "sint64",
	KindFixed32:  "fixed32",
	KindFixed64:  "fixed64",
	KindSfixed32: "sfixed32",
	KindSfixed64: "sfixed64",
	KindBool:     "bool",
	KindString:   "string",
	KindBytes:    "bytes",
	KindEnum:     "enum",
	KindMessage:  "message",
	KindGroup:    "group",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for ii, name := range kindNames {
		if name == string(text) {
			*k = Kind(ii)
			return nil
		}
	}
	return fmt.Errorf("unknown field kind %q", text)
}

// Set is the collected schema of one generation run.
type Set struct {
	// Packages sorted by name. The root package has the empty name.
	Packages []*Package

	// Messages is the arena of every message type, keyed by
	// fully-qualified name (without a leading dot).
	Messages map[string]*Message
}

func (s *Set) Package(name string) *Package {
	ii := sort.Search(len(s.Packages), func(ii int) bool {
		return s.Packages[ii].Name >= name
	})
	if ii < len(s.Packages) && s.Packages[ii].Name == name {
		return s.Packages[ii]
	}
	return nil
}

func (s *Set) Message(fullName string) *Message {
	return s.Messages[fullName]
}

type Package struct {
	Name string

	// Messages in declaration order, each outer type before its nested
	// types.
	Messages []*Message
	Services []*Service
}

type Message struct {
	FullName string
	Package  string

	// LocalPath is the chain of type names from the outermost enclosing
	// type down to this one.
	LocalPath []string

	Fields []*Field

	// Nested holds the fully-qualified names of directly nested types.
	Nested []string

	// MapEntry is set for the synthetic entry type of a map field.
	MapEntry bool
}

func (m *Message) Name() string {
	return m.LocalPath[len(m.LocalPath)-1]
}

type Field struct {
	Name     string
	Number   int32
	Kind     Kind
	Repeated bool

	// TypeName is the fully-qualified name of the referenced message type
	// for KindMessage fields, or of the enum type for KindEnum fields.
	TypeName string
}

type Service struct {
	Name    string
	Package string
	Methods []*Method
}

func (s *Service) FullName() string {
	if s.Package == "" {
		return s.Name
	}
	return s.Package + "." + s.Name
}

type Method struct {
	Name string

	// Request and Response are fully-qualified message type names.
	Request  string
	Response string

	ClientStreaming bool
	ServerStreaming bool
}

func (m *Method) Streaming() bool {
	return m.ClientStreaming || m.ServerStreaming
}
