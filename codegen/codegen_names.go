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
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/actor-rtc/actr-go/schema"
)

// Identifiers emitted into every generated package by the dispatch file.
var reservedIdents = []string{"Dispatch", "LocalRoutes", "LocalRouter"}

// Methods of every generated message type.
var reservedFieldNames = map[string]bool{
	"AppendWire":      true,
	"MarshalBinary":   true,
	"UnmarshalBinary": true,
}

var predeclared = map[string]bool{
	"any": true, "bool": true, "byte": true, "comparable": true,
	"complex64": true, "complex128": true, "error": true,
	"float32": true, "float64": true, "int": true, "int8": true,
	"int16": true, "int32": true, "int64": true, "rune": true,
	"string": true, "uint": true, "uint8": true, "uint16": true,
	"uint32": true, "uint64": true, "uintptr": true,
	"true": true, "false": true, "iota": true, "nil": true,
	"append": true, "cap": true, "clear": true, "close": true,
	"complex": true, "copy": true, "delete": true, "imag": true,
	"len": true, "make": true, "max": true, "min": true, "new": true,
	"panic": true, "print": true, "println": true, "real": true,
	"recover": true,
}

// nameTable is the registry of top-level Go identifiers emitted into the
// generated package.
type nameTable struct {
	types  map[string]string // fully-qualified message name -> identifier
	owners map[string]string // identifier -> description of its owner
	fqns   map[string]string // identifier -> fully-qualified message name
}

func newNameTable() *nameTable {
	nt := &nameTable{
		types:  make(map[string]string),
		owners: make(map[string]string),
		fqns:   make(map[string]string),
	}
	for _, ident := range reservedIdents {
		nt.owners[ident] = "dispatch function"
	}
	return nt
}

// resolveNames assigns every message type a Go identifier. Two message types
// that flatten to the same identifier are both reported; neither overwrites
// the other.
func resolveNames(set *schema.Set) (*nameTable, []*Error) {
	nt := newNameTable()
	var errs []*Error
	for _, pkg := range set.Packages {
		prefix := packagePrefix(pkg.Name)
		for _, msg := range pkg.Messages {
			ident := typeIdent(prefix, msg.LocalPath)
			if prev, conflict := nt.fqns[ident]; conflict {
				errs = append(errs, errTypeNameConflict(prev, msg.FullName, ident))
				continue
			}
			if err := nt.claim(ident, "message type "+quoted(msg.FullName)); err != nil {
				errs = append(errs, err)
				continue
			}
			nt.fqns[ident] = msg.FullName
			nt.types[msg.FullName] = ident
		}
	}
	return nt, errs
}

func (nt *nameTable) claim(ident, owner string) *Error {
	if prev, conflict := nt.owners[ident]; conflict {
		return errSymbolConflict(prev, owner, ident)
	}
	nt.owners[ident] = owner
	return nil
}

func (nt *nameTable) lookup(fullName string) (string, bool) {
	ident, ok := nt.types[fullName]
	return ident, ok
}

// packagePrefix converts a dotted package name to a capitalized-word-joined
// form: "my_pkg.v1" becomes "MyPkgV1". The root package has no prefix.
func packagePrefix(pkg string) string {
	return pascalCase(pkg, func(r rune) bool { return r == '.' || r == '_' })
}

func typeIdent(prefix string, localPath []string) string {
	local := strings.Join(localPath, "_")
	if prefix == "" {
		return upperFirst(local)
	}
	return prefix + "_" + local
}

// fieldGoName converts a proto field name to an exported Go field name:
// "user_id" becomes "UserId".
func fieldGoName(name string) string {
	goName := pascalCase(name, func(r rune) bool { return r == '_' })
	if goName == "" || !unicode.IsLetter(firstRune(goName)) {
		goName = "X" + goName
	}
	return goName
}

// paramName converts a proto field name to a Go parameter name that is
// neither a keyword nor a predeclared identifier.
func paramName(name string) string {
	goName := fieldGoName(name)
	r, size := utf8.DecodeRuneInString(goName)
	param := string(unicode.ToLower(r)) + goName[size:]
	if token.IsKeyword(param) || predeclared[param] {
		param += "_"
	}
	return param
}

func pascalCase(s string, sep func(rune) bool) string {
	caser := cases.Title(language.Und, cases.NoLower)
	var buf strings.Builder
	for _, word := range strings.FieldsFunc(s, sep) {
		buf.WriteString(caser.String(word))
	}
	return buf.String()
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func quoted(s string) string {
	return `"` + s + `"`
}
