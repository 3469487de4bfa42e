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
	"bytes"
	"fmt"
	"go/format"
	"strings"
)

const generatedHeader = "// Code generated by actrgen. DO NOT EDIT."

// printer accumulates Go source one line at a time.
type printer struct {
	buf    bytes.Buffer
	indent int
}

func (p *printer) line(s string) {
	if s != "" {
		p.buf.WriteString(strings.Repeat("\t", p.indent))
		p.buf.WriteString(s)
	}
	p.buf.WriteByte('\n')
}

func (p *printer) linef(format string, a ...any) {
	p.line(fmt.Sprintf(format, a...))
}

// open prints a line ending in '{' and indents what follows.
func (p *printer) open(format string, a ...any) {
	p.linef(format, a...)
	p.indent += 1
}

// close dedents and prints the closing line.
func (p *printer) close(s string) {
	p.indent -= 1
	p.line(s)
}

func (p *printer) header(goPackage, source string) {
	p.line(generatedHeader)
	if source != "" {
		p.linef("// source: %s", source)
	}
	p.line("")
	p.linef("package %s", goPackage)
	p.line("")
}

type importSpec struct {
	name string
	path string
}

func (p *printer) imports(specs ...importSpec) {
	if len(specs) == 0 {
		return
	}
	p.open("import (")
	for _, spec := range specs {
		if spec.path == "" {
			p.line("")
		} else if spec.name != "" {
			p.linef("%s %q", spec.name, spec.path)
		} else {
			p.linef("%q", spec.path)
		}
	}
	p.close(")")
	p.line("")
}

func (p *printer) gofmt() ([]byte, error) {
	return format.Source(p.buf.Bytes())
}
