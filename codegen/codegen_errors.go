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
	"fmt"
)

type Error struct {
	code    uint32
	message string
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

func errUnsupportedFieldType(message, field string, kind fmt.Stringer) *Error {
	return &Error{
		code: 5000,
		message: fmt.Sprintf(
			"Field '%s' of message %q has unsupported type %s",
			field, message, kind,
		),
	}
}

func errTypeNameConflict(prevName, name, ident string) *Error {
	return &Error{
		code: 5001,
		message: fmt.Sprintf(
			"Message types %q and %q both map to Go identifier '%s'",
			prevName, name, ident,
		),
	}
}

func errSymbolConflict(prevOwner, owner, ident string) *Error {
	return &Error{
		code: 5002,
		message: fmt.Sprintf(
			"Go identifier '%s' for %s conflicts with %s",
			ident, owner, prevOwner,
		),
	}
}

func errNoTargetType(service string) *Error {
	return &Error{
		code:    5003,
		message: fmt.Sprintf("No target actor type for service %q", service),
	}
}

func errFieldNameConflict(message, prevField, field, goName string) *Error {
	return &Error{
		code: 5004,
		message: fmt.Sprintf(
			"Fields '%s' and '%s' of message %q both map to Go field '%s'",
			prevField, field, message, goName,
		),
	}
}

func errUnresolvedReference(owner, typeName string) *Error {
	return &Error{
		code: 5005,
		message: fmt.Sprintf(
			"%s references unknown message type %q",
			owner, typeName,
		),
	}
}

func errRenderFailed(path string, err error) *Error {
	return &Error{
		code:    5006,
		message: fmt.Sprintf("Generated file '%s' is not valid Go: %v", path, err),
	}
}
