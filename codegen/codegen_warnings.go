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

type Warning struct {
	code    uint32
	message string
}

func (w *Warning) String() string {
	return fmt.Sprintf("W%d: %s", w.code, w.message)
}

func (w *Warning) Code() uint32 {
	return w.code
}

func (w *Warning) Message() string {
	return w.message
}

func warnStreamingMethod(service, method string) *Warning {
	return &Warning{
		code: 6000,
		message: fmt.Sprintf(
			"Streaming method '%s' of service %q is not supported; no route emitted",
			method, service,
		),
	}
}

func warnInvalidActrType(dependency, actrType string) *Warning {
	return &Warning{
		code: 6001,
		message: fmt.Sprintf(
			"Dependency '%s' has invalid actor type %q (expected \"<manufacturer>+<name>\")",
			dependency, actrType,
		),
	}
}

func warnEmptyPackage(pkg string) *Warning {
	return &Warning{
		code:    6002,
		message: fmt.Sprintf("Package %q declares no message types; no codec file emitted", pkg),
	}
}
