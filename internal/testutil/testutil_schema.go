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

package testutil

import (
	"context"
	"maps"
	"slices"
	"testing"

	"github.com/jhump/protoreflect/desc/protoparse"

	"github.com/actor-rtc/actr-go/schema"
)

// LoadProtos parses an in-memory set of .proto files keyed by file name.
func LoadProtos(t *testing.T, files map[string]string) *schema.Set {
	t.Helper()
	loader := &schema.Loader{
		Accessor: protoparse.FileContentsFromMap(files),
	}
	names := slices.Sorted(maps.Keys(files))
	set, err := loader.Load(context.Background(), names)
	if err != nil {
		t.Fatalf("LoadProtos: %v", err)
	}
	return set
}
