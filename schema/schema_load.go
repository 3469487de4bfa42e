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
	"context"
	"fmt"

	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/rs/zerolog"
)

// Loader parses and links .proto files. File names passed to Load are
// resolved against ImportPaths, or handed to Accessor unchanged when
// ImportPaths is empty.
type Loader struct {
	ImportPaths []string
	Accessor    protoparse.FileAccessor
	Logger      zerolog.Logger
}

// Load parses files found under root and collects the linked result.
func Load(ctx context.Context, root string, files []string) (*Set, error) {
	l := &Loader{ImportPaths: []string{root}}
	return l.Load(ctx, files)
}

func (l *Loader) Load(ctx context.Context, files []string) (*Set, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("load schema: no input files")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := protoparse.Parser{
		ImportPaths: l.ImportPaths,
		Accessor:    l.Accessor,
	}
	l.Logger.Debug().
		Strs("import_paths", l.ImportPaths).
		Strs("files", files).
		Msg("parsing schema files")
	fds, err := parser.ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	set := Collect(fds)
	l.Logger.Debug().
		Int("packages", len(set.Packages)).
		Int("messages", len(set.Messages)).
		Msg("collected schema")
	return set, nil
}
