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

package manifest

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
)

// ScanSchemaFiles returns every ".proto" file under root, as slash-separated
// paths relative to root, in sorted order.
func ScanSchemaFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".proto" {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan schema files in %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// SchemaFiles lists the schema files to load. When any dependency carries
// an explicit file list, the union of those lists is used; otherwise the
// proto root is scanned. ErrNoSchemaFiles is returned when nothing is
// found either way.
func SchemaFiles(root string, deps []Dependency) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, dep := range deps {
		for _, file := range dep.Files {
			file = filepath.ToSlash(filepath.Clean(file))
			if !seen[file] {
				seen[file] = true
				files = append(files, file)
			}
		}
	}
	if len(files) == 0 {
		scanned, err := ScanSchemaFiles(root)
		if err != nil {
			return nil, err
		}
		files = scanned
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSchemaFiles, root)
	}
	sort.Strings(files)
	return files, nil
}
