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
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
)

// Lock is the resolved dependency set written by the package manager. Its
// file lists take precedence over scanning the proto root.
type Lock struct {
	Dependencies []LockedDependency `toml:"dependency"`
}

type LockedDependency struct {
	Name     string   `toml:"name"`
	ActrType string   `toml:"actr_type"`
	Files    []string `toml:"files"`
}

// LoadLock reads a lock file. A missing file is not an error; LoadLock
// returns nil in that case.
func LoadLock(path string) (*Lock, error) {
	var lock Lock
	meta, err := toml.DecodeFile(path, &lock)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("load lock %s: %w", path, err)
	}
	if !meta.IsDefined("dependency") {
		return &lock, nil
	}
	for ii, dep := range lock.Dependencies {
		dep.Name = strings.TrimSpace(dep.Name)
		if dep.Name == "" {
			return nil, fmt.Errorf("load lock %s: dependency %d has no name", path, ii)
		}
		dep.ActrType = strings.TrimSpace(dep.ActrType)
		lock.Dependencies[ii] = dep
	}
	return &lock, nil
}
