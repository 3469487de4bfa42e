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
	"sort"
)

// Dependency is one declared remote actor whose services the generated
// client may call.
type Dependency struct {
	Name     string
	ActrType string
	Files    []string
}

// Dependencies merges the manifest's declared dependencies with the lock.
// A locked entry replaces the manifest entry of the same name; locked
// entries the manifest does not declare are kept. The result is sorted by
// name.
func Dependencies(m *Manifest, lock *Lock) []Dependency {
	byName := make(map[string]Dependency)
	if m != nil {
		for name, spec := range m.Dependencies {
			byName[name] = Dependency{
				Name:     name,
				ActrType: spec.ActrType,
				Files:    append([]string(nil), spec.Files...),
			}
		}
	}
	if lock != nil {
		for _, locked := range lock.Dependencies {
			dep := byName[locked.Name]
			dep.Name = locked.Name
			if locked.ActrType != "" {
				dep.ActrType = locked.ActrType
			}
			if len(locked.Files) > 0 {
				dep.Files = append([]string(nil), locked.Files...)
			}
			byName[locked.Name] = dep
		}
	}

	deps := make([]Dependency, 0, len(byName))
	for _, dep := range byName {
		deps = append(deps, dep)
	}
	sort.Slice(deps, func(i, j int) bool {
		return deps[i].Name < deps[j].Name
	})
	return deps
}
