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
	"github.com/actor-rtc/actr-go/actr"
)

// Dependency is one manifest record offering a remote actor type.
type Dependency struct {
	Name     string
	ActrType string
}

type targetResolver struct {
	byName map[string]actr.ActrType
	valid  []actr.ActrType
}

func newTargetResolver(deps []Dependency) (*targetResolver, []*Warning) {
	tr := &targetResolver{
		byName: make(map[string]actr.ActrType),
	}
	var warnings []*Warning
	for _, dep := range deps {
		if dep.ActrType == "" {
			continue
		}
		typ, ok := actr.ParseActrType(dep.ActrType)
		if !ok {
			warnings = append(warnings, warnInvalidActrType(dep.Name, dep.ActrType))
			continue
		}
		if _, dup := tr.byName[typ.Name]; !dup {
			tr.byName[typ.Name] = typ
		}
		tr.valid = append(tr.valid, typ)
	}
	return tr, warnings
}

// resolve picks the actor type serving a service: the dependency whose
// actor type name equals the service name, else the only dependency with
// a valid actor type.
func (tr *targetResolver) resolve(service string) (actr.ActrType, bool) {
	if typ, ok := tr.byName[service]; ok {
		return typ, true
	}
	if len(tr.valid) == 1 {
		return tr.valid[0], true
	}
	return actr.ActrType{}, false
}

func resolveTargets(ps *PlanSet, deps []Dependency) ([]*Error, []*Warning) {
	tr, warnings := newTargetResolver(deps)
	var errs []*Error
	failed := make(map[string]bool)
	for _, pp := range ps.Packages {
		for _, route := range pp.Routes {
			typ, ok := tr.resolve(route.Service)
			if !ok {
				svc := route.Service
				if pp.Name != "" {
					svc = pp.Name + "." + svc
				}
				if !failed[svc] {
					failed[svc] = true
					errs = append(errs, errNoTargetType(svc))
				}
				continue
			}
			route.Target = typ
		}
	}
	return errs, warnings
}
