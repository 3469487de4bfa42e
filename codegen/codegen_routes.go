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
	"github.com/actor-rtc/actr-go/schema"
)

// buildRoutes derives the route plans of every package that declares
// services. If any two methods of a package share a bare name, every route
// of that package is prefixed with its service name.
func buildRoutes(set *schema.Set, ps *PlanSet, names *nameTable) ([]*Error, []*Warning) {
	var errs []*Error
	var warnings []*Warning
	for _, pp := range ps.Packages {
		pkg := set.Package(pp.Name)
		if pkg == nil || len(pkg.Services) == 0 {
			continue
		}

		methodCount := make(map[string]int)
		for _, svc := range pkg.Services {
			for _, method := range svc.Methods {
				methodCount[method.Name] += 1
			}
		}
		servicePrefix := false
		for _, count := range methodCount {
			if count > 1 {
				servicePrefix = true
				break
			}
		}

		prefix := packagePrefix(pkg.Name)
		for _, svc := range pkg.Services {
			for _, method := range svc.Methods {
				if method.Streaming() {
					warnings = append(warnings, warnStreamingMethod(svc.FullName(), method.Name))
					continue
				}

				route := &RoutePlan{
					Key:      svc.FullName() + "." + method.Name,
					Base:     method.Name,
					Service:  svc.Name,
					Method:   method.Name,
					Request:  method.Request,
					Response: method.Response,
				}
				if servicePrefix {
					route.Base = svc.Name + "_" + route.Base
				}
				if prefix != "" {
					route.Base = prefix + "_" + route.Base
				} else {
					route.Base = upperFirst(route.Base)
				}

				ok := true
				owner := "Method " + quoted(route.Key)
				for _, ref := range []string{method.Request, method.Response} {
					if ps.Message(ref) == nil {
						errs = append(errs, errUnresolvedReference(owner, ref))
						ok = false
					}
				}
				for _, ident := range []string{
					route.RouteConst(),
					route.EncodeRequestFn(),
					route.DecodeResponseFn(),
				} {
					if err := names.claim(ident, "route "+quoted(route.Key)); err != nil {
						errs = append(errs, err)
						ok = false
					}
				}
				if ok {
					pp.Routes = append(pp.Routes, route)
				}
			}
		}
	}
	return errs, warnings
}

func renderRouteFile(pp *PackagePlan, ps *PlanSet, goPackage string) ([]byte, error) {
	p := &printer{}
	p.header(goPackage, packageSource(pp.Name))

	p.open("const (")
	for _, route := range pp.Routes {
		p.linef("%s = %q", route.RouteConst(), route.Key)
	}
	p.close(")")

	for _, route := range pp.Routes {
		req := ps.Message(route.Request)
		resp := ps.Message(route.Response)

		p.line("")
		p.linef("// %s encodes a request for %s.", route.EncodeRequestFn(), route.Key)
		if len(req.Fields) == 1 {
			f := req.Fields[0]
			param := paramName(f.Name)
			paramType := f.GoType
			if f.Repeated {
				paramType = "[]" + paramType
			}
			p.open("func %s(%s %s) ([]byte, error) {", route.EncodeRequestFn(), param, paramType)
			p.linef("return (&%s{%s: %s}).MarshalBinary()", req.Ident, f.GoName, param)
			p.close("}")
		} else {
			p.open("func %s(req *%s) ([]byte, error) {", route.EncodeRequestFn(), req.Ident)
			p.line("return req.MarshalBinary()")
			p.close("}")
		}

		p.line("")
		p.linef("// %s decodes a response from %s.", route.DecodeResponseFn(), route.Key)
		p.open("func %s(data []byte) (*%s, error) {", route.DecodeResponseFn(), resp.Ident)
		p.linef("resp := new(%s)", resp.Ident)
		p.open("if err := resp.UnmarshalBinary(data); err != nil {")
		p.line("return nil, err")
		p.close("}")
		p.line("return resp, nil")
		p.close("}")
	}
	return p.gofmt()
}
