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

// DefaultRuntimeImport is the import path of the runtime package that
// generated dispatch code links against.
const DefaultRuntimeImport = "github.com/actor-rtc/actr-go/actr"

const dispatchFile = "dispatch.go"

func renderDispatchFile(ps *PlanSet, goPackage, runtimeImport string) ([]byte, error) {
	p := &printer{}
	p.header(goPackage, "")
	p.imports(
		importSpec{path: "context"},
		importSpec{},
		importSpec{name: "actr", path: runtimeImport},
	)

	p.line("// LocalRoutes maps every generated route key to the actor type serving it.")
	p.open("var LocalRoutes = []actr.Route{")
	for _, pp := range ps.Packages {
		for _, route := range pp.Routes {
			p.open("{")
			p.linef("Key: %s,", route.RouteConst())
			p.linef(
				"Target: actr.ActrType{Manufacturer: %q, Name: %q},",
				route.Target.Manufacturer, route.Target.Name,
			)
			p.close("},")
		}
	}
	p.close("}")
	p.line("")
	p.line("var LocalRouter = actr.NewRouter(LocalRoutes)")
	p.line("")
	p.line("// Dispatch forwards env to the actor type registered for its route key.")
	p.open("func Dispatch(ctx context.Context, c actr.Context, env actr.Envelope) ([]byte, error) {")
	p.line("return LocalRouter.Dispatch(ctx, c, env)")
	p.close("}")
	return p.gofmt()
}
