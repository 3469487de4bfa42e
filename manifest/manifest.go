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

// Package manifest reads the project files that drive code generation: the
// Actr.toml (or actr.yaml) manifest and its Actr.lock.toml lock file.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var ErrNoSchemaFiles = errors.New("no schema files found")

type Manifest struct {
	// Path is the file the manifest was read from. Relative paths in the
	// manifest are resolved against its directory.
	Path string `toml:"-" yaml:"-"`

	Package      PackageInfo               `toml:"package" yaml:"package"`
	Dependencies map[string]DependencySpec `toml:"dependencies" yaml:"dependencies"`
	Codegen      Codegen                   `toml:"codegen" yaml:"codegen"`
}

type PackageInfo struct {
	Name string `toml:"name" yaml:"name"`
}

type DependencySpec struct {
	ActrType string   `toml:"actr_type" yaml:"actr_type"`
	Files    []string `toml:"files" yaml:"files"`
}

type Codegen struct {
	Output        string `toml:"output" yaml:"output"`
	ProtoRoot     string `toml:"proto_root" yaml:"proto_root"`
	Lock          string `toml:"lock" yaml:"lock"`
	GoPackage     string `toml:"go_package" yaml:"go_package"`
	RuntimeImport string `toml:"runtime_import" yaml:"runtime_import"`
}

func (m *Manifest) Dir() string {
	if m.Path == "" {
		return "."
	}
	return filepath.Dir(m.Path)
}

// Load reads a manifest. Files ending in ".yaml" or ".yml" are decoded as
// YAML, anything else as TOML. Keys the manifest format does not define are
// rejected.
func Load(path string) (*Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	var m *Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		m, err = parseYAML(content)
	default:
		m, err = parseTOML(content)
	}
	if err != nil {
		return nil, fmt.Errorf("load manifest %s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// Parse decodes a TOML manifest held in memory.
func Parse(content []byte) (*Manifest, error) {
	m, err := parseTOML(content)
	if err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}

func parseTOML(content []byte) (*Manifest, error) {
	var m Manifest
	meta, err := toml.Decode(string(content), &m)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return normalize(&m), nil
}

func parseYAML(content []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return normalize(&m), nil
}

func normalize(m *Manifest) *Manifest {
	m.Package.Name = strings.TrimSpace(m.Package.Name)
	for name, dep := range m.Dependencies {
		dep.ActrType = strings.TrimSpace(dep.ActrType)
		m.Dependencies[name] = dep
	}
	m.Codegen.Output = strings.TrimSpace(m.Codegen.Output)
	m.Codegen.ProtoRoot = strings.TrimSpace(m.Codegen.ProtoRoot)
	m.Codegen.Lock = strings.TrimSpace(m.Codegen.Lock)
	m.Codegen.GoPackage = strings.TrimSpace(m.Codegen.GoPackage)
	m.Codegen.RuntimeImport = strings.TrimSpace(m.Codegen.RuntimeImport)
	return m
}
