// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bufio"
	"bytes"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cast"
)

// PropertiesExtension is the file extension of catalog configuration files.
const PropertiesExtension = ".properties"

// Properties is an ordered collection of string configuration values. Keys
// keep the position of their first appearance; setting an existing key
// replaces its value in place.
type Properties struct {
	keys   []string
	values map[string]string
}

// NewProperties builds Properties from alternating key and value arguments.
func NewProperties(kv ...string) Properties {
	var p Properties
	for i := 0; i+1 < len(kv); i += 2 {
		p.Set(kv[i], kv[i+1])
	}
	return p
}

// FromMap builds Properties from a map. Keys are ordered lexicographically.
func FromMap(m map[string]string) Properties {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var p Properties
	for _, k := range keys {
		p.Set(k, m[k])
	}
	return p
}

// Set sets the value of the given key.
func (p *Properties) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Lookup returns the value of the given key and whether it is set.
func (p Properties) Lookup(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Get returns the value of the given key, or the empty string.
func (p Properties) Get(key string) string {
	return p.values[key]
}

// Required returns the value of the given key or ErrMissingProperty.
func (p Properties) Required(key string) (string, error) {
	v, ok := p.values[key]
	if !ok {
		return "", ErrMissingProperty.New(key)
	}
	return v, nil
}

// Bool returns the value of the given key as a boolean, or def if unset.
func (p Properties) Bool(key string, def bool) (bool, error) {
	v, ok := p.values[key]
	if !ok {
		return def, nil
	}
	b, err := cast.ToBoolE(strings.TrimSpace(v))
	if err != nil {
		return def, ErrInvalidPropertyType.Wrap(err, key)
	}
	return b, nil
}

// Int returns the value of the given key as an int, or def if unset.
func (p Properties) Int(key string, def int) (int, error) {
	v, ok := p.values[key]
	if !ok {
		return def, nil
	}
	i, err := cast.ToIntE(strings.TrimSpace(v))
	if err != nil {
		return def, ErrInvalidPropertyType.Wrap(err, key)
	}
	return i, nil
}

// Keys returns the property keys in order.
func (p Properties) Keys() []string {
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// Len returns the number of properties.
func (p Properties) Len() int {
	return len(p.keys)
}

// Map returns a copy of the properties as a map.
func (p Properties) Map() map[string]string {
	m := make(map[string]string, len(p.values))
	for k, v := range p.values {
		m[k] = v
	}
	return m
}

// Clone returns a deep copy of the properties.
func (p Properties) Clone() Properties {
	var c Properties
	for _, k := range p.keys {
		c.Set(k, p.values[k])
	}
	return c
}

// String renders the properties in properties file format, one
// newline-terminated key=value pair per property.
func (p Properties) String() string {
	var buf strings.Builder
	for _, k := range p.keys {
		buf.WriteString(k)
		buf.WriteByte('=')
		buf.WriteString(p.values[k])
		buf.WriteByte('\n')
	}
	return buf.String()
}

// ReadFile reads a properties file. Values of the form ${VAR} are replaced
// with the value of the environment variable VAR.
func ReadFile(fs afero.Fs, path string) (Properties, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return Properties{}, err
	}

	props, err := ParseProperties(path, raw)
	if err != nil {
		return Properties{}, err
	}

	var resolved Properties
	for _, k := range props.keys {
		resolved.Set(k, ResolveEnv(props.values[k]))
	}
	return resolved, nil
}

// ParseProperties parses key=value lines without resolving environment
// variables. Blank lines and lines starting with # or ! are skipped. The
// name is only used in error messages.
func ParseProperties(name string, raw []byte) (Properties, error) {
	var props Properties
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '#' || text[0] == '!' {
			continue
		}

		idx := strings.IndexByte(text, '=')
		if idx <= 0 {
			return Properties{}, ErrMalformedProperty.New(name, line, text)
		}

		props.Set(strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+1:]))
	}

	if err := scanner.Err(); err != nil {
		return Properties{}, err
	}

	return props, nil
}
