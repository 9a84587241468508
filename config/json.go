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
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/catalog.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

func catalogSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("catalog.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}

		compiledSchema, compileErr = c.Compile("catalog.schema.json")
	})
	return compiledSchema, compileErr
}

// ReadJSON reads catalog properties from a flat JSON object whose values
// are all strings. It returns the properties with environment variables
// resolved, and the original properties rendered as key=value lines so
// that ${VAR} references can be persisted unresolved.
func ReadJSON(raw []byte) (Properties, string, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return Properties{}, "", ErrMalformedJSON.Wrap(err)
	}

	schema, err := catalogSchema()
	if err != nil {
		return Properties{}, "", err
	}

	if err := schema.Validate(doc); err != nil {
		return Properties{}, "", validationError(doc, err)
	}

	original, err := orderedObject(raw)
	if err != nil {
		return Properties{}, "", ErrMalformedJSON.Wrap(err)
	}

	var resolved Properties
	for _, k := range original.keys {
		resolved.Set(k, ResolveEnv(original.values[k]))
	}

	return resolved, original.String(), nil
}

// validationError converts a schema validation failure into one of the
// package error kinds, naming the offending key when there is one.
func validationError(doc interface{}, err error) error {
	obj, ok := doc.(map[string]interface{})
	if !ok {
		return ErrNotJSONObject.New()
	}

	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return ErrMalformedJSON.Wrap(err)
	}

	for _, leaf := range leaves(verr) {
		if len(leaf.InstanceLocation) == 0 {
			continue
		}
		key := leaf.InstanceLocation[0]
		dump, _ := json.Marshal(obj[key])
		return ErrInvalidConfigValue.New(key, string(dump))
	}

	return ErrMalformedJSON.Wrap(fmt.Errorf("%s", verr.LocalizedError(printer)))
}

func leaves(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}

	var result []*jsonschema.ValidationError
	for _, c := range err.Causes {
		result = append(result, leaves(c)...)
	}
	return result
}

// orderedObject decodes a validated flat object of strings keeping the key
// order of the document.
func orderedObject(raw []byte) (Properties, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return Properties{}, err
	}

	var props Properties
	for dec.More() {
		k, err := dec.Token()
		if err != nil {
			return Properties{}, err
		}
		v, err := dec.Token()
		if err != nil {
			return Properties{}, err
		}

		key, _ := k.(string)
		value, ok := v.(string)
		if !ok {
			return Properties{}, ErrInvalidConfigValue.New(key, fmt.Sprint(v))
		}
		props.Set(key, value)
	}

	return props, nil
}
