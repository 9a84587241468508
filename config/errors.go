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

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrInvalidConfigValue is returned when a configuration value is not a
	// plain string.
	ErrInvalidConfigValue = errors.NewKind("Value for key '%s' must be a string, but got: %s")

	// ErrNotJSONObject is returned when a JSON configuration document is
	// valid JSON but its top level value is not an object.
	ErrNotJSONObject = errors.NewKind("Not a JSON object.")

	// ErrMalformedJSON is returned when a JSON configuration document cannot
	// be parsed.
	ErrMalformedJSON = errors.NewKind("malformed JSON configuration")

	// ErrMalformedProperty is returned when a line of a properties file is
	// not of the form key=value.
	ErrMalformedProperty = errors.NewKind("%s:%d: expected key=value, got %q")

	// ErrMissingProperty is returned when a required property is absent.
	ErrMissingProperty = errors.NewKind("Missing configuration property %s")

	// ErrInvalidPropertyType is returned when a property can't be converted
	// to the requested type.
	ErrInvalidPropertyType = errors.NewKind("invalid value for property %s")
)
