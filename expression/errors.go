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

package expression

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrUnsupportedExpression is returned when a row expression has no
	// typed counterpart.
	ErrUnsupportedExpression = errors.NewKind("unsupported expression: %s")

	// ErrInvalidDomainValue is returned when a value can't be read as a
	// value of its type.
	ErrInvalidDomainValue = errors.NewKind("invalid value %s for type %s")

	// ErrUnsupportedDomain is returned when a domain can't be expressed as
	// a subfield filter.
	ErrUnsupportedDomain = errors.NewKind("unsupported domain on %s: %s")
)
