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

package types

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrInvalidTypeSignature is returned when a type signature can't be
	// parsed.
	ErrInvalidTypeSignature = errors.NewKind("invalid type signature %q")

	// ErrUnknownType is returned for a syntactically valid signature naming
	// a type that does not exist.
	ErrUnknownType = errors.NewKind("unknown type %q")
)
