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

package connector

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrDuplicateFactory is returned when a connector factory name is
	// registered twice.
	ErrDuplicateFactory = errors.NewKind("connector factory %s is already registered")

	// ErrDuplicateConnector is returned when a connector id is registered
	// twice.
	ErrDuplicateConnector = errors.NewKind("connector %s is already registered")

	// ErrDuplicateTranslator is returned when a translator is registered
	// twice for the same connector name.
	ErrDuplicateTranslator = errors.NewKind("connector translator for %s is already registered")

	// ErrUnsupportedConnector is returned when no translator exists for a
	// connector name.
	ErrUnsupportedConnector = errors.NewKind("unsupported connector %s")

	// ErrUnexpectedSplitType is returned when a translator receives a
	// split of another connector.
	ErrUnexpectedSplitType = errors.NewKind("unexpected split type %q")

	// ErrUnexpectedColumnHandleType is returned when a translator receives
	// a column handle of another connector.
	ErrUnexpectedColumnHandleType = errors.NewKind("unexpected column handle type %q")

	// ErrUnexpectedTableHandleType is returned when a translator receives
	// a table handle of another connector.
	ErrUnexpectedTableHandleType = errors.NewKind("unexpected table handle type %q")

	// ErrUnexpectedLayoutType is returned when a translator receives a
	// table layout of another connector.
	ErrUnexpectedLayoutType = errors.NewKind("unexpected table layout type %q")

	// ErrUnsupportedColumnType is returned when a column handle has a
	// column type the engine can't read.
	ErrUnsupportedColumnType = errors.NewKind("unsupported column type %s of column %s")
)

// WireKind returns the @type of a wire object, "none" when it is missing.
func WireKind(o interface{ Type() string }) string {
	if o == nil {
		return "none"
	}
	return o.Type()
}
