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

package catalog

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrInvalidInput is returned when catalog properties can't be read.
	ErrInvalidInput = errors.NewKind("invalid configuration of catalog %s")

	// ErrDuplicateCatalog is returned when a catalog name is already
	// registered.
	ErrDuplicateCatalog = errors.NewKind("Catalog ['%s'] is already present.")

	// ErrMissingConnectorType is returned when catalog properties don't
	// name a connector.
	ErrMissingConnectorType = errors.NewKind("catalog %s has no connector.name property")

	// ErrUnsupportedConnector is returned when no translator or factory
	// exists for the connector of a catalog.
	ErrUnsupportedConnector = errors.NewKind("catalog %s: unsupported connector %s")

	// ErrConnectorConstructionFailed is returned when the connector factory
	// fails or returns no connector.
	ErrConnectorConstructionFailed = errors.NewKind("failed to create connector %s for catalog %s")

	// ErrPersistenceFailed is returned when catalog properties can't be
	// written to disk.
	ErrPersistenceFailed = errors.NewKind("failed to persist catalog properties to %s")

	// ErrCatalogNotFound is returned when a catalog isn't registered.
	ErrCatalogNotFound = errors.NewKind("catalog not found: %s")
)
