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

// Package connector defines the connectors the execution engine reads
// catalogs with, and the translators turning the coordinator's connector
// specific handles into engine handles.
package connector

import (
	"github.com/dolthub/go-native-worker/config"
)

// NameProperty is the catalog property naming the connector type.
const NameProperty = "connector.name"

// Connector reads the data of one catalog.
type Connector interface {
	// ID returns the catalog name the connector was created for.
	ID() string
	// Close releases the connector resources.
	Close() error
}

// Factory creates connectors of one connector type.
type Factory interface {
	// Name returns the connector type, matched against the connector.name
	// property of catalogs.
	Name() string
	// NewConnector creates a connector for the given catalog. I/O and CPU
	// bound work of the connector is submitted to the given executors.
	NewConnector(id string, props config.Properties, io, cpu Executor) (Connector, error)
}

// ColumnHandle is a column as read by the execution engine.
type ColumnHandle interface {
	ColumnName() string
}

// TableHandle is a table scan as executed by the execution engine.
type TableHandle interface {
	CatalogID() string
	Table() string
}

// Split is a unit of scan work as executed by the execution engine.
type Split interface {
	CatalogID() string
}
