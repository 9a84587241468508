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

// Package catalog registers the catalogs of a worker, from configuration
// files at startup and from administrative requests at runtime.
package catalog

import (
	"github.com/mitchellh/hashstructure"

	"github.com/dolthub/go-native-worker/config"
)

// Catalog is a registered catalog. Catalogs are never modified after
// registration.
type Catalog struct {
	Name          string
	ConnectorName string
	Properties    config.Properties
	// Fingerprint identifies the catalog properties, so that reloading an
	// identical configuration can be told apart from a conflicting one.
	Fingerprint uint64
}

// New returns a catalog of the given properties.
func New(name, connectorName string, props config.Properties) (*Catalog, error) {
	fp, err := hashstructure.Hash(props.Map(), nil)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		Name:          name,
		ConnectorName: connectorName,
		Properties:    props.Clone(),
		Fingerprint:   fp,
	}, nil
}
