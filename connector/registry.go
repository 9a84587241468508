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

import (
	"sort"
	"sync"

	"github.com/dolthub/go-native-worker/internal/similartext"
)

// Registry holds the connector factories known to the worker and the
// connectors created for its catalogs.
type Registry struct {
	factoriesMut sync.RWMutex
	factories    map[string]Factory

	connectorsMut sync.RWMutex
	connectors    map[string]Connector
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		factories:  make(map[string]Factory),
		connectors: make(map[string]Connector),
	}
}

// RegisterFactory registers a connector factory under its name.
func (r *Registry) RegisterFactory(f Factory) error {
	r.factoriesMut.Lock()
	defer r.factoriesMut.Unlock()

	if _, ok := r.factories[f.Name()]; ok {
		return ErrDuplicateFactory.New(f.Name())
	}
	r.factories[f.Name()] = f
	return nil
}

// Factory returns the factory of the given connector type.
func (r *Registry) Factory(name string) (Factory, error) {
	r.factoriesMut.RLock()
	defer r.factoriesMut.RUnlock()

	f, ok := r.factories[name]
	if !ok {
		similar := similartext.FindFromMap(r.factories, name)
		return nil, ErrUnsupportedConnector.New(name + similar)
	}
	return f, nil
}

// HasFactory returns whether a factory of the given connector type exists.
func (r *Registry) HasFactory(name string) bool {
	r.factoriesMut.RLock()
	defer r.factoriesMut.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// RegisterConnector registers a connector under its id.
func (r *Registry) RegisterConnector(c Connector) error {
	r.connectorsMut.Lock()
	defer r.connectorsMut.Unlock()

	if _, ok := r.connectors[c.ID()]; ok {
		return ErrDuplicateConnector.New(c.ID())
	}
	r.connectors[c.ID()] = c
	return nil
}

// Connector returns the connector with the given id.
func (r *Registry) Connector(id string) (Connector, bool) {
	r.connectorsMut.RLock()
	defer r.connectorsMut.RUnlock()
	c, ok := r.connectors[id]
	return c, ok
}

// ConnectorIDs returns the ids of the registered connectors, sorted.
func (r *Registry) ConnectorIDs() []string {
	r.connectorsMut.RLock()
	defer r.connectorsMut.RUnlock()

	ids := make([]string, 0, len(r.connectors))
	for id := range r.connectors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close closes every registered connector and returns the first error.
func (r *Registry) Close() error {
	r.connectorsMut.Lock()
	defer r.connectorsMut.Unlock()

	var firstErr error
	for id, c := range r.connectors {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(r.connectors, id)
	}
	return firstErr
}
