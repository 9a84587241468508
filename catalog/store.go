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

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/dolthub/go-native-worker/config"
	"github.com/dolthub/go-native-worker/connector"
	"github.com/dolthub/go-native-worker/internal/similartext"
)

// Store holds the registered catalogs in registration order, along with
// the connector registry of the execution engine.
type Store struct {
	mu       sync.RWMutex
	names    []string
	members  mapset.Set[string]
	catalogs map[string]*Catalog

	connectors *connector.Registry
}

// NewStore returns an empty store registering connectors in the given
// registry.
func NewStore(connectors *connector.Registry) *Store {
	return &Store{
		members:    mapset.NewThreadUnsafeSet[string](),
		catalogs:   make(map[string]*Catalog),
		connectors: connectors,
	}
}

// Connectors returns the connector registry of the store.
func (s *Store) Connectors() *connector.Registry {
	return s.connectors
}

// Contains returns whether a catalog with the given name is registered.
func (s *Store) Contains(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.members.Contains(name)
}

// Names returns the registered catalog names in registration order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Len returns the number of registered catalogs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}

// Catalog returns the registered catalog with the given name.
func (s *Store) Catalog(name string) (*Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.catalogs[name]
	if !ok {
		similar := similartext.Find(s.names, name)
		return nil, ErrCatalogNotFound.New(name + similar)
	}
	return c, nil
}

// Properties returns a copy of the properties of a registered catalog.
func (s *Store) Properties(name string) (config.Properties, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.catalogs[name]
	if !ok {
		return config.Properties{}, false
	}
	return c.Properties.Clone(), true
}

// Register adds a catalog, creating its connector with create. The store
// stays locked while the connector is created, so that a catalog becomes
// visible only once its connector is registered. Nothing is added when
// create fails.
func (s *Store) Register(c *Catalog, create func() (connector.Connector, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.members.Contains(c.Name) {
		return ErrDuplicateCatalog.New(c.Name)
	}

	conn, err := create()
	if err != nil {
		return err
	}
	if conn == nil {
		return ErrConnectorConstructionFailed.New(c.ConnectorName, c.Name)
	}

	if err := s.connectors.RegisterConnector(conn); err != nil {
		_ = conn.Close()
		return err
	}

	s.names = append(s.names, c.Name)
	s.members.Add(c.Name)
	s.catalogs[c.Name] = c
	return nil
}
