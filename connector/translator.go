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

	"github.com/dolthub/go-native-worker/expression"
	"github.com/dolthub/go-native-worker/internal/similartext"
	"github.com/dolthub/go-native-worker/protocol"
	"github.com/dolthub/go-native-worker/types"
)

// Translator converts the wire handles of one connector type into the
// handles of the execution engine. Translators hold no state between
// calls and are safe for concurrent use.
type Translator interface {
	// ToNativeSplit converts a split of the given catalog.
	ToNativeSplit(catalogID string, split protocol.ConnectorSplit, ctx protocol.SplitContext) (Split, error)
	// ToNativeColumnHandle converts a column handle, resolving its type
	// with the parser.
	ToNativeColumnHandle(column protocol.ColumnHandle, parser types.Parser) (ColumnHandle, error)
	// ToNativeTableHandle converts a table handle and its layout. The
	// converter translates the predicate that can't be pushed down as
	// subfield filters.
	ToNativeTableHandle(table protocol.TableHandle, conv expression.Converter, parser types.Parser) (TableHandle, error)
	// CreateConnectorProtocol returns a new decoder of the connector wire
	// objects.
	CreateConnectorProtocol() protocol.ConnectorProtocol
}

// TranslatorRegistry maps connector names to their translator.
type TranslatorRegistry struct {
	mu          sync.RWMutex
	translators map[string]Translator
}

// NewTranslatorRegistry returns an empty TranslatorRegistry.
func NewTranslatorRegistry() *TranslatorRegistry {
	return &TranslatorRegistry{translators: make(map[string]Translator)}
}

// Register registers the translator of the given connector name.
func (r *TranslatorRegistry) Register(name string, t Translator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.translators[name]; ok {
		return ErrDuplicateTranslator.New(name)
	}
	r.translators[name] = t
	return nil
}

// Translator returns the translator of the given connector name.
func (r *TranslatorRegistry) Translator(name string) (Translator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.translators[name]
	if !ok {
		similar := similartext.FindFromMap(r.translators, name)
		return nil, ErrUnsupportedConnector.New(name + similar)
	}
	return t, nil
}

// Has returns whether a translator exists for the connector name.
func (r *TranslatorRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.translators[name]
	return ok
}

// Names returns the connector names with a translator, sorted.
func (r *TranslatorRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.translators))
	for n := range r.translators {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Protocol returns a new connector protocol of the given connector name.
// It can be used as a protocol.ProtocolLookup.
func (r *TranslatorRegistry) Protocol(name string) (protocol.ConnectorProtocol, error) {
	t, err := r.Translator(name)
	if err != nil {
		return nil, err
	}
	return t.CreateConnectorProtocol(), nil
}
