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

// Package memory implements the memory connector, which serves tables
// held in the memory of the workers.
package memory

import (
	"encoding/json"
	"fmt"

	"github.com/dolthub/go-native-worker/config"
	"github.com/dolthub/go-native-worker/connector"
	"github.com/dolthub/go-native-worker/expression"
	"github.com/dolthub/go-native-worker/protocol"
	"github.com/dolthub/go-native-worker/types"
)

// ConnectorName is the connector.name of memory catalogs and the @type of
// their wire objects.
const ConnectorName = "memory"

// WireTableHandle is a memory table as sent by the coordinator.
type WireTableHandle struct {
	ConnectorID string `json:"connectorId"`
	SchemaName  string `json:"schemaName"`
	TableName   string `json:"tableName"`
	TableID     int64  `json:"tableId"`
}

func (*WireTableHandle) Type() string { return ConnectorName }

// WireColumnHandle is a memory column as sent by the coordinator.
type WireColumnHandle struct {
	Name        string `json:"name"`
	ColumnType  string `json:"columnType"`
	ColumnIndex int    `json:"columnIndex"`
}

func (*WireColumnHandle) Type() string { return ConnectorName }

// WireSplit is a part of a memory table as sent by the coordinator.
type WireSplit struct {
	Table               WireTableHandle `json:"table"`
	PartNumber          int             `json:"partNumber"`
	TotalPartsPerWorker int             `json:"totalPartsPerWorker"`
	ExpectedRows        int64           `json:"expectedRows"`
}

func (*WireSplit) Type() string { return ConnectorName }

// WireTableLayoutHandle is a memory table layout as sent by the
// coordinator.
type WireTableLayoutHandle struct {
	Table         WireTableHandle   `json:"table"`
	DataFragments []json.RawMessage `json:"dataFragments"`
}

func (*WireTableLayoutHandle) Type() string { return ConnectorName }

// ColumnHandle is a column of a memory table.
type ColumnHandle struct {
	Name     string
	DataType types.Type
	Index    int
}

var _ connector.ColumnHandle = (*ColumnHandle)(nil)

// ColumnName implements the connector.ColumnHandle interface.
func (c *ColumnHandle) ColumnName() string { return c.Name }

// TableHandle is a scan of a memory table.
type TableHandle struct {
	Catalog   string
	Schema    string
	Name      string
	TableID   int64
	Fragments int
}

var _ connector.TableHandle = (*TableHandle)(nil)

// CatalogID implements the connector.TableHandle interface.
func (t *TableHandle) CatalogID() string { return t.Catalog }

// Table implements the connector.TableHandle interface.
func (t *TableHandle) Table() string {
	if t.Schema == "" {
		return t.Name
	}
	return fmt.Sprintf("%s.%s", t.Schema, t.Name)
}

// Split is a part of a memory table.
type Split struct {
	Catalog    string
	TableID    int64
	Part       int
	TotalParts int
}

var _ connector.Split = (*Split)(nil)

// CatalogID implements the connector.Split interface.
func (s *Split) CatalogID() string { return s.Catalog }

// Translator converts memory wire handles into engine handles.
type Translator struct{}

var _ connector.Translator = Translator{}

// NewTranslator returns a memory translator.
func NewTranslator() Translator { return Translator{} }

// ToNativeSplit implements the connector.Translator interface.
func (Translator) ToNativeSplit(catalogID string, split protocol.ConnectorSplit, _ protocol.SplitContext) (connector.Split, error) {
	s, ok := split.(*WireSplit)
	if !ok {
		return nil, connector.ErrUnexpectedSplitType.New(connector.WireKind(split))
	}
	return &Split{
		Catalog:    catalogID,
		TableID:    s.Table.TableID,
		Part:       s.PartNumber,
		TotalParts: s.TotalPartsPerWorker,
	}, nil
}

// ToNativeColumnHandle implements the connector.Translator interface.
func (Translator) ToNativeColumnHandle(column protocol.ColumnHandle, parser types.Parser) (connector.ColumnHandle, error) {
	c, ok := column.(*WireColumnHandle)
	if !ok {
		return nil, connector.ErrUnexpectedColumnHandleType.New(connector.WireKind(column))
	}
	typ, err := parser.Parse(c.ColumnType)
	if err != nil {
		return nil, err
	}
	return &ColumnHandle{Name: c.Name, DataType: typ, Index: c.ColumnIndex}, nil
}

// ToNativeTableHandle implements the connector.Translator interface.
func (Translator) ToNativeTableHandle(table protocol.TableHandle, _ expression.Converter, _ types.Parser) (connector.TableHandle, error) {
	l, ok := table.ConnectorTableLayout.(*WireTableLayoutHandle)
	if !ok {
		return nil, connector.ErrUnexpectedLayoutType.New(connector.WireKind(table.ConnectorTableLayout))
	}
	return &TableHandle{
		Catalog:   table.ConnectorID,
		Schema:    l.Table.SchemaName,
		Name:      l.Table.TableName,
		TableID:   l.Table.TableID,
		Fragments: len(l.DataFragments),
	}, nil
}

// CreateConnectorProtocol implements the connector.Translator interface.
func (Translator) CreateConnectorProtocol() protocol.ConnectorProtocol {
	return &Protocol{}
}

// Protocol decodes the memory wire objects.
type Protocol struct{}

var _ protocol.ConnectorProtocol = (*Protocol)(nil)

func (*Protocol) UnmarshalSplit(data []byte) (protocol.ConnectorSplit, error) {
	var s WireSplit
	if err := unmarshal(data, "split", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (*Protocol) UnmarshalColumnHandle(data []byte) (protocol.ColumnHandle, error) {
	var c WireColumnHandle
	if err := unmarshal(data, "column handle", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (*Protocol) UnmarshalTableHandle(data []byte) (protocol.ConnectorTableHandle, error) {
	var t WireTableHandle
	if err := unmarshal(data, "table handle", &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (*Protocol) UnmarshalTableLayoutHandle(data []byte) (protocol.ConnectorTableLayoutHandle, error) {
	var l WireTableLayoutHandle
	if err := unmarshal(data, "table layout", &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func unmarshal(data []byte, what string, v interface{}) error {
	typ, err := protocol.TypeOf(data)
	if err != nil {
		return err
	}
	if typ != ConnectorName {
		return protocol.ErrUnknownType.New(what, typ)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return protocol.ErrMalformedObject.Wrap(err, ConnectorName+" "+what)
	}
	return nil
}

// MaxDataPerNodeProperty bounds the bytes a memory catalog holds per node.
const MaxDataPerNodeProperty = "memory.max-data-per-node"

// Connector serves the memory tables of one catalog.
type Connector struct {
	id             string
	maxDataPerNode int
}

var _ connector.Connector = (*Connector)(nil)

// ID implements the connector.Connector interface.
func (c *Connector) ID() string { return c.id }

// MaxDataPerNode returns the byte limit of the catalog, 0 meaning none.
func (c *Connector) MaxDataPerNode() int { return c.maxDataPerNode }

// Close implements the connector.Connector interface.
func (c *Connector) Close() error { return nil }

// Factory creates memory connectors.
type Factory struct{}

var _ connector.Factory = Factory{}

// NewFactory returns a memory connector factory.
func NewFactory() Factory { return Factory{} }

// Name implements the connector.Factory interface.
func (Factory) Name() string { return ConnectorName }

// NewConnector implements the connector.Factory interface.
func (Factory) NewConnector(id string, props config.Properties, _, _ connector.Executor) (connector.Connector, error) {
	max, err := props.Int(MaxDataPerNodeProperty, 0)
	if err != nil {
		return nil, err
	}
	return &Connector{id: id, maxDataPerNode: max}, nil
}
