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

package delta

import (
	"encoding/json"

	"github.com/dolthub/go-native-worker/protocol"
)

// ConnectorName is the connector.name of Delta catalogs and the @type of
// their wire objects.
const ConnectorName = "delta"

// ColumnType is the role of a Delta column.
type ColumnType string

const (
	Regular   ColumnType = "REGULAR"
	Partition ColumnType = "PARTITION"
	Subfield  ColumnType = "SUBFIELD"
)

// Split is a byte range of a Delta data file.
type Split struct {
	ConnectorID     string            `json:"connectorId"`
	FilePath        string            `json:"filePath"`
	Start           uint64            `json:"start"`
	Length          uint64            `json:"length"`
	FileSize        uint64            `json:"fileSize"`
	RowCount        int64             `json:"rowCount"`
	PartitionValues map[string]string `json:"partitionValues"`
}

// Type implements the protocol.ConnectorSplit interface.
func (*Split) Type() string { return ConnectorName }

// ColumnHandle is a column of a Delta table.
type ColumnHandle struct {
	Name       string             `json:"name"`
	DataType   string             `json:"dataType"`
	ColumnType ColumnType         `json:"columnType"`
	Subfield   *protocol.Subfield `json:"subfield,omitempty"`
}

// Type implements the protocol.ColumnHandle interface.
func (*ColumnHandle) Type() string { return ConnectorName }

// Column is a column of the Delta table metadata.
type Column struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Partition bool   `json:"partition"`
}

// Table is the metadata of a Delta table snapshot.
type Table struct {
	SchemaName    string   `json:"schemaName"`
	TableName     string   `json:"tableName"`
	TableLocation string   `json:"tableLocation"`
	SnapshotID    *int64   `json:"snapshotId,omitempty"`
	Columns       []Column `json:"columns"`
}

// TableHandle is a Delta table of a catalog.
type TableHandle struct {
	ConnectorID string `json:"connectorId"`
	DeltaTable  Table  `json:"deltaTable"`
}

// Type implements the protocol.ConnectorTableHandle interface.
func (*TableHandle) Type() string { return ConnectorName }

// TableLayoutHandle is a Delta table together with the predicate of its
// scan.
type TableLayoutHandle struct {
	Table              TableHandle                         `json:"table"`
	Predicate          protocol.TupleDomain[*ColumnHandle] `json:"predicate"`
	RemainingPredicate *protocol.RowExpression             `json:"remainingPredicate,omitempty"`
	PredicateText      string                              `json:"predicateText,omitempty"`
}

// Type implements the protocol.ConnectorTableLayoutHandle interface.
func (*TableLayoutHandle) Type() string { return ConnectorName }

// Protocol decodes the Delta wire objects. A table layout without
// predicate matches every row.
type Protocol struct{}

var _ protocol.ConnectorProtocol = (*Protocol)(nil)

// NewProtocol returns a new Delta protocol.
func NewProtocol() *Protocol {
	return &Protocol{}
}

// UnmarshalSplit implements the protocol.ConnectorProtocol interface.
func (p *Protocol) UnmarshalSplit(data []byte) (protocol.ConnectorSplit, error) {
	var s Split
	if err := unmarshal(data, "split", &s); err != nil {
		return nil, err
	}
	if s.PartitionValues == nil {
		s.PartitionValues = map[string]string{}
	}
	return &s, nil
}

// UnmarshalColumnHandle implements the protocol.ConnectorProtocol interface.
func (p *Protocol) UnmarshalColumnHandle(data []byte) (protocol.ColumnHandle, error) {
	var c ColumnHandle
	if err := unmarshal(data, "column handle", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// UnmarshalTableHandle implements the protocol.ConnectorProtocol interface.
func (p *Protocol) UnmarshalTableHandle(data []byte) (protocol.ConnectorTableHandle, error) {
	var t TableHandle
	if err := unmarshal(data, "table handle", &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UnmarshalTableLayoutHandle implements the protocol.ConnectorProtocol
// interface.
func (p *Protocol) UnmarshalTableLayoutHandle(data []byte) (protocol.ConnectorTableLayoutHandle, error) {
	l := TableLayoutHandle{Predicate: protocol.All[*ColumnHandle]()}
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
