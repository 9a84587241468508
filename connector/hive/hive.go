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

// Package hive holds the Hive handles of the execution engine. Table
// formats stored as files in a Hive compatible layout, such as Delta,
// translate into these handles.
package hive

import (
	"fmt"

	"github.com/dolthub/go-native-worker/connector"
	"github.com/dolthub/go-native-worker/expression"
	"github.com/dolthub/go-native-worker/filter"
	"github.com/dolthub/go-native-worker/types"
)

// ColumnType tells where the values of a column come from.
type ColumnType int

const (
	// Regular columns are read from the data files.
	Regular ColumnType = iota
	// PartitionKey columns take the partition value of the split.
	PartitionKey
	// Synthesized columns are produced by the reader, such as $path.
	Synthesized
)

func (t ColumnType) String() string {
	switch t {
	case Regular:
		return "REGULAR"
	case PartitionKey:
		return "PARTITION_KEY"
	case Synthesized:
		return "SYNTHESIZED"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
}

// DateValueFormat is the encoding of date partition values.
type DateValueFormat int

const (
	// ISO8601 dates look like 2024-01-01.
	ISO8601 DateValueFormat = iota
	// DaysSinceEpoch dates are an integer number of days since 1970-01-01.
	DaysSinceEpoch
)

// ColumnParseParameters tells how to parse the partition values of a
// column.
type ColumnParseParameters struct {
	PartitionDateValueFormat DateValueFormat
}

// ColumnHandle is a column of a Hive table.
type ColumnHandle struct {
	Name              string
	ColumnType        ColumnType
	DataType          types.Type
	HiveType          types.Type
	RequiredSubfields []string
	ParseParameters   ColumnParseParameters
}

var _ connector.ColumnHandle = (*ColumnHandle)(nil)

// ColumnName implements the connector.ColumnHandle interface.
func (c *ColumnHandle) ColumnName() string { return c.Name }

func (c *ColumnHandle) String() string {
	return fmt.Sprintf("HiveColumnHandle [name: %s, columnType: %s, dataType: %s]", c.Name, c.ColumnType, c.DataType)
}

// TableHandle is a scan of a Hive table.
type TableHandle struct {
	ConnectorID           string
	TableName             string
	FilterPushdownEnabled bool
	SubfieldFilters       filter.SubfieldFilters
	RemainingFilter       expression.TypedExpr
	DataColumns           *types.RowType
	TableParameters       map[string]string
	ColumnHandles         []*ColumnHandle
}

var _ connector.TableHandle = (*TableHandle)(nil)

// CatalogID implements the connector.TableHandle interface.
func (t *TableHandle) CatalogID() string { return t.ConnectorID }

// Table implements the connector.TableHandle interface.
func (t *TableHandle) Table() string { return t.TableName }

func (t *TableHandle) String() string {
	remaining := "<none>"
	if t.RemainingFilter != nil {
		remaining = t.RemainingFilter.String()
	}
	return fmt.Sprintf("HiveTableHandle [table: %s, filterPushdown: %t, subfieldFilters: %s, remainingFilter: %s]",
		t.TableName, t.FilterPushdownEnabled, t.SubfieldFilters, remaining)
}

// FileFormat is the format of a data file.
type FileFormat int

const (
	Parquet FileFormat = iota
	ORC
	DWRF
)

func (f FileFormat) String() string {
	switch f {
	case Parquet:
		return "PARQUET"
	case ORC:
		return "ORC"
	case DWRF:
		return "DWRF"
	default:
		return fmt.Sprintf("FileFormat(%d)", int(f))
	}
}

// PathColumn is the synthesized column holding the path of the file a
// row was read from.
const PathColumn = "$path"

// CustomSplitInfo keys.
const (
	TableFormatKey = "table_format"
)

// ConnectorSplit is a byte range of a data file.
type ConnectorSplit struct {
	ConnectorID string
	FilePath    string
	FileFormat  FileFormat
	Start       uint64
	Length      uint64
	// PartitionKeys maps partition columns to their value in the file. A
	// nil value is a null partition value.
	PartitionKeys   map[string]*string
	CustomSplitInfo map[string]string
	SerdeParameters map[string]string
	Cacheable       bool
	// InfoColumns holds the values of synthesized columns.
	InfoColumns map[string]string
}

var _ connector.Split = (*ConnectorSplit)(nil)

// CatalogID implements the connector.Split interface.
func (s *ConnectorSplit) CatalogID() string { return s.ConnectorID }

func (s *ConnectorSplit) String() string {
	return fmt.Sprintf("HiveConnectorSplit [%s %d - %d]", s.FilePath, s.Start, s.Length)
}
