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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-native-worker/config"
	"github.com/dolthub/go-native-worker/connector"
	"github.com/dolthub/go-native-worker/connector/hive"
	"github.com/dolthub/go-native-worker/expression"
	"github.com/dolthub/go-native-worker/filter"
	"github.com/dolthub/go-native-worker/protocol"
	"github.com/dolthub/go-native-worker/types"
)

type otherSplit struct{}

func (otherSplit) Type() string { return "other" }

func strPtr(s string) *string { return &s }

func TestToNativeSplit(t *testing.T) {
	require := require.New(t)

	tr := NewTranslator(false, nil)
	split := &Split{
		FilePath:        "s3://bucket/t/date=2024-01-01/part-0.parquet",
		Start:           0,
		Length:          1024,
		PartitionValues: map[string]string{"date": "2024-01-01"},
	}

	native, err := tr.ToNativeSplit("lake", split, protocol.SplitContext{Cacheable: true})
	require.NoError(err)
	require.Equal(&hive.ConnectorSplit{
		ConnectorID:     "lake",
		FilePath:        split.FilePath,
		FileFormat:      hive.Parquet,
		Start:           0,
		Length:          1024,
		PartitionKeys:   map[string]*string{"date": strPtr("2024-01-01")},
		CustomSplitInfo: map[string]string{"table_format": "delta"},
		SerdeParameters: map[string]string{},
		Cacheable:       true,
		InfoColumns:     map[string]string{"$path": split.FilePath},
	}, native)
	require.Equal("lake", native.CatalogID())

	native, err = tr.ToNativeSplit("lake", &Split{FilePath: "f"}, protocol.SplitContext{})
	require.NoError(err)
	require.NotNil(native.(*hive.ConnectorSplit).PartitionKeys)
	require.Empty(native.(*hive.ConnectorSplit).PartitionKeys)

	_, err = tr.ToNativeSplit("lake", otherSplit{}, protocol.SplitContext{})
	require.True(connector.ErrUnexpectedSplitType.Is(err))
	require.EqualError(err, `unexpected split type "other"`)
}

func TestToNativeColumnHandle(t *testing.T) {
	require := require.New(t)

	tr := NewTranslator(false, nil)
	parser := types.NewParser()

	native, err := tr.ToNativeColumnHandle(&ColumnHandle{Name: "ds", DataType: "date", ColumnType: Partition}, parser)
	require.NoError(err)
	require.Equal(&hive.ColumnHandle{
		Name:            "ds",
		ColumnType:      hive.PartitionKey,
		DataType:        types.Date,
		HiveType:        types.Date,
		ParseParameters: hive.ColumnParseParameters{PartitionDateValueFormat: hive.DaysSinceEpoch},
	}, native)

	subfield := protocol.Subfield("s.a")
	native, err = tr.ToNativeColumnHandle(&ColumnHandle{
		Name:       "s",
		DataType:   "struct<a:bigint>",
		ColumnType: Subfield,
		Subfield:   &subfield,
	}, parser)
	require.NoError(err)
	h := native.(*hive.ColumnHandle)
	require.Equal(hive.Synthesized, h.ColumnType)
	require.Equal([]string{"s.a"}, h.RequiredSubfields)
	require.Equal(hive.ISO8601, h.ParseParameters.PartitionDateValueFormat)

	_, err = tr.ToNativeColumnHandle(&ColumnHandle{Name: "x", DataType: "bigint", ColumnType: "SYNTHETIC"}, parser)
	require.True(connector.ErrUnsupportedColumnType.Is(err))

	_, err = tr.ToNativeColumnHandle(&ColumnHandle{Name: "x", DataType: "bogus", ColumnType: Regular}, parser)
	require.True(types.ErrInvalidTypeSignature.Is(err))

	_, err = tr.ToNativeColumnHandle(otherSplit{}, parser)
	require.True(connector.ErrUnexpectedColumnHandleType.Is(err))
	require.EqualError(err, `unexpected column handle type "other"`)
}

func TestToNativeColumnHandleIdempotent(t *testing.T) {
	require := require.New(t)

	tr := NewTranslator(false, nil)
	parser := types.NewParser()
	column := &ColumnHandle{Name: "m", DataType: "map<string,array<int>>", ColumnType: Regular}

	first, err := tr.ToNativeColumnHandle(column, parser)
	require.NoError(err)
	second, err := tr.ToNativeColumnHandle(column, parser)
	require.NoError(err)
	require.Equal(first, second)
	require.NotSame(first, second)
}

func layout(columns ...Column) *TableLayoutHandle {
	return &TableLayoutHandle{
		Table: TableHandle{
			ConnectorID: "lake",
			DeltaTable: Table{
				SchemaName:    "sales",
				TableName:     "orders",
				TableLocation: "s3://bucket/orders",
				Columns:       columns,
			},
		},
		Predicate: protocol.All[*ColumnHandle](),
	}
}

func TestToNativeTableHandle(t *testing.T) {
	require := require.New(t)

	tr := NewTranslator(false, nil)
	handle := protocol.TableHandle{
		ConnectorID: "lake",
		ConnectorTableLayout: layout(
			Column{Name: "id", Type: "bigint"},
			Column{Name: "Info", Type: "struct<Street:string,Zip:int>"},
			Column{Name: "id", Type: "varchar"},
			Column{Name: "ds", Type: "date", Partition: true},
		),
	}

	native, err := tr.ToNativeTableHandle(handle, expression.NewConverter(types.NewParser()), types.NewParser())
	require.NoError(err)

	table := native.(*hive.TableHandle)
	require.Equal("lake", table.CatalogID())
	require.Equal("sales.orders", table.Table())
	require.False(table.FilterPushdownEnabled)
	require.Empty(table.SubfieldFilters)
	require.Nil(table.RemainingFilter)
	require.Equal(map[string]string{}, table.TableParameters)

	require.Len(table.ColumnHandles, 3)
	require.Equal("id", table.ColumnHandles[0].Name)
	require.Equal(types.BigInt, table.ColumnHandles[0].DataType)
	require.Equal("Info", table.ColumnHandles[1].Name)
	require.Equal(hive.PartitionKey, table.ColumnHandles[2].ColumnType)
	require.Equal(hive.DaysSinceEpoch, table.ColumnHandles[2].ParseParameters.PartitionDateValueFormat)

	require.Equal(types.Row(
		[]string{"id", "Info"},
		[]types.Type{
			types.BigInt,
			types.Row([]string{"street", "zip"}, []types.Type{types.Varchar(0), types.Integer}),
		},
	), table.DataColumns)

	again, err := tr.ToNativeTableHandle(handle, expression.NewConverter(types.NewParser()), types.NewParser())
	require.NoError(err)
	require.Equal(native, again)
}

func TestToNativeTableHandleNoSchema(t *testing.T) {
	require := require.New(t)

	l := layout()
	l.Table.DeltaTable.SchemaName = ""

	native, err := NewTranslator(false, nil).ToNativeTableHandle(
		protocol.TableHandle{ConnectorID: "lake", ConnectorTableLayout: l},
		expression.NewConverter(types.NewParser()),
		types.NewParser(),
	)
	require.NoError(err)
	require.Equal("orders", native.Table())
	require.Nil(native.(*hive.TableHandle).DataColumns)
	require.Empty(native.(*hive.TableHandle).ColumnHandles)
}

func TestToNativeTableHandlePredicates(t *testing.T) {
	require := require.New(t)

	l := layout(
		Column{Name: "id", Type: "bigint"},
		Column{Name: "ds", Type: "date", Partition: true},
	)
	dsColumn := &ColumnHandle{Name: "ds", DataType: "date", ColumnType: Partition}
	point := protocol.Marker{Value: []byte(`"2024-01-01"`), Bound: protocol.Exactly}
	l.Predicate = protocol.WithColumnDomains(protocol.ColumnDomain[*ColumnHandle]{
		Column: dsColumn,
		Domain: protocol.Domain{Values: protocol.ValueSet{
			Kind:   protocol.SortableValueSet,
			Ranges: []protocol.Range{{Low: point, High: point}},
		}},
	})
	l.RemainingPredicate = protocol.Call("presto.default.$operator$greater_than", "boolean",
		protocol.Variable("id", "bigint"),
		protocol.Constant("bigint", "10"),
	)
	handle := protocol.TableHandle{ConnectorID: "lake", ConnectorTableLayout: l}
	conv := expression.NewConverter(types.NewParser())

	native, err := NewTranslator(true, nil).ToNativeTableHandle(handle, conv, types.NewParser())
	require.NoError(err)
	table := native.(*hive.TableHandle)
	require.True(table.FilterPushdownEnabled)
	require.Equal(filter.SubfieldFilters{"ds": &filter.BigintRange{Lower: 19723, Upper: 19723}}, table.SubfieldFilters)
	require.NotNil(table.RemainingFilter)
	require.Equal("$operator$greater_than(id, 10:BIGINT)", table.RemainingFilter.String())

	lake, err := NewFactory().NewConnector("lake",
		config.NewProperties("connector.name", "delta", PushdownFilterEnabledProperty, "false"), nil, nil)
	require.NoError(err)
	connectors := connector.NewRegistry()
	require.NoError(connectors.RegisterConnector(lake))
	native, err = NewTranslator(true, connectors.Connector).ToNativeTableHandle(handle, conv, types.NewParser())
	require.NoError(err)
	table = native.(*hive.TableHandle)
	require.False(table.FilterPushdownEnabled)
	require.Nil(table.RemainingFilter)
	require.Len(table.SubfieldFilters, 1)

	l.RemainingPredicate = protocol.Constant("boolean", "true")
	native, err = NewTranslator(true, nil).ToNativeTableHandle(handle, conv, types.NewParser())
	require.NoError(err)
	require.Nil(native.(*hive.TableHandle).RemainingFilter)
}

func TestToNativeTableHandleErrors(t *testing.T) {
	require := require.New(t)

	tr := NewTranslator(false, nil)
	conv := expression.NewConverter(types.NewParser())

	_, err := tr.ToNativeTableHandle(protocol.TableHandle{ConnectorID: "lake"}, conv, types.NewParser())
	require.True(connector.ErrUnexpectedLayoutType.Is(err))
	require.EqualError(err, `unexpected table layout type "none"`)

	bad := protocol.TableHandle{ConnectorID: "lake", ConnectorTableLayout: layout(Column{Name: "x", Type: "nope"})}
	_, err = tr.ToNativeTableHandle(bad, conv, types.NewParser())
	require.True(types.ErrInvalidTypeSignature.Is(err))

}

func TestProtocol(t *testing.T) {
	require := require.New(t)

	r := connector.NewTranslatorRegistry()
	require.NoError(r.Register(ConnectorName, NewTranslator(false, nil)))

	handle, err := protocol.UnmarshalTableHandle([]byte(`{
		"connectorId": "lake",
		"connectorHandle": {
			"@type": "delta",
			"connectorId": "lake",
			"deltaTable": {"schemaName": "s", "tableName": "t", "tableLocation": "/data/t", "columns": []}
		},
		"connectorTableLayout": {
			"@type": "delta",
			"table": {
				"connectorId": "lake",
				"deltaTable": {
					"schemaName": "s",
					"tableName": "t",
					"tableLocation": "/data/t",
					"snapshotId": 3,
					"columns": [
						{"name": "id", "type": "bigint", "partition": false},
						{"name": "ds", "type": "date", "partition": true}
					]
				}
			},
			"predicate": {"columnDomains": [{
				"column": {"@type": "delta", "name": "id", "dataType": "bigint", "columnType": "REGULAR"},
				"domain": {"nullAllowed": false, "values": {"@type": "allOrNone", "type": "bigint", "all": true}}
			}]}
		}
	}`), r.Protocol)
	require.NoError(err)

	l := handle.ConnectorTableLayout.(*TableLayoutHandle)
	require.Equal(int64(3), *l.Table.DeltaTable.SnapshotID)
	require.Len(l.Table.DeltaTable.Columns, 2)
	require.Equal(Regular, l.Predicate.Domains()[0].Column.ColumnType)

	native, err := NewTranslator(false, nil).ToNativeTableHandle(handle, expression.NewConverter(types.NewParser()), types.NewParser())
	require.NoError(err)
	require.Equal(filter.SubfieldFilters{"id": filter.IsNotNull}, native.(*hive.TableHandle).SubfieldFilters)

	noPredicate, err := NewProtocol().UnmarshalTableLayoutHandle([]byte(`{"@type":"delta","table":{"connectorId":"lake","deltaTable":{"tableName":"t"}}}`))
	require.NoError(err)
	require.False(noPredicate.(*TableLayoutHandle).Predicate.IsNone())

	split, err := protocol.UnmarshalSplit([]byte(`{
		"connectorId": "lake",
		"connectorSplit": {"@type": "delta", "filePath": "/data/t/f.parquet", "start": 0, "length": 10, "partitionValues": {"ds": "2024-01-01"}}
	}`), r.Protocol)
	require.NoError(err)
	require.Equal(map[string]string{"ds": "2024-01-01"}, split.ConnectorSplit.(*Split).PartitionValues)

	column, err := protocol.UnmarshalColumnHandle([]byte(`{"@type":"delta","name":"id","dataType":"bigint","columnType":"REGULAR"}`), r.Protocol)
	require.NoError(err)
	require.Equal(&ColumnHandle{Name: "id", DataType: "bigint", ColumnType: Regular}, column)

	_, err = NewProtocol().UnmarshalSplit([]byte(`{"@type":"hive"}`))
	require.True(protocol.ErrUnknownType.Is(err))

	_, err = NewProtocol().UnmarshalSplit([]byte(`{"@type":"delta","start":"x"}`))
	require.True(protocol.ErrMalformedObject.Is(err))

	_, err = protocol.UnmarshalSplit([]byte(`{"connectorSplit":{"@type":"iceberg"}}`), r.Protocol)
	require.True(connector.ErrUnsupportedConnector.Is(err))
}

func TestFactory(t *testing.T) {
	require := require.New(t)

	f := NewFactory()
	require.Equal("delta", f.Name())

	c, err := f.NewConnector("lake", config.NewProperties("connector.name", "delta"), nil, nil)
	require.NoError(err)
	require.Equal("lake", c.ID())
	_, set := c.(*Connector).PushdownFilterEnabled()
	require.False(set)
	require.NoError(c.Close())

	c, err = f.NewConnector("lake", config.NewProperties(PushdownFilterEnabledProperty, "true"), nil, nil)
	require.NoError(err)
	enabled, set := c.(*Connector).PushdownFilterEnabled()
	require.True(set)
	require.True(enabled)

	_, err = f.NewConnector("lake", config.NewProperties(PushdownFilterEnabledProperty, "maybe"), nil, nil)
	require.True(config.ErrInvalidPropertyType.Is(err))
}
