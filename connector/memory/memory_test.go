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

package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-native-worker/config"
	"github.com/dolthub/go-native-worker/connector"
	"github.com/dolthub/go-native-worker/protocol"
	"github.com/dolthub/go-native-worker/types"
)

func TestTranslator(t *testing.T) {
	require := require.New(t)

	r := connector.NewTranslatorRegistry()
	require.NoError(r.Register(ConnectorName, NewTranslator()))
	tr, err := r.Translator(ConnectorName)
	require.NoError(err)

	split, err := protocol.UnmarshalSplit([]byte(`{
		"connectorId": "mem",
		"connectorSplit": {"@type": "memory", "table": {"tableId": 7}, "partNumber": 1, "totalPartsPerWorker": 4}
	}`), r.Protocol)
	require.NoError(err)

	native, err := tr.ToNativeSplit("mem", split.ConnectorSplit, protocol.SplitContext{})
	require.NoError(err)
	require.Equal(&Split{Catalog: "mem", TableID: 7, Part: 1, TotalParts: 4}, native)

	column, err := protocol.UnmarshalColumnHandle([]byte(`{"@type":"memory","name":"a","columnType":"array(bigint)","columnIndex":2}`), r.Protocol)
	require.NoError(err)
	nativeColumn, err := tr.ToNativeColumnHandle(column, types.NewParser())
	require.NoError(err)
	require.Equal(&ColumnHandle{Name: "a", DataType: types.Array(types.BigInt), Index: 2}, nativeColumn)

	handle, err := protocol.UnmarshalTableHandle([]byte(`{
		"connectorId": "mem",
		"connectorHandle": {"@type": "memory", "schemaName": "s", "tableName": "t", "tableId": 7},
		"connectorTableLayout": {
			"@type": "memory",
			"table": {"schemaName": "s", "tableName": "t", "tableId": 7},
			"dataFragments": [{}, {}]
		}
	}`), r.Protocol)
	require.NoError(err)
	nativeTable, err := tr.ToNativeTableHandle(handle, nil, types.NewParser())
	require.NoError(err)
	require.Equal(&TableHandle{Catalog: "mem", Schema: "s", Name: "t", TableID: 7, Fragments: 2}, nativeTable)
	require.Equal("s.t", nativeTable.Table())
	require.Equal("t", (&TableHandle{Name: "t"}).Table())
}

func TestTranslatorErrors(t *testing.T) {
	require := require.New(t)

	tr := NewTranslator()

	_, err := tr.ToNativeSplit("mem", &WireColumnHandle{}, protocol.SplitContext{})
	require.True(connector.ErrUnexpectedSplitType.Is(err))

	_, err = tr.ToNativeColumnHandle(&WireSplit{}, types.NewParser())
	require.True(connector.ErrUnexpectedColumnHandleType.Is(err))

	_, err = tr.ToNativeColumnHandle(&WireColumnHandle{Name: "a", ColumnType: "nope"}, types.NewParser())
	require.True(types.ErrInvalidTypeSignature.Is(err))

	_, err = tr.ToNativeTableHandle(protocol.TableHandle{ConnectorTableLayout: &WireSplit{}}, nil, nil)
	require.True(connector.ErrUnexpectedLayoutType.Is(err))
	require.EqualError(err, `unexpected table layout type "memory"`)

	_, err = tr.CreateConnectorProtocol().UnmarshalColumnHandle([]byte(`{"@type":"delta"}`))
	require.True(protocol.ErrUnknownType.Is(err))
}

func TestFactory(t *testing.T) {
	require := require.New(t)

	c, err := NewFactory().NewConnector("mem", config.NewProperties(MaxDataPerNodeProperty, "1024"), nil, nil)
	require.NoError(err)
	require.Equal("mem", c.ID())
	require.Equal(1024, c.(*Connector).MaxDataPerNode())
	require.NoError(c.Close())

	_, err = NewFactory().NewConnector("mem", config.NewProperties(MaxDataPerNodeProperty, "lots"), nil, nil)
	require.True(config.ErrInvalidPropertyType.Is(err))
}
