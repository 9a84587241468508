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
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-native-worker/connector"
	"github.com/dolthub/go-native-worker/connector/hive"
	"github.com/dolthub/go-native-worker/expression"
	"github.com/dolthub/go-native-worker/filter"
	"github.com/dolthub/go-native-worker/protocol"
	"github.com/dolthub/go-native-worker/types"
)

// PushdownFilterEnabledProperty overrides, for one catalog, the worker
// wide hive.pushdown-filter-enabled setting.
const PushdownFilterEnabledProperty = "delta.pushdown-filter-enabled"

// ConnectorLookup returns the connector of a registered catalog.
type ConnectorLookup func(catalogID string) (connector.Connector, bool)

// Translator converts Delta handles into Hive handles of the execution
// engine.
type Translator struct {
	pushdownFilterEnabled bool
	connectors            ConnectorLookup
	log                   *logrus.Entry
}

var _ connector.Translator = (*Translator)(nil)

// NewTranslator returns a Delta translator. pushdownFilterEnabled is the
// default of catalogs not setting delta.pushdown-filter-enabled;
// connectors may be nil.
func NewTranslator(pushdownFilterEnabled bool, connectors ConnectorLookup) *Translator {
	return &Translator{
		pushdownFilterEnabled: pushdownFilterEnabled,
		connectors:            connectors,
		log:                   logrus.WithField("connector", ConnectorName),
	}
}

// ToNativeSplit implements the connector.Translator interface.
func (t *Translator) ToNativeSplit(
	catalogID string,
	split protocol.ConnectorSplit,
	ctx protocol.SplitContext,
) (connector.Split, error) {
	deltaSplit, ok := split.(*Split)
	if !ok {
		return nil, connector.ErrUnexpectedSplitType.New(connector.WireKind(split))
	}

	partitionKeys := make(map[string]*string, len(deltaSplit.PartitionValues))
	for k, v := range deltaSplit.PartitionValues {
		v := v
		partitionKeys[k] = &v
	}

	return &hive.ConnectorSplit{
		ConnectorID:     catalogID,
		FilePath:        deltaSplit.FilePath,
		FileFormat:      hive.Parquet,
		Start:           deltaSplit.Start,
		Length:          deltaSplit.Length,
		PartitionKeys:   partitionKeys,
		CustomSplitInfo: map[string]string{hive.TableFormatKey: ConnectorName},
		SerdeParameters: map[string]string{},
		Cacheable:       ctx.Cacheable,
		InfoColumns:     map[string]string{hive.PathColumn: deltaSplit.FilePath},
	}, nil
}

// ToNativeColumnHandle implements the connector.Translator interface.
func (t *Translator) ToNativeColumnHandle(column protocol.ColumnHandle, parser types.Parser) (connector.ColumnHandle, error) {
	deltaColumn, ok := column.(*ColumnHandle)
	if !ok {
		return nil, connector.ErrUnexpectedColumnHandleType.New(connector.WireKind(column))
	}
	return toHiveColumnHandle(deltaColumn, parser)
}

func toHiveColumnHandle(column *ColumnHandle, parser types.Parser) (*hive.ColumnHandle, error) {
	columnType, err := toHiveColumnType(column)
	if err != nil {
		return nil, err
	}

	typ, err := parser.Parse(column.DataType)
	if err != nil {
		return nil, err
	}

	var params hive.ColumnParseParameters
	if types.IsDate(typ) {
		params.PartitionDateValueFormat = hive.DaysSinceEpoch
	}

	var subfields []string
	if column.Subfield != nil {
		subfields = []string{string(*column.Subfield)}
	}

	return &hive.ColumnHandle{
		Name:              column.Name,
		ColumnType:        columnType,
		DataType:          typ,
		HiveType:          typ,
		RequiredSubfields: subfields,
		ParseParameters:   params,
	}, nil
}

func toHiveColumnType(column *ColumnHandle) (hive.ColumnType, error) {
	switch column.ColumnType {
	case Regular:
		return hive.Regular, nil
	case Partition:
		return hive.PartitionKey, nil
	case Subfield:
		return hive.Synthesized, nil
	default:
		return 0, connector.ErrUnsupportedColumnType.New(column.ColumnType, column.Name)
	}
}

// ToNativeTableHandle implements the connector.Translator interface.
func (t *Translator) ToNativeTableHandle(
	table protocol.TableHandle,
	conv expression.Converter,
	parser types.Parser,
) (connector.TableHandle, error) {
	layout, ok := table.ConnectorTableLayout.(*TableLayoutHandle)
	if !ok {
		return nil, connector.ErrUnexpectedLayoutType.New(connector.WireKind(table.ConnectorTableLayout))
	}

	deltaTable := layout.Table.DeltaTable

	seen := make(map[string]struct{}, len(deltaTable.Columns))
	var columns []*hive.ColumnHandle
	for _, c := range deltaTable.Columns {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}

		handle, err := toHiveColumnHandle(columnHandle(c), parser)
		if err != nil {
			return nil, err
		}
		columns = append(columns, handle)
	}

	dataColumns, err := dataColumns(deltaTable.Columns, parser)
	if err != nil {
		return nil, err
	}

	filters, err := expression.ToSubfieldFilters(layout.Predicate, func(c *ColumnHandle) (string, types.Type, error) {
		typ, err := parser.Parse(c.DataType)
		if err != nil {
			return "", nil, err
		}
		if c.Subfield != nil {
			return string(*c.Subfield), typ, nil
		}
		return c.Name, typ, nil
	})
	if err != nil {
		return nil, err
	}

	pushdown := t.pushdownEnabled(table.ConnectorID)

	var remaining expression.TypedExpr
	if pushdown && layout.RemainingPredicate != nil && !layout.RemainingPredicate.IsTrue() {
		remaining, err = conv.ToTypedExpr(layout.RemainingPredicate)
		if err != nil {
			return nil, err
		}
	}

	return &hive.TableHandle{
		ConnectorID:           table.ConnectorID,
		TableName:             tableName(deltaTable),
		FilterPushdownEnabled: pushdown,
		SubfieldFilters:       nonNil(filters),
		RemainingFilter:       remaining,
		DataColumns:           dataColumns,
		TableParameters:       map[string]string{},
		ColumnHandles:         columns,
	}, nil
}

// CreateConnectorProtocol implements the connector.Translator interface.
func (t *Translator) CreateConnectorProtocol() protocol.ConnectorProtocol {
	return NewProtocol()
}

func (t *Translator) pushdownEnabled(catalogID string) bool {
	if t.connectors == nil {
		return t.pushdownFilterEnabled
	}

	c, ok := t.connectors(catalogID)
	if !ok {
		t.log.WithField("catalog", catalogID).Debug("translating a handle of an unknown catalog")
		return t.pushdownFilterEnabled
	}

	if dc, ok := c.(*Connector); ok {
		if enabled, set := dc.PushdownFilterEnabled(); set {
			return enabled
		}
	}
	return t.pushdownFilterEnabled
}

func columnHandle(c Column) *ColumnHandle {
	columnType := Regular
	if c.Partition {
		columnType = Partition
	}
	return &ColumnHandle{Name: c.Name, DataType: c.Type, ColumnType: columnType}
}

// dataColumns returns the row type of the non partition columns, with the
// field names of nested rows lower cased. Only the first column of a name
// is kept. It returns nil for a table without columns.
func dataColumns(columns []Column, parser types.Parser) (*types.RowType, error) {
	if len(columns) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(columns))
	names := make([]string, 0, len(columns))
	fields := make([]types.Type, 0, len(columns))
	for _, c := range columns {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		if c.Partition {
			continue
		}
		typ, err := parser.Parse(c.Type)
		if err != nil {
			return nil, err
		}
		names = append(names, c.Name)
		fields = append(fields, types.FieldNamesToLowerCase(typ))
	}
	return types.Row(names, fields), nil
}

func tableName(t Table) string {
	if t.SchemaName == "" {
		return t.TableName
	}
	return fmt.Sprintf("%s.%s", t.SchemaName, t.TableName)
}

func nonNil(f filter.SubfieldFilters) filter.SubfieldFilters {
	if f == nil {
		return filter.SubfieldFilters{}
	}
	return f
}
