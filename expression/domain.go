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

package expression

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"

	"github.com/dolthub/go-native-worker/filter"
	"github.com/dolthub/go-native-worker/protocol"
	"github.com/dolthub/go-native-worker/types"
)

// ColumnFunc returns the subfield path and type of a column.
type ColumnFunc[C any] func(column C) (string, types.Type, error)

// ToSubfieldFilters converts a tuple domain into one filter per subfield.
// Columns whose domain allows every value, null included, get no filter.
func ToSubfieldFilters[C any](domain protocol.TupleDomain[C], column ColumnFunc[C]) (filter.SubfieldFilters, error) {
	if domain.IsNone() {
		return nil, ErrUnsupportedDomain.New("tuple domain", "NONE")
	}

	filters := make(filter.SubfieldFilters)
	for _, cd := range domain.Domains() {
		subfield, typ, err := column(cd.Column)
		if err != nil {
			return nil, err
		}

		f, err := ToFilter(subfield, cd.Domain, typ)
		if err != nil {
			return nil, err
		}
		if f == nil {
			continue
		}

		if _, ok := filters[subfield]; ok {
			return nil, ErrUnsupportedDomain.New(subfield, "more than one domain")
		}
		filters[subfield] = f
	}

	return filters, nil
}

// ToFilter converts the domain of a subfield into a filter. It returns nil
// when the domain allows every value, null included.
func ToFilter(subfield string, d protocol.Domain, t types.Type) (filter.Filter, error) {
	values := d.Values
	switch {
	case values.IsAll():
		if d.NullAllowed {
			return nil, nil
		}
		return filter.IsNotNull, nil
	case values.IsNone():
		if d.NullAllowed {
			return filter.IsNull, nil
		}
		return filter.AlwaysFalse, nil
	}

	switch values.Kind {
	case protocol.SortableValueSet:
		return rangesFilter(subfield, values.Ranges, d.NullAllowed, t)
	case protocol.EquatableValueSet:
		if !values.WhiteList {
			return nil, ErrUnsupportedDomain.New(subfield, "excluded values")
		}
		ranges := make([]protocol.Range, len(values.Entries))
		for i, e := range values.Entries {
			m := protocol.Marker{Value: e, Bound: protocol.Exactly}
			ranges[i] = protocol.Range{Low: m, High: m}
		}
		return rangesFilter(subfield, ranges, d.NullAllowed, t)
	default:
		return nil, ErrUnsupportedDomain.New(subfield, "value set "+values.Kind)
	}
}

func rangesFilter(subfield string, ranges []protocol.Range, nulls bool, t types.Type) (filter.Filter, error) {
	switch t.Kind() {
	case types.TinyIntKind, types.SmallIntKind, types.IntegerKind, types.BigIntKind, types.DateKind:
		return bigintFilter(subfield, ranges, nulls, t)
	case types.DecimalKind:
		if !t.(*types.DecimalType).IsShort() {
			return nil, ErrUnsupportedDomain.New(subfield, t)
		}
		return bigintFilter(subfield, ranges, nulls, t)
	case types.RealKind, types.DoubleKind:
		return doubleFilter(ranges, nulls, t)
	case types.VarcharKind, types.CharKind, types.VarbinaryKind:
		return bytesFilter(ranges, nulls, t)
	case types.BooleanKind:
		if len(ranges) != 1 || !ranges[0].SingleValue() {
			return nil, ErrUnsupportedDomain.New(subfield, "boolean range")
		}
		v, err := ParseValue(t, ranges[0].Low.Value)
		if err != nil {
			return nil, err
		}
		return &filter.BoolValue{Value: v.(bool), WithNulls: nulls}, nil
	default:
		return nil, ErrUnsupportedDomain.New(subfield, t)
	}
}

func bigintFilter(subfield string, ranges []protocol.Range, nulls bool, t types.Type) (filter.Filter, error) {
	result := make([]*filter.BigintRange, len(ranges))
	singleValues := true
	for i, r := range ranges {
		lower := int64(math.MinInt64)
		if !r.Low.Unbounded() {
			v, err := toInt64(t, r.Low.Value)
			if err != nil {
				return nil, err
			}
			lower = v
			if !r.Low.Inclusive() {
				if v == math.MaxInt64 {
					return nil, ErrUnsupportedDomain.New(subfield, "empty range")
				}
				lower++
			}
		}

		upper := int64(math.MaxInt64)
		if !r.High.Unbounded() {
			v, err := toInt64(t, r.High.Value)
			if err != nil {
				return nil, err
			}
			upper = v
			if !r.High.Inclusive() {
				if v == math.MinInt64 {
					return nil, ErrUnsupportedDomain.New(subfield, "empty range")
				}
				upper--
			}
		}

		result[i] = &filter.BigintRange{Lower: lower, Upper: upper, WithNulls: nulls}
		singleValues = singleValues && lower == upper
	}

	if len(result) == 1 {
		return result[0], nil
	}

	if singleValues {
		values := make([]int64, len(result))
		for i, r := range result {
			values[i] = r.Lower
		}
		return &filter.BigintValues{Values: values, WithNulls: nulls}, nil
	}

	filters := make([]filter.Filter, len(result))
	for i, r := range result {
		r.WithNulls = false
		filters[i] = r
	}
	return &filter.MultiRange{Filters: filters, WithNulls: nulls}, nil
}

func toInt64(t types.Type, raw json.RawMessage) (int64, error) {
	v, err := ParseValue(t, raw)
	if err != nil {
		return 0, err
	}

	switch v := v.(type) {
	case int64:
		return v, nil
	case decimal.Decimal:
		scale := int32(t.(*types.DecimalType).Scale)
		return v.Shift(scale).IntPart(), nil
	default:
		return 0, ErrInvalidDomainValue.New(string(raw), t)
	}
}

func doubleFilter(ranges []protocol.Range, nulls bool, t types.Type) (filter.Filter, error) {
	filters := make([]filter.Filter, len(ranges))
	for i, r := range ranges {
		f := &filter.DoubleRange{
			LowerUnbounded: r.Low.Unbounded(),
			LowerExclusive: !r.Low.Inclusive(),
			UpperUnbounded: r.High.Unbounded(),
			UpperExclusive: !r.High.Inclusive(),
			WithNulls:      nulls,
		}
		if !f.LowerUnbounded {
			v, err := ParseValue(t, r.Low.Value)
			if err != nil {
				return nil, err
			}
			f.Lower = v.(float64)
		}
		if !f.UpperUnbounded {
			v, err := ParseValue(t, r.High.Value)
			if err != nil {
				return nil, err
			}
			f.Upper = v.(float64)
		}
		filters[i] = f
	}

	return combine(filters, nulls), nil
}

func bytesFilter(ranges []protocol.Range, nulls bool, t types.Type) (filter.Filter, error) {
	singleValues := true
	for _, r := range ranges {
		singleValues = singleValues && r.SingleValue()
	}

	if singleValues {
		values := make([]string, len(ranges))
		for i, r := range ranges {
			v, err := ParseValue(t, r.Low.Value)
			if err != nil {
				return nil, err
			}
			values[i] = v.(string)
		}
		return &filter.BytesValues{Values: values, WithNulls: nulls}, nil
	}

	filters := make([]filter.Filter, len(ranges))
	for i, r := range ranges {
		f := &filter.BytesRange{
			LowerUnbounded: r.Low.Unbounded(),
			LowerExclusive: !r.Low.Inclusive(),
			UpperUnbounded: r.High.Unbounded(),
			UpperExclusive: !r.High.Inclusive(),
			WithNulls:      nulls,
		}
		if !f.LowerUnbounded {
			v, err := ParseValue(t, r.Low.Value)
			if err != nil {
				return nil, err
			}
			f.Lower = v.(string)
		}
		if !f.UpperUnbounded {
			v, err := ParseValue(t, r.High.Value)
			if err != nil {
				return nil, err
			}
			f.Upper = v.(string)
		}
		filters[i] = f
	}

	return combine(filters, nulls), nil
}

func combine(filters []filter.Filter, nulls bool) filter.Filter {
	if len(filters) == 1 {
		return filters[0]
	}
	for _, f := range filters {
		switch f := f.(type) {
		case *filter.DoubleRange:
			f.WithNulls = false
		case *filter.BytesRange:
			f.WithNulls = false
		}
	}
	return &filter.MultiRange{Filters: filters, WithNulls: nulls}
}
