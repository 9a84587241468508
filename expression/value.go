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
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/dolthub/go-native-worker/types"
)

const dateLayout = "2006-01-02"

// ParseValue reads a JSON scalar as a value of the given type. Integers
// are returned as int64, dates as int64 days since the epoch, decimals as
// decimal.Decimal and timestamps as time.Time. JSON null is returned as
// nil.
func ParseValue(t types.Type, raw json.RawMessage) (interface{}, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, ErrInvalidDomainValue.Wrap(err, string(raw), t)
	}
	if v == nil {
		return nil, nil
	}

	result, err := convert(t, v)
	if err != nil {
		return nil, ErrInvalidDomainValue.Wrap(err, string(raw), t)
	}
	return result, nil
}

func convert(t types.Type, v interface{}) (interface{}, error) {
	s := scalarString(v)
	switch t.Kind() {
	case types.BooleanKind:
		return cast.ToBoolE(v)
	case types.TinyIntKind, types.SmallIntKind, types.IntegerKind, types.BigIntKind:
		return cast.ToInt64E(s)
	case types.RealKind, types.DoubleKind:
		return cast.ToFloat64E(s)
	case types.VarcharKind, types.CharKind, types.VarbinaryKind:
		return s, nil
	case types.DateKind:
		if _, ok := v.(json.Number); ok {
			return cast.ToInt64E(s)
		}
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, err
		}
		return DaysSinceEpoch(d), nil
	case types.TimestampKind:
		return cast.ToTimeE(s)
	case types.DecimalKind:
		return decimal.NewFromString(s)
	default:
		return nil, fmt.Errorf("values of type %s are not supported", t)
	}
}

func scalarString(v interface{}) string {
	switch v := v.(type) {
	case json.Number:
		return v.String()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// DaysSinceEpoch returns the number of whole days between the epoch and t.
func DaysSinceEpoch(t time.Time) int64 {
	secs := t.Unix()
	days := secs / 86400
	if secs%86400 != 0 && secs < 0 {
		days--
	}
	return days
}
