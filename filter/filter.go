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

// Package filter defines the per column filters the execution engine
// evaluates while scanning files.
package filter

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Kind is the kind of a Filter.
type Kind int

const (
	AlwaysFalseKind Kind = iota
	AlwaysTrueKind
	IsNullKind
	IsNotNullKind
	BoolValueKind
	BigintRangeKind
	BigintValuesKind
	DoubleRangeKind
	BytesRangeKind
	BytesValuesKind
	MultiRangeKind
)

// Filter is a predicate on the values of one column.
type Filter interface {
	fmt.Stringer
	Kind() Kind
	// NullAllowed returns whether null values pass the filter.
	NullAllowed() bool
}

// SubfieldFilters maps subfield paths to the filter on their values.
type SubfieldFilters map[string]Filter

// Subfields returns the filtered subfields in lexicographic order.
func (f SubfieldFilters) Subfields() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f SubfieldFilters) String() string {
	parts := make([]string, 0, len(f))
	for _, k := range f.Subfields() {
		parts = append(parts, k+": "+f[k].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

type constant struct {
	kind Kind
}

// AlwaysFalse rejects every value, null included.
var AlwaysFalse Filter = constant{AlwaysFalseKind}

// AlwaysTrue accepts every value, null included.
var AlwaysTrue Filter = constant{AlwaysTrueKind}

// IsNull accepts only null values.
var IsNull Filter = constant{IsNullKind}

// IsNotNull accepts every non null value.
var IsNotNull Filter = constant{IsNotNullKind}

func (c constant) Kind() Kind { return c.kind }

func (c constant) NullAllowed() bool {
	return c.kind == AlwaysTrueKind || c.kind == IsNullKind
}

func (c constant) String() string {
	switch c.kind {
	case AlwaysFalseKind:
		return "AlwaysFalse"
	case AlwaysTrueKind:
		return "AlwaysTrue"
	case IsNullKind:
		return "IsNull"
	default:
		return "IsNotNull"
	}
}

// BoolValue accepts a single boolean value.
type BoolValue struct {
	Value     bool
	WithNulls bool
}

func (f *BoolValue) Kind() Kind        { return BoolValueKind }
func (f *BoolValue) NullAllowed() bool { return f.WithNulls }

func (f *BoolValue) String() string {
	return fmt.Sprintf("BoolValue(%t, nulls: %t)", f.Value, f.WithNulls)
}

// BigintRange accepts integers in the closed interval [Lower, Upper].
type BigintRange struct {
	Lower, Upper int64
	WithNulls    bool
}

func (f *BigintRange) Kind() Kind        { return BigintRangeKind }
func (f *BigintRange) NullAllowed() bool { return f.WithNulls }

// SingleValue returns whether the range holds exactly one value.
func (f *BigintRange) SingleValue() bool {
	return f.Lower == f.Upper
}

func (f *BigintRange) String() string {
	lower, upper := "-inf", "+inf"
	if f.Lower != math.MinInt64 {
		lower = fmt.Sprint(f.Lower)
	}
	if f.Upper != math.MaxInt64 {
		upper = fmt.Sprint(f.Upper)
	}
	return fmt.Sprintf("BigintRange[%s, %s](nulls: %t)", lower, upper, f.WithNulls)
}

// BigintValues accepts integers of a list.
type BigintValues struct {
	Values    []int64
	WithNulls bool
}

func (f *BigintValues) Kind() Kind        { return BigintValuesKind }
func (f *BigintValues) NullAllowed() bool { return f.WithNulls }

func (f *BigintValues) String() string {
	return fmt.Sprintf("BigintValues%v(nulls: %t)", f.Values, f.WithNulls)
}

// DoubleRange accepts floating point values between two bounds.
type DoubleRange struct {
	Lower, Upper                   float64
	LowerUnbounded, LowerExclusive bool
	UpperUnbounded, UpperExclusive bool
	WithNulls                      bool
}

func (f *DoubleRange) Kind() Kind        { return DoubleRangeKind }
func (f *DoubleRange) NullAllowed() bool { return f.WithNulls }

func (f *DoubleRange) String() string {
	return rangeString("DoubleRange",
		fmt.Sprint(f.Lower), f.LowerUnbounded, f.LowerExclusive,
		fmt.Sprint(f.Upper), f.UpperUnbounded, f.UpperExclusive, f.WithNulls)
}

// BytesRange accepts strings between two bounds.
type BytesRange struct {
	Lower, Upper                   string
	LowerUnbounded, LowerExclusive bool
	UpperUnbounded, UpperExclusive bool
	WithNulls                      bool
}

func (f *BytesRange) Kind() Kind        { return BytesRangeKind }
func (f *BytesRange) NullAllowed() bool { return f.WithNulls }

func (f *BytesRange) String() string {
	return rangeString("BytesRange",
		fmt.Sprintf("%q", f.Lower), f.LowerUnbounded, f.LowerExclusive,
		fmt.Sprintf("%q", f.Upper), f.UpperUnbounded, f.UpperExclusive, f.WithNulls)
}

// BytesValues accepts strings of a list.
type BytesValues struct {
	Values    []string
	WithNulls bool
}

func (f *BytesValues) Kind() Kind        { return BytesValuesKind }
func (f *BytesValues) NullAllowed() bool { return f.WithNulls }

func (f *BytesValues) String() string {
	return fmt.Sprintf("BytesValues%q(nulls: %t)", f.Values, f.WithNulls)
}

// MultiRange accepts values passing any of its filters.
type MultiRange struct {
	Filters   []Filter
	WithNulls bool
}

func (f *MultiRange) Kind() Kind        { return MultiRangeKind }
func (f *MultiRange) NullAllowed() bool { return f.WithNulls }

func (f *MultiRange) String() string {
	parts := make([]string, len(f.Filters))
	for i, child := range f.Filters {
		parts[i] = child.String()
	}
	return fmt.Sprintf("MultiRange(%s)(nulls: %t)", strings.Join(parts, " OR "), f.WithNulls)
}

func rangeString(
	name string,
	lower string, lowerUnbounded, lowerExclusive bool,
	upper string, upperUnbounded, upperExclusive bool,
	nulls bool,
) string {
	var sb strings.Builder
	sb.WriteString(name)
	if lowerUnbounded {
		sb.WriteString("(-inf")
	} else {
		if lowerExclusive {
			sb.WriteByte('(')
		} else {
			sb.WriteByte('[')
		}
		sb.WriteString(lower)
	}
	sb.WriteString(", ")
	if upperUnbounded {
		sb.WriteString("+inf)")
	} else {
		sb.WriteString(upper)
		if upperExclusive {
			sb.WriteByte(')')
		} else {
			sb.WriteByte(']')
		}
	}
	fmt.Fprintf(&sb, "(nulls: %t)", nulls)
	return sb.String()
}
