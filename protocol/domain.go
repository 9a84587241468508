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

package protocol

import (
	"encoding/json"
)

// Bound tells whether a Marker sits just above, exactly at or just below
// its value.
type Bound string

const (
	Above   Bound = "ABOVE"
	Exactly Bound = "EXACTLY"
	Below   Bound = "BELOW"
)

// Marker is one end of a Range. A marker without value is unbounded.
type Marker struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
	Bound Bound           `json:"bound"`
}

// Unbounded returns whether the marker has no value.
func (m Marker) Unbounded() bool {
	return len(m.Value) == 0 || string(m.Value) == "null"
}

// Inclusive returns whether the marker value belongs to its range.
func (m Marker) Inclusive() bool {
	return m.Bound == Exactly
}

// Range is a contiguous interval of values.
type Range struct {
	Low  Marker `json:"low"`
	High Marker `json:"high"`
}

// SingleValue returns whether the range holds exactly one value.
func (r Range) SingleValue() bool {
	return r.Low.Inclusive() && r.High.Inclusive() &&
		!r.Low.Unbounded() && string(r.Low.Value) == string(r.High.Value)
}

// ValueSet kinds.
const (
	SortableValueSet  = "sortable"
	EquatableValueSet = "equatable"
	AllOrNoneValueSet = "allOrNone"
)

// ValueSet is the set of non null values a Domain allows. Exactly which
// fields are meaningful depends on Kind.
type ValueSet struct {
	Kind string `json:"@type"`
	Type string `json:"type"`

	// Ranges of a sortable set.
	Ranges []Range `json:"ranges,omitempty"`

	// WhiteList and Entries of an equatable set. When WhiteList is false
	// the entries are excluded instead of allowed.
	WhiteList bool              `json:"whiteList,omitempty"`
	Entries   []json.RawMessage `json:"entries,omitempty"`

	// All of an all-or-none set.
	All bool `json:"all,omitempty"`
}

// IsAll returns whether the set allows every value.
func (v ValueSet) IsAll() bool {
	switch v.Kind {
	case AllOrNoneValueSet:
		return v.All
	case EquatableValueSet:
		return !v.WhiteList && len(v.Entries) == 0
	case SortableValueSet:
		return len(v.Ranges) == 1 && v.Ranges[0].Low.Unbounded() && v.Ranges[0].High.Unbounded()
	}
	return false
}

// IsNone returns whether the set allows no value.
func (v ValueSet) IsNone() bool {
	switch v.Kind {
	case AllOrNoneValueSet:
		return !v.All
	case EquatableValueSet:
		return v.WhiteList && len(v.Entries) == 0
	case SortableValueSet:
		return len(v.Ranges) == 0
	}
	return false
}

// Domain is the set of values, null included or not, a column may take.
type Domain struct {
	Values      ValueSet `json:"values"`
	NullAllowed bool     `json:"nullAllowed"`
}

// ColumnDomain pairs a column with its domain.
type ColumnDomain[C any] struct {
	Column C      `json:"column"`
	Domain Domain `json:"domain"`
}

// TupleDomain is a conjunction of column domains. A nil ColumnDomains
// matches no row, an empty one matches every row.
type TupleDomain[C any] struct {
	ColumnDomains *[]ColumnDomain[C] `json:"columnDomains"`
}

// All returns a TupleDomain matching every row.
func All[C any]() TupleDomain[C] {
	return TupleDomain[C]{ColumnDomains: &[]ColumnDomain[C]{}}
}

// None returns a TupleDomain matching no row.
func None[C any]() TupleDomain[C] {
	return TupleDomain[C]{}
}

// WithColumnDomains returns a TupleDomain of the given column domains.
func WithColumnDomains[C any](domains ...ColumnDomain[C]) TupleDomain[C] {
	if domains == nil {
		domains = []ColumnDomain[C]{}
	}
	return TupleDomain[C]{ColumnDomains: &domains}
}

// IsNone returns whether the tuple domain matches no row.
func (t TupleDomain[C]) IsNone() bool {
	return t.ColumnDomains == nil
}

// Domains returns the column domains, nil for a none tuple domain.
func (t TupleDomain[C]) Domains() []ColumnDomain[C] {
	if t.ColumnDomains == nil {
		return nil
	}
	return *t.ColumnDomains
}
