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

package types

import (
	"fmt"
	"strings"
)

// Kind identifies the family of a Type.
type Kind int

const (
	BooleanKind Kind = iota
	TinyIntKind
	SmallIntKind
	IntegerKind
	BigIntKind
	RealKind
	DoubleKind
	DecimalKind
	VarcharKind
	CharKind
	VarbinaryKind
	DateKind
	TimestampKind
	ArrayKind
	MapKind
	RowKind
)

var kindNames = map[Kind]string{
	BooleanKind:   "BOOLEAN",
	TinyIntKind:   "TINYINT",
	SmallIntKind:  "SMALLINT",
	IntegerKind:   "INTEGER",
	BigIntKind:    "BIGINT",
	RealKind:      "REAL",
	DoubleKind:    "DOUBLE",
	DecimalKind:   "DECIMAL",
	VarcharKind:   "VARCHAR",
	CharKind:      "CHAR",
	VarbinaryKind: "VARBINARY",
	DateKind:      "DATE",
	TimestampKind: "TIMESTAMP",
	ArrayKind:     "ARRAY",
	MapKind:       "MAP",
	RowKind:       "ROW",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Type is a structured type of the execution engine.
type Type interface {
	Kind() Kind
	String() string
}

type scalarType struct {
	kind Kind
}

func (t scalarType) Kind() Kind      { return t.kind }
func (t scalarType) String() string { return t.kind.String() }

var (
	Boolean   Type = scalarType{BooleanKind}
	TinyInt   Type = scalarType{TinyIntKind}
	SmallInt  Type = scalarType{SmallIntKind}
	Integer   Type = scalarType{IntegerKind}
	BigInt    Type = scalarType{BigIntKind}
	Real      Type = scalarType{RealKind}
	Double    Type = scalarType{DoubleKind}
	Varbinary Type = scalarType{VarbinaryKind}
	Date      Type = scalarType{DateKind}
	Timestamp Type = scalarType{TimestampKind}
)

// DecimalType is a fixed precision decimal.
type DecimalType struct {
	Precision int
	Scale     int
}

// Decimal returns a decimal type with the given precision and scale.
func Decimal(precision, scale int) *DecimalType {
	return &DecimalType{Precision: precision, Scale: scale}
}

func (*DecimalType) Kind() Kind { return DecimalKind }

func (t *DecimalType) String() string {
	return fmt.Sprintf("DECIMAL(%d, %d)", t.Precision, t.Scale)
}

// IsShort reports whether values of the type fit in 64 bits.
func (t *DecimalType) IsShort() bool {
	return t.Precision <= 18
}

// StringType is a character type. A zero Length means unbounded.
type StringType struct {
	kind   Kind
	Length int
}

// Varchar returns a varchar type of the given length, 0 being unbounded.
func Varchar(length int) *StringType {
	return &StringType{kind: VarcharKind, Length: length}
}

// Char returns a fixed length character type.
func Char(length int) *StringType {
	return &StringType{kind: CharKind, Length: length}
}

func (t *StringType) Kind() Kind { return t.kind }

func (t *StringType) String() string {
	if t.Length == 0 {
		return t.kind.String()
	}
	return fmt.Sprintf("%s(%d)", t.kind, t.Length)
}

// ArrayType is a list of elements of the same type.
type ArrayType struct {
	Elem Type
}

// Array returns an array type of the given elements.
func Array(elem Type) *ArrayType {
	return &ArrayType{Elem: elem}
}

func (*ArrayType) Kind() Kind { return ArrayKind }

func (t *ArrayType) String() string {
	return fmt.Sprintf("ARRAY<%s>", t.Elem)
}

// MapType is a map from keys to values.
type MapType struct {
	Key   Type
	Value Type
}

// Map returns a map type.
func Map(key, value Type) *MapType {
	return &MapType{Key: key, Value: value}
}

func (*MapType) Kind() Kind { return MapKind }

func (t *MapType) String() string {
	return fmt.Sprintf("MAP<%s,%s>", t.Key, t.Value)
}

// RowType is a struct of named fields.
type RowType struct {
	Names []string
	Types []Type
}

// Row returns a row type. Names and types must have the same length.
func Row(names []string, types []Type) *RowType {
	if len(names) != len(types) {
		panic(fmt.Sprintf("row type with %d names and %d types", len(names), len(types)))
	}
	return &RowType{Names: names, Types: types}
}

func (*RowType) Kind() Kind { return RowKind }

func (t *RowType) String() string {
	fields := make([]string, len(t.Names))
	for i, n := range t.Names {
		fields[i] = n + ":" + t.Types[i].String()
	}
	return "ROW<" + strings.Join(fields, ",") + ">"
}

// Size returns the number of fields of the row.
func (t *RowType) Size() int {
	return len(t.Names)
}

// IsDate reports whether t is the DATE type.
func IsDate(t Type) bool {
	return t != nil && t.Kind() == DateKind
}

// IsInteger reports whether t is one of the integral types.
func IsInteger(t Type) bool {
	switch t.Kind() {
	case TinyIntKind, SmallIntKind, IntegerKind, BigIntKind:
		return true
	default:
		return false
	}
}
