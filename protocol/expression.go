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

// RowExpression kinds.
const (
	CallKind     = "call"
	ConstantKind = "constant"
	VariableKind = "variable"
	SpecialKind  = "special"
)

// RowExpression is a scalar expression evaluated against the rows of a
// table. Exactly which fields are meaningful depends on Kind:
//
//	constant: Type, Value
//	variable: Name, Type
//	call:     Name, Type, Arguments
//	special:  Form, Type, Arguments
type RowExpression struct {
	Kind string `json:"@type"`
	Type string `json:"type,omitempty"`

	Name  string          `json:"name,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
	Form  string          `json:"form,omitempty"`

	Arguments []*RowExpression `json:"arguments,omitempty"`
}

// Constant returns a constant expression of the given type and JSON value.
func Constant(typ string, value string) *RowExpression {
	return &RowExpression{Kind: ConstantKind, Type: typ, Value: json.RawMessage(value)}
}

// Variable returns a reference to the named column.
func Variable(name, typ string) *RowExpression {
	return &RowExpression{Kind: VariableKind, Name: name, Type: typ}
}

// Call returns a function call expression.
func Call(name, typ string, args ...*RowExpression) *RowExpression {
	return &RowExpression{Kind: CallKind, Name: name, Type: typ, Arguments: args}
}

// Special returns a special form expression such as AND or IN.
func Special(form, typ string, args ...*RowExpression) *RowExpression {
	return &RowExpression{Kind: SpecialKind, Form: form, Type: typ, Arguments: args}
}

// IsTrue returns whether the expression is the boolean constant true.
func (e *RowExpression) IsTrue() bool {
	return e != nil && e.Kind == ConstantKind && string(e.Value) == "true"
}

// Subfield is a dereference path into a column, such as a.b[1].
type Subfield string
