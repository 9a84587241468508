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
	"strings"

	"github.com/dolthub/go-native-worker/protocol"
	"github.com/dolthub/go-native-worker/types"
)

// Converter converts row expressions into typed expressions.
type Converter interface {
	ToTypedExpr(expr *protocol.RowExpression) (TypedExpr, error)
}

// ExprConverter is the default Converter. Function names lose their
// catalog and schema prefix and are lower cased, as are special forms.
type ExprConverter struct {
	parser types.Parser
}

var _ Converter = (*ExprConverter)(nil)

// NewConverter returns a converter resolving types with the given parser.
func NewConverter(parser types.Parser) *ExprConverter {
	return &ExprConverter{parser: parser}
}

// ToTypedExpr implements the Converter interface.
func (c *ExprConverter) ToTypedExpr(expr *protocol.RowExpression) (TypedExpr, error) {
	if expr == nil {
		return nil, ErrUnsupportedExpression.New("<nil>")
	}

	typ, err := c.parser.Parse(expr.Type)
	if err != nil {
		return nil, err
	}

	switch expr.Kind {
	case protocol.ConstantKind:
		v, err := ParseValue(typ, expr.Value)
		if err != nil {
			return nil, err
		}
		return &Constant{DataType: typ, Value: v}, nil
	case protocol.VariableKind:
		return &FieldAccess{Name: expr.Name, DataType: typ}, nil
	case protocol.CallKind:
		return c.call(functionName(expr.Name), typ, expr.Arguments)
	case protocol.SpecialKind:
		return c.call(strings.ToLower(expr.Form), typ, expr.Arguments)
	default:
		return nil, ErrUnsupportedExpression.New(expr.Kind)
	}
}

func (c *ExprConverter) call(name string, typ types.Type, arguments []*protocol.RowExpression) (TypedExpr, error) {
	args := make([]TypedExpr, len(arguments))
	for i, a := range arguments {
		arg, err := c.ToTypedExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	return &Call{Name: name, ReturnType: typ, Args: args}, nil
}

// functionName strips the catalog and schema of a qualified function name
// such as presto.default.eq.
func functionName(name string) string {
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.ToLower(name)
}
